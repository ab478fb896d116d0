package spec

import "github.com/ormasoftchile/microspec/pkg/config"

// New returns a chain for t configured from the process environment. A
// configuration that cannot be loaded is reported on t and the defaults apply.
func New(t TB, opts ...Option) *Chain {
	t.Helper()
	cfg, err := config.FromEnvironment()
	if err != nil {
		t.Errorf("microspec: %v", err)
		cfg = config.Default()
	}
	return NewChain(t, cfg, opts...)
}
