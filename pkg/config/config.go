// Package config resolves how specification chains write their output.
//
// Values come from, lowest to highest precedence: defaults, a YAML or TOML file
// named by MICROSPEC_CONFIG, and individual environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvConfig         = "MICROSPEC_CONFIG"
	EnvWriteOutput    = "MICROSPEC_WRITE_OUTPUT"
	EnvColor          = "MICROSPEC_COLOR"
	EnvTrace          = "MICROSPEC_TRACE"
	EnvStrictTeardown = "MICROSPEC_STRICT_TEARDOWN"

	// EnvLegacyWriteOutput is the name older suites set to silence narrative output.
	EnvLegacyWriteOutput = "MicroSpec.Specification.WriteOutput"
)

// Config controls narrative output, transcript recording and teardown checks.
// All fields are optional; omitted fields take their defaults.
type Config struct {
	// WriteOutput enables narrative output. Default true.
	WriteOutput *bool `yaml:"write_output,omitempty" toml:"write_output,omitempty" json:"write_output,omitempty" jsonschema:"description=Write narrative lines to standard output (default true)"`
	// Color styles narrative prefixes when the sink is a terminal.
	Color bool `yaml:"color,omitempty" toml:"color,omitempty" json:"color,omitempty" jsonschema:"description=Style narrative prefixes on terminals"`
	// TracePath appends a JSONL transcript of every chain to this file.
	TracePath string `yaml:"trace_path,omitempty" toml:"trace_path,omitempty" json:"trace_path,omitempty" jsonschema:"description=Append a JSONL transcript to this file"`
	// StrictTeardown fails a test that ends with an unconsumed captured failure. Default true.
	StrictTeardown *bool `yaml:"strict_teardown,omitempty" toml:"strict_teardown,omitempty" json:"strict_teardown,omitempty" jsonschema:"description=Fail tests that end with an unconsumed captured failure (default true)"`
}

// Default returns the zero configuration: output on, no color, no trace,
// strict teardown.
func Default() Config {
	return Config{}
}

// OutputEnabled reports whether narrative lines should be written.
func (c Config) OutputEnabled() bool {
	return c.WriteOutput == nil || *c.WriteOutput
}

// TeardownStrict reports whether unconsumed failures fail the test at teardown.
func (c Config) TeardownStrict() bool {
	return c.StrictTeardown == nil || *c.StrictTeardown
}

// Bool returns a pointer to b, for literal configs.
func Bool(b bool) *bool {
	return &b
}

// Parse decodes a YAML config document. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil // empty document
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ParseTOML decodes a TOML config document. Unknown keys are rejected.
func ParseTOML(data []byte) (Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("parse config: unknown key %q", undecoded[0].String())
	}
	return cfg, nil
}

// LoadFile reads and parses a config file: TOML for a .toml extension, YAML
// otherwise.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if isTOML(path) {
		return ParseTOML(data)
	}
	return Parse(data)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// FromEnvironment resolves the configuration from the process environment.
func FromEnvironment() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup resolves the configuration through lookup. A boolean variable
// that is absent or unparsable leaves the value unset.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if path, ok := lookup(EnvConfig); ok && path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return Default(), err
		}
		cfg = fileCfg
	}

	if b, ok := lookupBool(lookup, EnvLegacyWriteOutput); ok {
		cfg.WriteOutput = &b
	}
	if b, ok := lookupBool(lookup, EnvWriteOutput); ok {
		cfg.WriteOutput = &b
	}
	if b, ok := lookupBool(lookup, EnvColor); ok {
		cfg.Color = b
	}
	if path, ok := lookup(EnvTrace); ok && path != "" {
		cfg.TracePath = path
	}
	if b, ok := lookupBool(lookup, EnvStrictTeardown); ok {
		cfg.StrictTeardown = &b
	}
	return cfg, nil
}

func lookupBool(lookup func(string) (string, bool), name string) (bool, bool) {
	raw, ok := lookup(name)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return b, true
}
