package spec

import "errors"

// Kind identifies the failure a terminal assertion expects.
type Kind struct {
	name  string
	match func(error) bool
}

// KindOf matches failures that are, or wrap, an E. For concrete E this is an
// exact type match on some error in the Unwrap chain.
func KindOf[E error]() Kind {
	return Kind{
		name: TypeName[E](),
		match: func(err error) bool {
			var target E
			return errors.As(err, &target)
		},
	}
}

// KindIs matches failures that are, or wrap, the sentinel target.
func KindIs(name string, target error) Kind {
	return Kind{
		name: name,
		match: func(err error) bool {
			return errors.Is(err, target)
		},
	}
}

// Named returns a copy of k rendered as name.
func (k Kind) Named(name string) Kind {
	k.name = name
	return k
}

// Name is the identifier rendered in failure declarations.
func (k Kind) Name() string {
	return k.name
}

// Matches reports whether err is of this kind. A nil error never matches.
func (k Kind) Matches(err error) bool {
	if err == nil || k.match == nil {
		return false
	}
	return k.match(err)
}
