package geo

import (
	"errors"
	"fmt"
)

// ErrNoRegion marks a name that neither matches exactly nor fuzzily.
var ErrNoRegion = errors.New("no matching region")

// NameMatcher finds the closest candidate name.
type NameMatcher interface {
	Match(query string, candidates []string) (string, bool)
}

// Coder attaches region codes to free-text region names.
type Coder struct {
	ref     *Reference
	matcher NameMatcher
}

func NewCoder(ref *Reference, matcher NameMatcher) *Coder {
	return &Coder{ref: ref, matcher: matcher}
}

// Code returns the region code and the reference spelling of name.
func (c *Coder) Code(name string) (string, string, error) {
	if code, ok := c.ref.Code(name); ok {
		return code, name, nil
	}
	if c.matcher != nil {
		if match, ok := c.matcher.Match(name, c.ref.names); ok {
			code, _ := c.ref.Code(match)
			return code, match, nil
		}
	}
	return "", "", fmt.Errorf("%w: %q", ErrNoRegion, name)
}

// Memo wraps a Coder for the duration of one view computation.
func (c *Coder) Memo() func(name string) (string, string, error) {
	type result struct {
		code, name string
		err        error
	}
	seen := make(map[string]result)
	return func(name string) (string, string, error) {
		if r, ok := seen[name]; ok {
			return r.code, r.name, r.err
		}
		code, canonical, err := c.Code(name)
		seen[name] = result{code, canonical, err}
		return code, canonical, err
	}
}
