package options

import (
	"path"
	"strings"
)

// MethodExcluded reports whether a method of owner is excluded by
// ExcludeMethods. Entries are either a method name pattern ("setInternal*")
// or an owner-qualified pattern ("com.acme.Project#setId"); patterns use
// path.Match syntax.
func (c Config) MethodExcluded(owner, method string) bool {
	for _, ex := range c.ExcludeMethods {
		ownerPat, methodPat, qualified := strings.Cut(ex, "#")
		if !qualified {
			methodPat, ownerPat = ownerPat, ""
		}
		if ownerPat != "" && !matches(ownerPat, owner) && !matches(ownerPat, simpleName(owner)) {
			continue
		}
		if matches(methodPat, method) {
			return true
		}
	}
	return false
}

// IsNonNullMarker reports whether an annotation simple name is one of the
// configured not-null markers.
func (c Config) IsNonNullMarker(simple string) bool {
	return containsPart(c.NonNullMarkers, simple)
}

func matches(pattern, s string) bool {
	if pattern == s {
		return true
	}
	ok, err := path.Match(pattern, s)
	return err == nil && ok
}

func simpleName(fqn string) string {
	if i := strings.LastIndex(fqn, "."); i >= 0 {
		return fqn[i+1:]
	}
	return fqn
}

// containsPart reports whether any entry equals expected.
func containsPart(parts []string, expected string) bool {
	if expected == "" {
		return false
	}
	for _, part := range parts {
		if part == expected {
			return true
		}
	}
	return false
}
