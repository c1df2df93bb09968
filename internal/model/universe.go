package model

import (
	"fmt"
	"sort"
)

// Lookup resolves a qualified name to its declaration.
type Lookup interface {
	Lookup(fqn string) (*RawClass, bool)
}

// Universe indexes every declaration known to a run: the built-in platform
// declarations plus everything loaded from descriptors. It is populated
// before processing and only read afterwards.
type Universe struct {
	byName map[string]*RawClass
	order  []string
}

// NewUniverse returns a Universe seeded with the built-in declarations.
func NewUniverse() *Universe {
	u := &Universe{byName: make(map[string]*RawClass)}
	for _, c := range builtins() {
		u.byName[c.FQN()] = c
	}
	return u
}

// Add registers project declarations. Redeclaring a project type is an
// error; a project type may shadow a built-in one.
func (u *Universe) Add(classes ...*RawClass) error {
	for _, c := range classes {
		fqn := c.FQN()
		if prev, ok := u.byName[fqn]; ok && !prev.Library {
			return fmt.Errorf("duplicate declaration of %s", fqn)
		}
		u.byName[fqn] = c
		u.order = append(u.order, fqn)
	}
	return nil
}

func (u *Universe) Lookup(fqn string) (*RawClass, bool) {
	c, ok := u.byName[fqn]
	return c, ok
}

// Classes returns project declarations in load order.
func (u *Universe) Classes() []*RawClass {
	out := make([]*RawClass, 0, len(u.order))
	for _, n := range u.order {
		out = append(out, u.byName[n])
	}
	return out
}

// Packages returns the sorted set of project packages.
func (u *Universe) Packages() []string {
	seen := map[string]bool{}
	for _, n := range u.order {
		seen[u.byName[n].Package] = true
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// IsSubtype reports whether ref's declaration reaches target through its
// supertype chain (ref itself included).
func IsSubtype(l Lookup, fqn, target string) bool {
	return isSubtype(l, fqn, target, map[string]bool{})
}

func isSubtype(l Lookup, fqn, target string, seen map[string]bool) bool {
	if fqn == target {
		return true
	}
	if seen[fqn] {
		return false
	}
	seen[fqn] = true
	c, ok := l.Lookup(fqn)
	if !ok {
		return false
	}
	for _, s := range c.Supertypes {
		if s != nil && s.Kind == RefDeclared && isSubtype(l, s.Name, target, seen) {
			return true
		}
	}
	return false
}

// FindSupertype walks ref's supertype chain looking for target and returns
// the target instantiated in terms of ref's type arguments. Class type
// parameters left unbound by a raw ref come back as nil arguments.
func FindSupertype(l Lookup, ref *TypeRef, target string) (*TypeRef, bool) {
	return findSupertype(l, ref, target, map[string]bool{})
}

func findSupertype(l Lookup, ref *TypeRef, target string, seen map[string]bool) (*TypeRef, bool) {
	if ref == nil || ref.Kind != RefDeclared {
		return nil, false
	}
	if ref.Name == target {
		return ref, true
	}
	if seen[ref.Name] {
		return nil, false
	}
	seen[ref.Name] = true
	c, ok := l.Lookup(ref.Name)
	if !ok {
		return nil, false
	}
	bindings := Bindings(c.TypeParams, ref.Args)
	for _, s := range c.Supertypes {
		if found, ok := findSupertype(l, s.Substitute(bindings), target, seen); ok {
			return found, true
		}
	}
	return nil, false
}

// Bindings pairs declared parameters with arguments. A raw or mismatched
// use erases every parameter.
func Bindings(params []GenericParam, args []*TypeRef) map[string]*TypeRef {
	if len(params) == 0 {
		return nil
	}
	b := make(map[string]*TypeRef, len(params))
	for i, p := range params {
		if len(args) == len(params) {
			b[p.Name] = args[i]
		} else {
			b[p.Name] = nil
		}
	}
	return b
}

// IsUncheckedException reports whether a thrown type is unchecked. Unknown
// types count as checked.
func IsUncheckedException(l Lookup, thrown *TypeRef) bool {
	if thrown == nil || thrown.Kind != RefDeclared {
		return false
	}
	return IsSubtype(l, thrown.Name, RuntimeExceptionFQN) || IsSubtype(l, thrown.Name, ErrorFQN)
}

// IsFunctionalInterface reports whether fqn names an interface marked as
// functional, directly or through a supertype.
func IsFunctionalInterface(l Lookup, fqn string) bool {
	return isFunctional(l, fqn, map[string]bool{})
}

func isFunctional(l Lookup, fqn string, seen map[string]bool) bool {
	if seen[fqn] {
		return false
	}
	seen[fqn] = true
	c, ok := l.Lookup(fqn)
	if !ok || c.Kind != DeclInterface {
		return false
	}
	if HasAnnotation(c.Annotations, FunctionalMarker) {
		return true
	}
	for _, s := range c.Supertypes {
		if s != nil && isFunctional(l, s.Name, seen) {
			return true
		}
	}
	return false
}
