package model

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// RefKind classifies the syntactic form of a TypeRef.
type RefKind int

const (
	RefInvalid   RefKind = iota
	RefPrimitive         // int, boolean, ...
	RefArray             // T[]
	RefDeclared          // com.acme.Task, java.util.List<T>
	RefTypeVar           // T
	RefWildcard          // ?, ? extends T, ? super T
)

func (k RefKind) String() string {
	switch k {
	case RefPrimitive:
		return "primitive"
	case RefArray:
		return "array"
	case RefDeclared:
		return "declared"
	case RefTypeVar:
		return "typevar"
	case RefWildcard:
		return "wildcard"
	}
	return "invalid"
}

var primitives = map[string]string{
	"boolean": "java.lang.Boolean",
	"byte":    "java.lang.Byte",
	"short":   "java.lang.Short",
	"int":     "java.lang.Integer",
	"long":    "java.lang.Long",
	"char":    "java.lang.Character",
	"float":   "java.lang.Float",
	"double":  "java.lang.Double",
}

// IsPrimitiveName reports whether name is a JVM primitive keyword.
func IsPrimitiveName(name string) bool {
	_, ok := primitives[name]
	return ok
}

// TypeRef is a reference to a type as written at a use site.
type TypeRef struct {
	Kind RefKind
	// Name is the primitive keyword, the type variable name, or the fully
	// qualified name of a declared type. Nested types use dots (java.util.Map.Entry).
	Name string
	Args []*TypeRef // declared type arguments; nil entries mean "erased"
	Elem *TypeRef   // array component
	// Bound is the wildcard bound; Super selects "? super Bound".
	Bound *TypeRef
	Super bool

	Annotations []Annotation // type-use annotations
}

func Primitive(name string) *TypeRef { return &TypeRef{Kind: RefPrimitive, Name: name} }

func TypeVar(name string) *TypeRef { return &TypeRef{Kind: RefTypeVar, Name: name} }

func ArrayOf(elem *TypeRef) *TypeRef { return &TypeRef{Kind: RefArray, Elem: elem} }

func Declared(fqn string, args ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: RefDeclared, Name: fqn, Args: args}
}

func Wildcard(bound *TypeRef, super bool) *TypeRef {
	return &TypeRef{Kind: RefWildcard, Bound: bound, Super: super}
}

// Extends is shorthand for "? extends bound".
func Extends(bound *TypeRef) *TypeRef { return Wildcard(bound, false) }

// String renders the reference in source form without annotations.
func (t *TypeRef) String() string {
	if t == nil {
		return "?"
	}
	var b strings.Builder
	t.write(&b, false)
	return b.String()
}

// Annotated renders the reference including type-use annotations at every
// level, so that references differing only in annotations differ.
func (t *TypeRef) Annotated() string {
	if t == nil {
		return "?"
	}
	var b strings.Builder
	t.write(&b, true)
	return b.String()
}

func writeAnnotations(b *strings.Builder, anns []Annotation) {
	for _, a := range anns {
		b.WriteString("@")
		b.WriteString(a.Name)
		if len(a.Values) > 0 {
			keys := make([]string, 0, len(a.Values))
			for k := range a.Values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			b.WriteString("(")
			for i, k := range keys {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(k + "=" + strconv.Quote(a.Values[k]))
			}
			b.WriteString(")")
		}
		b.WriteString(" ")
	}
}

func (t *TypeRef) write(b *strings.Builder, annotated bool) {
	if annotated {
		writeAnnotations(b, t.Annotations)
	}
	switch t.Kind {
	case RefArray:
		if t.Elem == nil {
			b.WriteString("?")
		} else {
			t.Elem.write(b, annotated)
		}
		b.WriteString("[]")
	case RefWildcard:
		b.WriteString("?")
		if t.Bound != nil {
			if t.Super {
				b.WriteString(" super ")
			} else {
				b.WriteString(" extends ")
			}
			t.Bound.write(b, annotated)
		}
	case RefDeclared:
		b.WriteString(t.Name)
		if len(t.Args) > 0 {
			b.WriteString("<")
			for i, a := range t.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				if a == nil {
					b.WriteString("?")
					continue
				}
				a.write(b, annotated)
			}
			b.WriteString(">")
		}
	default:
		b.WriteString(t.Name)
	}
}

// Equal compares two references structurally, ignoring annotations.
func (t *TypeRef) Equal(o *TypeRef) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind || t.Name != o.Name || t.Super != o.Super || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return t.Elem.Equal(o.Elem) && t.Bound.Equal(o.Bound)
}

// IsRaw reports whether a declared reference carries no type arguments.
func (t *TypeRef) IsRaw() bool {
	return t != nil && t.Kind == RefDeclared && len(t.Args) == 0
}

// Package returns the package portion of a declared name, using the JVM
// convention that package segments start lower-case.
func (t *TypeRef) Package() string {
	if t == nil || t.Kind != RefDeclared {
		return ""
	}
	return PackageOf(t.Name)
}

// SimpleName returns the last segment of the reference name.
func (t *TypeRef) SimpleName() string {
	if t == nil {
		return ""
	}
	return SimpleNameOf(t.Name)
}

// PackageOf splits off the leading lower-case segments of a qualified name.
func PackageOf(fqn string) string {
	parts := strings.Split(fqn, ".")
	n := 0
	for n < len(parts)-1 {
		r := []rune(parts[n])
		if len(r) == 0 || unicode.IsUpper(r[0]) {
			break
		}
		n++
	}
	return strings.Join(parts[:n], ".")
}

func SimpleNameOf(fqn string) string {
	if i := strings.LastIndex(fqn, "."); i >= 0 {
		return fqn[i+1:]
	}
	return fqn
}

// Boxed returns the wrapper reference for primitives and t otherwise.
func (t *TypeRef) Boxed() *TypeRef {
	if t != nil && t.Kind == RefPrimitive {
		if w, ok := primitives[t.Name]; ok {
			return Declared(w)
		}
	}
	return t
}

// Clone deep-copies the reference graph.
func (t *TypeRef) Clone() *TypeRef {
	if t == nil {
		return nil
	}
	c := &TypeRef{
		Kind:  t.Kind,
		Name:  t.Name,
		Elem:  t.Elem.Clone(),
		Bound: t.Bound.Clone(),
		Super: t.Super,
	}
	if t.Args != nil {
		c.Args = make([]*TypeRef, len(t.Args))
		for i, a := range t.Args {
			c.Args[i] = a.Clone()
		}
	}
	if len(t.Annotations) > 0 {
		c.Annotations = append([]Annotation(nil), t.Annotations...)
	}
	return c
}

// Substitute replaces type variables found in bindings. A binding to nil
// erases the variable, which propagates as a nil argument or a nil result.
func (t *TypeRef) Substitute(bindings map[string]*TypeRef) *TypeRef {
	if t == nil || len(bindings) == 0 {
		return t
	}
	switch t.Kind {
	case RefTypeVar:
		if b, ok := bindings[t.Name]; ok {
			return b
		}
		return t
	case RefArray:
		elem := t.Elem.Substitute(bindings)
		if elem == nil {
			return nil
		}
		return &TypeRef{Kind: RefArray, Elem: elem, Annotations: t.Annotations}
	case RefWildcard:
		if t.Bound == nil {
			return t
		}
		return &TypeRef{Kind: RefWildcard, Bound: t.Bound.Substitute(bindings), Super: t.Super}
	case RefDeclared:
		if len(t.Args) == 0 {
			return t
		}
		args := make([]*TypeRef, len(t.Args))
		for i, a := range t.Args {
			args[i] = a.Substitute(bindings)
		}
		return &TypeRef{Kind: RefDeclared, Name: t.Name, Args: args, Annotations: t.Annotations}
	}
	return t
}

// ContainsTypeVar reports whether any type variable occurs in t.
func (t *TypeRef) ContainsTypeVar() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case RefTypeVar:
		return true
	case RefArray:
		return t.Elem.ContainsTypeVar()
	case RefWildcard:
		return t.Bound.ContainsTypeVar()
	}
	for _, a := range t.Args {
		if a.ContainsTypeVar() {
			return true
		}
	}
	return false
}

// Erase computes the JVM erasure of t. Type variables erase to the first
// bound found in scope, or java.lang.Object.
func (t *TypeRef) Erase(scope []GenericParam) string {
	if t == nil {
		return ObjectFQN
	}
	switch t.Kind {
	case RefPrimitive:
		return t.Name
	case RefArray:
		return t.Elem.Erase(scope) + "[]"
	case RefDeclared:
		return t.Name
	case RefWildcard:
		if t.Bound != nil && !t.Super {
			return t.Bound.Erase(scope)
		}
		return ObjectFQN
	case RefTypeVar:
		for _, p := range scope {
			if p.Name == t.Name && len(p.Bounds) > 0 {
				return p.Bounds[0].Erase(without(scope, p.Name))
			}
		}
		return ObjectFQN
	}
	return ObjectFQN
}

func without(scope []GenericParam, name string) []GenericParam {
	out := make([]GenericParam, 0, len(scope))
	for _, p := range scope {
		if p.Name != name {
			out = append(out, p)
		}
	}
	return out
}

// HasAnnotation matches type-use annotations by simple name.
func (t *TypeRef) HasAnnotation(simpleNames ...string) bool {
	if t == nil {
		return false
	}
	return HasAnnotation(t.Annotations, simpleNames...)
}
