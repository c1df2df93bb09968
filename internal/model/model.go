package model

import (
	"sort"
	"strings"
)

const (
	ObjectFQN           = "java.lang.Object"
	StringFQN           = "java.lang.String"
	RuntimeExceptionFQN = "java.lang.RuntimeException"
	ErrorFQN            = "java.lang.Error"
	ListFQN             = "java.util.List"
	SetFQN              = "java.util.Set"
	MapFQN              = "java.util.Map"
	MapEntryFQN         = "java.util.Map.Entry"
	OptionalFQN         = "java.util.Optional"
	SupplierFQN         = "java.util.function.Supplier"
	ConsumerFQN         = "java.util.function.Consumer"
	ObjectsFQN          = "java.util.Objects"
	ArraysFQN           = "java.util.Arrays"
	StringBuilderFQN    = "java.lang.StringBuilder"
	FunctionalMarker    = "FunctionalInterface"
)

// DeclKind is the kind of a declared type.
type DeclKind int

const (
	DeclClass DeclKind = iota
	DeclRecord
	DeclInterface
	DeclEnum
	DeclAnnotation
)

var declKindNames = map[DeclKind]string{
	DeclClass:      "class",
	DeclRecord:     "record",
	DeclInterface:  "interface",
	DeclEnum:       "enum",
	DeclAnnotation: "annotation",
}

func (k DeclKind) String() string { return declKindNames[k] }

// ParseDeclKind maps a descriptor kind string to a DeclKind. The empty
// string means class.
func ParseDeclKind(s string) (DeclKind, bool) {
	if s == "" {
		return DeclClass, true
	}
	for k, n := range declKindNames {
		if strings.EqualFold(n, s) {
			return k, true
		}
	}
	return DeclClass, false
}

// Modifier is a bit set of declaration modifiers.
type Modifier uint16

const (
	ModPublic Modifier = 1 << iota
	ModProtected
	ModPrivate
	ModStatic
	ModAbstract
	ModFinal
	ModDefault
)

var modifierNames = []struct {
	m    Modifier
	name string
}{
	{ModPublic, "public"},
	{ModProtected, "protected"},
	{ModPrivate, "private"},
	{ModStatic, "static"},
	{ModAbstract, "abstract"},
	{ModFinal, "final"},
	{ModDefault, "default"},
}

// ParseModifier returns the modifier bit for a keyword.
func ParseModifier(s string) (Modifier, bool) {
	for _, mn := range modifierNames {
		if mn.name == strings.ToLower(strings.TrimSpace(s)) {
			return mn.m, true
		}
	}
	return 0, false
}

func (m Modifier) Has(o Modifier) bool { return m&o == o }

// Names lists the modifier keywords in declaration order.
func (m Modifier) Names() []string {
	var out []string
	for _, mn := range modifierNames {
		if m.Has(mn.m) {
			out = append(out, mn.name)
		}
	}
	return out
}

// Annotation is an annotation instance. Name may be simple or qualified.
type Annotation struct {
	Name   string
	Values map[string]string
}

func (a Annotation) SimpleName() string { return SimpleNameOf(a.Name) }

// HasAnnotation matches by simple name only so that equivalent markers from
// different frameworks are treated alike.
func HasAnnotation(anns []Annotation, simpleNames ...string) bool {
	_, ok := FindAnnotation(anns, simpleNames...)
	return ok
}

func FindAnnotation(anns []Annotation, simpleNames ...string) (Annotation, bool) {
	for _, a := range anns {
		sn := a.SimpleName()
		for _, want := range simpleNames {
			if want != "" && sn == SimpleNameOf(want) {
				return a, true
			}
		}
	}
	return Annotation{}, false
}

// SortedKeys returns the annotation value keys in order.
func (a Annotation) SortedKeys() []string {
	keys := make([]string, 0, len(a.Values))
	for k := range a.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GenericParam is a declared type parameter with ordered upper bounds.
type GenericParam struct {
	Name   string
	Bounds []*TypeRef
}

func (g GenericParam) String() string {
	if len(g.Bounds) == 0 {
		return g.Name
	}
	parts := make([]string, len(g.Bounds))
	for i, b := range g.Bounds {
		parts[i] = b.String()
	}
	return g.Name + " extends " + strings.Join(parts, " & ")
}

// TypeVars returns one type variable reference per generic parameter.
func TypeVars(params []GenericParam) []*TypeRef {
	if len(params) == 0 {
		return nil
	}
	out := make([]*TypeRef, len(params))
	for i, p := range params {
		out[i] = TypeVar(p.Name)
	}
	return out
}

type RawParam struct {
	Name        string
	Type        *TypeRef
	Varargs     bool
	Annotations []Annotation
	Doc         string
}

type RawConstructor struct {
	Params      []RawParam
	Modifiers   Modifier
	Annotations []Annotation
	Throws      []*TypeRef
	Doc         string
}

type RawMethod struct {
	Name        string
	Params      []RawParam
	Returns     *TypeRef // nil for void
	Throws      []*TypeRef
	Modifiers   Modifier
	Annotations []Annotation
	TypeParams  []GenericParam
	// DeclaredBy is the qualified name of the declaring type; empty means the
	// owning class itself.
	DeclaredBy string
	Doc        string
}

func (m *RawMethod) IsVoid() bool {
	return m.Returns == nil || (m.Returns.Kind == RefPrimitive && m.Returns.Name == "void")
}

// RawClass is the structural model of one declared type.
type RawClass struct {
	Package      string
	Name         string // simple name; nested types use dots (Outer.Inner)
	Kind         DeclKind
	Modifiers    Modifier
	TypeParams   []GenericParam
	Supertypes   []*TypeRef // superclass first, then interfaces
	Constructors []RawConstructor
	Methods      []RawMethod
	Annotations  []Annotation
	Doc          string
	// Library marks declarations that belong to the platform rather than the
	// project being generated.
	Library bool
}

func (c *RawClass) FQN() string {
	if c.Package == "" {
		return c.Name
	}
	return c.Package + "." + c.Name
}

// Ref returns a reference to the class parameterized by its own type
// variables.
func (c *RawClass) Ref() *TypeRef {
	return Declared(c.FQN(), TypeVars(c.TypeParams)...)
}

func (c *RawClass) IsAbstract() bool {
	return c.Kind == DeclInterface || c.Kind == DeclAnnotation || c.Modifiers.Has(ModAbstract)
}

// HasAccessibleNoArgConstructor reports whether code in pkg can call a
// no-argument constructor. A class without declared constructors has the
// implicit default one.
func (c *RawClass) HasAccessibleNoArgConstructor(pkg string) bool {
	if c.IsAbstract() || c.Kind == DeclEnum {
		return false
	}
	if len(c.Constructors) == 0 {
		return c.Kind == DeclClass
	}
	for _, ctor := range c.Constructors {
		if len(ctor.Params) != 0 || ctor.Modifiers.Has(ModPrivate) {
			continue
		}
		if ctor.Modifiers.Has(ModPublic) || c.Package == pkg {
			return true
		}
	}
	return false
}

// Method returns the first method with the given name and arity.
func (c *RawClass) Method(name string, arity int) (*RawMethod, bool) {
	for i := range c.Methods {
		if c.Methods[i].Name == name && len(c.Methods[i].Params) == arity {
			return &c.Methods[i], true
		}
	}
	return nil, false
}
