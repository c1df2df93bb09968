package model

import (
	"sort"
	"strings"

	"github.com/cmmoran/buildergen/pkg/options"
)

// Origin records where a field was discovered.
type Origin int

const (
	FromConstructor Origin = iota
	FromSetter
)

func (o Origin) String() string {
	if o == FromConstructor {
		return "constructor"
	}
	return "setter"
}

// TypeName identifies a declared type by package and simple name.
type TypeName struct {
	Package string
	Name    string
}

func (n TypeName) FQN() string {
	if n.Package == "" {
		return n.Name
	}
	return n.Package + "." + n.Name
}

// Ref returns a reference to n parameterized by params.
func (n TypeName) Ref(params []GenericParam) *TypeRef {
	return Declared(n.FQN(), TypeVars(params)...)
}

// Field is a constructible property of a target type (a FieldCandidate).
type Field struct {
	Name  string
	Type  *TypeRef
	Shape *Shape
	// Getter is the accessor used to copy the value from an existing
	// instance; empty when none matched.
	Getter string
	// Setter is the target's setter for setter-derived fields.
	Setter      string
	Doc         string
	Origin      Origin
	NonNull     bool
	Annotations []Annotation
	Methods     []*Method
}

// ParamSpec describes one parameter of a generated method.
type ParamSpec struct {
	Name        string
	Type        *TypeRef
	Varargs     bool
	Annotations []string
}

// ArgKind distinguishes literal template arguments from type references.
type ArgKind int

const (
	ArgLiteral ArgKind = iota
	ArgName
	ArgType
)

// TemplateArg is a named substitution. Format refers to it as $name:L,
// $name:N or $name:T depending on Kind.
type TemplateArg struct {
	Name    string
	Kind    ArgKind
	Literal string
	Type    *TypeRef
}

// Template is a method body: a format string plus named arguments.
type Template struct {
	Format string
	Args   []TemplateArg
}

// NewTemplate starts a template from format lines joined with newlines.
func NewTemplate(lines ...string) *Template {
	return &Template{Format: strings.Join(lines, "\n")}
}

// L adds a literal argument.
func (t *Template) L(name, value string) *Template {
	return t.add(TemplateArg{Name: name, Kind: ArgLiteral, Literal: value})
}

// N adds a name argument (an identifier).
func (t *Template) N(name, value string) *Template {
	return t.add(TemplateArg{Name: name, Kind: ArgName, Literal: value})
}

// T adds a type argument.
func (t *Template) T(name string, ref *TypeRef) *Template {
	return t.add(TemplateArg{Name: name, Kind: ArgType, Type: ref})
}

func (t *Template) add(a TemplateArg) *Template {
	for i := range t.Args {
		if t.Args[i].Name == a.Name {
			t.Args[i] = a
			return t
		}
	}
	t.Args = append(t.Args, a)
	sort.SliceStable(t.Args, func(i, j int) bool { return t.Args[i].Name < t.Args[j].Name })
	return t
}

// Arg returns the named argument.
func (t *Template) Arg(name string) (TemplateArg, bool) {
	for _, a := range t.Args {
		if a.Name == name {
			return a, true
		}
	}
	return TemplateArg{}, false
}

// Expand substitutes every argument into Format using source text for
// types. It is a convenience for logs and tests; renderers use Args.
func (t *Template) Expand() string {
	if t == nil {
		return ""
	}
	pairs := make([]string, 0, len(t.Args)*6)
	for _, a := range t.Args {
		val := a.Literal
		if a.Kind == ArgType {
			val = a.Type.String()
		}
		pairs = append(pairs, "$"+a.Name+":L", val, "$"+a.Name+":N", val, "$"+a.Name+":T", val)
	}
	return strings.NewReplacer(pairs...).Replace(t.Format)
}

// Method is one builder method to be emitted (a MethodCandidate).
type Method struct {
	Name        string
	Params      []ParamSpec
	TypeParams  []GenericParam
	Returns     *TypeRef
	Throws      []*TypeRef
	Body        *Template
	Modifiers   Modifier
	Annotations []string
	Doc         string
	Priority    int
	// Generator names the contributing policy; Field the owning field.
	Generator string
	Field     string
	// Scope lists the generic parameters visible to the method, used to
	// erase type variables in the signature key.
	Scope []GenericParam
}

// Signature is the conflict key: name plus erased parameter types.
func (m *Method) Signature() string {
	var b strings.Builder
	b.WriteString(m.Name)
	b.WriteString("(")
	scope := append(append([]GenericParam{}, m.TypeParams...), m.Scope...)
	for i, p := range m.Params {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(p.Type.Erase(scope))
		if p.Varargs {
			b.WriteString("[]")
		}
	}
	b.WriteString(")")
	return b.String()
}

// Display renders the method header with full generic parameter types.
func (m *Method) Display() string {
	var b strings.Builder
	b.WriteString(m.Name)
	b.WriteString("(")
	for i, p := range m.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type.String())
		if p.Varargs {
			b.WriteString("...")
		}
		b.WriteString(" ")
		b.WriteString(p.Name)
	}
	b.WriteString(")")
	return b.String()
}

// BuilderField is one storage slot of the builder.
type BuilderField struct {
	Name string
	Type *TypeRef
}

// NestedType is a type declared inside the builder, such as the
// with-interface.
type NestedType struct {
	Name       string
	Kind       DeclKind
	Modifiers  Modifier
	TypeParams []GenericParam
	Methods    []*Method
	Doc        string
}

// BuilderDefinition is the complete description handed to a renderer.
type BuilderDefinition struct {
	Target            TypeName
	Builder           TypeName
	TypeParams        []GenericParam
	ConstructorFields []*Field
	SetterFields      []*Field
	Fields            []BuilderField
	Constructors      []*Method
	Methods           []*Method
	Nested            []*NestedType
	Config            options.Config
	Doc               string
}

// AllFields returns constructor fields followed by setter fields.
func (d *BuilderDefinition) AllFields() []*Field {
	out := make([]*Field, 0, len(d.ConstructorFields)+len(d.SetterFields))
	out = append(out, d.ConstructorFields...)
	return append(out, d.SetterFields...)
}

// Field finds a field by name.
func (d *BuilderDefinition) Field(name string) (*Field, bool) {
	for _, f := range d.AllFields() {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// ModuleEntry pairs a target type with its builder.
type ModuleEntry struct {
	Type    string `yaml:"type" json:"type" msgpack:"type"`
	Builder string `yaml:"builder" json:"builder" msgpack:"builder"`
}

// ModuleDescriptor lists the builders of one generation run for
// deserialization wiring.
type ModuleDescriptor struct {
	Package string        `yaml:"package" json:"package" msgpack:"package"`
	Entries []ModuleEntry `yaml:"entries" json:"entries" msgpack:"entries"`
}

// NewModuleDescriptor builds a descriptor with entries sorted by type.
func NewModuleDescriptor(pkg string, defs []*BuilderDefinition) *ModuleDescriptor {
	md := &ModuleDescriptor{Package: pkg, Entries: make([]ModuleEntry, 0, len(defs))}
	for _, d := range defs {
		md.Entries = append(md.Entries, ModuleEntry{Type: d.Target.FQN(), Builder: d.Builder.FQN()})
	}
	sort.Slice(md.Entries, func(i, j int) bool { return md.Entries[i].Type < md.Entries[j].Type })
	return md
}
