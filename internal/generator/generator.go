// Package generator holds the method-generation policies. Each Generator
// inspects one field and contributes zero or more builder methods; the
// Registry runs every generator and concatenates the results.
package generator

import (
	"strconv"

	"github.com/cmmoran/buildergen/internal/model"
	"github.com/cmmoran/buildergen/internal/naming"
	"github.com/cmmoran/buildergen/pkg/options"
)

// Priority bands. A higher priority wins a signature conflict; priorities
// never affect execution order.
const (
	BandSetter     = 10
	BandSupplier   = 20
	BandConsumer   = 30
	BandCollection = 40
	BandText       = 50
	BandLifecycle  = 100
)

const (
	PrioritySetter             = BandSetter
	PrioritySetterTransform    = BandSetter + 5
	PrioritySupplier           = BandSupplier
	PriorityInPlaceConsumer    = BandConsumer
	PriorityNestedBuilder      = BandConsumer + 5
	PriorityCollectionLiterals = BandCollection
	PriorityCollectionConsumer = BandCollection + 5
	PriorityAddElement         = BandCollection + 8
	PriorityStringHelpers      = BandText
)

// BandName names the band a priority falls into.
func BandName(p int) string {
	switch {
	case p >= BandLifecycle:
		return "lifecycle"
	case p >= BandText:
		return "text"
	case p >= BandCollection:
		return "collection"
	case p >= BandConsumer:
		return "consumer"
	case p >= BandSupplier:
		return "supplier"
	case p >= BandSetter:
		return "setter"
	}
	return "unbanded"
}

// Generator is one method-generation policy. Implementations are stateless.
type Generator interface {
	Name() string
	Priority() int
	AppliesTo(f *model.Field, ctx *Context) bool
	Generate(f *model.Field, ctx *Context) []*model.Method
}

// Context carries what generators may consult besides the field itself.
type Context struct {
	Owner   *model.RawClass
	Target  model.TypeName
	Builder model.TypeName
	// Self is the builder type parameterized by the target's generics; every
	// chaining method returns it.
	Self   *model.TypeRef
	Scope  []model.GenericParam
	Config options.Config
	Lookup model.Lookup
}

// NewContext derives the builder identity for owner under cfg.
func NewContext(owner *model.RawClass, cfg options.Config, lookup model.Lookup) *Context {
	target := model.TypeName{Package: owner.Package, Name: owner.Name}
	builder := model.TypeName{Package: owner.Package, Name: naming.BuilderName(owner.Name, cfg.Suffix)}
	return &Context{
		Owner:   owner,
		Target:  target,
		Builder: builder,
		Self:    builder.Ref(owner.TypeParams),
		Scope:   owner.TypeParams,
		Config:  cfg,
		Lookup:  lookup,
	}
}

// AccessModifier maps a configured access level onto modifiers.
func AccessModifier(a options.Access) model.Modifier {
	switch a {
	case options.AccessPublic:
		return model.ModPublic
	case options.AccessProtected:
		return model.ModProtected
	case options.AccessPrivate:
		return model.ModPrivate
	}
	return 0
}

// Method starts a chaining method contributed by g for f.
func (c *Context) Method(g Generator, f *model.Field, name string, params ...model.ParamSpec) *model.Method {
	return &model.Method{
		Name:      name,
		Params:    params,
		Returns:   c.Self,
		Modifiers: AccessModifier(c.Config.MethodAccess),
		Priority:  g.Priority(),
		Generator: g.Name(),
		Field:     f.Name,
		Scope:     c.Scope,
	}
}

// SetterName is the builder method name for a field.
func (c *Context) SetterName(f *model.Field) string {
	return naming.MethodName(c.Config.SetterPrefix, f.Name)
}

// NestedBuilder describes the generated builder of another target type.
type NestedBuilder struct {
	Ref    *model.TypeRef // parameterized builder type
	Raw    *model.TypeRef // raw builder type for static calls
	Config options.Config
}

// BuilderFor reports whether ref names a type that also gets a generated
// builder, detected by the target marker on its declaration.
func (c *Context) BuilderFor(ref *model.TypeRef) (NestedBuilder, bool) {
	if ref == nil || ref.Kind != model.RefDeclared {
		return NestedBuilder{}, false
	}
	decl, ok := c.Lookup.Lookup(ref.Name)
	if !ok || !model.HasAnnotation(decl.Annotations, c.Config.TargetMarker) {
		return NestedBuilder{}, false
	}
	cfg := c.Config
	if ann, ok := model.FindAnnotation(decl.Annotations, c.Config.OptionsMarker); ok {
		if over, err := cfg.Override(ann.Values); err == nil {
			cfg = over
		}
	}
	fqn := model.TypeName{Package: decl.Package, Name: naming.BuilderName(decl.Name, cfg.Suffix)}.FQN()
	return NestedBuilder{
		Ref:    model.Declared(fqn, ref.Args...),
		Raw:    model.Declared(fqn),
		Config: cfg,
	}, true
}

// Runtime references a support type from the configured runtime package.
func (c *Context) Runtime(name string, args ...*model.TypeRef) *model.TypeRef {
	return model.Declared(c.Config.RuntimePackage+"."+name, args...)
}

// paramAnnotations carries not-null markers of the field onto a parameter.
func paramAnnotations(f *model.Field, cfg options.Config) []string {
	if !f.NonNull || f.Type.Kind == model.RefPrimitive {
		return nil
	}
	for _, a := range f.Annotations {
		if cfg.IsNonNullMarker(a.SimpleName()) {
			return []string{a.Name}
		}
	}
	if len(cfg.NonNullMarkers) > 0 {
		return []string{cfg.NonNullMarkers[0]}
	}
	return nil
}

// store builds the common "assign then return this" body. expr is a format
// fragment that may reference arguments added by the caller.
func store(ctx *Context, f *model.Field, expr string, prelude ...string) *model.Template {
	lines := append([]string{}, prelude...)
	if f.NonNull && ctx.Config.ValidateNonNull && f.Type.Kind != model.RefPrimitive {
		lines = append(lines, "this.$field:N = $objects:T.requireNonNull("+expr+", $nullMessage:L);")
	} else {
		lines = append(lines, "this.$field:N = "+expr+";")
	}
	lines = append(lines, "return this;")
	t := model.NewTemplate(lines...).N("field", f.Name)
	if f.NonNull && ctx.Config.ValidateNonNull && f.Type.Kind != model.RefPrimitive {
		t.T("objects", model.Declared(model.ObjectsFQN)).
			L("nullMessage", strconv.Quote(f.Name+" must not be null"))
	}
	return t
}
