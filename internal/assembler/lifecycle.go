package assembler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmmoran/buildergen/internal/extract"
	"github.com/cmmoran/buildergen/internal/generator"
	"github.com/cmmoran/buildergen/internal/model"
)

const lifecycleGenerator = "lifecycle"

// lifecycle returns the factory, copy-from and build methods. They compete
// with field methods in the resolver at the lifecycle band and therefore
// always win a signature clash.
func lifecycle(ctx *generator.Context, def *model.BuilderDefinition, fields extract.Result) []*model.Method {
	return []*model.Method{
		factoryMethod(ctx),
		fromMethod(ctx, def),
		buildMethod(ctx, def, fields.Constructor, fields.Arguments),
	}
}

func newLifecycle(ctx *generator.Context, name string, static bool) *model.Method {
	m := &model.Method{
		Name:      name,
		Returns:   ctx.Self,
		Modifiers: generator.AccessModifier(ctx.Config.MethodAccess),
		Priority:  generator.BandLifecycle,
		Generator: lifecycleGenerator,
		Scope:     ctx.Scope,
	}
	if static {
		// static methods cannot see the class type parameters and declare
		// their own copy
		m.Modifiers |= model.ModStatic
		m.TypeParams = ctx.Scope
		m.Scope = nil
	}
	return m
}

// diamond renders "new X<>()" for generic builders and "new X()" otherwise.
func diamond(params []model.GenericParam) string {
	if len(params) > 0 {
		return "<>"
	}
	return ""
}

func factoryMethod(ctx *generator.Context) *model.Method {
	m := newLifecycle(ctx, ctx.Config.FactoryMethod, true)
	m.Body = model.NewTemplate("return new $builder:T" + diamond(ctx.Scope) + "();").
		T("builder", model.Declared(ctx.Builder.FQN()))
	m.Doc = "Creates an empty builder."
	return m
}

func fromMethod(ctx *generator.Context, def *model.BuilderDefinition) *model.Method {
	m := newLifecycle(ctx, ctx.Config.FromMethod, true)
	target := ctx.Target.Ref(ctx.Scope)
	m.Params = []model.ParamSpec{{Name: "instance", Type: target}}

	t := model.NewTemplate().
		T("builder", model.Declared(ctx.Builder.FQN())).
		T("self", ctx.Self).
		T("objects", model.Declared(model.ObjectsFQN))
	lines := []string{
		`$objects:T.requireNonNull(instance, "instance must not be null");`,
		"$self:T builder = new $builder:T" + diamond(ctx.Scope) + "();",
	}
	for i, f := range def.AllFields() {
		if f.Getter == "" {
			continue
		}
		field, getter := fmt.Sprintf("field%d", i), fmt.Sprintf("getter%d", i)
		t.N(field, f.Name).N(getter, f.Getter)
		if checked(ctx, f) && f.Type.Kind != model.RefPrimitive {
			msg := fmt.Sprintf("message%d", i)
			t.L(msg, strconv.Quote(f.Name+" must not be null"))
			lines = append(lines, fmt.Sprintf("builder.$%s:N = $objects:T.requireNonNull(instance.$%s:N(), $%s:L);", field, getter, msg))
			continue
		}
		lines = append(lines, fmt.Sprintf("builder.$%s:N = instance.$%s:N();", field, getter))
	}
	lines = append(lines, "return builder;")
	t.Format = model.NewTemplate(lines...).Format
	m.Body = t
	m.Doc = fmt.Sprintf("Creates a builder initialized from an existing {@link %s}.", ctx.Target.Name)
	return m
}

// buildMethod passes every constructor argument in position. A parameter
// without a field receives the default value of its type.
func buildMethod(ctx *generator.Context, def *model.BuilderDefinition, ctor *model.RawConstructor, args []extract.Argument) *model.Method {
	m := newLifecycle(ctx, ctx.Config.BuildMethod, false)
	m.Returns = ctx.Target.Ref(ctx.Scope)
	if ctor != nil {
		for _, th := range ctor.Throws {
			if !model.IsUncheckedException(ctx.Lookup, th) {
				m.Throws = append(m.Throws, th)
			}
		}
	}

	t := model.NewTemplate().
		T("target", model.Declared(ctx.Target.FQN())).
		T("self", m.Returns).
		T("objects", model.Declared(model.ObjectsFQN))
	var (
		lines []string
		call  []string
	)
	for _, a := range args {
		if a.Dropped() {
			name := fmt.Sprintf("default%d", a.Position)
			typ := a.Param.Type
			if a.Param.Varargs && typ != nil && typ.Kind != model.RefArray {
				typ = model.ArrayOf(typ)
			}
			call = append(call, defaultValue(t, name, typ))
			continue
		}
		f := a.Field
		field := fmt.Sprintf("arg%d", a.Position)
		t.N(field, f.Name)
		if checked(ctx, f) {
			msg := fmt.Sprintf("message%d", a.Position)
			t.L(msg, strconv.Quote(f.Name+" must not be null"))
			lines = append(lines, fmt.Sprintf("$objects:T.requireNonNull(this.$%s:N, $%s:L);", field, msg))
		}
		call = append(call, fmt.Sprintf("this.$%s:N", field))
	}
	lines = append(lines, "$self:T instance = new $target:T"+diamond(ctx.Scope)+"("+strings.Join(call, ", ")+");")
	for i, f := range def.SetterFields {
		field, setter := fmt.Sprintf("set%d", i), fmt.Sprintf("setter%d", i)
		t.N(field, f.Name).N(setter, f.Setter)
		lines = append(lines,
			fmt.Sprintf("if (this.$%s:N != null) {", field),
			fmt.Sprintf("    instance.$%s:N(this.$%s:N);", setter, field),
			"}",
		)
	}
	lines = append(lines, "return instance;")
	t.Format = model.NewTemplate(lines...).Format
	m.Body = t
	m.Doc = fmt.Sprintf("Creates a new {@link %s} from the values set on this builder.", ctx.Target.Name)
	return m
}

func checked(ctx *generator.Context, f *model.Field) bool {
	return ctx.Config.ValidateNonNull && f.NonNull
}

var primitiveZero = map[string]string{
	"boolean": "false",
	"byte":    "(byte) 0",
	"short":   "(short) 0",
	"int":     "0",
	"long":    "0L",
	"char":    "'\\u0000'",
	"float":   "0.0F",
	"double":  "0.0D",
}

// defaultValue registers the default of typ under name and returns the
// template reference. References get a typed null so that overloaded
// constructors still resolve.
func defaultValue(t *model.Template, name string, typ *model.TypeRef) string {
	switch {
	case typ == nil:
		t.L(name, "null")
	case typ.Kind == model.RefPrimitive:
		zero, ok := primitiveZero[typ.Name]
		if !ok {
			zero = "null"
		}
		t.L(name, zero)
	default:
		t.T(name, typ)
		return fmt.Sprintf("($%s:T) null", name)
	}
	return fmt.Sprintf("$%s:L", name)
}
