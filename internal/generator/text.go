package generator

import (
	"github.com/cmmoran/buildergen/internal/model"
	"github.com/cmmoran/buildergen/internal/naming"
)

// StringHelpers contributes a format-string overload and a text-builder
// callback overload for String and Optional<String> fields.
type StringHelpers struct{}

func (StringHelpers) Name() string  { return "string-helpers" }
func (StringHelpers) Priority() int { return PriorityStringHelpers }

func (StringHelpers) AppliesTo(f *model.Field, ctx *Context) bool {
	if !ctx.Config.StringHelpers || f.Shape == nil {
		return false
	}
	return f.Shape.IsString() || (f.Shape.Kind == model.ShapeOptional && f.Shape.Elem.IsString())
}

func (g StringHelpers) Generate(f *model.Field, ctx *Context) []*model.Method {
	optional := f.Shape.Kind == model.ShapeOptional
	lift := func(expr string) string {
		if optional {
			return "$optional:T.of(" + expr + ")"
		}
		return expr
	}
	str := model.Declared(model.StringFQN)
	name := ctx.SetterName(f)

	format := ctx.Method(g, f, name,
		model.ParamSpec{Name: "format", Type: str},
		model.ParamSpec{Name: "args", Type: model.Declared(model.ObjectFQN), Varargs: true},
	)
	format.Body = store(ctx, f, lift("$string:T.format(format, args)")).T("string", str)

	param := naming.BuilderParamName(f.Name)
	sb := model.Declared(model.StringBuilderFQN)
	text := ctx.Method(g, f, name, model.ParamSpec{
		Name: param,
		Type: model.Declared(model.ConsumerFQN, sb),
	})
	text.Body = store(ctx, f, lift("text.toString()"),
		"$sb:T text = new $sb:T();",
		"$consumer:N.accept(text);",
	).T("sb", sb).N("consumer", param)

	if optional {
		opt := model.Declared(model.OptionalFQN)
		format.Body.T("optional", opt)
		text.Body.T("optional", opt)
	}
	return []*model.Method{format, text}
}
