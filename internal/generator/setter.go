package generator

import (
	"github.com/cmmoran/buildergen/internal/model"
	"github.com/cmmoran/buildergen/internal/naming"
)

// Setter contributes the plain assignment method every field gets. For an
// Optional field with a usable wrapped type it also contributes an overload
// taking the raw value.
type Setter struct{}

func (Setter) Name() string  { return "setter" }
func (Setter) Priority() int { return PrioritySetter }

func (Setter) AppliesTo(f *model.Field, _ *Context) bool {
	return f.Type != nil
}

func (g Setter) Generate(f *model.Field, ctx *Context) []*model.Method {
	param := naming.Identifier(f.Name)
	name := ctx.SetterName(f)

	m := ctx.Method(g, f, name, model.ParamSpec{
		Name:        param,
		Type:        f.Type,
		Annotations: paramAnnotations(f, ctx.Config),
	})
	m.Body = store(ctx, f, "$value:N").N("value", param)
	m.Doc = f.Doc
	out := []*model.Method{m}

	if f.Shape != nil && f.Shape.Kind == model.ShapeOptional && f.Shape.ElementUsable(ctx.Scope) {
		wrapped := f.Shape.Elem.Ref
		t := ctx.Method(g, f, name, model.ParamSpec{Name: param, Type: wrapped})
		t.Priority = PrioritySetterTransform
		t.Body = store(ctx, f, "$optional:T.ofNullable($value:N)").
			N("value", param).
			T("optional", model.Declared(model.OptionalFQN))
		t.Doc = f.Doc
		out = append(out, t)
	}
	return out
}

// Supplier contributes a setter taking a deferred value.
type Supplier struct{}

func (Supplier) Name() string  { return "supplier" }
func (Supplier) Priority() int { return PrioritySupplier }

func (Supplier) AppliesTo(f *model.Field, ctx *Context) bool {
	if !ctx.Config.Supplier || f.Shape == nil || f.Shape.IsUnbound() {
		return false
	}
	if f.Type.Kind == model.RefDeclared && model.IsFunctionalInterface(ctx.Lookup, f.Type.Name) {
		return false
	}
	return true
}

func (g Supplier) Generate(f *model.Field, ctx *Context) []*model.Method {
	param := naming.SupplierParamName(f.Name)
	arg := f.Type.Boxed()
	if f.Type.Kind == model.RefDeclared || f.Type.Kind == model.RefArray {
		arg = model.Extends(f.Type)
	}
	m := ctx.Method(g, f, ctx.SetterName(f), model.ParamSpec{
		Name: param,
		Type: model.Declared(model.SupplierFQN, arg),
	})
	m.Body = store(ctx, f, "$supplier:N.get()").N("supplier", param)
	return []*model.Method{m}
}
