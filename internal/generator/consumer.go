package generator

import (
	"github.com/cmmoran/buildergen/internal/model"
	"github.com/cmmoran/buildergen/internal/naming"
)

// InPlaceConsumer lets callers mutate a field value in place. The value is
// created with its no-arg constructor when the field is still unset.
type InPlaceConsumer struct{}

func (InPlaceConsumer) Name() string  { return "consumer" }
func (InPlaceConsumer) Priority() int { return PriorityInPlaceConsumer }

func (InPlaceConsumer) AppliesTo(f *model.Field, ctx *Context) bool {
	if !ctx.Config.Consumer || f.Shape == nil || !f.Shape.IsDeclared() || f.Shape.Kind == model.ShapeOptional {
		return false
	}
	decl, ok := ctx.Lookup.Lookup(f.Type.Name)
	if !ok || decl.Library || model.IsLibraryPackage(decl.Package) {
		return false
	}
	if decl.Kind != model.DeclClass || decl.IsAbstract() {
		return false
	}
	if _, nested := ctx.BuilderFor(f.Type); nested && ctx.Config.NestedBuilder {
		return false
	}
	return decl.HasAccessibleNoArgConstructor(ctx.Target.Package)
}

func (g InPlaceConsumer) Generate(f *model.Field, ctx *Context) []*model.Method {
	param := naming.ConsumerParamName(f.Name)
	m := ctx.Method(g, f, ctx.SetterName(f), model.ParamSpec{
		Name: param,
		Type: model.Declared(model.ConsumerFQN, f.Type),
	})
	m.Body = store(ctx, f, "current",
		"$type:T current = this.$field:N != null ? this.$field:N : new $type:T();",
		"$consumer:N.accept(current);",
	).T("type", f.Type).N("consumer", param)
	return []*model.Method{m}
}

// NestedBuilderConsumer configures a field whose type has its own generated
// builder through a callback receiving that builder.
type NestedBuilderConsumer struct{}

func (NestedBuilderConsumer) Name() string  { return "nested-builder" }
func (NestedBuilderConsumer) Priority() int { return PriorityNestedBuilder }

func (NestedBuilderConsumer) AppliesTo(f *model.Field, ctx *Context) bool {
	if !ctx.Config.NestedBuilder || f.Shape == nil || f.Shape.IsCollection() || f.Shape.Kind == model.ShapeMap || f.Shape.Kind == model.ShapeOptional {
		return false
	}
	_, ok := ctx.BuilderFor(f.Type)
	return ok
}

func (g NestedBuilderConsumer) Generate(f *model.Field, ctx *Context) []*model.Method {
	nb, _ := ctx.BuilderFor(f.Type)
	param := naming.BuilderParamName(f.Name)
	m := ctx.Method(g, f, ctx.SetterName(f), model.ParamSpec{
		Name: param,
		Type: model.Declared(model.ConsumerFQN, nb.Ref),
	})
	m.Body = store(ctx, f, "builder.$build:N()",
		"$builder:T builder = this.$field:N != null ? $builderRaw:T.$from:N(this.$field:N) : $builderRaw:T.$factory:N();",
		"$consumer:N.accept(builder);",
	).
		T("builder", nb.Ref).
		T("builderRaw", nb.Raw).
		N("from", nb.Config.FromMethod).
		N("factory", nb.Config.FactoryMethod).
		N("build", nb.Config.BuildMethod).
		N("consumer", param)
	return []*model.Method{m}
}
