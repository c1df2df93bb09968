package assembler

import (
	"fmt"

	"github.com/cmmoran/buildergen/internal/generator"
	"github.com/cmmoran/buildergen/internal/model"
	"github.com/cmmoran/buildergen/internal/naming"
)

const withGenerator = "with-interface"

// withInterface declares the mix-in a target may implement to gain
// copy-and-modify methods backed by its builder.
func withInterface(ctx *generator.Context) *model.NestedType {
	cfg := ctx.Config
	target := ctx.Target.Ref(ctx.Scope)
	builderRaw := model.Declared(ctx.Builder.FQN())

	with := &model.Method{
		Name: cfg.WithMethod,
		Params: []model.ParamSpec{{
			Name: naming.ConsumerParamName("builder"),
			Type: model.Declared(model.ConsumerFQN, ctx.Self),
		}},
		Returns:   target,
		Modifiers: model.ModDefault,
		Priority:  generator.BandLifecycle,
		Generator: withGenerator,
		Scope:     ctx.Scope,
		Body: model.NewTemplate(
			"$self:T builder = $builder:T.$from:N(($target:T) this);",
			"builderConsumer.accept(builder);",
			"return builder.$build:N();",
		).
			T("self", ctx.Self).
			T("builder", builderRaw).
			T("target", target).
			N("from", cfg.FromMethod).
			N("build", cfg.BuildMethod),
		Doc: "Returns a copy of this instance with the changes applied by the given callback.",
	}
	toBuilder := &model.Method{
		Name:      cfg.ToBuilderMethod,
		Returns:   ctx.Self,
		Modifiers: model.ModDefault,
		Priority:  generator.BandLifecycle,
		Generator: withGenerator,
		Scope:     ctx.Scope,
		Body: model.NewTemplate("return $builder:T.$from:N(($target:T) this);").
			T("builder", builderRaw).
			T("target", target).
			N("from", cfg.FromMethod),
		Doc: "Returns a builder initialized from this instance.",
	}
	return &model.NestedType{
		Name:       cfg.WithName,
		Kind:       model.DeclInterface,
		Modifiers:  model.ModPublic,
		TypeParams: ctx.Scope,
		Methods:    []*model.Method{with, toBuilder},
		Doc:        fmt.Sprintf("Implemented by {@link %s} to gain builder-backed copy methods.", ctx.Target.Name),
	}
}
