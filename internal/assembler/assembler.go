// Package assembler turns a target type into a complete BuilderDefinition:
// it validates the target, extracts fields, runs the generators, resolves
// conflicts and adds the lifecycle methods.
package assembler

import (
	"fmt"
	"log/slog"

	"github.com/cmmoran/buildergen/internal/extract"
	"github.com/cmmoran/buildergen/internal/generator"
	"github.com/cmmoran/buildergen/internal/model"
	"github.com/cmmoran/buildergen/internal/resolve"
	"github.com/cmmoran/buildergen/internal/shape"
	"github.com/cmmoran/buildergen/pkg/options"
)

type Assembler struct {
	lookup     model.Lookup
	classifier *shape.Classifier
	extractor  *extract.Extractor
	registry   *generator.Registry
	resolver   *resolve.Resolver
	log        *slog.Logger
}

type Option func(*Assembler)

func WithRegistry(r *generator.Registry) Option { return func(a *Assembler) { a.registry = r } }
func WithLogger(l *slog.Logger) Option          { return func(a *Assembler) { a.log = l } }

// New builds an assembler over lookup. Everything it holds is read-only or
// internally synchronized, so one assembler may serve many goroutines.
func New(lookup model.Lookup, opts ...Option) *Assembler {
	a := &Assembler{lookup: lookup, log: slog.Default()}
	for _, o := range opts {
		o(a)
	}
	if a.registry == nil {
		a.registry = generator.Default()
	}
	a.classifier = shape.NewClassifier(lookup)
	a.extractor = extract.New(lookup, a.classifier, a.log)
	a.resolver = resolve.New(a.log)
	return a
}

// Config resolves the effective configuration of c: base overridden by the
// values of the options marker on the type.
func (a *Assembler) Config(c *model.RawClass, base options.Config) (options.Config, error) {
	ann, ok := model.FindAnnotation(c.Annotations, base.OptionsMarker)
	if !ok {
		return base, nil
	}
	return base.Override(ann.Values)
}

// Validate reports whether c can receive a builder.
func Validate(c *model.RawClass, cfg options.Config) error {
	switch {
	case c.Kind != model.DeclClass && c.Kind != model.DeclRecord:
		return targetError(c.FQN(), fmt.Sprintf("%s cannot have a builder; only classes and records can", c.Kind), nil)
	case c.IsAbstract():
		return targetError(c.FQN(), "abstract class cannot have a builder", nil)
	}
	if extract.SelectConstructor(c, cfg) == nil && !c.HasAccessibleNoArgConstructor(c.Package) {
		return targetError(c.FQN(), "no accessible constructor", nil)
	}
	return nil
}

// Assemble builds the definition for one target type.
func (a *Assembler) Assemble(c *model.RawClass, base options.Config) (*model.BuilderDefinition, error) {
	cfg, err := a.Config(c, base)
	if err != nil {
		return nil, targetError(c.FQN(), "invalid builder options", err)
	}
	if err := Validate(c, cfg); err != nil {
		return nil, err
	}
	l := a.log.With("type", c.FQN())

	fields := a.extractor.Extract(c, cfg)
	ctx := generator.NewContext(c, cfg, a.lookup)
	def := &model.BuilderDefinition{
		Target:            ctx.Target,
		Builder:           ctx.Builder,
		TypeParams:        c.TypeParams,
		ConstructorFields: fields.Constructors,
		SetterFields:      fields.Setters,
		Config:            cfg,
		Doc:               fmt.Sprintf("Builder for {@link %s}.", c.Name),
	}

	for _, a := range fields.Arguments {
		if a.Dropped() {
			l.Warn("constructor argument has no builder field; build() passes its default value",
				"position", a.Position, "param", a.Param.Name, "paramType", a.Param.Type.String())
		}
	}
	candidates := lifecycle(ctx, def, fields)
	for _, f := range def.AllFields() {
		candidates = append(candidates, a.registry.Generate(f, ctx)...)
	}
	methods, drops := a.resolver.Resolve(c.FQN(), candidates)
	def.Methods = methods
	for _, f := range def.AllFields() {
		f.Methods = nil
	}
	for _, m := range methods {
		if f, ok := def.Field(m.Field); ok && m.Generator != lifecycleGenerator {
			f.Methods = append(f.Methods, m)
		}
	}

	for _, f := range def.AllFields() {
		def.Fields = append(def.Fields, model.BuilderField{Name: f.Name, Type: storageType(f.Type)})
	}
	def.Constructors = []*model.Method{{
		Name:      ctx.Builder.Name,
		Modifiers: model.ModPrivate,
		Body:      model.NewTemplate(),
		Priority:  generator.BandLifecycle,
		Generator: lifecycleGenerator,
	}}
	if cfg.WithInterface {
		def.Nested = append(def.Nested, withInterface(ctx))
	}

	l.Info("builder assembled",
		"builder", def.Builder.FQN(),
		"constructorFields", len(def.ConstructorFields),
		"setterFields", len(def.SetterFields),
		"methods", len(def.Methods),
		"dropped", len(drops))
	return def, nil
}

// storageType boxes primitives so that an unset slot is distinguishable
// from a zero value.
func storageType(t *model.TypeRef) *model.TypeRef {
	if t.Kind == model.RefPrimitive {
		return t.Boxed()
	}
	return t
}
