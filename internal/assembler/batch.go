package assembler

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/cmmoran/buildergen/internal/model"
	"github.com/cmmoran/buildergen/pkg/options"
)

// Targets returns the classes carrying the target marker, in input order.
func Targets(classes []*model.RawClass, cfg options.Config) []*model.RawClass {
	var out []*model.RawClass
	for _, c := range classes {
		if !c.Library && model.HasAnnotation(c.Annotations, cfg.TargetMarker) {
			out = append(out, c)
		}
	}
	return out
}

// AssembleAll assembles every class with at most workers in flight. A failed
// type does not stop the others: the successful definitions are returned
// in input order together with the joined per-type errors.
func (a *Assembler) AssembleAll(ctx context.Context, classes []*model.RawClass, base options.Config, workers int) ([]*model.BuilderDefinition, error) {
	if workers <= 0 {
		workers = 1
	}
	defs := make([]*model.BuilderDefinition, len(classes))
	errs := make([]error, len(classes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range classes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			def, err := a.Assemble(c, base)
			if err != nil {
				a.log.Error("builder not generated", "type", c.FQN(), "error", err)
				errs[i] = err
				return nil
			}
			defs[i] = def
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*model.BuilderDefinition, 0, len(defs))
	for _, d := range defs {
		if d != nil {
			out = append(out, d)
		}
	}
	return out, errors.Join(errs...)
}
