package generate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmmoran/buildergen/internal/assembler"
	"github.com/cmmoran/buildergen/internal/emit"
	"github.com/cmmoran/buildergen/internal/generator"
	"github.com/cmmoran/buildergen/internal/model"
	"github.com/cmmoran/buildergen/internal/parser"
	"github.com/cmmoran/buildergen/pkg/options"
)

// Result summarizes a generation run.
type Result struct {
	Definitions []*model.BuilderDefinition
	Files       []string
	Module      string
}

// Generate loads the descriptors under opts.InDir, assembles a builder for
// every marked type and writes the definitions plus the module descriptor
// to opts.OutDir. Types that fail are reported in the returned error; the
// others are still written.
func Generate(ctx context.Context, opts *options.Options) (*Result, error) {
	log := slog.Default()
	par, err := parser.NewWithOpts(opts)
	if err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}
	par.WithLogger(log)
	if err = par.Parse(); err != nil {
		return nil, err
	}

	registry, err := Registry(par.Opts.GeneratorManifest)
	if err != nil {
		return nil, err
	}

	u := par.Universe()
	cfg := par.Opts.Builder
	asm := assembler.New(u, assembler.WithRegistry(registry), assembler.WithLogger(log))
	defs, assembleErr := asm.AssembleAll(ctx, assembler.Targets(u.Classes(), cfg), cfg, par.Opts.Workers)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Definitions: defs}
	w := emit.NewWriter(par.Opts.OutDir, par.Opts.Format)
	for _, def := range defs {
		path, err := w.WriteDefinition(def)
		if err != nil {
			return res, err
		}
		res.Files = append(res.Files, path)
	}
	md := model.NewModuleDescriptor(modulePackage(defs, cfg), defs)
	if res.Module, err = w.WriteModule(par.Opts.ModuleFile, md); err != nil {
		return res, err
	}
	log.With("builders", len(defs), "out", par.Opts.OutDir).Info("generation finished")
	return res, assembleErr
}

// Registry returns the default registry narrowed by the generator manifest
// at path, if any.
func Registry(path string) (*generator.Registry, error) {
	if path == "" {
		return generator.Default(), nil
	}
	m, err := generator.LoadManifest(path)
	if err != nil {
		return nil, err
	}
	return m.Apply(generator.Default())
}

// modulePackage is the longest package prefix shared by every builder.
func modulePackage(defs []*model.BuilderDefinition, cfg options.Config) string {
	if len(defs) == 0 {
		return cfg.RuntimePackage
	}
	common := strings.Split(defs[0].Builder.Package, ".")
	for _, d := range defs[1:] {
		parts := strings.Split(d.Builder.Package, ".")
		n := 0
		for n < len(common) && n < len(parts) && common[n] == parts[n] {
			n++
		}
		common = common[:n]
	}
	if len(common) == 0 || common[0] == "" {
		return cfg.RuntimePackage
	}
	return strings.Join(common, ".")
}
