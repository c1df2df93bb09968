// Package parser loads structural-model descriptors into a model.Universe.
package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cmmoran/buildergen/internal/model"
	"github.com/cmmoran/buildergen/pkg/options"
)

var ErrDescriptor = errors.New("invalid descriptor")

var validate = validator.New()

type source struct {
	name string
	desc *Descriptor
}

// Parser holds state/results of a load run.
type Parser struct {
	Opts options.Options

	sources  []source
	universe *model.Universe
	log      *slog.Logger
}

// New creates a parser with opts applied over the defaults.
func New(opts ...options.Option) (*Parser, error) {
	o := options.NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	return NewWithOpts(o)
}

func NewWithOpts(opts *options.Options) (*Parser, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}
	return &Parser{
		Opts:     *opts,
		universe: model.NewUniverse(),
		log:      slog.Default(),
	}, nil
}

// WithLogger replaces the parser's logger.
func (p *Parser) WithLogger(l *slog.Logger) *Parser {
	p.log = l
	return p
}

// Universe returns every declaration loaded so far plus the built-ins.
func (p *Parser) Universe() *model.Universe { return p.universe }

// Parse reads every descriptor under Opts.InDir and loads it. Files are
// visited in lexical order; the output directory is skipped.
func (p *Parser) Parse() error {
	var files []string
	err := filepath.WalkDir(p.Opts.InDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != p.Opts.InDir && (sameDir(path, p.Opts.OutDir) || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml", ".json":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		if err := p.AddSource(f, data); err != nil {
			return err
		}
	}
	return p.Load()
}

func sameDir(a, b string) bool {
	if b == "" {
		return false
	}
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}

// AddSource decodes one descriptor. Files that declare no types are
// ignored so that configuration files may share the input directory.
func (p *Parser) AddSource(name string, data []byte) error {
	d, err := Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDescriptor, name, err)
	}
	if len(d.Types) == 0 {
		p.log.Debug("skipping file without type declarations", "file", name)
		return nil
	}
	p.sources = append(p.sources, source{name: name, desc: d})
	return nil
}

// Load converts every added descriptor and registers the result. Names
// declared anywhere in the run are visible to every file.
func (p *Parser) Load() error {
	declared := map[string]bool{}
	for _, src := range p.sources {
		for _, t := range src.desc.Types {
			declared[qualified(src.desc.Package, t.Name)] = true
		}
	}
	known := func(fqn string) bool {
		if declared[fqn] {
			return true
		}
		_, ok := p.universe.Lookup(fqn)
		return ok
	}

	var errs []error
	for _, src := range p.sources {
		s := newScope(src.desc.Package, src.desc.Imports, known)
		for _, t := range src.desc.Types {
			c, err := convertType(s, src.desc.Package, t)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s: %s: %v", ErrDescriptor, src.name, t.Name, err))
				continue
			}
			if err := p.universe.Add(c); err != nil {
				errs = append(errs, fmt.Errorf("%w: %s: %v", ErrDescriptor, src.name, err))
				continue
			}
			p.log.Debug("type loaded", "type", c.FQN(), "file", src.name,
				"constructors", len(c.Constructors), "methods", len(c.Methods))
		}
	}
	p.sources = nil
	return errors.Join(errs...)
}

func qualified(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

func convertType(s *scope, pkg string, t TypeDesc) (*model.RawClass, error) {
	kind, ok := model.ParseDeclKind(t.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", t.Kind)
	}
	mods, err := modifiers(t.Modifiers)
	if err != nil {
		return nil, err
	}
	params, err := s.parseTypeParams(t.TypeParams)
	if err != nil {
		return nil, err
	}
	inner := s.with(params)

	c := &model.RawClass{
		Package:     pkg,
		Name:        t.Name,
		Kind:        kind,
		Modifiers:   mods,
		TypeParams:  params,
		Annotations: annotations(t.Annotations),
		Doc:         t.Doc,
		Library:     t.Library,
	}
	supers := t.Implements
	if t.Extends != "" {
		supers = append([]string{t.Extends}, supers...)
	}
	for _, expr := range supers {
		ref, _, err := inner.parseType(expr)
		if err != nil {
			return nil, err
		}
		if ref.Kind != model.RefDeclared {
			return nil, fmt.Errorf("supertype %q is not a declared type", expr)
		}
		c.Supertypes = append(c.Supertypes, ref)
	}

	for i, ctor := range t.Constructors {
		e, err := executable(inner, ctor)
		if err != nil {
			return nil, fmt.Errorf("constructor %d: %w", i, err)
		}
		c.Constructors = append(c.Constructors, model.RawConstructor{
			Params:      e.Params,
			Modifiers:   e.Modifiers,
			Annotations: e.Annotations,
			Throws:      e.Throws,
			Doc:         e.Doc,
		})
	}
	for _, m := range t.Methods {
		if m.Name == "" {
			return nil, fmt.Errorf("method without name")
		}
		e, err := executable(inner, m)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", m.Name, err)
		}
		c.Methods = append(c.Methods, *e)
	}
	return c, nil
}

func executable(s *scope, d ExecutableDesc) (*model.RawMethod, error) {
	mods, err := modifiers(d.Modifiers)
	if err != nil {
		return nil, err
	}
	tparams, err := s.parseTypeParams(d.TypeParams)
	if err != nil {
		return nil, err
	}
	inner := s.with(tparams)

	m := &model.RawMethod{
		Name:        d.Name,
		Modifiers:   mods,
		Annotations: annotations(d.Annotations),
		TypeParams:  tparams,
		Doc:         d.Doc,
	}
	if d.DeclaredBy != "" {
		ref, _, err := inner.parseType(d.DeclaredBy)
		if err != nil {
			return nil, err
		}
		m.DeclaredBy = ref.Name
	}
	if d.Returns != "" && d.Returns != "void" {
		if m.Returns, _, err = inner.parseType(d.Returns); err != nil {
			return nil, err
		}
	}
	for _, th := range d.Throws {
		ref, _, err := inner.parseType(th)
		if err != nil {
			return nil, err
		}
		m.Throws = append(m.Throws, ref)
	}
	for i, p := range d.Params {
		ref, varargs, err := inner.parseType(p.Type)
		if err != nil {
			return nil, err
		}
		if varargs && i != len(d.Params)-1 {
			return nil, fmt.Errorf("parameter %s: only the last parameter may be variable-arity", p.Name)
		}
		m.Params = append(m.Params, model.RawParam{
			Name:        p.Name,
			Type:        ref,
			Varargs:     varargs,
			Annotations: annotations(p.Annotations),
			Doc:         p.Doc,
		})
	}
	return m, nil
}

func modifiers(names []string) (model.Modifier, error) {
	var out model.Modifier
	for _, n := range names {
		m, ok := model.ParseModifier(n)
		if !ok {
			return 0, fmt.Errorf("unknown modifier %q", n)
		}
		out |= m
	}
	return out, nil
}

func annotations(ds []AnnotationDesc) []model.Annotation {
	if len(ds) == 0 {
		return nil
	}
	out := make([]model.Annotation, 0, len(ds))
	for _, d := range ds {
		out = append(out, model.Annotation{Name: strings.TrimPrefix(d.Name, "@"), Values: d.Values})
	}
	return out
}
