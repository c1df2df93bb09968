// Package extract discovers the constructible fields of a target type from
// its constructor parameters and setter methods.
package extract

import (
	"log/slog"

	"github.com/cmmoran/buildergen/internal/model"
	"github.com/cmmoran/buildergen/internal/naming"
	"github.com/cmmoran/buildergen/internal/shape"
	"github.com/cmmoran/buildergen/pkg/options"
)

// Result holds the fields of one target, in discovery order.
type Result struct {
	Constructor *model.RawConstructor
	// Arguments has one entry per parameter of Constructor, including
	// parameters that did not become fields.
	Arguments    []Argument
	Constructors []*model.Field
	Setters      []*model.Field
}

// Argument is one positional parameter of the selected constructor. Field
// is nil when the parameter was dropped.
type Argument struct {
	Position int
	Param    model.RawParam
	Field    *model.Field
}

// Dropped reports whether the argument has no backing field.
func (a Argument) Dropped() bool { return a.Field == nil }

type Extractor struct {
	lookup     model.Lookup
	classifier *shape.Classifier
	log        *slog.Logger
}

func New(lookup model.Lookup, classifier *shape.Classifier, log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{lookup: lookup, classifier: classifier, log: log}
}

// Extract returns constructor-derived and setter-derived fields of c.
// Fields that cannot be represented are dropped with a warning.
func (e *Extractor) Extract(c *model.RawClass, cfg options.Config) Result {
	l := e.log.With("type", c.FQN())
	var res Result

	ctor := SelectConstructor(c, cfg)
	res.Constructor = ctor
	seen := map[string]bool{}
	if ctor != nil {
		for i, p := range ctor.Params {
			arg := Argument{Position: i, Param: p}
			res.Arguments = append(res.Arguments, arg)
			if seen[p.Name] {
				l.Warn("duplicate constructor parameter dropped", "field", p.Name, "position", i)
				continue
			}
			f, ok := e.field(l, c, cfg, p, model.FromConstructor)
			if !ok {
				continue
			}
			seen[f.Name] = true
			res.Arguments[i].Field = f
			res.Constructors = append(res.Constructors, f)
		}
	}

	setterOf := map[string]string{}

	for i := range c.Methods {
		m := &c.Methods[i]
		if !e.isSetter(l, c, cfg, m) {
			continue
		}
		name := naming.PropertyFromSetter(m.Name)
		if seen[name] {
			if kept, ok := setterOf[name]; ok {
				l.Warn("setter overload dropped; field already bound to another setter",
					"field", name, "kept", kept, "dropped", setterText(m))
			} else {
				l.Debug("setter covered by constructor field", "field", name, "setter", m.Name)
			}
			continue
		}
		p := m.Params[0]
		p.Name = name
		if p.Doc == "" {
			p.Doc = m.Doc
		}
		p.Annotations = append(append([]model.Annotation{}, p.Annotations...), m.Annotations...)
		f, ok := e.field(l, c, cfg, p, model.FromSetter)
		if !ok {
			continue
		}
		f.Setter = m.Name
		seen[name] = true
		setterOf[name] = setterText(m)
		res.Setters = append(res.Setters, f)
	}
	return res
}

// SelectConstructor picks the marked constructor, else the one with the
// most parameters (first declared on ties). Private constructors are never
// selected. It returns nil when no constructor has parameters.
func SelectConstructor(c *model.RawClass, cfg options.Config) *model.RawConstructor {
	var best *model.RawConstructor
	for i := range c.Constructors {
		ctor := &c.Constructors[i]
		if ctor.Modifiers.Has(model.ModPrivate) {
			continue
		}
		if model.HasAnnotation(ctor.Annotations, cfg.ConstructorMarker) {
			return ctor
		}
		if best == nil || len(ctor.Params) > len(best.Params) {
			best = ctor
		}
	}
	if best == nil || len(best.Params) == 0 {
		return nil
	}
	return best
}

func (e *Extractor) isSetter(l *slog.Logger, c *model.RawClass, cfg options.Config, m *model.RawMethod) bool {
	switch {
	case m.DeclaredBy == model.ObjectFQN:
		return false
	case !naming.IsSetterName(m.Name) || len(m.Params) != 1 || !m.IsVoid():
		return false
	case m.Modifiers.Has(model.ModPrivate) || m.Modifiers.Has(model.ModStatic):
		return false
	case model.HasAnnotation(m.Annotations, cfg.IgnoreMarker) || cfg.MethodExcluded(c.FQN(), m.Name):
		l.Debug("setter excluded", "setter", m.Name)
		return false
	}
	for _, t := range m.Throws {
		if !model.IsUncheckedException(e.lookup, t) {
			l.Debug("setter declares checked exception", "setter", m.Name, "throws", t.String())
			return false
		}
	}
	if len(m.TypeParams) > 0 {
		l.Warn("setter declares its own type parameters and cannot be a builder field",
			"setter", m.Name, "typeParams", len(m.TypeParams))
		return false
	}
	return true
}

func (e *Extractor) field(l *slog.Logger, c *model.RawClass, cfg options.Config, p model.RawParam, origin model.Origin) (*model.Field, bool) {
	typ := p.Type
	if p.Varargs && typ != nil && typ.Kind != model.RefArray {
		typ = model.ArrayOf(typ)
	}
	s, err := e.classifier.Classify(typ)
	if err != nil {
		l.Warn("field dropped: type cannot be classified", "field", p.Name, "origin", origin.String(), "error", err)
		return nil, false
	}

	f := &model.Field{
		Name:        p.Name,
		Type:        typ,
		Shape:       s,
		Doc:         p.Doc,
		Origin:      origin,
		Annotations: p.Annotations,
		NonNull:     isNonNull(cfg, p, typ),
	}
	f.Getter = FindGetter(c, f.Name, typ)
	if f.Getter == "" {
		l.Warn("no accessor matches field; builder cannot be initialized from an instance for it",
			"field", f.Name, "origin", origin.String())
	}
	return f, true
}

func isNonNull(cfg options.Config, p model.RawParam, typ *model.TypeRef) bool {
	if typ.Kind == model.RefPrimitive {
		return true
	}
	for _, a := range append(append([]model.Annotation{}, p.Annotations...), typ.Annotations...) {
		if cfg.IsNonNullMarker(a.SimpleName()) {
			return true
		}
	}
	return false
}

// FindGetter returns the accessor for a field: is<Name> is preferred over
// get<Name>, and records also accept <name>(). The return type must match
// the field type exactly.
func FindGetter(c *model.RawClass, field string, typ *model.TypeRef) string {
	candidates := []string{naming.BooleanGetterName(field), naming.GetterName(field)}
	if c.Kind == model.DeclRecord {
		candidates = append(candidates, field)
	}
	for _, name := range candidates {
		for i := range c.Methods {
			m := &c.Methods[i]
			if m.Name != name || len(m.Params) != 0 || m.IsVoid() {
				continue
			}
			if m.Modifiers.Has(model.ModPrivate) || m.Modifiers.Has(model.ModStatic) {
				continue
			}
			if m.Returns.Equal(typ) {
				return name
			}
		}
	}
	return ""
}

func setterText(m *model.RawMethod) string {
	return m.Name + "(" + m.Params[0].Type.String() + ")"
}
