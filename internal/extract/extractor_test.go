package extract

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/buildergen/internal/model"
	mt "github.com/cmmoran/buildergen/internal/model/modeltest"
	"github.com/cmmoran/buildergen/internal/shape"
	"github.com/cmmoran/buildergen/pkg/options"
)

func newExtractor(t *testing.T, u *model.Universe) (*Extractor, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(u, shape.NewClassifier(u), log), &buf
}

func names(fields []*model.Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Name)
	}
	return out
}

func TestExtractProject(t *testing.T) {
	u := mt.Universe(t)
	e, _ := newExtractor(t, u)
	project, _ := u.Lookup("com.acme.Project")

	res := e.Extract(project, options.DefaultConfig())
	require.NotNil(t, res.Constructor)
	assert.Equal(t, []string{"name", "tasks"}, names(res.Constructors))
	assert.Equal(t, []string{"owner", "email", "metadata", "tags", "scores", "lead", "onClose", "priority"}, names(res.Setters))

	name := res.Constructors[0]
	assert.True(t, name.NonNull)
	assert.Equal(t, "getName", name.Getter)
	assert.Equal(t, model.FromConstructor, name.Origin)

	priority := res.Setters[len(res.Setters)-1]
	assert.True(t, priority.NonNull, "primitives are never null")
	assert.Equal(t, "setPriority", priority.Setter)
	assert.Equal(t, model.FromSetter, priority.Origin)

	onClose := res.Setters[6]
	assert.Empty(t, onClose.Getter)
}

func TestExtractSetterCoveredByConstructor(t *testing.T) {
	u := model.NewUniverse()
	c := mt.Task()
	c.Methods = append(c.Methods, mt.Setter("setTitle", mt.String))
	require.NoError(t, u.Add(c))
	e, buf := newExtractor(t, u)

	res := e.Extract(c, options.DefaultConfig())
	assert.Equal(t, []string{"title"}, names(res.Constructors))
	assert.Equal(t, []string{"done"}, names(res.Setters))
	assert.Contains(t, buf.String(), "setter covered by constructor field")
}

func TestExtractRejectsSetters(t *testing.T) {
	generic := mt.Setter("setGeneric", model.TypeVar("U"))
	generic.TypeParams = []model.GenericParam{{Name: "U"}}

	checked := mt.Setter("setChecked", mt.String)
	checked.Throws = []*model.TypeRef{model.Declared("java.io.IOException")}

	unchecked := mt.Setter("setUnchecked", mt.String)
	unchecked.Throws = []*model.TypeRef{model.Declared("java.lang.IllegalArgumentException")}

	ignored := mt.Setter("setIgnored", mt.String)
	ignored.Annotations = []model.Annotation{{Name: "BuilderIgnore"}}

	static := mt.Setter("setStatic", mt.String)
	static.Modifiers |= model.ModStatic

	private := mt.Setter("setHidden", mt.String)
	private.Modifiers = model.ModPrivate

	fluent := mt.Setter("setFluent", mt.String)
	fluent.Returns = mt.Ref("Thing")

	inherited := mt.Setter("setInherited", mt.String)
	inherited.DeclaredBy = model.ObjectFQN

	c := &model.RawClass{
		Package: mt.Pkg,
		Name:    "Thing",
		Methods: []model.RawMethod{
			generic, checked, unchecked, ignored, static, private, fluent, inherited,
			mt.Setter("setInternalId", mt.String),
			mt.Setter("setVisible", mt.Bool),
		},
	}
	u := model.NewUniverse()
	require.NoError(t, u.Add(c))
	e, buf := newExtractor(t, u)

	cfg := options.DefaultConfig()
	cfg.ExcludeMethods = []string{"setInternal*"}
	res := e.Extract(c, cfg)
	assert.Nil(t, res.Constructor)
	assert.Empty(t, res.Constructors)
	assert.Equal(t, []string{"unchecked", "visible"}, names(res.Setters))
	assert.Contains(t, buf.String(), "own type parameters")
}

func TestSelectConstructor(t *testing.T) {
	cfg := options.DefaultConfig()
	two := model.RawConstructor{Modifiers: model.ModPublic, Params: []model.RawParam{mt.Param("a", mt.String), mt.Param("b", mt.String)}}
	one := model.RawConstructor{Modifiers: model.ModPublic, Params: []model.RawParam{mt.Param("a", mt.String)}}
	marked := one
	marked.Annotations = []model.Annotation{{Name: "com.acme.BuilderConstructor"}}
	hidden := model.RawConstructor{Modifiers: model.ModPrivate, Params: []model.RawParam{mt.Param("a", mt.String), mt.Param("b", mt.String), mt.Param("c", mt.String)}}

	tests := []struct {
		name  string
		ctors []model.RawConstructor
		want  int // parameter count, -1 for none
	}{
		{"none", nil, -1},
		{"no-arg only", []model.RawConstructor{{Modifiers: model.ModPublic}}, -1},
		{"largest wins", []model.RawConstructor{one, two}, 2},
		{"marker wins", []model.RawConstructor{two, marked}, 1},
		{"private skipped", []model.RawConstructor{hidden, one}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectConstructor(&model.RawClass{Name: "X", Constructors: tt.ctors}, cfg)
			if tt.want < 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Len(t, got.Params, tt.want)
		})
	}
}

func TestFindGetter(t *testing.T) {
	c := &model.RawClass{
		Name: "Flags",
		Methods: []model.RawMethod{
			mt.Getter("getActive", mt.Bool),
			mt.Getter("isActive", mt.Bool),
			mt.Getter("getCount", mt.String),
		},
	}
	assert.Equal(t, "isActive", FindGetter(c, "active", mt.Bool))
	assert.Empty(t, FindGetter(c, "count", mt.Int), "return type must match")

	rec := &model.RawClass{Name: "Point", Kind: model.DeclRecord, Methods: []model.RawMethod{mt.Getter("x", mt.Int)}}
	assert.Equal(t, "x", FindGetter(rec, "x", mt.Int))
}

func TestExtractVarargsAndUnclassifiable(t *testing.T) {
	c := &model.RawClass{
		Package: mt.Pkg,
		Name:    "Args",
		Constructors: []model.RawConstructor{{
			Modifiers: model.ModPublic,
			Params: []model.RawParam{
				{Name: "values", Type: mt.String, Varargs: true},
				{Name: "broken", Type: model.Primitive("word")},
			},
		}},
	}
	u := model.NewUniverse()
	require.NoError(t, u.Add(c))
	e, buf := newExtractor(t, u)

	res := e.Extract(c, options.DefaultConfig())
	require.Len(t, res.Constructors, 1)
	assert.Equal(t, model.ShapeArray, res.Constructors[0].Shape.Kind)
	assert.Contains(t, buf.String(), "type cannot be classified")
}

func TestExtractSetterOverloadKeepsFirst(t *testing.T) {
	c := &model.RawClass{
		Package: mt.Pkg,
		Name:    "Gauge",
		Methods: []model.RawMethod{
			mt.Setter("setValue", mt.String),
			mt.Setter("setValue", mt.Int),
		},
	}
	u := model.NewUniverse()
	require.NoError(t, u.Add(c))
	e, buf := newExtractor(t, u)

	res := e.Extract(c, options.DefaultConfig())
	require.Len(t, res.Setters, 1)
	assert.Equal(t, "java.lang.String", res.Setters[0].Type.String())

	logged := buf.String()
	assert.Contains(t, logged, `"level":"WARN"`)
	assert.Contains(t, logged, `"kept":"setValue(java.lang.String)"`)
	assert.Contains(t, logged, `"dropped":"setValue(int)"`)
	assert.NotContains(t, logged, "setter covered by constructor field")
}

func TestExtractKeepsConstructorPositions(t *testing.T) {
	ctor := model.RawConstructor{
		Modifiers: model.ModPublic,
		Params: []model.RawParam{
			mt.Param("name", mt.String),
			mt.Param("broken", model.Primitive("void")),
			mt.Param("count", mt.Int),
			mt.Param("name", mt.String),
		},
	}
	c := &model.RawClass{Package: mt.Pkg, Name: "Args", Constructors: []model.RawConstructor{ctor}}
	u := model.NewUniverse()
	require.NoError(t, u.Add(c))
	e, _ := newExtractor(t, u)

	res := e.Extract(c, options.DefaultConfig())
	assert.Equal(t, []string{"name", "count"}, names(res.Constructors))
	require.Len(t, res.Arguments, 4)
	var dropped []int
	for i, a := range res.Arguments {
		assert.Equal(t, i, a.Position)
		if a.Dropped() {
			dropped = append(dropped, i)
		}
	}
	assert.Equal(t, []int{1, 3}, dropped)
	assert.Same(t, res.Constructors[1], res.Arguments[2].Field)
}
