package assembler

import (
	"bufio"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/cmmoran/buildergen/internal/generator"
	"github.com/cmmoran/buildergen/internal/model"
	mt "github.com/cmmoran/buildergen/internal/model/modeltest"
	"github.com/cmmoran/buildergen/internal/parser"
	"github.com/cmmoran/buildergen/pkg/options"
)

// TestFixtures runs every archive under testdata. The model files are
// loaded as descriptors; the "want" file lists expectations:
//
//	builder <fqn>   subsequent lines apply to this builder
//	<signature>     the method exists
//	!<signature>    the method does not exist
//	nested <name>   the builder declares this nested type (!nested for absent)
//	error <text>    the joined error contains text
func TestFixtures(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			require.NoError(t, err)

			p, err := parser.New()
			require.NoError(t, err)
			var want string
			for _, f := range ar.Files {
				if f.Name == "want" {
					want = string(f.Data)
					continue
				}
				require.NoError(t, p.AddSource(f.Name, f.Data))
			}
			require.NoError(t, p.Load())

			u := p.Universe()
			cfg := options.DefaultConfig()
			defs, err := New(u).AssembleAll(context.Background(), Targets(u.Classes(), cfg), cfg, 4)
			byName := map[string]*model.BuilderDefinition{}
			for _, d := range defs {
				byName[d.Builder.FQN()] = d
			}
			checkWant(t, want, byName, err)
		})
	}
}

func checkWant(t *testing.T, want string, defs map[string]*model.BuilderDefinition, err error) {
	t.Helper()
	var (
		cur      *model.BuilderDefinition
		wantErrs int
	)
	sc := bufio.NewScanner(strings.NewReader(want))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
		case strings.HasPrefix(line, "error "):
			wantErrs++
			require.Error(t, err)
			assert.Contains(t, err.Error(), strings.TrimPrefix(line, "error "))
		case strings.HasPrefix(line, "builder "):
			name := strings.TrimPrefix(line, "builder ")
			var ok bool
			cur, ok = defs[name]
			require.True(t, ok, "builder %s not generated", name)
		default:
			require.NotNil(t, cur, "expectation %q before any builder line", line)
			negate := strings.HasPrefix(line, "!")
			line = strings.TrimPrefix(line, "!")
			var found bool
			if nested, ok := strings.CutPrefix(line, "nested "); ok {
				for _, n := range cur.Nested {
					found = found || n.Name == nested
				}
			} else {
				for _, m := range cur.Methods {
					found = found || m.Signature() == line
				}
			}
			assert.Equal(t, !negate, found, "%s: %s", cur.Builder.FQN(), sc.Text())
		}
	}
	require.NoError(t, sc.Err())
	if wantErrs == 0 {
		assert.NoError(t, err)
	}
}

func assemble(t *testing.T, fqn string) *model.BuilderDefinition {
	t.Helper()
	u := mt.Universe(t)
	c, ok := u.Lookup(fqn)
	require.True(t, ok)
	def, err := New(u).Assemble(c, options.DefaultConfig())
	require.NoError(t, err)
	return def
}

func method(t *testing.T, def *model.BuilderDefinition, sig string) *model.Method {
	t.Helper()
	for _, m := range def.Methods {
		if m.Signature() == sig {
			return m
		}
	}
	t.Fatalf("%s has no method %s", def.Builder.FQN(), sig)
	return nil
}

func TestAssembleDeterministic(t *testing.T) {
	render := func(def *model.BuilderDefinition) []string {
		var out []string
		for _, m := range def.Methods {
			out = append(out, m.Signature()+" "+m.Generator+"\n"+m.Body.Expand())
		}
		return out
	}
	first := render(assemble(t, "com.acme.Project"))
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, render(assemble(t, "com.acme.Project"))); diff != "" {
			t.Fatalf("assembly is not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestAssembleProject(t *testing.T) {
	def := assemble(t, "com.acme.Project")

	assert.Equal(t, "com.acme.ProjectBuilder", def.Builder.FQN())
	assert.Len(t, def.ConstructorFields, 2)
	assert.Equal(t, def.Methods[0].Priority, generator.BandLifecycle)

	email, ok := def.Field("email")
	require.True(t, ok)
	var sigs []string
	for _, m := range email.Methods {
		sigs = append(sigs, m.Signature())
	}
	assert.ElementsMatch(t, []string{
		"email(java.util.Optional)",
		"email(java.lang.String)",
		"email(java.util.function.Supplier)",
		"email(java.lang.String,java.lang.Object[])",
		"email(java.util.function.Consumer)",
	}, sigs)

	var storage []string
	for _, f := range def.Fields {
		storage = append(storage, f.Name+" "+f.Type.String())
	}
	assert.Contains(t, storage, "priority java.lang.Integer")
	assert.Contains(t, storage, "tasks java.util.List<com.acme.Task>")

	require.Len(t, def.Constructors, 1)
	assert.True(t, def.Constructors[0].Modifiers.Has(model.ModPrivate))
}

func TestLifecycleBodies(t *testing.T) {
	def := assemble(t, "com.acme.Project")

	from := method(t, def, "from(com.acme.Project)")
	assert.True(t, from.Modifiers.Has(model.ModStatic))
	body := from.Body.Expand()
	assert.Contains(t, body, `builder.name = java.util.Objects.requireNonNull(instance.getName(), "name must not be null");`)
	assert.Contains(t, body, "builder.tasks = instance.getTasks();")
	assert.Contains(t, body, "builder.priority = instance.getPriority();")
	assert.NotContains(t, body, "onClose", "fields without a getter are not copied")

	build := method(t, def, "build()")
	assert.Equal(t, "com.acme.Project", build.Returns.String())
	body = build.Body.Expand()
	assert.Contains(t, body, `java.util.Objects.requireNonNull(this.name, "name must not be null");`)
	assert.Contains(t, body, "com.acme.Project instance = new com.acme.Project(this.name, this.tasks);")
	assert.Contains(t, body, "if (this.owner != null) {\n    instance.setOwner(this.owner);\n}")
	assert.True(t, strings.HasSuffix(body, "return instance;"))

	factory := method(t, def, "builder()")
	assert.Equal(t, "return new com.acme.ProjectBuilder();", factory.Body.Expand())
}

func TestGenericLifecycle(t *testing.T) {
	def := assemble(t, "com.acme.Box")

	factory := method(t, def, "builder()")
	require.Len(t, factory.TypeParams, 1)
	assert.Equal(t, "com.acme.BoxBuilder<T>", factory.Returns.String())
	assert.Equal(t, "return new com.acme.BoxBuilder<>();", factory.Body.Expand())

	build := method(t, def, "build()")
	assert.Empty(t, build.TypeParams)
	assert.Contains(t, build.Body.Expand(), "com.acme.Box<T> instance = new com.acme.Box<>();")
}

func TestWithInterface(t *testing.T) {
	def := assemble(t, "com.acme.Project")
	require.Len(t, def.Nested, 1)
	with := def.Nested[0]
	assert.Equal(t, "With", with.Name)
	assert.Equal(t, model.DeclInterface, with.Kind)
	require.Len(t, with.Methods, 2)
	assert.Equal(t, "with(java.util.function.Consumer)", with.Methods[0].Signature())
	assert.Equal(t,
		"com.acme.ProjectBuilder builder = com.acme.ProjectBuilder.from((com.acme.Project) this);\n"+
			"builderConsumer.accept(builder);\n"+
			"return builder.build();",
		with.Methods[0].Body.Expand())
	assert.Equal(t, "toBuilder", with.Methods[1].Name)
}

func TestLifecycleWinsOverFieldSetter(t *testing.T) {
	u := model.NewUniverse()
	c := &model.RawClass{
		Package:     mt.Pkg,
		Name:        "Copy",
		Annotations: []model.Annotation{{Name: "GenerateBuilder"}},
		Methods:     []model.RawMethod{mt.Setter("setFrom", mt.Ref("Copy"))},
	}
	require.NoError(t, u.Add(c))
	def, err := New(u).Assemble(c, options.DefaultConfig())
	require.NoError(t, err)

	from := method(t, def, "from(com.acme.Copy)")
	assert.Equal(t, lifecycleGenerator, from.Generator)
	field, _ := def.Field("from")
	for _, m := range field.Methods {
		assert.NotEqual(t, "setter", m.Generator)
	}
}

func TestBuildDeclaresCheckedConstructorExceptions(t *testing.T) {
	u := model.NewUniverse()
	c := &model.RawClass{
		Package:     mt.Pkg,
		Name:        "Conn",
		Annotations: []model.Annotation{{Name: "GenerateBuilder"}},
		Constructors: []model.RawConstructor{{
			Modifiers: model.ModPublic,
			Params:    []model.RawParam{mt.Param("url", mt.String)},
			Throws: []*model.TypeRef{
				model.Declared("java.io.IOException"),
				model.Declared("java.lang.IllegalStateException"),
			},
		}},
	}
	require.NoError(t, u.Add(c))
	def, err := New(u).Assemble(c, options.DefaultConfig())
	require.NoError(t, err)

	build := method(t, def, "build()")
	require.Len(t, build.Throws, 1)
	assert.Equal(t, "java.io.IOException", build.Throws[0].String())
}

func TestInvalidTargets(t *testing.T) {
	u := model.NewUniverse()
	iface := &model.RawClass{Package: mt.Pkg, Name: "Named", Kind: model.DeclInterface}
	enum := &model.RawClass{Package: mt.Pkg, Name: "Color", Kind: model.DeclEnum}
	require.NoError(t, u.Add(iface, enum))

	for _, c := range []*model.RawClass{iface, enum} {
		_, err := New(u).Assemble(c, options.DefaultConfig())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidTarget)
		var te *TargetError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, c.FQN(), te.Type)
	}

	bad := &model.RawClass{
		Package:     mt.Pkg,
		Name:        "Odd",
		Annotations: []model.Annotation{{Name: "BuilderOptions", Values: map[string]string{"no_such_key": "x"}}},
	}
	_, err := New(u).Assemble(bad, options.DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestAssembleAllKeepsOrderAndCancels(t *testing.T) {
	u := mt.Universe(t)
	cfg := options.DefaultConfig()
	targets := Targets(u.Classes(), cfg)

	var names []string
	for _, c := range targets {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Task", "Project", "Box"}, names)

	defs, err := New(u).AssembleAll(context.Background(), targets, cfg, 2)
	require.NoError(t, err)
	require.Len(t, defs, 3)
	for i, d := range defs {
		assert.Equal(t, targets[i].FQN(), d.Target.FQN())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New(u).AssembleAll(ctx, targets, cfg, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildKeepsDroppedConstructorPositions(t *testing.T) {
	u := model.NewUniverse()
	c := &model.RawClass{
		Package:     mt.Pkg,
		Name:        "Args",
		Annotations: []model.Annotation{{Name: "GenerateBuilder"}},
		Constructors: []model.RawConstructor{{
			Modifiers: model.ModPublic,
			Params: []model.RawParam{
				mt.Param("name", mt.String),
				mt.Param("broken", model.Primitive("void")),
				mt.Param("count", mt.Int),
				mt.Param("name", mt.ListOf(mt.String)),
				mt.Param("flag", model.Primitive("boolean")),
			},
		}},
	}
	require.NoError(t, u.Add(c))
	def, err := New(u).Assemble(c, options.DefaultConfig())
	require.NoError(t, err)

	assert.Len(t, def.ConstructorFields, 3)
	build := method(t, def, "build()")
	assert.Contains(t, build.Body.Expand(),
		"com.acme.Args instance = new com.acme.Args(this.name, null, this.count, (java.util.List<java.lang.String>) null, this.flag);")
}

func TestBuildDefaultsDroppedPrimitives(t *testing.T) {
	tpl := model.NewTemplate()
	assert.Equal(t, "$d0:L", defaultValue(tpl, "d0", model.Primitive("long")))
	assert.Equal(t, "$d1:L", defaultValue(tpl, "d1", model.Primitive("char")))
	assert.Equal(t, "($d2:T) null", defaultValue(tpl, "d2", mt.String))
	assert.Equal(t, "$d3:L", defaultValue(tpl, "d3", nil))
	tpl.Format = "$d0:L $d1:L ($d2:T) null $d3:L"
	assert.Equal(t, `0L '\u0000' (java.lang.String) null null`, tpl.Expand())
}
