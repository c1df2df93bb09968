package shape

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/buildergen/internal/model"
	mt "github.com/cmmoran/buildergen/internal/model/modeltest"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(mt.Universe(t))
	integer := model.Declared("java.lang.Integer")

	tests := []struct {
		name          string
		ref           *model.TypeRef
		kind          model.ShapeKind
		elem          string
		concrete      bool
		parameterized bool
	}{
		{"primitive", mt.Int, model.ShapePrimitive, "", false, false},
		{"string", mt.String, model.ShapePlain, "", false, true},
		{"array", model.ArrayOf(mt.String), model.ShapeArray, "java.lang.String", false, true},
		{"type variable", model.TypeVar("T"), model.ShapeTypeVar, "", false, false},
		{"wildcard", model.Extends(mt.String), model.ShapeWildcard, "", false, false},
		{"list interface", mt.ListOf(mt.Ref("Task")), model.ShapeList, "com.acme.Task", false, true},
		{"raw list", model.Declared(model.ListFQN), model.ShapeList, "", false, false},
		{"array list", model.Declared("java.util.ArrayList", mt.String), model.ShapeList, "java.lang.String", true, true},
		{"set", mt.SetOf(mt.String), model.ShapeSet, "java.lang.String", false, true},
		{"custom list binds second argument", mt.Ref("CustomList", mt.String, integer), model.ShapeList, "java.lang.Integer", true, true},
		{"raw custom list", mt.Ref("CustomList"), model.ShapeList, "", true, false},
		{"map", mt.MapOf(mt.String, integer), model.ShapeMap, "java.lang.Integer", false, true},
		{"optional", mt.OptionalOf(mt.String), model.ShapeOptional, "java.lang.String", false, true},
		{"raw optional", model.Declared(model.OptionalFQN), model.ShapeOptional, "", false, false},
		{"generic class", mt.Ref("Box", mt.String), model.ShapeGeneric, "", false, true},
		{"unknown class", model.Declared("org.other.Thing"), model.ShapePlain, "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := c.Classify(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, s.Kind)
			assert.Equal(t, tt.concrete, s.Concrete)
			assert.Equal(t, tt.parameterized, s.Parameterized)
			if tt.elem == "" {
				if s.Kind != model.ShapeArray {
					assert.Nil(t, s.Elem)
				}
				return
			}
			require.NotNil(t, s.Elem)
			assert.Equal(t, tt.elem, s.Elem.Ref.String())
		})
	}
}

func TestClassifyMapKey(t *testing.T) {
	c := NewClassifier(mt.Universe(t))
	s, err := c.Classify(model.Declared("java.util.TreeMap", mt.String, mt.Ref("Task")))
	require.NoError(t, err)
	assert.Equal(t, model.ShapeMap, s.Kind)
	assert.True(t, s.Concrete)
	assert.Equal(t, "java.lang.String", s.Key.Ref.String())
	assert.Equal(t, "com.acme.Task", s.Elem.Ref.String())
	assert.True(t, s.ElementUsable(nil))
	assert.True(t, IsCopyable("java.util.TreeMap"))
	assert.False(t, IsCopyable("com.acme.CustomList"))
}

func TestClassifyErrors(t *testing.T) {
	c := NewClassifier(mt.Universe(t))
	for _, ref := range []*model.TypeRef{
		nil,
		model.Primitive("word"),
		{Kind: model.RefArray},
		{Kind: model.RefDeclared},
		mt.ListOf(model.Primitive("word")),
	} {
		_, err := c.Classify(ref)
		assert.ErrorIs(t, err, ErrUnclassifiable)
	}
}

func TestClassifyConcurrent(t *testing.T) {
	c := NewClassifier(mt.Universe(t))
	ref := mt.ListOf(mt.Ref("Task"))

	var wg sync.WaitGroup
	shapes := make([]*model.Shape, 16)
	for i := range shapes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := c.Classify(ref)
			assert.NoError(t, err)
			shapes[i] = s
		}(i)
	}
	wg.Wait()
	for _, s := range shapes[1:] {
		assert.Same(t, shapes[0], s)
	}
}

func TestClassifyKeepsTypeUseAnnotations(t *testing.T) {
	c := NewClassifier(mt.Universe(t))
	notNull := &model.TypeRef{
		Kind:        model.RefDeclared,
		Name:        model.StringFQN,
		Annotations: []model.Annotation{{Name: "NotNull"}},
	}

	annotated, err := c.Classify(mt.ListOf(notNull))
	require.NoError(t, err)
	plain, err := c.Classify(mt.ListOf(mt.String))
	require.NoError(t, err)

	assert.NotSame(t, annotated, plain)
	assert.True(t, annotated.Elem.Ref.HasAnnotation("NotNull"))
	assert.False(t, plain.Elem.Ref.HasAnnotation("NotNull"))
	assert.Equal(t, "java.util.List<@NotNull java.lang.String>", mt.ListOf(notNull).Annotated())
	assert.Equal(t, "java.util.List<java.lang.String>", mt.ListOf(notNull).String())
}
