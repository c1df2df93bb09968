package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/buildergen/internal/model"
)

func TestParseType(t *testing.T) {
	imports := []string{"java.util.List", "java.util.Map", "java.util.*"}
	tests := []struct {
		expr string
		want string
		kind model.RefKind
	}{
		{"int", "int", model.RefPrimitive},
		{"String", "java.lang.String", model.RefDeclared},
		{"List<String>", "java.util.List<java.lang.String>", model.RefDeclared},
		{"Map<String, List<Integer>>", "java.util.Map<java.lang.String, java.util.List<java.lang.Integer>>", model.RefDeclared},
		{"Map.Entry<String,Long>", "java.util.Map.Entry<java.lang.String, java.lang.Long>", model.RefDeclared},
		{"Optional<String>", "java.util.Optional<java.lang.String>", model.RefDeclared},
		{"List<? extends Number>", "java.util.List<? extends java.lang.Number>", model.RefDeclared},
		{"List<? super Integer>", "java.util.List<? super java.lang.Integer>", model.RefDeclared},
		{"List<?>", "java.util.List<?>", model.RefDeclared},
		{"int[][]", "int[][]", model.RefArray},
		{"java.util.Set<String>", "java.util.Set<java.lang.String>", model.RefDeclared},
		{"com.acme.Task", "com.acme.Task", model.RefDeclared},
		{"Unknown", "Unknown", model.RefDeclared},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			ref, err := ParseType(tt.expr, imports...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ref.String())
			assert.Equal(t, tt.kind, ref.Kind)
		})
	}
}

func TestParseTypeAnnotationsAndVarargs(t *testing.T) {
	s := newScope("com.acme", nil, func(string) bool { return false })

	ref, varargs, err := s.parseType("@NotNull @javax.annotation.Nonnull String")
	require.NoError(t, err)
	assert.False(t, varargs)
	assert.True(t, ref.HasAnnotation("NotNull"))
	assert.True(t, ref.HasAnnotation("Nonnull"))

	ref, varargs, err = s.parseType("String...")
	require.NoError(t, err)
	assert.True(t, varargs)
	assert.Equal(t, "com.acme.String[]", ref.String(), "unknown names resolve to the file package")
}

func TestParseTypeErrors(t *testing.T) {
	for _, expr := range []string{
		"",
		"List<",
		"List<String>>",
		"int<String>",
		"? extends",
		"Map<String,>",
		"a b",
	} {
		_, err := ParseType(expr)
		assert.Error(t, err, expr)
	}
}

func TestParseTypeParams(t *testing.T) {
	s := newScope("com.acme", nil, func(fqn string) bool { return fqn == "java.lang.Comparable" })
	params, err := s.parseTypeParams([]string{"K extends Comparable<K>", "V", "E extends K & Comparable<E>"})
	require.NoError(t, err)
	require.Len(t, params, 3)
	assert.Equal(t, "K extends java.lang.Comparable<K>", params[0].String())
	assert.Equal(t, "V", params[1].String())
	assert.Equal(t, model.RefTypeVar, params[2].Bounds[0].Kind)
	assert.Equal(t, "E extends K & java.lang.Comparable<E>", params[2].String())

	_, err = s.parseTypeParams([]string{"T extends"})
	assert.Error(t, err)
}
