package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecapitalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Name", "name"},
		{"URL", "URL"},
		{"X", "x"},
		{"", ""},
		{"FirstName", "firstName"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Decapitalize(tt.in), tt.in)
	}
}

func TestIsSetterName(t *testing.T) {
	assert.True(t, IsSetterName("setName"))
	assert.True(t, IsSetterName("setX"))
	assert.False(t, IsSetterName("set"))
	assert.False(t, IsSetterName("settle"))
	assert.False(t, IsSetterName("getName"))
	assert.Equal(t, "name", PropertyFromSetter("setName"))
	assert.Equal(t, "URL", PropertyFromSetter("setURL"))
}

func TestAddMethodName(t *testing.T) {
	assert.Equal(t, "addTask", AddMethodName("add", "tasks"))
	assert.Equal(t, "addCategory", AddMethodName("add", "categories"))
	assert.Equal(t, "task", ElementParamName("tasks"))
	assert.Equal(t, "staffElement", ElementParamName("staff"))
}

func TestBuilderName(t *testing.T) {
	assert.Equal(t, "ProjectBuilder", BuilderName("Project", "Builder"))
	assert.Equal(t, "OuterInnerBuilder", BuilderName("Outer.Inner", "Builder"))
	assert.Equal(t, "withName", MethodName("with", "name"))
	assert.Equal(t, "name", MethodName("", "name"))
	assert.Equal(t, "class_", Identifier("class"))
}
