// Package modeltest provides a small structural model shared by tests.
package modeltest

import (
	"testing"

	"github.com/cmmoran/buildergen/internal/model"
)

const Pkg = "com.acme"

var (
	String = model.Declared(model.StringFQN)
	Bool   = model.Primitive("boolean")
	Int    = model.Primitive("int")
)

func Ref(simple string, args ...*model.TypeRef) *model.TypeRef {
	return model.Declared(Pkg+"."+simple, args...)
}

func ListOf(e *model.TypeRef) *model.TypeRef { return model.Declared(model.ListFQN, e) }
func SetOf(e *model.TypeRef) *model.TypeRef  { return model.Declared(model.SetFQN, e) }
func MapOf(k, v *model.TypeRef) *model.TypeRef {
	return model.Declared(model.MapFQN, k, v)
}
func OptionalOf(e *model.TypeRef) *model.TypeRef { return model.Declared(model.OptionalFQN, e) }

func Param(name string, t *model.TypeRef, anns ...string) model.RawParam {
	p := model.RawParam{Name: name, Type: t}
	for _, a := range anns {
		p.Annotations = append(p.Annotations, model.Annotation{Name: a})
	}
	return p
}

func Setter(name string, t *model.TypeRef) model.RawMethod {
	return model.RawMethod{Name: name, Params: []model.RawParam{Param("v", t)}, Modifiers: model.ModPublic}
}

func Getter(name string, t *model.TypeRef) model.RawMethod {
	return model.RawMethod{Name: name, Returns: t, Modifiers: model.ModPublic}
}

func marker() []model.Annotation {
	return []model.Annotation{{Name: "GenerateBuilder"}}
}

// Task is a target with one constructor field and one setter field.
func Task() *model.RawClass {
	return &model.RawClass{
		Package:     Pkg,
		Name:        "Task",
		Modifiers:   model.ModPublic,
		Annotations: marker(),
		Constructors: []model.RawConstructor{{
			Modifiers: model.ModPublic,
			Params:    []model.RawParam{Param("title", String)},
		}},
		Methods: []model.RawMethod{
			Getter("getTitle", String),
			Getter("isDone", Bool),
			Setter("setDone", Bool),
		},
	}
}

// Person is a plain mutable class with an implicit no-arg constructor.
func Person() *model.RawClass {
	return &model.RawClass{
		Package:   Pkg,
		Name:      "Person",
		Modifiers: model.ModPublic,
		Methods:   []model.RawMethod{Setter("setName", String), Getter("getName", String)},
	}
}

// CustomList binds its second parameter to the list element type.
func CustomList() *model.RawClass {
	return &model.RawClass{
		Package:    Pkg,
		Name:       "CustomList",
		Modifiers:  model.ModPublic,
		TypeParams: []model.GenericParam{{Name: "X"}, {Name: "Y"}},
		Supertypes: []*model.TypeRef{model.Declared("java.util.ArrayList", model.TypeVar("Y"))},
		Constructors: []model.RawConstructor{{
			Modifiers: model.ModPublic,
		}},
	}
}

// Project exercises every helper family.
func Project() *model.RawClass {
	tasks := ListOf(Ref("Task"))
	custom := Ref("CustomList", String, model.Declared("java.lang.Integer"))
	return &model.RawClass{
		Package:     Pkg,
		Name:        "Project",
		Modifiers:   model.ModPublic,
		Annotations: marker(),
		Constructors: []model.RawConstructor{{
			Modifiers: model.ModPublic,
			Params: []model.RawParam{
				Param("name", String, "NotNull"),
				Param("tasks", tasks),
			},
		}},
		Methods: []model.RawMethod{
			Getter("getName", String),
			Getter("getTasks", tasks),
			Setter("setOwner", Ref("Person")),
			Getter("getOwner", Ref("Person")),
			Setter("setEmail", OptionalOf(String)),
			Getter("getEmail", OptionalOf(String)),
			Setter("setMetadata", MapOf(String, String)),
			Getter("getMetadata", MapOf(String, String)),
			Setter("setTags", SetOf(String)),
			Getter("getTags", SetOf(String)),
			Setter("setScores", custom),
			Getter("getScores", custom),
			Setter("setLead", Ref("Task")),
			Getter("getLead", Ref("Task")),
			Setter("setOnClose", model.Declared("java.lang.Runnable")),
			Setter("setPriority", Int),
			Getter("getPriority", Int),
		},
	}
}

// Box is a generic target.
func Box() *model.RawClass {
	return &model.RawClass{
		Package:     Pkg,
		Name:        "Box",
		Modifiers:   model.ModPublic,
		Annotations: marker(),
		TypeParams:  []model.GenericParam{{Name: "T", Bounds: []*model.TypeRef{model.Declared("java.lang.Comparable", model.TypeVar("T"))}}},
		Methods: []model.RawMethod{
			Setter("setValue", model.TypeVar("T")),
			Getter("getValue", model.TypeVar("T")),
			Setter("setItems", ListOf(model.TypeVar("T"))),
			Getter("getItems", ListOf(model.TypeVar("T"))),
		},
	}
}

// Universe returns a universe holding every fixture class.
func Universe(t testing.TB) *model.Universe {
	t.Helper()
	u := model.NewUniverse()
	if err := u.Add(Task(), Person(), CustomList(), Project(), Box()); err != nil {
		t.Fatal(err)
	}
	return u
}
