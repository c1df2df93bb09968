package model

import "strings"

// Platform declarations needed for supertype walks, checked-exception
// checks and collection detection.

func tp(names ...string) []GenericParam {
	out := make([]GenericParam, len(names))
	for i, n := range names {
		out[i] = GenericParam{Name: n}
	}
	return out
}

func tv(names ...string) []*TypeRef {
	out := make([]*TypeRef, len(names))
	for i, n := range names {
		out[i] = TypeVar(n)
	}
	return out
}

var publicNoArg = []RawConstructor{{Modifiers: ModPublic}}

func lib(pkg, name string, kind DeclKind, mods Modifier, params []GenericParam, ctors []RawConstructor, supers ...*TypeRef) *RawClass {
	return &RawClass{
		Package:      pkg,
		Name:         name,
		Kind:         kind,
		Modifiers:    mods | ModPublic,
		TypeParams:   params,
		Supertypes:   supers,
		Constructors: ctors,
		Library:      true,
	}
}

func functional(name string, params ...string) *RawClass {
	c := lib("java.util.function", name, DeclInterface, 0, tp(params...), nil)
	c.Annotations = []Annotation{{Name: "java.lang." + FunctionalMarker}}
	return c
}

func builtins() []*RawClass {
	obj := Declared(ObjectFQN)
	collection := func(e string) *TypeRef { return Declared("java.util.Collection", TypeVar(e)) }
	list := func(e string) *TypeRef { return Declared(ListFQN, TypeVar(e)) }
	set := func(e string) *TypeRef { return Declared(SetFQN, TypeVar(e)) }
	mp := func(k, v string) *TypeRef { return Declared(MapFQN, TypeVar(k), TypeVar(v)) }

	classes := []*RawClass{
		lib("java.lang", "Object", DeclClass, 0, nil, publicNoArg),
		lib("java.lang", "String", DeclClass, ModFinal, nil, publicNoArg, obj, Declared("java.lang.CharSequence")),
		lib("java.lang", "CharSequence", DeclInterface, 0, nil, nil),
		lib("java.lang", "StringBuilder", DeclClass, ModFinal, nil, publicNoArg, obj, Declared("java.lang.CharSequence")),
		lib("java.lang", "Number", DeclClass, ModAbstract, nil, publicNoArg, obj),
		lib("java.lang", "Comparable", DeclInterface, 0, tp("T"), nil),
		lib("java.lang", "Iterable", DeclInterface, 0, tp("T"), nil),
		lib("java.lang", "Enum", DeclClass, ModAbstract, tp("E"), nil, obj),
		lib("java.lang", "Record", DeclClass, ModAbstract, nil, nil, obj),
		lib("java.lang", "Throwable", DeclClass, 0, nil, publicNoArg, obj),
		lib("java.lang", "Exception", DeclClass, 0, nil, publicNoArg, Declared("java.lang.Throwable")),
		lib("java.lang", "Error", DeclClass, 0, nil, publicNoArg, Declared("java.lang.Throwable")),
		lib("java.lang", "RuntimeException", DeclClass, 0, nil, publicNoArg, Declared("java.lang.Exception")),
		lib("java.lang", "IllegalArgumentException", DeclClass, 0, nil, publicNoArg, Declared(RuntimeExceptionFQN)),
		lib("java.lang", "IllegalStateException", DeclClass, 0, nil, publicNoArg, Declared(RuntimeExceptionFQN)),
		lib("java.lang", "NullPointerException", DeclClass, 0, nil, publicNoArg, Declared(RuntimeExceptionFQN)),
		lib("java.lang", "UnsupportedOperationException", DeclClass, 0, nil, publicNoArg, Declared(RuntimeExceptionFQN)),
		lib("java.io", "IOException", DeclClass, 0, nil, publicNoArg, Declared("java.lang.Exception")),
		lib("java.io", "UncheckedIOException", DeclClass, 0, nil, nil, Declared(RuntimeExceptionFQN)),

		lib("java.util", "Collection", DeclInterface, 0, tp("E"), nil, Declared("java.lang.Iterable", TypeVar("E"))),
		lib("java.util", "List", DeclInterface, 0, tp("E"), nil, collection("E")),
		lib("java.util", "Set", DeclInterface, 0, tp("E"), nil, collection("E")),
		lib("java.util", "SortedSet", DeclInterface, 0, tp("E"), nil, set("E")),
		lib("java.util", "NavigableSet", DeclInterface, 0, tp("E"), nil, Declared("java.util.SortedSet", TypeVar("E"))),
		lib("java.util", "AbstractCollection", DeclClass, ModAbstract, tp("E"), nil, obj, collection("E")),
		lib("java.util", "AbstractList", DeclClass, ModAbstract, tp("E"), nil, Declared("java.util.AbstractCollection", TypeVar("E")), list("E")),
		lib("java.util", "ArrayList", DeclClass, 0, tp("E"), publicNoArg, Declared("java.util.AbstractList", TypeVar("E")), list("E")),
		lib("java.util", "LinkedList", DeclClass, 0, tp("E"), publicNoArg, Declared("java.util.AbstractList", TypeVar("E")), list("E")),
		lib("java.util", "AbstractSet", DeclClass, ModAbstract, tp("E"), nil, Declared("java.util.AbstractCollection", TypeVar("E")), set("E")),
		lib("java.util", "HashSet", DeclClass, 0, tp("E"), publicNoArg, Declared("java.util.AbstractSet", TypeVar("E")), set("E")),
		lib("java.util", "LinkedHashSet", DeclClass, 0, tp("E"), publicNoArg, Declared("java.util.HashSet", TypeVar("E")), set("E")),
		lib("java.util", "TreeSet", DeclClass, 0, tp("E"), publicNoArg, Declared("java.util.AbstractSet", TypeVar("E")), Declared("java.util.NavigableSet", TypeVar("E"))),
		lib("java.util", "Map", DeclInterface, 0, tp("K", "V"), nil),
		lib("java.util", "Map.Entry", DeclInterface, 0, tp("K", "V"), nil),
		lib("java.util", "SortedMap", DeclInterface, 0, tp("K", "V"), nil, mp("K", "V")),
		lib("java.util", "NavigableMap", DeclInterface, 0, tp("K", "V"), nil, Declared("java.util.SortedMap", tv("K", "V")...)),
		lib("java.util", "AbstractMap", DeclClass, ModAbstract, tp("K", "V"), nil, obj, mp("K", "V")),
		lib("java.util", "HashMap", DeclClass, 0, tp("K", "V"), publicNoArg, Declared("java.util.AbstractMap", tv("K", "V")...), mp("K", "V")),
		lib("java.util", "LinkedHashMap", DeclClass, 0, tp("K", "V"), publicNoArg, Declared("java.util.HashMap", tv("K", "V")...), mp("K", "V")),
		lib("java.util", "TreeMap", DeclClass, 0, tp("K", "V"), publicNoArg, Declared("java.util.AbstractMap", tv("K", "V")...), Declared("java.util.NavigableMap", tv("K", "V")...)),
		lib("java.util", "Optional", DeclClass, ModFinal, tp("T"), []RawConstructor{{Modifiers: ModPrivate}}, obj),
		lib("java.util", "Objects", DeclClass, ModFinal, nil, []RawConstructor{{Modifiers: ModPrivate}}, obj),
		lib("java.util", "Arrays", DeclClass, 0, nil, []RawConstructor{{Modifiers: ModPrivate}}, obj),
		lib("java.util", "UUID", DeclClass, ModFinal, nil, nil, obj),

		functional("Supplier", "T"),
		functional("Consumer", "T"),
		functional("BiConsumer", "T", "U"),
		functional("Function", "T", "R"),
		functional("BiFunction", "T", "U", "R"),
		functional("Predicate", "T"),
		lib("java.util.function", "UnaryOperator", DeclInterface, 0, tp("T"), nil, Declared("java.util.function.Function", tv("T", "T")...)),
		lib("java.lang", "Runnable", DeclInterface, 0, nil, nil),
	}
	classes[len(classes)-1].Annotations = []Annotation{{Name: "java.lang." + FunctionalMarker}}

	for _, p := range []string{"Boolean", "Byte", "Short", "Integer", "Long", "Character", "Float", "Double"} {
		super := Declared("java.lang.Number")
		if p == "Boolean" || p == "Character" {
			super = obj
		}
		classes = append(classes, lib("java.lang", p, DeclClass, ModFinal, nil, nil, super))
	}
	return classes
}

// IsLibraryPackage reports whether pkg belongs to the platform.
func IsLibraryPackage(pkg string) bool {
	for _, p := range []string{"java", "javax", "jdk", "sun"} {
		if pkg == p || strings.HasPrefix(pkg, p+".") {
			return true
		}
	}
	return false
}
