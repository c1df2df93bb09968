package generator

import (
	"github.com/cmmoran/buildergen/internal/model"
	"github.com/cmmoran/buildergen/internal/naming"
	"github.com/cmmoran/buildergen/internal/shape"
)

const safeVarargs = "java.lang.SafeVarargs"

// mutableImpl is the implementation used when a bare interface field needs a
// mutable instance.
var mutableImpl = map[model.ShapeKind]string{
	model.ShapeList: "java.util.ArrayList",
	model.ShapeSet:  "java.util.LinkedHashSet",
	model.ShapeMap:  "java.util.LinkedHashMap",
}

// copyableCollection reports bare collection interfaces and platform
// implementations with a copy constructor. Custom subclasses are excluded.
func copyableCollection(s *model.Shape) bool {
	return !s.Concrete || shape.IsCopyable(s.Ref.Name)
}

// wrap adapts an expression producing a fresh collection to the field type:
// concrete platform types are rebuilt through their copy constructor.
func wrap(s *model.Shape, expr string) string {
	if !s.Concrete {
		return expr
	}
	return "new $impl:T<>(" + expr + ")"
}

func implRef(s *model.Shape) *model.TypeRef {
	if s.Concrete {
		return model.Declared(s.Ref.Name)
	}
	return model.Declared(mutableImpl[s.Kind])
}

// CollectionLiterals contributes variable-argument overloads for list, set
// and map fields.
type CollectionLiterals struct{}

func (CollectionLiterals) Name() string  { return "collection-literals" }
func (CollectionLiterals) Priority() int { return PriorityCollectionLiterals }

func (CollectionLiterals) AppliesTo(f *model.Field, ctx *Context) bool {
	if !ctx.Config.CollectionLiterals || f.Shape == nil {
		return false
	}
	switch f.Shape.Kind {
	case model.ShapeList, model.ShapeSet, model.ShapeMap:
	default:
		return false
	}
	return f.Shape.ElementUsable(ctx.Scope) && copyableCollection(f.Shape)
}

func (g CollectionLiterals) Generate(f *model.Field, ctx *Context) []*model.Method {
	s := f.Shape
	param := naming.Identifier(f.Name)
	var (
		elem *model.TypeRef
		expr string
	)
	switch s.Kind {
	case model.ShapeList:
		elem = s.Elem.Ref
		if s.Concrete {
			expr = wrap(s, "$arrays:T.asList($value:N)")
		} else {
			expr = "$list:T.of($value:N)"
		}
	case model.ShapeSet:
		elem = s.Elem.Ref
		expr = wrap(s, "$arrays:T.asList($value:N)")
		if !s.Concrete {
			expr = "$set:T.copyOf(" + expr + ")"
		}
	case model.ShapeMap:
		param = "entries"
		elem = model.Declared(model.MapEntryFQN, model.Extends(s.Key.Ref), model.Extends(s.Elem.Ref))
		expr = wrap(s, "$map:T.ofEntries($value:N)")
	}

	m := ctx.Method(g, f, ctx.SetterName(f), model.ParamSpec{Name: param, Type: elem, Varargs: true})
	if len(elem.Args) > 0 || elem.Kind == model.RefTypeVar {
		// generic varargs need the heap-pollution marker, which requires final
		m.Annotations = []string{safeVarargs}
		m.Modifiers |= model.ModFinal
	}
	t := store(ctx, f, expr).N("value", param)
	switch s.Kind {
	case model.ShapeList:
		if s.Concrete {
			t.T("arrays", model.Declared(model.ArraysFQN)).T("impl", implRef(s))
		} else {
			t.T("list", model.Declared(model.ListFQN))
		}
	case model.ShapeSet:
		t.T("arrays", model.Declared(model.ArraysFQN))
		if s.Concrete {
			t.T("impl", implRef(s))
		} else {
			t.T("set", model.Declared(model.SetFQN))
		}
	case model.ShapeMap:
		t.T("map", model.Declared(model.MapFQN))
		if s.Concrete {
			t.T("impl", implRef(s))
		}
	}
	m.Body = t
	return []*model.Method{m}
}

// CollectionConsumer hands callers a collection builder seeded with the
// current contents. When the element type has its own generated builder the
// element-builder variant is used.
type CollectionConsumer struct{}

func (CollectionConsumer) Name() string  { return "collection-consumer" }
func (CollectionConsumer) Priority() int { return PriorityCollectionConsumer }

func (CollectionConsumer) AppliesTo(f *model.Field, ctx *Context) bool {
	if !ctx.Config.CollectionConsumer || !f.Shape.IsCollection() {
		return false
	}
	return f.Shape.ElementUsable(ctx.Scope) && copyableCollection(f.Shape)
}

func (g CollectionConsumer) Generate(f *model.Field, ctx *Context) []*model.Method {
	s := f.Shape
	elem := s.Elem.Ref
	kind := "List"
	if s.Kind == model.ShapeSet {
		kind = "Set"
	}

	nb, nested := ctx.BuilderFor(elem)
	nested = nested && ctx.Config.NestedBuilder

	collector := ctx.Runtime(kind+"Builder", elem)
	init := "$collector:T collector = new $collector:T(this.$field:N);"
	if nested {
		collector = ctx.Runtime("Builder"+kind+"Builder", elem, nb.Ref)
		init = "$collector:T collector = new $collector:T(this.$field:N, $elemBuilder:T::$factory:N, $elemBuilder:T::$from:N, $elemBuilder:T::$build:N);"
	}

	param := naming.ConsumerParamName(f.Name)
	m := ctx.Method(g, f, ctx.SetterName(f), model.ParamSpec{
		Name: param,
		Type: model.Declared(model.ConsumerFQN, collector),
	})
	body := store(ctx, f, wrap(s, "collector.build()"), init, "$consumer:N.accept(collector);").
		T("collector", collector).
		N("consumer", param)
	if s.Concrete {
		body.T("impl", implRef(s))
	}
	if nested {
		body.T("elemBuilder", nb.Raw).
			N("factory", nb.Config.FactoryMethod).
			N("from", nb.Config.FromMethod).
			N("build", nb.Config.BuildMethod)
	}
	m.Body = body
	return []*model.Method{m}
}

// AddElement contributes a single-element append method named after the
// singular form of the field.
type AddElement struct{}

func (AddElement) Name() string  { return "add-element" }
func (AddElement) Priority() int { return PriorityAddElement }

func (AddElement) AppliesTo(f *model.Field, ctx *Context) bool {
	if !ctx.Config.AddElement || !f.Shape.IsCollection() || !f.Shape.ElementUsable(ctx.Scope) {
		return false
	}
	if !f.Shape.Concrete {
		return true
	}
	decl, ok := ctx.Lookup.Lookup(f.Type.Name)
	return ok && decl.HasAccessibleNoArgConstructor(ctx.Target.Package)
}

func (g AddElement) Generate(f *model.Field, ctx *Context) []*model.Method {
	s := f.Shape
	param := naming.Identifier(naming.ElementParamName(f.Name))
	m := ctx.Method(g, f, naming.AddMethodName(ctx.Config.AddPrefix, f.Name), model.ParamSpec{
		Name: param,
		Type: s.Elem.Ref,
	})
	var t *model.Template
	if s.Concrete {
		t = model.NewTemplate(
			"if (this.$field:N == null) {",
			"    this.$field:N = new $type:T();",
			"}",
			"this.$field:N.add($element:N);",
			"return this;",
		).T("type", f.Type)
	} else {
		t = model.NewTemplate(
			"if (this.$field:N == null) {",
			"    this.$field:N = new $impl:T<>();",
			"} else if (!(this.$field:N instanceof $impl:T)) {",
			"    this.$field:N = new $impl:T<>(this.$field:N);",
			"}",
			"this.$field:N.add($element:N);",
			"return this;",
		).T("impl", implRef(s))
	}
	m.Body = t.N("field", f.Name).N("element", param)
	return []*model.Method{m}
}
