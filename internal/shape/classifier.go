// Package shape classifies type references into the semantic shapes that
// drive builder method generation.
package shape

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cmmoran/buildergen/internal/model"
)

var ErrUnclassifiable = errors.New("unclassifiable type")

// copyable lists the platform collection classes known to offer a copy
// constructor taking a collection or map.
var copyable = map[string]bool{
	"java.util.ArrayList":     true,
	"java.util.LinkedList":    true,
	"java.util.HashSet":       true,
	"java.util.LinkedHashSet": true,
	"java.util.TreeSet":       true,
	"java.util.HashMap":       true,
	"java.util.LinkedHashMap": true,
	"java.util.TreeMap":       true,
}

// IsCopyable reports platform implementation classes with a copy
// constructor.
func IsCopyable(fqn string) bool { return copyable[fqn] }

// Classifier turns TypeRefs into Shapes. Results are memoized by canonical
// type text; the memo table is safe for concurrent use.
type Classifier struct {
	lookup model.Lookup

	mu    sync.RWMutex
	cache map[string]*model.Shape
}

func NewClassifier(lookup model.Lookup) *Classifier {
	return &Classifier{
		lookup: lookup,
		cache:  make(map[string]*model.Shape),
	}
}

// Classify returns the shape of ref.
func (c *Classifier) Classify(ref *model.TypeRef) (*model.Shape, error) {
	if ref == nil {
		return nil, fmt.Errorf("%w: missing type", ErrUnclassifiable)
	}
	key := ref.Kind.String() + ":" + ref.Annotated()

	c.mu.RLock()
	s, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return s, nil
	}

	s, err := c.classify(ref)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if prev, ok := c.cache[key]; ok {
		s = prev
	} else {
		c.cache[key] = s
	}
	c.mu.Unlock()
	return s, nil
}

func (c *Classifier) classify(ref *model.TypeRef) (*model.Shape, error) {
	switch ref.Kind {
	case model.RefPrimitive:
		if !model.IsPrimitiveName(ref.Name) {
			return nil, fmt.Errorf("%w: unknown primitive %q", ErrUnclassifiable, ref.Name)
		}
		return &model.Shape{Kind: model.ShapePrimitive, Ref: ref}, nil

	case model.RefArray:
		if ref.Elem == nil {
			return nil, fmt.Errorf("%w: array without component type", ErrUnclassifiable)
		}
		elem, err := c.Classify(ref.Elem)
		if err != nil {
			return nil, err
		}
		return &model.Shape{Kind: model.ShapeArray, Ref: ref, Elem: elem, Parameterized: true}, nil

	case model.RefTypeVar:
		if ref.Name == "" {
			return nil, fmt.Errorf("%w: unnamed type variable", ErrUnclassifiable)
		}
		return &model.Shape{Kind: model.ShapeTypeVar, Ref: ref}, nil

	case model.RefWildcard:
		return &model.Shape{Kind: model.ShapeWildcard, Ref: ref}, nil

	case model.RefDeclared:
		if ref.Name == "" {
			return nil, fmt.Errorf("%w: declared type without name", ErrUnclassifiable)
		}
		return c.classifyDeclared(ref)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnclassifiable, ref.Kind)
}

func (c *Classifier) classifyDeclared(ref *model.TypeRef) (*model.Shape, error) {
	args := make([]*model.Shape, 0, len(ref.Args))
	for _, a := range ref.Args {
		if a == nil {
			args = append(args, nil)
			continue
		}
		as, err := c.Classify(a)
		if err != nil {
			return nil, fmt.Errorf("type argument of %s: %w", ref.Name, err)
		}
		args = append(args, as)
	}

	if ref.Name == model.OptionalFQN {
		s := &model.Shape{Kind: model.ShapeOptional, Ref: ref, Args: args}
		if len(args) == 1 && args[0] != nil {
			s.Elem = args[0]
			s.Parameterized = true
		}
		return s, nil
	}

	for _, target := range []struct {
		fqn  string
		kind model.ShapeKind
	}{
		{model.ListFQN, model.ShapeList},
		{model.SetFQN, model.ShapeSet},
		{model.MapFQN, model.ShapeMap},
	} {
		inst, ok := model.FindSupertype(c.lookup, ref, target.fqn)
		if !ok {
			continue
		}
		return c.collectionShape(ref, inst, target.kind, args)
	}

	if len(args) > 0 {
		return &model.Shape{Kind: model.ShapeGeneric, Ref: ref, Args: args, Parameterized: true}, nil
	}
	return &model.Shape{Kind: model.ShapePlain, Ref: ref, Parameterized: true}, nil
}

// collectionShape builds a list, set or map shape. inst is the collection
// interface as instantiated through ref's supertype chain, so the element
// is whatever the interface's own parameter resolved to, not ref's first
// argument.
func (c *Classifier) collectionShape(ref, inst *model.TypeRef, kind model.ShapeKind, args []*model.Shape) (*model.Shape, error) {
	s := &model.Shape{Kind: kind, Ref: ref, Args: args}
	if decl, ok := c.lookup.Lookup(ref.Name); ok {
		s.Concrete = !decl.IsAbstract()
	}

	resolve := func(a *model.TypeRef) (*model.Shape, error) {
		if a == nil {
			return nil, nil
		}
		return c.Classify(a)
	}

	switch kind {
	case model.ShapeMap:
		if len(inst.Args) != 2 {
			return s, nil
		}
		key, err := resolve(inst.Args[0])
		if err != nil {
			return nil, err
		}
		val, err := resolve(inst.Args[1])
		if err != nil {
			return nil, err
		}
		s.Key, s.Elem = key, val
		s.Parameterized = key != nil && val != nil
	default:
		if len(inst.Args) != 1 {
			return s, nil
		}
		elem, err := resolve(inst.Args[0])
		if err != nil {
			return nil, err
		}
		s.Elem = elem
		s.Parameterized = elem != nil
	}
	return s, nil
}
