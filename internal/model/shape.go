package model

// ShapeKind is the semantic category of a type.
type ShapeKind int

const (
	ShapeInvalid ShapeKind = iota
	ShapePrimitive
	ShapeArray
	ShapePlain    // non-generic declared type
	ShapeGeneric  // declared type with type arguments, opaque to helpers
	ShapeTypeVar  // unbound generic parameter
	ShapeWildcard // ? / ? extends T
	ShapeList
	ShapeSet
	ShapeMap
	ShapeOptional
)

var shapeKindNames = map[ShapeKind]string{
	ShapeInvalid:   "invalid",
	ShapePrimitive: "primitive",
	ShapeArray:     "array",
	ShapePlain:     "plain",
	ShapeGeneric:   "generic",
	ShapeTypeVar:   "typevar",
	ShapeWildcard:  "wildcard",
	ShapeList:      "list",
	ShapeSet:       "set",
	ShapeMap:       "map",
	ShapeOptional:  "optional",
}

func (k ShapeKind) String() string { return shapeKindNames[k] }

// Shape is the classified form of a TypeRef. Shapes are immutable once
// produced and may be shared between fields.
type Shape struct {
	Kind ShapeKind
	Ref  *TypeRef
	// Args holds the shapes of the declared type arguments.
	Args []*Shape
	// Elem is the array component, the list/set element, the optional's
	// wrapped type, or the map value. Nil when unresolvable.
	Elem *Shape
	Key  *Shape // map key
	// Concrete is set when the type is an implementation class rather than
	// the bare collection interface.
	Concrete bool
	// Parameterized is set when every element-bearing argument resolved.
	Parameterized bool
}

func (s *Shape) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.Ref.String()
}

// IsCollection reports list or set shapes.
func (s *Shape) IsCollection() bool {
	return s != nil && (s.Kind == ShapeList || s.Kind == ShapeSet)
}

// IsUnbound reports type variables and wildcards; such shapes are eligible
// only for the plain setter.
func (s *Shape) IsUnbound() bool {
	return s != nil && (s.Kind == ShapeTypeVar || s.Kind == ShapeWildcard)
}

func (s *Shape) IsString() bool {
	return s != nil && s.Kind == ShapePlain && s.Ref.Name == StringFQN
}

// IsDeclared reports shapes backed by a declared (class or interface) type.
func (s *Shape) IsDeclared() bool {
	return s != nil && s.Ref != nil && s.Ref.Kind == RefDeclared
}

// ElementUsable reports whether helpers may be keyed off the element type.
// Raw and wildcard elements never qualify; a type variable qualifies when
// it is declared in scope.
func (s *Shape) ElementUsable(scope []GenericParam) bool {
	if s == nil || !s.Parameterized || !s.Elem.usableIn(scope) {
		return false
	}
	if s.Kind == ShapeMap {
		return s.Key.usableIn(scope)
	}
	return true
}

func (s *Shape) usableIn(scope []GenericParam) bool {
	switch {
	case s == nil || s.Kind == ShapeWildcard:
		return false
	case s.Kind == ShapeTypeVar:
		for _, p := range scope {
			if p.Name == s.Ref.Name {
				return true
			}
		}
		return false
	}
	return true
}
