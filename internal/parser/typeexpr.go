package parser

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/cmmoran/buildergen/internal/model"
)

// --- type expression grammar ---
// Type expressions are written as in source: "Map<String, List<? extends Task>>",
// "@NotNull String", "int[]", "String...". Type parameter declarations use
// "T extends Comparable<T> & Serializable".

var typeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "Ident", Pattern: `[\p{L}_$][\p{L}\p{N}_$]*`},
	{Name: "Punct", Pattern: `[<>,\[\]@?.&]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type typeExpr struct {
	Annotations []*qualifiedName `parser:"( '@' @@ )*"`
	Wildcard    *wildcardExpr    `parser:"( @@"`
	Name        *qualifiedName   `parser:"| @@ )"`
	Args        []*typeExpr      `parser:"( '<' ( @@ ( ',' @@ )* )? '>' )?"`
	Dims        []string         `parser:"( @'[' ']' )*"`
	Varargs     bool             `parser:"@Ellipsis?"`
}

type wildcardExpr struct {
	Mark  string    `parser:"@'?'"`
	Kind  string    `parser:"( @( 'extends' | 'super' )"`
	Bound *typeExpr `parser:"  @@ )?"`
}

type qualifiedName struct {
	Parts []string `parser:"@Ident ( '.' @Ident )*"`
}

func (q *qualifiedName) String() string { return strings.Join(q.Parts, ".") }

type typeParamExpr struct {
	Name   string      `parser:"@Ident"`
	Bounds []*typeExpr `parser:"( 'extends' @@ ( '&' @@ )* )?"`
}

var (
	typeParser = participle.MustBuild[typeExpr](
		participle.Lexer(typeLexer),
		participle.Elide("Whitespace"),
	)
	typeParamParser = participle.MustBuild[typeParamExpr](
		participle.Lexer(typeLexer),
		participle.Elide("Whitespace"),
	)
)

// scope resolves names as written in one descriptor file.
type scope struct {
	pkg       string
	imports   map[string]string // simple name -> qualified name
	wildcards []string
	typeVars  map[string]bool
	known     func(fqn string) bool
}

func newScope(pkg string, imports []string, known func(string) bool) *scope {
	s := &scope{pkg: pkg, imports: map[string]string{}, typeVars: map[string]bool{}, known: known}
	for _, imp := range imports {
		imp = strings.TrimSpace(imp)
		if p, ok := strings.CutSuffix(imp, ".*"); ok {
			s.wildcards = append(s.wildcards, p)
			continue
		}
		s.imports[model.SimpleNameOf(imp)] = imp
	}
	return s
}

// with returns a copy of s that also sees the given type variables.
func (s *scope) with(params []model.GenericParam) *scope {
	if len(params) == 0 {
		return s
	}
	c := *s
	c.typeVars = make(map[string]bool, len(s.typeVars)+len(params))
	for k := range s.typeVars {
		c.typeVars[k] = true
	}
	for _, p := range params {
		c.typeVars[p.Name] = true
	}
	return &c
}

func (s *scope) qualify(prefix string) string {
	if prefix == "" {
		return ""
	}
	return prefix + "."
}

// resolveSimple finds the qualified name of a simple type name: single-type
// imports, then the file's package, then on-demand imports, then java.lang.
func (s *scope) resolveSimple(name string) (string, bool) {
	if fqn, ok := s.imports[name]; ok {
		return fqn, true
	}
	if fqn := s.qualify(s.pkg) + name; s.known(fqn) {
		return fqn, true
	}
	for _, w := range s.wildcards {
		if fqn := w + "." + name; s.known(fqn) {
			return fqn, true
		}
	}
	if fqn := "java.lang." + name; s.known(fqn) {
		return fqn, true
	}
	return "", false
}

// resolveName qualifies a possibly dotted name. A leading segment that
// resolves as a simple name makes the rest a nested type path (Map.Entry).
func (s *scope) resolveName(parts []string) string {
	if fqn, ok := s.resolveSimple(parts[0]); ok {
		return strings.Join(append([]string{fqn}, parts[1:]...), ".")
	}
	if len(parts) == 1 {
		// unknown simple names are assumed to live in the file's package
		return s.qualify(s.pkg) + parts[0]
	}
	return strings.Join(parts, ".")
}

// parseType parses a type expression. Variable-arity parameters come back
// as array types with varargs set.
func (s *scope) parseType(expr string) (ref *model.TypeRef, varargs bool, err error) {
	n, err := typeParser.ParseString("", expr)
	if err != nil {
		return nil, false, fmt.Errorf("type %q: %w", expr, err)
	}
	ref, err = s.convert(n)
	if err != nil {
		return nil, false, fmt.Errorf("type %q: %w", expr, err)
	}
	if n.Varargs {
		ref = model.ArrayOf(ref)
	}
	return ref, n.Varargs, nil
}

func (s *scope) convert(n *typeExpr) (*model.TypeRef, error) {
	var ref *model.TypeRef
	switch {
	case n.Wildcard != nil:
		if len(n.Args) > 0 || len(n.Dims) > 0 {
			return nil, fmt.Errorf("wildcard cannot take arguments or dimensions")
		}
		if n.Wildcard.Bound == nil {
			ref = model.Wildcard(nil, false)
			break
		}
		bound, err := s.convert(n.Wildcard.Bound)
		if err != nil {
			return nil, err
		}
		ref = model.Wildcard(bound, n.Wildcard.Kind == "super")
	default:
		name := n.Name.String()
		switch {
		case len(n.Name.Parts) == 1 && s.typeVars[name]:
			if len(n.Args) > 0 {
				return nil, fmt.Errorf("type variable %s cannot take arguments", name)
			}
			ref = model.TypeVar(name)
		case len(n.Name.Parts) == 1 && (model.IsPrimitiveName(name) || name == "void"):
			if len(n.Args) > 0 {
				return nil, fmt.Errorf("primitive %s cannot take arguments", name)
			}
			ref = model.Primitive(name)
		default:
			args := make([]*model.TypeRef, 0, len(n.Args))
			for _, a := range n.Args {
				r, err := s.convert(a)
				if err != nil {
					return nil, err
				}
				args = append(args, r)
			}
			ref = model.Declared(s.resolveName(n.Name.Parts), args...)
		}
	}
	for _, a := range n.Annotations {
		ref.Annotations = append(ref.Annotations, model.Annotation{Name: a.String()})
	}
	for range n.Dims {
		ref = model.ArrayOf(ref)
	}
	return ref, nil
}

// parseTypeParams parses type parameter declarations. Bounds may refer to
// any parameter of the same list.
func (s *scope) parseTypeParams(exprs []string) ([]model.GenericParam, error) {
	nodes := make([]*typeParamExpr, 0, len(exprs))
	params := make([]model.GenericParam, 0, len(exprs))
	for _, e := range exprs {
		n, err := typeParamParser.ParseString("", e)
		if err != nil {
			return nil, fmt.Errorf("type parameter %q: %w", e, err)
		}
		nodes = append(nodes, n)
		params = append(params, model.GenericParam{Name: n.Name})
	}
	inner := s.with(params)
	for i, n := range nodes {
		for _, b := range n.Bounds {
			ref, err := inner.convert(b)
			if err != nil {
				return nil, fmt.Errorf("bound of %s: %w", n.Name, err)
			}
			params[i].Bounds = append(params[i].Bounds, ref)
		}
	}
	return params, nil
}

// ParseType parses a type expression against the built-in declarations and
// the given imports. Unresolvable simple names are left unqualified.
func ParseType(expr string, imports ...string) (*model.TypeRef, error) {
	u := model.NewUniverse()
	s := newScope("", imports, func(fqn string) bool {
		_, ok := u.Lookup(fqn)
		return ok
	})
	ref, _, err := s.parseType(expr)
	return ref, err
}
