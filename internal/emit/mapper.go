// Package emit encodes builder definitions for an external renderer.
package emit

import (
	"github.com/cmmoran/buildergen/internal/model"
)

// DocumentVersion is stamped on every emitted document.
const DocumentVersion = "v1"

type Document struct {
	APIVersion   string        `yaml:"apiVersion" json:"apiVersion" msgpack:"apiVersion"`
	Target       string        `yaml:"target" json:"target" msgpack:"target"`
	Builder      string        `yaml:"builder" json:"builder" msgpack:"builder"`
	Package      string        `yaml:"package" json:"package" msgpack:"package"`
	Access       string        `yaml:"access" json:"access" msgpack:"access"`
	TypeParams   []string      `yaml:"typeParams,omitempty" json:"typeParams,omitempty" msgpack:"typeParams,omitempty"`
	Doc          string        `yaml:"doc,omitempty" json:"doc,omitempty" msgpack:"doc,omitempty"`
	Fields       []FieldDoc    `yaml:"fields" json:"fields" msgpack:"fields"`
	Properties   []PropertyDoc `yaml:"properties" json:"properties" msgpack:"properties"`
	Constructors []MethodDoc   `yaml:"constructors" json:"constructors" msgpack:"constructors"`
	Methods      []MethodDoc   `yaml:"methods" json:"methods" msgpack:"methods"`
	Nested       []NestedDoc   `yaml:"nested,omitempty" json:"nested,omitempty" msgpack:"nested,omitempty"`
}

type FieldDoc struct {
	Name string `yaml:"name" json:"name" msgpack:"name"`
	Type string `yaml:"type" json:"type" msgpack:"type"`
}

// PropertyDoc describes a discovered field and the methods it ended up with.
type PropertyDoc struct {
	Name    string   `yaml:"name" json:"name" msgpack:"name"`
	Type    string   `yaml:"type" json:"type" msgpack:"type"`
	Shape   string   `yaml:"shape" json:"shape" msgpack:"shape"`
	Origin  string   `yaml:"origin" json:"origin" msgpack:"origin"`
	Getter  string   `yaml:"getter,omitempty" json:"getter,omitempty" msgpack:"getter,omitempty"`
	Setter  string   `yaml:"setter,omitempty" json:"setter,omitempty" msgpack:"setter,omitempty"`
	NonNull bool     `yaml:"nonNull,omitempty" json:"nonNull,omitempty" msgpack:"nonNull,omitempty"`
	Methods []string `yaml:"methods,omitempty" json:"methods,omitempty" msgpack:"methods,omitempty"`
}

type MethodDoc struct {
	Name        string     `yaml:"name" json:"name" msgpack:"name"`
	Signature   string     `yaml:"signature" json:"signature" msgpack:"signature"`
	Modifiers   []string   `yaml:"modifiers,omitempty" json:"modifiers,omitempty" msgpack:"modifiers,omitempty"`
	TypeParams  []string   `yaml:"typeParams,omitempty" json:"typeParams,omitempty" msgpack:"typeParams,omitempty"`
	Annotations []string   `yaml:"annotations,omitempty" json:"annotations,omitempty" msgpack:"annotations,omitempty"`
	Params      []ParamDoc `yaml:"params,omitempty" json:"params,omitempty" msgpack:"params,omitempty"`
	Returns     string     `yaml:"returns,omitempty" json:"returns,omitempty" msgpack:"returns,omitempty"`
	Throws      []string   `yaml:"throws,omitempty" json:"throws,omitempty" msgpack:"throws,omitempty"`
	Body        BodyDoc    `yaml:"body" json:"body" msgpack:"body"`
	Priority    int        `yaml:"priority" json:"priority" msgpack:"priority"`
	Generator   string     `yaml:"generator" json:"generator" msgpack:"generator"`
	Field       string     `yaml:"field,omitempty" json:"field,omitempty" msgpack:"field,omitempty"`
	Doc         string     `yaml:"doc,omitempty" json:"doc,omitempty" msgpack:"doc,omitempty"`
}

type ParamDoc struct {
	Name        string   `yaml:"name" json:"name" msgpack:"name"`
	Type        string   `yaml:"type" json:"type" msgpack:"type"`
	Varargs     bool     `yaml:"varargs,omitempty" json:"varargs,omitempty" msgpack:"varargs,omitempty"`
	Annotations []string `yaml:"annotations,omitempty" json:"annotations,omitempty" msgpack:"annotations,omitempty"`
}

// BodyDoc is a code template. Format references Args as $name:L (literal),
// $name:N (name) and $name:T (type).
type BodyDoc struct {
	Format string   `yaml:"format" json:"format" msgpack:"format"`
	Args   []ArgDoc `yaml:"args,omitempty" json:"args,omitempty" msgpack:"args,omitempty"`
}

type ArgDoc struct {
	Name  string `yaml:"name" json:"name" msgpack:"name"`
	Kind  string `yaml:"kind" json:"kind" msgpack:"kind"`
	Value string `yaml:"value" json:"value" msgpack:"value"`
}

type NestedDoc struct {
	Name       string      `yaml:"name" json:"name" msgpack:"name"`
	Kind       string      `yaml:"kind" json:"kind" msgpack:"kind"`
	Modifiers  []string    `yaml:"modifiers,omitempty" json:"modifiers,omitempty" msgpack:"modifiers,omitempty"`
	TypeParams []string    `yaml:"typeParams,omitempty" json:"typeParams,omitempty" msgpack:"typeParams,omitempty"`
	Doc        string      `yaml:"doc,omitempty" json:"doc,omitempty" msgpack:"doc,omitempty"`
	Methods    []MethodDoc `yaml:"methods" json:"methods" msgpack:"methods"`
}

// ToDocument maps a definition onto its wire form. Every type is rendered
// as fully qualified source text.
func ToDocument(def *model.BuilderDefinition) *Document {
	doc := &Document{
		APIVersion:   DocumentVersion,
		Target:       def.Target.FQN(),
		Builder:      def.Builder.FQN(),
		Package:      def.Builder.Package,
		Access:       string(def.Config.BuilderAccess),
		TypeParams:   typeParams(def.TypeParams),
		Doc:          def.Doc,
		Fields:       make([]FieldDoc, 0, len(def.Fields)),
		Properties:   make([]PropertyDoc, 0, len(def.Fields)),
		Constructors: methods(def.Constructors),
		Methods:      methods(def.Methods),
	}
	for _, f := range def.Fields {
		doc.Fields = append(doc.Fields, FieldDoc{Name: f.Name, Type: f.Type.String()})
	}
	for _, f := range def.AllFields() {
		p := PropertyDoc{
			Name:    f.Name,
			Type:    f.Type.String(),
			Shape:   f.Shape.Kind.String(),
			Origin:  f.Origin.String(),
			Getter:  f.Getter,
			Setter:  f.Setter,
			NonNull: f.NonNull,
		}
		for _, m := range f.Methods {
			p.Methods = append(p.Methods, m.Signature())
		}
		doc.Properties = append(doc.Properties, p)
	}
	for _, n := range def.Nested {
		doc.Nested = append(doc.Nested, NestedDoc{
			Name:       n.Name,
			Kind:       n.Kind.String(),
			Modifiers:  n.Modifiers.Names(),
			TypeParams: typeParams(n.TypeParams),
			Doc:        n.Doc,
			Methods:    methods(n.Methods),
		})
	}
	return doc
}

func methods(ms []*model.Method) []MethodDoc {
	out := make([]MethodDoc, 0, len(ms))
	for _, m := range ms {
		md := MethodDoc{
			Name:        m.Name,
			Signature:   m.Signature(),
			Modifiers:   m.Modifiers.Names(),
			TypeParams:  typeParams(m.TypeParams),
			Annotations: m.Annotations,
			Priority:    m.Priority,
			Generator:   m.Generator,
			Field:       m.Field,
			Doc:         m.Doc,
		}
		if m.Returns != nil {
			md.Returns = m.Returns.String()
		}
		for _, t := range m.Throws {
			md.Throws = append(md.Throws, t.String())
		}
		for _, p := range m.Params {
			md.Params = append(md.Params, ParamDoc{
				Name:        p.Name,
				Type:        p.Type.String(),
				Varargs:     p.Varargs,
				Annotations: p.Annotations,
			})
		}
		if m.Body != nil {
			md.Body.Format = m.Body.Format
			for _, a := range m.Body.Args {
				md.Body.Args = append(md.Body.Args, arg(a))
			}
		}
		out = append(out, md)
	}
	return out
}

func arg(a model.TemplateArg) ArgDoc {
	switch a.Kind {
	case model.ArgType:
		return ArgDoc{Name: a.Name, Kind: "type", Value: a.Type.String()}
	case model.ArgName:
		return ArgDoc{Name: a.Name, Kind: "name", Value: a.Literal}
	}
	return ArgDoc{Name: a.Name, Kind: "literal", Value: a.Literal}
}

func typeParams(ps []model.GenericParam) []string {
	if len(ps) == 0 {
		return nil
	}
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}
