package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Descriptor is one structural-model file: the declarations of a single
// package with the imports their type expressions are written against.
//
//	package: com.acme
//	imports: [java.util.List, java.util.*]
//	types:
//	  - name: Project
//	    annotations: [GenerateBuilder]
//	    constructors:
//	      - params:
//	          - {name: name, type: "@NotNull String"}
type Descriptor struct {
	Package string     `yaml:"package" json:"package" validate:"required"`
	Imports []string   `yaml:"imports,omitempty" json:"imports,omitempty"`
	Types   []TypeDesc `yaml:"types" json:"types" validate:"dive"`
}

type TypeDesc struct {
	Name         string           `yaml:"name" json:"name" validate:"required"`
	Kind         string           `yaml:"kind,omitempty" json:"kind,omitempty" validate:"omitempty,oneof=class record interface enum annotation"`
	Modifiers    []string         `yaml:"modifiers,omitempty" json:"modifiers,omitempty"`
	TypeParams   []string         `yaml:"typeParams,omitempty" json:"typeParams,omitempty"`
	Extends      string           `yaml:"extends,omitempty" json:"extends,omitempty"`
	Implements   []string         `yaml:"implements,omitempty" json:"implements,omitempty"`
	Annotations  []AnnotationDesc `yaml:"annotations,omitempty" json:"annotations,omitempty" validate:"dive"`
	Constructors []ExecutableDesc `yaml:"constructors,omitempty" json:"constructors,omitempty" validate:"dive"`
	Methods      []ExecutableDesc `yaml:"methods,omitempty" json:"methods,omitempty" validate:"dive"`
	Doc          string           `yaml:"doc,omitempty" json:"doc,omitempty"`
	// Library marks declarations of third-party types described only so
	// that supertype walks can see them.
	Library bool `yaml:"library,omitempty" json:"library,omitempty"`
}

// ExecutableDesc describes a constructor or a method. Name and Returns are
// ignored for constructors; an empty Returns means void.
type ExecutableDesc struct {
	Name        string           `yaml:"name,omitempty" json:"name,omitempty"`
	Params      []ParamDesc      `yaml:"params,omitempty" json:"params,omitempty" validate:"dive"`
	Returns     string           `yaml:"returns,omitempty" json:"returns,omitempty"`
	Throws      []string         `yaml:"throws,omitempty" json:"throws,omitempty"`
	Modifiers   []string         `yaml:"modifiers,omitempty" json:"modifiers,omitempty"`
	TypeParams  []string         `yaml:"typeParams,omitempty" json:"typeParams,omitempty"`
	Annotations []AnnotationDesc `yaml:"annotations,omitempty" json:"annotations,omitempty" validate:"dive"`
	DeclaredBy  string           `yaml:"declaredBy,omitempty" json:"declaredBy,omitempty"`
	Doc         string           `yaml:"doc,omitempty" json:"doc,omitempty"`
}

type ParamDesc struct {
	Name        string           `yaml:"name" json:"name" validate:"required"`
	Type        string           `yaml:"type" json:"type" validate:"required"`
	Annotations []AnnotationDesc `yaml:"annotations,omitempty" json:"annotations,omitempty" validate:"dive"`
	Doc         string           `yaml:"doc,omitempty" json:"doc,omitempty"`
}

// AnnotationDesc is written either as a bare name or as a mapping with
// values:
//
//	- NotNull
//	- name: BuilderOptions
//	  values: {suffix: Maker}
type AnnotationDesc struct {
	Name   string            `yaml:"name" json:"name" validate:"required"`
	Values map[string]string `yaml:"values,omitempty" json:"values,omitempty"`
}

func (a *AnnotationDesc) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		a.Name = node.Value
		return nil
	case yaml.MappingNode:
		type plain AnnotationDesc
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*a = AnnotationDesc(p)
		return nil
	}
	return fmt.Errorf("line %d: annotation must be a name or a mapping", node.Line)
}

// Decode reads a descriptor. JSON input is accepted as YAML.
func Decode(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	if len(d.Types) == 0 {
		return &d, nil
	}
	if err := validate.Struct(&d); err != nil {
		return nil, err
	}
	return &d, nil
}
