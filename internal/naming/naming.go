// Package naming holds the pure naming policies used by generators: method,
// parameter and builder type names derived from field names.
package naming

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// Capitalize upper-cases the first rune.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Decapitalize follows the JavaBeans rule: a name starting with two
// upper-case runes (URL) is left unchanged.
func Decapitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	if len(r) > 1 && unicode.IsUpper(r[0]) && unicode.IsUpper(r[1]) {
		return s
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// IsSetterName reports names of the form set + upper-case rune.
func IsSetterName(name string) bool {
	return hasAccessorPrefix(name, "set")
}

func hasAccessorPrefix(name, prefix string) bool {
	if !strings.HasPrefix(name, prefix) || len(name) == len(prefix) {
		return false
	}
	return unicode.IsUpper([]rune(name[len(prefix):])[0])
}

// PropertyFromSetter derives the field name from a setter name.
func PropertyFromSetter(name string) string {
	return Decapitalize(strings.TrimPrefix(name, "set"))
}

// SetterName is set + capitalized field.
func SetterName(field string) string { return "set" + Capitalize(field) }

// GetterName is get + capitalized field.
func GetterName(field string) string { return "get" + Capitalize(field) }

// BooleanGetterName is is + capitalized field.
func BooleanGetterName(field string) string { return "is" + Capitalize(field) }

// BuilderName appends the builder suffix to a simple type name. Nested
// names (Outer.Inner) are flattened.
func BuilderName(simple, suffix string) string {
	return strings.ReplaceAll(simple, ".", "") + suffix
}

// MethodName applies an optional prefix (with, set) to a field name.
func MethodName(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + Capitalize(field)
}

// AddMethodName names the single-element helper of a collection field
// after the singular form of the field: tasks -> addTask.
func AddMethodName(prefix, field string) string {
	singular := inflection.Singular(field)
	if singular == "" {
		singular = field
	}
	return prefix + Capitalize(singular)
}

// ElementParamName is the parameter name of an add-element helper.
func ElementParamName(field string) string {
	singular := inflection.Singular(field)
	if singular == "" || singular == field {
		return field + "Element"
	}
	return Identifier(singular)
}

func SupplierParamName(field string) string { return field + "Supplier" }

func ConsumerParamName(field string) string { return field + "Consumer" }

func BuilderParamName(field string) string { return field + "Builder" }

// Identifier escapes reserved words by appending an underscore.
func Identifier(name string) string {
	if _, ok := reserved[name]; ok {
		return name + "_"
	}
	return name
}

var reserved = map[string]struct{}{
	"abstract": {}, "assert": {}, "boolean": {}, "break": {}, "byte": {}, "case": {}, "catch": {},
	"char": {}, "class": {}, "const": {}, "continue": {}, "default": {}, "do": {}, "double": {},
	"else": {}, "enum": {}, "extends": {}, "final": {}, "finally": {}, "float": {}, "for": {},
	"goto": {}, "if": {}, "implements": {}, "import": {}, "instanceof": {}, "int": {},
	"interface": {}, "long": {}, "native": {}, "new": {}, "package": {}, "private": {},
	"protected": {}, "public": {}, "return": {}, "short": {}, "static": {}, "strictfp": {},
	"super": {}, "switch": {}, "synchronized": {}, "this": {}, "throw": {}, "throws": {},
	"transient": {}, "try": {}, "void": {}, "volatile": {}, "while": {}, "true": {}, "false": {},
	"null": {}, "var": {}, "record": {}, "yield": {},
}
