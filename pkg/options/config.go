package options

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Access is a generated-code visibility level.
type Access string

const (
	AccessPublic    Access = "public"
	AccessProtected Access = "protected"
	AccessPackage   Access = "package"
	AccessPrivate   Access = "private"
)

// Config is the resolved set of builder toggles for one target type. It is
// passed by value and never mutated after resolution.
type Config struct {
	Suffix          string `json:"suffix" yaml:"suffix" mapstructure:"suffix" validate:"required"`
	SetterPrefix    string `json:"setter_prefix" yaml:"setter_prefix" mapstructure:"setter_prefix"`
	AddPrefix       string `json:"add_prefix" yaml:"add_prefix" mapstructure:"add_prefix" validate:"required"`
	BuilderAccess   Access `json:"builder_access" yaml:"builder_access" mapstructure:"builder_access" validate:"oneof=public protected package private"`
	MethodAccess    Access `json:"method_access" yaml:"method_access" mapstructure:"method_access" validate:"oneof=public protected package private"`
	FactoryMethod   string `json:"factory_method" yaml:"factory_method" mapstructure:"factory_method" validate:"required"`
	FromMethod      string `json:"from_method" yaml:"from_method" mapstructure:"from_method" validate:"required"`
	BuildMethod     string `json:"build_method" yaml:"build_method" mapstructure:"build_method" validate:"required"`
	WithInterface   bool   `json:"with_interface" yaml:"with_interface" mapstructure:"with_interface"`
	WithName        string `json:"with_interface_name" yaml:"with_interface_name" mapstructure:"with_interface_name" validate:"required"`
	WithMethod      string `json:"with_method" yaml:"with_method" mapstructure:"with_method" validate:"required"`
	ToBuilderMethod string `json:"to_builder_method" yaml:"to_builder_method" mapstructure:"to_builder_method" validate:"required"`

	Supplier           bool `json:"supplier" yaml:"supplier" mapstructure:"supplier"`
	Consumer           bool `json:"consumer" yaml:"consumer" mapstructure:"consumer"`
	NestedBuilder      bool `json:"nested_builder" yaml:"nested_builder" mapstructure:"nested_builder"`
	CollectionConsumer bool `json:"collection_consumer" yaml:"collection_consumer" mapstructure:"collection_consumer"`
	CollectionLiterals bool `json:"collection_literals" yaml:"collection_literals" mapstructure:"collection_literals"`
	AddElement         bool `json:"add_element" yaml:"add_element" mapstructure:"add_element"`
	StringHelpers      bool `json:"string_helpers" yaml:"string_helpers" mapstructure:"string_helpers"`
	ValidateNonNull    bool `json:"validate_non_null" yaml:"validate_non_null" mapstructure:"validate_non_null"`

	TargetMarker      string   `json:"target_marker" yaml:"target_marker" mapstructure:"target_marker" validate:"required"`
	ConstructorMarker string   `json:"constructor_marker" yaml:"constructor_marker" mapstructure:"constructor_marker" validate:"required"`
	IgnoreMarker      string   `json:"ignore_marker" yaml:"ignore_marker" mapstructure:"ignore_marker" validate:"required"`
	OptionsMarker     string   `json:"options_marker" yaml:"options_marker" mapstructure:"options_marker" validate:"required"`
	NonNullMarkers    []string `json:"non_null_markers" yaml:"non_null_markers" mapstructure:"non_null_markers"`
	RuntimePackage    string   `json:"runtime_package" yaml:"runtime_package" mapstructure:"runtime_package" validate:"required"`
	ExcludeMethods    []string `json:"exclude_methods,omitempty" yaml:"exclude_methods,omitempty" mapstructure:"exclude_methods"`
}

// KeyKind is the value type of a configuration key.
type KeyKind int

const (
	KindBool KeyKind = iota
	KindString
	KindAccess
	KindList
)

// Key describes one configuration key: its value type, its default and how
// it is stored on Config.
type Key struct {
	Name    string
	Kind    KeyKind
	Default string
	set     func(c *Config, v string)
	get     func(c *Config) string
}

func boolKey(name string, def bool, field func(*Config) *bool) Key {
	return Key{
		Name:    name,
		Kind:    KindBool,
		Default: strconv.FormatBool(def),
		set:     func(c *Config, v string) { *field(c), _ = strconv.ParseBool(v) },
		get:     func(c *Config) string { return strconv.FormatBool(*field(c)) },
	}
}

func stringKey(name, def string, field func(*Config) *string) Key {
	return Key{
		Name:    name,
		Kind:    KindString,
		Default: def,
		set:     func(c *Config, v string) { *field(c) = v },
		get:     func(c *Config) string { return *field(c) },
	}
}

func accessKey(name string, def Access, field func(*Config) *Access) Key {
	return Key{
		Name:    name,
		Kind:    KindAccess,
		Default: string(def),
		set:     func(c *Config, v string) { *field(c) = Access(v) },
		get:     func(c *Config) string { return string(*field(c)) },
	}
}

func listKey(name, def string, field func(*Config) *[]string) Key {
	return Key{
		Name:    name,
		Kind:    KindList,
		Default: def,
		set:     func(c *Config, v string) { *field(c) = splitList(v) },
		get:     func(c *Config) string { return strings.Join(*field(c), ",") },
	}
}

// Schema is the table of every configuration key with its default.
var Schema = []Key{
	stringKey("suffix", "Builder", func(c *Config) *string { return &c.Suffix }),
	stringKey("setter_prefix", "", func(c *Config) *string { return &c.SetterPrefix }),
	stringKey("add_prefix", "add", func(c *Config) *string { return &c.AddPrefix }),
	accessKey("builder_access", AccessPublic, func(c *Config) *Access { return &c.BuilderAccess }),
	accessKey("method_access", AccessPublic, func(c *Config) *Access { return &c.MethodAccess }),
	stringKey("factory_method", "builder", func(c *Config) *string { return &c.FactoryMethod }),
	stringKey("from_method", "from", func(c *Config) *string { return &c.FromMethod }),
	stringKey("build_method", "build", func(c *Config) *string { return &c.BuildMethod }),
	boolKey("with_interface", true, func(c *Config) *bool { return &c.WithInterface }),
	stringKey("with_interface_name", "With", func(c *Config) *string { return &c.WithName }),
	stringKey("with_method", "with", func(c *Config) *string { return &c.WithMethod }),
	stringKey("to_builder_method", "toBuilder", func(c *Config) *string { return &c.ToBuilderMethod }),
	boolKey("supplier", true, func(c *Config) *bool { return &c.Supplier }),
	boolKey("consumer", true, func(c *Config) *bool { return &c.Consumer }),
	boolKey("nested_builder", true, func(c *Config) *bool { return &c.NestedBuilder }),
	boolKey("collection_consumer", true, func(c *Config) *bool { return &c.CollectionConsumer }),
	boolKey("collection_literals", true, func(c *Config) *bool { return &c.CollectionLiterals }),
	boolKey("add_element", true, func(c *Config) *bool { return &c.AddElement }),
	boolKey("string_helpers", true, func(c *Config) *bool { return &c.StringHelpers }),
	boolKey("validate_non_null", true, func(c *Config) *bool { return &c.ValidateNonNull }),
	stringKey("target_marker", "GenerateBuilder", func(c *Config) *string { return &c.TargetMarker }),
	stringKey("constructor_marker", "BuilderConstructor", func(c *Config) *string { return &c.ConstructorMarker }),
	stringKey("ignore_marker", "BuilderIgnore", func(c *Config) *string { return &c.IgnoreMarker }),
	stringKey("options_marker", "BuilderOptions", func(c *Config) *string { return &c.OptionsMarker }),
	listKey("non_null_markers", "NotNull,NonNull,Nonnull", func(c *Config) *[]string { return &c.NonNullMarkers }),
	stringKey("runtime_package", "io.buildergen.runtime", func(c *Config) *string { return &c.RuntimePackage }),
	listKey("exclude_methods", "", func(c *Config) *[]string { return &c.ExcludeMethods }),
}

var schemaIndex = func() map[string]Key {
	m := make(map[string]Key, len(Schema))
	for _, k := range Schema {
		m[k.Name] = k
	}
	return m
}()

// LookupKey returns the schema entry for name.
func LookupKey(name string) (Key, bool) {
	k, ok := schemaIndex[name]
	return k, ok
}

// DefaultConfig returns the project-wide defaults from Schema.
func DefaultConfig() Config {
	var c Config
	for _, k := range Schema {
		k.set(&c, k.Default)
	}
	return c
}

// DefaultMap exposes the defaults as key/value pairs, suitable for seeding
// a configuration loader.
func DefaultMap() map[string]any {
	m := make(map[string]any, len(Schema))
	for _, k := range Schema {
		switch k.Kind {
		case KindBool:
			b, _ := strconv.ParseBool(k.Default)
			m[k.Name] = b
		case KindList:
			m[k.Name] = splitList(k.Default)
		default:
			m[k.Name] = k.Default
		}
	}
	return m
}

// Override returns a copy of c with values applied through Schema. Keys are
// applied in sorted order so errors are reported deterministically.
func (c Config) Override(values map[string]string) (Config, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := c.clone()
	for _, name := range keys {
		key, ok := schemaIndex[name]
		if !ok {
			return c, fmt.Errorf("unknown builder option %q", name)
		}
		v := strings.TrimSpace(values[name])
		if err := key.check(v); err != nil {
			return c, fmt.Errorf("builder option %q: %w", name, err)
		}
		key.set(&out, v)
	}
	if err := out.Validate(); err != nil {
		return c, err
	}
	return out, nil
}

// Get returns the textual value of a key.
func (c Config) Get(name string) (string, bool) {
	key, ok := schemaIndex[name]
	if !ok {
		return "", false
	}
	return key.get(&c), true
}

func (k Key) check(v string) error {
	switch k.Kind {
	case KindBool:
		if _, err := strconv.ParseBool(v); err != nil {
			return fmt.Errorf("expected boolean, got %q", v)
		}
	case KindAccess:
		switch Access(v) {
		case AccessPublic, AccessProtected, AccessPackage, AccessPrivate:
		default:
			return fmt.Errorf("expected access level, got %q", v)
		}
	}
	return nil
}

func (c Config) clone() Config {
	out := c
	out.NonNullMarkers = append([]string(nil), c.NonNullMarkers...)
	out.ExcludeMethods = append([]string(nil), c.ExcludeMethods...)
	return out
}

var validate = validator.New()

// Validate checks the struct constraints of c.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid builder configuration: %w", err)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
