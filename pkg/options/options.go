package options

import (
	"path/filepath"
	"strings"
)

// Format selects the encoding of emitted definitions.
type Format string

const (
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatMsgpack:
		return ".msgpack"
	}
	return ".yaml"
}

// Options control a generation run.
//
// InDir             – directory holding structural-model descriptors
// OutDir            – output directory for builder definitions
// ModuleFile        – file name (without extension) of the module descriptor
// Format            – yaml, json or msgpack
// Workers           – number of types assembled concurrently
// GeneratorManifest – optional manifest selecting the generators to run
// Builder           – project-wide builder configuration
type Options struct {
	InDir             string `json:"in_dir,omitempty" yaml:"in_dir,omitempty" toml:"in_dir,omitempty" mapstructure:"in_dir,omitempty"`
	OutDir            string `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	ModuleFile        string `json:"module_file,omitempty" yaml:"module_file,omitempty" toml:"module_file,omitempty" mapstructure:"module_file,omitempty"`
	Format            Format `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty" mapstructure:"format,omitempty" validate:"omitempty,oneof=yaml json msgpack"`
	Workers           int    `json:"workers,omitempty" yaml:"workers,omitempty" toml:"workers,omitempty" mapstructure:"workers,omitempty" validate:"gte=0"`
	GeneratorManifest string `json:"generator_manifest,omitempty" yaml:"generator_manifest,omitempty" toml:"generator_manifest,omitempty" mapstructure:"generator_manifest,omitempty"`
	Builder           Config `json:"builder" yaml:"builder" toml:"builder" mapstructure:"builder"`
}

func NewOptions() *Options {
	return &Options{
		InDir:      ".",
		OutDir:     "builders",
		ModuleFile: "module",
		Format:     FormatYAML,
		Workers:    4,
		Builder:    DefaultConfig(),
	}
}

// Normalize fills empty values and validates the result.
func (o *Options) Normalize() error {
	if o.InDir == "" {
		o.InDir = "."
	}
	if strings.Contains(o.InDir, ".") {
		o.InDir, _ = filepath.Abs(o.InDir)
	}
	if len(o.OutDir) == 0 {
		o.OutDir = "builders"
	}
	if strings.Contains(o.OutDir, ".") {
		o.OutDir, _ = filepath.Abs(o.OutDir)
	}
	if len(o.ModuleFile) == 0 {
		o.ModuleFile = "module"
	}
	if o.Format == "" {
		o.Format = FormatYAML
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.Builder.Suffix == "" {
		o.Builder = DefaultConfig()
	}
	if err := validate.Struct(o); err != nil {
		return err
	}
	return o.Builder.Validate()
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInDir(d string) Option             { return func(o *Options) { o.InDir = d } }
func WithOutDir(d string) Option            { return func(o *Options) { o.OutDir = d } }
func WithModuleFile(f string) Option        { return func(o *Options) { o.ModuleFile = f } }
func WithFormat(f Format) Option            { return func(o *Options) { o.Format = f } }
func WithWorkers(n int) Option              { return func(o *Options) { o.Workers = n } }
func WithGeneratorManifest(p string) Option { return func(o *Options) { o.GeneratorManifest = p } }
func WithBuilderConfig(c Config) Option     { return func(o *Options) { o.Builder = c } }
func WithSuffix(s string) Option            { return func(o *Options) { o.Builder.Suffix = s } }
func WithExcludeMethods(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.Builder.ExcludeMethods = append(o.Builder.ExcludeMethods, strings.TrimSpace(n))
		}
	}
}
