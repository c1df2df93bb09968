package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/buildergen/pkg/action/generate"
	"github.com/cmmoran/buildergen/pkg/options"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

// runFlags maps configuration keys to the flags that override them.
var runFlags = map[string]string{
	"in_dir":                  "input-directory",
	"out_dir":                 "output-directory",
	"module_file":             "module-file",
	"format":                  "format",
	"workers":                 "workers",
	"generator_manifest":      "generators",
	"builder.suffix":          "suffix",
	"builder.exclude_methods": "exclude-methods",
}

// addRunFlags registers the run flags on c.
func addRunFlags(c *cobra.Command) {
	f := c.PersistentFlags()
	f.StringP("input-directory", "i", ".", "directory holding type descriptors")
	f.StringP("output-directory", "o", "builders", "directory to write builder definitions")
	f.StringP("module-file", "m", "module", "file name (without extension) of the module descriptor")
	f.StringP("format", "f", "yaml", "output format: yaml, json or msgpack")
	f.IntP("workers", "w", 4, "types assembled concurrently")
	f.StringP("generators", "g", "", "generator manifest selecting the generators to run")
	f.StringP("suffix", "s", "Builder", "suffix appended to builder names")
	f.StringSlice("exclude-methods", nil, "method name patterns never treated as setters (Type#method or method)")
}

// runOptions binds the flags of the running command and decodes the
// merged configuration. Binding happens here because several commands
// share the keys.
func runOptions(c *cobra.Command) (*options.Options, error) {
	for key, flag := range runFlags {
		if err := viper.BindPFlag(key, c.Flags().Lookup(flag)); err != nil {
			return nil, err
		}
	}
	return loadOptions(viper.GetViper())
}

func NewGenerateCommand() *cobra.Command {
	var genCmd = &cobra.Command{
		Use:   "generate",
		Short: "generate builder definitions",
		Long:  "Assemble a builder definition for every type carrying the target marker",
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := runOptions(c)
			if err != nil {
				return err
			}
			res, err := generate.Generate(c.Context(), opts)
			if res != nil {
				for _, f := range res.Files {
					slog.Debug("wrote builder definition", "file", f)
				}
			}
			return err
		},
	}
	addRunFlags(genCmd)
	return genCmd
}
