package cmd

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/buildergen/pkg/options"
)

// LevelTrace sits below debug and enables per-candidate resolver output.
const LevelTrace = slog.Level(-8)

var (
	configFiles    []string
	level, version string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "buildergen",
	Short: "generate builder definitions",
	Long:  "Assemble builder-class definitions from structural type descriptors",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&level, "level", "l", "info", "log level (trace, debug, info, warn, error, debug+1, etc)")
	rootCmd.PersistentFlags().StringSliceVar(&configFiles, "config", []string{}, "config file(s) - multiple config files are merged with last specified file having highest priority")
	setDefaults(viper.GetViper())
}

// setDefaults seeds v with the run and builder defaults so that config files
// only need to carry the keys they change.
func setDefaults(v *viper.Viper) {
	o := options.NewOptions()
	v.SetDefault("in_dir", o.InDir)
	v.SetDefault("out_dir", o.OutDir)
	v.SetDefault("module_file", o.ModuleFile)
	v.SetDefault("format", string(o.Format))
	v.SetDefault("workers", o.Workers)
	for k, val := range options.DefaultMap() {
		v.SetDefault("builder."+k, val)
	}
}

func parseLevel(s string) (slog.Level, error) {
	if strings.EqualFold(s, "trace") {
		return LevelTrace, nil
	}
	var ll slog.Level
	if err := ll.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level: %s", s)
	}
	return ll, nil
}

func newLogger(ll slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       ll,
		ReplaceAttr: nil,
	}))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	ll, err := parseLevel(level)
	if err != nil {
		panic(err)
	}
	l := newLogger(ll)
	slog.SetDefault(l)

	if len(configFiles) > 0 {
		// Use config file from the flag.
		viper.SetConfigFile(configFiles[0])
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/buildergen")
		viper.SetConfigType("yaml")
		viper.SetConfigName("buildergen")
	}

	viper.SetEnvPrefix("BUILDERGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		l.With("config", viper.ConfigFileUsed()).Info("using config file(s)")
	} else {
		l.With("error", err, "config", viper.ConfigFileUsed()).Debug("unable to use config file(s)")
	}
	if len(configFiles) > 1 {
		for _, file := range configFiles[1:] {
			if configBytes, err := os.ReadFile(file); err == nil {
				if err = viper.MergeConfig(bytes.NewReader(configBytes)); err != nil {
					l.With("error", err, "file", file).Warn("failed to merge config file")
				} else {
					l.With("file", file).Info("merged config file")
				}
			}
		}
	}
	if len(version) > 0 {
		viper.Set("version", version)
	}

	// a level in the config file applies unless --level was given
	if llstr := viper.GetString("log.level"); llstr != "" && !rootCmd.PersistentFlags().Changed("level") {
		if ll, err = parseLevel(llstr); err != nil {
			panic(err)
		}
		slog.SetDefault(newLogger(ll))
	}
}

// loadOptions decodes the merged configuration into run options.
func loadOptions(v *viper.Viper) (*options.Options, error) {
	o := options.NewOptions()
	if err := v.Unmarshal(o); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	return o, nil
}
