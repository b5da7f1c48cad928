// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the daybook CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/daybook/internal/logging"
	"github.com/pdiddy/daybook/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the daybook CLI.
var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "Convert a daily-letters PDF to JSON page records and back",
	Long: `daybook reads a fixed-layout PDF of daily letters, one letter per page,
and writes one JSON record per page holding the date line, the body
paragraphs, and the closing note. It can also assemble such records back
into a formatted PDF and keep a searchable index of them.

The extract and assemble passes are separate runs: extract reads
Letters.pdf and writes extracted_pages.json; assemble reads
extracted_pages.json and writes Letters_assembled.pdf.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./daybook.yaml or ~/.config/daybook/daybook.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("daybook")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "daybook"))
		}
	}

	viper.SetEnvPrefix("DAYBOOK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	setDefaults(types.DefaultConfig())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so environment variables and the
// config file can override values that have no flag.
func setDefaults(d types.Config) {
	defaults := map[string]any{
		"extract.input":                d.Extraction.Input,
		"extract.output":               d.Extraction.Output,
		"extract.backend":              string(d.Extraction.Backend),
		"extract.expected_pages":       d.Extraction.ExpectedPages,
		"extract.pdftotext_image":      d.Extraction.PdftotextImage,
		"extract.policy.metadata_rule": string(d.Extraction.Policy.MetadataRule),
		"extract.policy.boundary_rule": string(d.Extraction.Policy.BoundaryRule),
		"extract.policy.gap_factor":    d.Extraction.Policy.GapFactor,
		"extract.policy.empty_page":    string(d.Extraction.Policy.EmptyPage),
		"assemble.input":               d.Assembly.Input,
		"assemble.output":              d.Assembly.Output,
		"assemble.date_header":         d.Assembly.DateHeader,
		"index.input":                  d.Index.Input,
		"index.index_dir":              d.Index.IndexDir,
		"index.max_results":            d.Index.MaxResults,
		"log.level":                    d.Log.Level,
		"log.format":                   d.Log.Format,
	}
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

// bindFlags binds the running command's flags to config keys. Binding at
// run time lets different commands share flag names such as --input.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	keys["log-level"] = "log.level"
	keys["log-format"] = "log.format"
	for flag, key := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return fmt.Errorf("binding %s: no flag --%s", key, flag)
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding %s: %w", key, err)
		}
	}
	return nil
}

// loadConfig binds flags, then resolves the configuration with flag,
// environment, config file, and default precedence.
func loadConfig(cmd *cobra.Command, keys map[string]string) (types.Config, *log.Logger, error) {
	if err := bindFlags(cmd, keys); err != nil {
		return types.Config{}, nil, err
	}

	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, nil, fmt.Errorf("reading configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return types.Config{}, nil, err
	}
	return cfg, logger, nil
}

// flagChanged reports whether a flag was set on the command line.
func flagChanged(flags *pflag.FlagSet, name string) bool {
	f := flags.Lookup(name)
	return f != nil && f.Changed
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
