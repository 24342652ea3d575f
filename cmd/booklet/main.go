// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the booklet CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/booklet/internal/ingest"
	"github.com/pdiddy/booklet/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built before every command runs.
var logger = zap.NewNop()

// rootCmd is the base command for the booklet CLI. Run without arguments
// it builds the booklet.
var rootCmd = &cobra.Command{
	Use:   "booklet",
	Short: "Build the conference session booklet from a submissions table",
	Long: `booklet reads chep_data.csv from the working directory and writes
booklet.docx: one section per submission, ordered by title, with authors
grouped by affiliation, the abstract, the proposal text and references.

Subcommands keep a searchable catalog of the rendered sessions and export
the booklet to PDF through a converter container.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		applyFlagOverrides(cmd)

		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if viper.GetBool("verbose") {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./booklet.yaml or ~/.config/booklet/booklet.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func setDefaults() {
	viper.SetDefault("input", types.DefaultInputPath)
	viper.SetDefault("output", types.DefaultOutputPath)
	viper.SetDefault("styles", "")
	viper.SetDefault("catalog.dir", types.DefaultCatalogDir)
	viper.SetDefault("catalog.max_results", types.DefaultMaxResults)
	viper.SetDefault("pdf.image", types.DefaultPDFImage)
	viper.SetDefault("pdf.output", types.DefaultPDFOutput)
	viper.SetDefault("pdf.runtime", "")
	viper.SetDefault("verbose", false)
}

func initConfig() {
	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("booklet")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "booklet"))
		}
	}

	viper.SetEnvPrefix("BOOKLET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig collects the effective settings from flags, environment and
// config file.
func loadConfig() types.Config {
	return types.Config{
		Build: types.BuildConfig{
			InputPath:  viper.GetString("input"),
			OutputPath: viper.GetString("output"),
			StylesPath: viper.GetString("styles"),
		},
		Catalog: types.CatalogConfig{
			Dir:        viper.GetString("catalog.dir"),
			MaxResults: viper.GetInt("catalog.max_results"),
		},
		PDF: types.PDFConfig{
			Image:      viper.GetString("pdf.image"),
			OutputPath: viper.GetString("pdf.output"),
			Runtime:    viper.GetString("pdf.runtime"),
		},
		Verbose: viper.GetBool("verbose"),
	}
}

// errorMessage maps a command failure to the line printed before exiting.
func errorMessage(err error, cfg types.Config) string {
	var colErr *ingest.MissingColumnError
	switch {
	case errors.Is(err, ingest.ErrInputNotFound):
		return fmt.Sprintf("Error: CSV file '%s' not found. Please ensure it is in the working directory.", cfg.Build.InputPath)
	case errors.As(err, &colErr):
		return fmt.Sprintf("Error: Missing required column '%s' in the CSV file.", colErr.Column)
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(errorMessage(err, loadConfig()))
		os.Exit(1)
	}
}
