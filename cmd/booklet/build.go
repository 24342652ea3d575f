// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/booklet/internal/booklet"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build booklet.docx from the submissions table",
	Long: `Build reads the submissions table, sorts it by title and writes one
booklet section per submission. Nothing is written when the table is
missing or lacks a required column.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	_, err := booklet.Build(cfg.Build, logger, os.Stdout)
	return err
}

func init() {
	stringFlag(buildCmd.Flags(), "input", "input", "submissions CSV file")
	stringFlag(buildCmd.Flags(), "output", "output", "booklet DOCX file")
	stringFlag(buildCmd.Flags(), "styles", "styles", "YAML stylesheet overriding the built-in styles")

	rootCmd.AddCommand(buildCmd)
}
