// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/booklet/internal/booklet"
	"github.com/pdiddy/booklet/internal/container"
	"github.com/pdiddy/booklet/internal/pdf"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Convert booklet.docx to a print-ready PDF",
	Long: `PDF pipes the booklet through a local converter image (docker or podman)
whose entrypoint reads DOCX on stdin and writes PDF on stdout. The image is
not pulled; it must already exist locally.

With --build the booklet is rebuilt from the submissions table first.`,
	Args: cobra.NoArgs,
	RunE: runPDF,
}

func runPDF(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	ctx := cmd.Context()

	if rebuild, _ := cmd.Flags().GetBool("build"); rebuild {
		if _, err := booklet.Build(cfg.Build, logger, os.Stdout); err != nil {
			return err
		}
	}

	rt, err := container.DetectRuntime(ctx, cfg.PDF.Runtime)
	if err != nil {
		return err
	}
	logger.Debug("container runtime detected", zap.String("runtime", rt.Name()))

	conv, err := pdf.NewConverter(ctx, rt, cfg.PDF.Image, logger)
	if err != nil {
		return err
	}

	n, err := conv.Convert(ctx, cfg.Build.OutputPath, cfg.PDF.OutputPath)
	if err != nil {
		return err
	}
	fmt.Printf("PDF created successfully: '%s' (%d bytes)\n", cfg.PDF.OutputPath, n)
	return nil
}

func init() {
	pdfCmd.Flags().Bool("build", false, "rebuild the booklet before converting")
	stringFlag(pdfCmd.Flags(), "docx", "output", "booklet DOCX file to convert")
	stringFlag(pdfCmd.Flags(), "output", "pdf.output", "PDF file to write")
	stringFlag(pdfCmd.Flags(), "image", "pdf.image", "converter container image")
	stringFlag(pdfCmd.Flags(), "runtime", "pdf.runtime", "container runtime: docker or podman")

	rootCmd.AddCommand(pdfCmd)
}
