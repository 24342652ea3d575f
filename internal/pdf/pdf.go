// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf renders a saved booklet to PDF by piping it through a
// converter container image.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/booklet/internal/container"
)

// pdfMagic opens every PDF file.
var pdfMagic = []byte("%PDF-")

// ErrNotPDF is returned when the container output is not a PDF document.
var ErrNotPDF = errors.New("converter output is not a PDF")

// Converter turns DOCX files into PDF with a container image whose
// entrypoint reads DOCX on stdin and writes PDF on stdout.
type Converter struct {
	runtime container.Runtime
	image   string
	logger  *zap.Logger
}

// NewConverter checks that image is present in rt and returns a Converter
// that runs it.
func NewConverter(ctx context.Context, rt container.Runtime, image string, logger *zap.Logger) (*Converter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("converter image not available in %s: %w", rt.Name(), err)
	}
	return &Converter{runtime: rt, image: image, logger: logger}, nil
}

// Convert reads the DOCX at docxPath and writes the PDF to pdfPath. The
// output file appears only when conversion succeeds. It returns the PDF
// size in bytes.
func (c *Converter) Convert(ctx context.Context, docxPath, pdfPath string) (int, error) {
	in, err := os.Open(docxPath)
	if err != nil {
		return 0, fmt.Errorf("opening booklet %s: %w", docxPath, err)
	}
	defer in.Close()

	c.logger.Debug("converting booklet",
		zap.String("runtime", c.runtime.Name()),
		zap.String("image", c.image),
		zap.String("input", docxPath))

	var out bytes.Buffer
	if err := c.runtime.Run(ctx, c.image, in, &out); err != nil {
		return 0, fmt.Errorf("converting %s: %w", docxPath, err)
	}
	if !bytes.HasPrefix(out.Bytes(), pdfMagic) {
		return 0, fmt.Errorf("converting %s: %w (%d bytes)", docxPath, ErrNotPDF, out.Len())
	}

	if err := writeAtomic(pdfPath, out.Bytes()); err != nil {
		return 0, fmt.Errorf("saving PDF: %w", err)
	}
	return out.Len(), nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
