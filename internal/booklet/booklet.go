// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package booklet drives the booklet build: load submissions, order them by
// title, normalize each one, render it as a document section and save the
// document once.
package booklet

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/booklet/internal/authors"
	"github.com/pdiddy/booklet/internal/docx"
	"github.com/pdiddy/booklet/internal/ingest"
	"github.com/pdiddy/booklet/internal/render"
	"github.com/pdiddy/booklet/pkg/types"
)

// Summary describes a completed build.
type Summary struct {
	Sessions   int
	OutputPath string
}

// Normalize turns a raw submission into a renderable session.
func Normalize(sub types.Submission) types.Session {
	return types.Session{
		Title:       sub.Title,
		AuthorBlock: authors.Format(sub.Authors, sub.Affiliations),
		Abstract:    sub.Abstract,
		Paragraphs:  ingest.SplitProposal(sub.Proposal),
		References:  ingest.SplitReferences(sub.References),
	}
}

// Sessions loads the submissions at inputPath and returns them normalized,
// in title order.
func Sessions(inputPath string) ([]types.Session, error) {
	subs, err := ingest.Load(inputPath)
	if err != nil {
		return nil, err
	}
	ingest.SortByTitle(subs)

	sessions := make([]types.Session, len(subs))
	for i, sub := range subs {
		sessions[i] = Normalize(sub)
	}
	return sessions, nil
}

// Render appends every session to a new document styled with sheet.
func Render(sessions []types.Session, sheet *docx.StyleSheet, logger *zap.Logger) *docx.Document {
	if logger == nil {
		logger = zap.NewNop()
	}
	doc := docx.New(sheet)
	for _, s := range sessions {
		logger.Debug("rendering session",
			zap.String("title", s.Title),
			zap.Int("paragraphs", len(s.Paragraphs)),
			zap.Int("references", len(s.References)))
		render.Session(doc, s)
	}
	return doc
}

// Build reads cfg.InputPath, renders one section per submission and saves
// the document to cfg.OutputPath. Nothing is written unless every step
// before the save succeeds.
func Build(cfg types.BuildConfig, logger *zap.Logger, w io.Writer) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sessions, err := Sessions(cfg.InputPath)
	if err != nil {
		return Summary{}, err
	}
	logger.Info("loaded submissions",
		zap.String("input", cfg.InputPath),
		zap.Int("count", len(sessions)))

	sheet := docx.DefaultStyleSheet()
	if cfg.StylesPath != "" {
		sheet, err = docx.LoadStyleSheet(cfg.StylesPath)
		if err != nil {
			return Summary{}, err
		}
		logger.Info("loaded stylesheet", zap.String("path", cfg.StylesPath))
	}

	doc := Render(sessions, sheet, logger)
	if err := doc.Save(cfg.OutputPath); err != nil {
		return Summary{}, fmt.Errorf("saving booklet: %w", err)
	}

	fmt.Fprintf(w, "Booklet created successfully: '%s'\n", cfg.OutputPath)
	return Summary{Sessions: len(sessions), OutputPath: cfg.OutputPath}, nil
}
