// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/booklet/internal/catalog"
	"github.com/pdiddy/booklet/internal/ingest"
	"github.com/pdiddy/booklet/pkg/types"
)

func TestErrorMessage(t *testing.T) {
	cfg := types.Config{Build: types.BuildConfig{InputPath: "chep_data.csv"}}
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "missing input",
			err:  fmt.Errorf("loading submissions: %w", ingest.ErrInputNotFound),
			want: "Error: CSV file 'chep_data.csv' not found. Please ensure it is in the working directory.",
		},
		{
			name: "missing column",
			err:  fmt.Errorf("parsing: %w", &ingest.MissingColumnError{Column: "Abstract"}),
			want: "Error: Missing required column 'Abstract' in the CSV file.",
		},
		{
			name: "anything else",
			err:  errors.New("disk full"),
			want: "An unexpected error occurred: disk full",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage(tt.err, cfg))
		})
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)
	setDefaults()

	cmd := &cobra.Command{Use: "test"}
	stringFlag(cmd.Flags(), "output", "output", "booklet DOCX file")
	stringFlag(cmd.Flags(), "styles", "styles", "stylesheet")
	intFlag(cmd.Flags(), "max-results", "catalog.max_results", "limit")
	require.NoError(t, cmd.ParseFlags([]string{"--output", "out.docx", "--max-results", "5"}))

	applyFlagOverrides(cmd)
	cfg := loadConfig()
	assert.Equal(t, "out.docx", cfg.Build.OutputPath)
	assert.Equal(t, types.DefaultInputPath, cfg.Build.InputPath)
	assert.Empty(t, cfg.Build.StylesPath)
	assert.Equal(t, 5, cfg.Catalog.MaxResults)
	assert.Equal(t, types.DefaultPDFImage, cfg.PDF.Image)
}

func TestFormatSearchOutput(t *testing.T) {
	entries := []catalog.Entry{
		{ID: "active-learning", Position: 0, Session: types.Session{
			Title:       "Active Learning",
			AuthorBlock: "Ann Lee, *Unknown*\nBo Chen, *College C*",
		}},
	}

	var out bytes.Buffer
	require.NoError(t, formatSearchOutput(&out, entries, false))
	assert.Contains(t, out.String(), "Ann Lee, *Unknown*; Bo Chen, *College C*")
	assert.Contains(t, out.String(), "1 results")

	out.Reset()
	require.NoError(t, formatSearchOutput(&out, nil, false))
	assert.Equal(t, "No results found.\n", out.String())

	out.Reset()
	require.NoError(t, formatSearchOutput(&out, nil, true))
	assert.Equal(t, "[]\n", out.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééé...", truncate("éééééééé", 6))
}
