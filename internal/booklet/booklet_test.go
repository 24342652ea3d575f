// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package booklet

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/booklet/internal/docx"
	"github.com/pdiddy/booklet/internal/ingest"
	"github.com/pdiddy/booklet/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const sampleCSV = `Submission title,Submission authors,Affiliations,Abstract,Proposal,References
Zebra Pedagogy,"Jane Doe1, John Smith2","1University A, 2University B",Abstract Z,"Para one.

Para two.","1. Smith, J. (2020).
2. Doe, A. (2021)."
Active Learning,Ann Lee,,Abstract A,Only paragraph.,
Middle Ground,Bo Chen1,1College C,Abstract M,,
`

func writeInput(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, types.DefaultInputPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// documentXML extracts word/document.xml from a saved booklet.
func documentXML(t *testing.T, path string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatal("word/document.xml not found")
	return ""
}

var headingText = regexp.MustCompile(`<w:pStyle w:val="Heading1"></w:pStyle></w:pPr><w:r><w:t xml:space="preserve">([^<]*)</w:t>`)

func TestNormalize(t *testing.T) {
	got := Normalize(types.Submission{
		Title:        "T",
		Authors:      "Jane Doe1, John Smith2",
		Affiliations: "1University A, 2University B",
		Abstract:     "Abs",
		Proposal:     "Para one.\r\n\r\nPara two.",
		References:   "1. Smith, J. (2020).\n2. Doe, A. (2021).",
	})
	assert.Equal(t, types.Session{
		Title:       "T",
		AuthorBlock: "Jane Doe, *University A*\nJohn Smith, *University B*",
		Abstract:    "Abs",
		Paragraphs:  []string{"Para one.", "Para two."},
		References:  []string{"Smith, J. (2020).", "Doe, A. (2021)."},
	}, got)
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	cfg := types.BuildConfig{
		InputPath:  writeInput(t, dir, sampleCSV),
		OutputPath: filepath.Join(dir, types.DefaultOutputPath),
	}

	var out bytes.Buffer
	summary, err := Build(cfg, zaptest.NewLogger(t), &out)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Sessions)
	assert.Contains(t, out.String(), "Booklet created successfully: '"+cfg.OutputPath+"'")

	var titles []string
	for _, m := range headingText.FindAllStringSubmatch(documentXML(t, cfg.OutputPath), -1) {
		titles = append(titles, m[1])
	}
	assert.Equal(t, []string{"Active Learning", "Middle Ground", "Zebra Pedagogy"}, titles)
}

func TestBuildIdempotent(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, sampleCSV)
	first := filepath.Join(dir, "first.docx")
	second := filepath.Join(dir, "second.docx")

	_, err := Build(types.BuildConfig{InputPath: input, OutputPath: first}, nil, io.Discard)
	require.NoError(t, err)
	_, err = Build(types.BuildConfig{InputPath: input, OutputPath: second}, nil, io.Discard)
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildFailuresWriteNothing(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		check   func(t *testing.T, err error)
		noInput bool
	}{
		{
			name:    "missing input file",
			noInput: true,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ingest.ErrInputNotFound)
			},
		},
		{
			name:  "missing column",
			input: "Submission title,Submission authors,Affiliations,Abstract,Proposal\nT,A,,,\n",
			check: func(t *testing.T, err error) {
				var colErr *ingest.MissingColumnError
				require.ErrorAs(t, err, &colErr)
				assert.Equal(t, types.ColumnReferences, colErr.Column)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := filepath.Join(dir, types.DefaultInputPath)
			if !tt.noInput {
				input = writeInput(t, dir, tt.input)
			}
			output := filepath.Join(dir, types.DefaultOutputPath)

			_, err := Build(types.BuildConfig{InputPath: input, OutputPath: output}, nil, io.Discard)
			require.Error(t, err)
			tt.check(t, err)

			_, statErr := os.Stat(output)
			assert.True(t, os.IsNotExist(statErr), "no output file should be created")
		})
	}
}

func TestBuildWithStylesheet(t *testing.T) {
	dir := t.TempDir()
	styles := filepath.Join(dir, "styles.yaml")
	require.NoError(t, os.WriteFile(styles, []byte("styles:\n  Author:\n    font: Georgia\n"), 0o644))

	output := filepath.Join(dir, "out.docx")
	_, err := Build(types.BuildConfig{
		InputPath:  writeInput(t, dir, sampleCSV),
		OutputPath: output,
		StylesPath: styles,
	}, nil, io.Discard)
	require.NoError(t, err)

	zr, err := zip.OpenReader(output)
	require.NoError(t, err)
	defer zr.Close()
	var stylesXML string
	for _, f := range zr.File {
		if f.Name == "word/styles.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			rc.Close()
			stylesXML = string(data)
		}
	}
	assert.Contains(t, stylesXML, `w:ascii="Georgia"`)
}

func TestBuildBadStylesheet(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.docx")
	_, err := Build(types.BuildConfig{
		InputPath:  writeInput(t, dir, sampleCSV),
		OutputPath: output,
		StylesPath: filepath.Join(dir, "missing.yaml"),
	}, nil, io.Discard)
	require.Error(t, err)
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderSectionCount(t *testing.T) {
	sessions, err := Sessions(writeInput(t, t.TempDir(), sampleCSV))
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	doc := Render(sessions, nil, nil)
	headings := 0
	for _, p := range doc.Paragraphs() {
		if p.Style == docx.StyleHeading1 {
			headings++
		}
	}
	assert.Equal(t, len(sessions), headings)
}
