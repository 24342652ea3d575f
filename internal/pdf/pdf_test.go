// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testImage = "booklet-pdf:test"

// fakeRuntime stands in for docker or podman.
type fakeRuntime struct {
	images map[string]bool
	output []byte
	err    error

	gotInput []byte
}

func (f *fakeRuntime) Name() string                     { return "fake" }
func (f *fakeRuntime) Available(context.Context) bool { return true }

func (f *fakeRuntime) ImageExists(_ context.Context, image string) error {
	if f.images[image] {
		return nil
	}
	return errors.New("no such image")
}

func (f *fakeRuntime) Run(_ context.Context, _ string, stdin io.Reader, stdout io.Writer) error {
	data, err := io.ReadAll(stdin)
	if err != nil {
		return err
	}
	f.gotInput = data
	if f.err != nil {
		return f.err
	}
	_, err = stdout.Write(f.output)
	return err
}

func writeDocx(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "booklet.docx")
	require.NoError(t, os.WriteFile(path, []byte("PK docx bytes"), 0o644))
	return path
}

func TestNewConverterMissingImage(t *testing.T) {
	_, err := NewConverter(context.Background(), &fakeRuntime{}, testImage, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "converter image not available in fake")
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	rt := &fakeRuntime{images: map[string]bool{testImage: true}, output: []byte("%PDF-1.7 body")}
	c, err := NewConverter(context.Background(), rt, testImage, zaptest.NewLogger(t))
	require.NoError(t, err)

	out := filepath.Join(dir, "booklet.pdf")
	n, err := c.Convert(context.Background(), writeDocx(t, dir), out)
	require.NoError(t, err)
	assert.Equal(t, len("%PDF-1.7 body"), n)
	assert.Equal(t, "PK docx bytes", string(rt.gotInput))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 body", string(data))
}

func TestConvertFailures(t *testing.T) {
	tests := []struct {
		name    string
		rt      *fakeRuntime
		noInput bool
		wantIs  error
	}{
		{
			name: "container error",
			rt:   &fakeRuntime{err: errors.New("exit status 1")},
		},
		{
			name:   "not a pdf",
			rt:     &fakeRuntime{output: []byte("<html>")},
			wantIs: ErrNotPDF,
		},
		{
			name:   "empty output",
			rt:     &fakeRuntime{},
			wantIs: ErrNotPDF,
		},
		{
			name:    "missing booklet",
			rt:      &fakeRuntime{},
			noInput: true,
			wantIs:  os.ErrNotExist,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.rt.images = map[string]bool{testImage: true}
			c, err := NewConverter(context.Background(), tt.rt, testImage, nil)
			require.NoError(t, err)

			in := filepath.Join(dir, "booklet.docx")
			if !tt.noInput {
				in = writeDocx(t, dir)
			}
			out := filepath.Join(dir, "booklet.pdf")
			_, err = c.Convert(context.Background(), in, out)
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}

			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr), "no PDF should be written")
		})
	}
}
