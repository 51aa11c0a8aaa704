package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt_generator/apperr"
)

const testDir = "/home/ada/Documents/Prompts/Prompt_Generator/Template_Prompts"

var fixedTime = time.Date(2025, 10, 3, 14, 5, 9, 0, time.Local)

func newTestWriter(fs afero.Fs) *Writer {
	return NewWriter(fs, testDir, "linux", zerolog.Nop()).WithClock(func() time.Time { return fixedTime })
}

func TestWriter_SavePlain(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := newTestWriter(fs)

	doc := "## ROLE\nYou are X.\n\n## RESPONSE\nNow respond."
	path, err := w.Save(doc, "txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(testDir, "prompt_20251003_140509.txt"), path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, doc, string(data))
}

func TestWriter_SaveStructuredRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := newTestWriter(fs)

	doc := "## RÔLE\nTu es un mentor <Go> & \"Rust\".\n\n```\nfn main() {}\n```"
	path, err := w.Save(doc, "structured")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(testDir, "prompt_20251003_140509.json"), path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	var rec Record
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, doc, rec.Prompt)
	assert.Equal(t, "20251003_140509", rec.Timestamp)
	assert.Equal(t, Metadata{OS: "linux", Version: "2.0"}, rec.Metadata)
}

func TestWriter_StructuredLayout(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := newTestWriter(fs)

	path, err := w.Save("Tu es é <b>", "json")
	require.NoError(t, err)
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	want := "{\n" +
		"  \"timestamp\": \"20251003_140509\",\n" +
		"  \"prompt\": \"Tu es é <b>\",\n" +
		"  \"metadata\": {\n" +
		"    \"os\": \"linux\",\n" +
		"    \"version\": \"2.0\"\n" +
		"  }\n" +
		"}"
	assert.Equal(t, want, string(data))
}

func TestWriter_RejectsEmptyDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := newTestWriter(fs)

	for _, tc := range []struct{ doc, format string }{
		{"", "plain"},
		{"   ", "json"},
		{"\n\t", "structured"},
	} {
		_, err := w.Save(tc.doc, tc.format)
		var verr *apperr.ValidationError
		require.True(t, errors.As(err, &verr), "doc=%q", tc.doc)
	}

	exists, err := afero.DirExists(fs, testDir)
	require.NoError(t, err)
	assert.False(t, exists, "no directory or file should be created")
}

func TestWriter_RejectsUnknownFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := newTestWriter(fs)

	_, err := w.Save("doc", "yaml")
	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Message, "yaml")
	assert.Equal(t, []string{"format"}, verr.Fields)
}

func TestWriter_SameSecondOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := newTestWriter(fs)

	first, err := w.Save("first", "txt")
	require.NoError(t, err)
	second, err := w.Save("second", "txt")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	data, err := afero.ReadFile(fs, second)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestWriter_ReadOnlyFilesystem(t *testing.T) {
	w := newTestWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()))

	_, err := w.Save("doc", "txt")
	var perr *apperr.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, apperr.KindIO, perr.Kind)
	assert.NotEmpty(t, perr.Err.Error())
}

func TestWriter_EnsureDirIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := newTestWriter(fs)

	require.NoError(t, w.EnsureDir())
	require.NoError(t, w.EnsureDir())
	exists, err := afero.DirExists(fs, testDir)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"plain", FormatPlain},
		{"txt", FormatPlain},
		{"TXT", FormatPlain},
		{"structured", FormatStructured},
		{"json", FormatStructured},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
	assert.Equal(t, "txt", FormatPlain.Ext())
	assert.Equal(t, "json", FormatStructured.Ext())
}
