package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"prompt_generator/apperr"
)

// Format selects how a prompt is written to disk.
type Format string

const (
	FormatPlain      Format = "plain"
	FormatStructured Format = "structured"

	timestampLayout = "20060102_150405"
	schemaVersion   = "2.0"
)

// ParseFormat accepts "plain"/"txt" and "structured"/"json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain", "txt":
		return FormatPlain, nil
	case "structured", "json":
		return FormatStructured, nil
	}
	return "", apperr.Validation(fmt.Sprintf("invalid format: %s. Use 'txt' or 'json'.", s), "format")
}

// Ext is the file extension for the format.
func (f Format) Ext() string {
	if f == FormatStructured {
		return "json"
	}
	return "txt"
}

// Record is the structured file layout. Field order is the key order on disk.
type Record struct {
	Timestamp string   `json:"timestamp"`
	Prompt    string   `json:"prompt"`
	Metadata  Metadata `json:"metadata"`
}

type Metadata struct {
	OS      string `json:"os"`
	Version string `json:"version"`
}

// Writer saves prompt documents as timestamped files in one directory.
// Two saves in the same second share a name; the later one wins.
type Writer struct {
	fs     afero.Fs
	dir    string
	osName string
	now    func() time.Time
	logger zerolog.Logger
}

// NewWriter creates a Writer over fs. Use afero.NewOsFs() for real files and
// afero.NewMemMapFs() in tests.
func NewWriter(fs afero.Fs, dir, osName string, logger zerolog.Logger) *Writer {
	return &Writer{
		fs:     fs,
		dir:    dir,
		osName: osName,
		now:    time.Now,
		logger: logger,
	}
}

// NewOsWriter creates a Writer on the operating system filesystem.
func NewOsWriter(dir, osName string, logger zerolog.Logger) *Writer {
	return NewWriter(afero.NewOsFs(), dir, osName, logger)
}

// WithClock replaces the time source used for file names.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// Dir returns the save directory.
func (w *Writer) Dir() string {
	return w.dir
}

// EnsureDir creates the save directory if it is missing.
func (w *Writer) EnsureDir() error {
	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return &apperr.PersistenceError{Kind: apperr.KindIO, Path: w.dir, Err: err}
	}
	return nil
}

// Save writes doc in the given format ("plain"/"txt" or "structured"/"json")
// and returns the absolute path of the new file.
func (w *Writer) Save(doc string, format string) (string, error) {
	if strings.TrimSpace(doc) == "" {
		return "", apperr.Validation("no prompt to save.", "prompt")
	}
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}

	if err := w.EnsureDir(); err != nil {
		w.logger.Error().Err(err).Str("dir", w.dir).Msg("create save directory")
		return "", err
	}

	timestamp := w.now().Format(timestampLayout)
	path := filepath.Join(w.dir, fmt.Sprintf("prompt_%s.%s", timestamp, f.Ext()))
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	var data []byte
	switch f {
	case FormatPlain:
		data = []byte(doc)
	case FormatStructured:
		data, err = encodeRecord(Record{
			Timestamp: timestamp,
			Prompt:    doc,
			Metadata:  Metadata{OS: w.osName, Version: schemaVersion},
		})
		if err != nil {
			w.logger.Error().Err(err).Msg("encode prompt record")
			return "", &apperr.PersistenceError{Kind: apperr.KindUnexpected, Path: path, Err: err}
		}
	}

	if err := afero.WriteFile(w.fs, path, data, 0o644); err != nil {
		kind := apperr.KindUnexpected
		if isIOError(err) {
			kind = apperr.KindIO
		}
		w.logger.Error().Err(err).Str("path", path).Msg("write prompt file")
		return "", &apperr.PersistenceError{Kind: kind, Path: path, Err: err}
	}

	w.logger.Info().Str("path", path).Str("format", string(f)).Msg("prompt saved")
	return path, nil
}

// encodeRecord renders r with two-space indentation, leaving non-ASCII and
// HTML characters unescaped.
func encodeRecord(r Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// isIOError reports whether err came from the filesystem rather than from
// this package.
func isIOError(err error) bool {
	var pathErr *os.PathError
	var linkErr *os.LinkError
	var sysErr *os.SyscallError
	var errno syscall.Errno
	return errors.As(err, &pathErr) ||
		errors.As(err, &linkErr) ||
		errors.As(err, &sysErr) ||
		errors.As(err, &errno)
}
