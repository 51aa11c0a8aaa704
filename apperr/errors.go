package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports bad or missing input. It is surfaced to the user
// as-is and never retried.
type ValidationError struct {
	Message string
	// Fields names the offending inputs, when known.
	Fields []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation builds a ValidationError.
func Validation(msg string, fields ...string) *ValidationError {
	return &ValidationError{Message: msg, Fields: fields}
}

// PersistenceKind separates filesystem failures from everything else.
type PersistenceKind string

const (
	KindIO         PersistenceKind = "io"
	KindUnexpected PersistenceKind = "unexpected"
)

// PersistenceError wraps a failed save. Err keeps the underlying OS error.
type PersistenceError struct {
	Kind PersistenceKind
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("save %s (%s): %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("save (%s): %v", e.Kind, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ClipboardError means no clipboard mechanism worked. Hint tells the user how
// to fix it.
type ClipboardError struct {
	Err  error
	Hint string
}

func (e *ClipboardError) Error() string {
	var b strings.Builder
	b.WriteString("clipboard unavailable")
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ClipboardError) Unwrap() error { return e.Err }

// Status renders err as the one status line shown to the user.
func Status(err error) string {
	if err == nil {
		return ""
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return "⚠️ " + verr.Message
	}
	var perr *PersistenceError
	if errors.As(err, &perr) {
		if perr.Kind == KindIO {
			return "❌ Error while saving: " + perr.Err.Error()
		}
		return "❌ Unexpected error: " + perr.Err.Error()
	}
	var cerr *ClipboardError
	if errors.As(err, &cerr) {
		msg := "❌ " + cerr.Error()
		if cerr.Hint != "" {
			msg += "\n💡 " + cerr.Hint
		}
		return msg
	}
	return "❌ " + err.Error()
}
