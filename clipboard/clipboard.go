// Package clipboard copies prompt documents to the system clipboard. The
// platform strategy is chosen once with New.
package clipboard

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"prompt_generator/apperr"
)

// Copier puts text on the clipboard and returns the name of the mechanism
// that succeeded. Failures are *apperr.ClipboardError.
type Copier interface {
	Copy(ctx context.Context, text string) (string, error)
}

// New picks the copier for osName. Linux-like systems shell out to xclip/xsel;
// everything else goes through the native binding.
func New(osName string, logger zerolog.Logger) Copier {
	switch osName {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return NewCommandCopier(logger, LinuxTools...)
	default:
		return NewNativeCopier(logger)
	}
}

// CopyPrompt rejects blank documents before handing them to c.
func CopyPrompt(ctx context.Context, c Copier, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperr.Validation("no prompt to copy.", "prompt")
	}
	return c.Copy(ctx, text)
}
