package clipboard

import (
	"context"
	"errors"

	atotto "github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"prompt_generator/apperr"
)

const nativeName = "system clipboard"

// NativeCopier uses the platform clipboard binding.
type NativeCopier struct {
	unsupported bool
	write       func(string) error
	logger      zerolog.Logger
}

// NewNativeCopier probes the binding once; Unsupported is set by the
// library at init when no backend was found.
func NewNativeCopier(logger zerolog.Logger) *NativeCopier {
	if atotto.Unsupported {
		logger.Warn().Msg("clipboard binding unavailable, copying will be limited")
	}
	return &NativeCopier{
		unsupported: atotto.Unsupported,
		write:       atotto.WriteAll,
		logger:      logger,
	}
}

func (n *NativeCopier) Copy(_ context.Context, text string) (string, error) {
	if n.unsupported {
		return "", &apperr.ClipboardError{
			Err:  errors.New("no clipboard binding available"),
			Hint: "Install a clipboard utility (pbcopy on macOS, clip.exe on Windows, wl-clipboard or xclip elsewhere)",
		}
	}
	if err := n.write(text); err != nil {
		n.logger.Error().Err(err).Msg("copy to clipboard")
		return "", &apperr.ClipboardError{Err: err, Hint: "Copy the prompt manually from the output box"}
	}
	return nativeName, nil
}
