package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"prompt_generator/apperr"
)

// ToolTimeout bounds each external clipboard tool.
const ToolTimeout = 2 * time.Second

const linuxHint = "Install xclip or xsel: sudo apt install xclip xsel"

// Tool is an external program reading the text to copy from stdin.
type Tool struct {
	Name string
	Args []string
}

// LinuxTools are tried in order.
var LinuxTools = []Tool{
	{Name: "xclip", Args: []string{"-selection", "clipboard"}},
	{Name: "xsel", Args: []string{"--clipboard", "--input"}},
}

// Runner executes name with args, feeding stdin. Replaced in tests.
type Runner func(ctx context.Context, stdin string, name string, args ...string) error

// CommandCopier tries each tool in turn until one succeeds.
type CommandCopier struct {
	tools   []Tool
	timeout time.Duration
	run     Runner
	logger  zerolog.Logger
}

func NewCommandCopier(logger zerolog.Logger, tools ...Tool) *CommandCopier {
	return &CommandCopier{
		tools:   tools,
		timeout: ToolTimeout,
		run:     execRunner,
		logger:  logger,
	}
}

// WithRunner swaps the process runner.
func (c *CommandCopier) WithRunner(run Runner) *CommandCopier {
	c.run = run
	return c
}

// WithTimeout changes the per-tool timeout.
func (c *CommandCopier) WithTimeout(d time.Duration) *CommandCopier {
	c.timeout = d
	return c
}

func (c *CommandCopier) Copy(ctx context.Context, text string) (string, error) {
	var errs []error
	for _, tool := range c.tools {
		if err := c.runTool(ctx, tool, text); err != nil {
			c.logger.Debug().Err(err).Str("tool", tool.Name).Msg("clipboard tool failed")
			errs = append(errs, fmt.Errorf("%s: %w", tool.Name, err))
			continue
		}
		return tool.Name, nil
	}
	err := &apperr.ClipboardError{Err: errors.Join(errs...), Hint: c.hint()}
	c.logger.Error().Err(err).Msg("copy to clipboard")
	return "", err
}

func (c *CommandCopier) runTool(ctx context.Context, tool Tool, text string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.run(ctx, text, tool.Name, tool.Args...)
}

func (c *CommandCopier) hint() string {
	if len(c.tools) == len(LinuxTools) && c.tools[0].Name == LinuxTools[0].Name {
		return linuxHint
	}
	names := make([]string, 0, len(c.tools))
	for _, t := range c.tools {
		names = append(names, t.Name)
	}
	return "Install one of: " + strings.Join(names, ", ")
}

func execRunner(ctx context.Context, stdin string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
