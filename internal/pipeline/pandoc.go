package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/alnah/go-mdpages/internal/process"
)

// DefaultPandocBin is the pandoc executable looked up on PATH.
const DefaultPandocBin = "pandoc"

// DefaultPandocArgs reads markdown from stdin and writes an HTML fragment.
var DefaultPandocArgs = []string{"-f", "markdown", "-t", "html"}

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, stdin string, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
// The child runs in its own process group, killed as a whole on cancellation.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, stdin string, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- binary and args come from trusted config
	process.Isolate(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// PandocConverter converts markdown to an HTML fragment by invoking pandoc.
type PandocConverter struct {
	Runner CommandRunner
	Bin    string
	Args   []string
}

// NewPandocConverter creates a PandocConverter with a real command runner.
// Empty bin or args fall back to DefaultPandocBin and DefaultPandocArgs.
func NewPandocConverter(bin string, args []string) *PandocConverter {
	if bin == "" {
		bin = DefaultPandocBin
	}
	if len(args) == 0 {
		args = DefaultPandocArgs
	}
	return &PandocConverter{Runner: &ExecRunner{}, Bin: bin, Args: args}
}

// ToFragment pipes markdown through pandoc and returns its stdout verbatim.
// On a non-zero exit the captured stderr is part of the returned error.
func (c *PandocConverter) ToFragment(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := c.Runner.Run(ctx, markdown, c.Bin, c.Args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrConverterNotFound, c.Bin)
		}
		stderr = strings.TrimSpace(stderr)
		if stderr == "" {
			return "", fmt.Errorf("%w: %s: %v", ErrConverterFailed, c.Bin, err)
		}
		return "", fmt.Errorf("%w: %s: %s", ErrConverterFailed, c.Bin, stderr)
	}

	return stdout, nil
}
