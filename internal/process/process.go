// Package process runs external build tools and turns their exit status into
// typed errors.
//
// Commands are never given a timeout. A hung tool blocks the caller until the
// process exits or the surrounding context is cancelled by a termination
// signal.
package process

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"

	werrors "wasmweight/internal/errors"

	"github.com/kballard/go-shellquote"
)

// Command describes one external invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env is appended to the current environment.
	Env []string
}

// New creates a Command for name with args.
func New(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// In returns a copy of c that runs in dir.
func (c Command) In(dir string) Command {
	c.Dir = dir
	return c
}

// WithEnv returns a copy of c with extra KEY=VALUE pairs.
func (c Command) WithEnv(kv ...string) Command {
	c.Env = append(append([]string(nil), c.Env...), kv...)
	return c
}

// String renders the command the way a shell user would type it.
func (c Command) String() string {
	s := shellquote.Join(append([]string{c.Name}, c.Args...)...)
	if len(c.Env) > 0 {
		s = strings.Join(c.Env, " ") + " " + s
	}
	if c.Dir != "" {
		s += " (in " + c.Dir + ")"
	}
	return s
}

// Runner defines the interface for running external commands.
type Runner interface {
	// Run executes cmd with stdout and stderr inherited.
	Run(ctx context.Context, cmd Command) error
	// Output executes cmd and returns its captured stdout. Stderr stays visible.
	Output(ctx context.Context, cmd Command) (string, error)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner wired to the process's own stdout and stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	c := r.build(ctx, cmd)
	c.Stdout = r.Stdout
	return r.exec(cmd, c)
}

func (r *ExecRunner) Output(ctx context.Context, cmd Command) (string, error) {
	c := r.build(ctx, cmd)
	var out bytes.Buffer
	c.Stdout = &out
	if err := r.exec(cmd, c); err != nil {
		return "", err
	}
	return lossyString(out.Bytes()), nil
}

// lossyString decodes b as UTF-8, replacing each invalid byte with U+FFFD.
func lossyString(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
		} else {
			sb.Write(b[:size])
		}
		b = b[size:]
	}
	return sb.String()
}

func (r *ExecRunner) build(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.Stderr = r.Stderr
	return c
}

func (r *ExecRunner) exec(cmd Command, c *exec.Cmd) error {
	slog.Debug("running command", "command", cmd.String())
	err := c.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &werrors.ExecutionError{
			Command:  cmd.String(),
			ExitCode: exitErr.ExitCode(),
			Status:   exitErr.ProcessState.String(),
		}
	}
	return werrors.NewIOError("failed to run", cmd.String(), err)
}
