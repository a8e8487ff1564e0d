package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/ports"
)

// ErrNotAllowed is returned for commands outside the allow-list when inline
// execution is disabled.
var ErrNotAllowed = errors.New("command not registered")

// Runner implements ports.CommandRunner by executing local processes.
// It follows a Strict Registry pattern for security (Allow-Listing): a
// command name is resolved against the registry first and only runs
// unregistered when inline execution is enabled.
type Runner struct {
	registry    map[string]RegisteredProcess
	allowInline bool
	baseDir     string
	grace       time.Duration
	logger      *slog.Logger
}

// RegisteredProcess defines an allowed command execution.
type RegisteredProcess struct {
	Command string
	Args    []string // Prepended to the caller's arguments
	Env     map[string]string
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithRegistry populates the allow-list from a loaded config.
func WithRegistry(tools map[string]ProcessConfig) RunnerOption {
	return func(r *Runner) {
		for name, tool := range tools {
			r.registry[name] = RegisteredProcess{
				Command: tool.Command,
				Args:    tool.Args,
				Env:     tool.Environment,
			}
		}
	}
}

// WithInlineExecution allows commands that are not in the registry.
func WithInlineExecution(allow bool) RunnerOption {
	return func(r *Runner) {
		r.allowInline = allow
	}
}

// WithBaseDir sets the working directory used when a command has none.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithGracePeriod sets how long a cancelled process may take to exit after
// the interrupt before it is killed.
func WithGracePeriod(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.grace = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new Process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[string]RegisteredProcess),
		grace:    5 * time.Second,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a trusted command to the allow-list.
func (r *Runner) Register(name string, command string, args ...string) {
	r.registry[name] = RegisteredProcess{
		Command: command,
		Args:    args,
	}
}

// Resolve returns the process that would run for cmd.
func (r *Runner) Resolve(cmd ports.Command) (RegisteredProcess, error) {
	if proc, ok := r.registry[cmd.Name]; ok {
		if proc.Command == "" {
			proc.Command = cmd.Name
		}
		proc.Args = append(append([]string{}, proc.Args...), cmd.Args...)
		return proc, nil
	}
	if !r.allowInline {
		return RegisteredProcess{}, fmt.Errorf("%w: %s (and inline execution not enabled)", ErrNotAllowed, cmd.Name)
	}
	return RegisteredProcess{Command: cmd.Name, Args: cmd.Args}, nil
}

// Run executes cmd, waits for it and captures its output.
// A non-zero exit is returned as an error alongside the captured result.
func (r *Runner) Run(ctx context.Context, cmd ports.Command) (ports.CommandResult, error) {
	result := ports.CommandResult{ExitCode: -1}

	proc, err := r.Resolve(cmd)
	if err != nil {
		return result, err
	}

	c := exec.CommandContext(ctx, proc.Command, proc.Args...)
	c.Dir = cmd.Dir
	if c.Dir == "" {
		c.Dir = r.baseDir
	}
	if len(proc.Env) > 0 {
		env := c.Environ()
		for k, v := range proc.Env {
			env = append(env, k+"="+v)
		}
		c.Env = env
	}

	// Ask politely first, then let WaitDelay force the kill.
	c.Cancel = func() error {
		if runtime.GOOS == "windows" {
			return c.Process.Kill()
		}
		return c.Process.Signal(os.Interrupt)
	}
	c.WaitDelay = r.grace

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	r.logger.Debug("exec", "command", proc.Command, "args", strings.Join(proc.Args, " "), "dir", c.Dir)

	err = c.Run()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	if c.ProcessState != nil {
		result.ExitCode = c.ProcessState.ExitCode()
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, fmt.Errorf("execution interrupted: %w", ctxErr)
		}
		return result, fmt.Errorf("execution failed: %w", err)
	}
	return result, nil
}
