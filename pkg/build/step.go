package build

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/strata/pkg/ports"
)

// Status is the outcome of a step that did not fail hard.
type Status int

const (
	Done Status = iota
	Skipped
	SoftFailed
)

func (s Status) String() string {
	switch s {
	case Done:
		return "done"
	case Skipped:
		return "skipped"
	case SoftFailed:
		return "soft-failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Step names.
const (
	StepEnsureDependency = "ensure-dependency"
	StepSetupVenv        = "setup-venv"
	StepBuildLibrary     = "build-library"
	StepAssemblePackage  = "assemble-package"
	StepCreateWheel      = "create-wheel"
	StepInstallWheel     = "install-wheel"
)

// Step is one named unit of a plan.
type Step struct {
	Name string
	run  func(ctx context.Context, s *session) (Status, string, error)
}

// session carries what steps share during one pipeline run.
type session struct {
	cfg    Config
	runner ports.CommandRunner
	out    io.Writer
	logger *slog.Logger
	dryRun bool

	wheel string // set by create-wheel, consumed by install-wheel
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

// exec runs one command, logs it and echoes its stdout.
func (s *session) exec(ctx context.Context, dir string, name string, args ...string) (ports.CommandResult, error) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	s.printf("Running: %s", line)
	s.logger.Info("running command", "command", line, "dir", dir)

	res, err := s.runner.Run(ctx, ports.Command{Name: name, Args: args, Dir: dir})
	if res.Stdout != "" {
		fmt.Fprint(s.out, res.Stdout)
		if !strings.HasSuffix(res.Stdout, "\n") {
			fmt.Fprintln(s.out)
		}
	}
	if err != nil {
		return res, &CommandError{
			Command:  line,
			Dir:      dir,
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
			Err:      err,
		}
	}
	return res, nil
}
