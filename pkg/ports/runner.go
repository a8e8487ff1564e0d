package ports

import "context"

// Command is a single external process invocation.
type Command struct {
	Name string   // Executable (resolved via PATH)
	Args []string // Arguments
	Dir  string   // Working directory; empty means the current one
}

// CommandResult holds the captured output of a finished command.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int // -1 when the process never ran or was killed
}

// CommandRunner executes external commands and waits for them to finish.
// A non-zero exit status is reported as an error.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (CommandResult, error)
}
