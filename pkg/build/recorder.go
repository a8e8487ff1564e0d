package build

import (
	"context"
	"sync"

	"github.com/aretw0/strata/pkg/ports"
)

// RecordingRunner is a ports.CommandRunner that records commands without
// executing them. It backs dry runs and tests.
type RecordingRunner struct {
	mu       sync.Mutex
	commands []ports.Command

	// Respond, when set, supplies the result for each command.
	Respond func(cmd ports.Command) (ports.CommandResult, error)
}

// NewRecordingRunner returns a runner that succeeds for every command.
func NewRecordingRunner() *RecordingRunner {
	return &RecordingRunner{}
}

// Run records cmd.
func (r *RecordingRunner) Run(ctx context.Context, cmd ports.Command) (ports.CommandResult, error) {
	r.mu.Lock()
	r.commands = append(r.commands, cmd)
	respond := r.Respond
	r.mu.Unlock()

	if respond != nil {
		return respond(cmd)
	}
	return ports.CommandResult{}, nil
}

// Commands returns a copy of everything recorded so far.
func (r *RecordingRunner) Commands() []ports.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.Command, len(r.commands))
	copy(out, r.commands)
	return out
}
