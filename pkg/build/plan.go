package build

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSubcommand is returned by PlanFor for names without a plan.
var ErrUnknownSubcommand = errors.New("unknown build subcommand")

// Plan is an ordered list of steps run by a subcommand.
type Plan struct {
	Name  string
	Steps []Step
}

// StepNames lists the plan's steps in order.
func (p Plan) StepNames() []string {
	names := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		names[i] = s.Name
	}
	return names
}

// Subcommands are the plan-backed subcommands, in the order `all` runs them.
var Subcommands = []string{"install", "setup", "build", "package"}

// PlanFor returns the plan of a subcommand.
func PlanFor(name string) (Plan, error) {
	switch strings.ToLower(name) {
	case "install":
		return Plan{Name: "install", Steps: []Step{EnsureDependency()}}, nil
	case "setup":
		return Plan{Name: "setup", Steps: []Step{SetupVenv()}}, nil
	case "build":
		return Plan{Name: "build", Steps: []Step{BuildLibrary()}}, nil
	case "package":
		return Plan{Name: "package", Steps: []Step{AssemblePackage(), CreateWheel(), InstallWheel()}}, nil
	case "all":
		all := Plan{Name: "all"}
		for _, sub := range Subcommands {
			p, _ := PlanFor(sub)
			all.Steps = append(all.Steps, p.Steps...)
		}
		return all, nil
	default:
		return Plan{}, fmt.Errorf("%w: %s", ErrUnknownSubcommand, name)
	}
}
