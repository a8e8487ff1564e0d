package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is one problem found in a scene.
type ValidationError struct {
	Key    string // e.g. "sources[1]"
	Reason string
	Value  any // Offending value, if it helps
	Err    error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Key)
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Value != nil {
		fmt.Fprintf(&b, " (got %v)", e.Value)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AggregateError collects every problem of one scene on a single line.
type AggregateError struct {
	Scene  string
	Errors []error
}

func (e *AggregateError) Error() string {
	name := e.Scene
	if name == "" {
		name = "<unnamed>"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("scene %s: %v", name, e.Errors[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "scene %s has %d problems", name, len(e.Errors))
	for _, err := range e.Errors {
		b.WriteString("; ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns the individual problems if err carries an
// *AggregateError, nil otherwise.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
