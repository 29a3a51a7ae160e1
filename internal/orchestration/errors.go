package orchestration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spboyer/journeys/internal/models"
)

// ErrorKind classifies batch errors.
type ErrorKind string

const (
	// KindJourney marks a failure returned (or panicked) by the journey function.
	// It is recorded per run and never aborts the batch.
	KindJourney ErrorKind = "journey"
	// KindHook marks a lifecycle hook that failed with error_on_fail set.
	KindHook        ErrorKind = "hook"
	KindLaunch      ErrorKind = "launch"
	KindEngine      ErrorKind = "engine"
	KindIO          ErrorKind = "io"
	KindParse       ErrorKind = "parse"
	KindConfig      ErrorKind = "config"
	KindPostProcess ErrorKind = "postprocess"
)

// Error is a batch-aborting failure.
type Error struct {
	Kind   ErrorKind
	Op     string
	Engine models.EngineKey
	// Input is the input key value of the run, if the failure belongs to one.
	Input string
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(" error: ")
	b.WriteString(e.Op)
	if e.Input != "" || e.Engine != "" {
		fmt.Fprintf(&b, " [%s/%s]", e.Input, e.Engine)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// PanicError is recorded as the failure of a journey function that panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("journey panicked: %v", e.Value)
}
