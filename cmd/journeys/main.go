package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess        = 0 // All journeys succeeded
	ExitJourneysFailed = 1 // One or more journeys failed
	ExitError          = 2 // Configuration or runtime error
)

// JourneyFailureError indicates that the batch ran to completion,
// but one or more journeys returned an error.
type JourneyFailureError struct {
	Message string
}

func (e *JourneyFailureError) Error() string {
	return e.Message
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var failureErr *JourneyFailureError
	if errors.As(err, &failureErr) {
		return ExitJourneysFailed
	}
	return ExitError
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
