package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spboyer/comborank/internal/orchestration"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Ranking completed
	ExitInputError = 1 // Missing or invalid input, weights or configuration
	ExitError      = 2 // Any other runtime error
)

// InputError marks a failure caused by what the user supplied rather than by
// the environment.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var inputErr *InputError
	if errors.As(err, &inputErr) || orchestration.IsInputError(err) {
		return ExitInputError
	}
	return ExitError
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
