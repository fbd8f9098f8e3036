package cli

import (
	"errors"
	"fmt"
)

// Errors reported for bad command input.
var (
	errBlankText  = errors.New("todo text must not be blank")
	errNoMatch    = errors.New("no todo matches")
	errAmbiguous  = errors.New("ambiguous todo reference")
	errOutOfRange = errors.New("todo position out of range")
)

// exitError attaches a process exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks err as caused by bad input (exit code 1).
func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

// sysError marks err as an environment or storage failure (exit code 2).
func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// userErrorf formats a user error wrapping a sentinel.
func userErrorf(format string, args ...any) error {
	return userError(fmt.Errorf(format, args...))
}
