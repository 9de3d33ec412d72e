package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/classlog/internal/logger"
)

// OpError is a persistence failure, reported as "Error saving ..." or
// "Error loading ...". The command keeps working with whatever it already has.
type OpError struct {
	Op   string // "saving" or "loading"
	What string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.What, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Saving wraps err as a failure to save what. A nil err stays nil.
func Saving(what string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: "saving", What: what, Err: err}
}

// Loading wraps err as a failure to load what. A nil err stays nil.
func Loading(what string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: "loading", What: what, Err: err}
}

// Format formats an error message with a consistent "Error" prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	var op *OpError
	if errors.As(err, &op) && op == err {
		return fmt.Sprintf("Error %v", err)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
