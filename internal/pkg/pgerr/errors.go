package pgerr

import (
	"fmt"
)

const (
	CodeNotFound             = "NOT_FOUND"
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeInternalError        = "INTERNAL_ERROR"
)

// Exit codes reported by the command line when an error reaches it.
const (
	ExitInvalid  = 2
	ExitInternal = 1
)

var (
	// ErrNotFound is returned when an input file or record does not exist.
	ErrNotFound = New(ExitInvalid, CodeNotFound, "input not found with given parameters")

	// ErrInvalidConfiguration is returned when one or more chart configurations are rejected.
	ErrInvalidConfiguration = New(ExitInvalid, CodeInvalidConfiguration, "invalid configuration: some or all charts are rejected")

	// ErrInvalidInput is returned when a stats record, manual data set or parameter cannot be read.
	ErrInvalidInput = New(ExitInvalid, CodeInvalidInput, "invalid input: some or all inputs could not be read")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(ExitInternal, CodeInternalError, "internal error occurred")
)

type Extras map[string]any

type ChartError struct {
	ExitCode  int     `json:"-"`
	ErrorCode string  `json:"code"`
	Message   string  `json:"message"`
	Extras    *Extras `json:"extras,omitempty"`
}

func New(exitCode int, errorCode string, message string) *ChartError {
	return &ChartError{
		ExitCode:  exitCode,
		ErrorCode: errorCode,
		Message:   message,
	}
}

func (e ChartError) Msg(format string, parts ...any) *ChartError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e ChartError) WithExtras(extras Extras) *ChartError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations any) *ChartError {
	// copy ErrInvalidConfiguration as e
	e := *ErrInvalidConfiguration
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *ChartError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
