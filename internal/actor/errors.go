package actor

import (
	"fmt"
	"os"
)

// ErrorCode distinguishes the fatal-error categories this runtime raises.
// Grounded on the error_handler.hpp ErrorCodeName convention: every fatal
// path carries a small integer code plus a human message, nothing more.
type ErrorCode int

const (
	// ErrCodeInvariantViolation covers misuse of the core primitives:
	// calling Scheduler.Start twice, Schedule after Stop, publishing a
	// non-lifecycle message outside StateStarted, referencing an unknown
	// child handle.
	ErrCodeInvariantViolation ErrorCode = iota + 1

	// ErrCodeConfiguration covers missing or malformed configuration that
	// has no usable default.
	ErrCodeConfiguration

	// ErrCodeInternalAssertion covers internal consistency checks that
	// should never fail given correct invariant-violation checking
	// upstream; kept separate so they can be toggled in debug builds.
	ErrCodeInternalAssertion
)

// OnError is the fatal error callback threaded through the whole runtime.
// By contract it must not return control to the caller in a way that lets
// execution continue past the fatal condition; DefaultOnError enforces
// that by calling os.Exit.
type OnError func(code ErrorCode, msg string)

// DefaultOnError logs to stderr and terminates the process. Callers that
// want fatal errors routed through the channel logger instead should
// build their own OnError using build.UseLogger("core") and still end in
// os.Exit, since OnError must not return.
func DefaultOnError(code ErrorCode, msg string) {
	err := newFatalError(code, "%s", msg)
	fmt.Fprintf(os.Stderr, "fatal: %s\n", err)
	os.Exit(int(code))
}

// FatalError is the error value logged immediately before OnError is
// invoked; kept around mainly so tests can assert on it without parsing
// log output.
type FatalError struct {
	Code ErrorCode
	Msg  string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("actor: [code=%d] %s", e.Code, e.Msg)
}

func newFatalError(code ErrorCode, format string, args ...any) *FatalError {
	return &FatalError{Code: code, Msg: fmt.Sprintf(format, args...)}
}
