// Package rec provides utilities for recovering from panics and wrapping errors.
package rec

import (
	"fmt"
	"runtime/debug"
)

// recover only stops a panic when called directly by the deferred
// function, so Error and Wrap call it themselves and hand the value here.
func wrap(r any, stack bool) error {
	var trace string
	if stack {
		trace = "\n" + string(debug.Stack())
	}
	switch t := r.(type) {
	case error:
		return fmt.Errorf("recovered panic: %w%s", t, trace)
	default:
		return fmt.Errorf("recovered panic: %v%s", r, trace)
	}
}

// Error recovers a panic and assigns it, with a stack trace, to the
// provided error.
func Error(err *error) {
	if r := recover(); r != nil {
		*err = wrap(r, true)
	}
}

// Wrap recovers a panic with the provided format and arguments
// and assigns it to the provided error.
// The recovered panic is appended to the end of the arguments.
// If no panic was recovered, but the error is not nil, it is wrapped
// with the provided format and arguments as well.
// Recovered panics are expected failures of the callee, so no stack trace
// is attached.
func Wrap(err *error, format string, a ...any) {
	if r := recover(); r != nil {
		*err = fmt.Errorf(format, append(a, wrap(r, false))...)
	} else if *err != nil {
		*err = fmt.Errorf(format, append(a, *err)...)
	}
}
