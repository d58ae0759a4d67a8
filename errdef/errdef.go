// Package errdef builds categorized error values.
//
// Every value built here is an [*Error] carrying a [Kind].
// Call sites use the constructors instead of formatting messages on their own,
// and use [Uncaught] to turn an arbitrary failure into something safe to raise again.
package errdef

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
)

var _ error = (*Error)(nil)

// Error is an error tagged with its [Kind].
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Cause != nil:
		return e.Message + ": " + e.Cause.Error()
	case e.Message == "" && e.Cause != nil:
		return e.Cause.Error()
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports true when target is the Kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func newErr(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// NewInternalError returns an internal invariant violation with message.
func NewInternalError(message string) *Error {
	return newErr(KindInternal, message, nil)
}

// NewInternalErrorCause is like [NewInternalError] but chains cause.
func NewInternalErrorCause(message string, cause error) *Error {
	return newErr(KindInternal, message, cause)
}

// WrapInternalError returns an internal invariant violation wrapping cause without a message of its own.
func WrapInternalError(cause error) *Error {
	return newErr(KindInternal, "", cause)
}

func NewIllegalStateError(message string) *Error {
	return newErr(KindState, message, nil)
}

// NewIllegalStateErrorObj extends message with ": " and obj only if obj is non nil.
func NewIllegalStateErrorObj(message string, obj any) *Error {
	return newErr(KindState, formatMessage(message, obj), nil)
}

func NewIllegalArgumentError(message string) *Error {
	return newErr(KindArgument, message, nil)
}

// NewIllegalArgumentErrorObj extends message with ": " and obj only if obj is non nil.
func NewIllegalArgumentErrorObj(message string, obj any) *Error {
	return newErr(KindArgument, formatMessage(message, obj), nil)
}

// NewIllegalArgumentErrorObj2 extends message with ": ", obj, ", " and obj2
// if at least one of obj and obj2 is non nil.
// Once extended, a nil object is rendered as "null".
func NewIllegalArgumentErrorObj2(message string, obj, obj2 any) *Error {
	return newErr(KindArgument, formatMessage2(message, obj, obj2), nil)
}

func NewRuntimeError(message string, cause error) *Error {
	return newErr(KindRuntime, message, cause)
}

func NewFatalError(message string, cause error) *Error {
	return newErr(KindFatal, message, cause)
}

// KindOf returns the Kind of the first [*Error] found in err's chain.
// A [runtime.Error] counts as [KindRuntime].
// It returns [KindUnknown] for anything else, including nil.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var re runtime.Error
	if errors.As(err, &re) {
		return KindRuntime
	}
	return KindUnknown
}

// Uncaught classifies err for raising again.
//
// If err is in the fatal tier it is returned unchanged, otherwise if it is in the unchecked tier
// it is returned unchanged as well. Anything else is demoted to an internal error
// with message "uncaught exception" and err as its cause.
func Uncaught(err error) error {
	kind := KindOf(err)
	if kind.Fatal() {
		return err
	}
	if kind.Unchecked() {
		return err
	}
	return NewInternalErrorCause("uncaught exception", err)
}

// UncaughtException panics with Uncaught(err). It never returns.
func UncaughtException(err error) {
	panic(Uncaught(err))
}

// NotYetImplemented panics with an assertion error whose message is "NYI".
// Reaching it is always a defect.
func NotYetImplemented() {
	panic(newErr(KindAssertion, "NYI", nil))
}

// Recover converts a panic into an error stored in *errp.
// It must be called directly by a deferred statement.
//
// A recovered error is stored after [Uncaught] classification.
// Any other recovered value is wrapped into an internal error.
func Recover(errp *error) {
	rec := recover()
	if rec == nil {
		return
	}
	if err, ok := rec.(error); ok {
		*errp = Uncaught(err)
		return
	}
	*errp = NewInternalErrorCause("uncaught exception", fmt.Errorf("%v", rec))
}

func formatMessage(message string, obj any) string {
	if !isNil(obj) {
		message = message + ": " + formatObj(obj)
	}
	return message
}

func formatMessage2(message string, obj, obj2 any) string {
	if !isNil(obj) || !isNil(obj2) {
		message = message + ": " + formatObj(obj) + ", " + formatObj(obj2)
	}
	return message
}

func formatObj(obj any) string {
	if isNil(obj) {
		return "null"
	}
	return fmt.Sprint(obj)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
