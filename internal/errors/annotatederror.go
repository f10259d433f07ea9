// Package errors extends the standard library errors with structured annotations and the source
// location where an error was created or wrapped. Use SlogError to log them.
package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
)

// annotatedError carries a message, slog attributes and the file:line of its origin.
type annotatedError struct {
	msg    string
	err    error
	attrs  []slog.Attr
	source string
}

func (e *annotatedError) Error() string {
	switch {
	case e.err == nil:
		return e.msg
	case e.msg == "":
		return e.err.Error()
	default:
		return e.msg + ": " + e.err.Error()
	}
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// callerSource returns the file:line skip frames above the caller of callerSource.
func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	return formatSource(file, line)
}

// New creates an error annotated with attrs and the caller's source location.
func New(msg string, attrs ...slog.Attr) error {
	return &annotatedError{msg: msg, err: nil, attrs: attrs, source: callerSource(1)}
}

// NewSentinel creates a plain error meant for package-level sentinel variables. It carries no
// source location because it is created at init time.
func NewSentinel(msg string) error {
	return stderrors.New(msg) //nolint:err113 // sentinels are created here.
}

// Wrap annotates err with msg, attrs and the caller's source location. Wrapping nil yields an error
// with just the message.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{msg: msg, err: err, attrs: attrs, source: callerSource(1)}
}

// DecoratePanic turns a value returned from recover into an error annotated with the location of
// the panic. It returns nil when nothing was recovered.
func DecoratePanic(recovered any) error {
	if recovered == nil {
		return nil
	}
	var cause error
	msg := "panic"
	if err, ok := recovered.(error); ok {
		cause = err
	} else {
		msg = fmt.Sprintf("panic: %v", recovered)
	}
	return &annotatedError{msg: msg, err: cause, attrs: nil, source: panicSource()}
}

// panicSource finds the frame that called panic, the first one after runtime.gopanic.
func panicSource() string {
	const maxDepth = 32
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(1, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	afterPanic := false
	for {
		frame, more := frames.Next()
		if afterPanic {
			return formatSource(frame.File, frame.Line)
		}
		if frame.Function == "runtime.gopanic" {
			afterPanic = true
		}
		if !more {
			return ""
		}
	}
}

// Join wraps [stderrors.Join].
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// Is wraps [stderrors.Is].
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps [stderrors.As].
func As(err error, target any) bool {
	return stderrors.As(err, target) //nolint:govet // target is checked by stderrors.As.
}

// Unwrap wraps [stderrors.Unwrap].
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// SlogError renders err as an "error" group holding the message, every annotation found in the
// error tree and the source location of the innermost annotated error.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{Key: "error", Value: slog.StringValue("<nil>")}
	}
	var (
		annotations []any
		source      string
	)
	walk(err, func(ae *annotatedError) {
		for _, a := range ae.attrs {
			annotations = append(annotations, a)
		}
		if ae.source != "" {
			source = ae.source
		}
	})

	attrs := []any{slog.String("message", err.Error())}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Group("annotations", annotations...))
	}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	return slog.Group("error", attrs...)
}

// walk visits the annotated errors of the tree rooted at err, outermost first.
func walk(err error, visit func(*annotatedError)) {
	if err == nil {
		return
	}
	if ae, ok := err.(*annotatedError); ok { //nolint:errorlint // the tree is walked explicitly.
		visit(ae)
	}
	switch u := err.(type) { //nolint:errorlint // the tree is walked explicitly.
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			walk(e, visit)
		}
	case interface{ Unwrap() error }:
		walk(u.Unwrap(), visit)
	}
}

func formatSource(file string, line int) string {
	if file == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(file)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(line))
	return b.String()
}
