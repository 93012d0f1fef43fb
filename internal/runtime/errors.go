package runtime

import (
	"errors"
	"fmt"

	"github.com/MeexReay/sustlang/internal/script"
	"github.com/MeexReay/sustlang/internal/types"
	"github.com/MeexReay/sustlang/internal/value"
)

// Kind classifies a script failure.
type Kind int

const (
	// KindUnknownType: malformed type text in an instruction operand.
	KindUnknownType Kind = iota
	// KindBadArgs: wrong operand count, bad index bounds or arity.
	KindBadArgs
	// KindUnknownVar: a name or container slot that does not resolve.
	KindUnknownVar
	// KindTypeMismatch: a value's kind does not match its use.
	KindTypeMismatch
	// KindNotInited: an absent payload was read.
	KindNotInited
	// KindVarExists: declaring a name that already resolves.
	KindVarExists
	// KindParse: a literal that does not parse as its target type.
	KindParse
	// KindUTF8: a byte sequence that is not valid UTF-8 text.
	KindUTF8
	// KindUnknownFunc: a function name missing from the table.
	KindUnknownFunc
	// KindIO: any failure reading or writing a stream, file or socket.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindUnknownType:
		return "unknown type"
	case KindBadArgs:
		return "invalid arguments"
	case KindUnknownVar:
		return "unknown variable"
	case KindTypeMismatch:
		return "type mismatch"
	case KindNotInited:
		return "variable not initialized"
	case KindVarExists:
		return "variable already initialized"
	case KindParse:
		return "parse error"
	case KindUTF8:
		return "invalid utf-8"
	case KindUnknownFunc:
		return "unknown function"
	case KindIO:
		return "i/o failure"
	}
	return "error"
}

// Error is a script failure: its kind, the offending operand or detail,
// the failing instruction once known, and the underlying cause if any.
// The instruction is attached exactly once, at the innermost
// instruction list the failure unwound from.
type Error struct {
	Kind   Kind
	Detail string
	Instr  *script.Instruction
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Instr != nil {
		msg += " (" + e.Instr.String() + ")"
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func errf(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Detail: fmt.Sprintf(format, args...)}
}

func errUnknownVar(name string) *Error  { return errf(KindUnknownVar, "%q", name) }
func errUnknownFunc(name string) *Error { return errf(KindUnknownFunc, "%q", name) }

func errIO(op string, err error) *Error {
	return &Error{Kind: KindIO, Detail: op, Err: err}
}

// wrap converts a value/types-level failure into an Error, naming the
// operand it came from. Errors that are already *Error pass through.
func wrap(err error, operand string) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: classify(err), Detail: fmt.Sprintf("%q", operand), Err: err}
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, value.ErrTypeMismatch):
		return KindTypeMismatch
	case errors.Is(err, value.ErrNotInited):
		return KindNotInited
	case errors.Is(err, value.ErrParse):
		return KindParse
	case errors.Is(err, value.ErrUTF8):
		return KindUTF8
	case errors.Is(err, types.ErrUnknownType):
		return KindUnknownType
	}
	return KindIO
}

// attach pairs an error with the instruction it failed on, keeping the
// innermost pairing as the error unwinds nested calls.
func attach(err error, in *script.Instruction) error {
	var e *Error
	if errors.As(err, &e) {
		if e.Instr == nil {
			e.Instr = in
		}
		return err
	}
	return &Error{Kind: classify(err), Instr: in, Err: err}
}
