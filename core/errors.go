// This file is part of lcl - https://github.com/bholten/lcl
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code is the small return-code enumeration that every command produces
// (spec §4.4.1). It is the control-flow protocol threaded through the
// entire evaluator: dispatch, loops, and procedure calls all branch on it.
type Code int

const (
	// OK is the normal, successful return.
	OK Code = iota
	// ERR signals an error; the interpreter records the failing command's
	// file and line (spec §4.4).
	ERR
	// RETURN is a non-local exit from a user procedure.
	RETURN
	// BREAK exits the innermost enclosing loop.
	BREAK
	// CONTINUE advances to the next iteration of the innermost loop.
	CONTINUE
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case ERR:
		return "ERR"
	case RETURN:
		return "RETURN"
	case BREAK:
		return "BREAK"
	case CONTINUE:
		return "CONTINUE"
	}
	return "?"
}

// ErrKind classifies the cause of an ERR return (spec §7). There is no
// exception taxonomy beyond this: every failing command just returns ERR
// with one of these kinds attached for embedders that want to switch on it.
type ErrKind int

const (
	ErrGeneric ErrKind = iota
	ErrParse
	ErrUnbound
	ErrTypeMismatch
	ErrArityMismatch
	ErrIndexRange
	ErrArithmetic
	ErrDepthExceeded
	ErrOpaqueMismatch
	ErrUnterminated
)

func (k ErrKind) String() string {
	switch k {
	case ErrParse:
		return "parse"
	case ErrUnbound:
		return "unbound name"
	case ErrTypeMismatch:
		return "type mismatch"
	case ErrArityMismatch:
		return "arity mismatch"
	case ErrIndexRange:
		return "index out of range"
	case ErrArithmetic:
		return "arithmetic"
	case ErrDepthExceeded:
		return "depth exceeded"
	case ErrOpaqueMismatch:
		return "opaque-type mismatch"
	case ErrUnterminated:
		return "unterminated substitution"
	}
	return "generic"
}

// Error is the error type carried by an ERR return code. The evaluator
// records the first failing command's location on the Interp (ErrFile,
// ErrLine; spec §4.4, §7) and leaves File and Line here empty; Error()
// prefixes them only when they are set.
type Error struct {
	Kind    ErrKind
	File    string
	Line    int
	msg     string
	Wrapped error
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.msg)
	}
	return e.msg
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Wrapped }

func newError(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

func wrapError(kind ErrKind, cause error, msg string) *Error {
	return &Error{Kind: kind, msg: msg, Wrapped: cause}
}

// NewError constructs an *Error for external collaborators (builtin, cmd/lcl)
// that need to raise a classified failure without reaching into core's
// unexported constructors. As with errors raised from within core itself,
// the failing command's location is recorded on the Interp, not here.
func NewError(kind ErrKind, format string, args ...interface{}) error {
	return newError(kind, fmt.Sprintf(format, args...))
}

// WrapError is NewError's causal-chain counterpart, for builtins that want
// to attach a classified Kind to an underlying error (e.g. a strconv failure)
// while preserving it for errors.Is/errors.As.
func WrapError(kind ErrKind, cause error, format string, args ...interface{}) error {
	return wrapError(kind, cause, fmt.Sprintf(format, args...))
}

// AsError unwraps err into an *Error if it is (or wraps) one, reporting ok.
func AsError(err error) (e *Error, ok bool) {
	ok = errors.As(err, &e)
	return
}
