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
	"io"

	"github.com/bholten/lcl/syntax"
)

// DefaultMaxDepth is the call-stack depth bound applied to a fresh
// Interp, guarding against host-stack overflow from unbounded recursion
// (spec §3.5, §5, P8).
const DefaultMaxDepth = 1024

// Option configures an Interp at construction time, in the functional
// options style (grounded on the teacher repo's vm.Option).
type Option func(*Interp) error

// WithMaxDepth overrides the default call-stack depth bound.
func WithMaxDepth(n int) Option {
	return func(in *Interp) error {
		in.MaxDepth = n
		return nil
	}
}

// WithStdout redirects the interpreter's output sink (used by the `puts`
// built-in and friends); defaults to io.Discard so that embedding without
// a host-supplied writer never panics.
func WithStdout(w io.Writer) Option {
	return func(in *Interp) error {
		in.Stdout = w
		return nil
	}
}

// Interp is one interpreter instance: its Environment, a Result slot, the
// current error location, and the call-depth bound (spec §3.5).
type Interp struct {
	Env *Environment

	// Result is not assigned by the evaluator: EvalSource, EvalProgram and
	// Call hand their result values back to the caller directly, and this
	// field stays nil unless an embedder sets it.
	Result *Value

	// ErrFile / ErrLine record where the first failing command of the
	// most recent evaluation was dispatched (spec §7).
	ErrFile string
	ErrLine int

	Depth    int
	MaxDepth int

	Stdout io.Writer

	errRecorded bool
}

// NewInterp creates an interpreter with an empty global environment and
// no registered commands. Embedders register the built-in library (or
// any subset) via Register/RegisterSpecialForm.
func NewInterp(opts ...Option) (*Interp, error) {
	in := &Interp{
		Env:      NewEnvironment(),
		MaxDepth: DefaultMaxDepth,
		Stdout:   io.Discard,
	}
	for _, opt := range opts {
		if err := opt(in); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// Register installs a native procedure under name, reachable from command
// dispatch and from GetValue lookups (spec §6 "register a custom normal
// procedure or special form by name").
func (in *Interp) Register(name string, fn NativeFunc) {
	in.define(name, NewNativeProc(name, fn))
}

// RegisterSpecialForm installs a native special form under name.
func (in *Interp) RegisterSpecialForm(name string, fn SpecialFormFunc) {
	in.define(name, NewNativeSpecialForm(name, fn))
}

func (in *Interp) define(name string, v *Value) {
	NSDef(in.Env.global, name, v)
}

// Define binds name to value in the interpreter's current scope (spec §6
// "define a name in the current scope").
func (in *Interp) Define(name string, value *Value) {
	in.Env.Let(name, value)
}

// Lookup reads name from the interpreter's current scope, spec §6
// "read a name". The result carries an acquired reference.
func (in *Interp) Lookup(name string) (*Value, error) {
	return in.Env.GetValue(name)
}

// recordError fills ErrFile/ErrLine from the failing command's source
// location; only the first failing command's location is kept as an ERR
// unwinds back through enclosing EvalProgram calls (spec §4.4, §7).
func (in *Interp) recordError(file string, line int) {
	if in.errRecorded {
		return
	}
	in.errRecorded = true
	in.ErrFile = file
	in.ErrLine = line
}

// EvalSource parses src (labeled file, for error reporting) and evaluates
// it as a top-level program (spec §6 "evaluate a source string or
// file"). A parse failure is reported as ERR with ErrFile/ErrLine set
// from the parser's error location.
func (in *Interp) EvalSource(file string, src []byte) (Code, *Value, error) {
	in.errRecorded = false
	in.ErrFile = ""
	in.ErrLine = 0

	prog, err := syntax.Parse(file, src)
	if err != nil {
		if perr, ok := err.(*syntax.Error); ok {
			in.ErrFile = perr.File
			in.ErrLine = perr.Line
		}
		return ERR, nil, wrapError(ErrParse, err, "parse error")
	}
	return in.EvalProgram(prog)
}
