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
	"strings"

	"github.com/bholten/lcl/syntax"
)

// EvalProgram evaluates p's commands in order (spec §4.4 "eval_program").
// Before each command it releases any carried previous result. OK
// continues to the next command; any other code, RETURN included, stops
// and propagates to the caller unchanged (procedure boundaries,
// CallUserProc and Call, are where RETURN becomes OK, per §4.5.2),
// recording the failing command's file/line on ERR. Enforces
// the call-depth bound (§5, P8).
func (in *Interp) EvalProgram(p *syntax.Program) (Code, *Value, error) {
	in.Depth++
	defer func() { in.Depth-- }()
	if in.Depth > in.MaxDepth {
		return ERR, nil, newError(ErrDepthExceeded, "maximum call depth exceeded")
	}

	var result *Value
	for i := range p.Commands {
		if result != nil {
			result.Release()
			result = nil
		}
		cmd := &p.Commands[i]
		code, v, err := in.evalCommand(cmd)
		result = v
		if code == ERR {
			in.recordError(p.File, cmd.Line)
			return ERR, result, err
		}
		if code != OK {
			return code, result, err
		}
	}
	return OK, result, nil
}

// evalCommand dispatches one Command per spec §4.4.3.
func (in *Interp) evalCommand(cmd *syntax.Command) (Code, *Value, error) {
	if len(cmd.Words) == 0 {
		return OK, NewString(""), nil
	}

	code, callee, err := in.EvalWord(&cmd.Words[0])
	if code != OK {
		return code, callee, err
	}

	single := len(cmd.Words) == 1

	if callee.Kind() == KString {
		name := ToString(callee)
		looked, lerr := in.Env.GetValue(name)
		if lerr != nil {
			if single {
				return OK, callee, nil
			}
			callee.Release()
			return ERR, nil, lerr
		}
		if !looked.IsCallable() {
			if single {
				callee.Release()
				return OK, looked, nil
			}
			callee.Release()
			looked.Release()
			return ERR, nil, newError(ErrTypeMismatch, "not callable: "+name)
		}
		callee.Release()
		callee = looked
	}

	if !callee.IsCallable() {
		callee.Release()
		return ERR, nil, newError(ErrTypeMismatch, "not callable")
	}

	if callee.Kind() == KNativeProc && callee.native.Kind == ProcSpecialForm {
		sf := callee.native.SF
		code, result, err := sf(in, cmd.Words[1:])
		callee.Release()
		return code, result, err
	}

	argv := make([]*Value, 0, len(cmd.Words)-1)
	for i := 1; i < len(cmd.Words); i++ {
		ac, av, aerr := in.EvalWord(&cmd.Words[i])
		if ac != OK {
			for _, a := range argv {
				a.Release()
			}
			callee.Release()
			return ac, av, aerr
		}
		argv = append(argv, av)
	}

	switch callee.Kind() {
	case KNativeProc:
		code, result, err := callee.native.Fn(in, argv)
		callee.Release()
		return code, result, err
	case KUserProc:
		code, result, err := CallUserProc(in, callee, argv)
		callee.Release()
		return code, result, err
	}
	callee.Release()
	return ERR, nil, newError(ErrTypeMismatch, "not callable")
}

// derefOneCell returns v's inner value (acquired) if v is a Cell,
// releasing v, or v unchanged otherwise. It implements the "unwrapping
// one Cell layer" rule shared by eval_word and eval_word_to_string (spec
// §4.4.2).
func derefOneCell(v *Value) *Value {
	if v.Kind() == KCell {
		inner := CellGet(v)
		v.Release()
		return inner
	}
	return v
}

// EvalWord implements spec §4.4.2 "eval_word": preserves the intrinsic
// value type when possible. A single VarRef or SubCommand piece returns
// its value directly; anything else falls through to string evaluation.
func (in *Interp) EvalWord(w *syntax.Word) (Code, *Value, error) {
	if len(w.Pieces) == 1 {
		switch w.Pieces[0].Kind {
		case syntax.VarRef:
			v, err := in.Env.GetValue(w.Pieces[0].Name)
			if err != nil {
				return ERR, nil, err
			}
			return OK, derefOneCell(v), nil
		case syntax.SubCommand:
			return in.EvalProgram(w.Pieces[0].Program)
		}
	}
	return in.EvalWordToString(w)
}

// EvalWordToString implements spec §4.4.2 "eval_word_to_string": always
// produces a String value by concatenating the stringified form of every
// piece.
func (in *Interp) EvalWordToString(w *syntax.Word) (Code, *Value, error) {
	if len(w.Pieces) == 0 {
		return OK, NewString(""), nil
	}
	var buf strings.Builder
	for _, piece := range w.Pieces {
		switch piece.Kind {
		case syntax.Literal:
			buf.Write(piece.Bytes)
		case syntax.VarRef:
			v, err := in.Env.GetValue(piece.Name)
			if err != nil {
				return ERR, nil, err
			}
			v = derefOneCell(v)
			buf.WriteString(ToString(v))
			v.Release()
		case syntax.SubCommand:
			code, v, err := in.EvalProgram(piece.Program)
			if code != OK {
				return code, v, err
			}
			buf.WriteString(ToString(v))
			v.Release()
		}
	}
	return OK, NewString(buf.String()), nil
}

// Call invokes a callable value with an owned argument vector from the
// host side (spec §4.5.3). NativeProc(SpecialForm) cannot be invoked this
// way; RETURN is converted to OK at this boundary, same as a procedure
// call.
func (in *Interp) Call(callee *Value, args []*Value) (Code, *Value, error) {
	switch callee.Kind() {
	case KNativeProc:
		if callee.native.Kind == ProcSpecialForm {
			for _, a := range args {
				a.Release()
			}
			return ERR, nil, newError(ErrTypeMismatch, "special forms cannot be invoked with a pre-evaluated argument vector")
		}
		return callee.native.Fn(in, args)
	case KUserProc:
		return CallUserProc(in, callee, args)
	}
	for _, a := range args {
		a.Release()
	}
	return ERR, nil, newError(ErrTypeMismatch, "not callable")
}
