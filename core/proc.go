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
	"strconv"

	"github.com/bholten/lcl/syntax"
)

// UserProc is a parsed procedure body plus its captured closure: a
// parameter name list, the body Program, the flat set of Upvalues
// captured at creation time, and an optional captured namespace (spec
// §3.1 "UserProc", §4.5.1).
type UserProc struct {
	Params    []string
	Body      *syntax.Program
	Upvalues  []Upvalue
	Namespace *Value // nil unless the defining namespace differed from global
}

// MakeUserProc captures env's current bindings into a flat closure over
// body and wraps the result as a callable Value (spec §4.5.1). Ownership
// of nothing is transferred by the caller; body is shared (read-only)
// with the returned proc.
func MakeUserProc(env *Environment, params []string, body *syntax.Program) *Value {
	ups, ns := CaptureUpvalues(env, body, params)
	return NewUserProc(&UserProc{Params: params, Body: body, Upvalues: ups, Namespace: ns})
}

// CallUserProc invokes a UserProc value with an owned argument vector
// (spec §4.5.2). args must have one owned reference per element; all are
// consumed (bound into the call frame) regardless of outcome except when
// the arity check fails, where they are released before returning.
func CallUserProc(interp *Interp, procVal *Value, args []*Value) (Code, *Value, error) {
	p := procVal.proc
	if len(args) != len(p.Params) {
		for _, a := range args {
			a.Release()
		}
		return ERR, nil, newError(ErrArityMismatch, "expected "+strconv.Itoa(len(p.Params))+" argument(s)")
	}

	frame := newFrame(nil)
	for _, uv := range p.Upvalues {
		frame.bindLocal(uv.Name, uv.Value.Acquire())
	}
	for i, name := range p.Params {
		frame.bindLocal(name, args[i])
	}

	prevFrame := interp.Env.PushFrame(frame)
	var prevNS *Value
	if p.Namespace != nil {
		prevNS = interp.Env.PushNamespace(p.Namespace)
	}

	code, result, err := interp.EvalProgram(p.Body)

	interp.Env.RestoreFrame(prevFrame)
	if p.Namespace != nil {
		interp.Env.RestoreNamespace(prevNS)
	}
	frame.release()

	if code == RETURN {
		code = OK
	}
	return code, result, err
}
