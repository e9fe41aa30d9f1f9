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

package builtin

import (
	"strings"

	"github.com/bholten/lcl/core"
	"github.com/bholten/lcl/syntax"
)

// registerProc installs lambda/proc/return (special forms over
// unevaluated param/body words) and apply/error (plain procedures over
// already-evaluated arguments).
func registerProc(interp *core.Interp) {
	interp.RegisterSpecialForm("lambda", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		proc, code, err := buildLambda(in, words)
		if code != core.OK {
			return code, nil, err
		}
		return core.OK, proc, nil
	})

	interp.RegisterSpecialForm("proc", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) != 3 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "proc: expected name, parameter list, and body")
		}
		code, nameV, err := in.EvalWordToString(&words[0])
		if code != core.OK {
			return code, nameV, err
		}
		name := core.ToString(nameV)
		nameV.Release()

		proc, code, err := buildLambda(in, words[1:])
		if code != core.OK {
			return code, nil, err
		}
		in.Env.Let(name, proc.Acquire())
		return core.OK, core.NewString(""), nil
	})

	interp.RegisterSpecialForm("return", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) == 0 {
			return core.RETURN, core.NewString(""), nil
		}
		if len(words) != 1 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "return: expected at most 1 argument")
		}
		code, v, err := in.EvalWord(&words[0])
		if code != core.OK {
			return core.ERR, v, err
		}
		return core.RETURN, v, nil
	})

	// apply proc args... is not present in the reference stdlib; it is
	// grounded on Call's documented host-side calling convention (spec
	// §4.5.3), giving scripts the same "invoke a value with a prepared
	// argument vector" capability the Go embedding API exposes natively.
	interp.Register("apply", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) < 1 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "apply: expected a callable and its arguments")
		}
		callee := argv[0]
		args := argv[1:]
		if !callee.IsCallable() {
			callee.Release()
			releaseAll(args)
			return core.ERR, nil, core.NewError(core.ErrTypeMismatch, "apply: not callable")
		}
		code, result, err := in.Call(callee, args)
		callee.Release()
		return code, result, err
	})

	// error msg raises a classified ERR carrying msg as its value, the
	// script-level counterpart to returning ERR from a native procedure;
	// not present in the reference stdlib, grounded on Error's Kind/msg
	// shape (spec §7).
	interp.Register("error", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 1 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "error: expected 1 argument")
		}
		msg := core.ToString(argv[0])
		releaseAll(argv)
		return core.ERR, nil, core.NewError(core.ErrGeneric, "%s", msg)
	})
}

// buildLambda implements lambda {params} {body}: params is split on
// whitespace (the reference's own MVP parser for this, lcl_list_new_
// from_cwords, not a proper list parse), body is compiled from the raw
// word text, and MakeUserProc captures the flat closure over it.
func buildLambda(in *core.Interp, words []syntax.Word) (*core.Value, core.Code, error) {
	if len(words) != 2 {
		return nil, core.ERR, core.NewError(core.ErrArityMismatch, "lambda: expected a parameter list and a body")
	}
	code, paramsText, err := wordText(in, &words[0])
	if code != core.OK {
		return nil, code, err
	}
	params := strings.Fields(paramsText)

	code, bodyText, err := wordText(in, &words[1])
	if code != core.OK {
		return nil, code, err
	}
	body, perr := compileText(bodyText, "<lambda>")
	if perr != nil {
		return nil, core.ERR, perr
	}

	return core.MakeUserProc(in.Env, params, body), core.OK, nil
}
