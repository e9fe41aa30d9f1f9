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
	"github.com/bholten/lcl/core"
	"github.com/bholten/lcl/syntax"
)

// registerBind installs the binding and cell primitives: let/ref/getvar as
// plain procedures, var/set!/binding-cell/same-binding? as special forms
// that need the unevaluated name word (so a bare "x" names the binding
// rather than looking "x" up), and incr/decr as thin convenience mutators
// layered on set!/getvar/+ with no new core mechanism.
func registerBind(interp *core.Interp) {
	interp.Register("let", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 2 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "let: expected 2 arguments")
		}
		name := core.ToString(argv[0])
		argv[0].Release()
		in.Env.Let(name, argv[1].Acquire())
		return core.OK, argv[1], nil
	})

	interp.Register("ref", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 1 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "ref: expected 1 argument")
		}
		return core.OK, core.NewCell(argv[0]), nil
	})

	interp.Register("getvar", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 1 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "getvar: expected 1 argument")
		}
		name := core.ToString(argv[0])
		argv[0].Release()
		v, err := in.Env.GetValue(name)
		if err != nil {
			return core.ERR, nil, err
		}
		if v.Kind() == core.KCell {
			inner := core.CellGet(v)
			v.Release()
			return core.OK, inner, nil
		}
		return core.OK, v, nil
	})

	interp.RegisterSpecialForm("var", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) != 2 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "var: expected name and initial value")
		}
		code, nameV, err := in.EvalWordToString(&words[0])
		if code != core.OK {
			return code, nameV, err
		}
		name := core.ToString(nameV)
		nameV.Release()
		code, initV, err := in.EvalWord(&words[1])
		if code != core.OK {
			return code, initV, err
		}
		in.Env.Var(name, initV)
		return core.OK, core.NewString(""), nil
	})

	interp.RegisterSpecialForm("set!", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) != 2 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "set!: expected name and value")
		}
		code, nameV, err := in.EvalWordToString(&words[0])
		if code != core.OK {
			return code, nameV, err
		}
		name := core.ToString(nameV)
		nameV.Release()
		code, val, err := in.EvalWord(&words[1])
		if code != core.OK {
			return code, val, err
		}
		if err := in.Env.Set(name, val.Acquire()); err != nil {
			val.Release()
			return core.ERR, nil, err
		}
		return core.OK, val, nil
	})

	interp.RegisterSpecialForm("binding-cell", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) != 1 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "binding-cell: expected 1 argument")
		}
		code, nameV, err := in.EvalWord(&words[0])
		if code != core.OK {
			return code, nameV, err
		}
		name := core.ToString(nameV)
		nameV.Release()
		binding, err := in.Env.GetValue(name)
		if err != nil {
			return core.ERR, nil, err
		}
		if binding.Kind() != core.KCell {
			binding.Release()
			return core.ERR, nil, core.NewError(core.ErrTypeMismatch, "binding-cell: %s is not a mutable binding", name)
		}
		return core.OK, binding, nil
	})

	interp.RegisterSpecialForm("same-binding?", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) != 2 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "same-binding?: expected 2 names")
		}
		bindings := make([]*core.Value, 2)
		for i := 0; i < 2; i++ {
			code, nameV, err := in.EvalWord(&words[i])
			if code != core.OK {
				for _, b := range bindings[:i] {
					b.Release()
				}
				return code, nameV, err
			}
			name := core.ToString(nameV)
			nameV.Release()
			b, err := in.Env.GetValue(name)
			if err != nil {
				for _, prior := range bindings[:i] {
					prior.Release()
				}
				return core.ERR, nil, err
			}
			if b.Kind() != core.KCell {
				b.Release()
				for _, prior := range bindings[:i] {
					prior.Release()
				}
				return core.ERR, nil, core.NewError(core.ErrTypeMismatch, "same-binding?: %s is not a mutable binding", name)
			}
			bindings[i] = b
		}
		same := core.Same(bindings[0], bindings[1])
		bindings[0].Release()
		bindings[1].Release()
		return core.OK, boolValue(same), nil
	})

	registerIncrDecr(interp)
}

// registerIncrDecr installs incr/decr as thin mutators over an existing
// mutable (Cell) binding: fetch the current value, add/subtract (defaulting
// to 1), and write it back through the same Cell, returning the updated
// value — the same "mutate in place, return the new container" shape as
// lappend/lset.
func registerIncrDecr(interp *core.Interp) {
	step := func(name string, sign float64) {
		interp.RegisterSpecialForm(name, func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
			if len(words) < 1 || len(words) > 2 {
				return core.ERR, nil, core.NewError(core.ErrArityMismatch, "%s: expected a name and an optional amount", name)
			}
			code, nameV, err := in.EvalWordToString(&words[0])
			if code != core.OK {
				return code, nameV, err
			}
			varName := core.ToString(nameV)
			nameV.Release()

			amount := 1.0
			if len(words) == 2 {
				code, amtV, err := in.EvalWord(&words[1])
				if code != core.OK {
					return code, amtV, err
				}
				amount, err = core.ToFloat(amtV)
				amtV.Release()
				if err != nil {
					return core.ERR, nil, err
				}
			}

			cell, err := in.Env.GetCellBinding(varName)
			if err != nil {
				return core.ERR, nil, err
			}
			cur := core.CellGet(cell)
			wasInt := cur.Kind() == core.KInt
			f, err := core.ToFloat(cur)
			cur.Release()
			if err != nil {
				return core.ERR, nil, err
			}
			var updated *core.Value
			if wasInt {
				updated = core.NewInt(core.Cell(f + sign*amount))
			} else {
				updated = core.NewFloat(f + sign*amount)
			}
			core.CellSet(cell, updated.Acquire())
			return core.OK, updated, nil
		})
	}
	step("incr", 1)
	step("decr", -1)
}
