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

import "github.com/bholten/lcl/core"

// registerArith installs the arithmetic operators. +, -, *, / always
// promote every operand through core.ToFloat and produce a Float, mirroring
// the reference implementation's c_add/c_sub/c_mult/c_div (which convert via
// lcl_value_to_float regardless of whether the operands were ints); % is the
// one integer-only operator, via core.ToInt.
func registerArith(interp *core.Interp) {
	interp.Register("+", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		var sum float64
		for _, a := range argv {
			f, err := core.ToFloat(a)
			if err != nil {
				releaseAll(argv)
				return core.ERR, nil, err
			}
			sum += f
		}
		releaseAll(argv)
		return core.OK, core.NewFloat(sum), nil
	})

	interp.Register("-", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) < 2 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "-: expected at least 2 arguments")
		}
		result, err := core.ToFloat(argv[0])
		if err != nil {
			releaseAll(argv)
			return core.ERR, nil, err
		}
		for _, a := range argv[1:] {
			v, err := core.ToFloat(a)
			if err != nil {
				releaseAll(argv)
				return core.ERR, nil, err
			}
			result -= v
		}
		releaseAll(argv)
		return core.OK, core.NewFloat(result), nil
	})

	interp.Register("*", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		product := 1.0
		for _, a := range argv {
			f, err := core.ToFloat(a)
			if err != nil {
				releaseAll(argv)
				return core.ERR, nil, err
			}
			product *= f
		}
		releaseAll(argv)
		return core.OK, core.NewFloat(product), nil
	})

	interp.Register("/", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 2 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "/: expected 2 arguments")
		}
		num, err := core.ToFloat(argv[0])
		if err != nil {
			releaseAll(argv)
			return core.ERR, nil, err
		}
		den, err := core.ToFloat(argv[1])
		releaseAll(argv)
		if err != nil {
			return core.ERR, nil, err
		}
		if den == 0 {
			return core.ERR, nil, core.NewError(core.ErrArithmetic, "/: division by zero")
		}
		return core.OK, core.NewFloat(num / den), nil
	})

	interp.Register("%", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 2 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "%%: expected 2 arguments")
		}
		dividend, err := core.ToInt(argv[0])
		if err != nil {
			releaseAll(argv)
			return core.ERR, nil, err
		}
		divisor, err := core.ToInt(argv[1])
		releaseAll(argv)
		if err != nil {
			return core.ERR, nil, err
		}
		if divisor == 0 {
			return core.ERR, nil, core.NewError(core.ErrArithmetic, "%%: division by zero")
		}
		return core.OK, core.NewInt(dividend % divisor), nil
	})
}

// releaseAll releases every element of argv; NativeFuncs own argv and must
// release whatever they don't keep (spec §4.4.3 step 6).
func releaseAll(argv []*core.Value) {
	for _, a := range argv {
		a.Release()
	}
}
