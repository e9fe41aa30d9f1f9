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

// registerCmp installs the ordering and equality operators. Orderings
// promote both operands through core.ToFloat, mirroring c_lt/c_lte/c_gt/
// c_gte. == and != are core.Equal's deep, cycle-safe, numeric-promoting
// comparison; same?/not-same? are raw pointer identity with no dereference,
// mirroring c_same/c_not_same.
func registerCmp(interp *core.Interp) {
	order := func(name string, cmp func(a, b float64) bool) {
		interp.Register(name, func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
			if len(argv) != 2 {
				releaseAll(argv)
				return core.ERR, nil, core.NewError(core.ErrArityMismatch, "%s: expected 2 arguments", name)
			}
			left, err := core.ToFloat(argv[0])
			if err != nil {
				releaseAll(argv)
				return core.ERR, nil, err
			}
			right, err := core.ToFloat(argv[1])
			releaseAll(argv)
			if err != nil {
				return core.ERR, nil, err
			}
			return core.OK, boolValue(cmp(left, right)), nil
		})
	}
	order("<", func(a, b float64) bool { return a < b })
	order("<=", func(a, b float64) bool { return a <= b })
	order(">", func(a, b float64) bool { return a > b })
	order(">=", func(a, b float64) bool { return a >= b })

	interp.Register("==", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 2 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "==: expected 2 arguments")
		}
		eq, err := core.Equal(argv[0], argv[1])
		releaseAll(argv)
		if err != nil {
			return core.ERR, nil, err
		}
		return core.OK, boolValue(eq), nil
	})

	interp.Register("!=", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 2 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "!=: expected 2 arguments")
		}
		eq, err := core.Equal(argv[0], argv[1])
		releaseAll(argv)
		if err != nil {
			return core.ERR, nil, err
		}
		return core.OK, boolValue(!eq), nil
	})

	interp.Register("same?", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 2 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "same?: expected 2 arguments")
		}
		same := core.Same(argv[0], argv[1])
		releaseAll(argv)
		return core.OK, boolValue(same), nil
	})

	interp.Register("not-same?", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 2 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "not-same?: expected 2 arguments")
		}
		same := core.Same(argv[0], argv[1])
		releaseAll(argv)
		return core.OK, boolValue(!same), nil
	})
}

// boolValue encodes an LCL boolean as the canonical 0/1 Int, matching
// lcl_int_new(...) throughout the reference stdlib.
func boolValue(b bool) *core.Value {
	if b {
		return core.NewInt(1)
	}
	return core.NewInt(0)
}
