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

// registerLogic installs and/or/not. These are plain procedures over
// already-evaluated arguments (not short-circuiting special forms), same as
// c_and/c_or/c_not: every operand is evaluated by the dispatcher before the
// command runs.
func registerLogic(interp *core.Interp) {
	interp.Register("and", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) < 2 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "and: expected at least 2 arguments")
		}
		result := true
		for _, a := range argv {
			if result && !isTrue(a) {
				result = false
			}
		}
		releaseAll(argv)
		return core.OK, boolValue(result), nil
	})

	interp.Register("or", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) < 2 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "or: expected at least 2 arguments")
		}
		result := false
		for _, a := range argv {
			if isTrue(a) {
				result = true
			}
		}
		releaseAll(argv)
		return core.OK, boolValue(result), nil
	})

	interp.Register("not", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 1 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "not: expected 1 argument")
		}
		result := !isTrue(argv[0])
		releaseAll(argv)
		return core.OK, boolValue(result), nil
	})
}
