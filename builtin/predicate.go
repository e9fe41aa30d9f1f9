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
	"strconv"
	"strings"

	"github.com/bholten/lcl/core"
)

// registerPredicate installs the type predicates. proc? is true for either
// callable Kind (user procs and native procs alike), matching
// c_is_proc's LCL_PROC || LCL_CPROC check. number? requires a native
// numeric Kind, or, for a String, a full-string parse as either an integer
// or a float (spec §9 Open Question 2's resolution, mirrored by
// c_is_number's strtol-then-strtod fallback).
func registerPredicate(interp *core.Interp) {
	kindIs := func(name string, k core.Kind) {
		interp.Register(name, func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
			if len(argv) != 1 {
				releaseAll(argv)
				return core.ERR, nil, core.NewError(core.ErrArityMismatch, "%s: expected 1 argument", name)
			}
			is := argv[0].Kind() == k
			releaseAll(argv)
			return core.OK, boolValue(is), nil
		})
	}
	kindIs("list?", core.KList)
	kindIs("dict?", core.KDict)
	kindIs("string?", core.KString)
	kindIs("int?", core.KInt)
	kindIs("float?", core.KFloat)
	kindIs("cell?", core.KCell)

	interp.Register("proc?", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 1 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "proc?: expected 1 argument")
		}
		is := argv[0].Kind() == core.KUserProc || argv[0].Kind() == core.KNativeProc
		releaseAll(argv)
		return core.OK, boolValue(is), nil
	})

	interp.Register("number?", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 1 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "number?: expected 1 argument")
		}
		is := isFullyNumeric(argv[0])
		releaseAll(argv)
		return core.OK, boolValue(is), nil
	})
}

// isFullyNumeric reports whether v is an Int/Float, or a String that
// parses entirely (no trailing garbage) as an integer or a float.
func isFullyNumeric(v *core.Value) bool {
	switch v.Kind() {
	case core.KInt, core.KFloat:
		return true
	case core.KString:
		s := strings.TrimSpace(core.ToString(v))
		if s == "" {
			return false
		}
		if _, err := strconv.ParseInt(s, 0, 64); err == nil {
			return true
		}
		_, err := strconv.ParseFloat(s, 64)
		return err == nil
	}
	return false
}
