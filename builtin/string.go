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
)

// registerString installs the string ensemble (length/index/range/
// toupper/tolower/trim/repeat/compare) and the String:: namespace's
// upper/lower/find/replace/split/join. upper/lower/find/replace are
// direct ports of c_string_upper/c_string_lower/c_string_find/
// c_string_replace; split/join alias the plain split/join procedures
// registered in list.go, exactly as the reference aliases c_split/c_join
// under String::split/String::join. length/index/range/toupper/tolower/
// trim/repeat/compare have no counterpart in lcl-string.c (which only
// ever grew string construction and reification helpers there), so they
// are implemented directly against the standard library's strings
// package rather than hand-rolled byte loops.
func registerString(interp *core.Interp) {
	interp.Register("string", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) < 1 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "string: expected a subcommand")
		}
		sub := core.ToString(argv[0])
		argv[0].Release()
		rest := argv[1:]

		switch sub {
		case "length":
			return stringLength(rest)
		case "index":
			return stringIndex(rest)
		case "range":
			return stringRange(rest)
		case "toupper":
			return stringToUpper(rest)
		case "tolower":
			return stringToLower(rest)
		case "trim":
			return stringTrim(rest)
		case "repeat":
			return stringRepeat(rest)
		case "compare":
			return stringCompare(rest)
		default:
			releaseAll(rest)
			return core.ERR, nil, core.NewError(core.ErrGeneric, "string: unknown subcommand %q", sub)
		}
	})

	registerStringNamespace(interp)
}

func stringLength(argv []*core.Value) (core.Code, *core.Value, error) {
	if len(argv) != 1 {
		releaseAll(argv)
		return core.ERR, nil, core.NewError(core.ErrArityMismatch, "string length: expected 1 argument")
	}
	n := len(core.ToString(argv[0]))
	argv[0].Release()
	return core.OK, core.NewInt(core.Cell(n)), nil
}

func stringIndex(argv []*core.Value) (core.Code, *core.Value, error) {
	if len(argv) != 2 {
		releaseAll(argv)
		return core.ERR, nil, core.NewError(core.ErrArityMismatch, "string index: expected a string and an index")
	}
	s := core.ToString(argv[0])
	idx, err := core.ToInt(argv[1])
	releaseAll(argv)
	if err != nil {
		return core.ERR, nil, err
	}
	if idx < 0 || int(idx) >= len(s) {
		return core.OK, core.NewString(""), nil
	}
	return core.OK, core.NewString(string(s[idx])), nil
}

func stringRange(argv []*core.Value) (core.Code, *core.Value, error) {
	if len(argv) != 3 {
		releaseAll(argv)
		return core.ERR, nil, core.NewError(core.ErrArityMismatch, "string range: expected a string, a first, and a last")
	}
	s := core.ToString(argv[0])
	first, err := core.ToInt(argv[1])
	if err != nil {
		releaseAll(argv)
		return core.ERR, nil, err
	}
	last, err := core.ToInt(argv[2])
	releaseAll(argv)
	if err != nil {
		return core.ERR, nil, err
	}
	n := core.Cell(len(s))
	if first < 0 {
		first = 0
	}
	if last >= n {
		last = n - 1
	}
	if first > last || first >= n || last < 0 {
		return core.OK, core.NewString(""), nil
	}
	return core.OK, core.NewString(s[first:last+1]), nil
}

func stringToUpper(argv []*core.Value) (core.Code, *core.Value, error) {
	if len(argv) != 1 {
		releaseAll(argv)
		return core.ERR, nil, core.NewError(core.ErrArityMismatch, "string toupper: expected 1 argument")
	}
	s := strings.ToUpper(core.ToString(argv[0]))
	argv[0].Release()
	return core.OK, core.NewString(s), nil
}

func stringToLower(argv []*core.Value) (core.Code, *core.Value, error) {
	if len(argv) != 1 {
		releaseAll(argv)
		return core.ERR, nil, core.NewError(core.ErrArityMismatch, "string tolower: expected 1 argument")
	}
	s := strings.ToLower(core.ToString(argv[0]))
	argv[0].Release()
	return core.OK, core.NewString(s), nil
}

func stringTrim(argv []*core.Value) (core.Code, *core.Value, error) {
	if len(argv) != 1 {
		releaseAll(argv)
		return core.ERR, nil, core.NewError(core.ErrArityMismatch, "string trim: expected 1 argument")
	}
	s := strings.TrimSpace(core.ToString(argv[0]))
	argv[0].Release()
	return core.OK, core.NewString(s), nil
}

func stringRepeat(argv []*core.Value) (core.Code, *core.Value, error) {
	if len(argv) != 2 {
		releaseAll(argv)
		return core.ERR, nil, core.NewError(core.ErrArityMismatch, "string repeat: expected a string and a count")
	}
	s := core.ToString(argv[0])
	count, err := core.ToInt(argv[1])
	releaseAll(argv)
	if err != nil {
		return core.ERR, nil, err
	}
	if count < 0 {
		return core.ERR, nil, core.NewError(core.ErrIndexRange, "string repeat: negative count")
	}
	return core.OK, core.NewString(strings.Repeat(s, int(count))), nil
}

func stringCompare(argv []*core.Value) (core.Code, *core.Value, error) {
	if len(argv) != 2 {
		releaseAll(argv)
		return core.ERR, nil, core.NewError(core.ErrArityMismatch, "string compare: expected 2 arguments")
	}
	a, b := core.ToString(argv[0]), core.ToString(argv[1])
	releaseAll(argv)
	return core.OK, core.NewInt(core.Cell(strings.Compare(a, b))), nil
}

// registerStringNamespace installs String::upper/lower/find/replace as
// direct ports of c_string_upper/c_string_lower/c_string_find/
// c_string_replace, and String::split/join as aliases of the plain
// split/join procedures, matching the reference's own ns_def aliasing of
// c_split/c_join under the String:: table.
func registerStringNamespace(interp *core.Interp) {
	ns := core.NewNamespace("String")
	interp.Define("String", ns)

	def := func(name string, fn core.NativeFunc) {
		core.NSDef(ns, name, core.NewNativeProc("String::"+name, fn))
	}

	def("upper", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		return stringToUpper(argv)
	})
	def("lower", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		return stringToLower(argv)
	})

	def("find", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 2 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "String::find: expected a haystack and a needle")
		}
		haystack, needle := core.ToString(argv[0]), core.ToString(argv[1])
		releaseAll(argv)
		return core.OK, core.NewInt(core.Cell(strings.Index(haystack, needle))), nil
	})

	def("replace", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 3 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "String::replace: expected a string, an old substring, and a new one")
		}
		src, old, replacement := core.ToString(argv[0]), core.ToString(argv[1]), core.ToString(argv[2])
		if old == "" {
			result := argv[0]
			argv[1].Release()
			argv[2].Release()
			return core.OK, result, nil
		}
		releaseAll(argv)
		return core.OK, core.NewString(strings.ReplaceAll(src, old, replacement)), nil
	})

	splitProc, _ := interp.Lookup("split")
	core.NSDef(ns, "split", splitProc)
	joinProc, _ := interp.Lookup("join")
	core.NSDef(ns, "join", joinProc)
}
