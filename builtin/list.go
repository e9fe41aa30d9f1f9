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

// registerList installs list, lindex/llength/lrange/concat/join/split,
// lappend/lset, and the List:: namespace's pure, copy-returning mirrors
// (push/pop/slice/concat/reverse/index/range/new).
func registerList(interp *core.Interp) {
	interp.Register("list", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		return core.OK, core.NewList(argv), nil
	})

	interp.Register("lindex", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) < 1 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "lindex: expected a list and zero or more indices")
		}
		if len(argv) == 1 {
			return core.OK, argv[0], nil
		}
		indices := argv[1:]
		cur := argv[0]
		for i, idxV := range indices {
			idx, err := core.ToInt(idxV)
			idxV.Release()
			if err != nil {
				cur.Release()
				releaseAllFrom(indices, i+1)
				return core.ERR, nil, err
			}
			if cur.Kind() != core.KList {
				if idx == 0 {
					continue
				}
				cur.Release()
				releaseAllFrom(indices, i+1)
				return core.OK, core.NewString(""), nil
			}
			if idx < 0 {
				cur.Release()
				releaseAllFrom(indices, i+1)
				return core.OK, core.NewString(""), nil
			}
			next, gerr := core.ListGet(cur, int(idx))
			cur.Release()
			if gerr != nil {
				releaseAllFrom(indices, i+1)
				return core.OK, core.NewString(""), nil
			}
			cur = next
		}
		return core.OK, cur, nil
	})

	interp.Register("llength", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 1 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "llength: expected 1 argument")
		}
		n := 1
		if argv[0].Kind() == core.KList {
			n = core.ListLen(argv[0])
		}
		releaseAll(argv)
		return core.OK, core.NewInt(core.Cell(n)), nil
	})

	interp.Register("lrange", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 3 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "lrange: expected list, first, and last")
		}
		list, firstV, lastV := argv[0], argv[1], argv[2]
		first, err := core.ToInt(firstV)
		if err != nil {
			releaseAll(argv)
			return core.ERR, nil, err
		}
		last, err := core.ToInt(lastV)
		firstV.Release()
		lastV.Release()
		if err != nil {
			list.Release()
			return core.ERR, nil, err
		}

		if list.Kind() != core.KList {
			elems := []*core.Value(nil)
			if first <= 0 && last >= 0 {
				elems = append(elems, list)
			} else {
				list.Release()
			}
			return core.OK, core.NewList(elems), nil
		}

		n := core.Cell(core.ListLen(list))
		if first < 0 {
			first = 0
		}
		if last < 0 {
			last = -1
		}
		if last >= n {
			last = n - 1
		}
		var elems []*core.Value
		for i := first; i <= last && i < n; i++ {
			elem, _ := core.ListGet(list, int(i))
			elems = append(elems, elem)
		}
		list.Release()
		return core.OK, core.NewList(elems), nil
	})

	interp.Register("concat", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		var elems []*core.Value
		for _, a := range argv {
			if a.Kind() == core.KList {
				n := core.ListLen(a)
				for i := 0; i < n; i++ {
					elem, _ := core.ListGet(a, i)
					elems = append(elems, elem)
				}
				a.Release()
			} else {
				elems = append(elems, a)
			}
		}
		return core.OK, core.NewList(elems), nil
	})

	interp.Register("join", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) < 1 || len(argv) > 2 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "join: expected a list and an optional separator")
		}
		list := argv[0]
		sep := " "
		if len(argv) == 2 {
			sep = core.ToString(argv[1])
			argv[1].Release()
		}
		if list.Kind() != core.KList {
			s := core.ToString(list)
			list.Release()
			return core.OK, core.NewString(s), nil
		}
		n := core.ListLen(list)
		parts := make([]string, n)
		for i := 0; i < n; i++ {
			elem, _ := core.ListGet(list, i)
			parts[i] = core.ToString(elem)
			elem.Release()
		}
		list.Release()
		return core.OK, core.NewString(strings.Join(parts, sep)), nil
	})

	interp.Register("split", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) < 1 || len(argv) > 2 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "split: expected a string and optional split characters")
		}
		s := core.ToString(argv[0])
		splitChars := ""
		if len(argv) == 2 {
			splitChars = core.ToString(argv[1])
		}
		releaseAll(argv)

		var parts []string
		if splitChars == "" {
			for _, r := range s {
				parts = append(parts, string(r))
			}
		} else {
			// strings.FieldsFunc drops empty fields and leading/trailing
			// splits; c_split keeps every boundary including a trailing
			// empty part, so split manually instead.
			parts = splitKeepEmpty(s, splitChars)
		}
		elems := make([]*core.Value, len(parts))
		for i, p := range parts {
			elems[i] = core.NewString(p)
		}
		return core.OK, core.NewList(elems), nil
	})

	interp.RegisterSpecialForm("lappend", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) < 1 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "lappend: expected a variable name")
		}
		code, nameV, err := in.EvalWordToString(&words[0])
		if code != core.OK {
			return code, nameV, err
		}
		name := core.ToString(nameV)
		nameV.Release()

		cell, cerr := in.Env.GetCellBinding(name)
		var list *core.Value
		if cerr == nil {
			list = core.CellGet(cell)
		} else if e, ok := core.AsError(cerr); ok && e.Kind == core.ErrTypeMismatch {
			// A plain (let) binding is rebound to the extended list; the
			// old list, and any alias of it, is left unchanged.
			list, cerr = in.Env.GetValue(name)
			if cerr != nil {
				return core.ERR, nil, cerr
			}
		} else {
			return core.ERR, nil, cerr
		}
		if list.Kind() != core.KList {
			list = core.NewList([]*core.Value{list})
		}
		for _, w := range words[1:] {
			code, v, err := in.EvalWord(&w)
			if code != core.OK {
				list.Release()
				return code, v, err
			}
			list = core.ListPush(list, v)
		}
		if cell != nil {
			core.CellSet(cell, list.Acquire())
		} else {
			in.Env.Let(name, list.Acquire())
		}
		return core.OK, list, nil
	})

	interp.RegisterSpecialForm("lset", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) != 3 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "lset: expected a variable name, an index, and a value")
		}
		code, nameV, err := in.EvalWordToString(&words[0])
		if code != core.OK {
			return code, nameV, err
		}
		name := core.ToString(nameV)
		nameV.Release()

		code, idxV, err := in.EvalWord(&words[1])
		if code != core.OK {
			return code, idxV, err
		}
		idx, ierr := core.ToInt(idxV)
		idxV.Release()
		if ierr != nil {
			return core.ERR, nil, ierr
		}

		code, val, err := in.EvalWord(&words[2])
		if code != core.OK {
			return code, val, err
		}

		cell, cerr := in.Env.GetCellBinding(name)
		if cerr != nil {
			val.Release()
			return core.ERR, nil, cerr
		}
		list := core.CellGet(cell)
		updated, serr := core.ListSet(list, int(idx), val)
		if serr != nil {
			updated.Release()
			return core.ERR, nil, serr
		}
		core.CellSet(cell, updated.Acquire())
		return core.OK, updated, nil
	})

	registerListNamespace(interp)
}

// releaseAllFrom releases indices[from:], the index words lindex's
// nested-indexing loop has not yet consumed when it bails out mid-walk.
func releaseAllFrom(indices []*core.Value, from int) {
	for _, a := range indices[from:] {
		a.Release()
	}
}

// splitKeepEmpty splits s on any byte in chars, keeping empty fields
// (including a trailing one), matching c_split's manual scan exactly.
func splitKeepEmpty(s, chars string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(chars, s[i]) >= 0 {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// registerListNamespace installs the List:: namespace's pure mirrors:
// push/pop/slice/concat/reverse return a new list rather than mutating a
// binding, and index/range/new alias lindex/lrange/list.
func registerListNamespace(interp *core.Interp) {
	ns := core.NewNamespace("List")
	interp.Define("List", ns)

	def := func(name string, fn core.NativeFunc) {
		core.NSDef(ns, name, core.NewNativeProc("List::"+name, fn))
	}

	def("new", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		return core.OK, core.NewList(argv), nil
	})

	def("push", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 2 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "List::push: expected a list and a value")
		}
		if argv[0].Kind() != core.KList {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrTypeMismatch, "List::push: not a list")
		}
		return core.OK, core.ListPush(argv[0], argv[1]), nil
	})

	def("pop", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 1 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "List::pop: expected a list")
		}
		list := argv[0]
		if list.Kind() != core.KList {
			list.Release()
			return core.ERR, nil, core.NewError(core.ErrTypeMismatch, "List::pop: not a list")
		}
		n := core.ListLen(list)
		if n == 0 {
			list.Release()
			return core.ERR, nil, core.NewError(core.ErrIndexRange, "List::pop: empty list")
		}
		elems := make([]*core.Value, n-1)
		for i := 0; i < n-1; i++ {
			elems[i], _ = core.ListGet(list, i)
		}
		list.Release()
		return core.OK, core.NewList(elems), nil
	})

	def("slice", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) < 2 || len(argv) > 3 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "List::slice: expected a list, a start, and an optional end")
		}
		list := argv[0]
		if list.Kind() != core.KList {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrTypeMismatch, "List::slice: not a list")
		}
		n := core.Cell(core.ListLen(list))
		start, err := core.ToInt(argv[1])
		argv[1].Release()
		if err != nil {
			list.Release()
			if len(argv) == 3 {
				argv[2].Release()
			}
			return core.ERR, nil, err
		}
		end := n
		if len(argv) == 3 {
			end, err = core.ToInt(argv[2])
			argv[2].Release()
			if err != nil {
				list.Release()
				return core.ERR, nil, err
			}
		}
		if start < 0 {
			start = n + start
		}
		if end < 0 {
			end = n + end
		}
		if start < 0 {
			start = 0
		}
		if end > n {
			end = n
		}
		if start > end {
			start = end
		}
		var elems []*core.Value
		for i := start; i < end; i++ {
			elem, _ := core.ListGet(list, int(i))
			elems = append(elems, elem)
		}
		list.Release()
		return core.OK, core.NewList(elems), nil
	})

	def("concat", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 2 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "List::concat: expected 2 lists")
		}
		if argv[0].Kind() != core.KList || argv[1].Kind() != core.KList {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrTypeMismatch, "List::concat: not a list")
		}
		var elems []*core.Value
		for _, a := range argv {
			n := core.ListLen(a)
			for i := 0; i < n; i++ {
				elem, _ := core.ListGet(a, i)
				elems = append(elems, elem)
			}
			a.Release()
		}
		return core.OK, core.NewList(elems), nil
	})

	def("reverse", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 1 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "List::reverse: expected a list")
		}
		list := argv[0]
		if list.Kind() != core.KList {
			list.Release()
			return core.ERR, nil, core.NewError(core.ErrTypeMismatch, "List::reverse: not a list")
		}
		n := core.ListLen(list)
		elems := make([]*core.Value, n)
		for i := 0; i < n; i++ {
			elems[n-1-i], _ = core.ListGet(list, i)
		}
		list.Release()
		return core.OK, core.NewList(elems), nil
	})

	ixProc, _ := interp.Lookup("lindex")
	core.NSDef(ns, "index", ixProc)
	rgProc, _ := interp.Lookup("lrange")
	core.NSDef(ns, "range", rgProc)
}
