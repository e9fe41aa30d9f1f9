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

// registerGeneric installs the type-directed container operations: len,
// empty?, get (with an optional default), put, del, and has?. Each has its
// own per-type support matrix mirroring c_len/c_empty/c_generic_get/c_put/
// c_del/c_has exactly: del is only implemented for Dict (del on List was
// never implemented in the reference either, left as an MVP gap), and get's
// third "default" argument only applies on a missing key/out-of-range index.
func registerGeneric(interp *core.Interp) {
	interp.Register("len", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 1 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "len: expected 1 argument")
		}
		v := argv[0]
		var n int
		switch v.Kind() {
		case core.KList:
			n = core.ListLen(v)
		case core.KDict:
			n = core.DictLen(v)
		case core.KString:
			n = len(core.ToString(v))
		default:
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrTypeMismatch, "len: unsupported type %s", v.Kind())
		}
		releaseAll(argv)
		return core.OK, core.NewInt(core.Cell(n)), nil
	})

	interp.Register("empty?", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 1 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "empty?: expected 1 argument")
		}
		v := argv[0]
		var empty bool
		switch v.Kind() {
		case core.KList:
			empty = core.ListLen(v) == 0
		case core.KDict:
			empty = core.DictLen(v) == 0
		case core.KString:
			empty = core.ToString(v) == ""
		default:
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrTypeMismatch, "empty?: unsupported type %s", v.Kind())
		}
		releaseAll(argv)
		return core.OK, boolValue(empty), nil
	})

	interp.Register("get", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) < 1 || len(argv) > 3 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "get: expected 1 to 3 arguments")
		}
		// Single-argument form reads a binding by name, unwrapping one
		// Cell layer, same as getvar (c_get answered both call shapes
		// through the one registration).
		if len(argv) == 1 {
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
		}
		container, key := argv[0], argv[1]
		var def *core.Value
		if len(argv) == 3 {
			def = argv[2]
		}
		switch container.Kind() {
		case core.KList:
			idx, err := core.ToInt(key)
			if err != nil {
				releaseAll(argv)
				return core.ERR, nil, err
			}
			elem, gerr := core.ListGet(container, int(idx))
			container.Release()
			key.Release()
			if gerr != nil {
				if def != nil {
					return core.OK, def, nil
				}
				return core.ERR, nil, gerr
			}
			def.Release()
			return core.OK, elem, nil
		case core.KDict:
			k := core.ToString(key)
			elem, ok := core.DictGet(container, k)
			container.Release()
			key.Release()
			if !ok {
				if def != nil {
					return core.OK, def, nil
				}
				return core.ERR, nil, core.NewError(core.ErrUnbound, "get: no such key %q", k)
			}
			def.Release()
			return core.OK, elem, nil
		case core.KString:
			idx, err := core.ToInt(key)
			s := core.ToString(container)
			container.Release()
			key.Release()
			if err != nil {
				def.Release()
				return core.ERR, nil, err
			}
			if idx < 0 || int(idx) >= len(s) {
				if def != nil {
					return core.OK, def, nil
				}
				return core.ERR, nil, core.NewError(core.ErrIndexRange, "get: string index out of range")
			}
			def.Release()
			return core.OK, core.NewString(string(s[idx])), nil
		default:
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrTypeMismatch, "get: unsupported type %s", container.Kind())
		}
	})

	interp.Register("put", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 3 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "put: expected 3 arguments")
		}
		container, key, val := argv[0], argv[1], argv[2]
		switch container.Kind() {
		case core.KList:
			idx, err := core.ToInt(key)
			key.Release()
			if err != nil {
				container.Release()
				val.Release()
				return core.ERR, nil, err
			}
			updated, serr := core.ListSet(container, int(idx), val)
			if serr != nil {
				updated.Release()
				return core.ERR, nil, serr
			}
			return core.OK, updated, nil
		case core.KDict:
			k := core.ToString(key)
			key.Release()
			updated := core.DictPut(container, k, val)
			return core.OK, updated, nil
		default:
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrTypeMismatch, "put: unsupported type %s", container.Kind())
		}
	})

	interp.Register("del", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 2 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "del: expected 2 arguments")
		}
		container, key := argv[0], argv[1]
		if container.Kind() != core.KDict {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrTypeMismatch, "del: unsupported type %s", container.Kind())
		}
		k := core.ToString(key)
		key.Release()
		updated := core.DictDelete(container, k)
		return core.OK, updated, nil
	})

	interp.Register("has?", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 2 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "has?: expected 2 arguments")
		}
		container, key := argv[0], argv[1]
		switch container.Kind() {
		case core.KList:
			idx, err := core.ToInt(key)
			if err != nil {
				releaseAll(argv)
				return core.ERR, nil, err
			}
			inRange := idx >= 0 && int(idx) < core.ListLen(container)
			releaseAll(argv)
			return core.OK, boolValue(inRange), nil
		case core.KDict:
			k := core.ToString(key)
			found, ok := core.DictGet(container, k)
			if ok {
				found.Release()
			}
			releaseAll(argv)
			return core.OK, boolValue(ok), nil
		default:
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrTypeMismatch, "has?: unsupported type %s", container.Kind())
		}
	})
}
