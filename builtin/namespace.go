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

// registerNamespace installs namespace, whose only subcommand is eval:
// "namespace eval path body" resolves or creates every namespace segment
// of path (auto-vivifying missing ones), pushes a namespace-backed frame
// over it, and runs body's compiled text in that frame, matching
// s_namespace/s_namespace_eval/resolve_or_create_ns_path. It also
// installs the ns namespace holding def, so "ns::def target name value"
// binds a name inside an existing namespace value without entering it
// via namespace eval (the registration lcl.h promises but
// lcl_register_core never wired; resolved here in def's favor).
func registerNamespace(interp *core.Interp) {
	registerNSDef(interp)
	interp.RegisterSpecialForm("namespace", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) < 1 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "namespace: expected a subcommand")
		}
		code, subV, err := in.EvalWordToString(&words[0])
		if code != core.OK {
			return code, subV, err
		}
		sub := core.ToString(subV)
		subV.Release()

		if sub != "eval" {
			// Bare creation shortcut: "namespace MyNs" with no body creates
			// an empty namespace standalone, matching lcl_ns_new being
			// callable without going through s_namespace_eval.
			if len(words) != 1 {
				return core.ERR, nil, core.NewError(core.ErrGeneric, "namespace: unknown subcommand %q", sub)
			}
			ns, nerr := resolveOrCreateNSPath(in, sub)
			if nerr != nil {
				return core.ERR, nil, nerr
			}
			ns.Release()
			return core.OK, core.NewString(""), nil
		}
		if len(words) != 3 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "namespace eval: expected a path and a body")
		}

		code, pathV, err := in.EvalWordToString(&words[1])
		if code != core.OK {
			return code, pathV, err
		}
		path := core.ToString(pathV)
		pathV.Release()

		ns, nerr := resolveOrCreateNSPath(in, path)
		if nerr != nil {
			return core.ERR, nil, nerr
		}

		bodyText, code, err := prepBody(in, &words[2])
		if code != core.OK {
			return code, nil, err
		}
		prog, perr := compileText(bodyText, "<namespace eval>")
		if perr != nil {
			return core.ERR, nil, perr
		}

		return evalInNamespace(in, ns, prog)
	})
}

// registerNSDef installs the ns namespace and its def procedure.
// "ns::def target name value" defines name in the namespace target
// resolves to (either a namespace value or a qualified path string),
// returning the bound value.
func registerNSDef(interp *core.Interp) {
	ns := core.NewNamespace("ns")
	interp.Define("ns", ns)

	core.NSDef(ns, "def", core.NewNativeProc("ns::def", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		if len(argv) != 3 {
			releaseAll(argv)
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "ns::def: expected a namespace, a name, and a value")
		}
		target := argv[0]
		if target.Kind() != core.KNamespace {
			path := core.ToString(target)
			target.Release()
			resolved, err := in.Env.GetValue(path)
			if err != nil {
				releaseAll(argv[1:])
				return core.ERR, nil, err
			}
			if resolved.Kind() != core.KNamespace {
				resolved.Release()
				releaseAll(argv[1:])
				return core.ERR, nil, core.NewError(core.ErrTypeMismatch, "ns::def: %s is not a namespace", path)
			}
			target = resolved
		}
		name := core.ToString(argv[1])
		argv[1].Release()
		core.NSDef(target, name, argv[2].Acquire())
		target.Release()
		return core.OK, argv[2], nil
	}))
}

// resolveOrCreateNSPath looks up each "::"-separated segment of path,
// creating a fresh Namespace at any segment that does not already exist,
// exactly as resolve_or_create_ns_path does for the C reference: the
// first segment is resolved/created in the current environment, every
// following segment inside the namespace found (or created) for the
// previous one.
func resolveOrCreateNSPath(in *core.Interp, path string) (*core.Value, error) {
	first, rest, qualified := core.SplitQualified(path)
	if !qualified {
		v, err := in.Env.GetValue(path)
		if err == nil {
			if v.Kind() != core.KNamespace {
				v.Release()
				return nil, core.NewError(core.ErrTypeMismatch, "namespace eval: %s is not a namespace", path)
			}
			return v, nil
		}
		ns := core.NewNamespace(path)
		in.Env.Let(path, ns.Acquire())
		return ns, nil
	}

	cur, err := in.Env.GetValue(first)
	if err != nil {
		cur = core.NewNamespace(first)
		in.Env.Let(first, cur.Acquire())
	} else if cur.Kind() != core.KNamespace {
		cur.Release()
		return nil, core.NewError(core.ErrTypeMismatch, "namespace eval: %s is not a namespace", first)
	}

	for rest != "" {
		part, tail, ok := core.SplitQualified(rest)
		if ok {
			rest = tail
		} else {
			part = rest
			rest = ""
		}
		next, ok := core.NSGet(cur, part)
		if ok {
			if next.Kind() != core.KNamespace {
				next.Release()
				cur.Release()
				return nil, core.NewError(core.ErrTypeMismatch, "namespace eval: %s is not a namespace", part)
			}
		} else {
			next = core.NewNamespace(part)
			core.NSDef(cur, part, next.Acquire())
		}
		cur.Release()
		cur = next
	}
	return cur, nil
}

// evalInNamespace pushes a namespace-backed frame over ns (bindings land
// directly in ns, per spec §4.3 "frame_new_namespace"), runs prog in it,
// and restores the previous frame and current namespace afterward. RETURN
// is not converted to OK here, matching s_namespace_eval's manual
// dispatch loop, which only converts ERR/propagates RETURN untouched.
func evalInNamespace(in *core.Interp, ns *core.Value, prog *syntax.Program) (core.Code, *core.Value, error) {
	frame := in.Env.NewNamespaceFrame(ns)
	prevFrame := in.Env.PushFrame(frame)
	prevNS := in.Env.PushNamespace(ns)

	code, result, err := in.EvalProgram(prog)

	in.Env.RestoreFrame(prevFrame)
	in.Env.RestoreNamespace(prevNS)
	core.ReleaseFrame(frame)
	ns.Release()

	return code, result, err
}
