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

package core_test

import (
	"testing"

	"github.com/bholten/lcl/core"
)

func TestArityMismatchIsError(t *testing.T) {
	in, _ := newTestInterp(t)
	code, v, err := in.EvalSource("<test>", []byte("proc two {a b} { + $a $b }; two 1"))
	if v != nil {
		v.Release()
	}
	if code != core.ERR {
		t.Fatalf("code = %v, want ERR", code)
	}
	e, ok := core.AsError(err)
	if !ok || e.Kind != core.ErrArityMismatch {
		t.Fatalf("err = %v, want ErrArityMismatch", err)
	}
}

func TestHostCallInvokesUserProc(t *testing.T) {
	in, _ := newTestInterp(t)
	evalOK(t, in, "proc add {a b} { + $a $b }").Release()

	callee, err := in.Lookup("add")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	defer callee.Release()

	code, result, cerr := in.Call(callee, []*core.Value{core.NewInt(2), core.NewInt(3)})
	if code != core.OK || cerr != nil {
		t.Fatalf("Call: code = %v, err = %v", code, cerr)
	}
	defer result.Release()
	if got := core.ToString(result); got != "5" {
		t.Fatalf("result = %q, want %q", got, "5")
	}
}

func TestHostCallConvertsReturnToOK(t *testing.T) {
	in, _ := newTestInterp(t)
	evalOK(t, in, "proc quick {} { return early; puts never }").Release()

	callee, err := in.Lookup("quick")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	defer callee.Release()

	code, result, cerr := in.Call(callee, nil)
	if code != core.OK || cerr != nil {
		t.Fatalf("Call: code = %v, err = %v", code, cerr)
	}
	defer result.Release()
	if got := core.ToString(result); got != "early" {
		t.Fatalf("result = %q, want %q", got, "early")
	}
}

func TestHostCallRejectsSpecialForms(t *testing.T) {
	in, _ := newTestInterp(t)
	callee, err := in.Lookup("if")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	defer callee.Release()

	code, v, cerr := in.Call(callee, nil)
	if v != nil {
		v.Release()
	}
	if code != core.ERR || cerr == nil {
		t.Fatalf("Call on a special form: code = %v, err = %v, want ERR", code, cerr)
	}
}

func TestRegisteredNativeProcIsCallableFromScripts(t *testing.T) {
	in, out := newTestInterp(t)
	in.Register("answer", func(i *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		for _, a := range argv {
			a.Release()
		}
		return core.OK, core.NewInt(42), nil
	})
	evalOK(t, in, "puts [answer]").Release()
	if out.String() != "42\n" {
		t.Fatalf("output = %q, want %q", out.String(), "42\n")
	}
}

func TestSingleWordNonCallableValueYieldsItself(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "let x 5; puts [x]").Release()
	if out.String() != "5\n" {
		t.Fatalf("output = %q, want %q", out.String(), "5\n")
	}
}

func TestMultiWordNonCallableIsError(t *testing.T) {
	in, _ := newTestInterp(t)
	code, v, err := in.EvalSource("<test>", []byte("let x 5; x 1 2"))
	if v != nil {
		v.Release()
	}
	if code != core.ERR || err == nil {
		t.Fatalf("code = %v, err = %v, want ERR", code, err)
	}
}
