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

package builtin_test

import (
	"testing"

	"github.com/bholten/lcl/core"
)

func TestNamespaceEvalBindingIsNotVisibleAsBareName(t *testing.T) {
	in, _ := newTestInterp(t)
	evalOK(t, in, "namespace eval a::b { let x 42 }").Release()
	err := evalErr(t, in, "puts $x")
	e, ok := core.AsError(err)
	if !ok || e.Kind != core.ErrUnbound {
		t.Fatalf("err = %v, want ErrUnbound", err)
	}
}

func TestNamespaceEvalReentry(t *testing.T) {
	in, out := newTestInterp(t)
	src := `namespace eval a { let x 1 }
namespace eval a { let y 2 }
puts [+ $a::x $a::y]`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "3\n")
}

func TestNamespaceProcsSeeTheirNamespace(t *testing.T) {
	in, out := newTestInterp(t)
	src := `namespace eval math {
	let factor 3
	proc scale {n} { * $n $factor }
}
puts [math::scale 5]`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "15\n")
}

func TestNamespaceBareCreationShortcut(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "namespace Empty; puts $Empty").Release()
	wantOutput(t, out, "Empty\n")
}

func TestNamespaceEvalOverNonNamespaceIsError(t *testing.T) {
	in, _ := newTestInterp(t)
	err := evalErr(t, in, "let a 1; namespace eval a { let x 2 }")
	e, ok := core.AsError(err)
	if !ok || e.Kind != core.ErrTypeMismatch {
		t.Fatalf("err = %v, want ErrTypeMismatch", err)
	}
}

func TestNSDefBindsIntoNamespaceValue(t *testing.T) {
	in, out := newTestInterp(t)
	src := `namespace Config
ns::def $Config timeout 30
puts $Config::timeout`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "30\n")
}

func TestNSDefAcceptsAPathString(t *testing.T) {
	in, out := newTestInterp(t)
	src := `namespace eval outer::inner {}
ns::def outer::inner flag on
puts $outer::inner::flag`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "on\n")
}

func TestNSDefOnNonNamespaceIsError(t *testing.T) {
	in, _ := newTestInterp(t)
	err := evalErr(t, in, "let x 1; ns::def x name v")
	e, ok := core.AsError(err)
	if !ok || e.Kind != core.ErrTypeMismatch {
		t.Fatalf("err = %v, want ErrTypeMismatch", err)
	}
}
