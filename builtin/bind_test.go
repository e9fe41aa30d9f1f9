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

func TestLetReturnsTheBoundValue(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "puts [let x 7]").Release()
	wantOutput(t, out, "7\n")
}

func TestLetPreservesListness(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "let l [list 1 2 3]; puts [llength $l]").Release()
	wantOutput(t, out, "3\n")
}

func TestSetBangOnLetBindingIsError(t *testing.T) {
	in, _ := newTestInterp(t)
	err := evalErr(t, in, "let x 1; set! x 2")
	e, ok := core.AsError(err)
	if !ok || e.Kind != core.ErrTypeMismatch {
		t.Fatalf("err = %v, want ErrTypeMismatch", err)
	}
}

func TestSetBangOnUnboundNameIsError(t *testing.T) {
	in, _ := newTestInterp(t)
	err := evalErr(t, in, "set! nosuch 1")
	e, ok := core.AsError(err)
	if !ok || e.Kind != core.ErrUnbound {
		t.Fatalf("err = %v, want ErrUnbound", err)
	}
}

func TestSetBangReturnsTheNewValue(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "var x 1; puts [set! x 9]").Release()
	wantOutput(t, out, "9\n")
}

func TestRefWrapsAndGetvarUnwraps(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "let c [ref 5]; puts [cell? [ref 5]]; puts [getvar c]").Release()
	wantOutput(t, out, "1\n5\n")
}

func TestGetvarReadsThroughCell(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "var n 3; puts [getvar n]; let m 4; puts [getvar m]").Release()
	wantOutput(t, out, "3\n4\n")
}

func TestCellAliasingObservesSetBang(t *testing.T) {
	in, out := newTestInterp(t)
	// Two bindings to the same cell observe each other's updates.
	src := `var a 1
let b [binding-cell a]
set! a 42
puts [get a]
puts [getvar b]`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "42\n42\n")
}

func TestSameBindingDistinguishesCells(t *testing.T) {
	in, out := newTestInterp(t)
	src := `var a 1
var b 1
puts [same-binding? a a]
puts [same-binding? a b]`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "1\n0\n")
}

func TestBindingCellOnLetBindingIsError(t *testing.T) {
	in, _ := newTestInterp(t)
	evalErr(t, in, "let x 1; binding-cell x")
}

func TestVarReboundInInnerScopeStaysVisible(t *testing.T) {
	in, out := newTestInterp(t)
	// A proc's set! through a captured cell is visible to the definer.
	src := `var count 0
proc bump {} { set! count [+ $count 1] }
bump
bump
puts [get count]`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "2\n")
}
