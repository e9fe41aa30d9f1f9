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

func TestDictCreateAndGet(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "let d [dict create a 1 b 2]; puts [dict get $d b]").Release()
	wantOutput(t, out, "2\n")
}

func TestDictCreateOddArgsIsError(t *testing.T) {
	in, _ := newTestInterp(t)
	evalErr(t, in, "dict create a 1 b")
}

func TestDictGetMissingKeyIsError(t *testing.T) {
	in, _ := newTestInterp(t)
	err := evalErr(t, in, "let d [dict create a 1]; dict get $d z")
	e, ok := core.AsError(err)
	if !ok || e.Kind != core.ErrUnbound {
		t.Fatalf("err = %v, want ErrUnbound", err)
	}
}

func TestDictGetNestedPath(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "let d [dict create inner [dict create x 42]]; puts [dict get $d inner x]").Release()
	wantOutput(t, out, "42\n")
}

func TestDictSizeKeysValues(t *testing.T) {
	in, out := newTestInterp(t)
	src := `let d [dict create a 1 b 2 c 3]
puts [dict size $d]
puts [dict keys $d]
puts [dict values $d]`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "3\na b c\n1 2 3\n")
}

func TestDictExists(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "let d [dict create a 1]; puts [dict exists $d a]; puts [dict exists $d z]").Release()
	wantOutput(t, out, "1\n0\n")
}

func TestDictSetWritesThroughVariable(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "var d [dict create a 1]; dict set d b 2; puts [dict get $d b]").Release()
	wantOutput(t, out, "2\n")
}

func TestDictSetAutoVivifiesNestedPath(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "var d [dict create]; dict set d x y 9; puts [dict get $d x y]").Release()
	wantOutput(t, out, "9\n")
}

func TestDictSetOnLetBindingIsError(t *testing.T) {
	in, _ := newTestInterp(t)
	err := evalErr(t, in, "let d [dict create]; dict set d a 1")
	e, ok := core.AsError(err)
	if !ok || e.Kind != core.ErrTypeMismatch {
		t.Fatalf("err = %v, want ErrTypeMismatch", err)
	}
}

func TestDictUnsetRemovesKey(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "var d [dict create a 1 b 2]; dict unset d a; puts [dict keys $d]").Release()
	wantOutput(t, out, "b\n")
}

func TestDictUnsetMissingPathIsNoop(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "var d [dict create a 1]; dict unset d x y; puts [dict size $d]").Release()
	wantOutput(t, out, "1\n")
}

func TestDictUnknownSubcommandIsError(t *testing.T) {
	in, _ := newTestInterp(t)
	evalErr(t, in, "dict frobnicate")
}

func TestDictAliasesDoNotObserveDictSet(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "var d [dict create a 1]; let alias $d; dict set d b 2; puts [dict size $alias]").Release()
	wantOutput(t, out, "1\n")
}

func TestDictNamespaceMirrors(t *testing.T) {
	in, out := newTestInterp(t)
	src := `let d [Dict::new a 1 b 2]
puts [Dict::keys $d]
puts [Dict::values $d]
puts [Dict::items $d]`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "a b\n1 2\n{a 1} {b 2}\n")
}

func TestDictMergeRightWins(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "let m [Dict::merge [Dict::new a 1 b 2] [Dict::new b 9 c 3]]; puts [dict get $m b]; puts [dict size $m]").Release()
	wantOutput(t, out, "9\n3\n")
}
