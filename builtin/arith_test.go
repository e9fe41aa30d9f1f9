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

func TestArithmeticOperators(t *testing.T) {
	in, out := newTestInterp(t)
	src := `puts [+ 1 2 3]
puts [- 10 3 2]
puts [* 2 3 4]
puts [/ 7 2]
puts [% 7 2]`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "6\n5\n24\n3.5\n1\n")
}

func TestDivisionByZeroIsArithmeticError(t *testing.T) {
	in, _ := newTestInterp(t)
	err := evalErr(t, in, "/ 1 0")
	e, ok := core.AsError(err)
	if !ok || e.Kind != core.ErrArithmetic {
		t.Fatalf("err = %v, want ErrArithmetic", err)
	}
}

func TestModuloByZeroIsArithmeticError(t *testing.T) {
	in, _ := newTestInterp(t)
	err := evalErr(t, in, "% 1 0")
	e, ok := core.AsError(err)
	if !ok || e.Kind != core.ErrArithmetic {
		t.Fatalf("err = %v, want ErrArithmetic", err)
	}
}

func TestArithmeticOnNonNumberIsTypeError(t *testing.T) {
	in, _ := newTestInterp(t)
	err := evalErr(t, in, "+ 1 banana")
	e, ok := core.AsError(err)
	if !ok || e.Kind != core.ErrTypeMismatch {
		t.Fatalf("err = %v, want ErrTypeMismatch", err)
	}
}

func TestOrderingComparisons(t *testing.T) {
	in, out := newTestInterp(t)
	src := `puts [< 1 2]
puts [<= 2 2]
puts [> 1 2]
puts [>= 3 2]`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "1\n1\n0\n1\n")
}

func TestEqualityPromotesAcrossNumericForms(t *testing.T) {
	in, out := newTestInterp(t)
	src := `puts [== 1 1.0]
puts [== 1 "1"]
puts [!= 1 2]
puts [== abc abc]
puts [== abc abd]`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "1\n1\n1\n1\n0\n")
}

func TestLogicOperators(t *testing.T) {
	in, out := newTestInterp(t)
	src := `puts [and 1 1]
puts [and 1 0]
puts [or 0 1]
puts [or 0 0]
puts [not 0]
puts [not hello]`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "1\n0\n1\n0\n1\n0\n")
}

func TestSameIsIdentityNotEquality(t *testing.T) {
	in, out := newTestInterp(t)
	src := `let a [list 1 2]
let b [list 1 2]
puts [same? $a $a]
puts [same? $a $b]
puts [== $a $b]
puts [not-same? $a $b]`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "1\n0\n1\n1\n")
}
