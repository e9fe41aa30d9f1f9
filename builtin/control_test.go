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
	"os"
	"path/filepath"
	"testing"

	"github.com/bholten/lcl/core"
)

func TestIfElseifElseChain(t *testing.T) {
	in, out := newTestInterp(t)
	src := `
proc classify {n} {
	if { < $n 0 } { return neg } elseif { == $n 0 } { return zero } else { return pos }
}
puts [classify -3]
puts [classify 0]
puts [classify 9]`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "neg\nzero\npos\n")
}

func TestIfAllFalseNoElseYieldsEmpty(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, `puts "<[if { == 1 2 } { puts nope }]>"`).Release()
	wantOutput(t, out, "<>\n")
}

func TestIfBracedConditionIsEvaluatedAsScript(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, `var x 0; if { == [get x] 1 } { puts then } else { puts else }`).Release()
	wantOutput(t, out, "else\n")
}

func TestIfUnexpectedTokenIsError(t *testing.T) {
	in, _ := newTestInterp(t)
	evalErr(t, in, "if 0 { puts a } oops { puts b }")
}

func TestWhileContinueSkipsRestOfBody(t *testing.T) {
	in, out := newTestInterp(t)
	src := `var i 0
var total 0
while { < [get i] 5 } {
	set! i [+ [get i] 1]
	if { == [get i] 3 } { continue }
	set! total [+ [get total] [get i]]
}
puts [get total]`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "12\n")
}

func TestForLoopRunsNextOnContinue(t *testing.T) {
	in, out := newTestInterp(t)
	src := `for { var i 0 } { < [get i] 5 } { set! i [+ [get i] 1] } {
	if { == [get i] 2 } { continue }
	puts [get i]
}`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "0\n1\n3\n4\n")
}

func TestForeachIteratesListElements(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "foreach x [list a b c] { puts $x }").Release()
	wantOutput(t, out, "a\nb\nc\n")
}

func TestForeachSplitsNonListOnWhitespace(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, `foreach w "one two three" { puts $w }`).Release()
	wantOutput(t, out, "one\ntwo\nthree\n")
}

func TestForeachBreakStopsIteration(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "foreach x [list 1 2 3 4] { if { == $x 3 } { break }; puts $x }").Release()
	wantOutput(t, out, "1\n2\n")
}

func TestReturnEscapesForeach(t *testing.T) {
	in, out := newTestInterp(t)
	src := `proc find {needle haystack} {
	foreach x $haystack { if { == $x $needle } { return found } }
	return missing
}
puts [find 2 [list 1 2 3]]
puts [find 9 [list 1 2 3]]`
	evalOK(t, in, src).Release()
	wantOutput(t, out, "found\nmissing\n")
}

func TestBreakOutsideLoopPropagates(t *testing.T) {
	in, _ := newTestInterp(t)
	code, v, _ := in.EvalSource("<test>", []byte("break"))
	if v != nil {
		v.Release()
	}
	if code != core.BREAK {
		t.Fatalf("code = %v, want BREAK", code)
	}
}

func TestEvalConcatenatesItsArguments(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "eval puts hello").Release()
	wantOutput(t, out, "hello\n")
}

func TestEvalBracedScript(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "eval { let x 5; puts $x }").Release()
	wantOutput(t, out, "5\n")
}

func TestSubstExpandsVarsCommandsAndEscapes(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, `let name world; puts [subst {hi $name [+ 1 2]\n}]`).Release()
	wantOutput(t, out, "hi world 3\n\n")
}

func TestSubstBraceFormVariable(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, `let x 7; puts [subst {<${x}>}]`).Release()
	wantOutput(t, out, "<7>\n")
}

func TestSubstUnterminatedBracketIsError(t *testing.T) {
	in, _ := newTestInterp(t)
	err := evalErr(t, in, `subst {[+ 1 2}`)
	e, ok := core.AsError(err)
	if !ok || e.Kind != core.ErrUnterminated {
		t.Fatalf("err = %v, want ErrUnterminated", err)
	}
}

func TestLoadRunsFileInCurrentScope(t *testing.T) {
	in, out := newTestInterp(t)
	path := filepath.Join(t.TempDir(), "lib.lcl")
	if err := os.WriteFile(path, []byte("proc twice {n} { + $n $n }\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	evalOK(t, in, "load "+path+"; puts [twice 21]").Release()
	wantOutput(t, out, "42\n")
}

func TestLoadMissingFileIsError(t *testing.T) {
	in, _ := newTestInterp(t)
	evalErr(t, in, "load /no/such/file.lcl")
}

func TestIncrDecrStepCellBinding(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "var n 10; incr n; incr n 5; decr n 2; puts [get n]").Release()
	wantOutput(t, out, "14\n")
}

func TestIncrOnLetBindingIsError(t *testing.T) {
	in, _ := newTestInterp(t)
	err := evalErr(t, in, "let n 10; incr n")
	e, ok := core.AsError(err)
	if !ok || e.Kind != core.ErrTypeMismatch {
		t.Fatalf("err = %v, want ErrTypeMismatch", err)
	}
}

func TestErrorRaisesGenericErr(t *testing.T) {
	in, _ := newTestInterp(t)
	err := evalErr(t, in, `error "boom"`)
	e, ok := core.AsError(err)
	if !ok || e.Kind != core.ErrGeneric {
		t.Fatalf("err = %v, want ErrGeneric", err)
	}
}

func TestApplyCallsValueWithArgumentList(t *testing.T) {
	in, out := newTestInterp(t)
	evalOK(t, in, "let add [lambda {a b} { + $a $b }]; puts [apply $add 2 3]").Release()
	wantOutput(t, out, "5\n")
}

func TestApplyNonCallableIsError(t *testing.T) {
	in, _ := newTestInterp(t)
	evalErr(t, in, "apply 42 1 2")
}
