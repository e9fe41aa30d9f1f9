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
)

func TestListBasics(t *testing.T) {
	in, out := newTestInterp(t)
	v := evalOK(t, in, "puts [list 1 2 3]")
	v.Release()
	if out.String() != "1 2 3\n" {
		t.Fatalf("output = %q, want %q", out.String(), "1 2 3\n")
	}
}

func TestLindexNested(t *testing.T) {
	in, out := newTestInterp(t)
	v := evalOK(t, in, "let m [list [list 1 2] [list 3 4]]; puts [lindex $m 1 0]")
	v.Release()
	if out.String() != "3\n" {
		t.Fatalf("output = %q, want %q", out.String(), "3\n")
	}
}

func TestLindexOutOfRangeYieldsEmptyString(t *testing.T) {
	in, out := newTestInterp(t)
	v := evalOK(t, in, `let l [list 1 2]; puts "<[lindex $l 9]>"`)
	v.Release()
	if out.String() != "<>\n" {
		t.Fatalf("output = %q, want %q", out.String(), "<>\n")
	}
}

func TestLindexNonListFirstIndexZeroPassesThrough(t *testing.T) {
	in, out := newTestInterp(t)
	v := evalOK(t, in, `puts [lindex hello 0]`)
	v.Release()
	if out.String() != "hello\n" {
		t.Fatalf("output = %q, want %q", out.String(), "hello\n")
	}
}

func TestLlength(t *testing.T) {
	in, out := newTestInterp(t)
	v := evalOK(t, in, "puts [llength [list a b c d]]")
	v.Release()
	if out.String() != "4\n" {
		t.Fatalf("output = %q, want %q", out.String(), "4\n")
	}
}

func TestLrange(t *testing.T) {
	in, out := newTestInterp(t)
	v := evalOK(t, in, "puts [lrange [list a b c d e] 1 3]")
	v.Release()
	if out.String() != "b c d\n" {
		t.Fatalf("output = %q, want %q", out.String(), "b c d\n")
	}
}

func TestLrangeClampsNegativeAndOverlongBounds(t *testing.T) {
	in, out := newTestInterp(t)
	v := evalOK(t, in, "puts [lrange [list a b c] -5 50]")
	v.Release()
	if out.String() != "a b c\n" {
		t.Fatalf("output = %q, want %q", out.String(), "a b c\n")
	}
}

func TestConcatFlattensOneLevel(t *testing.T) {
	in, out := newTestInterp(t)
	v := evalOK(t, in, "puts [concat [list 1 2] [list 3 4] 5]")
	v.Release()
	if out.String() != "1 2 3 4 5\n" {
		t.Fatalf("output = %q, want %q", out.String(), "1 2 3 4 5\n")
	}
}

func TestJoinWithCustomSeparator(t *testing.T) {
	in, out := newTestInterp(t)
	v := evalOK(t, in, `puts [join [list a b c] ", "]`)
	v.Release()
	if out.String() != "a, b, c\n" {
		t.Fatalf("output = %q, want %q", out.String(), "a, b, c\n")
	}
}

func TestSplitOnCharactersKeepsEmptyFields(t *testing.T) {
	in, out := newTestInterp(t)
	v := evalOK(t, in, `puts [llength [split "a,,b" ","]]`)
	v.Release()
	if out.String() != "3\n" {
		t.Fatalf("output = %q, want %q", out.String(), "3\n")
	}
}

func TestSplitWithNoSeparatorSplitsIntoRunes(t *testing.T) {
	in, out := newTestInterp(t)
	v := evalOK(t, in, `puts [llength [split "abc"]]`)
	v.Release()
	if out.String() != "3\n" {
		t.Fatalf("output = %q, want %q", out.String(), "3\n")
	}
}

func TestLappendMutatesBindingNotAlias(t *testing.T) {
	in, out := newTestInterp(t)
	v := evalOK(t, in, "let a [list 1]; let b $a; lappend a 2 3; puts [llength $a]; puts [llength $b]")
	v.Release()
	if out.String() != "3\n1\n" {
		t.Fatalf("output = %q, want %q", out.String(), "3\n1\n")
	}
}

func TestLappendOnNonListWraps(t *testing.T) {
	in, out := newTestInterp(t)
	v := evalOK(t, in, "var s hello; lappend s world; puts [llength $s]")
	v.Release()
	if out.String() != "2\n" {
		t.Fatalf("output = %q, want %q", out.String(), "2\n")
	}
}

func TestLsetReplacesElementInPlace(t *testing.T) {
	in, out := newTestInterp(t)
	v := evalOK(t, in, "var l [list 1 2 3]; lset l 1 99; puts $l")
	v.Release()
	if out.String() != "1 99 3\n" {
		t.Fatalf("output = %q, want %q", out.String(), "1 99 3\n")
	}
}

func TestLsetOutOfRangeIsError(t *testing.T) {
	in, _ := newTestInterp(t)
	code, v, err := in.EvalSource("<test>", []byte("var l [list 1 2]; lset l 9 0"))
	if v != nil {
		v.Release()
	}
	if code == 0 {
		t.Fatalf("expected a non-OK code")
	}
	if err == nil {
		t.Fatalf("expected an error")
	}
}

func TestListNamespacePushPopReverse(t *testing.T) {
	in, out := newTestInterp(t)
	v := evalOK(t, in, "puts [List::reverse [List::push [list 1 2] 3]]; puts [List::pop [list 1 2 3]]")
	v.Release()
	if out.String() != "3 2 1\n1 2\n" {
		t.Fatalf("output = %q, want %q", out.String(), "3 2 1\n1 2\n")
	}
}

func TestListNamespaceSliceSupportsNegativeIndices(t *testing.T) {
	in, out := newTestInterp(t)
	v := evalOK(t, in, "puts [List::slice [list a b c d] -2]")
	v.Release()
	if out.String() != "c d\n" {
		t.Fatalf("output = %q, want %q", out.String(), "c d\n")
	}
}
