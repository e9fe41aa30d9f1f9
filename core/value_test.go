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

func TestAcquireRelease(t *testing.T) {
	v := core.NewString("hi")
	if v.Refs() != 1 {
		t.Fatalf("fresh value refs = %d, want 1", v.Refs())
	}
	v.Acquire()
	if v.Refs() != 2 {
		t.Fatalf("after Acquire refs = %d, want 2", v.Refs())
	}
	v.Release()
	if v.Refs() != 1 {
		t.Fatalf("after Release refs = %d, want 1", v.Refs())
	}
	v.Release()
}

func TestReleaseNilIsNoop(t *testing.T) {
	var v *core.Value
	v.Release()
	if v.Acquire() != nil {
		t.Fatalf("Acquire on nil should return nil")
	}
}

func TestListStringFormBracesReservedChars(t *testing.T) {
	l := core.NewList([]*core.Value{
		core.NewString("plain"),
		core.NewString("has space"),
		core.NewString(""),
	})
	got := core.ToString(l)
	want := "plain {has space} {}"
	if got != want {
		t.Fatalf("ToString(list) = %q, want %q", got, want)
	}
	l.Release()
}

func TestToIntToFloatCoercion(t *testing.T) {
	cases := []struct {
		v       *core.Value
		wantInt core.Cell
		wantOK  bool
	}{
		{core.NewInt(42), 42, true},
		{core.NewFloat(3.9), 3, true},
		{core.NewString("17"), 17, true},
		{core.NewString("17.5"), 17, true},
		{core.NewString("not a number"), 0, false},
	}
	for _, c := range cases {
		n, err := core.ToInt(c.v)
		if c.wantOK && err != nil {
			t.Errorf("ToInt(%v) unexpected error: %v", core.ToString(c.v), err)
		}
		if !c.wantOK && err == nil {
			t.Errorf("ToInt(%v) expected error, got %d", core.ToString(c.v), n)
		}
		if c.wantOK && n != c.wantInt {
			t.Errorf("ToInt(%v) = %d, want %d", core.ToString(c.v), n, c.wantInt)
		}
		c.v.Release()
	}
}

func TestEqualNumericPromotion(t *testing.T) {
	a := core.NewInt(3)
	b := core.NewFloat(3.0)
	eq, err := core.Equal(a, b)
	if err != nil {
		t.Fatalf("Equal returned error: %v", err)
	}
	if !eq {
		t.Fatalf("Equal(3, 3.0) = false, want true")
	}
	a.Release()
	b.Release()

	s := core.NewString("3")
	c := core.NewInt(3)
	eq, err = core.Equal(s, c)
	if err != nil {
		t.Fatalf("Equal returned error: %v", err)
	}
	if !eq {
		t.Fatalf("Equal(\"3\", 3) = false, want true")
	}
	s.Release()
	c.Release()
}

func TestEqualNonNumericStringNeverPromotes(t *testing.T) {
	s := core.NewString("abc")
	n := core.NewInt(0)
	eq, err := core.Equal(s, n)
	if err != nil {
		t.Fatalf("Equal returned error: %v", err)
	}
	if eq {
		t.Fatalf("Equal(\"abc\", 0) = true, want false")
	}
	s.Release()
	n.Release()
}

func TestEqualListDeep(t *testing.T) {
	a := core.NewList([]*core.Value{core.NewInt(1), core.NewInt(2)})
	b := core.NewList([]*core.Value{core.NewInt(1), core.NewInt(2)})
	eq, err := core.Equal(a, b)
	if err != nil {
		t.Fatalf("Equal returned error: %v", err)
	}
	if !eq {
		t.Fatalf("Equal(list, list) = false, want true")
	}
	a.Release()
	b.Release()
}

func TestSameIsPointerIdentity(t *testing.T) {
	a := core.NewInt(5)
	b := core.NewInt(5)
	if core.Same(a, b) {
		t.Fatalf("Same(a, b) = true for distinct values, want false")
	}
	if !core.Same(a, a) {
		t.Fatalf("Same(a, a) = false, want true")
	}
	a.Release()
	b.Release()
}

func TestStringFormIsStableAndRecomputedAfterMutation(t *testing.T) {
	l := core.NewList([]*core.Value{core.NewInt(1), core.NewInt(2)})
	first := core.ToString(l)
	if second := core.ToString(l); second != first {
		t.Fatalf("repeated ToString = %q then %q, want identical", first, second)
	}
	updated, err := core.ListSet(l, 1, core.NewInt(9))
	if err != nil {
		t.Fatalf("ListSet: %v", err)
	}
	if got := core.ToString(updated); got != "1 9" {
		t.Fatalf("ToString after mutation = %q, want %q", got, "1 9")
	}
	updated.Release()
}

func TestEvalLeavesArgumentRefcountsBalanced(t *testing.T) {
	in, _ := newTestInterp(t)
	shared := core.NewList([]*core.Value{core.NewInt(1), core.NewInt(2)})
	in.Define("data", shared.Acquire())

	v := evalOK(t, in, "llength $data; lindex $data 0; puts $data")
	v.Release()

	// One reference held here, one by the binding; evaluation must not
	// have leaked or over-released any.
	if shared.Refs() != 2 {
		t.Fatalf("Refs = %d after evaluation, want 2", shared.Refs())
	}
	shared.Release()
}
