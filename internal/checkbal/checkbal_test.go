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

package checkbal_test

import (
	"testing"

	"github.com/bholten/lcl/internal/checkbal"
)

func TestMatchBraceSimple(t *testing.T) {
	src := []byte("{abc}")
	end, ok := checkbal.MatchBrace(src, 0)
	if !ok || end != len(src) {
		t.Fatalf("MatchBrace(%q, 0) = (%d, %v), want (%d, true)", src, end, ok, len(src))
	}
}

func TestMatchBraceNested(t *testing.T) {
	src := []byte("{a {b {c} d} e}")
	end, ok := checkbal.MatchBrace(src, 0)
	if !ok || end != len(src) {
		t.Fatalf("MatchBrace(%q, 0) = (%d, %v), want (%d, true)", src, end, ok, len(src))
	}
}

func TestMatchBraceUnterminated(t *testing.T) {
	src := []byte("{a {b}")
	_, ok := checkbal.MatchBrace(src, 0)
	if ok {
		t.Fatalf("MatchBrace(%q, 0): expected unbalanced", src)
	}
}

func TestMatchBracketSkipsNestedBraces(t *testing.T) {
	src := []byte("[f {a ] not a closer} g]")
	end, ok := checkbal.MatchBracket(src, 0)
	if !ok || end != len(src) {
		t.Fatalf("MatchBracket(%q, 0) = (%d, %v), want (%d, true)", src, end, ok, len(src))
	}
}

func TestMatchBracketSkipsQuotedSections(t *testing.T) {
	src := []byte(`[f "a ] not a closer" g]`)
	end, ok := checkbal.MatchBracket(src, 0)
	if !ok || end != len(src) {
		t.Fatalf("MatchBracket(%q, 0) = (%d, %v), want (%d, true)", src, end, ok, len(src))
	}
}

func TestMatchBracketHonorsBackslashEscapeInQuotes(t *testing.T) {
	src := []byte(`[f "a \" still in quotes ] " g]`)
	end, ok := checkbal.MatchBracket(src, 0)
	if !ok || end != len(src) {
		t.Fatalf("MatchBracket(%q, 0) = (%d, %v), want (%d, true)", src, end, ok, len(src))
	}
}

func TestMatchBracketUnterminated(t *testing.T) {
	src := []byte("[f g")
	_, ok := checkbal.MatchBracket(src, 0)
	if ok {
		t.Fatalf("MatchBracket(%q, 0): expected unbalanced", src)
	}
}

func TestMatchBracketNested(t *testing.T) {
	src := []byte("[f [g [h]]]")
	end, ok := checkbal.MatchBracket(src, 0)
	if !ok || end != len(src) {
		t.Fatalf("MatchBracket(%q, 0) = (%d, %v), want (%d, true)", src, end, ok, len(src))
	}
}
