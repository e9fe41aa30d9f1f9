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

package core

import (
	"strconv"
	"strings"

	om "github.com/wk8/go-ordered-map/v2"

	"github.com/bholten/lcl/syntax"
)

// Kind tags the variant a Value currently holds.
type Kind int

// Value variants, per spec §3.1.
const (
	KString Kind = iota
	KInt
	KFloat
	KList
	KDict
	KCell
	KUserProc
	KNativeProc
	KNamespace
	KOpaque
)

func (k Kind) String() string {
	switch k {
	case KString:
		return "string"
	case KInt:
		return "int"
	case KFloat:
		return "float"
	case KList:
		return "list"
	case KDict:
		return "dict"
	case KCell:
		return "cell"
	case KUserProc:
		return "proc"
	case KNativeProc:
		return "nativeproc"
	case KNamespace:
		return "namespace"
	case KOpaque:
		return "opaque"
	}
	return "unknown"
}

// ProcKind distinguishes ordinary, pre-evaluated procedures from special
// forms whose arguments are passed unevaluated (spec §4.4.3 step 5).
type ProcKind int

const (
	// ProcNormal callables receive a fully evaluated argument vector.
	ProcNormal ProcKind = iota
	// ProcSpecialForm callables receive raw, unevaluated Words and decide
	// for themselves what (if anything) to evaluate.
	ProcSpecialForm
)

// NativeFunc is a built-in procedure implementation. argv is the evaluated
// argument vector (owned references the callee must release). The
// returned Value, if any, carries one reference owned by the caller.
type NativeFunc func(interp *Interp, argv []*Value) (Code, *Value, error)

// SpecialFormFunc is a built-in special form implementation. words is the
// raw, unevaluated argument Words (everything after the command name); the
// form decides what to evaluate, in what order, via interp's evaluation
// entry points.
type SpecialFormFunc func(interp *Interp, words []syntax.Word) (Code, *Value, error)

// NativeProc wraps a host function pointer with a display name and a kind
// tag that routes dispatch (spec §4.4.3).
type NativeProc struct {
	Name string
	Kind ProcKind
	Fn   NativeFunc
	SF   SpecialFormFunc
}

// Opaque wraps a raw host pointer tagged with a type string, released
// exactly once via Finalizer when its owning Value's refcount drops to
// zero (spec §3.1 invariant 5).
type Opaque struct {
	Ptr      interface{}
	Tag      string
	Finalize func(interface{})
	freed    bool
}

// dictMap is the ordered-map instantiation backing Dict values (§3.6): it
// preserves insertion order for iteration, matching the reference C
// implementation's chained hash-bucket behavior without hand-rolling one.
type dictMap = om.OrderedMap[string, *Value]

// Value is a tagged, reference counted union over LCL's runtime values.
// Every constructor returns a Value with refs == 1; ownership then flows
// explicitly through Acquire/Release as values move through the evaluator,
// environment, and collections.
type Value struct {
	kind Kind
	refs int

	// str holds the String payload for KString, and otherwise the cached
	// stringification of the value (see strCached).
	str       string
	strCached bool

	i Cell
	f float64

	list []*Value
	dict *dictMap

	cell *Value // KCell: the single inner slot, owns one reference

	proc   *UserProc
	native *NativeProc
	ns     *Namespace
	opaque *Opaque
}

// Cell is LCL's integer payload type: a signed integer of at least 64 bits.
type Cell = int64

// Kind returns the variant currently held by v.
func (v *Value) Kind() Kind { return v.kind }

// Refs returns the current reference count. Exposed for tests that verify
// P1 (refcount balance); embedders should not normally need it.
func (v *Value) Refs() int { return v.refs }

// IsCallable reports whether v can be invoked by the dispatcher (spec
// §4.4.3 step 4): either a UserProc or a NativeProc of either kind.
func (v *Value) IsCallable() bool {
	return v != nil && (v.kind == KUserProc || v.kind == KNativeProc)
}

// invalidateCache clears the cached string form. Every structural mutation
// of a value must call this (spec §3.1 invariant 4).
func (v *Value) invalidateCache() {
	v.strCached = false
	v.str = ""
}

// --- constructors; each returns a fresh Value with refs == 1. ---

// NewString returns a new String value.
func NewString(s string) *Value {
	return &Value{kind: KString, refs: 1, str: s, strCached: true}
}

// NewInt returns a new Int value.
func NewInt(n Cell) *Value {
	return &Value{kind: KInt, refs: 1, i: n}
}

// NewFloat returns a new Float value.
func NewFloat(f float64) *Value {
	return &Value{kind: KFloat, refs: 1, f: f}
}

// NewList returns a new List value taking ownership of elems (the caller
// must already hold a reference on each element; those references are
// transferred to the returned list).
func NewList(elems []*Value) *Value {
	l := make([]*Value, len(elems))
	copy(l, elems)
	return &Value{kind: KList, refs: 1, list: l}
}

// NewDict returns a new, empty Dict value.
func NewDict() *Value {
	return &Value{kind: KDict, refs: 1, dict: om.New[string, *Value]()}
}

// NewCell wraps initial in a fresh Cell value. Ownership of the initial
// reference transfers to the cell.
func NewCell(initial *Value) *Value {
	return &Value{kind: KCell, refs: 1, cell: initial}
}

// NewUserProc wraps a parsed procedure body and its captured closure.
func NewUserProc(p *UserProc) *Value {
	return &Value{kind: KUserProc, refs: 1, proc: p}
}

// NewNativeProc wraps a host function as a callable Value.
func NewNativeProc(name string, fn NativeFunc) *Value {
	return &Value{kind: KNativeProc, refs: 1, native: &NativeProc{Name: name, Kind: ProcNormal, Fn: fn}}
}

// NewNativeSpecialForm wraps a host special form as a callable Value.
func NewNativeSpecialForm(name string, fn SpecialFormFunc) *Value {
	return &Value{kind: KNativeProc, refs: 1, native: &NativeProc{Name: name, Kind: ProcSpecialForm, SF: fn}}
}

// NewNamespace returns a new, empty Namespace value qualified as qname.
func NewNamespace(qname string) *Value {
	return &Value{kind: KNamespace, refs: 1, ns: newNamespace(qname)}
}

// NewOpaque wraps a host pointer tagged with typeTag. finalize, if non-nil,
// runs exactly once when the returned value's refcount reaches zero.
func NewOpaque(ptr interface{}, typeTag string, finalize func(interface{})) *Value {
	return &Value{kind: KOpaque, refs: 1, opaque: &Opaque{Ptr: ptr, Tag: typeTag, Finalize: finalize}}
}

// Acquire increments v's reference count and returns v, so that acquiring
// can be chained into an assignment: x = v.Acquire().
func (v *Value) Acquire() *Value {
	if v == nil {
		return nil
	}
	v.refs++
	return v
}

// Release decrements v's reference count. At zero, it recursively releases
// owned children, runs the Opaque finalizer (exactly once), and drops the
// cached string form. Releasing a nil Value is a no-op (spec §4.1).
func (v *Value) Release() {
	if v == nil {
		return
	}
	v.refs--
	if v.refs > 0 {
		return
	}
	if v.refs < 0 {
		// Over-release is a programming error in the core; surface it loudly
		// in development rather than silently corrupt state.
		panic("lcl: value released more times than acquired")
	}
	switch v.kind {
	case KList:
		for _, e := range v.list {
			e.Release()
		}
		v.list = nil
	case KDict:
		if v.dict != nil {
			for pair := v.dict.Oldest(); pair != nil; pair = pair.Next() {
				pair.Value.Release()
			}
		}
		v.dict = nil
	case KCell:
		v.cell.Release()
		v.cell = nil
	case KOpaque:
		if v.opaque != nil && !v.opaque.freed {
			v.opaque.freed = true
			if v.opaque.Finalize != nil {
				v.opaque.Finalize(v.opaque.Ptr)
			}
		}
	case KUserProc:
		if v.proc != nil {
			for _, uv := range v.proc.Upvalues {
				uv.Value.Release()
			}
			v.proc.Namespace.Release()
		}
	}
	v.str = ""
	v.strCached = false
}

// ToString returns the cached string form if present, else computes and
// caches it (spec §4.1 "String reification").
func ToString(v *Value) string {
	if v == nil {
		return ""
	}
	if v.strCached {
		return v.str
	}
	s := computeString(v)
	v.str = s
	v.strCached = true
	return s
}

func computeString(v *Value) string {
	switch v.kind {
	case KString:
		return v.str
	case KInt:
		return strconv.FormatInt(v.i, 10)
	case KFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = bracedForm(ToString(e))
		}
		return strings.Join(parts, " ")
	case KDict:
		var parts []string
		if v.dict != nil {
			for pair := v.dict.Oldest(); pair != nil; pair = pair.Next() {
				parts = append(parts, bracedForm(pair.Key), bracedForm(ToString(pair.Value)))
			}
		}
		return strings.Join(parts, " ")
	case KNamespace:
		return v.ns.QName
	case KUserProc, KNativeProc, KCell:
		return "<" + v.kind.String() + ">"
	case KOpaque:
		return "<opaque:" + v.opaque.Tag + ">"
	}
	return ""
}

// needsBraces reports whether s must be brace-wrapped when embedded in a
// list/dict string form: empty, or containing whitespace or any reserved
// sigil (spec §4.1).
func needsBraces(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '[', ']', '{', '}', '"', '$', '\\':
			return true
		}
	}
	return false
}

func bracedForm(s string) string {
	if needsBraces(s) {
		return "{" + s + "}"
	}
	return s
}

// ToInt coerces v to an integer: numeric variants convert directly; a
// String succeeds only if it parses completely as an integer or float
// (spec §4.1 "Coercions never mutate").
func ToInt(v *Value) (Cell, error) {
	switch v.kind {
	case KInt:
		return v.i, nil
	case KFloat:
		return Cell(v.f), nil
	case KString:
		if n, err := strconv.ParseInt(strings.TrimSpace(v.str), 0, 64); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64); err == nil {
			return Cell(f), nil
		}
	}
	return 0, newError(ErrTypeMismatch, "expected a number, got "+ToString(v))
}

// ToFloat coerces v to a float; see ToInt for the string-parsing rule.
func ToFloat(v *Value) (float64, error) {
	switch v.kind {
	case KInt:
		return float64(v.i), nil
	case KFloat:
		return v.f, nil
	case KString:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64); err == nil {
			return f, nil
		}
	}
	return 0, newError(ErrTypeMismatch, "expected a number, got "+ToString(v))
}

func isNumeric(v *Value) bool {
	if v.kind == KInt || v.kind == KFloat {
		return true
	}
	if v.kind == KString {
		_, err := ToFloat(v)
		return err == nil
	}
	return false
}

func derefCell(v *Value) *Value {
	if v != nil && v.kind == KCell {
		return v.cell
	}
	return v
}

const maxEqualDepth = 1000

// Equal implements LCL's deep, cycle-safe "==" (spec §4.1): numeric
// promotion across Int/Float/numeric-String, byte equality for strings,
// element/key-wise deep equality for lists/dicts, and identity for
// procs/namespaces/cells (after dereferencing one Cell layer on each side).
func Equal(a, b *Value) (bool, error) {
	return equalDepth(a, b, 0)
}

func equalDepth(a, b *Value, depth int) (bool, error) {
	if depth > maxEqualDepth {
		return false, newError(ErrDepthExceeded, "== recursion exceeded maximum depth")
	}
	a, b = derefCell(a), derefCell(b)
	if a == b {
		return true, nil
	}
	if a == nil || b == nil {
		return false, nil
	}
	if isNumeric(a) && isNumeric(b) {
		fa, _ := ToFloat(a)
		fb, _ := ToFloat(b)
		return fa == fb, nil
	}
	if a.kind != b.kind {
		return false, nil
	}
	switch a.kind {
	case KString:
		return a.str == b.str, nil
	case KList:
		if len(a.list) != len(b.list) {
			return false, nil
		}
		for i := range a.list {
			eq, err := equalDepth(a.list[i], b.list[i], depth+1)
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	case KDict:
		if a.dict.Len() != b.dict.Len() {
			return false, nil
		}
		for pair := a.dict.Oldest(); pair != nil; pair = pair.Next() {
			bv, ok := b.dict.Get(pair.Key)
			if !ok {
				return false, nil
			}
			eq, err := equalDepth(pair.Value, bv, depth+1)
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	case KUserProc, KNativeProc, KNamespace, KOpaque:
		return a == b, nil
	}
	return false, nil
}

// Same reports pointer identity without the numeric/cell coercions Equal
// applies ("same?" in spec §6).
func Same(a, b *Value) bool { return a == b }
