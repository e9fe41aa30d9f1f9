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

import "strings"

// Environment is the process-wide (per interpreter) name resolution
// context: the current Frame, the current namespace, and the global
// namespace (spec §3.4). The current namespace changes during
// "namespace eval"; the current frame changes during procedure calls and
// namespace evaluation.
type Environment struct {
	frame  *Frame
	ns     *Value // current namespace
	global *Value // global namespace, never reassigned after NewEnvironment
}

// NewEnvironment creates a fresh environment rooted at an empty global
// namespace. The root frame borrows the global namespace's map, so
// top-level let/var/proc definitions land in the global namespace —
// which is what lets a flat closure's uncaptured names (globals,
// built-ins, late-bound procs, recursive self-references) resolve at
// call time even though call frames have no parent (spec §4.3 lookup
// order, §4.5.1).
func NewEnvironment() *Environment {
	global := NewNamespace("")
	return &Environment{frame: newNamespaceFrame(nil, global), ns: global, global: global}
}

// CurrentNamespace returns the environment's current namespace value
// (not acquired; callers that retain it must Acquire).
func (e *Environment) CurrentNamespace() *Value { return e.ns }

// GlobalNamespace returns the environment's global namespace value.
func (e *Environment) GlobalNamespace() *Value { return e.global }

// Let adds or replaces a binding in the current frame's map (spec §4.3
// "let"). It takes ownership of value's reference.
func (e *Environment) Let(name string, value *Value) {
	e.frame.bindLocal(name, value)
}

// Var wraps value in a fresh Cell and binds it under name in the current
// frame, for mutable variables (spec §4.3 "var"). It takes ownership of
// value's reference (now owned by the Cell).
func (e *Environment) Var(name string, value *Value) {
	e.frame.bindLocal(name, NewCell(value))
}

// Set walks the frame chain for an existing binding whose value is a
// Cell and assigns into that cell (spec §4.3 "set!"). It takes ownership
// of value's reference. Fails if no binding is found or the binding is
// not a Cell.
func (e *Environment) Set(name string, value *Value) error {
	v, ok := e.frame.getBinding(name)
	if !ok {
		value.Release()
		return newError(ErrUnbound, "unbound name: "+name)
	}
	if v.kind != KCell {
		value.Release()
		return newError(ErrTypeMismatch, "not a mutable binding: "+name)
	}
	CellSet(v, value)
	return nil
}

// GetValue resolves name per spec §4.3 "get_value": a direct frame-chain
// lookup (which also matches a literal "::"-containing key, e.g.
// "ns::def" registered as a single name), then the current namespace,
// then the global namespace, and finally, if name contains "::", a
// left-to-right namespace walk. The result carries an acquired
// reference; failure reports ErrUnbound.
func (e *Environment) GetValue(name string) (*Value, error) {
	if v, ok := e.frame.getBinding(name); ok {
		return v.Acquire(), nil
	}
	if v, ok := NSGet(e.ns, name); ok {
		return v, nil
	}
	if e.global != e.ns {
		if v, ok := NSGet(e.global, name); ok {
			return v, nil
		}
	}
	if left, rest, ok := SplitQualified(name); ok {
		return e.resolveQualified(left, rest)
	}
	return nil, newError(ErrUnbound, "unbound name: "+name)
}

// resolveQualified looks up left in the environment, then descends
// through each remaining "::"-separated segment of rest, requiring the
// current value to be a Namespace at every step.
func (e *Environment) resolveQualified(left, rest string) (*Value, error) {
	cur, err := e.GetValue(left)
	if err != nil {
		return nil, err
	}
	for _, seg := range strings.Split(rest, "::") {
		if cur.Kind() != KNamespace {
			cur.Release()
			return nil, newError(ErrUnbound, "not a namespace: "+left)
		}
		next, ok := NSGet(cur, seg)
		cur.Release()
		if !ok {
			return nil, newError(ErrUnbound, "unbound name: "+seg)
		}
		cur = next
	}
	return cur, nil
}

// GetCellBinding returns the raw Cell value (not acquired, not
// dereferenced) bound to name in the current frame chain, for special
// forms that mutate a binding's contents in place rather than replacing
// it wholesale (lappend, lset, dict set/unset, incr/decr). Fails if no
// binding is found or the binding is not a Cell, same as Set.
func (e *Environment) GetCellBinding(name string) (*Value, error) {
	v, ok := e.frame.getBinding(name)
	if !ok {
		return nil, newError(ErrUnbound, "unbound name: "+name)
	}
	if v.kind != KCell {
		return nil, newError(ErrTypeMismatch, "not a mutable binding: "+name)
	}
	return v, nil
}

// NewNamespaceFrame creates a frame over ns whose local map is ns's own
// definitions map (so bindings made while it is current land directly in
// ns), chained to the environment's present frame as parent — the frame
// "namespace eval" pushes for the duration of its body (spec §4.3
// "frame_new_namespace").
func (e *Environment) NewNamespaceFrame(ns *Value) *Frame {
	return newNamespaceFrame(e.frame, ns)
}

// ReleaseFrame drops a reference to f, as returned by NewNamespaceFrame,
// once the caller is done with it.
func ReleaseFrame(f *Frame) {
	f.release()
}

// PushFrame swaps in a new current frame, returning the previous one so
// the caller can restore it later (used by procedure calls and
// namespace eval, spec §4.5.2 steps 5/7).
func (e *Environment) PushFrame(f *Frame) *Frame {
	prev := e.frame
	e.frame = f
	return prev
}

// RestoreFrame restores a previously saved current frame.
func (e *Environment) RestoreFrame(f *Frame) { e.frame = f }

// PushNamespace swaps in a new current namespace, returning the previous
// one (acquired reference not taken; the environment does not own its
// current-namespace pointer).
func (e *Environment) PushNamespace(ns *Value) *Value {
	prev := e.ns
	e.ns = ns
	return prev
}

// RestoreNamespace restores a previously saved current namespace.
func (e *Environment) RestoreNamespace(ns *Value) { e.ns = ns }
