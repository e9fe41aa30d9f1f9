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

// Frame is one lexical scope: a map from local name to Value, an optional
// parent, and a flag recording whether the map is owned outright or
// borrowed from a namespace's own mapping (spec §3.3, "namespace eval").
//
// Frames carry a reference count, but nothing in this package takes a
// second reference: a frame starts with one and is released once by the
// procedure call or namespace eval that created it. A UserProc's captured
// upvalues hold Values, not Frames.
type Frame struct {
	locals   map[string]*Value
	parent   *Frame
	borrowed bool
	refs     int
}

// newFrame creates a frame with a fresh, owned local map.
func newFrame(parent *Frame) *Frame {
	return &Frame{locals: make(map[string]*Value), parent: parent, refs: 1}
}

// newNamespaceFrame creates a frame whose local map is the namespace's own
// definitions map, so that bindings made inside it land directly in the
// namespace (spec §4.3 "frame_new_namespace").
func newNamespaceFrame(parent *Frame, ns *Value) *Frame {
	return &Frame{locals: ns.ns.defs, parent: parent, borrowed: true, refs: 1}
}

func (f *Frame) acquire() *Frame {
	if f == nil {
		return nil
	}
	f.refs++
	return f
}

// release drops a reference to f, releasing every locally owned binding
// once the count reaches zero. A borrowed map (namespace-backed) is never
// released here; the namespace value owns those bindings.
func (f *Frame) release() {
	if f == nil {
		return
	}
	f.refs--
	if f.refs > 0 {
		return
	}
	if !f.borrowed {
		for _, v := range f.locals {
			v.Release()
		}
	}
	f.locals = nil
	f.parent = nil
}

// bindLocal adds or replaces name in f's own map, releasing any prior
// binding under that name (used by let/var, spec §4.3).
func (f *Frame) bindLocal(name string, value *Value) {
	if old, ok := f.locals[name]; ok {
		old.Release()
	}
	f.locals[name] = value
}

// getBinding walks f's parent chain looking for name, returning the raw
// (non-acquired) binding and ok. Callers that hand the result to a caller
// outside the frame chain must Acquire it themselves (spec §4.3
// "get_binding").
func (f *Frame) getBinding(name string) (*Value, bool) {
	for cur := f; cur != nil; cur = cur.parent {
		if v, ok := cur.locals[name]; ok {
			return v, true
		}
	}
	return nil, false
}
