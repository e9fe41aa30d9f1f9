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

// ListLen returns the number of elements in v.
func ListLen(v *Value) int { return len(v.list) }

// ListGet returns the element at index i with an acquired reference, or an
// index error.
func ListGet(v *Value, i int) (*Value, error) {
	if i < 0 || i >= len(v.list) {
		return nil, newError(ErrIndexRange, "list index out of range")
	}
	return v.list[i].Acquire(), nil
}

// cowList returns v itself if uniquely owned (refs == 1), mutating in
// place, or a freshly allocated shallow clone (refs == 1) otherwise,
// releasing one reference from v to account for the ownership that moves
// to the clone (spec §3.1 invariant 3, §4.1).
func cowList(v *Value) *Value {
	if v.refs <= 1 {
		return v
	}
	clone := make([]*Value, len(v.list))
	for i, e := range v.list {
		clone[i] = e.Acquire()
	}
	v.Release()
	return &Value{kind: KList, refs: 1, list: clone}
}

// ListPush appends elem (an owned reference transferred to the list) to v,
// cloning first if v is shared. Returns the Value the caller must now use
// as the binding for this list (it may or may not be v).
func ListPush(v *Value, elem *Value) *Value {
	nv := cowList(v)
	nv.list = append(nv.list, elem)
	nv.invalidateCache()
	return nv
}

// ListSet replaces the element at index i with elem (an owned reference),
// cloning first if v is shared. Returns the Value the caller must now use
// as the binding for this list.
func ListSet(v *Value, i int, elem *Value) (*Value, error) {
	if i < 0 || i >= len(v.list) {
		elem.Release()
		return v, newError(ErrIndexRange, "list index out of range")
	}
	nv := cowList(v)
	nv.list[i].Release()
	nv.list[i] = elem
	nv.invalidateCache()
	return nv, nil
}

// ListElements returns the raw backing slice for read-only iteration.
// Callers must not retain it past the current value's lifetime nor mutate
// it.
func ListElements(v *Value) []*Value { return v.list }
