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

import om "github.com/wk8/go-ordered-map/v2"

// DictLen returns the number of entries in v.
func DictLen(v *Value) int { return v.dict.Len() }

// DictGet looks up key in v, returning an acquired reference.
func DictGet(v *Value, key string) (*Value, bool) {
	e, ok := v.dict.Get(key)
	if !ok {
		return nil, false
	}
	return e.Acquire(), true
}

// DictKeys returns the keys of v in insertion order.
func DictKeys(v *Value) []string {
	keys := make([]string, 0, v.dict.Len())
	for pair := v.dict.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// DictEach calls fn for every key/value pair in insertion order, acquiring
// a reference on each yielded value per spec §4.1; fn must release it.
func DictEach(v *Value, fn func(key string, val *Value)) {
	for pair := v.dict.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value.Acquire())
	}
}

func cowDict(v *Value) *Value {
	if v.refs <= 1 {
		return v
	}
	clone := om.New[string, *Value](v.dict.Len())
	for pair := v.dict.Oldest(); pair != nil; pair = pair.Next() {
		clone.Set(pair.Key, pair.Value.Acquire())
	}
	v.Release()
	return &Value{kind: KDict, refs: 1, dict: clone}
}

// DictPut binds key to val (an owned reference) in v, cloning first if v
// is shared, replacing and releasing any prior value under key. Returns
// the Value the caller must now use as the binding for this dict.
func DictPut(v *Value, key string, val *Value) *Value {
	nv := cowDict(v)
	if old, ok := nv.dict.Get(key); ok {
		old.Release()
	}
	nv.dict.Set(key, val)
	nv.invalidateCache()
	return nv
}

// DictDelete removes key from v, cloning first if v is shared. Returns the
// Value the caller must now use as the binding for this dict.
func DictDelete(v *Value, key string) *Value {
	nv := cowDict(v)
	if old, ok := nv.dict.Get(key); ok {
		old.Release()
		nv.dict.Delete(key)
		nv.invalidateCache()
	}
	return nv
}
