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

// CellGet returns the inner value of a Cell, acquiring a reference for the
// caller (spec §4.1 "Cell.get").
func CellGet(v *Value) *Value { return v.cell.Acquire() }

// CellSet replaces the inner value of a Cell with val (an owned
// reference), releasing the old inner value and invalidating v's cached
// string form (spec §4.1 "Cell.set").
func CellSet(v *Value, val *Value) {
	v.cell.Release()
	v.cell = val
	v.invalidateCache()
}
