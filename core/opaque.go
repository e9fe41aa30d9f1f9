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

// OpaqueGet extracts ptr from v if v is an Opaque whose tag matches
// expectedTag (or expectedTag is empty, meaning "accept any tag"). It fails
// with ErrTypeMismatch if v is not an Opaque, and with ErrOpaqueMismatch if
// the tag differs (spec §4.1 "Opaque.get").
func OpaqueGet(v *Value, expectedTag string) (interface{}, error) {
	if v.kind != KOpaque {
		return nil, newError(ErrTypeMismatch, "expected an opaque value")
	}
	if expectedTag != "" && v.opaque.Tag != expectedTag {
		return nil, newError(ErrOpaqueMismatch, "expected opaque type "+expectedTag+", got "+v.opaque.Tag)
	}
	return v.opaque.Ptr, nil
}

// OpaqueTypeTag returns the type tag stored in an Opaque value.
func OpaqueTypeTag(v *Value) string {
	if v.kind != KOpaque {
		return ""
	}
	return v.opaque.Tag
}
