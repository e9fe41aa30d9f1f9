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

// Package builtin is the standard command library: every name an embedder
// gets "for free" by calling Register on a fresh core.Interp. It is an
// external collaborator of core in the same sense cmd/lcl is — everything
// here is implemented over core's exported registration, value, and
// environment API, with no special access to core's internals.
package builtin
