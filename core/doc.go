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

// Package core implements the LCL evaluation engine: the tagged, reference
// counted Value representation, lexical Frames and Environments, the
// word/command evaluator and its return-code control-flow protocol, and the
// flat-closure procedure model.
//
// Package core is the part of LCL that an embedder links against directly.
// The built-in command library (package builtin), the CLI front-end
// (cmd/lcl) and the lexer/parser (package syntax) are external collaborators
// that only use the interfaces this package exposes: Register/RegisterSpecialForm
// to install commands, Define/Lookup to bind and read names in the current
// scope (the global namespace at top level), and Call
// to invoke a callable Value with a pre-built argument vector.
//
// Values are reference counted and not safe for concurrent use: a Value must
// never be observed by two goroutines at once. The interpreter itself never
// spawns goroutines and every built-in in package builtin is synchronous.
package core
