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

// Package syntax turns LCL source text into a Program: an ordered tree of
// Commands, Words and WordPieces that package core's evaluator consumes.
//
// There is no separate tokenizer: LCL's grammar is context-dependent on the
// current word form (bare, quoted, or braced), so parsing is a single-pass
// recursive descent directly over the source bytes, in the same spirit as
// the reference lcl-scan.c it was ported from. The parser never re-parses
// the same source; a Program, once built, is immutable and owns its
// children outright (no sharing between parses).
package syntax
