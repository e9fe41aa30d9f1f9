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

import "github.com/bholten/lcl/syntax"

// Upvalue is one name captured by a closure at creation time: either a
// Cell (the variable is mutable, writes through set! in the defining
// scope remain visible) or a direct value (immutable), held with an
// acquired reference (spec §4.5.1, GLOSSARY "Upvalue").
type Upvalue struct {
	Name   string
	IsCell bool
	Value  *Value
}

// freeVarNames scans body for every distinct VarRef name that appears,
// recursively into subcommands, excluding names in params (spec §4.5.1
// step 1). Order is first-occurrence, for deterministic capture order in
// tests.
func freeVarNames(body *syntax.Program, params []string) []string {
	excl := make(map[string]bool, len(params))
	for _, p := range params {
		excl[p] = true
	}
	seen := map[string]bool{}
	var names []string
	add := func(name string) {
		if excl[name] || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	var walkProgram func(p *syntax.Program)
	walkWord := func(w *syntax.Word) {
		for _, piece := range w.Pieces {
			switch piece.Kind {
			case syntax.VarRef:
				add(piece.Name)
			case syntax.SubCommand:
				walkProgram(piece.Program)
			}
		}
	}
	walkProgram = func(p *syntax.Program) {
		if p == nil {
			return
		}
		for _, cmd := range p.Commands {
			for i := range cmd.Words {
				walkWord(&cmd.Words[i])
			}
		}
	}
	walkProgram(body)
	return names
}

// CaptureUpvalues builds the flat-closure capture set for a lambda/proc
// body about to be created in env: every free variable name (excluding
// params) that currently resolves in env becomes an Upvalue; names that
// do not resolve are left to be looked up dynamically at call time
// (globals, built-ins). It also reports the defining namespace when that
// namespace differs from the global one, acquired for the closure to
// carry (spec §4.5.1).
func CaptureUpvalues(env *Environment, body *syntax.Program, params []string) (ups []Upvalue, ns *Value) {
	for _, name := range freeVarNames(body, params) {
		v, err := env.GetValue(name)
		if err != nil {
			continue
		}
		ups = append(ups, Upvalue{Name: name, IsCell: v.Kind() == KCell, Value: v})
	}
	if env.CurrentNamespace() != env.GlobalNamespace() {
		ns = env.CurrentNamespace().Acquire()
	}
	return ups, ns
}
