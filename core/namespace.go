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

// Namespace is a first-class mapping from names to values, reachable by
// "::"-qualified names (spec §3.1, §4.1).
type Namespace struct {
	QName string
	defs  map[string]*Value
}

func newNamespace(qname string) *Namespace {
	return &Namespace{QName: qname, defs: make(map[string]*Value)}
}

// NSDef binds name to value inside ns, replacing and releasing any prior
// binding under that name.
func NSDef(ns *Value, name string, value *Value) {
	if old, ok := ns.ns.defs[name]; ok {
		old.Release()
	}
	ns.ns.defs[name] = value
}

// NSGet looks up name in ns, returning an acquired reference.
func NSGet(ns *Value, name string) (*Value, bool) {
	v, ok := ns.ns.defs[name]
	if !ok {
		return nil, false
	}
	return v.Acquire(), true
}

// NSGetRaw looks up name in ns without acquiring a reference.
func NSGetRaw(ns *Value, name string) (*Value, bool) {
	v, ok := ns.ns.defs[name]
	return v, ok
}

// NSNames returns the bound names of ns in unspecified order.
func NSNames(ns *Value) []string {
	names := make([]string, 0, len(ns.ns.defs))
	for n := range ns.ns.defs {
		names = append(names, n)
	}
	return names
}

// SplitQualified recognizes "left::rest" as a qualified reference,
// splitting on the first "::" (spec §4.1 "Namespace.split").
func SplitQualified(q string) (left, rest string, ok bool) {
	i := strings.Index(q, "::")
	if i < 0 {
		return "", "", false
	}
	return q[:i], q[i+2:], true
}
