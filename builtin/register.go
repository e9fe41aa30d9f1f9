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

package builtin

import "github.com/bholten/lcl/core"

// Register installs the full standard command library into interp, the
// single entry point an embedder calls in place of wiring each builtin
// by hand (mirrors lcl_register_core's role as the one-stop registration
// function called from the reference's main.c).
func Register(interp *core.Interp) {
	registerOutput(interp)
	registerLogic(interp)
	registerArith(interp)
	registerCmp(interp)
	registerGeneric(interp)
	registerPredicate(interp)
	registerBind(interp)
	registerProc(interp)
	registerControl(interp)
	registerList(interp)
	registerDict(interp)
	registerString(interp)
	registerNamespace(interp)
}
