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

import (
	"fmt"

	"github.com/bholten/lcl/core"
)

// registerOutput installs puts, a direct port of c_puts: every argument
// is stringified and written space-separated to the interpreter's
// configured Stdout, followed by a trailing newline, always.
func registerOutput(interp *core.Interp) {
	interp.Register("puts", func(in *core.Interp, argv []*core.Value) (core.Code, *core.Value, error) {
		for i, a := range argv {
			if i > 0 {
				fmt.Fprint(in.Stdout, " ")
			}
			fmt.Fprint(in.Stdout, core.ToString(a))
		}
		fmt.Fprint(in.Stdout, "\n")
		releaseAll(argv)
		return core.OK, core.NewString(""), nil
	})
}
