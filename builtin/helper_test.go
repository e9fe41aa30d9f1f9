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

package builtin_test

import (
	"bytes"
	"testing"

	"github.com/bholten/lcl/builtin"
	"github.com/bholten/lcl/core"
)

func newTestInterp(t *testing.T) (*core.Interp, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	in, err := core.NewInterp(core.WithStdout(&out))
	if err != nil {
		t.Fatalf("NewInterp: %v", err)
	}
	builtin.Register(in)
	return in, &out
}

func evalOK(t *testing.T, in *core.Interp, src string) *core.Value {
	t.Helper()
	code, v, err := in.EvalSource("<test>", []byte(src))
	if code != core.OK {
		t.Fatalf("eval %q: code = %v, err = %v", src, code, err)
	}
	return v
}

func evalErr(t *testing.T, in *core.Interp, src string) error {
	t.Helper()
	code, v, err := in.EvalSource("<test>", []byte(src))
	if v != nil {
		v.Release()
	}
	if code != core.ERR {
		t.Fatalf("eval %q: code = %v, want ERR", src, code)
	}
	if err == nil {
		t.Fatalf("eval %q: expected an error", src)
	}
	return err
}

func wantOutput(t *testing.T, out *bytes.Buffer, want string) {
	t.Helper()
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}
