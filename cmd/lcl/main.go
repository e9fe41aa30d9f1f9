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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/bholten/lcl/builtin"
	"github.com/bholten/lcl/core"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

var (
	evalExpr string
	maxDepth int
	debug    bool
)

func newRunner() (*core.Interp, error) {
	in, err := core.NewInterp(core.WithStdout(os.Stdout), core.WithMaxDepth(maxDepth))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create interpreter")
	}
	builtin.Register(in)
	return in, nil
}

// atExit reports a failing evaluation the way cmd/retro's atExit reports a
// failing vm.Instance: file/line context always, the full causal chain
// only with -debug.
func atExit(in *core.Interp, err error) {
	if err == nil {
		return
	}
	loc := ""
	if in.ErrFile != "" {
		loc = fmt.Sprintf("%s:%d: ", in.ErrFile, in.ErrLine)
	}
	if debug {
		fmt.Fprintf(os.Stderr, "%s%+v\n", loc, err)
	} else {
		fmt.Fprintf(os.Stderr, "%s%v\n", loc, err)
	}
	os.Exit(1)
}

func runFile(in *core.Interp, name string) error {
	src, err := os.ReadFile(name)
	if err != nil {
		return errors.Wrapf(err, "reading %s", name)
	}
	code, v, err := in.EvalSource(name, src)
	if v != nil {
		v.Release()
	}
	if code == core.ERR {
		if err != nil {
			return err
		}
		return errors.Errorf("%s: evaluation failed", name)
	}
	return nil
}

// repl runs a minimal read-eval-print loop over stdin, printing a prompt
// only when stdin is an interactive terminal (mirrors the teacher's
// raw/non-raw split in cmd/retro/main.go, scaled down since LCL's REPL
// has no raw single-keystroke I/O requirement).
func repl(in *core.Interp) {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Fprint(os.Stderr, "lcl> ")
		}
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		code, v, err := in.EvalSource("<stdin>", []byte(line))
		switch code {
		case core.ERR:
			loc := ""
			if in.ErrFile != "" {
				loc = fmt.Sprintf("%s:%d: ", in.ErrFile, in.ErrLine)
			}
			fmt.Fprintf(os.Stderr, "%s%v\n", loc, err)
		default:
			if v != nil {
				fmt.Println(core.ToString(v))
			}
		}
		if v != nil {
			v.Release()
		}
	}
}

func main() {
	flag.StringVar(&evalExpr, "e", "", "evaluate `script` text directly instead of reading a file")
	flag.IntVar(&maxDepth, "maxdepth", core.DefaultMaxDepth, "maximum call-stack depth")
	flag.BoolVar(&debug, "debug", false, "print full error causal chains")
	flag.Parse()

	in, err := newRunner()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if evalExpr != "" {
		code, v, evalErr := in.EvalSource("<-e>", []byte(evalExpr))
		if v != nil {
			v.Release()
		}
		if code == core.ERR {
			atExit(in, evalErr)
		}
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		repl(in)
		return
	}
	for _, name := range args {
		if err := runFile(in, name); err != nil {
			atExit(in, err)
		}
	}
}
