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
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/bholten/lcl/core"
	"github.com/bholten/lcl/internal/checkbal"
	"github.com/bholten/lcl/syntax"
)

// isTrue implements the truthiness rule every conditional form shares
// (if/while/for/foreach tests, and/or/not): a nonzero Int or Float is
// true; a String is false only when empty or when it parses in full as
// an integer equal to zero, and true otherwise (including non-numeric
// strings) — narrower than core's general numeric coercion.
func isTrue(v *core.Value) bool {
	switch v.Kind() {
	case core.KInt:
		n, _ := core.ToInt(v)
		return n != 0
	case core.KFloat:
		f, _ := core.ToFloat(v)
		return f != 0
	case core.KString:
		s := core.ToString(v)
		if s == "" {
			return false
		}
		if n, err := strconv.ParseInt(s, 0, 64); err == nil {
			return n != 0
		}
		return true
	default:
		return true
	}
}

// compileText parses src as a standalone program labeled label, wrapping
// any parse failure as a classified ERR the way every special form below
// reports a malformed body/test/script.
func compileText(src, label string) (*syntax.Program, error) {
	prog, err := syntax.Parse(label, []byte(src))
	if err != nil {
		return nil, core.WrapError(core.ErrParse, err, "%s: parse error", label)
	}
	return prog, nil
}

// wordText runs EvalWordToString and unwraps the result to a plain Go
// string, releasing the intermediate Value — the shared first step for
// every body/test/script word below (mirrors lcl_eval_word_to_str plus
// lcl_value_to_string throughout the reference stdlib).
func wordText(in *core.Interp, w *syntax.Word) (core.Code, string, error) {
	code, v, err := in.EvalWordToString(w)
	if code != core.OK {
		return code, "", err
	}
	s := core.ToString(v)
	v.Release()
	return core.OK, s, nil
}

// registerControl installs if/while/for/foreach, break/continue, and the
// script-evaluation forms eval/load/subst. namespace is registered
// separately by Register.
func registerControl(interp *core.Interp) {
	registerIf(interp)
	registerWhile(interp)
	registerFor(interp)
	registerForeach(interp)

	interp.RegisterSpecialForm("break", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) != 0 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "break: expected no arguments")
		}
		return core.BREAK, core.NewString(""), nil
	})

	interp.RegisterSpecialForm("continue", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) != 0 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "continue: expected no arguments")
		}
		return core.CONTINUE, core.NewString(""), nil
	})

	interp.RegisterSpecialForm("eval", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) < 1 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "eval: expected at least 1 argument")
		}
		parts := make([]string, len(words))
		for i := range words {
			code, s, err := wordText(in, &words[i])
			if code != core.OK {
				return code, nil, err
			}
			parts[i] = s
		}
		prog, err := compileText(strings.Join(parts, " "), "<eval>")
		if err != nil {
			return core.ERR, nil, err
		}
		return in.EvalProgram(prog)
	})

	interp.RegisterSpecialForm("load", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) != 1 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "load: expected a file path")
		}
		code, path, err := wordText(in, &words[0])
		if code != core.OK {
			return code, nil, err
		}
		src, rerr := os.ReadFile(path)
		if rerr != nil {
			return core.ERR, nil, core.WrapError(core.ErrGeneric, rerr, "load: %s", path)
		}
		prog, perr := compileText(string(src), path)
		if perr != nil {
			return core.ERR, nil, perr
		}
		return in.EvalProgram(prog)
	})

	interp.RegisterSpecialForm("subst", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) != 1 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "subst: expected 1 argument")
		}
		code, src, err := wordText(in, &words[0])
		if code != core.OK {
			return code, nil, err
		}
		out, serr := substitute(in, src)
		if serr != nil {
			return core.ERR, nil, serr
		}
		return core.OK, core.NewString(out), nil
	})
}

// registerIf installs if/elseif/else. Each clause's body is the raw text
// of its word, recompiled and run once; the first true condition's body
// wins and its result (or RETURN/ERR) is returned directly. An all-false
// chain with no else yields empty string (c_if/s_if's fallthrough). A
// braced condition is compiled and run as a script, same as a braced
// while/for test — s_if itself never checked args[i]->braced and treated
// a braced condition as an always-true literal string, which the loop
// forms' own braced-test handling shows was an oversight, not a design.
func registerIf(interp *core.Interp) {
	interp.RegisterSpecialForm("if", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) < 2 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "if: expected at least a condition and a body")
		}
		i := 0
		for i < len(words) {
			if i > 0 {
				code, kw, err := wordText(in, &words[i])
				if code != core.OK {
					return code, nil, err
				}
				switch kw {
				case "else":
					if i+1 >= len(words) {
						return core.ERR, nil, core.NewError(core.ErrArityMismatch, "if: else requires a body")
					}
					return runBody(in, &words[i+1], "<if-else>")
				case "elseif":
					i++
					if i+1 >= len(words) {
						return core.ERR, nil, core.NewError(core.ErrArityMismatch, "if: elseif requires a condition and a body")
					}
				default:
					return core.ERR, nil, core.NewError(core.ErrGeneric, "if: unexpected token %q", kw)
				}
			}

			condProg, cerr := loopTest(in, &words[i], "<if-test>")
			if cerr != nil {
				return core.ERR, nil, cerr
			}
			code, condV, err := evalLoopTest(in, condProg, &words[i])
			if code != core.OK {
				return code, condV, err
			}
			truth := isTrue(condV)
			condV.Release()

			if truth {
				return runBody(in, &words[i+1], "<if>")
			}
			i += 2
		}
		return core.OK, core.NewString(""), nil
	})
}

// runBody evaluates w's raw text as a freshly compiled program, the
// shared final step of if/while/for/foreach bodies throughout the
// reference (eval_word_to_str, then program_compile, then eval_program).
func runBody(in *core.Interp, w *syntax.Word, label string) (core.Code, *core.Value, error) {
	code, text, err := wordText(in, w)
	if code != core.OK {
		return code, nil, err
	}
	prog, perr := compileText(text, label)
	if perr != nil {
		return core.ERR, nil, perr
	}
	return in.EvalProgram(prog)
}

// loopTest compiles (if braced) or prepares (if not) w for per-iteration
// re-evaluation: a braced test is compiled once up front and replayed via
// EvalProgram each iteration; a non-braced test is re-evaluated fresh via
// EvalWord each time, so $var substitutions see the latest binding.
func loopTest(in *core.Interp, w *syntax.Word, label string) (*syntax.Program, error) {
	if !w.Braced {
		return nil, nil
	}
	code, text, err := wordText(in, w)
	if code != core.OK {
		return nil, err
	}
	return compileText(text, label)
}

func evalLoopTest(in *core.Interp, compiled *syntax.Program, w *syntax.Word) (core.Code, *core.Value, error) {
	if compiled != nil {
		return in.EvalProgram(compiled)
	}
	return in.EvalWord(w)
}

// registerWhile installs while test body, re-evaluating test each
// iteration per loopTest's braced/live distinction and propagating
// BREAK/CONTINUE/ERR/RETURN exactly as s_while does.
func registerWhile(interp *core.Interp) {
	interp.RegisterSpecialForm("while", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) != 2 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "while: expected a test and a body")
		}
		testProg, err := loopTest(in, &words[0], "<while-test>")
		if err != nil {
			return core.ERR, nil, err
		}
		bodyText, code, err := prepBody(in, &words[1])
		if code != core.OK {
			return code, nil, err
		}
		bodyProg, perr := compileText(bodyText, "<while-body>")
		if perr != nil {
			return core.ERR, nil, perr
		}

		var last *core.Value
		for {
			tc, condV, terr := evalLoopTest(in, testProg, &words[0])
			if tc != core.OK {
				if last != nil {
					last.Release()
				}
				return tc, condV, terr
			}
			truth := isTrue(condV)
			condV.Release()
			if !truth {
				break
			}

			if last != nil {
				last.Release()
			}
			bc, bv, berr := in.EvalProgram(bodyProg)
			last = bv

			switch bc {
			case core.BREAK:
				if last != nil {
					last.Release()
				}
				return core.OK, core.NewString(""), nil
			case core.CONTINUE:
				continue
			case core.OK:
				// fall through to next test
			case core.RETURN:
				return core.RETURN, last, nil
			default:
				return bc, last, berr
			}
		}
		if last == nil {
			last = core.NewString("")
		}
		return core.OK, last, nil
	})
}

// prepBody resolves a body word's raw text without compiling it yet, so
// for/foreach/while can share wordText's error handling before compiling.
func prepBody(in *core.Interp, w *syntax.Word) (string, core.Code, error) {
	code, text, err := wordText(in, w)
	return text, code, err
}

// registerFor installs the Tcl-style "for start test next body" loop.
// start runs once; next still runs on CONTINUE before the test is
// re-checked, matching s_for.
func registerFor(interp *core.Interp) {
	interp.RegisterSpecialForm("for", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) != 4 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "for: expected start, test, next, and body")
		}
		startText, code, err := prepBody(in, &words[0])
		if code != core.OK {
			return code, nil, err
		}
		startProg, perr := compileText(startText, "<for-start>")
		if perr != nil {
			return core.ERR, nil, perr
		}
		testProg, terr := loopTest(in, &words[1], "<for-test>")
		if terr != nil {
			return core.ERR, nil, terr
		}
		nextText, code, err := prepBody(in, &words[2])
		if code != core.OK {
			return code, nil, err
		}
		nextProg, perr := compileText(nextText, "<for-next>")
		if perr != nil {
			return core.ERR, nil, perr
		}
		bodyText, code, err := prepBody(in, &words[3])
		if code != core.OK {
			return code, nil, err
		}
		bodyProg, perr := compileText(bodyText, "<for-body>")
		if perr != nil {
			return core.ERR, nil, perr
		}

		sc, sv, serr := in.EvalProgram(startProg)
		if sv != nil {
			sv.Release()
		}
		if sc != core.OK {
			return sc, nil, serr
		}

		var last *core.Value
		for {
			tc, condV, terr := evalLoopTest(in, testProg, &words[1])
			if tc != core.OK {
				if last != nil {
					last.Release()
				}
				return tc, condV, terr
			}
			truth := isTrue(condV)
			condV.Release()
			if !truth {
				break
			}

			if last != nil {
				last.Release()
			}
			bc, bv, berr := in.EvalProgram(bodyProg)
			last = bv

			switch bc {
			case core.BREAK:
				if last != nil {
					last.Release()
				}
				return core.OK, core.NewString(""), nil
			case core.CONTINUE:
				nc, nv, nerr := in.EvalProgram(nextProg)
				if nv != nil {
					nv.Release()
				}
				if nc != core.OK && nc != core.CONTINUE {
					if last != nil {
						last.Release()
					}
					return nc, nil, nerr
				}
				continue
			case core.OK:
				// fall through to next
			case core.RETURN:
				return core.RETURN, last, nil
			default:
				return bc, last, berr
			}

			nc, nv, nerr := in.EvalProgram(nextProg)
			if nv != nil {
				nv.Release()
			}
			if nc != core.OK {
				if last != nil {
					last.Release()
				}
				return nc, nil, nerr
			}
		}
		if last == nil {
			last = core.NewString("")
		}
		return core.OK, last, nil
	})
}

// registerForeach installs foreach varname list body: the element is
// rebound (via let, not var) every iteration, and a non-List value for
// the list word is split on whitespace into a single-level string list,
// matching lcl_list_new_from_cwords.
func registerForeach(interp *core.Interp) {
	interp.RegisterSpecialForm("foreach", func(in *core.Interp, words []syntax.Word) (core.Code, *core.Value, error) {
		if len(words) != 3 {
			return core.ERR, nil, core.NewError(core.ErrArityMismatch, "foreach: expected a variable, a list, and a body")
		}
		code, nameV, err := in.EvalWordToString(&words[0])
		if code != core.OK {
			return code, nameV, err
		}
		varName := core.ToString(nameV)
		nameV.Release()

		code, listV, err := in.EvalWord(&words[1])
		if code != core.OK {
			return code, listV, err
		}
		if listV.Kind() != core.KList {
			fields := strings.Fields(core.ToString(listV))
			listV.Release()
			elems := make([]*core.Value, len(fields))
			for i, f := range fields {
				elems[i] = core.NewString(f)
			}
			listV = core.NewList(elems)
		}

		bodyText, code, err := prepBody(in, &words[2])
		if code != core.OK {
			listV.Release()
			return code, nil, err
		}
		bodyProg, perr := compileText(bodyText, "<foreach>")
		if perr != nil {
			listV.Release()
			return core.ERR, nil, perr
		}

		n := core.ListLen(listV)
		var last *core.Value
		for i := 0; i < n; i++ {
			elem, gerr := core.ListGet(listV, i)
			if gerr != nil {
				listV.Release()
				if last != nil {
					last.Release()
				}
				return core.ERR, nil, gerr
			}
			in.Env.Let(varName, elem)

			if last != nil {
				last.Release()
			}
			bc, bv, berr := in.EvalProgram(bodyProg)
			last = bv

			switch bc {
			case core.BREAK:
				listV.Release()
				if last != nil {
					last.Release()
				}
				return core.OK, core.NewString(""), nil
			case core.CONTINUE:
				continue
			case core.OK:
				// next iteration
			case core.RETURN:
				listV.Release()
				return core.RETURN, last, nil
			default:
				listV.Release()
				return bc, last, berr
			}
		}
		listV.Release()
		if last == nil {
			last = core.NewString("")
		}
		return core.OK, last, nil
	})
}

func isSubstNameStart(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c))
}

func isSubstNameChar(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}

// substitute re-implements the byte-level $name / ${name} / [cmd] / "\x"
// interpolation scanner subst runs over a string that was never parsed as
// a command word (mirrors s_subst's manual scan exactly rather than
// reusing syntax.Parse, since the input here is arbitrary text, not a
// word inside a command).
func substitute(in *core.Interp, src string) (string, error) {
	var out strings.Builder
	i := 0
	n := len(src)
	lookup := func(name string) (string, error) {
		v, err := in.Env.GetValue(name)
		if err != nil {
			return "", err
		}
		if v.Kind() == core.KCell {
			inner := core.CellGet(v)
			v.Release()
			v = inner
		}
		s := core.ToString(v)
		v.Release()
		return s, nil
	}

	for i < n {
		c := src[i]

		if c == '\\' && i+1 < n {
			next := src[i+1]
			switch next {
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			case 'r':
				out.WriteByte('\r')
			case '\\', '[', ']', '$', '{', '}', '"':
				out.WriteByte(next)
			default:
				out.WriteByte('\\')
				out.WriteByte(next)
			}
			i += 2
			continue
		}

		if c == '$' {
			i++
			if i < n && src[i] == '{' {
				start := i + 1
				j := start
				for j < n && src[j] != '}' {
					j++
				}
				if j >= n {
					return "", core.NewError(core.ErrUnterminated, "subst: unterminated ${...}")
				}
				name := src[start:j]
				s, err := lookup(name)
				if err != nil {
					return "", err
				}
				out.WriteString(s)
				i = j + 1
				continue
			}
			if i < n && isSubstNameStart(src[i]) {
				start := i
				i++
				for i < n && isSubstNameChar(src[i]) {
					i++
				}
				s, err := lookup(src[start:i])
				if err != nil {
					return "", err
				}
				out.WriteString(s)
				continue
			}
			out.WriteByte('$')
			continue
		}

		if c == '[' {
			end, ok := checkbal.MatchBracket([]byte(src), i)
			if !ok {
				return "", core.NewError(core.ErrUnterminated, "subst: unterminated [...]")
			}
			start, j := i+1, end-1
			prog, perr := compileText(src[start:j], "<subst>")
			if perr != nil {
				return "", perr
			}
			code, v, err := in.EvalProgram(prog)
			if code != core.OK {
				if v != nil {
					v.Release()
				}
				if err != nil {
					return "", err
				}
				return "", core.NewError(core.ErrGeneric, "subst: subcommand failed")
			}
			if v != nil {
				out.WriteString(core.ToString(v))
				v.Release()
			}
			i = j + 1
			continue
		}

		out.WriteByte(c)
		i++
	}

	return out.String(), nil
}
