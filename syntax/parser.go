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

package syntax

import "github.com/bholten/lcl/internal/checkbal"

// scanner walks source bytes producing Words built of WordPieces, tracking
// line numbers for error reporting and an at-command-start flag used for
// comment recognition (spec §4.2).
type scanner struct {
	src        []byte
	pos        int
	line       int
	file       string
	atCmdStart bool
}

func newScanner(file string, src []byte) *scanner {
	return &scanner{src: src, pos: 0, line: 1, file: file, atCmdStart: true}
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) peekAt(off int) byte {
	if s.pos+off >= len(s.src) {
		return 0
	}
	return s.src[s.pos+off]
}

func (s *scanner) advance() byte {
	c := s.src[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
	}
	return c
}

// countNewlines advances s.line for every '\n' in chunk, used after a
// checkbal match jumps s.pos past a whole delimited region in one step.
func (s *scanner) countNewlines(chunk []byte) {
	for _, c := range chunk {
		if c == '\n' {
			s.line++
		}
	}
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9') || c == ':'
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' }

// Parse parses a complete LCL source into a Program. file labels the
// source for error reporting (spec §4.2).
func Parse(file string, src []byte) (*Program, error) {
	s := newScanner(file, src)
	return s.parseProgram(false)
}

// parseProgram parses commands until EOF, or, when stopAtBracket is true,
// until a closing ']' is consumed. Parse and parseSubCommand both pass
// false; parseSubCommand gives it a scanner over only the bracketed text.
func (s *scanner) parseProgram(stopAtBracket bool) (*Program, error) {
	prog := &Program{File: s.file}
	for {
		s.skipBetweenCommands()
		if s.eof() {
			if stopAtBracket {
				return nil, s.errorf("unterminated subcommand: expected ']'")
			}
			return prog, nil
		}
		if stopAtBracket && s.peek() == ']' {
			s.advance()
			return prog, nil
		}
		cmd, ok, err := s.parseCommand()
		if err != nil {
			return nil, err
		}
		if ok {
			prog.Commands = append(prog.Commands, *cmd)
		}
	}
}

// skipBetweenCommands skips whitespace, command separators, and (since the
// scanner is always at a command boundary here) '#' line comments.
func (s *scanner) skipBetweenCommands() {
	for !s.eof() {
		c := s.peek()
		switch {
		case isSpace(c):
			s.advance()
		case c == '\n':
			s.advance()
			s.atCmdStart = true
		case c == ';':
			s.advance()
			s.atCmdStart = true
		case c == '#' && s.atCmdStart:
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}
		default:
			return
		}
	}
}

// skipIntraWord skips spaces/tabs/CR between words of the same command; it
// never consumes a newline, since a newline always terminates a command.
func (s *scanner) skipIntraWord() {
	for !s.eof() && isSpace(s.peek()) {
		s.advance()
	}
}

func (s *scanner) parseCommand() (*Command, bool, error) {
	line := s.line
	cmd := &Command{Line: line}
	s.atCmdStart = false
	for {
		if s.eof() {
			break
		}
		if s.peek() == ';' {
			s.advance()
			s.atCmdStart = true
			break
		}
		if s.peek() == '\n' {
			s.advance()
			s.atCmdStart = true
			break
		}
		s.skipIntraWord()
		if s.eof() || s.peek() == ';' || s.peek() == '\n' {
			continue
		}
		w, err := s.parseWord()
		if err != nil {
			return nil, false, err
		}
		if w == nil {
			break
		}
		cmd.Words = append(cmd.Words, *w)
	}
	return cmd, len(cmd.Words) > 0, nil
}

// parseWord parses one word starting at the scanner's current position. It
// returns (nil, nil) if there is nothing left to read as a word (e.g. a
// stray ']').
func (s *scanner) parseWord() (*Word, error) {
	if s.eof() {
		return nil, nil
	}
	if s.peek() == ']' {
		return nil, nil
	}
	if s.peek() == '{' {
		return s.parseBracedWord()
	}
	w := &Word{}
	inQuotes := false
	if s.peek() == '"' {
		inQuotes = true
		w.Quoted = true
		s.advance()
	}
	var lit []byte
	flush := func() {
		if len(lit) > 0 {
			w.Pieces = append(w.Pieces, WordPiece{Kind: Literal, Bytes: lit})
			lit = nil
		}
	}
	for !s.eof() {
		c := s.peek()
		if !inQuotes && (isSpace(c) || c == ';' || c == '\n' || c == ']') {
			break
		}
		switch c {
		case '$':
			flush()
			if err := s.parseVarRef(w); err != nil {
				return nil, err
			}
			continue
		case '[':
			flush()
			if err := s.parseSubCommand(w); err != nil {
				return nil, err
			}
			continue
		case '"':
			if inQuotes {
				s.advance()
				inQuotes = false
				goto done
			}
			lit = append(lit, s.advance())
		case '\\':
			if s.peekAt(1) == '\n' {
				s.advance()
				s.advance()
				continue
			}
			lit = append(lit, s.advance())
			if !s.eof() {
				lit = append(lit, s.advance())
			}
		default:
			lit = append(lit, s.advance())
		}
	}
done:
	flush()
	if inQuotes {
		return nil, s.errorf("unterminated quoted word")
	}
	if len(w.Pieces) == 0 && !w.Quoted {
		return nil, nil
	}
	return w, nil
}

// parseBracedWord handles a {...} word: verbatim content, no substitutions,
// balanced nested braces.
func (s *scanner) parseBracedWord() (*Word, error) {
	open := s.pos
	end, ok := checkbal.MatchBrace(s.src, open)
	if !ok {
		s.pos = end
		return nil, s.errorf("unterminated brace word")
	}
	content := s.src[open+1 : end-1]
	s.countNewlines(s.src[open:end])
	s.pos = end
	return &Word{Braced: true, Pieces: []WordPiece{{Kind: Literal, Bytes: append([]byte(nil), content...)}}}, nil
}

// parseVarRef consumes a $name or ${name} reference (or a literal '$' if
// not followed by a name) and appends the resulting piece(s) to w.
func (s *scanner) parseVarRef(w *Word) error {
	s.advance() // '$'
	if s.peek() == '{' {
		s.advance()
		start := s.pos
		for !s.eof() && s.peek() != '}' {
			s.advance()
		}
		if s.eof() {
			return s.errorf("unterminated ${...} reference")
		}
		name := string(s.src[start:s.pos])
		s.advance() // '}'
		if name == "" {
			return s.errorf("empty ${...} variable name")
		}
		w.Pieces = append(w.Pieces, WordPiece{Kind: VarRef, Name: name})
		return nil
	}
	if isNameStart(s.peek()) {
		start := s.pos
		s.advance()
		for !s.eof() && isNameChar(s.peek()) {
			s.advance()
		}
		name := string(s.src[start:s.pos])
		w.Pieces = append(w.Pieces, WordPiece{Kind: VarRef, Name: name})
		return nil
	}
	// bare '$' not followed by a name character: literal dollar sign.
	w.Pieces = append(w.Pieces, WordPiece{Kind: Literal, Bytes: []byte{'$'}})
	return nil
}

// parseSubCommand consumes a [...] piece: it scans for the matching ']' by
// bracket depth, skipping over nested brace groups and quoted strings so
// that brackets/quotes inside them don't confuse the count, then
// recursively parses the enclosed bytes as a Program.
func (s *scanner) parseSubCommand(w *Word) error {
	open := s.pos
	startLine := s.line
	end, ok := checkbal.MatchBracket(s.src, open)
	if !ok {
		s.countNewlines(s.src[open:end])
		s.pos = end
		return s.errorf("unterminated subcommand: expected ']'")
	}
	inner := s.src[open+1 : end-1]
	s.countNewlines(s.src[open:end])
	s.pos = end

	sub := newScanner(s.file, inner)
	sub.line = startLine
	prog, err := sub.parseProgram(false)
	if err != nil {
		return err
	}
	w.Pieces = append(w.Pieces, WordPiece{Kind: SubCommand, Program: prog})
	return nil
}
