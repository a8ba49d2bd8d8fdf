// Package scan implements the line-buffered Scanner of spec.md §4.2:
// it drives lexauto's DFA one character at a time over the source
// text, owns the SymbolTable, and accumulates lexical diagnostics.
package scan

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dekarrin/mgolc/internal/lexauto"
	"github.com/dekarrin/mgolc/internal/symtab"
	"github.com/dekarrin/mgolc/internal/token"
)

// Diagnostic is one recorded lexical error (spec.md §4.2, §7).
type Diagnostic struct {
	Line    int
	Col     int
	Code    int
	Message string
	Rune    rune
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("linha %d, coluna %d: %s (%q)", d.Line, d.Col, d.Message, d.Rune)
}

// Scanner reads source text line by line, runs lexauto's DFA over it,
// and materializes Tokens. It exclusively owns the file reader,
// cursor, line buffer, and symbol table (spec.md §5).
type Scanner struct {
	r    *bufio.Reader
	line []rune
	pos  int // index into line of the next rune to read
	ln   int // 1-indexed current line number

	atEOF bool

	symbols *symtab.Table
	errs    []Diagnostic
}

// New creates a Scanner reading from r, with a freshly seeded symbol
// table.
func New(r io.Reader) *Scanner {
	return &Scanner{
		r:       bufio.NewReader(r),
		symbols: symtab.New(),
	}
}

// Symbols returns the Scanner's owned symbol table. The Parser
// borrows it during reductions (spec.md §9 Ownership).
func (s *Scanner) Symbols() *symtab.Table { return s.symbols }

// Diagnostics returns the lexical diagnostics recorded so far, in
// order.
func (s *Scanner) Diagnostics() []Diagnostic { return s.errs }

// readRune returns the next rune of source, loading another line into
// the buffer as needed. It returns ok=false only at true end of file.
func (s *Scanner) readRune() (rune, bool) {
	for s.pos >= len(s.line) {
		if s.atEOF {
			return 0, false
		}
		raw, err := s.r.ReadString('\n')
		if len(raw) == 0 && err != nil {
			s.atEOF = true
			return 0, false
		}
		if err == io.EOF {
			s.atEOF = true
		}
		// Normalize "\r\n" to a single "\n"; a lone "\r" is kept and
		// classified as whitespace by lexauto (spec.md §6).
		runes := []rune(raw)
		if n := len(runes); n >= 2 && runes[n-2] == '\r' && runes[n-1] == '\n' {
			runes = append(runes[:n-2], '\n')
		}
		s.line = runes
		s.pos = 0
		s.ln++
	}
	c := s.line[s.pos]
	s.pos++
	return c, true
}

// putBack restores exactly one character of lookahead (spec.md I5).
func (s *Scanner) putBack() {
	if s.pos > 0 {
		s.pos--
	}
}

func (s *Scanner) position() (line, col int) {
	line = s.ln
	if line == 0 {
		line = 1
	}
	col = s.pos
	if col < 1 {
		col = 1
	}
	return
}

// Scan runs the DFA over the source and returns the next Token. It
// may return an ERROR-class token; callers that want lexical errors
// silently discarded should use SafeScan instead.
func (s *Scanner) Scan() token.Token {
	var lexeme []rune
	state := lexauto.Initial()
	startLine, startCol := s.position()

	for {
		c, ok := s.readRune()
		if !ok {
			return s.finishAtEOF(lexeme, state, startLine, startCol)
		}
		if state.Kind == lexauto.KindInitial {
			// c is read from Initial (at the start, after skipped
			// whitespace, or after a closed `{...}` comment), so the
			// next token starts at c's position.
			startLine, startCol = s.position()
		}

		res := lexauto.Step(state, c)
		switch res.Action {
		case lexauto.ActionGoBack:
			s.putBack()
		case lexauto.ActionStandard:
			lexeme = append(lexeme, c)
		case lexauto.ActionClearLexeme:
			lexeme = lexeme[:0]
		case lexauto.ActionShowError:
			s.recordError(res.Next.ErrorCode, c)
		}

		state = res.Next
		if res.Done {
			return s.materialize(lexeme, state, startLine, startCol)
		}
	}
}

// finishAtEOF handles true end-of-stream. A pending lexeme in an
// Accept state is materialized as its token (the next Scan then
// returns EOF); a pending partial lexeme in a NonAccept state
// synthesizes Error(5) (unterminated comment or string); otherwise the
// synthetic EOF token is returned (spec.md §4.2).
func (s *Scanner) finishAtEOF(lexeme []rune, state lexauto.State, line, col int) token.Token {
	if state.Kind == lexauto.KindAccept {
		return s.materialize(lexeme, state, line, col)
	}
	if state.Kind == lexauto.KindNonAccept {
		s.recordError(lexauto.ErrUnterminated, 0)
		return token.New(token.Error, token.WithPosition(line, col))
	}
	return token.New(token.EndOfInput,
		token.WithLexeme("$"),
		token.WithPosition(line, col),
	)
}

func (s *Scanner) recordError(code int, c rune) {
	line, col := s.position()
	msg, ok := lexauto.ErrorMessages[code]
	if !ok {
		msg = "erro léxico"
	}
	s.errs = append(s.errs, Diagnostic{Line: line, Col: col, Code: code, Message: msg, Rune: c})
}

// materialize builds a Token from the final automaton state, per the
// accept-code-to-class mapping of spec.md §4.1/§4.2.
func (s *Scanner) materialize(lexeme []rune, state lexauto.State, line, col int) token.Token {
	lex := string(lexeme)
	pos := token.WithPosition(line, col)

	if state.Kind == lexauto.KindError {
		return token.New(token.Error, pos)
	}

	switch state.AcceptCode {
	case 1:
		return token.New(token.Num, token.WithLexeme(lex), token.WithType("inteiro"), pos)
	case 2, 3:
		return token.New(token.Num, token.WithLexeme(lex), token.WithType("real"), pos)
	case 4:
		return token.New(token.Lit, token.WithLexeme(lex), token.WithType("literal"), pos)
	case 5:
		return s.materializeIdentifier(lex, pos)
	case 8:
		return token.New(token.Opr, token.WithLexeme(lex), pos)
	case 9:
		return token.New(token.Opr, token.WithLexeme(lex), pos)
	case 10:
		return token.New(token.Opr, token.WithLexeme(lex), pos)
	case 11:
		return token.New(token.Rcb, token.WithLexeme(lex), pos)
	case 12:
		return token.New(token.Opr, token.WithLexeme(lex), pos)
	case 13:
		return token.New(token.Opr, token.WithLexeme(lex), pos)
	case 14:
		return token.New(token.Opr, token.WithLexeme(lex), pos)
	case 15:
		return token.New(token.Opm, token.WithLexeme(lex), pos)
	case 16:
		return token.New(token.AbP, token.WithLexeme(lex), pos)
	case 17:
		return token.New(token.FcP, token.WithLexeme(lex), pos)
	case 18:
		return token.New(token.PtV, token.WithLexeme(lex), pos)
	default:
		return token.New(token.Error, pos)
	}
}

// materializeIdentifier implements spec.md §4.2's reserved-word/
// already-seen lookup: reserved words reclassify from "id" to their
// keyword class, repeated identifiers reuse their stored token
// (property P2, P3), and genuinely new identifiers are installed with
// tk_type absent. The returned copy carries the position it was read
// at; the stored entry carries none.
func (s *Scanner) materializeIdentifier(lex string, pos token.Option) token.Token {
	tok, ok := s.symbols.Get(lex)
	if !ok {
		tok = s.symbols.Insert(lex, token.Id)
	}
	pos(&tok)
	return tok
}

// SafeScan wraps Scan, discarding ERROR tokens (after recording their
// diagnostic) so lexical errors do not drive the parser off the
// grammar (spec.md §4.2).
func (s *Scanner) SafeScan() token.Token {
	for {
		tok := s.Scan()
		if tok.Class().ID() != token.Error.ID() {
			return tok
		}
		// the diagnostic was already recorded by Scan/materialize;
		// Scan terminates after finitely many characters (P1), so
		// this loop always reaches a non-error or EOF token.
	}
}
