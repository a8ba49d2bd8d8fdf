package token

import "fmt"

// Token is an immutable value object produced by the scanner. Copies
// are cheap and expected; see spec.md §3.
type Token struct {
	class   Class
	lexeme  string
	hasLex  bool
	tkType  string
	hasType bool
	line    int
	col     int
}

// Option configures a Token at construction time.
type Option func(*Token)

// WithLexeme attaches the exact source text of the token.
func WithLexeme(lexeme string) Option {
	return func(t *Token) {
		t.lexeme = lexeme
		t.hasLex = true
	}
}

// WithType attaches a tk_type of inteiro, real, or literal.
func WithType(tkType string) Option {
	return func(t *Token) {
		t.tkType = tkType
		t.hasType = true
	}
}

// WithPosition records the 1-indexed line and column the token was
// read from, for use in diagnostics.
func WithPosition(line, col int) Option {
	return func(t *Token) {
		t.line = line
		t.col = col
	}
}

// New builds a Token of the given class.
func New(class Class, opts ...Option) Token {
	t := Token{class: class}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Class returns the terminal this token was lexed as.
func (t Token) Class() Class { return t.class }

// Lexeme returns the token's source text. The second return value is
// false for synthesized sentinels that carry no lexeme (spec.md §3).
func (t Token) Lexeme() (string, bool) { return t.lexeme, t.hasLex }

// LexemeOrEmpty returns Lexeme but collapses the "absent" case to "",
// useful in contexts that already know a lexeme must be present.
func (t Token) LexemeOrEmpty() string { return t.lexeme }

// Type returns the token's tk_type (inteiro, real, or literal). The
// second return value is false for structural tokens and for
// identifiers that have not yet been declared.
func (t Token) Type() (string, bool) { return t.tkType, t.hasType }

// Line returns the 1-indexed line the token was read from.
func (t Token) Line() int { return t.line }

// Col returns the 1-indexed column the token started at.
func (t Token) Col() int { return t.col }

// WithTokenType returns a copy of t with its tk_type set, used by
// reduction actions that learn an identifier's declared type only
// after it has already been shifted (spec.md §4.5, R7).
func (t Token) WithTokenType(tkType string) Token {
	t.tkType = tkType
	t.hasType = true
	return t
}

func (t Token) String() string {
	lex := "<none>"
	if t.hasLex {
		lex = t.lexeme
	}
	return fmt.Sprintf("%s(%q)@%d:%d", t.class.ID(), lex, t.line, t.col)
}

// EOF is the synthetic end-of-stream token (spec.md §4.2).
func EOF() Token {
	return New(EndOfInput, WithLexeme("$"))
}
