// Package symtab implements MGol's single global-scope symbol table
// (spec.md §3 SymbolTable).
package symtab

import "github.com/dekarrin/mgolc/internal/token"

// Table maps lexeme to Token. It is pre-populated with the 14
// reserved words, each stored as class=lexeme, tk_type=lexeme
// (spec.md §9(d): this coincidence is exploited by the declaration
// rules for TIPO and must not be generalized elsewhere).
type Table struct {
	entries map[string]token.Token
}

// New returns a Table seeded with the reserved words.
func New() *Table {
	t := &Table{entries: make(map[string]token.Token, 32)}
	for _, rw := range token.ReservedWords {
		t.entries[rw.Lexeme] = token.New(rw.Class,
			token.WithLexeme(rw.Lexeme),
			token.WithType(rw.Lexeme),
		)
	}
	return t
}

// Get returns the stored token for lexeme, if any.
func (t *Table) Get(lexeme string) (token.Token, bool) {
	tok, ok := t.entries[lexeme]
	return tok, ok
}

// Insert records the first sighting of an identifier. Its tk_type is
// left absent until a later declaration sets it (spec.md I3). Insert
// is a no-op if the lexeme is already present (reserved word or a
// previously seen identifier) so repeated occurrences keep returning
// the same stored token (property P3).
func (t *Table) Insert(lexeme string, class token.Class) token.Token {
	if existing, ok := t.entries[lexeme]; ok {
		return existing
	}
	tok := token.New(class, token.WithLexeme(lexeme))
	t.entries[lexeme] = tok
	return tok
}

// SetType sets the tk_type of a previously installed identifier, as
// performed by the declaration reduction R7. It is a programming
// error to call SetType on a lexeme that was never installed.
func (t *Table) SetType(lexeme, tkType string) {
	tok, ok := t.entries[lexeme]
	if !ok {
		return
	}
	t.entries[lexeme] = tok.WithTokenType(tkType)
}
