package scan

import (
	"strings"
	"testing"

	"github.com/dekarrin/mgolc/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classes(t *testing.T, src string) []string {
	t.Helper()
	s := New(strings.NewReader(src))
	var got []string
	for {
		tok := s.SafeScan()
		got = append(got, tok.Class().ID())
		if tok.Class().ID() == token.EndOfInput.ID() {
			break
		}
	}
	return got
}

func TestReservedWordPrecedence(t *testing.T) {
	// property P2: reserved lexemes never come back as plain "id".
	got := classes(t, "inicio varinicio varfim fim")
	assert.Equal(t, []string{"inicio", "varinicio", "varfim", "fim", "$"}, got)
}

func TestIdentifierVsKeyword(t *testing.T) {
	got := classes(t, "x inicio y")
	assert.Equal(t, []string{"id", "inicio", "id", "$"}, got)
}

func TestSymbolTableIdempotence(t *testing.T) {
	// property P3: repeated occurrences return the same stored token.
	s := New(strings.NewReader("x x"))
	first := s.SafeScan()
	second := s.SafeScan()
	require.Equal(t, "id", first.Class().ID())
	require.Equal(t, "id", second.Class().ID())
	_, hasType1 := first.Type()
	_, hasType2 := second.Type()
	assert.False(t, hasType1)
	assert.False(t, hasType2)

	s.Symbols().SetType("x", "inteiro")
	stored, ok := s.Symbols().Get("x")
	require.True(t, ok)
	tkType, hasType := stored.Type()
	assert.True(t, hasType)
	assert.Equal(t, "inteiro", tkType)
}

func TestCommentYieldsNoToken(t *testing.T) {
	got := classes(t, "x {this is a comment} y")
	assert.Equal(t, []string{"id", "id", "$"}, got)
}

func TestNumericAndStringLiterals(t *testing.T) {
	s := New(strings.NewReader(`3 3.14 "hi"`))
	num1 := s.SafeScan()
	num2 := s.SafeScan()
	lit := s.SafeScan()

	tk, _ := num1.Type()
	assert.Equal(t, "inteiro", tk)
	tk, _ = num2.Type()
	assert.Equal(t, "real", tk)
	tk, _ = lit.Type()
	assert.Equal(t, "literal", tk)
	lex, _ := lit.Lexeme()
	assert.Equal(t, `"hi"`, lex)
}

func TestUnterminatedCommentRecordsError(t *testing.T) {
	s := New(strings.NewReader("{ nope"))
	tok := s.SafeScan()
	assert.Equal(t, token.EndOfInput.ID(), tok.Class().ID())
	require.Len(t, s.Diagnostics(), 1)
	assert.Equal(t, 5, s.Diagnostics()[0].Code)
}

func TestOutOfAlphabetCharIsSwallowed(t *testing.T) {
	s := New(strings.NewReader("x @ y"))
	tok1 := s.SafeScan()
	tok2 := s.SafeScan()
	require.Equal(t, "id", tok1.Class().ID())
	require.Equal(t, "id", tok2.Class().ID())
	require.Len(t, s.Diagnostics(), 1)
	assert.Equal(t, 0, s.Diagnostics()[0].Code)
}

func TestEndOfStreamIsSingleEOF(t *testing.T) {
	// property P1: scan terminates and ends with exactly one EOF token.
	got := classes(t, "x")
	assert.Equal(t, []string{"id", "$"}, got)
}

func TestAssignmentVsLessThan(t *testing.T) {
	got := classes(t, "x <- 1 ; y < 2")
	assert.Equal(t, []string{"id", "rcb", "num", "pt_v", "id", "opr", "num", "$"}, got)
}
