package lexauto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func runToken(t *testing.T, input string) (lexeme string, final State) {
	t.Helper()
	state := Initial()
	var sb []rune
	runes := []rune(input)
	i := 0
	for {
		if i >= len(runes) {
			break
		}
		c := runes[i]
		res := Step(state, c)
		switch res.Action {
		case ActionStandard:
			sb = append(sb, c)
		case ActionClearLexeme:
			sb = nil
		case ActionGoBack:
			i--
		}
		state = res.Next
		i++
		if res.Done {
			return string(sb), state
		}
	}
	return string(sb), state
}

func TestIntegerLiteral(t *testing.T) {
	lex, st := runToken(t, "1234 ")
	assert.Equal(t, "1234", lex)
	assert.Equal(t, 1, st.AcceptCode)
}

func TestRealLiteralWithDot(t *testing.T) {
	lex, st := runToken(t, "12.34;")
	assert.Equal(t, "12.34", lex)
	assert.Equal(t, 2, st.AcceptCode)
}

func TestRealLiteralWithExponent(t *testing.T) {
	lex, st := runToken(t, "1e10;")
	assert.Equal(t, "1e10", lex)
	assert.Equal(t, 3, st.AcceptCode)
}

func TestRealLiteralWithSignedExponent(t *testing.T) {
	lex, st := runToken(t, "1e+10;")
	assert.Equal(t, "1e+10", lex)
	assert.Equal(t, 3, st.AcceptCode)
}

func TestIdentifierStartingWithE(t *testing.T) {
	lex, st := runToken(t, "escreva ")
	assert.Equal(t, "escreva", lex)
	assert.Equal(t, 5, st.AcceptCode)
}

func TestStringLiteral(t *testing.T) {
	lex, st := runToken(t, `"ola mundo" `)
	assert.Equal(t, `"ola mundo"`, lex)
	assert.Equal(t, 4, st.AcceptCode)
}

func TestComment(t *testing.T) {
	// the closing '}' returns to Initial without finishing a token, so
	// runToken goes on to read "x"; none of the comment reaches the lexeme.
	lex, st := runToken(t, "{this is skipped}x")
	assert.Equal(t, "x", lex)
	assert.Equal(t, accept(5), st)
}

func TestAssignmentOperator(t *testing.T) {
	lex, st := runToken(t, "<- ")
	assert.Equal(t, "<-", lex)
	assert.Equal(t, 11, st.AcceptCode)
}

func TestRelationalOperators(t *testing.T) {
	for _, tc := range []struct {
		in   string
		code int
	}{
		{"< ", 8},
		{"<= ", 9},
		{"<> ", 10},
		{"> ", 12},
		{">= ", 13},
		{"= ", 14},
	} {
		lex, st := runToken(t, tc.in)
		assert.Equal(t, st.Kind, KindAccept)
		assert.Equal(t, tc.code, st.AcceptCode, tc.in)
		_ = lex
	}
}

func TestMissingDigitAfterDot(t *testing.T) {
	_, st := runToken(t, "12.x")
	assert.Equal(t, KindError, st.Kind)
	assert.Equal(t, ErrMissingDigitAfterDot, st.ErrorCode)
}

func TestOutOfAlphabetChar(t *testing.T) {
	_, st := runToken(t, "@")
	assert.Equal(t, KindError, st.Kind)
	assert.Equal(t, ErrNotInAlphabet, st.ErrorCode)
}

func TestOutOfAlphabetCharInsideStringIsNotInAlphabetError(t *testing.T) {
	// a char outside the fixed alphabet mid-string is Error(0), the
	// same code as anywhere else; Error(5) is reserved for a pending
	// construct that hits true end of stream (the Scanner's job).
	_, st := runToken(t, "\"abc\x01")
	assert.Equal(t, KindError, st.Kind)
	assert.Equal(t, ErrNotInAlphabet, st.ErrorCode)
}

func TestOutOfAlphabetCharInsideCommentIsNotInAlphabetError(t *testing.T) {
	_, st := runToken(t, "{abc\x01")
	assert.Equal(t, KindError, st.Kind)
	assert.Equal(t, ErrNotInAlphabet, st.ErrorCode)
}

func TestUnterminatedStringHitsEndOfInputStillPending(t *testing.T) {
	// The automaton itself never observes end-of-stream; running out of
	// characters mid-string leaves it in the NonAccept('d') state. It
	// is the Scanner's job (spec.md §4.2) to notice this at EOF and
	// synthesize Error(5).
	_, st := runToken(t, "\"abc")
	assert.Equal(t, KindNonAccept, st.Kind)
	assert.Equal(t, rune(NonAcceptInString), st.NonAccept)
}
