package parse

import "github.com/dekarrin/mgolc/internal/token"

// recoveryCeiling bounds the number of recovery actions a single
// compilation may perform (spec.md P7, §4.4).
const recoveryCeiling = 100

// recover implements the error-code-keyed recovery table of spec.md
// §4.4. offender is the token that triggered the Error action; it has
// already been pushed onto the pushback buffer by the caller. recover
// reports whether the parser should keep going.
func (p *Parser) recover(code int, offender token.Token) bool {
	p.logSyntaxError(code, offender)

	if p.recoveries >= recoveryCeiling {
		return false
	}
	p.recoveries++

	switch code {
	case 1: // code after 'fim': clear the buffer, push a synthetic EOF
		p.pushback = p.pushback[:0]
		p.pushBack(token.EOF())
		return true
	case 2: // missing ';': insert a synthetic pt_v ahead of the offender
		p.pushBack(token.New(token.PtV, token.WithLexeme(";"),
			token.WithPosition(offender.Line(), offender.Col())))
		return true
	case 3: // duplicated ';': discard the offender
		p.dropPushback()
		return true
	case 4: // invalid token after ';': discard it
		p.dropPushback()
		return true
	case 5: // '(' expected after 'se': discard offender, insert ab_p
		p.dropPushback()
		p.pushBack(syntheticAbP(offender))
		return true
	case 6: // same, but offender is id/num: keep it, just insert ab_p
		p.pushBack(syntheticAbP(offender))
		return true
	case 7, 8: // operator/paren/';' expected after id/num: fatal
		return false
	case 9: // id/num expected after 'se (': discard; empty '()' is fatal
		p.dropPushback()
		if offender.Class().Equal(token.FcP) {
			return false
		}
		return true
	case 10, 11: // malformed relational expression: fatal
		return false
	case 12: // extra token after relational expression: discard
		p.dropPushback()
		return true
	case 13: // 'entao' expected: discard
		p.dropPushback()
		return true
	case 14: // wrong start of 'entao' body: discard
		p.dropPushback()
		return true
	case 15: // '(' expected after 'repita': mirrors 5
		p.dropPushback()
		p.pushBack(syntheticAbP(offender))
		return true
	case 16: // mirrors 6
		p.pushBack(syntheticAbP(offender))
		return true
	case 17: // mirrors 9
		p.dropPushback()
		if offender.Class().Equal(token.FcP) {
			return false
		}
		return true
	default: // any other or unknown code: fatal
		return false
	}
}

func syntheticAbP(near token.Token) token.Token {
	return token.New(token.AbP, token.WithLexeme("("),
		token.WithPosition(near.Line(), near.Col()))
}

// dropPushback discards the top of the pushback buffer, a no-op if
// empty (defensive: recovery is always entered with the offender
// sitting on top, but never trust that blindly).
func (p *Parser) dropPushback() {
	if n := len(p.pushback); n > 0 {
		p.pushback = p.pushback[:n-1]
	}
}

func (p *Parser) logSyntaxError(code int, offender token.Token) {
	p.synErrs = append(p.synErrs, SyntaxDiagnostic{
		Line:    offender.Line(),
		Col:     offender.Col(),
		Code:    code,
		Message: syntaxMessage(code),
		Lexeme:  offender.LexemeOrEmpty(),
	})
}
