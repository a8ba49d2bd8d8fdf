// Package token defines the immutable token record produced by the
// scanner and consumed by the parser.
package token

import "strings"

// Class identifies one of the fixed terminal symbols of the MGol
// grammar. It follows the same ID()/Human() shape as
// ictiobus's types.TokenClass so that diagnostics and grammar code can
// treat classes uniformly regardless of which package defined them.
type Class interface {
	// ID returns the canonical lowercase name used in the ACTION/GOTO
	// tables and grammar rules, e.g. "id", "opr", "fimse".
	ID() string

	// Human returns a name suitable for use in diagnostics.
	Human() string

	// Equal reports whether two classes denote the same terminal.
	Equal(o any) bool
}

type simpleClass string

func (c simpleClass) ID() string { return strings.ToLower(string(c)) }
func (c simpleClass) Human() string {
	if human, ok := humanNames[c.ID()]; ok {
		return human
	}
	return string(c)
}

func (c simpleClass) Equal(o any) bool {
	other, ok := o.(Class)
	if !ok {
		return false
	}
	return other.ID() == c.ID()
}

// ClassOf returns the Class for a canonical terminal name. Unknown
// names still produce a usable Class (their Human() falls back to the
// name itself) since the CSV tables are the source of truth for which
// names are meaningful.
func ClassOf(name string) Class {
	if strings.EqualFold(name, "eof") || name == "$" {
		return EndOfInput
	}
	return simpleClass(strings.ToLower(name))
}

// The fixed terminal alphabet named in spec.md §6, plus the
// synthetic EOF and ERROR classes used internally by the scanner.
var (
	Num        = simpleClass("num")
	Lit        = simpleClass("lit")
	Id         = simpleClass("id")
	Opr        = simpleClass("opr")
	Rcb        = simpleClass("rcb")
	Opm        = simpleClass("opm")
	AbP        = simpleClass("ab_p")
	FcP        = simpleClass("fc_p")
	PtV        = simpleClass("pt_v")
	Inicio     = simpleClass("inicio")
	VarInicio  = simpleClass("varinicio")
	VarFim     = simpleClass("varfim")
	Escreva    = simpleClass("escreva")
	Leia       = simpleClass("leia")
	Se         = simpleClass("se")
	Entao      = simpleClass("entao")
	FimSe      = simpleClass("fimse")
	Repita     = simpleClass("repita")
	FimRepita  = simpleClass("fimrepita")
	Fim        = simpleClass("fim")
	Inteiro    = simpleClass("inteiro")
	Literal    = simpleClass("literal")
	Real       = simpleClass("real")
	EndOfInput = simpleClass("$")
	Error      = simpleClass("error")
)

// ReservedWords maps every reserved lexeme to its Class, in the order
// spec.md §3 uses to seed the symbol table.
var ReservedWords = []struct {
	Lexeme string
	Class  Class
}{
	{"inicio", Inicio},
	{"varinicio", VarInicio},
	{"varfim", VarFim},
	{"escreva", Escreva},
	{"leia", Leia},
	{"se", Se},
	{"entao", Entao},
	{"fimse", FimSe},
	{"repita", Repita},
	{"fimrepita", FimRepita},
	{"fim", Fim},
	{"inteiro", Inteiro},
	{"literal", Literal},
	{"real", Real},
}

var humanNames = map[string]string{
	"num":       "um número",
	"lit":       "uma literal de texto",
	"id":        "um identificador",
	"opr":       "um operador relacional",
	"rcb":       "'<-'",
	"opm":       "um operador aritmético",
	"ab_p":      "'('",
	"fc_p":      "')'",
	"pt_v":      "';'",
	"inicio":    "'inicio'",
	"varinicio": "'varinicio'",
	"varfim":    "'varfim'",
	"escreva":   "'escreva'",
	"leia":      "'leia'",
	"se":        "'se'",
	"entao":     "'entao'",
	"fimse":     "'fimse'",
	"repita":    "'repita'",
	"fimrepita": "'fimrepita'",
	"fim":       "'fim'",
	"inteiro":   "'inteiro'",
	"literal":   "'literal'",
	"real":      "'real'",
	"$":         "o fim do arquivo",
}
