package parse

import "fmt"

// SyntaxDiagnostic is one recorded ACTION-table Error entry (spec.md
// §4.4, §7).
type SyntaxDiagnostic struct {
	Line    int
	Col     int
	Code    int
	Message string
	Lexeme  string
}

func (d SyntaxDiagnostic) String() string {
	return fmt.Sprintf("linha %d, coluna %d: %s (%q)", d.Line, d.Col, d.Message, d.Lexeme)
}

// syntaxMessages gives the Portuguese diagnostic text for each ACTION
// error code (spec.md §4.4's recovery table).
var syntaxMessages = map[int]string{
	0:  "erro sintático",
	1:  "código inesperado após 'fim'",
	2:  "ausência de ';'",
	3:  "';' duplicado",
	4:  "token inválido após ';'",
	5:  "'(' esperado após 'se'",
	6:  "'(' esperado após 'se'",
	7:  "operador ou ';' esperado",
	8:  "')' ou ';' esperado",
	9:  "identificador ou número esperado após 'se ('",
	10: "expressão relacional malformada",
	11: "expressão relacional malformada",
	12: "token em excesso após a expressão relacional",
	13: "'entao' esperado",
	14: "início inválido do corpo do 'entao'",
	15: "'(' esperado após 'repita'",
	16: "'(' esperado após 'repita'",
	17: "identificador ou número esperado após 'repita ('",
}

func syntaxMessage(code int) string {
	if msg, ok := syntaxMessages[code]; ok {
		return msg
	}
	return "erro sintático"
}

// SemanticCode names one of the five semantic error classes of
// spec.md §4.5/§7.
type SemanticCode string

const (
	ESe1 SemanticCode = "ESe1" // undeclared variable as the target of a read or an assignment
	ESe2 SemanticCode = "ESe2" // undeclared variable used as a value
	ESe3 SemanticCode = "ESe3" // type mismatch in assignment
	ESe4 SemanticCode = "ESe4" // incompatible operands in an arithmetic expression
	ESe5 SemanticCode = "ESe5" // incompatible operands in a relational expression
)

var semanticMessages = map[SemanticCode]string{
	ESe1: "variável não declarada",
	ESe2: "variável não declarada",
	ESe3: "tipos incompatíveis na atribuição",
	ESe4: "operandos incompatíveis na expressão",
	ESe5: "operandos incompatíveis na expressão relacional",
}

// SemanticDiagnostic is one recorded semantic error (spec.md §4.5,
// §7).
type SemanticDiagnostic struct {
	Line    int
	Col     int
	Code    SemanticCode
	Message string
	Lexeme  string
}

func (d SemanticDiagnostic) String() string {
	return fmt.Sprintf("linha %d, coluna %d: %s: %s (%q)", d.Line, d.Col, d.Code, d.Message, d.Lexeme)
}
