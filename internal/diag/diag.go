// Package diag collects a compilation's diagnostics and renders them
// for a human reader (spec.md §5, §6).
//
// Grounded on internal/tqerrors's typed-error-with-human-message
// shape, widened from a single wrapped error to an accumulating bag
// since a compile can (and usually does) produce many diagnostics
// across three independent phases before anything is reported.
package diag

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/mgolc/internal/parse"
	"github.com/dekarrin/mgolc/internal/scan"
)

const reportWidth = 100

// Entry is one diagnostic normalized to a single shape, regardless of
// which compiler phase produced it.
type Entry struct {
	Phase   string // "léxico", "sintático", or "semântico"
	Line    int
	Col     int
	Code    string
	Message string
	Lexeme  string
}

func (e Entry) row() []string {
	return []string{
		fmt.Sprintf("%d:%d", e.Line, e.Col),
		e.Code,
		e.Message,
		fmt.Sprintf("%q", e.Lexeme),
	}
}

// Bag accumulates diagnostics from every phase of one compilation, in
// the order each phase discovered them.
type Bag struct {
	lexical  []Entry
	syntax   []Entry
	semantic []Entry
}

// New returns an empty Bag.
func New() *Bag { return &Bag{} }

// AddLexical records the scanner's diagnostics.
func (b *Bag) AddLexical(diags []scan.Diagnostic) {
	for _, d := range diags {
		b.lexical = append(b.lexical, Entry{
			Phase:   "léxico",
			Line:    d.Line,
			Col:     d.Col,
			Code:    fmt.Sprintf("L%d", d.Code),
			Message: d.Message,
			Lexeme:  string(d.Rune),
		})
	}
}

// AddSyntax records the parser's syntax diagnostics.
func (b *Bag) AddSyntax(diags []parse.SyntaxDiagnostic) {
	for _, d := range diags {
		b.syntax = append(b.syntax, Entry{
			Phase:   "sintático",
			Line:    d.Line,
			Col:     d.Col,
			Code:    fmt.Sprintf("S%d", d.Code),
			Message: d.Message,
			Lexeme:  d.Lexeme,
		})
	}
}

// AddSemantic records the parser's semantic diagnostics.
func (b *Bag) AddSemantic(diags []parse.SemanticDiagnostic) {
	for _, d := range diags {
		b.semantic = append(b.semantic, Entry{
			Phase:   "semântico",
			Line:    d.Line,
			Col:     d.Col,
			Code:    string(d.Code),
			Message: d.Message,
			Lexeme:  d.Lexeme,
		})
	}
}

// Empty reports whether no diagnostic of any class was recorded
// (spec.md P6: this is exactly the condition under which a file is
// produced).
func (b *Bag) Empty() bool {
	return len(b.lexical) == 0 && len(b.syntax) == 0 && len(b.semantic) == 0
}

// Count returns the total number of diagnostics across all phases.
func (b *Bag) Count() int {
	return len(b.lexical) + len(b.syntax) + len(b.semantic)
}

// All returns every diagnostic, grouped by phase in the fixed order
// lexical, syntax, semantic.
func (b *Bag) All() []Entry {
	out := make([]Entry, 0, b.Count())
	out = append(out, b.lexical...)
	out = append(out, b.syntax...)
	out = append(out, b.semantic...)
	return out
}

// Report renders every diagnostic grouped by phase in an aligned
// table, the way slrTable.String() lays out ACTION/GOTO dumps with
// rosed.InsertTableOpts.
func (b *Bag) Report() string {
	if b.Empty() {
		return "nenhum diagnóstico\n"
	}

	groups := []struct {
		title   string
		entries []Entry
	}{
		{"Erros léxicos", b.lexical},
		{"Erros sintáticos", b.syntax},
		{"Erros semânticos", b.semantic},
	}

	var out strings.Builder
	for _, g := range groups {
		if len(g.entries) == 0 {
			continue
		}
		data := [][]string{{"posição", "código", "mensagem", "lexema"}}
		for _, e := range g.entries {
			data = append(data, e.row())
		}
		out.WriteString(g.title)
		out.WriteString("\n")
		out.WriteString(rosed.Edit("").InsertTableOpts(0, data, reportWidth, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).String())
		out.WriteString("\n\n")
	}

	out.WriteString(fmt.Sprintf("%d diagnóstico(s): %d léxico(s), %d sintático(s), %d semântico(s)\n",
		b.Count(), len(b.lexical), len(b.syntax), len(b.semantic)))

	return out.String()
}
