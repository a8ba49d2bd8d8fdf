// Package compiler wires Scanner, Parser, EmitBuffer, and Bag
// together into the single-call compilation pipeline a CLI or a server
// endpoint drives (spec.md §6).
//
// Grounded on tunaq.Engine's role as the thing that owns a game.State
// and the I/O around it (engine.go): Compile and CompileTraced play the
// same part here, minus anything interactive, since a compile is a single
// batch operation rather than a read-eval loop.
package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/mgolc/internal/diag"
	"github.com/dekarrin/mgolc/internal/mgrammar"
	"github.com/dekarrin/mgolc/internal/parse"
	"github.com/dekarrin/mgolc/internal/scan"
	"github.com/dekarrin/mgolc/internal/sltab"
)

// Result is the outcome of one compilation.
type Result struct {
	Diagnostics *diag.Bag
	CSource     string // valid only when Diagnostics.Empty()
	TempCount   int
}

// Compile runs the full pipeline over src using tables, returning a
// Result that is ready either to be written to disk (when
// Diagnostics.Empty()) or reported to the caller (spec.md P6).
func Compile(src io.Reader, tables *sltab.Tables) Result {
	scanner := scan.New(src)
	p := parse.New(scanner, tables, mgrammar.New())
	p.Compile()

	bag := diag.New()
	bag.AddLexical(scanner.Diagnostics())
	bag.AddSyntax(p.SyntaxErrors())
	bag.AddSemantic(p.SemanticErrors())

	result := Result{Diagnostics: bag, TempCount: p.Emit().TempCount()}
	if bag.Empty() {
		result.CSource = mustFlush(p)
	}
	return result
}

// CompileTraced is Compile with a driver-step trace callback installed
// for the CLI's --trace/--interactive modes.
func CompileTraced(src io.Reader, tables *sltab.Tables, trace func(parse.TraceEvent)) Result {
	scanner := scan.New(src)
	p := parse.New(scanner, tables, mgrammar.New())
	p.SetTrace(trace)
	p.Compile()

	bag := diag.New()
	bag.AddLexical(scanner.Diagnostics())
	bag.AddSyntax(p.SyntaxErrors())
	bag.AddSemantic(p.SemanticErrors())

	result := Result{Diagnostics: bag, TempCount: p.Emit().TempCount()}
	if bag.Empty() {
		result.CSource = mustFlush(p)
	}
	return result
}

func mustFlush(p *parse.Parser) string {
	var sb strings.Builder
	if err := p.Emit().Flush(&sb); err != nil {
		// Flush only fails if the underlying writer fails; a
		// strings.Builder-backed writer never does.
		panic(fmt.Sprintf("compiler: flushing to an in-memory buffer failed: %v", err))
	}
	return sb.String()
}
