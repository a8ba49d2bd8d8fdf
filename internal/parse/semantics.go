package parse

import (
	"fmt"

	"github.com/dekarrin/mgolc/internal/emit"
	"github.com/dekarrin/mgolc/internal/mgrammar"
)

// formatOf maps a value tk_type to its printf/scanf conversion.
func formatOf(tkType string) string {
	switch tkType {
	case "inteiro":
		return `"%d"`
	case "real":
		return `"%lf"`
	case "literal":
		return `"%s"`
	default:
		return `"%d"`
	}
}

func tempKindOf(tkType string) emit.TempKind {
	if tkType == "real" {
		return emit.Real
	}
	return emit.Int
}

// runSemanticAction dispatches on rule number, per spec.md §4.5.
// Rules with no entry here are no-ops: they contribute no text or
// symbol-table effect beyond parse tracing (the P'/P/V/LV chain, the
// A/CP/CPR chains, and CABR's own header besides its EXP_R/scratch
// handling already covered by rule 33).
func (p *Parser) runSemanticAction(rule mgrammar.Rule) {
	switch rule.Index {
	case 5: // LV -> varfim pt_v: closes the declaration block
		p.emit.Append("\n")

	case 6: // D -> TIPO L pt_v
		p.emit.Append(";\n")

	case 7: // L -> id
		idAttr := p.ss.pop()
		tipoAttr := p.ss.pop()
		p.symbols.SetType(idAttr.Lexeme, tipoAttr.TkType)
		p.emit.Append(idAttr.Lexeme)

	case 8: // TIPO -> inteiro
		p.reduceTipo("inteiro")
	case 9: // TIPO -> real
		p.reduceTipo("real")
	case 10: // TIPO -> literal
		p.reduceTipo("literal")

	case 12: // ES -> leia id pt_v
		idAttr := p.ss.pop()
		tok, ok := p.symbols.Get(idAttr.Lexeme)
		tkType, hasType := tok.Type()
		if !ok || !hasType {
			p.logSemanticError(ESe1, idAttr.Lexeme)
			break
		}
		if tkType == "literal" {
			p.emit.Appendf("    scanf(%s, %s);\n", formatOf(tkType), idAttr.Lexeme)
		} else {
			p.emit.Appendf("    scanf(%s, &%s);\n", formatOf(tkType), idAttr.Lexeme)
		}

	case 13: // ES -> escreva ARG pt_v
		arg := p.ss.pop()
		p.emit.Appendf("    printf(%s);\n", arg.Lexeme)

	case 14: // ARG -> lit
		lit := p.ss.pop()
		p.ss.push(Attr{Item: "ARG", Lexeme: lit.Lexeme, TkType: "literal"})

	case 15: // ARG -> num
		num := p.ss.pop()
		p.ss.push(Attr{Item: "ARG", Lexeme: fmt.Sprintf("%s, %s", formatOf(num.TkType), num.Lexeme), TkType: num.TkType})

	case 16: // ARG -> id
		idAttr := p.ss.pop()
		tok, ok := p.symbols.Get(idAttr.Lexeme)
		tkType, hasType := tok.Type()
		if !ok || !hasType {
			p.logSemanticError(ESe2, idAttr.Lexeme)
			p.ss.push(Attr{Item: "ARG"})
			break
		}
		p.ss.push(Attr{Item: "ARG", Lexeme: fmt.Sprintf("%s, %s", formatOf(tkType), idAttr.Lexeme), TkType: tkType})

	case 18: // CMD -> id rcb LD pt_v
		ld := p.ss.pop()
		idAttr := p.ss.pop()
		tok, ok := p.symbols.Get(idAttr.Lexeme)
		tkType, hasType := tok.Type()
		switch {
		case !ok || !hasType:
			p.logSemanticError(ESe1, idAttr.Lexeme)
		case tkType != ld.TkType:
			p.logSemanticError(ESe3, idAttr.Lexeme)
		default:
			p.emit.Appendf("    %s = %s;\n", idAttr.Lexeme, ld.Lexeme)
		}

	case 19: // LD -> OPRD opm OPRD
		right := p.ss.pop()
		left := p.ss.pop()
		if left.TkType == right.TkType && left.TkType != "literal" && left.TkType != "" {
			name := p.emit.AllocTemp(tempKindOf(left.TkType))
			p.ss.push(Attr{Item: "LD", Lexeme: name, TkType: left.TkType})
			p.emit.Appendf("    %s = %s %s %s;\n", name, left.Lexeme, p.lastOp, right.Lexeme)
		} else {
			p.ss.push(left)
			p.ss.push(right)
			p.logSemanticError(ESe4, left.Lexeme+" "+p.lastOp+" "+right.Lexeme)
		}

	case 20: // LD -> OPRD
		o := p.ss.pop()
		p.ss.push(Attr{Item: "LD", Lexeme: o.Lexeme, TkType: o.TkType})

	case 21: // OPRD -> id
		idAttr := p.ss.pop()
		tok, ok := p.symbols.Get(idAttr.Lexeme)
		tkType, hasType := tok.Type()
		if !ok || !hasType {
			p.logSemanticError(ESe2, idAttr.Lexeme)
			p.ss.push(Attr{Item: "OPRD"})
			break
		}
		p.ss.push(Attr{Item: "OPRD", Lexeme: idAttr.Lexeme, TkType: tkType})

	case 22: // OPRD -> num
		n := p.ss.pop()
		p.ss.push(Attr{Item: "OPRD", Lexeme: n.Lexeme, TkType: n.TkType})

	case 24: // COND -> CAB CP: closes the if-block CAB opened
		p.emit.Append("    }\n")

	case 25: // CAB -> se ab_p EXP_R fc_p entao
		p.ss.pop() // discard the loop-only recompute scratch; unused by "if"
		expr := p.ss.pop()
		p.emit.Appendf("    if (%s) {\n", expr.Lexeme)

	case 26: // EXP_R -> OPRD opr OPRD
		right := p.ss.pop()
		left := p.ss.pop()
		if left.TkType != "literal" && right.TkType != "literal" {
			name := p.emit.AllocTemp(emit.Int)
			recompute := fmt.Sprintf("%s = %s %s %s", name, left.Lexeme, p.lastOp, right.Lexeme)
			p.ss.push(Attr{Item: "EXP_R", Lexeme: name})
			p.ss.push(Attr{Item: "Tx_expr", Lexeme: recompute})
			p.emit.Appendf("    %s = %s %s %s;\n", name, left.Lexeme, p.lastOp, right.Lexeme)
		} else {
			p.logSemanticError(ESe5, left.Lexeme+" "+p.lastOp+" "+right.Lexeme)
			p.ss.push(Attr{Item: "EXP_R"})
			p.ss.push(Attr{Item: "Tx_expr"})
		}

	case 32: // R -> CABR CPR: closes the for-block CABR opened
		p.emit.Append("    }\n")

	case 33: // CABR -> repita ab_p EXP_R fc_p
		recompute := p.ss.pop()
		expr := p.ss.pop()
		p.emit.Appendf("    for(; %s; %s) {\n", expr.Lexeme, recompute.Lexeme)
	}
}

func (p *Parser) reduceTipo(word string) {
	tok, _ := p.symbols.Get(word)
	tkType, _ := tok.Type()
	p.ss.push(Attr{Item: "TIPO", TkType: tkType})
	p.emit.Appendf("    %s ", tkType)
}

func (p *Parser) logSemanticError(code SemanticCode, lexeme string) {
	line, col := p.cur.Line(), p.cur.Col()
	p.semErrs = append(p.semErrs, SemanticDiagnostic{
		Line:    line,
		Col:     col,
		Code:    code,
		Message: semanticMessages[code],
		Lexeme:  lexeme,
	})
}
