// Package parse implements MGol's single-pass SLR(1) parser and its
// syntax-directed translation into C (spec.md §4.4, §4.5).
//
// Grounded on ictiobus/parse's shift/reduce driver loop
// (internal/ictiobus/parse/slr.go), adapted from that package's
// generic attribute-dependency-graph translation engine to a direct
// semantic-stack walk (spec.md §3's Attr triple), since MGol's
// translation scheme has none of ictiobus's synthesized/inherited
// attribute wiring to resolve.
package parse

import (
	"github.com/dekarrin/mgolc/internal/emit"
	"github.com/dekarrin/mgolc/internal/mgrammar"
	"github.com/dekarrin/mgolc/internal/scan"
	"github.com/dekarrin/mgolc/internal/sltab"
	"github.com/dekarrin/mgolc/internal/symtab"
	"github.com/dekarrin/mgolc/internal/token"
)

// Parser drives one compilation: a shift/reduce loop over an SLR(1)
// table, paired with a semantic stack that emits C text as reductions
// fire (spec.md §4.4, §4.5).
type Parser struct {
	tables  *sltab.Tables
	grammar *mgrammar.Grammar
	scanner *scan.Scanner
	symbols *symtab.Table
	emit    *emit.Buffer

	states []int // syntactic stack, bottom at index 0
	ss     *stack

	pushback []token.Token // tokens queued ahead of the scanner, recovery-inserted or pushed back
	cur      token.Token   // the lookahead currently under consideration

	lastOp string // opm/opr lexeme most recently shifted, read by R19/R26

	recoveries int
	synErrs    []SyntaxDiagnostic
	semErrs    []SemanticDiagnostic

	trace func(TraceEvent)
}

// TraceEvent describes one step of the shift/reduce driver loop, for
// callers that want to display the parse as it happens (the CLI's
// --trace/--interactive modes).
type TraceEvent struct {
	Kind    string // "shift", "reduce", "accept", or "error"
	State   int
	Rule    mgrammar.Rule // valid when Kind == "reduce"
	Lookahead token.Token
}

// SetTrace installs a callback invoked once per driver step. Pass nil
// to disable tracing.
func (p *Parser) SetTrace(fn func(TraceEvent)) {
	p.trace = fn
}

func (p *Parser) emitTrace(ev TraceEvent) {
	if p.trace != nil {
		p.trace(ev)
	}
}

// New builds a Parser over scanner's tokens, ready to Compile once.
func New(scanner *scan.Scanner, tables *sltab.Tables, grammar *mgrammar.Grammar) *Parser {
	return &Parser{
		tables:  tables,
		grammar: grammar,
		scanner: scanner,
		symbols: scanner.Symbols(),
		emit:    emit.New(),
		states:  []int{0},
		ss:      newStack(),
	}
}

// SyntaxErrors returns every recorded syntax diagnostic, in the order
// recovery encountered them.
func (p *Parser) SyntaxErrors() []SyntaxDiagnostic { return p.synErrs }

// SemanticErrors returns every recorded semantic diagnostic, in the
// order reductions encountered them.
func (p *Parser) SemanticErrors() []SemanticDiagnostic { return p.semErrs }

// Emit returns the translation buffer accumulated so far.
func (p *Parser) Emit() *emit.Buffer { return p.emit }

// Ok reports whether the compilation is free of both syntax and
// semantic errors. Lexical errors are held by the Scanner and are not
// counted here, so a generated file also needs the Scanner's
// diagnostics to be empty.
func (p *Parser) Ok() bool { return len(p.synErrs) == 0 && len(p.semErrs) == 0 }

// next returns the next lookahead token, preferring anything queued on
// the pushback buffer (recovery-synthesized tokens, or a token put
// back by the driver loop) over a fresh scan.
func (p *Parser) next() token.Token {
	if n := len(p.pushback); n > 0 {
		tok := p.pushback[n-1]
		p.pushback = p.pushback[:n-1]
		return tok
	}
	return p.scanner.SafeScan()
}

// pushBack queues tok to be the next token returned by next, ahead of
// anything already scanned.
func (p *Parser) pushBack(tok token.Token) {
	p.pushback = append(p.pushback, tok)
}

// Compile runs the shift/reduce driver to completion, returning once
// the augmented grammar's Accept action fires or recovery gives up
// (spec.md §4.4). It is safe to call Ok/Emit/SyntaxErrors/
// SemanticErrors afterward regardless of outcome.
func (p *Parser) Compile() {
	p.cur = p.next()

	for {
		state := p.states[len(p.states)-1]
		act := p.tables.Action(state, p.cur.Class().ID())

		switch act.Kind {
		case sltab.ActionShift:
			p.emitTrace(TraceEvent{Kind: "shift", State: act.State, Lookahead: p.cur})
			p.shift(act.State)
			p.cur = p.next()

		case sltab.ActionReduce:
			p.emitTrace(TraceEvent{Kind: "reduce", State: state, Rule: p.grammar.Rule(act.Rule), Lookahead: p.cur})
			p.reduce(act.Rule)

		case sltab.ActionAccept:
			p.emitTrace(TraceEvent{Kind: "accept", State: state, Lookahead: p.cur})
			return

		default: // sltab.ActionError
			offender := p.cur
			p.emitTrace(TraceEvent{Kind: "error", State: state, Lookahead: offender})
			p.pushBack(offender)
			if !p.recover(act.ErrorCode, offender) {
				return
			}
			p.cur = p.next()
		}
	}
}

// isValueBearing reports whether a terminal class carries a lexeme
// worth pushing onto the semantic stack (spec.md §3: structural
// punctuation like pt_v or ab_p never needs an Attr). Operators
// (opm/opr) are not pushed: shift keeps their lexeme in lastOp, and
// R19/R26 pop only their two OPRD operands.
func isValueBearing(cls string) bool {
	switch cls {
	case "num", "lit", "id", "inteiro", "real", "literal":
		return true
	default:
		return false
	}
}

// shift pushes target onto the syntactic stack and, for
// value-bearing terminals, a matching Attr onto the semantic stack
// (spec.md §4.5's "every shift of a value-bearing terminal pushes one
// attribute triple").
func (p *Parser) shift(target int) {
	p.states = append(p.states, target)

	cls := p.cur.Class().ID()
	if cls == "opm" || cls == "opr" {
		p.lastOp = p.cur.LexemeOrEmpty()
	}
	if !isValueBearing(cls) {
		return
	}

	tkType, _ := p.cur.Type()
	p.ss.push(Attr{Item: cls, Lexeme: p.cur.LexemeOrEmpty(), TkType: tkType})
}

// reduce pops |RHS(rule)| entries off the syntactic stack, runs the
// rule's semantic action (which pops/pushes the semantic stack
// itself), consults GOTO to find the resulting state, and pushes it.
func (p *Parser) reduce(ruleIdx int) {
	rule := p.grammar.Rule(ruleIdx)
	n := rule.Arity()
	if n > 0 && n <= len(p.states)-1 {
		p.states = p.states[:len(p.states)-n]
	}

	p.runSemanticAction(rule)

	top := p.states[len(p.states)-1]
	next, ok := p.tables.Goto(top, rule.Left)
	if !ok {
		// a GOTO miss here means the table and grammar disagree; the
		// current top state is pushed again and the next ACTION lookup
		// (usually an Error entry) decides how the parse goes on.
		next = top
	}
	p.states = append(p.states, next)
}
