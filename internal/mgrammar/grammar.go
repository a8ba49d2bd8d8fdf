// Package mgrammar holds MGol's static, numbered grammar (spec.md
// §4.3, §6): 38 productions, 1-indexed, with rule 1 the augmented
// start P' -> P.
//
// Grounded on ictiobus/grammar's AlphabetItem/terminal-flag modeling
// (internal/ictiobus/grammar/item.go), adapted from a builder API into
// a fixed static table since MGol's grammar, unlike ictiobus's, is
// never constructed at runtime from a specification.
package mgrammar

import "strings"

// Item is one symbol on the right-hand side of a Rule.
type Item struct {
	Text     string
	Terminal bool
}

// Rule is one numbered production, left -> right.
type Rule struct {
	Index int
	Left  string
	Right []Item
}

// Arity returns |RHS(r)|, the number of symbols popped from the
// syntactic stack on a reduction by this rule (spec.md I2).
func (r Rule) Arity() int { return len(r.Right) }

func (r Rule) String() string {
	parts := make([]string, len(r.Right))
	for i, it := range r.Right {
		parts[i] = it.Text
	}
	rhs := strings.Join(parts, " ")
	if rhs == "" {
		rhs = "ε"
	}
	return r.Left + " -> " + rhs
}

func item(text string) Item {
	return Item{Text: text, Terminal: strings.ToLower(text) == text}
}

func rule(index int, left, rhs string) Rule {
	var items []Item
	for _, tok := range strings.Fields(rhs) {
		items = append(items, item(tok))
	}
	return Rule{Index: index, Left: left, Right: items}
}

// rules is the fixed, numbered production list of spec.md §6.
var rules = []Rule{
	rule(1, "P'", "P"),
	rule(2, "P", "inicio V A"),
	rule(3, "V", "varinicio LV"),
	rule(4, "LV", "D LV"),
	rule(5, "LV", "varfim pt_v"),
	rule(6, "D", "TIPO L pt_v"),
	rule(7, "L", "id"),
	rule(8, "TIPO", "inteiro"),
	rule(9, "TIPO", "real"),
	rule(10, "TIPO", "literal"),
	rule(11, "A", "ES A"),
	rule(12, "ES", "leia id pt_v"),
	rule(13, "ES", "escreva ARG pt_v"),
	rule(14, "ARG", "lit"),
	rule(15, "ARG", "num"),
	rule(16, "ARG", "id"),
	rule(17, "A", "CMD A"),
	rule(18, "CMD", "id rcb LD pt_v"),
	rule(19, "LD", "OPRD opm OPRD"),
	rule(20, "LD", "OPRD"),
	rule(21, "OPRD", "id"),
	rule(22, "OPRD", "num"),
	rule(23, "A", "COND A"),
	rule(24, "COND", "CAB CP"),
	rule(25, "CAB", "se ab_p EXP_R fc_p entao"),
	rule(26, "EXP_R", "OPRD opr OPRD"),
	rule(27, "CP", "ES CP"),
	rule(28, "CP", "CMD CP"),
	rule(29, "CP", "COND CP"),
	rule(30, "CP", "fimse"),
	rule(31, "A", "R A"),
	rule(32, "R", "CABR CPR"),
	rule(33, "CABR", "repita ab_p EXP_R fc_p"),
	rule(34, "CPR", "ES CPR"),
	rule(35, "CPR", "CMD CPR"),
	rule(36, "CPR", "COND CPR"),
	rule(37, "CPR", "fimrepita"),
	rule(38, "A", "fim"),
}

// Grammar exposes the fixed production list by 1-indexed rule number.
type Grammar struct {
	rules []Rule
}

// New returns the static MGol grammar.
func New() *Grammar {
	return &Grammar{rules: rules}
}

// Rule returns the production numbered index (1-indexed).
func (g *Grammar) Rule(index int) Rule {
	return g.rules[index-1]
}

// Len returns the number of productions, 38.
func (g *Grammar) Len() int { return len(g.rules) }

// Terminals, in the canonical ACTION-CSV order of spec.md §6.
var Terminals = []string{
	"num", "lit", "id", "opr", "rcb", "opm", "ab_p", "fc_p", "pt_v",
	"inicio", "varinicio", "varfim", "escreva", "leia", "se", "entao",
	"fimse", "repita", "fimrepita", "fim", "inteiro", "literal", "real", "$",
}

// NonTerminals, in the canonical GOTO-CSV order of spec.md §6.
var NonTerminals = []string{
	"P", "V", "LV", "D", "L", "TIPO", "A", "ES", "ARG", "CMD", "LD",
	"OPRD", "COND", "CAB", "EXP_R", "CP", "R", "CABR", "CPR",
}

// StartSymbol is the non-augmented start symbol of the grammar.
const StartSymbol = "P"

// AugmentedStart is the left side of rule 1, P' -> P.
const AugmentedStart = "P'"

// EndOfInput is the lookahead symbol used where the grammar expects
// end of input.
const EndOfInput = "$"

var terminalSet = func() map[string]bool {
	m := make(map[string]bool, len(Terminals))
	for _, t := range Terminals {
		m[t] = true
	}
	return m
}()

// IsTerminal reports whether sym names a terminal (including "$").
func (g *Grammar) IsTerminal(sym string) bool {
	return terminalSet[sym]
}

// IsNonTerminal reports whether sym names a nonterminal or the
// augmented start symbol.
func (g *Grammar) IsNonTerminal(sym string) bool {
	return !g.IsTerminal(sym)
}

// RulesFor returns every rule whose left side is left, in rule-number
// order.
func (g *Grammar) RulesFor(left string) []Rule {
	var out []Rule
	for _, r := range g.rules {
		if r.Left == left {
			out = append(out, r)
		}
	}
	return out
}

// RHS returns the bare symbol names of a rule's right-hand side.
func (r Rule) RHS() []string {
	syms := make([]string, len(r.Right))
	for i, it := range r.Right {
		syms[i] = it.Text
	}
	return syms
}

// First returns FIRST(sym): the set of terminals that can begin a
// string derived from sym. MGol's grammar has no epsilon productions,
// so this is a straightforward fixpoint with no nullable propagation.
func (g *Grammar) First(sym string) map[string]bool {
	if g.IsTerminal(sym) {
		return map[string]bool{sym: true}
	}
	visited := map[string]bool{}
	result := map[string]bool{}
	g.firstInto(sym, result, visited)
	return result
}

func (g *Grammar) firstInto(nonTerm string, result, visited map[string]bool) {
	if visited[nonTerm] {
		return
	}
	visited[nonTerm] = true
	for _, r := range g.RulesFor(nonTerm) {
		if len(r.Right) == 0 {
			continue
		}
		lead := r.Right[0].Text
		if g.IsTerminal(lead) {
			result[lead] = true
		} else {
			g.firstInto(lead, result, visited)
		}
	}
}

// FirstOfSequence returns FIRST(X1 X2 ... Xn); since the grammar has
// no nullable symbols this is simply FIRST(X1).
func (g *Grammar) FirstOfSequence(syms []string) map[string]bool {
	if len(syms) == 0 {
		return map[string]bool{}
	}
	return g.First(syms[0])
}

// Follow returns FOLLOW(nonTerm), computed by the standard fixpoint
// over every production's right-hand side (spec.md §4.3's SLR(1)
// tables are built from exactly this set).
func (g *Grammar) Follow(nonTerm string) map[string]bool {
	follow := make(map[string]map[string]bool)
	for _, nt := range append([]string{AugmentedStart}, NonTerminals...) {
		follow[nt] = map[string]bool{}
	}
	follow[AugmentedStart][EndOfInput] = true

	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			rhs := r.RHS()
			for i, sym := range rhs {
				if g.IsTerminal(sym) {
					continue
				}
				rest := rhs[i+1:]
				if len(rest) > 0 {
					for t := range g.FirstOfSequence(rest) {
						if !follow[sym][t] {
							follow[sym][t] = true
							changed = true
						}
					}
				} else {
					for t := range follow[r.Left] {
						if !follow[sym][t] {
							follow[sym][t] = true
							changed = true
						}
					}
				}
			}
		}
	}

	return follow[nonTerm]
}
