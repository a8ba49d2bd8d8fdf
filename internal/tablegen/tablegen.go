// Package tablegen computes the canonical LR(0) item collection and
// the SLR(1) ACTION/GOTO tables for MGol's grammar.
//
// spec.md §1 treats the CSV tables sltab.Load reads as opaque external
// input with no generator in scope for the compiler itself. A real
// repository around this compiler still needs something that produces
// that input from the grammar definition — the same relationship
// dekarrin-tunaq's fishi toolchain has to the generated .cff frontend
// files tunascript loads at runtime. This package is that generator,
// grounded directly on ictiobus/parse/slr.go's
// constructSimpleLRParseTable (closure/goto/FOLLOW-driven ACTION/GOTO
// construction) and ictiobus/automaton's NFA/DFA closure machinery,
// adapted to work over mgrammar.Rule instead of a generic grammar.
package tablegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/mgolc/internal/mgrammar"
	"github.com/dekarrin/mgolc/internal/sltab"
)

// item is one LR(0) item: rule number and dot position within its RHS.
type item struct {
	rule int
	dot  int
}

type itemSet map[item]bool

func (s itemSet) key() string {
	items := make([]item, 0, len(s))
	for it := range s {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].rule != items[j].rule {
			return items[i].rule < items[j].rule
		}
		return items[i].dot < items[j].dot
	})
	var sb strings.Builder
	for _, it := range items {
		fmt.Fprintf(&sb, "%d.%d|", it.rule, it.dot)
	}
	return sb.String()
}

// Conflict records an ACTION cell that a second derivation tried to
// overwrite with a different action. MGol's grammar is designed to be
// conflict-free under SLR(1); a non-empty Conflicts slice from Build
// means that assumption broke, not that the caller did anything wrong.
type Conflict struct {
	State    int
	Terminal string
	Kept     sltab.Action
	Rejected sltab.Action
}

func closure(g *mgrammar.Grammar, items itemSet) itemSet {
	out := make(itemSet, len(items))
	for it := range items {
		out[it] = true
	}
	changed := true
	for changed {
		changed = false
		for it := range out {
			rhs := g.Rule(it.rule).RHS()
			if it.dot >= len(rhs) {
				continue
			}
			sym := rhs[it.dot]
			if !g.IsNonTerminal(sym) {
				continue
			}
			for _, r := range g.RulesFor(sym) {
				cand := item{rule: r.Index, dot: 0}
				if !out[cand] {
					out[cand] = true
					changed = true
				}
			}
		}
	}
	return out
}

func gotoSet(g *mgrammar.Grammar, items itemSet, sym string) (itemSet, bool) {
	moved := itemSet{}
	for it := range items {
		rhs := g.Rule(it.rule).RHS()
		if it.dot < len(rhs) && rhs[it.dot] == sym {
			moved[item{rule: it.rule, dot: it.dot + 1}] = true
		}
	}
	if len(moved) == 0 {
		return nil, false
	}
	return closure(g, moved), true
}

func symbolsAfterDot(g *mgrammar.Grammar, items itemSet) []string {
	seen := map[string]bool{}
	for it := range items {
		rhs := g.Rule(it.rule).RHS()
		if it.dot < len(rhs) {
			seen[rhs[it.dot]] = true
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Build constructs the canonical LR(0) collection for g and derives
// the SLR(1) ACTION/GOTO tables from it.
func Build(g *mgrammar.Grammar) (*sltab.Tables, []Conflict, error) {
	start := closure(g, itemSet{{rule: 1, dot: 0}: true})

	var states []itemSet
	index := map[string]int{}
	transitions := map[int]map[string]int{}

	addState := func(s itemSet) int {
		k := s.key()
		if idx, ok := index[k]; ok {
			return idx
		}
		idx := len(states)
		states = append(states, s)
		index[k] = idx
		return idx
	}

	startIdx := addState(start)
	if startIdx != 0 {
		return nil, nil, fmt.Errorf("tablegen: internal error, start state not 0")
	}

	queue := []int{0}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		transitions[cur] = map[string]int{}
		for _, sym := range symbolsAfterDot(g, states[cur]) {
			next, ok := gotoSet(g, states[cur], sym)
			if !ok {
				continue
			}
			before := len(states)
			target := addState(next)
			if target == before {
				queue = append(queue, target)
			}
			transitions[cur][sym] = target
		}
	}

	termPos := make(map[string]int, len(mgrammar.Terminals))
	for i, t := range mgrammar.Terminals {
		termPos[t] = i
	}
	ntPos := make(map[string]int, len(mgrammar.NonTerminals))
	for i, nt := range mgrammar.NonTerminals {
		ntPos[nt] = i
	}

	tables := sltab.New(append([]string(nil), mgrammar.Terminals...), append([]string(nil), mgrammar.NonTerminals...))
	var conflicts []Conflict

	setAction := func(row []sltab.Action, state int, term string, a sltab.Action) {
		pos, ok := termPos[term]
		if !ok {
			return
		}
		existing := row[pos]
		if existing.Kind == sltab.ActionError {
			row[pos] = a
			return
		}
		if existing == a {
			return
		}
		// shift/reduce conflict: keep the shift, as a parser generator
		// conventionally does, and record it for the caller to notice.
		if existing.Kind == sltab.ActionShift && a.Kind != sltab.ActionShift {
			conflicts = append(conflicts, Conflict{State: state, Terminal: term, Kept: existing, Rejected: a})
			return
		}
		if a.Kind == sltab.ActionShift && existing.Kind != sltab.ActionShift {
			conflicts = append(conflicts, Conflict{State: state, Terminal: term, Kept: a, Rejected: existing})
			row[pos] = a
			return
		}
		conflicts = append(conflicts, Conflict{State: state, Terminal: term, Kept: existing, Rejected: a})
	}

	for idx, items := range states {
		actionRow := make([]sltab.Action, len(mgrammar.Terminals))
		for i := range actionRow {
			actionRow[i] = sltab.Action{Kind: sltab.ActionError, ErrorCode: 0}
		}
		gotoRow := make([]int, len(mgrammar.NonTerminals))

		for it := range items {
			rule := g.Rule(it.rule)
			rhs := rule.RHS()
			if it.dot < len(rhs) {
				sym := rhs[it.dot]
				if g.IsTerminal(sym) {
					if target, ok := transitions[idx][sym]; ok {
						setAction(actionRow, idx, sym, sltab.Action{Kind: sltab.ActionShift, State: target})
					}
				}
				continue
			}
			if rule.Left == mgrammar.AugmentedStart {
				setAction(actionRow, idx, mgrammar.EndOfInput, sltab.Action{Kind: sltab.ActionAccept})
				continue
			}
			for t := range g.Follow(rule.Left) {
				setAction(actionRow, idx, t, sltab.Action{Kind: sltab.ActionReduce, Rule: rule.Index})
			}
		}

		for sym, target := range transitions[idx] {
			if pos, ok := ntPos[sym]; ok {
				gotoRow[pos] = target
			}
		}

		tables.SetAction(idx, actionRow)
		tables.SetGoto(idx, gotoRow)
	}

	return tables, conflicts, nil
}
