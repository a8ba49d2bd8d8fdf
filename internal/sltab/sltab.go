// Package sltab implements SlrTables (spec.md §4.3): ACTION and GOTO
// lookup tables loaded once at startup from two CSV files with a
// header row of terminal/nonterminal names.
//
// Grounded on ictiobus/parse's ACTION-as-tagged-union modeling
// (internal/ictiobus/parse/slr.go, lraction.go). This package does not
// derive tables from a grammar itself: Load reads them from CSV, and
// New/SetAction/SetGoto let package tablegen fill them in memory from
// the grammar.
package sltab

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ActionKind tags the variant carried by Action, grounded on
// ictiobus/parse.LRAction's Shift/Reduce/Accept/Error sum type.
type ActionKind int

const (
	ActionError ActionKind = iota
	ActionShift
	ActionReduce
	ActionAccept
)

// Action is one ACTION-table cell.
type Action struct {
	Kind       ActionKind
	State      int // valid when Kind == ActionShift
	Rule       int // valid when Kind == ActionReduce
	ErrorCode  int // valid when Kind == ActionError; 0 if absent/empty
}

func (a Action) String() string {
	switch a.Kind {
	case ActionShift:
		return fmt.Sprintf("S%d", a.State)
	case ActionReduce:
		return fmt.Sprintf("R%d", a.Rule)
	case ActionAccept:
		return "A"
	default:
		return fmt.Sprintf("E%d", a.ErrorCode)
	}
}

// Tables holds the loaded ACTION and GOTO tables along with the
// terminal/nonterminal orderings read from their CSV headers.
type Tables struct {
	Terminals    []string
	NonTerminals []string

	action map[int][]Action // state -> one Action per terminal, in header order
	goTo   map[int][]int    // state -> one target state per nonterminal, 0 = absent
}

// Load reads the ACTION and GOTO CSVs and builds a Tables. Both
// readers are consumed fully; callers are responsible for closing the
// underlying files.
func Load(actionCSV, gotoCSV io.Reader) (*Tables, error) {
	t := &Tables{
		action: make(map[int][]Action),
		goTo:   make(map[int][]int),
	}

	terms, actionRows, err := readCSV(actionCSV)
	if err != nil {
		return nil, fmt.Errorf("reading action table: %w", err)
	}
	t.Terminals = terms

	for _, row := range actionRows {
		state, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("action table: bad state %q: %w", row[0], err)
		}
		cells := make([]Action, len(terms))
		for i := range terms {
			cells[i] = parseAction(row[i+1])
		}
		t.action[state] = cells
	}

	nonterms, gotoRows, err := readCSV(gotoCSV)
	if err != nil {
		return nil, fmt.Errorf("reading goto table: %w", err)
	}
	t.NonTerminals = nonterms

	for _, row := range gotoRows {
		state, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("goto table: bad state %q: %w", row[0], err)
		}
		cells := make([]int, len(nonterms))
		for i := range nonterms {
			v, err := strconv.Atoi(strings.TrimSpace(row[i+1]))
			if err != nil {
				// an empty/malformed GOTO cell is absent, same as 0
				// (spec.md §4.3: "0 denotes absent").
				v = 0
			}
			cells[i] = v
		}
		t.goTo[state] = cells
	}

	return t, nil
}

func readCSV(r io.Reader) (header []string, rows [][]string, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty table file")
	}
	return all[0][1:], all[1:], nil
}

// parseAction decodes one ACTION-table cell: a letter prefix
// {S,R,A,E} followed by a number (A has none). An empty cell is
// Error(0), per spec.md §9(c).
func parseAction(cell string) Action {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return Action{Kind: ActionError, ErrorCode: 0}
	}

	kind := cell[0]
	rest := strings.TrimSpace(cell[1:])

	switch kind {
	case 'S', 's':
		n, err := strconv.Atoi(rest)
		if err != nil {
			return Action{Kind: ActionError, ErrorCode: 0}
		}
		return Action{Kind: ActionShift, State: n}
	case 'R', 'r':
		n, err := strconv.Atoi(rest)
		if err != nil {
			return Action{Kind: ActionError, ErrorCode: 0}
		}
		return Action{Kind: ActionReduce, Rule: n}
	case 'A', 'a':
		return Action{Kind: ActionAccept}
	case 'E', 'e':
		n, err := strconv.Atoi(rest)
		if err != nil {
			n = 0
		}
		return Action{Kind: ActionError, ErrorCode: n}
	default:
		return Action{Kind: ActionError, ErrorCode: 0}
	}
}

// New builds an empty Tables with the given terminal/nonterminal
// orderings, for use by table generators (package tablegen) that
// construct ACTION/GOTO programmatically instead of loading a CSV.
func New(terminals, nonTerminals []string) *Tables {
	return &Tables{
		Terminals:    terminals,
		NonTerminals: nonTerminals,
		action:       make(map[int][]Action),
		goTo:         make(map[int][]int),
	}
}

// SetAction installs the full ACTION row for state (one Action per
// entry in t.Terminals, in order).
func (t *Tables) SetAction(state int, row []Action) {
	t.action[state] = row
}

// SetGoto installs the full GOTO row for state (one target state per
// entry in t.NonTerminals, in order; 0 means absent).
func (t *Tables) SetGoto(state int, row []int) {
	t.goTo[state] = row
}

// States returns every state number with a recorded ACTION row.
func (t *Tables) States() []int {
	out := make([]int, 0, len(t.action))
	for s := range t.action {
		out = append(out, s)
	}
	return out
}

// WriteActionCSV writes the ACTION table in the schema Load expects: a
// header row of "state" followed by t.Terminals, then one row per
// state in ascending order.
func (t *Tables) WriteActionCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append([]string{"state"}, t.Terminals...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range sortedStates(t.action) {
		row := []string{strconv.Itoa(s)}
		for _, a := range t.action[s] {
			row = append(row, a.String())
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGotoCSV writes the GOTO table in the schema Load expects: a
// header row of "state" followed by t.NonTerminals, then one row per
// state in ascending order. An absent entry (0) is written blank.
func (t *Tables) WriteGotoCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append([]string{"state"}, t.NonTerminals...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range sortedStates(t.goTo) {
		row := []string{strconv.Itoa(s)}
		for _, v := range t.goTo[s] {
			if v == 0 {
				row = append(row, "")
			} else {
				row = append(row, strconv.Itoa(v))
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func sortedStates[V any](m map[int]V) []int {
	out := make([]int, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func (t *Tables) termIndex(terminal string) (int, bool) {
	for i, name := range t.Terminals {
		if name == terminal {
			return i, true
		}
		// §9(a): the CSV header names either "$" or "EOF" for
		// end-of-input; accept either spelling as a match.
		if (name == "$" || strings.EqualFold(name, "eof")) &&
			(terminal == "$" || strings.EqualFold(terminal, "eof")) {
			return i, true
		}
	}
	return 0, false
}

func (t *Tables) nonTermIndex(nonTerminal string) (int, bool) {
	for i, name := range t.NonTerminals {
		if name == nonTerminal {
			return i, true
		}
	}
	return 0, false
}

// Action returns ACTION[state, terminal]. An unknown state or
// terminal is treated as Error(0), never a panic (spec.md §4.3).
func (t *Tables) Action(state int, terminal string) Action {
	row, ok := t.action[state]
	if !ok {
		return Action{Kind: ActionError, ErrorCode: 0}
	}
	idx, ok := t.termIndex(terminal)
	if !ok {
		return Action{Kind: ActionError, ErrorCode: 0}
	}
	return row[idx]
}

// Goto returns GOTO[state, nonTerminal] and whether an entry is
// defined (0 means absent, spec.md §3).
func (t *Tables) Goto(state int, nonTerminal string) (int, bool) {
	row, ok := t.goTo[state]
	if !ok {
		return 0, false
	}
	idx, ok := t.nonTermIndex(nonTerminal)
	if !ok {
		return 0, false
	}
	v := row[idx]
	return v, v != 0
}
