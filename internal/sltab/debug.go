package sltab

import (
	"fmt"
	"sort"

	"github.com/dekarrin/rosed"
)

// String renders the loaded tables as an aligned ACTION/GOTO dump,
// grounded on ictiobus/parse.slrTable.String()'s use of
// rosed.InsertTableOpts for the same purpose.
func (t *Tables) String() string {
	states := make([]int, 0, len(t.action))
	for s := range t.action {
		states = append(states, s)
	}
	sort.Ints(states)

	headers := []string{"S", "|"}
	for _, term := range t.Terminals {
		headers = append(headers, "A:"+term)
	}
	headers = append(headers, "|")
	for _, nt := range t.NonTerminals {
		headers = append(headers, "G:"+nt)
	}

	data := [][]string{headers}
	for _, s := range states {
		row := []string{fmt.Sprintf("%d", s), "|"}
		for i := range t.Terminals {
			row = append(row, t.action[s][i].String())
		}
		row = append(row, "|")
		for i, nt := range t.NonTerminals {
			target, ok := t.Goto(s, nt)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprintf("%d", target))
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
