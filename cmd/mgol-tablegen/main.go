/*
Mgol-tablegen derives the SLR(1) ACTION/GOTO tables for the MGol
grammar and writes them out as the two CSV files mgolc expects.

Usage:

	mgol-tablegen [flags]

The flags are:

	-a, --action FILE
		Write the ACTION table to the given path. Defaults to
		"./tables/action_table.csv".

	-g, --goto FILE
		Write the GOTO table to the given path. Defaults to
		"./tables/goto_table.csv".

Any grammar conflict found during table construction is printed to
stderr as a warning; the tool still writes the tables it built, using
whichever action each conflict resolved to.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dekarrin/mgolc/internal/mgrammar"
	"github.com/dekarrin/mgolc/internal/tablegen"
	"github.com/spf13/pflag"
)

var (
	flagAction = pflag.StringP("action", "a", "./tables/action_table.csv", "Write the ACTION table to the given path")
	flagGoto   = pflag.StringP("goto", "g", "./tables/goto_table.csv", "Write the GOTO table to the given path")
)

func main() {
	pflag.Parse()

	tables, conflicts, err := tablegen.Build(mgrammar.New())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not build tables: %s\n", err)
		os.Exit(1)
	}
	for _, c := range conflicts {
		fmt.Fprintf(os.Stderr, "WARN: conflict in state %d on %s: kept %s over %s\n", c.State, c.Terminal, c.Kept, c.Rejected)
	}

	if err := writeCSV(*flagAction, tables.WriteActionCSV); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
	if err := writeCSV(*flagGoto, tables.WriteGotoCSV); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s and %s (%d states)\n", *flagAction, *flagGoto, len(tables.States()))
}

func writeCSV(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
