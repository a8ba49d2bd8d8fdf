/*
Mgolc compiles a single MGol source file into C.

Usage:

	mgolc [flags] [source-file]

The flags are:

	-c, --config FILE
		Read configuration overrides from the given TOML file.

	-o, --output FILE
		Write the generated C source to the given path instead of the
		configured default.

	-t, --trace
		Print a line for every shift/reduce/accept/error step the
		parser takes.

	-i, --interactive
		Like --trace, but pause after each step until Enter is
		pressed. Falls back to direct tracing when stdout is not a
		terminal.

	--cache FILE
		Enable the sqlite parse-table cache at the given path.

	serve
		Start the compile server instead of compiling a single file;
		see "mgolc serve --help".

If no source file is given, the configured default (./test/teste.mgol
unless overridden) is used. On completion mgolc prints a one-line
summary and exits 0 if the compile produced no diagnostics, non-zero
otherwise.
*/
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/dekarrin/mgolc/internal/compiler"
	"github.com/dekarrin/mgolc/internal/config"
	"github.com/dekarrin/mgolc/internal/parse"
	"github.com/dekarrin/mgolc/internal/sltab"
	"github.com/dekarrin/mgolc/internal/srcio"
	"github.com/dekarrin/mgolc/internal/tablecache"
	"github.com/dekarrin/mgolc/internal/version"
	humanize "github.com/dustin/go-humanize"
	isatty "github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitDiagnostics
	ExitInitError
)

var (
	returnCode = ExitSuccess

	flagVersion     = pflag.BoolP("version", "v", false, "Gives the version info")
	flagConfig      = pflag.StringP("config", "c", "", "Read configuration overrides from the given TOML file")
	flagOutput      = pflag.StringP("output", "o", "", "Write the generated C source to the given path")
	flagTrace       = pflag.BoolP("trace", "t", false, "Print every shift/reduce/accept/error step the parser takes")
	flagInteractive = pflag.BoolP("interactive", "i", false, "Pause after each traced step until Enter is pressed")
	flagCache       = pflag.String("cache", "", "Enable the sqlite parse-table cache at the given path")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	args := pflag.Args()
	if len(args) > 0 && args[0] == "serve" {
		runServe(args[1:])
		return
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitInitError
		return
	}
	if *flagOutput != "" {
		cfg.Output = *flagOutput
	}

	sourcePath := cfg.Source
	if len(args) > 0 {
		sourcePath = args[0]
	}

	cachePath := *flagCache
	if cachePath == "" {
		cachePath = cfg.Cache.Path
	}
	tables, err := loadTables(cfg, cachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitInitError
		return
	}

	src, err := srcio.Open(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not open %s: %s\n", sourcePath, err)
		returnCode = ExitInitError
		return
	}
	defer src.Close()

	info, statErr := os.Stat(sourcePath)
	var sourceSize int64
	if statErr == nil {
		sourceSize = info.Size()
	}

	var result compiler.Result
	if *flagTrace || *flagInteractive {
		result = compiler.CompileTraced(src, tables, traceHandler(*flagInteractive))
	} else {
		result = compiler.Compile(src, tables)
	}

	if result.Diagnostics.Empty() {
		if err := os.WriteFile(cfg.Output, []byte(result.CSource), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: could not write %s: %s\n", cfg.Output, err)
			returnCode = ExitInitError
			return
		}
	} else {
		fmt.Print(result.Diagnostics.Report())
	}

	fmt.Printf("%s: %s compilado, %s diagnóstico(s), %s temporária(s)%s\n",
		sourcePath,
		humanize.Bytes(uint64(sourceSize)),
		humanize.Comma(int64(result.Diagnostics.Count())),
		humanize.Comma(int64(result.TempCount)),
		outcomeSuffix(result))

	if !result.Diagnostics.Empty() {
		returnCode = ExitDiagnostics
	}
}

func outcomeSuffix(r compiler.Result) string {
	if r.Diagnostics.Empty() {
		return " (arquivo gerado)"
	}
	return " (nenhum arquivo gerado)"
}

func loadTables(cfg config.Config, cachePath string) (*sltab.Tables, error) {
	if cachePath == "" {
		return loadTablesFromCSV(cfg)
	}

	cache, err := tablecache.Open(cachePath)
	if err != nil {
		return nil, err
	}
	defer cache.Close()

	key, err := tablecache.Key(cfg.ActionTable, cfg.GotoTable)
	if err != nil {
		return nil, err
	}

	if tables, found, err := cache.Get(key); err == nil && found {
		return tables, nil
	}

	tables, err := loadTablesFromCSV(cfg)
	if err != nil {
		return nil, err
	}
	_ = cache.Put(key, tables)
	return tables, nil
}

func loadTablesFromCSV(cfg config.Config) (*sltab.Tables, error) {
	actionF, err := os.Open(cfg.ActionTable)
	if err != nil {
		return nil, fmt.Errorf("open action table: %w", err)
	}
	defer actionF.Close()

	gotoF, err := os.Open(cfg.GotoTable)
	if err != nil {
		return nil, fmt.Errorf("open goto table: %w", err)
	}
	defer gotoF.Close()

	return sltab.Load(actionF, gotoF)
}

func traceHandler(interactive bool) func(parse.TraceEvent) {
	useReadline := interactive && isatty.IsTerminal(os.Stdout.Fd())

	var rl *readline.Instance
	if useReadline {
		var err error
		rl, err = readline.NewEx(&readline.Config{Prompt: "-- press Enter to step --"})
		if err != nil {
			useReadline = false
		}
	}

	stdout := bufio.NewWriter(os.Stdout)
	return func(ev parse.TraceEvent) {
		line := traceLine(ev)
		fmt.Fprintln(stdout, line)
		stdout.Flush()
		if useReadline {
			rl.Readline()
		}
	}
}

func traceLine(ev parse.TraceEvent) string {
	switch ev.Kind {
	case "shift":
		return fmt.Sprintf("shift  -> estado %d, lookahead %s", ev.State, ev.Lookahead)
	case "reduce":
		return fmt.Sprintf("reduce -> regra %d (%s)", ev.Rule.Index, ev.Rule)
	case "accept":
		return "accept"
	default:
		return fmt.Sprintf("erro   -> estado %d, lookahead %s", ev.State, ev.Lookahead)
	}
}
