// Command sdc is the model analyzer's command-line entry point: it
// reads an already-parsed model and a spec document (spec.md §6's
// external-collaborator inputs — this module never parses source text,
// §1 non-goals), runs the standard pipeline, and prints the resulting
// JSON listing.
//
// Grounded on funvibe/funxy's cmd/funxy/main.go control flow: raw
// os.Args parsing (no flag package), a sequence of handleX() functions
// each returning whether they handled the invocation, and a top-level
// panic-recovery wrapper in main that re-panics under DEBUG=1 for a
// stack trace and otherwise prints a one-line "this is a bug" message.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/sdforge/sdc/internal/analyzer"
	"github.com/sdforge/sdc/internal/cache"
	"github.com/sdforge/sdc/internal/canon"
	"github.com/sdforge/sdc/internal/config"
	"github.com/sdforge/sdc/internal/extdata"
	"github.com/sdforge/sdc/internal/parsetree"
	"github.com/sdforge/sdc/internal/speccheck"
)

var isTTY = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <model.json> <spec.json> [extdata.json] [--cache path] [--dump-options path] [--options path]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s name <identifier>\n", os.Args[0])
}

// handleName implements the "sdc name <identifier>" subcommand: print
// an identifier's canonical form and its round-tripped display form
// (spec.md §6's cName/vensimName, exposed here as a quick CLI check).
func handleName() bool {
	if len(os.Args) < 2 || os.Args[1] != "name" {
		return false
	}
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: sdc name <identifier>")
		os.Exit(1)
	}
	source := os.Args[2]
	id := canon.Name(source)
	fmt.Printf("canonical: %s\n", id)
	fmt.Printf("display:   %s\n", canon.Decanonicalize(id))
	return true
}

// handleDumpOptions implements --dump-options: load the options file
// (or defaults) and print it as YAML, without running the pipeline.
func handleDumpOptions(args []string) bool {
	idx := indexOfFlag(args, "--dump-options")
	if idx < 0 {
		return false
	}
	opts := config.DefaultOptions()
	if idx+1 < len(args) && !strings.HasPrefix(args[idx+1], "--") {
		loaded, err := config.LoadOptions(args[idx+1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		opts = loaded
	}
	fmt.Printf("reduction: %s\nverbose: %v\ncacheDir: %s\n", opts.Reduction, opts.Verbose, opts.CacheDir)
	return true
}

func indexOfFlag(args []string, name string) int {
	for i, a := range args {
		if a == name {
			return i
		}
	}
	return -1
}

func flagValue(args []string, name string) (string, bool) {
	idx := indexOfFlag(args, name)
	if idx < 0 || idx+1 >= len(args) {
		return "", false
	}
	return args[idx+1], true
}

// positionalArgs strips every recognized --flag and its value from
// args, returning what remains in order.
func positionalArgs(args []string) []string {
	var out []string
	skip := false
	for i, a := range args {
		if skip {
			skip = false
			continue
		}
		switch a {
		case "--cache", "--dump-options", "--options":
			if i+1 < len(args) {
				skip = true
			}
			continue
		}
		out = append(out, a)
	}
	return out
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func run() int {
	args := os.Args[1:]

	opts := config.DefaultOptions()
	if optsPath, ok := flagValue(args, "--options"); ok {
		loaded, err := config.LoadOptions(optsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return 1
		}
		opts = loaded
	}

	pos := positionalArgs(args)
	if len(pos) < 2 {
		usage()
		return 1
	}
	modelPath, specPath := pos[0], pos[1]

	var model parsetree.Model
	if err := readJSON(modelPath, &model); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	var doc speccheck.Document
	if err := readJSON(specPath, &doc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	var ext extdata.ExtData
	if len(pos) >= 3 {
		if err := readJSON(pos[2], &ext); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return 1
		}
	}

	modelDir, _ := filepath.Abs(filepath.Dir(modelPath))

	var store *cache.Store
	var contentHash string
	if cachePath, ok := flagValue(args, "--cache"); ok {
		modelBytes, _ := os.ReadFile(modelPath)
		specBytes, _ := os.ReadFile(specPath)
		contentHash = cache.ContentHash(modelBytes, specBytes)

		store = cache.New()
		if err := store.Open(cachePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return 1
		}
		defer store.Close()
		if err := store.InitSchema(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return 1
		}
		if cached, ok, err := store.Get(contentHash); err == nil && ok {
			fmt.Println(string(cached))
			return 0
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFor(opts.Verbose),
	}))

	a := analyzer.New(opts)
	a.Logger = logger

	start := time.Now()
	ctx := a.Analyze(&model, &doc, ext, modelDir)
	elapsed := time.Since(start)

	if ctx.Fatal != nil {
		printDiagnostic(ctx.Fatal)
		for _, d := range ctx.Diagnostics.All() {
			if d != ctx.Fatal {
				printDiagnostic(d)
			}
		}
		return 1
	}
	for _, d := range ctx.Diagnostics.All() {
		printDiagnostic(d)
	}

	listingJSON, err := ctx.JSONList()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	fmt.Println(string(listingJSON))
	fmt.Fprintf(os.Stderr, "%s variables, %s dimensions analyzed in %s\n",
		humanize.Comma(int64(len(ctx.VarIndex))),
		humanize.Comma(int64(len(ctx.Document.Dimensions))),
		elapsed.Round(time.Millisecond))

	if store != nil {
		if err := store.Set(contentHash, listingJSON, time.Now().Unix()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to cache listing: %s\n", err)
		}
	}

	return 0
}

func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

func printDiagnostic(d interface{ Error() string }) {
	if isTTY {
		fmt.Fprintf(os.Stderr, "\x1b[31m%s\x1b[0m\n", d.Error())
		return
	}
	fmt.Fprintln(os.Stderr, d.Error())
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if handleName() {
		return
	}
	if handleDumpOptions(os.Args[1:]) {
		return
	}

	os.Exit(run())
}
