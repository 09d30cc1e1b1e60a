// SPDX-License-Identifier: Apache-2.0
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/user"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"utopia/internal/ast"
	"utopia/internal/compiler"
	"utopia/internal/errors"
	"utopia/internal/parser"
	"utopia/repl"
)

func runCheck(args []string) error {
	fs, o := newFlagSet("check", "<file.utopia>...")
	quiet := fs.Bool("q", false, "print diagnostics only")
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		fs.Usage()
		return errFailed
	}

	c, err := o.compiler()
	if err != nil {
		return err
	}

	failed := false
	for _, path := range fs.Args() {
		ok, err := check(os.Stdout, c, path, *quiet)
		if err != nil {
			return err
		}
		failed = failed || !ok
	}
	if failed {
		return errFailed
	}
	return nil
}

// check analyzes one file and writes its diagnostics to w. It reports
// whether the file is free of errors; err is set only when the file cannot
// be read.
func check(w io.Writer, c *compiler.Compiler, path string, quiet bool) (bool, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading source: %w", err)
	}

	result, _ := c.Analyze(path, string(source))
	reporter := errors.NewErrorReporter(path, string(source))
	fmt.Fprint(w, reporter.FormatAll(result.Diagnostics))

	formattedDuration := formatDuration(result.Duration)
	if result.HasErrors() {
		fmt.Fprint(w, reporter.FormatSummary(result.Diagnostics))
		fmt.Fprintln(w, color.RedString("Check failed after %s", formattedDuration))
		return false, nil
	}
	if !quiet {
		fmt.Fprint(w, reporter.FormatSummary(result.Diagnostics))
		fmt.Fprintln(w, color.GreenString("Checked %s in %s", path, formattedDuration))
	}
	return true, nil
}

func runTokens(args []string) error {
	fs, o := newFlagSet("tokens", "<file.utopia>")
	all := fs.Bool("all", false, "include newline and end-of-file tokens")
	_ = fs.Parse(args)
	path, err := oneFile(fs)
	if err != nil {
		return err
	}
	if _, err := o.loadConfig(); err != nil {
		return err
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}
	tokens, err := parser.Tokenize(string(source))
	if err != nil {
		fmt.Print(errors.NewErrorReporter(path, string(source)).FormatError(errors.FromError(err)))
		return errFailed
	}
	printTokens(os.Stdout, tokens, *all)
	return nil
}

func printTokens(w io.Writer, tokens []parser.Token, all bool) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, tok := range tokens {
		if !all && (tok.Type == parser.NEWLINE || tok.Type == parser.EOF) {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%q\n", tok.Span, tok.Type, tok.Lexeme)
	}
	tw.Flush()
}

// parseFile reads and parses path, reporting a failure on stdout.
func parseFile(path string) (*ast.Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	program, err := parser.ParseSource(string(source))
	if err != nil {
		fmt.Print(errors.NewErrorReporter(path, string(source)).FormatError(errors.FromError(err)))
		return nil, errFailed
	}
	return program, nil
}

func runFmt(args []string) error {
	fs, o := newFlagSet("fmt", "<file.utopia>")
	write := fs.Bool("w", false, "write the result back to the file")
	_ = fs.Parse(args)
	path, err := oneFile(fs)
	if err != nil {
		return err
	}
	if _, err := o.loadConfig(); err != nil {
		return err
	}

	program, err := parseFile(path)
	if err != nil {
		return err
	}
	formatted := ast.Print(program)
	if !*write {
		fmt.Print(formatted)
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Infof("formatted %s", path)
	return nil
}

func runAST(args []string) error {
	fs, o := newFlagSet("ast", "<file.utopia>")
	_ = fs.Parse(args)
	path, err := oneFile(fs)
	if err != nil {
		return err
	}
	if _, err := o.loadConfig(); err != nil {
		return err
	}

	program, err := parseFile(path)
	if err != nil {
		return err
	}
	data, err := ast.MarshalJSON(program)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runMetadata(args []string) error {
	fs, o := newFlagSet("metadata", "<file.utopia>")
	asJSON := fs.Bool("json", false, "print the metadata as JSON")
	_ = fs.Parse(args)
	path, err := oneFile(fs)
	if err != nil {
		return err
	}
	if _, err := o.loadConfig(); err != nil {
		return err
	}

	program, err := parseFile(path)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeMetadataJSON(os.Stdout, program.Metadata)
	}
	printMetadata(os.Stdout, program.Metadata)
	return nil
}

func printMetadata(w io.Writer, meta ast.Metadata) {
	bold := color.New(color.Bold).SprintFunc()
	section := func(title string, lines []string) {
		fmt.Fprintf(w, "%s (%d)\n", bold(title), len(lines))
		for _, line := range lines {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}

	section("languages", meta.Languages)

	functions := make([]string, 0, len(meta.Functions))
	for _, fi := range meta.Functions {
		line := fi.Signature()
		if fi.IsExported {
			line += " (exported)"
		}
		functions = append(functions, line)
	}
	section("functions", functions)

	calls := make([]string, 0, len(meta.CrossCalls))
	for _, cc := range meta.CrossCalls {
		calls = append(calls, fmt.Sprintf("%s  %s::%s/%d", cc.Span, cc.Language, cc.Function, cc.ArgCount))
	}
	section("cross-calls", calls)

	section("imports", meta.Imports)
	section("exports", meta.Exports)
}

type functionJSON struct {
	Language   string   `json:"language"`
	Name       string   `json:"name"`
	Signature  string   `json:"signature"`
	Parameters []string `json:"parameters"`
	Exported   bool     `json:"exported"`
}

type crossCallJSON struct {
	Language string `json:"language"`
	Function string `json:"function"`
	Args     int    `json:"args"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

type metadataJSON struct {
	Languages  []string        `json:"languages"`
	Functions  []functionJSON  `json:"functions"`
	CrossCalls []crossCallJSON `json:"cross_calls"`
	Imports    []string        `json:"imports"`
	Exports    []string        `json:"exports"`
}

func writeMetadataJSON(w io.Writer, meta ast.Metadata) error {
	out := metadataJSON{
		Languages:  nonNil(meta.Languages),
		Functions:  []functionJSON{},
		CrossCalls: []crossCallJSON{},
		Imports:    nonNil(meta.Imports),
		Exports:    nonNil(meta.Exports),
	}
	for _, fi := range meta.Functions {
		params := make([]string, len(fi.Parameters))
		for i, p := range fi.Parameters {
			params[i] = p.Name
		}
		out.Functions = append(out.Functions, functionJSON{
			Language:   fi.Language,
			Name:       fi.Name,
			Signature:  fi.Signature(),
			Parameters: params,
			Exported:   fi.IsExported,
		})
	}
	for _, cc := range meta.CrossCalls {
		out.CrossCalls = append(out.CrossCalls, crossCallJSON{
			Language: cc.Language,
			Function: cc.Function,
			Args:     cc.ArgCount,
			Line:     cc.Span.Line,
			Column:   cc.Span.Column,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func runREPL(args []string) error {
	fs, o := newFlagSet("repl", "")
	_ = fs.Parse(args)
	c, err := o.compiler()
	if err != nil {
		return err
	}

	name := "there"
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	fmt.Printf("Welcome to the Utopia REPL, %s!\n", strings.TrimSpace(name))
	fmt.Println("Enter code; :help lists the commands.")
	repl.Start(os.Stdin, os.Stdout, c)
	return nil
}
