// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"utopia/grammar"
	"utopia/internal/types"
)

func runTypes(args []string) error {
	if len(args) == 0 {
		typesUsage()
		return errFailed
	}
	switch args[0] {
	case "compat":
		return runTypesCompat(args[1:])
	case "native":
		return runTypesNative(args[1:])
	case "spell":
		return runTypesSpell(args[1:])
	case "-h", "--help", "help":
		typesUsage()
		return nil
	}
	fmt.Fprintf(os.Stderr, "unknown types command: %s\n", args[0])
	typesUsage()
	return errFailed
}

func typesUsage() {
	fmt.Fprint(os.Stderr, `Usage:
  utopia types compat [--lang <language>] "<type A>" "<type B>"
      report whether a value of type A can be passed where B is expected
  utopia types native <language> <native name>
      show the canonical type of a native type name
  utopia types spell <language> "<type>"
      show how a language spells a canonical type
`)
}

// parseTypeArg parses a command-line type annotation, reporting syntax
// errors with a caret.
func parseTypeArg(w io.Writer, source string) (types.Type, error) {
	t, err := grammar.ParseType(source)
	if err != nil {
		grammar.ReportError(w, source, err)
		return nil, errFailed
	}
	return t, nil
}

func runTypesCompat(args []string) error {
	fs, o := newFlagSet("types compat", `"<type A>" "<type B>"`)
	lang := fs.String("lang", "", "ask the adapter of this language instead of the registry")
	_ = fs.Parse(args)
	if fs.NArg() != 2 {
		fs.Usage()
		return errFailed
	}
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	registry, err := cfg.Registry()
	if err != nil {
		return err
	}

	ok, err := compat(os.Stdout, registry, *lang, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}
	if !ok {
		return errFailed
	}
	return nil
}

func compat(w io.Writer, registry *types.Registry, lang, a, b string) (bool, error) {
	from, err := parseTypeArg(w, a)
	if err != nil {
		return false, err
	}
	to, err := parseTypeArg(w, b)
	if err != nil {
		return false, err
	}

	var ok bool
	if lang != "" {
		from, to = inLanguage(from, lang), inLanguage(to, lang)
		ok = registry.CanConvert(lang, from, to)
	} else {
		ok = registry.Compatible(from, to)
	}

	fmt.Fprintf(w, "%s -> %s: ", describe(registry, from), describe(registry, to))
	if ok {
		fmt.Fprintln(w, color.GreenString("compatible"))
	} else {
		fmt.Fprintln(w, color.RedString("incompatible"))
	}
	return ok, nil
}

// inLanguage reads a bare name such as `int` as a native type of lang.
func inLanguage(t types.Type, lang string) types.Type {
	if g, ok := t.(types.Generic); ok {
		return types.LanguageSpecific{Language: lang, Name: g.Name}
	}
	return t
}

// describe shows a type with its cross-language category, if it has one.
func describe(registry *types.Registry, t types.Type) string {
	if category := registry.Category(t); category != "" {
		return fmt.Sprintf("%s [%s]", t, category)
	}
	return t.String()
}

func runTypesNative(args []string) error {
	fs, o := newFlagSet("types native", "<language> <native name>")
	_ = fs.Parse(args)
	if fs.NArg() != 2 {
		fs.Usage()
		return errFailed
	}
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	registry, err := cfg.Registry()
	if err != nil {
		return err
	}
	return native(os.Stdout, registry, fs.Arg(0), fs.Arg(1))
}

func native(w io.Writer, registry *types.Registry, lang, name string) error {
	adapter, ok := registry.Adapter(lang)
	if !ok {
		return fmt.Errorf("no adapter for language %q (known: %v)", lang, registry.Languages())
	}
	t, ok := adapter.NativeToCanonical(name)
	if !ok {
		return fmt.Errorf("%s has no type named %q", lang, name)
	}
	fmt.Fprintf(w, "%s::%s = %s\n", lang, name, t)
	return nil
}

func runTypesSpell(args []string) error {
	fs, o := newFlagSet("types spell", `<language> "<type>"`)
	_ = fs.Parse(args)
	if fs.NArg() != 2 {
		fs.Usage()
		return errFailed
	}
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	registry, err := cfg.Registry()
	if err != nil {
		return err
	}
	return spell(os.Stdout, registry, fs.Arg(0), fs.Arg(1))
}

func spell(w io.Writer, registry *types.Registry, lang, source string) error {
	adapter, ok := registry.Adapter(lang)
	if !ok {
		return fmt.Errorf("no adapter for language %q (known: %v)", lang, registry.Languages())
	}
	t, err := parseTypeArg(w, source)
	if err != nil {
		return err
	}
	name, ok := adapter.CanonicalToNative(t)
	if !ok {
		return fmt.Errorf("%s has no spelling for %s", lang, t)
	}
	fmt.Fprintf(w, "%s in %s: %s\n", t, lang, name)
	return nil
}
