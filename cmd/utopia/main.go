// SPDX-License-Identifier: Apache-2.0
package main

import (
	stderrors "errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"utopia/internal/compiler"
	"utopia/internal/config"
)

var log = commonlog.GetLogger("utopia.cli")

// errFailed ends the process with status 1 once the failure has already
// been reported.
var errFailed = stderrors.New("failed")

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	sub, args := os.Args[1], os.Args[2:]

	var err error
	switch sub {
	case "help", "-h", "--help":
		usage()
	case "version", "--version":
		fmt.Printf("utopia %s\n", config.Version)
	case "check":
		err = runCheck(args)
	case "tokens":
		err = runTokens(args)
	case "fmt":
		err = runFmt(args)
	case "ast":
		err = runAST(args)
	case "metadata":
		err = runMetadata(args)
	case "types":
		err = runTypes(args)
	case "repl":
		err = runREPL(args)
	case "watch":
		err = runWatch(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand: %s\n", sub)
		usage()
		os.Exit(2)
	}

	if err != nil {
		if !stderrors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		}
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: utopia <command> [flags] [arguments]

Commands:
  check     check source files and report diagnostics
  tokens    print the token stream of a file
  fmt       print a file in canonical form (-w rewrites it)
  ast       dump the syntax tree of a file as JSON
  metadata  list languages, functions and cross-calls of a file
  types     compare types or look up native type names
  repl      start an interactive session
  watch     re-check files whenever they change
  version   print the version

Run 'utopia <command> -h' for the flags of a command.
`)
}

// options are the flags every subcommand shares.
type options struct {
	config  string
	verbose bool
	noColor bool
	logFile string
}

func newFlagSet(name, args string) (*flag.FlagSet, *options) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	o := &options{}
	fs.StringVar(&o.config, "config", "", "path to utopia.yaml (default: nearest one above the working directory)")
	fs.BoolVar(&o.verbose, "v", false, "log progress to stderr")
	fs.BoolVar(&o.noColor, "no-color", false, "disable colored output")
	fs.StringVar(&o.logFile, "log-file", "", "write the log to a file instead of stderr")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: utopia %s [flags] %s\n\nFlags:\n", name, args)
		fs.PrintDefaults()
	}
	return fs, o
}

// loadConfig reads the configuration the flags point at and sets up color
// and logging from it.
func (o *options) loadConfig() (*config.Config, error) {
	if o.noColor {
		color.NoColor = true
	}

	var (
		cfg *config.Config
		err error
	)
	if o.config != "" {
		cfg, err = config.Load(o.config)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			cfg, err = config.Discover(wd)
		}
	}
	if err != nil {
		return nil, err
	}

	verbosity := -4
	if o.verbose || cfg.Debug {
		verbosity = max(cfg.LogLevel, 1)
		if cfg.Debug {
			verbosity = 2
		}
	}
	if o.logFile != "" {
		commonlog.Configure(verbosity, &o.logFile)
	} else {
		commonlog.Configure(verbosity, nil)
	}

	if cfg.Path != "" {
		log.Infof("using configuration %s", cfg.Path)
	}
	return cfg, nil
}

func (o *options) compiler() (*compiler.Compiler, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return compiler.New(cfg)
}

// oneFile returns the single positional argument of fs.
func oneFile(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		fs.Usage()
		return "", errFailed
	}
	return fs.Arg(0), nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
