// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"utopia/internal/compiler"
	"utopia/internal/config"
	"utopia/internal/lsp"
)

const lsName = "utopia"

var log = commonlog.GetLogger("utopia.lsp.server")

func main() {
	verbosity := flag.Int("verbosity", 1, "log verbosity (-4 silences the log, 2 is debug)")
	logFile := flag.String("log-file", "", "write the log to a file instead of stderr")
	debug := flag.Bool("debug", false, "log every JSON-RPC message")
	flag.Parse()

	// stdout carries the protocol, so the log goes to stderr or a file
	if *logFile != "" {
		commonlog.Configure(*verbosity, logFile)
	} else {
		commonlog.Configure(*verbosity, nil)
	}

	// The client may name a workspace root later; until then the nearest
	// utopia.yaml above the working directory applies.
	cfg := config.Default()
	if wd, err := os.Getwd(); err == nil {
		if found, err := config.Discover(wd); err == nil {
			cfg = found
		} else {
			log.Warningf("ignoring configuration: %v", err)
		}
	}
	c, err := compiler.New(cfg)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	utopiaHandler, err := lsp.NewHandler(c)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	handler := protocol.Handler{
		Initialize:                     utopiaHandler.Initialize,
		Initialized:                    utopiaHandler.Initialized,
		Shutdown:                       utopiaHandler.Shutdown,
		SetTrace:                       utopiaHandler.SetTrace,
		TextDocumentDidOpen:            utopiaHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           utopiaHandler.TextDocumentDidClose,
		TextDocumentDidChange:          utopiaHandler.TextDocumentDidChange,
		TextDocumentCompletion:         utopiaHandler.TextDocumentCompletion,
		TextDocumentHover:              utopiaHandler.TextDocumentHover,
		TextDocumentSemanticTokensFull: utopiaHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, *debug)

	log.Infof("starting %s language server %s", lsName, config.Version)
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %v", err)
		os.Exit(1)
	}
}
