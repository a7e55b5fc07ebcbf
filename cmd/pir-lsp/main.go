// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"pir/internal/lsp"
)

const lsName = "pir" // Name identifier for the language server

var handler protocol.Handler

func main() {
	// Configure debug logging (1 = debug level, nil = default logger)
	commonlog.Configure(1, nil)

	pirHandler := lsp.NewPirHandler()

	handler = protocol.Handler{
		Initialize:            pirHandler.Initialize,
		Initialized:           pirHandler.Initialized,
		Shutdown:              pirHandler.Shutdown,
		SetTrace:              pirHandler.SetTrace,
		TextDocumentDidOpen:   pirHandler.TextDocumentDidOpen,
		TextDocumentDidClose:  pirHandler.TextDocumentDidClose,
		TextDocumentDidChange: pirHandler.TextDocumentDidChange,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting PIR LSP server...")

	// Serve over standard input/output, the transport editors expect.
	if err := s.RunStdio(); err != nil {
		log.Println("Error starting PIR LSP server:", err)
		os.Exit(1)
	}
}
