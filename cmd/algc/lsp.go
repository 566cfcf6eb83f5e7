package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/algc-lang/algc/internal/lsp"
)

func runLSP(args []string) int {
	fs := flag.NewFlagSet("lsp", flag.ContinueOnError)
	common := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitFailed
	}
	s, err := common.resolve(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "algc: %v\n", err)
		return exitFailed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := lsp.NewServer(
		lsp.WithStrictVariables(s.cfg.StrictVariables),
		lsp.WithLanguage(s.tag),
		lsp.WithLogger(log.New(os.Stderr, "algc lsp: ", 0)),
	)
	// stdout carries the protocol; everything else goes to stderr.
	if err := server.Run(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "algc lsp: %v\n", err)
		return exitFailed
	}
	return exitOK
}
