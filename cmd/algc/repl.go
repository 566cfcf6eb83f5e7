package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/algc-lang/algc/internal/ast"
	"github.com/algc-lang/algc/internal/diag"
	"github.com/algc-lang/algc/internal/lexer"
	"github.com/algc-lang/algc/internal/parser"
	"github.com/algc-lang/algc/internal/types"
)

const (
	historyFile = ".algc_history"
	promptMain  = "alg> "
	promptCont  = "...  "
	banner      = "Alg semantic checker. Enter type and function definitions; :show, :reset, :quit."
)

func runRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	common := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitFailed
	}
	s, err := common.resolve(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "algc: %v\n", err)
		return exitFailed
	}

	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	sess := newSession(s, os.Stdout, os.Stderr)
	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if !sess.eval(code) {
			return exitOK
		}
	}

	return exitOK
}

// readByParseProbe reads lines until they form a parsable chunk or fail for
// a reason other than running out of input.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl-C discards the pending input.
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if incomplete(src) {
			continue
		}
		return src, true
	}
}

// incomplete reports whether src is a prefix of a valid chunk.
func incomplete(src string) bool {
	_, err := parser.ParseFile(src)
	var list parser.ErrorList
	return errors.As(err, &list) && list.Incomplete()
}

// session accumulates the definitions accepted so far. A chunk is accepted
// only if the whole session program stays valid with it.
type session struct {
	settings  *settings
	defs      []*ast.TypeDef
	funcs     []*ast.FunDef
	chunks    int
	formatter *diag.Formatter
	out       io.Writer
	errOut    io.Writer
}

func newSession(s *settings, out, errOut io.Writer) *session {
	formatter := diag.NewFormatter(errOut, s.cfg.Snippets)
	formatter.SetColor(s.cfg.Color)
	return &session{
		settings:  s,
		formatter: formatter,
		out:       out,
		errOut:    errOut,
	}
}

// eval runs one command or chunk of definitions. It returns false when the
// session should end.
func (s *session) eval(code string) bool {
	trimmed := strings.TrimSpace(code)
	if strings.HasPrefix(trimmed, ":") {
		switch strings.ToLower(trimmed) {
		case ":quit", ":q":
			return false
		case ":reset":
			s.defs, s.funcs = nil, nil
			fmt.Fprintln(s.out, "session cleared")
		case ":show":
			fmt.Fprint(s.out, ast.Format(s.program()))
		default:
			fmt.Fprintf(s.out, "unknown command %s. Type :show, :reset or :quit.\n", trimmed)
		}
		return true
	}

	s.chunks++
	name := fmt.Sprintf("<repl:%d>", s.chunks)
	s.formatter.AddSource(name, code)

	chunk, err := parser.ParseFile(code, parser.WithFilename(name))
	if err != nil {
		report(err, s.formatter, s.settings.localizer, s.errOut)
		return true
	}

	// Types come first in a program, so new definitions are merged into the
	// two lists rather than appended as text.
	defs := append(append([]*ast.TypeDef(nil), s.defs...), chunk.Defs...)
	funcs := append(append([]*ast.FunDef(nil), s.funcs...), chunk.Funcs...)
	prog := ast.NewProgram(defs, funcs, lexer.Span{})

	if err := types.Validate(prog, s.settings.checkerOptions()...); err != nil {
		// Semantic errors get the one-line "error <pos>: <message>" form.
		var semErr *types.Error
		if errors.As(err, &semErr) {
			fmt.Fprintln(s.errOut, s.settings.localizer.Located(semErr))
			return true
		}
		report(err, s.formatter, s.settings.localizer, s.errOut)
		return true
	}

	s.defs, s.funcs = defs, funcs
	fmt.Fprintln(s.out, s.settings.localizer.Success())
	return true
}

func (s *session) program() *ast.Program {
	return ast.NewProgram(s.defs, s.funcs, lexer.Span{})
}
