package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/algc-lang/algc/internal/ast"
	"github.com/algc-lang/algc/internal/config"
	"github.com/algc-lang/algc/internal/diag"
	"github.com/algc-lang/algc/internal/messages"
	"github.com/algc-lang/algc/internal/parser"
	"github.com/algc-lang/algc/internal/types"
)

// SourceExt is the extension of Alg source files.
const SourceExt = ".alg"

// Exit codes of the check command.
const (
	exitOK       = 0
	exitFailed   = 1
	exitInternal = 2
)

func runCheck(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := addCommonFlags(fs)
	snippets := fs.Bool("snippets", true, "print the offending source line under each diagnostic")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: algc check [options] [files or directories]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitFailed
	}

	s, err := common.resolve(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "algc: %v\n", err)
		return exitFailed
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "snippets" {
			s.cfg.Snippets = *snippets
		}
	})

	paths := fs.Args()
	if len(paths) == 0 {
		paths = s.cfg.Files
	}
	if len(paths) == 0 {
		fmt.Fprintf(stderr, "algc: no input files (pass files or list them in %s)\n", config.FileName)
		return exitFailed
	}

	files, err := collectSourceFiles(paths)
	if err != nil {
		fmt.Fprintf(stderr, "algc: %v\n", err)
		return exitFailed
	}
	if len(files) == 0 {
		fmt.Fprintf(stderr, "algc: no %s files found\n", SourceExt)
		return exitFailed
	}

	formatter := diag.NewFormatter(stderr, s.cfg.Snippets)
	formatter.SetColor(s.cfg.Color)

	code := exitOK
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(stderr, "algc: %v\n", err)
			code = max(code, exitFailed)
			continue
		}
		formatter.AddSource(file, string(src))

		err = checkSource(string(src), file, s)
		if err == nil {
			fmt.Fprintf(stdout, "%s: %s\n", file, s.localizer.Success())
			continue
		}
		code = max(code, report(err, formatter, s.localizer, stderr))
	}
	return code
}

// checkSource parses and validates one source text.
func checkSource(src, filename string, s *settings) error {
	prog, err := parser.ParseFile(src, parser.WithFilename(filename))
	if err != nil {
		return err
	}
	return types.Validate(prog, s.checkerOptions()...)
}

// report prints err and returns the exit code it calls for.
func report(err error, formatter *diag.Formatter, loc *messages.Localizer, stderr io.Writer) int {
	var semErr *types.Error
	if errors.As(err, &semErr) {
		d := semErr.ToDiagnostic()
		d.Message = loc.Semantic(semErr)
		formatter.Format(d)
		return exitFailed
	}

	var parseErrs parser.ErrorList
	if errors.As(err, &parseErrs) {
		for _, e := range parseErrs {
			formatter.Format(e.ToDiagnostic())
		}
		return exitFailed
	}

	var (
		actionErr *ast.ActionError
		astErr    *types.InternalError
	)
	if errors.As(err, &actionErr) || errors.As(err, &astErr) {
		fmt.Fprintln(stderr, loc.Internal(err))
		return exitInternal
	}

	fmt.Fprintf(stderr, "algc: %v\n", err)
	return exitFailed
}

// collectSourceFiles expands directories in paths to the source files they
// contain. Explicitly named files are kept whatever their extension.
func collectSourceFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		found, err := findSourceFiles(path)
		if err != nil {
			return nil, fmt.Errorf("error finding source files in %s: %w", path, err)
		}
		files = append(files, found...)
	}
	return files, nil
}

// findSourceFiles finds all source files below dir, skipping hidden
// directories.
func findSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() && path != dir && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}

		if !info.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}
