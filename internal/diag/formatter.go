package diag

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Formatter prints diagnostics, optionally with source code snippets.
type Formatter struct {
	out         io.Writer
	sourceCache map[string]string // Cache of source text by filename
	snippets    bool
	color       bool
}

// NewFormatter creates a formatter writing to out. When snippets is false only
// the header and location line are printed.
func NewFormatter(out io.Writer, snippets bool) *Formatter {
	return &Formatter{
		out:         out,
		sourceCache: make(map[string]string),
		snippets:    snippets,
	}
}

// AddSource registers in-memory source text for filename (used by the REPL,
// where there is no file to read back).
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

// SetColor enables ANSI colors for severities and underlines.
func (f *Formatter) SetColor(on bool) {
	f.color = on
}

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[1;31m"
	ansiYellow = "\x1b[1;33m"
	ansiBlue   = "\x1b[1;34m"
)

// paint wraps text in an ANSI color when colors are enabled.
func (f *Formatter) paint(color, text string) string {
	if !f.color || text == "" {
		return text
	}
	return color + text + ansiReset
}

func severityColor(sev Severity) string {
	switch sev {
	case SeverityWarning:
		return ansiYellow
	case SeverityNote:
		return ansiBlue
	default:
		return ansiRed
	}
}

// LoadSource loads source code for a file (cached).
func (f *Formatter) LoadSource(filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// Format prints a diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	spans := f.collectSpans(d)
	if !f.snippets || len(spans) == 0 {
		f.formatSimple(d)
		return
	}

	filename := spans[0].Span.Filename
	src, err := f.LoadSource(filename)
	if err != nil || src == "" {
		f.formatSimple(d)
		return
	}

	f.printHeader(d)
	f.printFileSpans(src, spans)
	f.printHelp(d)
}

// collectSpans collects all spans from the diagnostic, prioritizing LabeledSpans.
func (f *Formatter) collectSpans(d Diagnostic) []LabeledSpan {
	if len(d.LabeledSpans) > 0 {
		return d.LabeledSpans
	}
	if d.Span.IsValid() {
		return []LabeledSpan{{Span: d.Span, Style: "primary"}}
	}
	return nil
}

// printHeader prints the error header (error[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	sev := d.Severity
	if sev == "" {
		sev = SeverityError
	}
	severity := f.paint(severityColor(sev), string(sev))

	if d.Code != "" {
		fmt.Fprintf(f.out, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", severity, d.Message)
	}
}

// printFileSpans prints source lines with underlines for the spans on them.
func (f *Formatter) printFileSpans(src string, spans []LabeledSpan) {
	spans = append([]LabeledSpan(nil), spans...)
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Span.Line != spans[j].Span.Line {
			return spans[i].Span.Line < spans[j].Span.Line
		}
		return spans[i].Span.Column < spans[j].Span.Column
	})

	lines := strings.Split(src, "\n")
	spansByLine := make(map[int][]LabeledSpan)
	for _, span := range spans {
		line := span.Span.Line
		if line > 0 && line <= len(lines) {
			spansByLine[line] = append(spansByLine[line], span)
		}
	}
	if len(spansByLine) == 0 {
		return
	}

	startLine := spans[0].Span.Line
	endLine := spans[len(spans)-1].Span.Line

	// One line of context on each side
	contextStart := max(1, startLine-1)
	contextEnd := min(len(lines), endLine+1)
	width := len(fmt.Sprintf("%d", contextEnd))
	gutter := strings.Repeat(" ", width)

	fmt.Fprintf(f.out, "  --> %s\n", spans[0].Span)
	fmt.Fprintf(f.out, " %s |\n", gutter)

	for lineNum := contextStart; lineNum <= contextEnd; lineNum++ {
		content := strings.TrimRight(lines[lineNum-1], "\r")
		fmt.Fprintf(f.out, " %*d | %s\n", width, lineNum, content)
		if lineSpans := spansByLine[lineNum]; len(lineSpans) > 0 {
			f.printUnderlines(gutter, content, lineSpans)
		}
	}

	fmt.Fprintf(f.out, " %s |\n", gutter)
}

// printUnderlines prints ^ under primary spans and ~ under secondary ones.
func (f *Formatter) printUnderlines(gutter string, content string, spans []LabeledSpan) {
	width := len([]rune(content))
	for _, span := range spans {
		width = max(width, span.Span.Column)
	}
	underline := []rune(strings.Repeat(" ", width))

	mark := func(span LabeledSpan, ch rune) {
		start := max(0, span.Span.Column-1)
		end := min(len(underline), start+max(1, span.Span.End-span.Span.Start))
		for i := start; i < end; i++ {
			if underline[i] == ' ' {
				underline[i] = ch
			}
		}
	}
	for _, span := range spans {
		if span.Style == "primary" {
			mark(span, '^')
		}
	}
	for _, span := range spans {
		if span.Style == "secondary" {
			mark(span, '~')
		}
	}

	line := f.paint(ansiRed, strings.TrimRight(string(underline), " "))
	var labels []string
	for _, span := range spans {
		if span.Label != "" {
			labels = append(labels, span.Label)
		}
	}
	if len(labels) > 0 {
		line += " " + strings.Join(labels, "; ")
	}
	fmt.Fprintf(f.out, " %s | %s\n", gutter, line)
}

// printHelp prints notes and help text.
func (f *Formatter) printHelp(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.out, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.out, "help: %s\n", d.Help)
	}
}

// formatSimple formats a diagnostic without source code.
func (f *Formatter) formatSimple(d Diagnostic) {
	f.printHeader(d)
	if d.Span.IsValid() {
		fmt.Fprintf(f.out, "  --> %s\n", d.Span)
	}
	f.printHelp(d)
}
