package infrastructure

import (
	"fmt"
	"strings"

	"resume-engine/domain"
)

// Renderers substitute document data into a LaTeX skeleton. Each
// template ships a template.tex whose section hooks are empty
// \newcommand definitions; rendering replaces those definitions with
// generated section commands, leaving the rest of the skeleton intact.
type (
	ResumeRenderFunc      func(skeleton string, data *domain.ResumeData) string
	CoverLetterRenderFunc func(skeleton string, data *domain.CoverLetterData) string
)

var resumeRenderers = map[string]ResumeRenderFunc{
	"minimalist": renderMinimalistResume,
	"twocolumn":  renderTwocolumnResume,
}

var coverLetterRenderers = map[string]CoverLetterRenderFunc{
	"classic": renderClassicCoverLetter,
}

// fillAnchor swaps the empty hook definition for the generated content.
// An empty content string removes the hook so the section disappears
// from the document.
func fillAnchor(skeleton, anchor, content string) string {
	hook := fmt.Sprintf(`\newcommand{\%s}{}`, anchor)
	return strings.Replace(skeleton, hook, content, 1)
}

// cmd builds a LaTeX command invocation: cmd("foo", "a", "b") -> \foo{a}{b}.
// Arguments must already be escaped.
func cmd(name string, args ...string) string {
	var b strings.Builder
	b.WriteString(`\`)
	b.WriteString(name)
	for _, arg := range args {
		b.WriteString("{")
		b.WriteString(arg)
		b.WriteString("}")
	}
	return b.String()
}

// itemize renders detail lines as a complete itemize environment, or
// nothing when there are no details. Emitting the environment from here
// keeps empty \begin{itemize} blocks out of the compiled source.
func itemize(details []string) string {
	if len(details) == 0 {
		return ""
	}
	items := make([]string, 0, len(details))
	for _, detail := range details {
		items = append(items, `            \item `+EscapeLaTeX(detail))
	}
	return "\n        \\begin{itemize}[leftmargin=*,nosep]\n" +
		strings.Join(items, "\n") +
		"\n        \\end{itemize}\n    "
}

// dateRange formats "start -- end", defaulting the end to Present.
func dateRange(start, end string) string {
	if end == "" {
		end = "Present"
	}
	return EscapeLaTeX(start) + " -- " + EscapeLaTeX(end)
}

func escapeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, EscapeLaTeX(v))
	}
	return out
}
