package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/unidoc/unipdf/v3/model"
)

// latexEscaper rewrites characters that are special in LaTeX source.
// Backslash has to go through a placeholder first so the backslashes
// introduced by the other replacements are not escaped again.
var latexEscaper = strings.NewReplacer(
	"\\", "\x00bs\x00",
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
	"<", `\textless{}`,
	">", `\textgreater{}`,
)

// EscapeLaTeX makes a user-supplied string safe to place in LaTeX source.
func EscapeLaTeX(s string) string {
	escaped := latexEscaper.Replace(s)
	return strings.ReplaceAll(escaped, "\x00bs\x00", `\textbackslash{}`)
}

// LaTeXCompiler shells out to pdflatex. The binary and timeout come from
// the environment (PDFLATEX_BIN, PDFLATEX_TIMEOUT_SECONDS) with sane
// defaults.
type LaTeXCompiler struct {
	log     *logrus.Logger
	binary  string
	timeout time.Duration
}

func NewLaTeXCompiler(log *logrus.Logger) *LaTeXCompiler {
	binary := os.Getenv("PDFLATEX_BIN")
	if binary == "" {
		binary = "pdflatex"
	}
	timeout := 30 * time.Second
	if raw := os.Getenv("PDFLATEX_TIMEOUT_SECONDS"); raw != "" {
		if parsed, err := time.ParseDuration(raw + "s"); err == nil && parsed > 0 {
			timeout = parsed
		}
	}
	return &LaTeXCompiler{log: log, binary: binary, timeout: timeout}
}

// Compile writes the LaTeX source to a scratch directory, runs pdflatex
// over it twice so cross-references settle, and returns the PDF bytes.
// On compiler failure the tail of the .log file is included in the error.
func (c *LaTeXCompiler) Compile(ctx context.Context, texSource string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "resume-engine-tex-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	texPath := filepath.Join(tmpDir, "document.tex")
	if err := os.WriteFile(texPath, []byte(texSource), 0644); err != nil {
		return nil, fmt.Errorf("failed to write tex source: %w", err)
	}

	// Two passes, as with any LaTeX document that may reference itself.
	for pass := 1; pass <= 2; pass++ {
		if err := c.runPass(ctx, tmpDir, texPath, pass); err != nil {
			return nil, err
		}
	}

	pdfPath := filepath.Join(tmpDir, "document.pdf")
	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("pdflatex produced no output: %s%s", err, c.logTail(tmpDir))
	}

	if err := verifyPDF(pdf); err != nil {
		return nil, fmt.Errorf("pdflatex output failed verification: %w", err)
	}

	c.log.WithField("bytes", len(pdf)).Debug("compiled pdf")
	return pdf, nil
}

func (c *LaTeXCompiler) runPass(ctx context.Context, tmpDir, texPath string, pass int) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binary,
		"-interaction=nonstopmode",
		"-output-directory="+tmpDir,
		texPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("pdflatex timed out after %s", c.timeout)
		}
		c.log.WithFields(logrus.Fields{
			"pass":  pass,
			"error": err,
		}).Error("pdflatex failed")
		return fmt.Errorf("pdflatex failed (pass %d): %w: %s%s",
			pass, err, tail(string(output), 2000), c.logTail(tmpDir))
	}
	return nil
}

// logTail pulls the end of the pdflatex log for error reporting.
func (c *LaTeXCompiler) logTail(tmpDir string) string {
	logBytes, err := os.ReadFile(filepath.Join(tmpDir, "document.log"))
	if err != nil {
		return ""
	}
	return "\nlatex log:\n" + tail(string(logBytes), 2000)
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}

// verifyPDF confirms the compiler output parses as a PDF with at least
// one page before it is handed back to the client.
func verifyPDF(pdf []byte) error {
	reader, err := model.NewPdfReader(bytes.NewReader(pdf))
	if err != nil {
		return fmt.Errorf("failed to read PDF: %w", err)
	}
	numPages, err := reader.GetNumPages()
	if err != nil {
		return fmt.Errorf("failed to get page count: %w", err)
	}
	if numPages == 0 {
		return fmt.Errorf("PDF has no pages")
	}
	return nil
}
