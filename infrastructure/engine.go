package infrastructure

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"resume-engine/domain"
)

// PDFCompiler abstracts the LaTeX toolchain so handler tests can run
// without a TeX distribution installed.
type PDFCompiler interface {
	Compile(ctx context.Context, texSource string) ([]byte, error)
}

// Artifact is one generated document ready to be sent to the client.
type Artifact struct {
	Bytes       []byte
	Filename    string
	ContentType string
}

// Engine ties the template registry, the per-template renderers and the
// output-format adapters together. It is stateless across requests.
type Engine struct {
	log      *logrus.Logger
	registry *TemplateRegistry
	pdf      PDFCompiler
	docx     *DocxWriter
}

func NewEngine(log *logrus.Logger, registry *TemplateRegistry, pdf PDFCompiler, docx *DocxWriter) *Engine {
	return &Engine{log: log, registry: registry, pdf: pdf, docx: docx}
}

// Registry exposes the underlying template registry.
func (e *Engine) Registry() *TemplateRegistry {
	return e.registry
}

// AvailableTemplates lists templates that both exist on disk and have a
// renderer compiled in, keyed by document type.
func (e *Engine) AvailableTemplates() map[string][]string {
	out := make(map[string][]string)
	for category, names := range e.registry.Available() {
		supported := make([]string, 0, len(names))
		for _, name := range names {
			if e.hasRenderer(domain.DocumentType(category), name) {
				supported = append(supported, name)
			}
		}
		sort.Strings(supported)
		out[category] = supported
	}
	return out
}

// TemplatesFor lists the usable templates for one document type.
func (e *Engine) TemplatesFor(docType domain.DocumentType) ([]string, error) {
	names, err := e.registry.TemplatesFor(docType)
	if err != nil {
		return nil, err
	}
	supported := make([]string, 0, len(names))
	for _, name := range names {
		if e.hasRenderer(docType, name) {
			supported = append(supported, name)
		}
	}
	return supported, nil
}

// HasTemplate reports whether a template is usable for the document type.
func (e *Engine) HasTemplate(docType domain.DocumentType, name string) bool {
	return e.registry.Has(docType, name) && e.hasRenderer(docType, name)
}

func (e *Engine) hasRenderer(docType domain.DocumentType, name string) bool {
	switch docType {
	case domain.DocumentTypeResume:
		_, ok := resumeRenderers[name]
		return ok
	case domain.DocumentTypeCoverLetter:
		_, ok := coverLetterRenderers[name]
		return ok
	default:
		return false
	}
}

// Validate runs every request check short of rendering: output format,
// document type, template existence and data validation. The async
// endpoint uses it so bad requests fail at submit time, not in the
// worker.
func (e *Engine) Validate(req *domain.GenerateRequest) error {
	format := req.Format
	if format == "" {
		format = domain.FormatPDF
	}
	if !format.Valid() {
		return domain.NewValidationError("unsupported format: %s", req.Format)
	}
	if _, err := e.registry.TemplatesFor(req.DocumentType); err != nil {
		return err
	}
	if !e.HasTemplate(req.DocumentType, req.Template) {
		return fmt.Errorf("%w: %s for %s", ErrUnknownTemplate, req.Template, req.DocumentType)
	}

	switch req.DocumentType {
	case domain.DocumentTypeResume:
		_, err := domain.DecodeResumeData(req.Data)
		return err
	case domain.DocumentTypeCoverLetter:
		if format == domain.FormatDOCX {
			return ErrDocxUnsupported
		}
		_, err := domain.DecodeCoverLetterData(req.Data)
		return err
	default:
		return fmt.Errorf("%w: %s", ErrUnknownDocumentType, req.DocumentType)
	}
}

// Generate validates the request payload, renders the selected template
// and returns the finished document. Validation always happens before
// any renderer or external compiler runs.
func (e *Engine) Generate(ctx context.Context, req *domain.GenerateRequest) (*Artifact, error) {
	format := req.Format
	if format == "" {
		format = domain.FormatPDF
	}
	if !format.Valid() {
		return nil, domain.NewValidationError("unsupported format: %s", req.Format)
	}

	if _, err := e.registry.TemplatesFor(req.DocumentType); err != nil {
		return nil, err
	}
	if !e.HasTemplate(req.DocumentType, req.Template) {
		return nil, fmt.Errorf("%w: %s for %s", ErrUnknownTemplate, req.Template, req.DocumentType)
	}

	switch req.DocumentType {
	case domain.DocumentTypeResume:
		data, err := domain.DecodeResumeData(req.Data)
		if err != nil {
			return nil, err
		}
		return e.generateResume(ctx, req.Template, format, data)
	case domain.DocumentTypeCoverLetter:
		data, err := domain.DecodeCoverLetterData(req.Data)
		if err != nil {
			return nil, err
		}
		return e.generateCoverLetter(ctx, req.Template, format, data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocumentType, req.DocumentType)
	}
}

func (e *Engine) generateResume(ctx context.Context, template string, format domain.OutputFormat, data *domain.ResumeData) (*Artifact, error) {
	filename := artifactFilename(domain.DocumentTypeResume, data.PersonalInfo.Name, format)

	if format == domain.FormatDOCX {
		out, err := e.docx.GenerateResume(e.registry.DocxPath(domain.DocumentTypeResume, template), data)
		if err != nil {
			return nil, err
		}
		return &Artifact{Bytes: out, Filename: filename, ContentType: format.ContentType()}, nil
	}

	skeleton, err := e.readSkeleton(domain.DocumentTypeResume, template)
	if err != nil {
		return nil, err
	}
	pdf, err := e.pdf.Compile(ctx, resumeRenderers[template](skeleton, data))
	if err != nil {
		return nil, err
	}
	return &Artifact{Bytes: pdf, Filename: filename, ContentType: format.ContentType()}, nil
}

func (e *Engine) generateCoverLetter(ctx context.Context, template string, format domain.OutputFormat, data *domain.CoverLetterData) (*Artifact, error) {
	if format == domain.FormatDOCX {
		return nil, ErrDocxUnsupported
	}

	skeleton, err := e.readSkeleton(domain.DocumentTypeCoverLetter, template)
	if err != nil {
		return nil, err
	}
	pdf, err := e.pdf.Compile(ctx, coverLetterRenderers[template](skeleton, data))
	if err != nil {
		return nil, err
	}
	filename := artifactFilename(domain.DocumentTypeCoverLetter, data.PersonalInfo.Name, format)
	return &Artifact{Bytes: pdf, Filename: filename, ContentType: format.ContentType()}, nil
}

func (e *Engine) readSkeleton(docType domain.DocumentType, template string) (string, error) {
	path := e.registry.TexPath(docType, template)
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template skeleton %s: %w", path, err)
	}
	return string(raw), nil
}

func artifactFilename(docType domain.DocumentType, personName string, format domain.OutputFormat) string {
	name := strings.ReplaceAll(personName, " ", "_")
	if name == "" {
		name = "output"
	}
	return fmt.Sprintf("%s_%s.%s", docType, name, format.Ext())
}
