package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"resume-engine/domain"
)

const (
	texTemplateFile  = "template.tex"
	docxTemplateFile = "template.docx"
)

// TemplateRegistry discovers templates on disk. The layout is
// templates/<document_type>/<template_name>/, and a directory counts as
// a template when it contains template.tex. All methods are safe for
// concurrent use; Refresh can be called at runtime to pick up changes.
type TemplateRegistry struct {
	log       *logrus.Logger
	dir       string
	mu        sync.RWMutex
	templates map[string][]string
}

func NewTemplateRegistry(log *logrus.Logger, dir string) (*TemplateRegistry, error) {
	r := &TemplateRegistry{log: log, dir: dir}
	if err := r.Refresh(); err != nil {
		return nil, err
	}
	return r, nil
}

// Refresh rescans the templates directory.
func (r *TemplateRegistry) Refresh() error {
	if _, err := os.Stat(r.dir); err != nil {
		return fmt.Errorf("templates directory not found: %s", r.dir)
	}

	discovered := make(map[string][]string)

	categories, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}
	for _, category := range categories {
		if !category.IsDir() || strings.HasPrefix(category.Name(), ".") {
			continue
		}
		categoryPath := filepath.Join(r.dir, category.Name())

		entries, err := os.ReadDir(categoryPath)
		if err != nil {
			return fmt.Errorf("failed to read category %s: %w", category.Name(), err)
		}

		var names []string
		for _, entry := range entries {
			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			texPath := filepath.Join(categoryPath, entry.Name(), texTemplateFile)
			if _, err := os.Stat(texPath); err != nil {
				r.log.WithFields(logrus.Fields{
					"category": category.Name(),
					"template": entry.Name(),
				}).Warn("skipping template directory without template.tex")
				continue
			}
			names = append(names, entry.Name())
		}
		sort.Strings(names)
		discovered[category.Name()] = names
	}

	r.mu.Lock()
	r.templates = discovered
	r.mu.Unlock()

	total := 0
	for _, names := range discovered {
		total += len(names)
	}
	r.log.WithField("count", total).Info("template registry loaded")
	return nil
}

// Available returns all discovered templates keyed by document type.
func (r *TemplateRegistry) Available() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]string, len(r.templates))
	for category, names := range r.templates {
		out[category] = append([]string(nil), names...)
	}
	return out
}

// TemplatesFor returns the template names for one document type.
func (r *TemplateRegistry) TemplatesFor(docType domain.DocumentType) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names, ok := r.templates[string(docType)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocumentType, docType)
	}
	return append([]string(nil), names...), nil
}

// Has reports whether the named template exists for the document type.
func (r *TemplateRegistry) Has(docType domain.DocumentType, name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, candidate := range r.templates[string(docType)] {
		if candidate == name {
			return true
		}
	}
	return false
}

// TexPath returns the path of the LaTeX skeleton for a template.
func (r *TemplateRegistry) TexPath(docType domain.DocumentType, name string) string {
	return filepath.Join(r.dir, string(docType), name, texTemplateFile)
}

// DocxPath returns the path of the DOCX skeleton for a template. The
// skeleton is optional; callers must check the file exists.
func (r *TemplateRegistry) DocxPath(docType domain.DocumentType, name string) string {
	return filepath.Join(r.dir, string(docType), name, docxTemplateFile)
}
