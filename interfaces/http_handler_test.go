package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-engine/infrastructure"
)

const resumeSkeleton = `\documentclass{article}
\begin{document}
\newcommand{\personalinfosection}{}
\newcommand{\summarysection}{}
\newcommand{\experiencesection}{}
\end{document}`

const coverLetterTexSkeleton = `\documentclass{article}
\begin{document}
\newcommand{\sendersection}{}
\newcommand{\datesection}{}
\newcommand{\salutationsection}{}
\newcommand{\bodysection}{}
\newcommand{\closingsection}{}
\end{document}`

type stubCompiler struct{}

func (stubCompiler) Compile(_ context.Context, _ string) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	dir := t.TempDir()
	writeSkeleton(t, dir, "resume", "minimalist", resumeSkeleton)
	writeSkeleton(t, dir, "cover_letter", "classic", coverLetterTexSkeleton)

	registry, err := infrastructure.NewTemplateRegistry(log, dir)
	require.NoError(t, err)
	engine := infrastructure.NewEngine(log, registry, stubCompiler{}, infrastructure.NewDocxWriter(log))

	router := gin.New()
	NewHTTPHandler(router, engine, nil, nil, log)
	return router
}

func writeSkeleton(t *testing.T, dir, docType, name, content string) {
	t.Helper()
	templateDir := filepath.Join(dir, docType, name)
	require.NoError(t, os.MkdirAll(templateDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(templateDir, "template.tex"), []byte(content), 0644))
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func generatePayload(mutate func(map[string]any)) map[string]any {
	payload := map[string]any{
		"document_type": "resume",
		"template":      "minimalist",
		"format":        "pdf",
		"data": map[string]any{
			"personalInfo": map[string]any{
				"name":  "Jane Doe",
				"email": "jane@example.com",
			},
			"professional_summary": "Engineer.",
			"experience": []map[string]any{{
				"title":     "Senior Engineer",
				"company":   "Tech Solutions Inc.",
				"startDate": "2021-03",
				"endDate":   "Present",
				"details":   []string{"Led a team."},
			}},
		},
	}
	if mutate != nil {
		mutate(payload)
	}
	return payload
}

func TestRootAndHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "resume template engine")

	rec = doRequest(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decodeJSON(t, rec)["status"])
}

func TestListTemplates(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/templates", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeJSON(t, rec)
	templates, ok := body["templates"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, templates, "resume")
	assert.Contains(t, templates, "cover_letter")
}

func TestListTemplatesByType(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/templates/resume", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "minimalist")

	rec = doRequest(router, http.MethodGet, "/templates/memo", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTemplateInfo(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/template-info/resume/minimalist", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, "minimalist", body["name"])
	assert.Equal(t, "resume", body["document_type"])

	rec = doRequest(router, http.MethodGet, "/template-info/resume/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSchema(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/schema/resume", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "personalInfo")

	rec = doRequest(router, http.MethodGet, "/schema/cover_letter", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "content")

	rec = doRequest(router, http.MethodGet, "/schema/memo", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGeneratePDF(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/generate", generatePayload(nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "resume_Jane_Doe.pdf")
	assert.Equal(t, "%PDF-stub", rec.Body.String())
}

func TestGenerateMissingFields(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/generate", map[string]any{"template": "minimalist"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateInvalidData(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/generate", generatePayload(func(p map[string]any) {
		data := p["data"].(map[string]any)
		data["personalInfo"] = map[string]any{"email": "not-an-email"}
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name")
}

func TestGenerateUnknownTemplate(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/generate", generatePayload(func(p map[string]any) {
		p["template"] = "nope"
	}))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(router, http.MethodPost, "/generate", generatePayload(func(p map[string]any) {
		p["document_type"] = "memo"
	}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateCoverLetterDocxRejected(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/generate", map[string]any{
		"document_type": "cover_letter",
		"template":      "classic",
		"format":        "docx",
		"data": map[string]any{
			"personalInfo": map[string]any{"name": "Jane Doe", "email": "jane@example.com"},
			"content":      "Hello.",
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateCoverLetterPDF(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/generate", map[string]any{
		"document_type": "cover_letter",
		"template":      "classic",
		"data": map[string]any{
			"personalInfo": map[string]any{"name": "Jane Doe", "email": "jane@example.com"},
			"content":      "I would like to apply.",
		},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "cover_letter_Jane_Doe.pdf")
}

func TestAsyncEndpointsUnconfigured(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/generations", generatePayload(nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doRequest(router, http.MethodGet, "/generations/1", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doRequest(router, http.MethodGet, "/generations/1/download", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
