package interfaces

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"resume-engine/domain"
	"resume-engine/infrastructure"
)

type HTTPHandler struct {
	Engine *infrastructure.Engine
	DB     *gorm.DB
	RMQ    *infrastructure.RabbitMQ
	Log    *logrus.Logger
}

// NewHTTPHandler registers all routes. DB and RMQ may be nil, in which
// case the async generation endpoints answer 503.
func NewHTTPHandler(router *gin.Engine, engine *infrastructure.Engine, db *gorm.DB, rmq *infrastructure.RabbitMQ, log *logrus.Logger) {
	h := &HTTPHandler{Engine: engine, DB: db, RMQ: rmq, Log: log}

	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/templates", h.ListTemplates)
	router.GET("/templates/:document_type", h.ListTemplatesByType)
	router.GET("/template-info/:document_type/:template_name", h.TemplateInfo)
	router.GET("/schema/:document_type", h.Schema)
	router.POST("/generate", h.Generate)
	router.POST("/generations", h.CreateGeneration)
	router.GET("/generations/:id", h.GetGeneration)
	router.GET("/generations/:id/download", h.DownloadGeneration)
}

func (h *HTTPHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the resume template engine"})
}

func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *HTTPHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": h.Engine.AvailableTemplates()})
}

func (h *HTTPHandler) ListTemplatesByType(c *gin.Context) {
	docType := domain.DocumentType(c.Param("document_type"))
	names, err := h.Engine.TemplatesFor(docType)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": names})
}

func (h *HTTPHandler) TemplateInfo(c *gin.Context) {
	docType := domain.DocumentType(c.Param("document_type"))
	name := c.Param("template_name")

	if !h.Engine.HasTemplate(docType, name) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("template '%s' not found for %s", name, docType),
		})
		return
	}

	display := strings.ReplaceAll(string(docType), "_", " ")
	c.JSON(http.StatusOK, gin.H{
		"name":          name,
		"document_type": docType,
		"description":   fmt.Sprintf("%s template for %s", capitalize(name), display),
	})
}

func (h *HTTPHandler) Schema(c *gin.Context) {
	docType := domain.DocumentType(c.Param("document_type"))
	switch docType {
	case domain.DocumentTypeResume:
		c.JSON(http.StatusOK, resumeSchema)
	case domain.DocumentTypeCoverLetter:
		c.JSON(http.StatusOK, coverLetterSchema)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown document type: " + string(docType)})
	}
}

// Generate renders a document synchronously and streams it back.
func (h *HTTPHandler) Generate(c *gin.Context) {
	var req domain.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	artifact, err := h.Engine.Generate(c.Request.Context(), &req)
	if err != nil {
		h.respondGenerateError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Bytes)
}

// CreateGeneration queues an async generation and returns immediately.
func (h *HTTPHandler) CreateGeneration(c *gin.Context) {
	if h.DB == nil || h.RMQ == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "async generation is not configured"})
		return
	}

	var req domain.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Engine.Validate(&req); err != nil {
		h.respondGenerateError(c, err)
		return
	}

	requestJSON, err := json.Marshal(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode request"})
		return
	}

	format := req.Format
	if format == "" {
		format = domain.FormatPDF
	}
	generation := domain.Generation{
		DocumentType: string(req.DocumentType),
		Template:     req.Template,
		Format:       string(format),
		RequestJSON:  string(requestJSON),
		Status:       domain.GenerationQueued,
	}
	if err := h.DB.Create(&generation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create generation"})
		return
	}

	if err := h.RMQ.PublishJob(infrastructure.GenerationJob{GenerationID: generation.ID}); err != nil {
		h.DB.Model(&domain.Generation{}).
			Where("id = ?", generation.ID).
			Update("status", domain.GenerationFailed)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue job"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"id":     generation.ID,
		"status": domain.GenerationQueued,
	})
}

func (h *HTTPHandler) GetGeneration(c *gin.Context) {
	generation, ok := h.loadGeneration(c)
	if !ok {
		return
	}

	resp := gin.H{
		"id":            generation.ID,
		"status":        generation.Status,
		"document_type": generation.DocumentType,
		"template":      generation.Template,
		"format":        generation.Format,
		"created_at":    generation.CreatedAt,
		"updated_at":    generation.UpdatedAt,
	}
	switch generation.Status {
	case domain.GenerationCompleted:
		resp["filename"] = generation.Filename
	case domain.GenerationFailed:
		resp["error"] = generation.Error
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) DownloadGeneration(c *gin.Context) {
	generation, ok := h.loadGeneration(c)
	if !ok {
		return
	}
	if generation.Status != domain.GenerationCompleted {
		c.JSON(http.StatusConflict, gin.H{
			"error": "generation is not completed: " + generation.Status,
		})
		return
	}
	if _, err := os.Stat(generation.OutputPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "generated file no longer available"})
		return
	}
	c.FileAttachment(generation.OutputPath, generation.Filename)
}

func (h *HTTPHandler) loadGeneration(c *gin.Context) (*domain.Generation, bool) {
	if h.DB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "async generation is not configured"})
		return nil, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return nil, false
	}
	var generation domain.Generation
	if err := h.DB.First(&generation, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "generation not found"})
		return nil, false
	}
	return &generation, true
}

// respondGenerateError maps engine errors onto HTTP statuses: payload
// problems are 400, unknown targets are 404, everything else is a 500
// carrying the tool detail.
func (h *HTTPHandler) respondGenerateError(c *gin.Context, err error) {
	switch {
	case domain.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, infrastructure.ErrUnknownDocumentType),
		errors.Is(err, infrastructure.ErrUnknownTemplate):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, infrastructure.ErrDocxUnsupported),
		errors.Is(err, infrastructure.ErrNoDocxSkeleton):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.Log.WithError(err).Error("document generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
