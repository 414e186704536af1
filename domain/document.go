package domain

import "encoding/json"

type DocumentType string

const (
	DocumentTypeResume      DocumentType = "resume"
	DocumentTypeCoverLetter DocumentType = "cover_letter"
)

func (t DocumentType) Valid() bool {
	return t == DocumentTypeResume || t == DocumentTypeCoverLetter
}

type OutputFormat string

const (
	FormatPDF  OutputFormat = "pdf"
	FormatDOCX OutputFormat = "docx"
)

func (f OutputFormat) Valid() bool {
	return f == FormatPDF || f == FormatDOCX
}

// Ext returns the file extension for the format, without a dot.
func (f OutputFormat) Ext() string {
	return string(f)
}

func (f OutputFormat) ContentType() string {
	switch f {
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/pdf"
	}
}

// GenerateRequest is the body of POST /generate and POST /generations.
// Data is kept raw here and decoded into ResumeData or CoverLetterData
// depending on DocumentType.
type GenerateRequest struct {
	DocumentType DocumentType    `json:"document_type" binding:"required"`
	Template     string          `json:"template" binding:"required"`
	Format       OutputFormat    `json:"format"`
	Data         json.RawMessage `json:"data" binding:"required"`
}
