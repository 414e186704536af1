package infrastructure

import "errors"

var (
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrUnknownTemplate     = errors.New("unknown template")
	ErrDocxUnsupported     = errors.New("docx output is not supported for this document type")
	ErrNoDocxSkeleton      = errors.New("template has no docx skeleton")
)
