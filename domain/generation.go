package domain

import "time"

const (
	GenerationQueued     = "queued"
	GenerationProcessing = "processing"
	GenerationCompleted  = "completed"
	GenerationFailed     = "failed"
)

// Generation is one async document-generation job. The original request
// body is kept as JSON so the worker can replay it through the engine.
type Generation struct {
	ID           uint   `gorm:"primaryKey"`
	DocumentType string `gorm:"size:32;not null"`
	Template     string `gorm:"size:128;not null"`
	Format       string `gorm:"size:8;not null"`
	RequestJSON  string `gorm:"type:json;not null"`
	Status       string `gorm:"type:enum('queued','processing','completed','failed');default:'queued'"`
	OutputPath   string `gorm:"size:512"`
	Filename     string `gorm:"size:255"`
	Error        string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
