package store

import (
	"time"

	"github.com/google/uuid"
)

// Run represents an analysis run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	SourceName  string     `json:"source_name"`
	FileFormat  string     `json:"file_format"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Run status constants
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Artifact step constants for known artifact types
const (
	StepExtractedText      = "extracted_text"
	StepDocumentLanguage   = "document_language"
	StepSections           = "sections"
	StepEntities           = "entities"
	StepNormalizedEntities = "normalized_entities"
	StepAnalysisResult     = "analysis_result"
	StepAccuracy           = "accuracy"
	StepReport             = "report"
)

// Artifact category constants
const (
	CategoryExtraction = "extraction"
	CategoryAnalysis   = "analysis"
	CategoryEvaluation = "evaluation"
)
