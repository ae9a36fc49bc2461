package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// GetResultByRunID loads the assembled analysis result for a run.
// Returns nil when the run has no stored result.
func (s *Store) GetResultByRunID(ctx context.Context, runID uuid.UUID) (*types.ResumeAnalysisResult, error) {
	content, err := s.GetArtifact(ctx, runID, StepAnalysisResult)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var result types.ResumeAnalysisResult
	if err := json.Unmarshal(content, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis result: %w", err)
	}
	return &result, nil
}

// GetSectionsByRunID loads the segmented sections for a run.
// Returns nil when the run has no stored sections.
func (s *Store) GetSectionsByRunID(ctx context.Context, runID uuid.UUID) (map[string]string, error) {
	content, err := s.GetArtifact(ctx, runID, StepSections)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var sections map[string]string
	if err := json.Unmarshal(content, &sections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sections: %w", err)
	}
	return sections, nil
}

// GetEntitiesByRunID loads the extracted entities for a run.
// Returns nil when the run has no stored entities.
func (s *Store) GetEntitiesByRunID(ctx context.Context, runID uuid.UUID) (map[string]any, error) {
	content, err := s.GetArtifact(ctx, runID, StepEntities)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var entities map[string]any
	if err := json.Unmarshal(content, &entities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entities: %w", err)
	}
	return entities, nil
}
