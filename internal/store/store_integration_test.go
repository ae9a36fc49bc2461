//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/types"
)

func getTestStore(t *testing.T) *Store {
	t.Helper()
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("Skipping integration test: DATABASE_URL not set")
	}

	s, err := Connect(context.Background(), databaseURL)
	require.NoError(t, err)
	return s
}

func TestIntegration_RunLifecycle(t *testing.T) {
	s := getTestStore(t)
	defer s.Close()
	ctx := context.Background()

	runID, err := s.CreateRun(ctx, "resume.pdf", "pdf")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, runID)

	run, err := s.GetRun(ctx, runID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, StatusRunning, run.Status)
	assert.Equal(t, "resume.pdf", run.SourceName)

	require.NoError(t, s.CompleteRun(ctx, runID, StatusCompleted))

	run, err = s.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, run.Status)
	assert.NotNil(t, run.CompletedAt)
}

func TestIntegration_ArtifactRoundTrip(t *testing.T) {
	s := getTestStore(t)
	defer s.Close()
	ctx := context.Background()

	runID, err := s.CreateRun(ctx, "resume.txt", "txt")
	require.NoError(t, err)

	t.Run("text artifact", func(t *testing.T) {
		err := s.SaveTextArtifact(ctx, runID, StepExtractedText, CategoryExtraction, "John Doe\nEngineer")
		require.NoError(t, err)

		text, err := s.GetTextArtifact(ctx, runID, StepExtractedText)
		require.NoError(t, err)
		assert.Equal(t, "John Doe\nEngineer", text)
	})

	t.Run("json artifact upsert", func(t *testing.T) {
		sections := map[string]string{"skills": "Go, SQL"}
		require.NoError(t, s.SaveArtifact(ctx, runID, StepSections, CategoryAnalysis, sections))

		// Second save for the same step replaces the first.
		sections["education"] = "MIT"
		require.NoError(t, s.SaveArtifact(ctx, runID, StepSections, CategoryAnalysis, sections))

		loaded, err := s.GetSectionsByRunID(ctx, runID)
		require.NoError(t, err)
		assert.Len(t, loaded, 2)
	})

	t.Run("typed entities getter", func(t *testing.T) {
		entities := map[string]any{
			"skills": []any{"Go", "SQL"},
		}
		require.NoError(t, s.SaveArtifact(ctx, runID, StepEntities, CategoryAnalysis, entities))

		loaded, err := s.GetEntitiesByRunID(ctx, runID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Contains(t, loaded, "skills")

		missing, err := s.GetEntitiesByRunID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("typed result getter", func(t *testing.T) {
		result := types.MinimalResult("assembly call failed")
		require.NoError(t, s.SaveArtifact(ctx, runID, StepAnalysisResult, CategoryAnalysis, result))

		loaded, err := s.GetResultByRunID(ctx, runID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, "Unknown", loaded.ContactInfo.Name)
		assert.Equal(t, []string{"assembly call failed"}, loaded.ParsingErrors)
	})

	t.Run("missing artifact is nil", func(t *testing.T) {
		loaded, err := s.GetResultByRunID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})
}
