package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/config"
)

func TestAnalyzeCommand_MissingInput(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "analyze")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "either --file or --text must be provided")
}

func TestAnalyzeCommand_MissingAPIKey(t *testing.T) {
	binaryPath := getBinaryPath(t)

	textFile := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(textFile, []byte("Jane Smith\njane@example.com"), 0644))

	cmd := exec.Command(binaryPath, "analyze", "--text", textFile)

	// Filter out GEMINI_API_KEY so the fallback cannot fire
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "GEMINI_API_KEY=") {
			env = append(env, e)
		}
	}
	cmd.Env = env

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "GEMINI_API_KEY environment variable or --api-key flag is required")
}

func TestAnalyzeCommand_ExclusiveInputs(t *testing.T) {
	binaryPath := getBinaryPath(t)

	dir := t.TempDir()
	textFile := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(textFile, []byte("text"), 0644))

	cmd := exec.Command(binaryPath, "analyze",
		"--file", textFile,
		"--text", textFile,
		"--api-key", "dummy-key")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "mutually exclusive")
}

func TestBuildInput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	input, err := buildInput(config.Config{File: path})
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-1.4"), input.FileBytes)
	assert.Equal(t, path, input.SourceName)
	assert.Empty(t, input.RawText)
}

func TestBuildInput_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Smith"), 0644))

	input, err := buildInput(config.Config{Text: path})
	require.NoError(t, err)

	assert.Equal(t, "Jane Smith", input.RawText)
	assert.Nil(t, input.FileBytes)
}

func TestBuildInput_MissingFile(t *testing.T) {
	_, err := buildInput(config.Config{File: "/nonexistent/resume.pdf"})
	assert.Error(t, err)
}

func TestLoadGroundTruth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truth.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"contact_info": {"name": "Jane Smith"}}`), 0644))

	truth, err := loadGroundTruth(path)
	require.NoError(t, err)
	assert.Contains(t, truth, "contact_info")
}

func TestLoadGroundTruth_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truth.json")
	require.NoError(t, os.WriteFile(path, []byte("{ not json }"), 0644))

	_, err := loadGroundTruth(path)
	assert.Error(t, err)
}
