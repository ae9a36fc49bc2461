package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/quality"
	"github.com/jonathan/resume-analyzer/internal/store"
	"github.com/jonathan/resume-analyzer/internal/vision"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume document into structured data",
	Long: `Runs the full analysis pipeline over a resume: text extraction (with OCR fallback for scanned documents) -> language detection -> section segmentation -> entity extraction -> normalization -> result assembly -> quality gate.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeConfigPath     string
	analyzeFile           string
	analyzeText           string
	analyzeGroundTruth    string
	analyzeAPIKey         string
	analyzeDatabaseURL    string
	analyzeMinConfidence  float64
	analyzeRequiredSecs   []string
	analyzeTimeoutSeconds int
	analyzeConcurrency    int
	analyzeVerbose        bool
)

func init() {
	// Config file flag (processed first)
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCommand.Flags().StringVarP(&analyzeFile, "file", "f", "", "Path to resume document: pdf, image, or txt (mutually exclusive with --text)")
	analyzeCommand.Flags().StringVarP(&analyzeText, "text", "t", "", "Path to pre-extracted resume text (mutually exclusive with --file)")
	analyzeCommand.Flags().StringVarP(&analyzeGroundTruth, "ground-truth", "g", "", "Path to ground-truth JSON; when set, extraction accuracy is evaluated against it")
	analyzeCommand.Flags().Float64Var(&analyzeMinConfidence, "min-confidence", 0, "Mean extraction confidence the quality gate requires (0.0-1.0)")
	analyzeCommand.Flags().StringSliceVar(&analyzeRequiredSecs, "required-sections", nil, "Sections the quality gate requires to be present")
	analyzeCommand.Flags().IntVar(&analyzeTimeoutSeconds, "call-timeout", 0, "Per-model-call timeout in seconds")
	analyzeCommand.Flags().IntVar(&analyzeConcurrency, "concurrency", 0, "Parallel section extraction bound")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	analyzeCommand.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for artifact persistence
	analyzeCommand.Flags().StringVar(&analyzeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if analyzeConfigPath != "" {
		loadedCfg, err := config.LoadConfig(analyzeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if analyzeVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", analyzeConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("file") {
		cfg.File = analyzeFile
	}
	if cmd.Flags().Changed("text") {
		cfg.Text = analyzeText
	}
	if cmd.Flags().Changed("ground-truth") {
		cfg.GroundTruth = analyzeGroundTruth
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = analyzeDatabaseURL
	}
	if cmd.Flags().Changed("min-confidence") {
		cfg.MinConfidence = &analyzeMinConfidence
	}
	if cmd.Flags().Changed("required-sections") {
		cfg.RequiredSections = analyzeRequiredSecs
	}
	if cmd.Flags().Changed("call-timeout") {
		cfg.CallTimeoutSeconds = analyzeTimeoutSeconds
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = analyzeConcurrency
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}

	// Step 3: Apply defaults for unset values
	gateDefaults := quality.DefaultConfig()
	defaults := config.Config{
		MinConfidence:      gateDefaults.MinConfidence,
		RequiredSections:   gateDefaults.RequiredSections,
		CallTimeoutSeconds: int(pipeline.DefaultCallTimeout / time.Second),
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate the merged configuration
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.File == "" && cfg.Text == "" {
		return fmt.Errorf("either --file or --text must be provided (via flag or config)")
	}

	// Step 5: API Key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	// Step 6: Database URL handling (optional; analysis runs without persistence)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	logger := observability.NewLogger(cfg.Verbose)

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	ocr, err := vision.NewGeminiDetector(ctx, cfg.APIKey, "")
	if err != nil {
		return fmt.Errorf("failed to create OCR detector: %w", err)
	}
	defer func() { _ = ocr.Close() }()

	detector := vision.NewLayeredDetector(vision.NewPDFTextDetector(), ocr, logger)

	var artifacts *store.Store
	if cfg.DatabaseURL != "" {
		artifacts, err = store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn().Err(err).Msg("database unavailable, continuing without artifact persistence")
			artifacts = nil
		} else {
			defer artifacts.Close()
		}
	}

	p := pipeline.New(pipeline.Deps{
		LLM:       client,
		Detector:  detector,
		Artifacts: artifacts,
		Gate: quality.Config{
			RequiredSections: cfg.RequiredSections,
			MinConfidence:    cfg.MinConfidence,
		},
		CallTimeout: time.Duration(cfg.CallTimeoutSeconds) * time.Second,
		Concurrency: cfg.Concurrency,
		Logger:      logger,
	})

	input, err := buildInput(cfg)
	if err != nil {
		return err
	}

	result, err := p.Analyze(ctx, input)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintSections(p.Sections())
		printer.PrintAnalysisResult(result)
	}

	if cfg.GroundTruth != "" {
		groundTruth, err := loadGroundTruth(cfg.GroundTruth)
		if err != nil {
			return err
		}
		if _, err := p.EvaluateAccuracy(ctx, groundTruth); err != nil {
			return fmt.Errorf("accuracy evaluation failed: %w", err)
		}
	}

	report, err := p.GenerateReport(ctx)
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, report.String())

	return nil
}

// buildInput reads the configured input source into a pipeline input.
func buildInput(cfg config.Config) (pipeline.Input, error) {
	if cfg.File != "" {
		data, err := os.ReadFile(cfg.File)
		if err != nil {
			return pipeline.Input{}, fmt.Errorf("failed to read resume file: %w", err)
		}
		return pipeline.Input{FileBytes: data, SourceName: cfg.File}, nil
	}

	data, err := os.ReadFile(cfg.Text)
	if err != nil {
		return pipeline.Input{}, fmt.Errorf("failed to read resume text: %w", err)
	}
	return pipeline.Input{RawText: string(data), SourceName: cfg.Text}, nil
}

// loadGroundTruth parses a ground-truth JSON document for accuracy evaluation.
func loadGroundTruth(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ground truth file: %w", err)
	}

	var groundTruth map[string]any
	if err := json.Unmarshal(data, &groundTruth); err != nil {
		return nil, fmt.Errorf("failed to parse ground truth JSON: %w", err)
	}
	return groundTruth, nil
}
