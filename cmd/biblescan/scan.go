package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/nao1215/biblescan/internal/config"
	"github.com/nao1215/biblescan/internal/database"
	"github.com/nao1215/biblescan/internal/finder"
	"github.com/nao1215/biblescan/internal/log"
	"github.com/nao1215/biblescan/internal/model"
	"github.com/nao1215/biblescan/internal/pipeline"
	"github.com/nao1215/biblescan/internal/report"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [file...]",
		Short: "Scan translation files and report book abbreviations",
		Long: `Scan reads Bible translation JSON files and prints two reports:
every book abbreviation in document order, then the multi-word book
names whose abbreviation appears in the document.

With no arguments and no --dir, scan reads ` + config.DefaultInput + `.

Examples:
  # Scan the default translation file
  biblescan scan

  # Scan a single translation
  biblescan scan public/en_kjv.json

  # Scan several translations concurrently
  biblescan scan public/en_kjv.json public/pt_nvi.json

  # Scan every *.json file under a directory
  biblescan scan --dir public

  # Write a JSON report to a file
  biblescan scan -f json -o report.json public/en_kjv.json

  # Run the data-quality audit as well
  biblescan scan --audit -v public/en_kjv.json

Configuration file (.biblescan.yaml) example:
  defaults:
    audit: true
  translations:
    en_kjv.json:
      format: markdown
    pt_nvi.json:
      save: false`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Report flags
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Report format: text, json, or markdown")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Audit flags
	cmd.Flags().BoolP("audit", "a", false,
		"Run data-quality audit checks on the scanned documents")

	// Database flags
	cmd.Flags().Bool("no-save", false,
		"Do not save scan results to the history database")
	cmd.Flags().String("db", "",
		"Database directory (default: XDG data directory)")

	// Directory discovery flags
	cmd.Flags().StringP("dir", "d", "",
		"Scan every *.json file found under this directory")
	cmd.Flags().Int("max-depth", config.DefaultMaxDepth,
		"Maximum directory recursion depth for --dir")

	// Batch scanning flags
	cmd.Flags().IntP("concurrency", "j", config.DefaultConcurrency,
		"Number of concurrent scans when processing multiple files")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .biblescan.yaml in current or XDG config directory)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.Format, err = cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Audit, err = cmd.Flags().GetBool("audit")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	cfg.DBDir, err = cmd.Flags().GetString("db")
	if err != nil {
		return nil, err
	}

	cfg.Dir, err = cmd.Flags().GetString("dir")
	if err != nil {
		return nil, err
	}

	cfg.MaxDepth, err = cmd.Flags().GetInt("max-depth")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Load per-translation configurations from config file
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.TranslationConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.IgnorePatterns = cfg.TranslationConfigs.IgnorePatterns
		cfg.FollowPatterns = cfg.TranslationConfigs.FollowPatterns
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		// Use empty config if no file found and user didn't explicitly specify one
		cfg.TranslationConfigs = &config.File{
			Translations: make(map[string]config.TranslationConfig),
		}
	}

	// Per-translation formats are validated here because Config.Validate
	// only sees the global format.
	if err := validFormat(cfg.TranslationConfigs.Defaults.Format); err != nil {
		return nil, fmt.Errorf("translation defaults: %w", err)
	}
	for name, tc := range cfg.TranslationConfigs.Translations {
		if err := validFormat(tc.Format); err != nil {
			return nil, fmt.Errorf("translation %s: %w", name, err)
		}
	}

	// Positional arguments are translation files. With no arguments and
	// no --dir, scan the default translation path.
	cfg.Inputs = args
	if len(cfg.Inputs) == 0 && cfg.Dir == "" {
		cfg.Inputs = []string{config.DefaultInput}
	}

	return cfg, nil
}

// validFormat reports whether format names a known report format.
// The empty string is valid: it means "use the fallback".
func validFormat(format string) error {
	switch format {
	case "", config.FormatText, config.FormatJSON, config.FormatMarkdown:
		return nil
	}
	return config.ErrInvalidFormat
}

// setupLogger creates a structured logger based on verbosity setting.
// The handler rewrites paths under the home directory so logs can be
// shared without leaking usernames.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}

// runScan executes the scan.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	files, err := collectInputs(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no translation files found under %s", cfg.Dir)
	}

	logger.Info("starting scan",
		"files", len(files),
		"format", cfg.Format,
		"concurrency", cfg.Concurrency,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.ScanDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DatabaseDir(), database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DatabaseDir())
	}

	// Route every report to one destination so multi-file output lands
	// in a single file when --output is set.
	out := io.Writer(os.Stdout)
	if cfg.OutputFile != "" {
		f, err := createOutputFile(cfg.OutputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	// Use batch processor for parallel scanning if multiple files
	if len(files) > 1 && cfg.Concurrency > 1 {
		return runBatchScan(ctx, cfg, files, out, db, logger)
	}

	// Single file or sequential scanning
	return runSequentialScan(ctx, cfg, files, out, db, logger)
}

// collectInputs resolves the list of translation files to scan.
// Explicit inputs come first, followed by files discovered under --dir
// in sorted order. Duplicates are dropped, first occurrence wins.
func collectInputs(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]string, error) {
	files := make([]string, 0, len(cfg.Inputs))
	seen := make(map[string]bool, len(cfg.Inputs))

	for _, f := range cfg.Inputs {
		if seen[f] {
			continue
		}
		seen[f] = true
		files = append(files, f)
	}

	if cfg.Dir == "" {
		return files, nil
	}

	fd := finder.New(
		finder.WithMaxDepth(cfg.MaxDepth),
		finder.WithIgnorePatterns(cfg.IgnorePatterns),
		finder.WithFollowPatterns(cfg.FollowPatterns),
		finder.WithLogger(logger),
	)

	found, err := fd.Find(ctx, cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", cfg.Dir, err)
	}

	stats := fd.Stats()
	logger.Info("directory search complete",
		"dir", cfg.Dir,
		"matched", stats.FilesMatched,
		"visited", stats.DirsVisited,
		"skipped", stats.Skipped,
	)

	for _, f := range found {
		if seen[f] {
			continue
		}
		seen[f] = true
		files = append(files, f)
	}

	return files, nil
}

// runSequentialScan scans files one at a time.
// A single file failing is fatal. When scanning several files the
// remaining ones still run and the failures are reported at the end.
func runSequentialScan(ctx context.Context, cfg *config.Config, files []string, out io.Writer, db *database.ScanDB, logger *slog.Logger) error {
	multi := len(files) > 1
	var failed int

	for _, file := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Get per-translation configuration
		tc := cfg.TranslationConfigs.GetTranslationConfig(filepath.Base(file))

		// Create pipeline with per-translation options
		p := createPipelineForFile(cfg, tc, logger)

		scanReport := model.NewScanReport(file)

		// Execute the pipeline
		if err := p.Execute(ctx, scanReport); err != nil {
			if !multi {
				return fmt.Errorf("failed to scan %s: %w", file, err)
			}
			logger.Error("scan failed", "file", file, "error", err)
			fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", file, err)
			failed++
			continue
		}

		format := tc.FormatOr(cfg.Format)
		if multi && format == config.FormatText {
			fmt.Fprintf(out, "== %s ==\n", file)
		}

		// Generate and output report
		if err := writeReport(out, format, cfg.Verbose, scanReport); err != nil {
			return fmt.Errorf("failed to write report for %s: %w", file, err)
		}

		// Save to database if enabled
		if tc.SaveOr(cfg.SaveToDB) {
			if err := saveScanReport(ctx, db, scanReport, logger); err != nil {
				logger.Error("failed to save scan report", "file", file, "error", err)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scans failed", failed, len(files))
	}
	return nil
}

// runBatchScan scans multiple files concurrently using BatchProcessor.
func runBatchScan(ctx context.Context, cfg *config.Config, files []string, out io.Writer, db *database.ScanDB, logger *slog.Logger) error {
	fmt.Fprintf(os.Stderr, "Scanning %d files (concurrency: %d)...\n",
		len(files), cfg.Concurrency)

	startTime := time.Now()

	// Warn user about batch processing limitation
	if n := auditOverrideCount(cfg.TranslationConfigs); n > 0 {
		logger.Warn("batch scanning applies the default audit setting only; per-translation audit overrides are ignored",
			"overrides", n)
		fmt.Fprintf(os.Stderr, "Warning: per-translation audit overrides are ignored in batch mode. Use --concurrency 1 to apply them.\n")
	}

	// Create batch processor with pipeline factory
	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			// Note: For batch processing, we use the config file defaults.
			// Per-translation audit settings would require per-file
			// pipeline creation.
			var defaults config.TranslationConfig
			if cfg.TranslationConfigs != nil {
				defaults = cfg.TranslationConfigs.Defaults
			}
			return createPipelineForFile(cfg, defaults, logger)
		},
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	var failed int
	err := bp.ProcessBatchWithCallback(ctx, files, func(scanReport *model.ScanReport, _ int) {
		mu.Lock()
		defer mu.Unlock()

		file := scanReport.File
		if scanReport.Error != nil {
			logger.Error("scan failed", "file", file, "error", scanReport.Error)
			fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", file, scanReport.Error)
			failed++
			return
		}

		// Format and save honor per-translation overrides even in batch
		// mode because both happen after the pipeline ran.
		tc := cfg.TranslationConfigs.GetTranslationConfig(filepath.Base(file))
		format := tc.FormatOr(cfg.Format)

		if format == config.FormatText {
			fmt.Fprintf(out, "== %s ==\n", file)
		}
		if err := writeReport(out, format, cfg.Verbose, scanReport); err != nil {
			logger.Error("report failed", "file", file, "error", err)
			failed++
			return
		}

		if tc.SaveOr(cfg.SaveToDB) {
			if err := saveScanReport(ctx, db, scanReport, logger); err != nil {
				logger.Error("failed to save scan report", "file", file, "error", err)
			}
		}
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(startTime)
	fmt.Fprintf(os.Stderr, "Scanned %d files in %s\n", len(files), elapsed.Round(time.Millisecond))

	if failed > 0 {
		return fmt.Errorf("%d of %d scans failed", failed, len(files))
	}
	return nil
}

// auditOverrideCount counts translations that override the audit setting.
func auditOverrideCount(cf *config.File) int {
	if cf == nil {
		return 0
	}
	n := 0
	for _, tc := range cf.Translations {
		if tc.Audit != nil {
			n++
		}
	}
	return n
}

// createPipelineForFile creates a pipeline honoring per-translation overrides.
func createPipelineForFile(cfg *config.Config, tc config.TranslationConfig, logger *slog.Logger) *pipeline.Pipeline {
	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(logger),
	}

	configOpts := []pipeline.DefaultPipelineOption{
		pipeline.WithPipelineMaxFileSize(cfg.MaxFileSize),
		pipeline.WithPipelineAudit(tc.AuditOr(cfg.Audit)),
		pipeline.WithPipelineStepLogger(logger),
	}

	return pipeline.DefaultPipeline(pipelineOpts, configOpts...)
}

// writeReport renders the scan report to out in the requested format.
func writeReport(out io.Writer, format string, verbose bool, scanReport *model.ScanReport) error {
	// Generate simple report if needed
	if scanReport.SimpleReport == nil {
		scanReport.SimpleReport = model.NewSimpleReport(scanReport)
	}

	// Findings are appended only in verbose text mode; the abbreviation
	// listings themselves never change.
	_, err := report.NewWriter(format, out, verbose).Write(scanReport)
	return err
}

// createOutputFile creates the report output file, making parent
// directories as needed. The file is owner-only because reports reveal
// which documents were scanned.
func createOutputFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// saveScanReport saves the scan report to the database.
// If db is nil, this function is a no-op.
func saveScanReport(ctx context.Context, db *database.ScanDB, scanReport *model.ScanReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	// Ensure SimpleReport is generated before saving
	if scanReport.SimpleReport == nil {
		scanReport.SimpleReport = model.NewSimpleReport(scanReport)
	}

	id, err := db.SaveScan(ctx, scanReport)
	if err != nil {
		return fmt.Errorf("failed to save scan report: %w", err)
	}

	logger.Info("scan report saved", "file", scanReport.File, "id", id)
	return nil
}
