package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/biblescan/internal/audit"
	"github.com/nao1215/biblescan/internal/bible"
	"github.com/nao1215/biblescan/internal/model"
	"github.com/nao1215/biblescan/internal/scanner"
)

// LoadStep reads and validates the translation document.
// It decodes the JSON, enforces the abbrev contract on every record, and
// stores the extracted books on the report.
//
// Design decision: Loading is a separate step because:
// 1. It's the foundation every other step builds on
// 2. A load failure must abort the pipeline before any output is produced
// 3. It carries its own configuration (file size limit)
type LoadStep struct {
	// maxFileSize limits the document size in bytes.
	maxFileSize int64

	// logger for structured logging.
	logger *slog.Logger
}

// LoadStepOption configures a LoadStep.
type LoadStepOption func(*LoadStep)

// WithLoadMaxFileSize sets the maximum document size in bytes.
func WithLoadMaxFileSize(size int64) LoadStepOption {
	return func(s *LoadStep) {
		s.maxFileSize = size
	}
}

// WithLoadLogger sets a custom logger for the load step.
func WithLoadLogger(logger *slog.Logger) LoadStepOption {
	return func(s *LoadStep) {
		s.logger = logger
	}
}

// NewLoadStep creates a new document loading step.
func NewLoadStep(opts ...LoadStepOption) *LoadStep {
	s := &LoadStep{
		maxFileSize: scanner.DefaultMaxFileSize,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load"
}

// Do executes the load step. A failure here is fatal: the returned error
// stops the pipeline so no report output is ever produced for an invalid
// document.
func (s *LoadStep) Do(ctx context.Context, report *model.ScanReport) error {
	sc := scanner.New(
		scanner.WithMaxFileSize(s.maxFileSize),
		scanner.WithLogger(s.logger),
	)

	result, err := sc.Scan(ctx, report.File)
	if err != nil {
		return err
	}

	report.SetBooks(result.Books)
	report.ContentHash = result.ContentHash

	s.logger.Debug("document loaded",
		"file", report.File,
		"books", report.BookCount,
	)

	return nil
}

// CrossReferenceStep matches the document's abbreviations against the
// multi-word book table. Matches land on the report in the table's
// declared order.
//
// Design decision: Cross-referencing is separate from loading because it
// works purely on extracted data; documents that never reach this step
// (load failures) must not produce partial match lists.
type CrossReferenceStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// CrossReferenceStepOption configures a CrossReferenceStep.
type CrossReferenceStepOption func(*CrossReferenceStep)

// WithCrossReferenceLogger sets a custom logger for the cross-reference step.
func WithCrossReferenceLogger(logger *slog.Logger) CrossReferenceStepOption {
	return func(s *CrossReferenceStep) {
		s.logger = logger
	}
}

// NewCrossReferenceStep creates a new multi-word cross-reference step.
func NewCrossReferenceStep(opts ...CrossReferenceStepOption) *CrossReferenceStep {
	s := &CrossReferenceStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *CrossReferenceStep) Name() string {
	return "cross_reference"
}

// Do executes the cross-reference step.
func (s *CrossReferenceStep) Do(_ context.Context, report *model.ScanReport) error {
	matches := make([]model.MultiwordMatch, 0, len(bible.MultiwordBooks))
	for _, mb := range bible.MultiwordBooks {
		if report.HasAbbrev(mb.Abbrev) {
			matches = append(matches, model.MultiwordMatch{
				Abbrev: mb.Abbrev,
				Name:   mb.Name,
			})
		}
	}
	report.MultiwordMatches = matches

	s.logger.Debug("cross-reference completed",
		"file", report.File,
		"matches", len(matches),
	)

	return nil
}

// AuditStep runs the data-quality analyzers over the extracted books.
// Findings land on the report; the scan reports themselves are unchanged.
//
// Design decision: Auditing is a separate step because:
// 1. It operates on accumulated data from previous steps
// 2. It has its own configuration (which analyzers to run)
// 3. It's off by default; the plain scan output must stay stable
type AuditStep struct {
	// analyzer is the main analyzer coordinator.
	analyzer *audit.Analyzer

	// logger for structured logging.
	logger *slog.Logger
}

// AuditStepOption configures an AuditStep.
type AuditStepOption func(*AuditStep)

// WithAuditLogger sets a custom logger for the audit step.
func WithAuditLogger(logger *slog.Logger) AuditStepOption {
	return func(s *AuditStep) {
		s.logger = logger
	}
}

// WithAuditAnalyzer replaces the default analyzer. Use this to disable
// individual checks via audit options.
func WithAuditAnalyzer(analyzer *audit.Analyzer) AuditStepOption {
	return func(s *AuditStep) {
		s.analyzer = analyzer
	}
}

// NewAuditStep creates a new data-quality audit step.
func NewAuditStep(opts ...AuditStepOption) *AuditStep {
	s := &AuditStep{
		analyzer: audit.NewAnalyzer(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *AuditStep) Name() string {
	return "audit"
}

// Do executes the audit step.
func (s *AuditStep) Do(ctx context.Context, report *model.ScanReport) error {
	data := &audit.AnalysisData{
		Books:  report.Books,
		Report: report,
	}

	findings, err := s.analyzer.Analyze(ctx, data)
	if err != nil {
		// Non-fatal: return partial results
		s.logger.Warn("audit completed with error", "error", err)
	}

	for _, f := range findings {
		report.AddFinding(f)
	}

	s.logger.Debug("audit completed",
		"file", report.File,
		"findings_count", len(findings),
	)

	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// MaxFileSize is the maximum document size in bytes to read.
	MaxFileSize int64

	// Audit enables the data-quality audit step.
	Audit bool

	// AuditOptions configure which audit checks run.
	AuditOptions []func(*audit.Options)

	// Logger is passed to every step. The pipeline's own logger is set
	// separately via pipeline options.
	Logger *slog.Logger
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineMaxFileSize sets the maximum document size for the load step.
func WithPipelineMaxFileSize(size int64) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.MaxFileSize = size
	}
}

// WithPipelineAudit enables or disables the audit step.
func WithPipelineAudit(audit bool) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Audit = audit
	}
}

// WithPipelineAuditOptions sets the audit analyzer options.
func WithPipelineAuditOptions(opts ...func(*audit.Options)) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.AuditOptions = opts
	}
}

// WithPipelineStepLogger sets the logger passed to every step.
func WithPipelineStepLogger(logger *slog.Logger) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Logger = logger
	}
}

// DefaultPipeline creates a pipeline with the standard steps configured:
// load, cross-reference, and optionally audit.
//
// Design decision: We provide a default pipeline because:
// 1. Every scan needs the same load and cross-reference sequence
// 2. Reduces boilerplate in CLI
// 3. Ensures consistent ordering
//
// The first parameter accepts pipeline options (WithLogger, etc).
// The second accepts pipeline config options (WithPipelineAudit, etc).
func DefaultPipeline(pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		MaxFileSize: scanner.DefaultMaxFileSize,
		Audit:       false,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	loadOpts := []LoadStepOption{
		WithLoadMaxFileSize(cfg.MaxFileSize),
	}
	var crossOpts []CrossReferenceStepOption
	auditOpts := []AuditStepOption{
		WithAuditAnalyzer(audit.NewAnalyzer(cfg.AuditOptions...)),
	}

	if cfg.Logger != nil {
		loadOpts = append(loadOpts, WithLoadLogger(cfg.Logger))
		crossOpts = append(crossOpts, WithCrossReferenceLogger(cfg.Logger))
		auditOpts = append(auditOpts, WithAuditLogger(cfg.Logger))
	}

	p.AddSteps(
		NewLoadStep(loadOpts...),
		NewCrossReferenceStep(crossOpts...),
	)

	if cfg.Audit {
		p.AddStep(NewAuditStep(auditOpts...))
	}

	return p
}
