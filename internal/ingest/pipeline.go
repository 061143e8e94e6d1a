package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"orderetl/internal/config"
	apperrors "orderetl/internal/errors"
	"orderetl/internal/exporter"
	"orderetl/internal/files"
	"orderetl/internal/infrastructure"
	"orderetl/internal/normalize"
	"orderetl/internal/shared/textenc"
	"orderetl/internal/validation"
	"orderetl/pkg/contracts/domain"
)

// ConfirmFunc asks whether existing program data from lastInputDate may be
// overwritten
type ConfirmFunc func(lastInputDate string) (bool, error)

// Reasons a source directory is skipped
const (
	SkipNoMapping    = "no mapping"
	SkipReservedName = "reserved name"
)

// Options controls a single ingest run
type Options struct {
	// Confirm is consulted when a previous run's metadata exists. Nil means
	// overwrite without asking.
	Confirm ConfirmFunc
	// Archive moves every successfully read input file to read_data/<date>/<source>/
	Archive bool
}

// FileResult is the outcome of reading one input file
type FileResult struct {
	Name    string
	Records int
	Err     error
}

// SourceResult is the outcome of one source directory
type SourceResult struct {
	Source         string
	Mapped         bool
	Normalizer     string
	Files          []FileResult
	RecordsRead    int
	RecordsWritten int
	Outputs        []string

	// Skipped says why the source was not processed, empty when it was
	Skipped string
}

// Result summarizes an ingest run
type Result struct {
	RunID    string
	Sources  []SourceResult
	Removed  []string
	Metadata *domain.RunMetadata
	Duration time.Duration
}

// Pipeline reads every source directory under input_data and writes the
// consolidated outputs to program_data
type Pipeline struct {
	cfg         *config.Config
	paths       *config.Paths
	headers     *config.HeadersConfig
	normalizers *normalize.Registry
	exporter    *exporter.Exporter
	manager     *files.Manager
	discovery   *files.Discovery
	validator   *validation.FileValidator
	metrics     *infrastructure.RunMetrics
	logger      *slog.Logger
	now         func() time.Time
}

// NewPipeline wires a pipeline from configuration and the loaded header mappings
func NewPipeline(cfg *config.Config, paths *config.Paths, headers *config.HeadersConfig, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger = infrastructure.WithComponent(logger, "ingest")

	registry, err := normalize.NewRegistry(cfg.Pipeline.Normalizers)
	if err != nil {
		return nil, apperrors.NewConfigError("invalid normalizer bindings", err)
	}
	if headers == nil {
		headers = config.NewHeadersConfig()
	}

	return &Pipeline{
		cfg:         cfg,
		paths:       paths,
		headers:     headers,
		normalizers: registry,
		exporter:    exporter.NewExporter(paths, cfg.Pipeline, logger),
		manager:     files.NewManager(paths, logger),
		discovery:   files.NewDiscovery(paths.InputDir),
		validator:   validation.NewFileValidator(logger),
		metrics:     infrastructure.NewRunMetrics(),
		logger:      logger,
		now:         time.Now,
	}, nil
}

// Metrics returns the collectors updated by Run
func (p *Pipeline) Metrics() *infrastructure.RunMetrics {
	return p.metrics
}

// Run executes one ingest. It returns errors.ErrAborted when the operator
// declines to overwrite existing program data, and a CONFLICT error when
// another run holds the lock.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	started := p.now()
	logger := infrastructure.LoggerWithContext(ctx, p.logger)

	if err := p.validator.ValidateOutputDirectory(p.paths.ProgramDataDir); err != nil {
		return nil, err
	}

	lock := flock.New(p.paths.LockFile)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to acquire run lock", err)
	}
	if !locked {
		return nil, apperrors.NewConflictError(fmt.Sprintf("another ingest run holds %s", p.paths.LockFile))
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			infrastructure.WithError(logger, err).Warn("Failed to release run lock")
		}
	}()

	if err := p.validator.ValidateInputDirectory(p.paths.InputDir); err != nil {
		return nil, err
	}

	if err := p.confirmOverwrite(logger, opts.Confirm); err != nil {
		return nil, err
	}

	removed, err := p.manager.ClearOutputs()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to clear previous outputs", err)
	}
	if len(removed) > 0 {
		logger.Info("Removed previous outputs", slog.Int("count", len(removed)))
	}

	sources, err := p.discovery.ListDirectories(".")
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list input sources", err)
	}

	results := make([]SourceResult, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Pipeline.Workers)
	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			res, err := p.processSource(gctx, source)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	finished := p.now()
	meta := domain.NewRunMetadata()
	for _, res := range results {
		meta.AddSource(res.Source)
		for _, f := range res.Files {
			meta.SetFileCount(res.Source, f.Name, f.Records)
		}
	}
	meta.LastInputDate = finished

	if err := exporter.WriteMetadata(p.paths.MetaFile, meta); err != nil {
		return nil, err
	}

	if opts.Archive {
		p.archive(ctx, logger, finished, results)
	}

	p.metrics.ObserveRun(started, finished)
	if err := p.metrics.WriteTextfile(p.paths.MetricsFile); err != nil {
		infrastructure.WithError(logger, err).Warn("Failed to write metrics file")
	}

	result := &Result{
		RunID:    infrastructure.GetRunID(ctx),
		Sources:  results,
		Removed:  removed,
		Metadata: meta,
		Duration: finished.Sub(started),
	}

	logger.Info("Ingest complete",
		slog.Int("sources", len(results)),
		slog.Duration("duration", result.Duration))
	return result, nil
}

// confirmOverwrite asks before replacing the data of a previous run
func (p *Pipeline) confirmOverwrite(logger *slog.Logger, confirm ConfirmFunc) error {
	if confirm == nil || !p.manager.FileExists(p.paths.MetaFile) {
		return nil
	}

	lastDate := "an unknown date"
	meta, err := exporter.ReadMetadata(p.paths.MetaFile)
	if err != nil {
		infrastructure.WithError(logger, err).Warn("Existing metadata file is unreadable")
	} else if d := meta.FormattedLastInputDate(); d != "" {
		lastDate = d
	}

	ok, err := confirm(lastDate)
	if err != nil {
		return err
	}
	if !ok {
		logger.Info("Exiting without changes")
		return apperrors.ErrAborted
	}
	return nil
}

// processSource reads, normalizes, deduplicates and writes one source directory
func (p *Pipeline) processSource(ctx context.Context, source files.FileInfo) (SourceResult, error) {
	res := SourceResult{Source: source.Name}
	logger := infrastructure.LoggerWithContext(ctx, p.logger).With(slog.String("source", source.Name))

	if p.paths.IsReservedSource(source.Name) {
		logger.Warn("Source name collides with the metadata file, skipping",
			slog.String("meta_file", p.paths.MetaFile))
		res.Skipped = SkipReservedName
		return res, nil
	}

	mapping, ok := p.headers.Get(source.Name)
	if !ok {
		logger.Warn("No header mapping for source, skipping")
		res.Skipped = SkipNoMapping
		return res, nil
	}
	res.Mapped = true

	inputs, err := p.discovery.FindInputFiles(source.Path)
	if err != nil {
		return res, apperrors.NewStorageError(fmt.Sprintf("failed to list files of %s", source.Name), err)
	}

	logger.Info("Processing input", slog.Int("files", len(inputs)))

	combined := &domain.Table{}
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		table, err := p.readInput(logger, input, mapping)
		fr := FileResult{Name: input.Name, Err: err}
		if err != nil {
			p.logFileError(logger, input, err)
			p.metrics.FilesSkipped.WithLabelValues(source.Name, skipReason(err)).Inc()
		} else {
			fr.Records = table.Len()
			combined.Append(table)
			logger.Info("Read records",
				slog.String("file", input.Name),
				slog.Int("records", fr.Records))
		}
		res.Files = append(res.Files, fr)
		res.RecordsRead += fr.Records
	}
	p.metrics.RecordsRead.WithLabelValues(source.Name).Add(float64(res.RecordsRead))

	if combined.Len() == 0 {
		logger.Info("No records read, nothing written")
		return res, nil
	}

	normalizer := p.normalizers.For(source.Name)
	res.Normalizer = normalizer.Name()
	normalizer.Normalize(combined)

	orders, err := Dedup(combined, p.cfg.Pipeline.DedupPolicy)
	if err != nil {
		return res, apperrors.NewConfigError("invalid dedup policy", err)
	}
	res.RecordsWritten = orders.Len()

	outputs, err := p.exporter.Export(source.Name, orders)
	res.Outputs = outputs
	if err != nil {
		return res, apperrors.NewStorageError(fmt.Sprintf("failed to write output of %s", source.Name), err)
	}
	p.metrics.RecordsWritten.WithLabelValues(source.Name).Add(float64(res.RecordsWritten))

	logger.Info("Source written",
		slog.Int("records_read", res.RecordsRead),
		slog.Int("records_written", res.RecordsWritten),
		slog.String("normalizer", res.Normalizer))
	return res, nil
}

func (p *Pipeline) readInput(logger *slog.Logger, input files.FileInfo, mapping config.HeaderMapping) (*domain.Table, error) {
	if err := p.validator.ValidateInputFile(input.Path); err != nil {
		return nil, err
	}
	sheet, err := ReadFile(input.Path)
	if err != nil {
		return nil, err
	}
	if sheet.Charset == textenc.CharsetWindows1252 {
		logger.Warn("File is not valid UTF-8, read as Windows-1252",
			slog.String("file", input.Name))
	}
	return MapColumns(input.Name, sheet, mapping)
}

func (p *Pipeline) logFileError(logger *slog.Logger, input files.FileInfo, err error) {
	if missing := apperrors.MissingHeaders(err); missing != nil {
		logger.Error("Error reading file: missing required headers, check the headers config file",
			slog.String("file", input.Name),
			slog.Any("missing", missing))
		return
	}
	infrastructure.WithError(logger, err).Error("Error reading file",
		slog.String("file", input.Name))
}

// archive moves every successfully read input into read_data/<date>/<source>/
func (p *Pipeline) archive(ctx context.Context, logger *slog.Logger, day time.Time, results []SourceResult) {
	for _, res := range results {
		dir := p.paths.ArchiveDir(day, res.Source)
		for _, f := range res.Files {
			if ctx.Err() != nil {
				return
			}
			if f.Err != nil {
				continue
			}
			src := filepath.Join(p.paths.InputDir, res.Source, f.Name)
			if err := p.manager.MoveFile(src, filepath.Join(dir, f.Name)); err != nil {
				infrastructure.WithError(logger, err).Warn("Failed to archive input file",
					slog.String("file", src))
			}
		}
	}
}

func skipReason(err error) string {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return string(appErr.Type)
	}
	return "UNKNOWN"
}
