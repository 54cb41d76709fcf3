package converter

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultOutputFolder is created under the source directory for results.
const DefaultOutputFolder = "PNG_exports"

// Engine runs color-keyed BMP to PNG conversions, one job at a time.
type Engine struct {
	opts   Options
	fs     Filesystem
	codec  Codec
	logger *slog.Logger

	mu    sync.Mutex
	state State
}

type Option func(*Engine)

func WithFilesystem(fsys Filesystem) Option {
	return func(e *Engine) { e.fs = fsys }
}

func WithCodec(codec Codec) Option {
	return func(e *Engine) { e.codec = codec }
}

func New(opts Options, logger *slog.Logger, options ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.OutputFolder == "" {
		opts.OutputFolder = DefaultOutputFolder
	}

	e := &Engine{
		opts:   opts,
		fs:     OSFilesystem{},
		codec:  ImageCodec{Compression: opts.Compression},
		logger: logger,
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// Start scans sourceDir, creates the output folder and launches the worker.
// Scan and folder errors are returned before any file is touched. The
// returned channel yields the final report once and is then closed.
func (e *Engine) Start(ctx context.Context, sourceDir string, sink Sink) (*Job, <-chan Report, error) {
	if sourceDir == "" {
		return nil, nil, ErrNoDirectory
	}

	e.mu.Lock()
	if e.state == StateScanning || e.state == StateConverting {
		e.mu.Unlock()
		return nil, nil, ErrAlreadyRunning
	}
	e.state = StateScanning
	e.mu.Unlock()

	job, err := e.prepare(sourceDir)
	if err != nil {
		if errors.Is(err, ErrNoCandidates) {
			e.setState(StateIdle)
			e.logger.Info("converter.job.refused", "source", sourceDir, "err", err)
		} else {
			e.setState(StateFailed)
			e.logger.Error("converter.job.failed", "source", sourceDir, "err", err)
		}
		return nil, nil, err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if sink == nil {
		sink = nopSink{}
	}

	done := make(chan Report, 1)
	e.setState(StateConverting)
	go func() {
		defer close(done)
		report := e.run(ctx, job, sink)
		e.setState(StateCompleted)
		sink.OnCompleted(report)
		done <- report
	}()

	return job, done, nil
}

// Convert is Start followed by waiting for the report.
func (e *Engine) Convert(ctx context.Context, sourceDir string, sink Sink) (Report, error) {
	_, done, err := e.Start(ctx, sourceDir, sink)
	if err != nil {
		return Report{}, err
	}
	return <-done, nil
}

func (e *Engine) prepare(sourceDir string) (*Job, error) {
	candidates, err := e.Scan(sourceDir)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, jobError("scan", sourceDir, ErrNoCandidates, nil)
	}

	outputDir := filepath.Join(sourceDir, e.opts.OutputFolder)
	if err := e.fs.MkdirAll(outputDir); err != nil {
		return nil, jobError("mkdir", outputDir, ErrOutputUnavailable, err)
	}

	return &Job{
		ID:         uuid.New(),
		SourceDir:  sourceDir,
		OutputDir:  outputDir,
		KeyColor:   e.opts.KeyColor,
		Candidates: candidates,
	}, nil
}

func (e *Engine) run(ctx context.Context, job *Job, sink Sink) Report {
	report := Report{
		JobID:           job.ID,
		SourceDir:       job.SourceDir,
		OutputDir:       job.OutputDir,
		KeyColor:        job.KeyColor.String(),
		TotalCandidates: len(job.Candidates),
		Failed:          []FileOutcome{},
		Started:         time.Now(),
	}

	log := e.logger.With("job_id", job.ID.String())
	log.Info("converter.job.started",
		"source", job.SourceDir,
		"output", job.OutputDir,
		"candidates", report.TotalCandidates,
		"key_color", report.KeyColor,
	)

	written := map[string]string{}
	for i, name := range job.Candidates {
		if ctx.Err() != nil {
			report.Cancelled = true
			report.Remaining = len(job.Candidates) - i
			log.Warn("converter.job.cancelled", "processed", i, "remaining", report.Remaining)
			break
		}

		outcome := e.processFile(job, name)
		if outcome.Status == StatusConverted {
			report.Succeeded++
			report.KeyedPixels += outcome.KeyedPixels
			report.BytesWritten += outcome.BytesWritten
			if prev, ok := written[outcome.DestinationPath]; ok {
				log.Warn("converter.file.overwritten",
					"dest", outcome.DestinationPath,
					"file", outcome.SourcePath,
					"previous", prev,
				)
			}
			written[outcome.DestinationPath] = outcome.SourcePath
			log.Debug("converter.file.converted",
				"file", outcome.SourcePath,
				"dest", outcome.DestinationPath,
				"keyed_pixels", outcome.KeyedPixels,
			)
		} else {
			report.Failed = append(report.Failed, outcome)
			logOutcome(log, outcome)
			sink.OnFileFailed(outcome)
		}
		sink.OnProgress(i+1, report.TotalCandidates)
	}

	report.Finished = time.Now()
	if report.WithErrors() {
		log.Warn("converter.job.completed_with_errors",
			"succeeded", report.Succeeded,
			"failed", len(report.Failed),
			"total", report.TotalCandidates,
			"elapsed", report.Elapsed(),
		)
	} else {
		log.Info("converter.job.completed",
			"succeeded", report.Succeeded,
			"total", report.TotalCandidates,
			"elapsed", report.Elapsed(),
		)
	}

	return report
}
