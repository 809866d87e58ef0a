package catalog

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	ferrors "git.home.luguber.info/inful/nmcr/internal/foundation/errors"
	"git.home.luguber.info/inful/nmcr/internal/logfields"
	"git.home.luguber.info/inful/nmcr/internal/metrics"
	"git.home.luguber.info/inful/nmcr/internal/parser"
)

// Options tunes LoadWithOptions. The zero value parses with GOMAXPROCS
// workers, aborts on the first invalid document and logs to slog.Default.
type Options struct {
	// Concurrency bounds the number of documents parsed at once.
	Concurrency int
	// SkipInvalid records documents that fail to parse in Catalog.Skipped
	// instead of aborting. Duplicate ids always abort.
	SkipInvalid bool
	Logger      *slog.Logger
	Recorder    metrics.Recorder
}

type parsed struct {
	res     *parser.Result
	err     error
	elapsed time.Duration
}

// Load builds a catalog from the documents at paths.
func Load(ctx context.Context, paths []string) (*Catalog, error) {
	return LoadWithOptions(ctx, paths, Options{})
}

// LoadWithOptions parses paths concurrently, then ingests the results in
// input order so the first occurrence of an id is always the earliest path.
func LoadWithOptions(ctx context.Context, paths []string, opts Options) (*Catalog, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	loadID := uuid.NewString()
	logger = logger.With(logfields.LoadID(loadID))
	start := time.Now()

	results, err := parseAll(ctx, paths, opts.Concurrency)
	if err != nil {
		recorder.IncLoadOutcome(metrics.ResultFailed)
		return nil, err
	}

	b := newBuilder()
	var sources []Source
	var skipped []Skip
	for i, path := range paths {
		r := results[i]
		kind := ""
		if r.res != nil {
			kind = string(r.res.Document.Kind())
		}
		recorder.ObserveParseDuration(kind, r.elapsed)

		if r.err != nil {
			if !opts.SkipInvalid {
				recorder.IncDocumentResult(metrics.ResultFailed)
				recorder.IncLoadOutcome(metrics.ResultFailed)
				logger.Error("Template document failed to parse", logfields.Path(path), logfields.Error(r.err))
				return nil, r.err
			}
			recorder.IncDocumentResult(metrics.ResultSkipped)
			logger.Warn("Skipping invalid template document", logfields.Path(path), logfields.Error(r.err))
			skipped = append(skipped, Skip{Path: path, Err: r.err})
			continue
		}

		if err := b.ingest(r.res.Document); err != nil {
			recorder.IncDocumentResult(metrics.ResultFailed)
			recorder.IncLoadOutcome(metrics.ResultFailed)
			return nil, classifyIngest(err, path)
		}
		recorder.IncDocumentResult(metrics.ResultSuccess)
		for _, d := range r.res.Diagnostics {
			logger.Debug("Template diagnostic", logfields.Path(path), slog.String("diagnostic", d.String()))
		}
		logger.Debug("Ingested template document", logfields.Path(path), logfields.Kind(kind),
			slog.String("strategy", string(r.res.Strategy)))
		sources = append(sources, Source{
			Path:        path,
			Kind:        r.res.Document.Kind(),
			Strategy:    r.res.Strategy,
			Fingerprint: r.res.Fingerprint,
			Diagnostics: r.res.Diagnostics,
		})
	}

	cat := b.finish()
	cat.loadID = loadID
	cat.sources = sources
	cat.skipped = skipped

	elapsed := time.Since(start)
	recorder.ObserveLoadDuration(elapsed)
	recorder.SetCatalogSize(len(cat.files), len(cat.trees))
	if len(skipped) > 0 {
		recorder.IncLoadOutcome(metrics.ResultSkipped)
	} else {
		recorder.IncLoadOutcome(metrics.ResultSuccess)
	}
	logger.Info("Template catalog loaded",
		logfields.Documents(len(sources)),
		logfields.Files(len(cat.files)),
		logfields.Trees(len(cat.trees)),
		logfields.Duration(elapsed))
	return cat, nil
}

// parseAll parses every path with at most jobs workers. Per-document
// errors are stored with the result; only cancellation fails the call.
func parseAll(ctx context.Context, paths []string, jobs int) ([]parsed, error) {
	results := make([]parsed, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			begin := time.Now()
			res, err := parser.ParseFile(path, parser.Options{})
			results[i] = parsed{res: res, err: err, elapsed: time.Since(begin)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "catalog load cancelled").Build()
	}
	return results, nil
}

func classifyIngest(err error, path string) error {
	var dup *DuplicateIDError
	if errors.As(err, &dup) {
		return ferrors.DuplicateError("failed to build template catalog").
			WithCause(err).
			WithContext("path", path).
			WithContext("template_id", dup.ID).
			Build()
	}
	return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to build template catalog").
		WithContext("path", path).
		Build()
}
