package generator

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/geoirb/go-certgen/internal/record"
)

// Generator produces certificates of session records.
type Generator struct {
	renderer   renderer
	rasterizer rasterizer
	composer   composer
	sink       sink

	scheduler     Scheduler
	policy        Policy
	recordTimeout time.Duration
	observers     []Observer

	uuidFunc func() string
	logger   log.Logger
}

// NewGenerator ...
func NewGenerator(
	renderer renderer,
	rasterizer rasterizer,
	composer composer,
	sink sink,

	scheduler Scheduler,
	policy Policy,
	recordTimeout time.Duration,

	uuidFunc func() string,
	logger log.Logger,
	observers ...Observer,
) *Generator {
	if policy == "" {
		policy = PolicyAbort
	}
	return &Generator{
		renderer:      renderer,
		rasterizer:    rasterizer,
		composer:      composer,
		sink:          sink,
		scheduler:     scheduler,
		policy:        policy,
		recordTimeout: recordTimeout,
		observers:     observers,
		uuidFunc:      uuidFunc,
		logger:        logger,
	}
}

// Run generates certificates of all session records in order.
// A run that can not start returns the reason with the session left as it was.
// Files written before an abort stay in place.
func (g *Generator) Run(ctx context.Context, session *Session, mode Mode) (Result, error) {
	result := Result{
		RunID:    g.uuidFunc(),
		Mode:     mode,
		Files:    make([]string, 0),
		Failures: make([]Failure, 0),
	}
	logger := log.WithPrefix(g.logger, "method", "Run", "run", result.RunID)

	mode, err := ParseMode(string(mode))
	if err != nil {
		level.Error(logger).Log("msg", "mode", "err", err)
		return result, err
	}
	result.Mode = mode
	logger = log.With(logger, "mode", mode)
	records, template, err := session.begin()
	if err != nil {
		level.Warn(logger).Log("msg", "run is not started", "err", err)
		return result, err
	}

	start := time.Now()
	result.Total = len(records)
	level.Info(logger).Log("msg", "run started", "records", result.Total, "policy", g.policy)

	g.sink.Reset()
	var runErr error
	for i, rec := range records {
		if runErr = ctx.Err(); runErr != nil {
			break
		}
		event := Event{
			RunID:    result.RunID,
			Index:    i,
			Total:    result.Total,
			Fraction: float64(i+1) / float64(result.Total),
			Record:   rec.DisplayName(i),
			Status:   fmt.Sprintf("Processing %d of %d certificates...", i+1, result.Total),
		}
		g.progress(event, PhaseStarted)

		files, err := g.process(ctx, template, rec, event.Record, mode)
		result.Files = append(result.Files, files...)
		event.Files = files
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				runErr = ctxErr
				break
			}
			level.Error(logger).Log("msg", "generate certificate", "record", event.Record, "err", err)
			if g.policy != PolicySkip {
				runErr = err
				break
			}
			result.Failures = append(result.Failures, Failure{Index: i, Record: event.Record, Err: err})
			event.Err = err
			g.progress(event, PhaseSkipped)
		} else {
			result.Count++
			g.progress(event, PhaseGenerated)
		}

		if i != len(records)-1 {
			if runErr = g.scheduler.Yield(ctx); runErr != nil {
				break
			}
		}
	}

	result.Err = runErr
	result.State = session.finish(runErr)
	result.Duration = time.Since(start)
	if runErr != nil {
		level.Error(logger).Log("msg", "run aborted", "count", result.Count, "err", runErr)
	} else {
		level.Info(logger).Log("msg", "run completed", "count", result.Count, "failed", len(result.Failures), "duration", result.Duration)
	}
	for _, o := range g.observers {
		o.Done(result)
	}
	return result, runErr
}

// process runs generation of one record bounded by the record timeout.
// A generation that outlives the timeout is abandoned: a write in flight
// completes, no write starts after it. Files written before are returned
// with the error.
func (g *Generator) process(ctx context.Context, template []byte, rec *record.Record, name string, mode Mode) ([]string, error) {
	if g.recordTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.recordTimeout)
		defer cancel()
	}
	fileName, _ := rec.NonEmpty(record.NameField)
	w := &writer{
		sink:  g.sink,
		base:  g.sink.Base(fileName),
		files: make([]string, 0, 2),
	}

	done := make(chan error, 1)
	go func() {
		done <- g.generate(ctx, template, rec, name, w, mode)
	}()

	select {
	case <-ctx.Done():
		return w.abandon(), fmt.Errorf("generate certificate for %s: %w", name, ctx.Err())
	case err := <-done:
		return w.files, err
	}
}

func (g *Generator) generate(ctx context.Context, template []byte, rec *record.Record, name string, w *writer, mode Mode) error {
	if mode.DOCX() {
		doc, err := g.renderer.FillIn(bytes.Clone(template), rec)
		if err != nil {
			return &RenderError{Record: name, Err: err}
		}
		if err = w.save(ctx, DOCX, doc); err != nil {
			return &RenderError{Record: name, Err: err}
		}
	}
	if mode.PDF() {
		img, err := g.rasterizer.Rasterize(rec)
		if err != nil {
			return &RasterError{Record: name, Err: err}
		}
		doc, err := g.composer.Compose(img)
		if err != nil {
			return &RasterError{Record: name, Err: err}
		}
		if err = w.save(ctx, PDF, doc); err != nil {
			return &RasterError{Record: name, Err: err}
		}
	}
	return nil
}

// writer saves files of one record until the record is abandoned.
type writer struct {
	sink sink
	base string

	mutex     sync.Mutex
	abandoned bool
	files     []string
}

func (w *writer) save(ctx context.Context, ext string, data []byte) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.abandoned {
		return errAbandoned
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	file, err := w.sink.Save(w.sink.FileName(w.base, ext), data)
	if err != nil {
		return err
	}
	w.files = append(w.files, file)
	return nil
}

// abandon waits for a write in flight and returns the files written.
func (w *writer) abandon() []string {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.abandoned = true
	files := make([]string, len(w.files))
	copy(files, w.files)
	return files
}

func (g *Generator) progress(e Event, phase Phase) {
	e.Phase = phase
	for _, o := range g.observers {
		o.Progress(e)
	}
}
