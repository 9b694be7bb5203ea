package generator

import (
	"fmt"
	"io"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

type logObserver struct {
	logger log.Logger
}

// NewLogObserver logs run events.
func NewLogObserver(logger log.Logger) Observer {
	return &logObserver{
		logger: log.WithPrefix(logger, "observer", "log"),
	}
}

func (o *logObserver) Progress(e Event) {
	logger := log.WithPrefix(o.logger, "run", e.RunID, "record", e.Record, "phase", e.Phase)
	if e.Err != nil {
		level.Warn(logger).Log("msg", "record skipped", "err", e.Err)
		return
	}
	level.Debug(logger).Log("msg", e.Status, "fraction", e.Fraction, "files", len(e.Files))
}

func (o *logObserver) Done(r Result) {
	logger := log.WithPrefix(o.logger, "run", r.RunID, "state", r.State)
	if r.Err != nil {
		level.Error(logger).Log("msg", r.Summary(), "err", r.Err)
		return
	}
	level.Info(logger).Log("msg", r.Summary(), "failed", len(r.Failures))
}

type writerObserver struct {
	w io.Writer
}

// NewWriterObserver prints the status line of each record and the final summary.
func NewWriterObserver(w io.Writer) Observer {
	return &writerObserver{
		w: w,
	}
}

func (o *writerObserver) Progress(e Event) {
	switch e.Phase {
	case PhaseStarted:
		fmt.Fprintf(o.w, "[%3.0f%%] %s\n", e.Fraction*100, e.Status)
	case PhaseSkipped:
		fmt.Fprintf(o.w, "       skipped: %v\n", e.Err)
	}
}

func (o *writerObserver) Done(r Result) {
	fmt.Fprintln(o.w, r.Summary())
}
