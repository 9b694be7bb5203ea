package mq

import (
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/geoirb/go-certgen/internal/generator"
	"github.com/geoirb/go-certgen/internal/kafka"
)

type publishObserver struct {
	transport *ProgressTransport
	publish   kafka.Publish
	logger    log.Logger
}

// NewPublishObserver publishes run events to mq.
// A failed publish is logged and does not stop the run.
func NewPublishObserver(
	transport *ProgressTransport,
	publish kafka.Publish,
	logger log.Logger,
) generator.Observer {
	return &publishObserver{
		transport: transport,
		publish:   publish,
		logger:    log.WithPrefix(logger, "observer", "mq"),
	}
}

func (o *publishObserver) Progress(e generator.Event) {
	message, err := o.transport.EncodeProgress(e)
	o.send(message, err, e.RunID)
}

func (o *publishObserver) Done(r generator.Result) {
	message, err := o.transport.EncodeResult(r)
	o.send(message, err, r.RunID)
}

func (o *publishObserver) send(message []byte, err error, runID string) {
	logger := log.WithPrefix(o.logger, "run", runID)
	if err != nil {
		level.Error(logger).Log("msg", "encode event", "err", err)
		return
	}
	if err = o.publish(message); err != nil {
		level.Error(logger).Log("msg", "publish event", "err", err)
	}
}
