package mq

import (
	"github.com/geoirb/go-certgen/internal/generator"
)

type builder func(kind string, payload interface{}, err error) ([]byte, error)

// ProgressTransport encodes run events to messages.
type ProgressTransport struct {
	builder builder
}

// NewProgressTransport ...
func NewProgressTransport(
	builder builder,
) *ProgressTransport {
	return &ProgressTransport{
		builder: builder,
	}
}

// EncodeProgress ...
func (t *ProgressTransport) EncodeProgress(e generator.Event) ([]byte, error) {
	payload := progress{
		RunID:    e.RunID,
		Index:    e.Index,
		Total:    e.Total,
		Fraction: e.Fraction,
		Phase:    string(e.Phase),
		Record:   e.Record,
		Status:   e.Status,
		Files:    e.Files,
	}
	return t.builder(kindProgress, payload, e.Err)
}

// EncodeResult ...
func (t *ProgressTransport) EncodeResult(r generator.Result) ([]byte, error) {
	payload := result{
		RunID:    r.RunID,
		Mode:     string(r.Mode),
		State:    r.State.String(),
		Count:    r.Count,
		Total:    r.Total,
		Files:    r.Files,
		Summary:  r.Summary(),
		Duration: r.Duration.String(),
	}
	for _, f := range r.Failures {
		payload.Failures = append(payload.Failures, failure{
			Index:  f.Index,
			Record: f.Record,
			Error:  f.Err.Error(),
		})
	}
	return t.builder(kindResult, payload, r.Err)
}
