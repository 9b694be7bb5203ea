package generator

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/geoirb/go-certgen/internal/record"
)

type renderer interface {
	FillIn(template []byte, r *record.Record) ([]byte, error)
}

type rasterizer interface {
	Rasterize(r *record.Record) (image.Image, error)
}

type composer interface {
	Compose(img image.Image) ([]byte, error)
}

type sink interface {
	Reset()
	Base(name string) string
	FileName(base, ext string) string
	Save(fileName string, data []byte) (string, error)
}

type extractor interface {
	Records(filename string, data []byte) ([]*record.Record, error)
}

type scanner interface {
	Placeholders(template []byte) ([]string, error)
}

// Policy on a failed record.
type Policy string

// Policies.
const (
	// PolicyAbort stops the run on the first failed record.
	PolicyAbort Policy = "abort"
	// PolicySkip records the failure and goes on with the next record.
	PolicySkip Policy = "skip"
)

// ParsePolicy ...
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PolicyAbort, PolicySkip:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Phase of a record in a progress event.
type Phase string

// Phases.
const (
	PhaseStarted   Phase = "started"
	PhaseGenerated Phase = "generated"
	PhaseSkipped   Phase = "skipped"
)

// Event about progress of a run. Index is zero based.
type Event struct {
	RunID    string   `json:"run_id"`
	Index    int      `json:"index"`
	Total    int      `json:"total"`
	Fraction float64  `json:"fraction"`
	Phase    Phase    `json:"phase"`
	Record   string   `json:"record"`
	Status   string   `json:"status"`
	Files    []string `json:"files,omitempty"`
	Err      error    `json:"-"`
}

// Failure of one record skipped by PolicySkip.
type Failure struct {
	Index  int
	Record string
	Err    error
}

// Result of a run.
type Result struct {
	RunID    string
	Mode     Mode
	State    State
	Count    int
	Total    int
	Files    []string
	Failures []Failure
	Err      error
	Duration time.Duration
}

// Summary is the final message of a run.
func (r Result) Summary() string {
	if r.State == Aborted {
		return fmt.Sprintf("Error generating certificates: %v", r.Err)
	}
	s := fmt.Sprintf("Successfully generated %d certificate(s) in %s format!", r.Count, r.Mode.Label())
	if len(r.Failures) != 0 {
		s += fmt.Sprintf(" %d failed.", len(r.Failures))
	}
	return s
}

// Observer receives run events.
// Calls come from the goroutine of Run one at a time.
type Observer interface {
	Progress(e Event)
	Done(r Result)
}
