package generator

import (
	"bytes"
	"sync"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/geoirb/go-certgen/internal/record"
)

// Session holds the records and the template of one user and the state of its run.
type Session struct {
	mutex sync.Mutex

	records      []*record.Record
	template     []byte
	templateName string
	placeholders []string
	state        State

	extractor extractor
	scanner   scanner

	logger log.Logger
}

// NewSession ...
func NewSession(
	extractor extractor,
	scanner scanner,
	logger log.Logger,
) *Session {
	return &Session{
		placeholders: make([]string, 0),
		extractor:    extractor,
		scanner:      scanner,
		logger:       logger,
	}
}

// LoadRecords replaces the records with the rows of a spreadsheet.
// On error the loaded records stay as they were.
func (s *Session) LoadRecords(filename string, data []byte) (int, error) {
	logger := log.WithPrefix(s.logger, "method", "LoadRecords", "file", filename)

	records, err := s.extractor.Records(filename, data)
	if err != nil {
		level.Error(logger).Log("msg", "read records", "err", err)
		return 0, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.state == Running {
		return 0, ErrRunning
	}
	s.records = records
	level.Info(logger).Log("msg", "records loaded", "count", len(records))
	return len(records), nil
}

// SetRecords replaces the records.
func (s *Session) SetRecords(records []*record.Record) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.state == Running {
		return ErrRunning
	}
	s.records = records
	return nil
}

// LoadTemplate keeps a copy of the template and scans its placeholders.
// The template is accepted even when the scan fails: placeholders are then empty
// and the scan error is logged and returned for display.
func (s *Session) LoadTemplate(filename string, template []byte) ([]string, error) {
	logger := log.WithPrefix(s.logger, "method", "LoadTemplate", "file", filename)

	placeholders, scanErr := s.scanner.Placeholders(template)
	if scanErr != nil {
		level.Warn(logger).Log("msg", "scan placeholders", "err", scanErr)
		placeholders = make([]string, 0)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.state == Running {
		return nil, ErrRunning
	}
	s.template = bytes.Clone(template)
	s.templateName = filename
	s.placeholders = placeholders
	level.Info(logger).Log("msg", "template loaded", "placeholders", len(placeholders))
	return append(make([]string, 0, len(placeholders)), placeholders...), scanErr
}

// Records ...
func (s *Session) Records() []*record.Record {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]*record.Record(nil), s.records...)
}

// Template returns a copy of the template.
func (s *Session) Template() []byte {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return bytes.Clone(s.template)
}

// TemplateName ...
func (s *Session) TemplateName() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.templateName
}

// Placeholders of the loaded template.
func (s *Session) Placeholders() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append(make([]string, 0, len(s.placeholders)), s.placeholders...)
}

// State of the last run.
func (s *Session) State() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// CanGenerate returns the reason the session can not start a run.
func (s *Session) CanGenerate() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.canGenerate()
}

func (s *Session) canGenerate() error {
	switch {
	case s.state == Running:
		return ErrRunning
	case len(s.records) == 0:
		return ErrNoRecords
	case len(s.template) == 0:
		return ErrNoTemplate
	}
	return nil
}

// begin moves the session to Running and returns the snapshot of the run.
func (s *Session) begin() ([]*record.Record, []byte, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := s.canGenerate(); err != nil {
		return nil, nil, err
	}
	s.state = Running
	return append([]*record.Record(nil), s.records...), s.template, nil
}

func (s *Session) finish(err error) State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.state = Completed
	if err != nil {
		s.state = Aborted
	}
	return s.state
}
