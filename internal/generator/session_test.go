package generator_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoirb/go-certgen/internal/docx"
	"github.com/geoirb/go-certgen/internal/generator"
	"github.com/geoirb/go-certgen/internal/placeholder"
	"github.com/geoirb/go-certgen/internal/record"
)

func TestSessionLoadRecords(t *testing.T) {
	s := generator.NewSession(testExtractor{records: students("A", "B")}, testScanner{}, log.NewNopLogger())
	assert.ErrorIs(t, s.CanGenerate(), generator.ErrNoRecords)

	count, err := s.LoadRecords("students.xlsx", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, s.Records(), 2)
	assert.ErrorIs(t, s.CanGenerate(), generator.ErrNoTemplate)

	failing := generator.NewSession(testExtractor{err: errTest}, testScanner{}, log.NewNopLogger())
	_, err = failing.LoadRecords("students.xlsx", []byte("data"))
	assert.ErrorIs(t, err, errTest)
	assert.Empty(t, failing.Records())
}

func TestSessionLoadTemplate(t *testing.T) {
	p, err := placeholder.New(false)
	require.NoError(t, err)
	templater, err := docx.NewTemplater(p)
	require.NoError(t, err)

	t.Run("placeholders", func(t *testing.T) {
		template, err := docx.Build([]string{"{{name}} {{course}}", "{{name}} {{course}}"})
		require.NoError(t, err)

		s := generator.NewSession(testExtractor{}, templater, log.NewNopLogger())
		names, err := s.LoadTemplate("template.docx", template)
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "course"}, names)
		assert.Equal(t, []string{"name", "course"}, s.Placeholders())
		assert.Equal(t, "template.docx", s.TemplateName())

		template[0] = 'X'
		assert.False(t, bytes.Equal(template, s.Template()))
	})

	t.Run("unreadable template is accepted", func(t *testing.T) {
		s := generator.NewSession(testExtractor{}, templater, log.NewNopLogger())
		require.NoError(t, s.SetRecords(students("A")))

		names, err := s.LoadTemplate("template.docx", []byte("not a docx"))
		var templateErr *docx.TemplateError
		assert.ErrorAs(t, err, &templateErr)
		assert.Empty(t, names)
		assert.NotNil(t, s.Placeholders())
		assert.NoError(t, s.CanGenerate())
	})
}

type blockingRenderer struct {
	started chan struct{}
	release chan struct{}
}

func (r *blockingRenderer) FillIn(template []byte, rec *record.Record) ([]byte, error) {
	close(r.started)
	<-r.release
	return template, nil
}

func TestSessionRunning(t *testing.T) {
	renderer := &blockingRenderer{started: make(chan struct{}), release: make(chan struct{})}
	b, _ := newBuilder(t)
	g := generator.NewGenerator(renderer, &testRasterizer{}, testComposer{}, b, generator.SleepScheduler{}, generator.PolicyAbort, 0, func() string { return "run" }, log.NewNopLogger())
	session := newSession(t, students("A"), []byte("template"))

	done := make(chan error, 1)
	go func() {
		_, err := g.Run(context.Background(), session, generator.ModeDOCX)
		done <- err
	}()

	select {
	case <-renderer.started:
	case <-time.After(5 * time.Second):
		t.Fatal("run is not started")
	}
	assert.Equal(t, generator.Running, session.State())
	assert.ErrorIs(t, session.SetRecords(students("B")), generator.ErrRunning)
	_, err := g.Run(context.Background(), session, generator.ModeDOCX)
	assert.ErrorIs(t, err, generator.ErrRunning)

	close(renderer.release)
	require.NoError(t, <-done)
	assert.Equal(t, generator.Completed, session.State())
}
