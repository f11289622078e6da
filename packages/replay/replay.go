package replay

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/abdul-hamid-achik/specview/packages/core/events"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// MaxLineSize bounds a single event line. Begin events carry the whole test
// list, so the limit is generous.
const MaxLineSize = 4 * 1024 * 1024

// Engine is the lifecycle callback contract a player drives.
type Engine interface {
	OnBegin(cfg events.RunConfig, tests []*events.Test)
	OnTestBegin(t *events.Test)
	OnTestEnd(t *events.Test, r *events.Result)
	OnEnd(status events.RunStatus)
}

// Player feeds a recorded event stream into an engine.
type Player struct {
	engine Engine
	strict bool
	schema *gojsonschema.Schema
	tests  map[string]*events.Test
	lineNo int
}

// PlayerOption configures a player.
type PlayerOption func(*Player)

// WithStrict validates each line against the event schema before applying it.
func WithStrict(strict bool) PlayerOption {
	return func(p *Player) {
		p.strict = strict
	}
}

// NewPlayer creates a player that drives the given engine.
func NewPlayer(engine Engine, opts ...PlayerOption) (*Player, error) {
	p := &Player{
		engine: engine,
		tests:  make(map[string]*events.Test),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.strict {
		schema, err := compileSchema()
		if err != nil {
			return nil, err
		}
		p.schema = schema
	}
	return p, nil
}

// Play reads the whole stream and applies every event in order.
func (p *Player) Play(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxLineSize)
	for scanner.Scan() {
		if err := p.Feed(scanner.Bytes()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading event stream: %w", err)
	}
	return nil
}

// Feed applies a single event line. Blank lines are skipped; events for
// unknown test ids are dropped, matching the engine's defensive contract.
func (p *Player) Feed(line []byte) error {
	p.lineNo++
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil
	}
	if !gjson.ValidBytes(line) {
		return fmt.Errorf("line %d: invalid JSON", p.lineNo)
	}
	if p.schema != nil {
		result, err := p.schema.Validate(gojsonschema.NewBytesLoader(line))
		if err != nil {
			return fmt.Errorf("line %d: %w", p.lineNo, err)
		}
		if !result.Valid() {
			return fmt.Errorf("line %d: %s", p.lineNo, result.Errors()[0])
		}
	}

	doc := gjson.ParseBytes(line)
	switch ev := doc.Get("event").String(); ev {
	case "begin":
		cfg := events.RunConfig{
			RunID:   doc.Get("config.runId").String(),
			Workers: int(doc.Get("config.workers").Int()),
		}
		doc.Get("config.projects").ForEach(func(_, v gjson.Result) bool {
			cfg.Projects = append(cfg.Projects, events.Project{
				Name:     v.Get("name").String(),
				Browser:  v.Get("browser").String(),
				Headless: v.Get("headless").Bool(),
			})
			return true
		})
		var tests []*events.Test
		doc.Get("tests").ForEach(func(_, v gjson.Result) bool {
			t := parseTest(v)
			p.tests[t.ID] = t
			tests = append(tests, t)
			return true
		})
		p.engine.OnBegin(cfg, tests)

	case "testBegin":
		if t, ok := p.tests[doc.Get("testId").String()]; ok {
			p.engine.OnTestBegin(t)
		}

	case "testEnd":
		t, ok := p.tests[doc.Get("testId").String()]
		if !ok {
			return nil
		}
		p.engine.OnTestEnd(t, parseResult(doc.Get("result")))

	case "end":
		status := events.RunStatus(doc.Get("status").String())
		if status == "" {
			status = events.RunPassed
		}
		p.engine.OnEnd(status)

	default:
		return fmt.Errorf("line %d: unknown event %q", p.lineNo, ev)
	}
	return nil
}

func parseTest(v gjson.Result) *events.Test {
	t := &events.Test{
		ID: v.Get("id").String(),
		Location: events.Location{
			File:   v.Get("file").String(),
			Line:   int(v.Get("line").Int()),
			Column: int(v.Get("column").Int()),
		},
		Retries: int(v.Get("retries").Int()),
		Outcome: events.Outcome(v.Get("outcome").String()),
	}
	if t.Outcome == "" {
		t.Outcome = events.OutcomeExpected
	}
	v.Get("titlePath").ForEach(func(_, s gjson.Result) bool {
		t.TitlePath = append(t.TitlePath, s.String())
		return true
	})
	v.Get("annotations").ForEach(func(_, a gjson.Result) bool {
		t.Annotations = append(t.Annotations, events.Annotation{
			Type:        a.Get("type").String(),
			Description: a.Get("description").String(),
		})
		return true
	})
	return t
}

func parseResult(v gjson.Result) *events.Result {
	res := &events.Result{
		Status:   events.Status(v.Get("status").String()),
		Duration: time.Duration(v.Get("durationMs").Int()) * time.Millisecond,
		Retry:    int(v.Get("retry").Int()),
	}
	if e := v.Get("error"); e.Exists() {
		res.Error = &events.TestError{
			Message: e.Get("message").String(),
			Stack:   e.Get("stack").String(),
		}
	}
	v.Get("attachments").ForEach(func(_, a gjson.Result) bool {
		att := events.Attachment{
			Name:        a.Get("name").String(),
			ContentType: a.Get("contentType").String(),
			Path:        a.Get("path").String(),
		}
		if body := a.Get("body"); body.Exists() {
			att.Body = []byte(body.String())
		}
		res.Attachments = append(res.Attachments, att)
		return true
	})
	return res
}

// Validate checks every line of a stream against the event schema and
// returns the number of event lines seen plus any per-line errors.
func Validate(r io.Reader) (int, []error) {
	schema, err := compileSchema()
	if err != nil {
		return 0, []error{err}
	}

	var errs []error
	count := 0
	lineNo := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxLineSize)
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		count++
		if !gjson.ValidBytes(line) {
			errs = append(errs, fmt.Errorf("line %d: invalid JSON", lineNo))
			continue
		}
		result, err := schema.Validate(gojsonschema.NewBytesLoader(line))
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		if !result.Valid() {
			for _, desc := range result.Errors() {
				errs = append(errs, fmt.Errorf("line %d: %s", lineNo, desc))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Errorf("reading event stream: %w", err))
	}
	return count, errs
}

func compileSchema() (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(EventSchema))
	if err != nil {
		return nil, fmt.Errorf("compiling event schema: %w", err)
	}
	return schema, nil
}
