package results

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/career-navigator/internal/career"
	"github.com/spigell/career-navigator/internal/profile"
)

type stubSource struct {
	paths   []career.Path
	err     error
	lastReq career.Request
	during  func()
}

func (s *stubSource) Fetch(_ context.Context, req career.Request) ([]career.Path, error) {
	s.lastReq = req
	if s.during != nil {
		s.during()
	}
	return s.paths, s.err
}

type recordingView struct {
	events      []string
	enabled     bool
	cards       []Card
	err         error
	panicOnShow bool
}

func (v *recordingView) SetSubmitEnabled(enabled bool) {
	v.enabled = enabled
	if enabled {
		v.events = append(v.events, "enable")
	} else {
		v.events = append(v.events, "disable")
	}
}

func (v *recordingView) ShowLoading() { v.events = append(v.events, "loading") }

func (v *recordingView) ShowCards(cards []Card) {
	if v.panicOnShow {
		panic("broken template")
	}
	v.events = append(v.events, "cards")
	v.cards = cards
}

func (v *recordingView) ShowEmpty() { v.events = append(v.events, "empty") }

func (v *recordingView) ShowError(err error) {
	v.events = append(v.events, "error")
	v.err = err
}

func TestSubmitRendersCardsInOrder(t *testing.T) {
	source := &stubSource{paths: []career.Path{
		{Title: "AI Specialist", Description: "models", SkillGaps: []string{"Python"}},
		{Title: "Data Scientist", Description: "data"},
		{Title: "Designer", Description: "ux", SkillGaps: nil},
	}}
	view := &recordingView{}

	var opened []string
	flow := New(source, profile.New("Go"), view, func(title string) error {
		opened = append(opened, title)
		return nil
	}, zap.NewNop())

	if err := flow.Submit(context.Background(), "AI"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if source.lastReq.Skills != "Go" || source.lastReq.Interests != "AI" {
		t.Fatalf("unexpected request: %+v", source.lastReq)
	}
	if flow.State() != Rendered {
		t.Fatalf("expected rendered state, got %s", flow.State())
	}
	if len(view.cards) != len(source.paths) {
		t.Fatalf("expected %d cards, got %d", len(source.paths), len(view.cards))
	}

	for i, card := range view.cards {
		if card.Title != source.paths[i].Title {
			t.Fatalf("card %d: expected title %q, got %q", i, source.paths[i].Title, card.Title)
		}
		if card.SkillGaps == nil {
			t.Fatalf("card %d: expected non-nil skill gaps", i)
		}
		if err := card.TalkToCounselor(); err != nil {
			t.Fatalf("unexpected counsel error: %v", err)
		}
	}

	for i, title := range opened {
		if title != source.paths[i].Title {
			t.Fatalf("trigger %d opened %q, expected %q", i, title, source.paths[i].Title)
		}
	}

	expected := []string{"disable", "loading", "cards", "enable"}
	assertEvents(t, view.events, expected)
	if !view.enabled {
		t.Fatalf("expected submit control to end enabled")
	}
}

func TestSubmitEmptyResult(t *testing.T) {
	view := &recordingView{}
	flow := New(&stubSource{paths: []career.Path{}}, profile.New(""), view, nil, nil)

	if err := flow.Submit(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEvents(t, view.events, []string{"disable", "loading", "empty", "enable"})
	if flow.State() != Rendered {
		t.Fatalf("expected rendered state, got %s", flow.State())
	}
}

func TestSubmitFailureLogsAndReenables(t *testing.T) {
	core, observed := observer.New(zapcore.ErrorLevel)
	sourceErr := errors.New("bad status: 500 Internal Server Error")
	view := &recordingView{}

	flow := New(&stubSource{err: sourceErr}, profile.New(""), view, nil, zap.New(core))

	err := flow.Submit(context.Background(), "")
	if !errors.Is(err, sourceErr) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}

	assertEvents(t, view.events, []string{"disable", "loading", "error", "enable"})
	if flow.State() != Failed {
		t.Fatalf("expected failed state, got %s", flow.State())
	}
	if observed.Len() != 1 {
		t.Fatalf("expected 1 error log entry, got %d", observed.Len())
	}
}

func TestSubmitRecoversFromRenderPanic(t *testing.T) {
	view := &recordingView{panicOnShow: true}
	flow := New(&stubSource{paths: []career.Path{{Title: "A"}}}, profile.New(""), view, nil, nil)

	if err := flow.Submit(context.Background(), ""); err == nil {
		t.Fatalf("expected error from panicking view")
	}

	if !view.enabled {
		t.Fatalf("expected submit control to end enabled")
	}
	if flow.State() != Failed {
		t.Fatalf("expected failed state, got %s", flow.State())
	}
	if view.err == nil {
		t.Fatalf("expected error state to be shown")
	}
}

func TestSubmitRejectedWhileLoading(t *testing.T) {
	view := &recordingView{}
	source := &stubSource{paths: []career.Path{{Title: "A"}}}
	flow := New(source, profile.New(""), view, nil, nil)

	var nested error
	source.during = func() {
		nested = flow.Submit(context.Background(), "again")
	}

	if err := flow.Submit(context.Background(), "first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(nested, ErrBusy) {
		t.Fatalf("expected ErrBusy for submit during loading, got %v", nested)
	}
	if source.lastReq.Interests != "first" {
		t.Fatalf("expected only the first request to reach the source, got %q", source.lastReq.Interests)
	}
}

func TestSubmitReadsLatestSkills(t *testing.T) {
	p := profile.New("Go")
	source := &stubSource{paths: []career.Path{}}
	flow := New(source, p, &recordingView{}, nil, nil)

	p.AppendLine("Aptitude Result: Strong logical reasoning skills.")

	if err := flow.Submit(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source.lastReq.Skills != "Go\nAptitude Result: Strong logical reasoning skills." {
		t.Fatalf("unexpected skills: %q", source.lastReq.Skills)
	}
}

func assertEvents(t *testing.T, got, expected []string) {
	t.Helper()

	if len(got) != len(expected) {
		t.Fatalf("expected events %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected events %v, got %v", expected, got)
		}
	}
}
