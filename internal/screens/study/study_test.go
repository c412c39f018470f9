package study

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/KazantsevJS/mindflip/internal/router"
	"github.com/KazantsevJS/mindflip/internal/screens/summary"
	"github.com/KazantsevJS/mindflip/internal/spacedrep"
	"github.com/KazantsevJS/mindflip/internal/store"
)

type review struct {
	cardID  int64
	outcome spacedrep.Outcome
}

// fakeReviewer records verdicts and can be told to fail.
type fakeReviewer struct {
	calls []review
	err   error
}

func (f *fakeReviewer) RecordReview(_ context.Context, cardID int64, outcome spacedrep.Outcome) (*store.Card, error) {
	f.calls = append(f.calls, review{cardID, outcome})
	if f.err != nil {
		return nil, f.err
	}
	return &store.Card{ID: cardID}, nil
}

var (
	space = tea.KeyPressMsg{Code: tea.KeySpace}
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	right = tea.KeyPressMsg{Code: tea.KeyRight}
	left  = tea.KeyPressMsg{Code: tea.KeyLeft}
	keyL  = tea.KeyPressMsg{Code: 'l', Text: "l"}
	keyH  = tea.KeyPressMsg{Code: 'h', Text: "h"}
	keyQ  = tea.KeyPressMsg{Code: 'q', Text: "q"}
)

func testCards() []store.Card {
	return []store.Card{
		{ID: 1, Question: "What is the powerhouse of the cell?", Answer: "Mitochondria"},
		{ID: 2, Question: "What holds genetic material?", Answer: "The nucleus"},
	}
}

func newTestScreen(r Reviewer, cards []store.Card) *Screen {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	clock := func() time.Time {
		calls++
		return start.Add(time.Duration(calls-1) * time.Minute)
	}
	return New(context.Background(), r, store.Topic{ID: 7, Name: "Cells"}, cards, WithClock(clock))
}

// press sends k and, if it produced a review command, feeds the result back.
func press(t *testing.T, s *Screen, k tea.KeyPressMsg) tea.Cmd {
	t.Helper()
	_, cmd := s.Update(k)
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if rec, ok := msg.(reviewRecordedMsg); ok {
		_, next := s.Update(rec)
		return next
	}
	return cmd
}

func TestStudy_Title(t *testing.T) {
	s := newTestScreen(&fakeReviewer{}, testCards())
	if s.Title() != "Cells" {
		t.Errorf("Title = %q, want %q", s.Title(), "Cells")
	}
}

func TestStudy_FlipTogglesFace(t *testing.T) {
	s := newTestScreen(&fakeReviewer{}, testCards())

	if v := s.View(80, 24); !strings.Contains(v, "powerhouse") || strings.Contains(v, "Mitochondria") {
		t.Fatalf("front view = %s", v)
	}
	s.Update(space)
	if v := s.View(80, 24); !strings.Contains(v, "Mitochondria") {
		t.Fatalf("expected answer after flip, got %s", v)
	}
	s.Update(enter)
	if s.flipped {
		t.Error("expected enter to flip back to the question")
	}
}

func TestStudy_VerdictKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyPressMsg
		want spacedrep.Outcome
	}{
		{"right", right, spacedrep.Known},
		{"l", keyL, spacedrep.Known},
		{"left", left, spacedrep.Unknown},
		{"h", keyH, spacedrep.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rev := &fakeReviewer{}
			s := newTestScreen(rev, testCards())
			press(t, s, tt.key)

			if len(rev.calls) != 1 || rev.calls[0] != (review{1, tt.want}) {
				t.Fatalf("calls = %+v, want card 1 %s", rev.calls, tt.want)
			}
			if s.index != 1 || s.flipped {
				t.Errorf("index %d flipped %v, want next card face down", s.index, s.flipped)
			}
		})
	}
}

func TestStudy_IgnoresKeysWhileSaving(t *testing.T) {
	rev := &fakeReviewer{}
	s := newTestScreen(rev, testCards())

	_, cmd := s.Update(right)
	if cmd == nil {
		t.Fatal("expected review command")
	}
	if _, second := s.Update(left); second != nil {
		t.Error("expected second verdict to be ignored while saving")
	}
	s.Update(space)
	if s.flipped {
		t.Error("expected flip to be ignored while saving")
	}
}

func TestStudy_ErrorKeepsCard(t *testing.T) {
	rev := &fakeReviewer{err: store.ErrIO}
	s := newTestScreen(rev, testCards())

	press(t, s, right)

	if s.index != 0 {
		t.Errorf("index = %d, want 0 after failed save", s.index)
	}
	if !errors.Is(s.err, store.ErrIO) {
		t.Errorf("err = %v, want ErrIO", s.err)
	}
	if v := s.View(80, 24); !strings.Contains(v, "Could not save review") {
		t.Errorf("expected error in view, got %s", v)
	}

	rev.err = nil
	press(t, s, right)
	if s.index != 1 || s.err != nil {
		t.Errorf("retry: index %d err %v", s.index, s.err)
	}
}

func TestStudy_FinishShowsSummary(t *testing.T) {
	s := newTestScreen(&fakeReviewer{}, testCards())

	if cmd := press(t, s, right); cmd != nil {
		t.Fatal("expected no command after first card")
	}
	cmd := press(t, s, left)
	if cmd == nil {
		t.Fatal("expected summary command after last card")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	sum, ok := msg.Screen.(*summary.Screen)
	if !ok {
		t.Fatalf("expected summary screen, got %T", msg.Screen)
	}
	v := sum.View(80, 24)
	for _, want := range []string{"Known: 1", "Again: 1", "Cards: 2"} {
		if !strings.Contains(v, want) {
			t.Errorf("summary missing %q:\n%s", want, v)
		}
	}
}

func TestStudy_Progress(t *testing.T) {
	s := newTestScreen(&fakeReviewer{}, testCards())
	press(t, s, right)
	if done, total := s.Progress(); done != 1 || total != 2 {
		t.Errorf("Progress = %d/%d, want 1/2", done, total)
	}
}

func TestStudy_QuitKeys(t *testing.T) {
	for _, k := range []tea.KeyPressMsg{keyQ, {Code: tea.KeyEscape}} {
		rev := &fakeReviewer{}
		s := newTestScreen(rev, testCards())
		_, cmd := s.Update(k)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg, got %T", k.String(), cmd())
		}
		if len(rev.calls) != 0 {
			t.Errorf("%s: quitting recorded %d reviews", k.String(), len(rev.calls))
		}
	}
}

func TestStudy_EmptyDeck(t *testing.T) {
	rev := &fakeReviewer{}
	s := newTestScreen(rev, nil)

	if v := s.View(80, 24); !strings.Contains(v, "No cards to study") {
		t.Errorf("empty view = %s", v)
	}
	if _, cmd := s.Update(right); cmd != nil {
		t.Error("expected verdict to be ignored on an empty deck")
	}
	if len(rev.calls) != 0 {
		t.Errorf("recorded %d reviews on empty deck", len(rev.calls))
	}
	if hints := s.KeyHints(); len(hints) != 1 || hints[0].Key != "q" {
		t.Errorf("hints = %+v, want quit only", hints)
	}
}
