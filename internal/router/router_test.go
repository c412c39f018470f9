package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/KazantsevJS/mindflip/internal/screen"
)

// stubScreen is a minimal screen that records what it sees.
type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type pingMsg struct{}

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "study"})

	next := &stubScreen{title: "summary"}
	r.Push(next)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "summary" {
		t.Errorf("expected active 'summary', got %q", r.Active().Title())
	}
	if !next.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	r := New(&stubScreen{title: "study"})
	r.Push(&stubScreen{title: "summary"})

	if cmd := r.Pop(); cmd != nil {
		t.Error("expected nil command when popping above the bottom")
	}
	if r.Depth() != 1 || r.Active().Title() != "study" {
		t.Errorf("after pop: depth %d active %q", r.Depth(), r.Active().Title())
	}
}

func TestPopLastScreenQuits(t *testing.T) {
	r := New(&stubScreen{title: "study"})

	cmd := r.Pop()
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
	if r.Depth() != 1 {
		t.Errorf("expected stack to stay at depth 1, got %d", r.Depth())
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	r := New(&stubScreen{title: "study"})

	summary := &stubScreen{title: "summary"}
	r.Update(ReplaceScreenMsg{Screen: summary})

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active() != summary {
		t.Errorf("expected summary to be active, got %q", r.Active().Title())
	}
	if !summary.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	bottom := &stubScreen{title: "study"}
	top := &stubScreen{title: "summary"}
	r := New(bottom)
	r.Update(PushScreenMsg{Screen: top})

	r.Update(pingMsg{})

	if len(top.got) != 1 {
		t.Errorf("active screen got %d messages, want 1", len(top.got))
	}
	if len(bottom.got) != 0 {
		t.Errorf("inactive screen got %d messages, want 0", len(bottom.got))
	}
	if r.View(80, 24) != "summary" {
		t.Errorf("View = %q, want %q", r.View(80, 24), "summary")
	}
}
