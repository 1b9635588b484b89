package pager_test

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pagesync/internal/engine"
	"github.com/dshills/pagesync/internal/hook"
	"github.com/dshills/pagesync/internal/pager"
	"github.com/dshills/pagesync/internal/redisplay"
	"github.com/dshills/pagesync/internal/surface"
	"github.com/dshills/pagesync/internal/viewer"
)

// newTestPager builds a pager on a simulation screen.
func newTestPager(t *testing.T, pages int, panes int) (*pager.Pager, []*pager.Pane, *hook.Manager) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	lines := make([]string, pages*10)
	for i := range lines {
		lines[i] = "content"
	}
	doc := pager.NewDocument("book.txt", strings.Join(lines, "\n"), 10)

	hooks := hook.NewManager()
	p := pager.New(screen, doc, hooks)
	return p, p.Layout(panes), hooks
}

// TestLayoutGeometry verifies panes split the screen left to right.
func TestLayoutGeometry(t *testing.T) {
	_, panes, _ := newTestPager(t, 3, 2)

	if len(panes) != 2 {
		t.Fatalf("expected 2 panes, got %d", len(panes))
	}
	if panes[0].Position().X != 0 {
		t.Errorf("expected first pane at x=0, got %d", panes[0].Position().X)
	}
	if panes[1].Position().X != 40 {
		t.Errorf("expected second pane at x=40, got %d", panes[1].Position().X)
	}
	for _, pane := range panes {
		if pane.Buffer() != "book.txt" {
			t.Errorf("expected buffer 'book.txt', got %q", pane.Buffer())
		}
		if pane.Page() != 1 {
			t.Errorf("expected initial page 1, got %d", pane.Page())
		}
	}
}

// TestCapabilities verifies the viewer interface round-trips through panes.
func TestCapabilities(t *testing.T) {
	p, panes, _ := newTestPager(t, 5, 2)

	max, err := p.MaxPage(panes[0])
	if err != nil {
		t.Fatalf("MaxPage failed: %v", err)
	}
	if max != 5 {
		t.Errorf("expected max page 5, got %d", max)
	}

	if err := p.GotoPage(panes[0], 3); err != nil {
		t.Fatalf("GotoPage failed: %v", err)
	}
	page, err := p.CurrentPage(panes[0])
	if err != nil {
		t.Fatalf("CurrentPage failed: %v", err)
	}
	if page != 3 {
		t.Errorf("expected page 3, got %d", page)
	}

	// Out-of-range targets clamp instead of failing.
	if err := p.GotoPage(panes[0], 99); err != nil {
		t.Fatalf("GotoPage failed: %v", err)
	}
	if panes[0].Page() != 5 {
		t.Errorf("expected clamp to page 5, got %d", panes[0].Page())
	}

	if err := p.Redisplay(panes[1], 1); err != nil {
		t.Errorf("Redisplay failed: %v", err)
	}
}

// TestCapabilityErrors verifies unknown and closed surfaces are rejected.
func TestCapabilityErrors(t *testing.T) {
	p, panes, _ := newTestPager(t, 3, 2)

	foreign := &surface.Fixed{Name: "elsewhere", Buf: "book.txt"}
	if _, err := p.CurrentPage(foreign); err == nil {
		t.Error("expected error for foreign surface")
	}

	panes[1].Close()
	if err := p.GotoPage(panes[1], 2); err == nil {
		t.Error("expected error for closed pane")
	}
}

// TestNavigateFiresHooks verifies navigation clamps pages and reaches the
// hook layer.
func TestNavigateFiresHooks(t *testing.T) {
	p, panes, hooks := newTestPager(t, 3, 2)

	var events []hook.NavEvent
	hooks.Register(hook.NewFunc("capture", 0, func(ev hook.NavEvent) {
		events = append(events, ev)
	}))

	p.Navigate(panes[0], pager.ActionPageNext)
	if panes[0].Page() != 2 {
		t.Errorf("expected page 2 after next, got %d", panes[0].Page())
	}

	p.Navigate(panes[0], pager.ActionPagePrev)
	p.Navigate(panes[0], pager.ActionPagePrev) // clamped at 1
	if panes[0].Page() != 1 {
		t.Errorf("expected clamp at page 1, got %d", panes[0].Page())
	}

	p.Navigate(panes[0], pager.ActionPageLast)
	if panes[0].Page() != 3 {
		t.Errorf("expected last page 3, got %d", panes[0].Page())
	}

	if len(events) != 4 {
		t.Fatalf("expected 4 hook events, got %d", len(events))
	}
	if events[0].Action != pager.ActionPageNext || events[0].Mode != pager.Mode {
		t.Errorf("unexpected first event %+v", events[0])
	}

	// Unknown actions are ignored entirely.
	p.Navigate(panes[0], "pager.bogus")
	if len(events) != 4 {
		t.Errorf("expected unknown action to fire no event, got %d events", len(events))
	}
}

// TestFocusCycling verifies Focused and FocusNext.
func TestFocusCycling(t *testing.T) {
	p, panes, _ := newTestPager(t, 3, 3)

	if p.Focused() != panes[0] {
		t.Error("expected focus on first pane")
	}
	p.FocusNext()
	if p.Focused() != panes[1] {
		t.Error("expected focus on second pane")
	}
	p.FocusNext()
	p.FocusNext()
	if p.Focused() != panes[0] {
		t.Error("expected focus to wrap to first pane")
	}
}

// TestPagerSyncsThroughEngine wires pager, hooks, and engine together and
// verifies a user navigation drags the other pane along.
func TestPagerSyncsThroughEngine(t *testing.T) {
	p, panes, hooks := newTestPager(t, 10, 2)

	registry := viewer.NewRegistry()
	registry.Register(p)
	sched := redisplay.NewScheduler(time.Millisecond)
	defer sched.Stop()

	e := engine.New(registry, hooks, sched, p)
	if !e.AutoEnable(pager.Mode) {
		t.Fatal("expected AutoEnable to succeed")
	}

	// Put the left pane on page 5; the sync pass should put the right pane
	// one page ahead.
	for i := 0; i < 4; i++ {
		p.Navigate(panes[0], pager.ActionPageNext)
	}

	if panes[0].Page() != 5 {
		t.Fatalf("expected trigger pane at page 5, got %d", panes[0].Page())
	}
	if panes[1].Page() != 6 {
		t.Errorf("expected follower pane at page 6, got %d", panes[1].Page())
	}

	// Navigating the right pane pulls the left pane one page behind it.
	p.Navigate(panes[1], pager.ActionPageLast)
	if panes[1].Page() != 10 {
		t.Fatalf("expected trigger pane at page 10, got %d", panes[1].Page())
	}
	if panes[0].Page() != 9 {
		t.Errorf("expected follower pane at page 9, got %d", panes[0].Page())
	}
}
