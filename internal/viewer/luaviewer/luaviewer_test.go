package luaviewer_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/pagesync/internal/engine"
	"github.com/dshills/pagesync/internal/hook"
	"github.com/dshills/pagesync/internal/redisplay"
	"github.com/dshills/pagesync/internal/surface"
	"github.com/dshills/pagesync/internal/viewer"
	"github.com/dshills/pagesync/internal/viewer/luaviewer"
)

const testScript = `
local pages = {}
local redisplayed = {}

return {
  mode = "docview",
  triggers = { "docview.pageNext", "docview.pagePrev" },
  current_page = function(id)
    return pages[id] or 1
  end,
  max_page = function(id)
    return 9
  end,
  goto_page = function(id, page)
    pages[id] = page
  end,
  redisplay = function(id, page)
    redisplayed[id] = page
  end,
}
`

// TestLoadString verifies the script table is parsed.
func TestLoadString(t *testing.T) {
	v, err := luaviewer.LoadString(testScript)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	defer v.Close()

	if v.Mode() != "docview" {
		t.Errorf("expected mode 'docview', got %q", v.Mode())
	}

	triggers := v.TriggerActions()
	if len(triggers) != 2 || triggers[0] != "docview.pageNext" || triggers[1] != "docview.pagePrev" {
		t.Errorf("unexpected triggers %v", triggers)
	}
}

// TestCapabilityRoundTrip verifies pages set through goto_page are read back
// through current_page.
func TestCapabilityRoundTrip(t *testing.T) {
	v, err := luaviewer.LoadString(testScript)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	defer v.Close()

	s := &surface.Fixed{Name: "w1"}

	page, err := v.CurrentPage(s)
	if err != nil {
		t.Fatalf("CurrentPage failed: %v", err)
	}
	if page != 1 {
		t.Errorf("expected initial page 1, got %d", page)
	}

	if err := v.GotoPage(s, 4); err != nil {
		t.Fatalf("GotoPage failed: %v", err)
	}

	page, err = v.CurrentPage(s)
	if err != nil {
		t.Fatalf("CurrentPage failed: %v", err)
	}
	if page != 4 {
		t.Errorf("expected page 4 after goto, got %d", page)
	}

	max, err := v.MaxPage(s)
	if err != nil {
		t.Fatalf("MaxPage failed: %v", err)
	}
	if max != 9 {
		t.Errorf("expected max page 9, got %d", max)
	}

	if err := v.Redisplay(s, 4); err != nil {
		t.Errorf("Redisplay failed: %v", err)
	}
}

// TestLoadStringRejectsBadScripts verifies malformed scripts fail loading.
func TestLoadStringRejectsBadScripts(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"not a table", `return 42`},
		{"missing mode", `return { current_page = function() end, max_page = function() end, goto_page = function() end }`},
		{"missing goto_page", `return { mode = "x", current_page = function() end, max_page = function() end }`},
		{"current_page not function", `return { mode = "x", current_page = 3, max_page = function() end, goto_page = function() end }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := luaviewer.LoadString(tt.src)
			if !errors.Is(err, luaviewer.ErrBadScript) {
				t.Errorf("expected ErrBadScript, got %v", err)
			}
		})
	}
}

// TestLuaErrorPropagates verifies a runtime error in a capability function
// reaches the caller.
func TestLuaErrorPropagates(t *testing.T) {
	v, err := luaviewer.LoadString(`
return {
  mode = "broken",
  current_page = function(id) error("viewer gone") end,
  max_page = function(id) return 1 end,
  goto_page = function(id, page) end,
}
`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	defer v.Close()

	if _, err := v.CurrentPage(&surface.Fixed{Name: "w1"}); err == nil {
		t.Error("expected Lua error to propagate")
	}
}

// TestMissingRedisplayIsNoop verifies redisplay is optional.
func TestMissingRedisplayIsNoop(t *testing.T) {
	v, err := luaviewer.LoadString(`
return {
  mode = "plain",
  current_page = function(id) return 1 end,
  max_page = function(id) return 1 end,
  goto_page = function(id, page) end,
}
`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	defer v.Close()

	if err := v.Redisplay(&surface.Fixed{Name: "w1"}, 1); err != nil {
		t.Errorf("expected optional redisplay to be a no-op, got %v", err)
	}
}

// TestScriptedViewerDrivesEngine runs a full synchronization pass through a
// Lua-defined viewer.
func TestScriptedViewerDrivesEngine(t *testing.T) {
	v, err := luaviewer.LoadString(testScript)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	defer v.Close()

	registry := viewer.NewRegistry()
	registry.Register(v)

	a := &surface.Fixed{Name: "a", Pos: surface.Position{X: 0}, Buf: "paper.pdf"}
	b := &surface.Fixed{Name: "b", Pos: surface.Position{X: 80}, Buf: "paper.pdf"}

	hooks := hook.NewManager()
	// Inert timers: redisplay must not fire against a closed Lua state.
	sched := redisplay.NewScheduler(time.Millisecond,
		redisplay.WithAfterFunc(func(d time.Duration, fn func()) redisplay.Timer {
			return inertTimer{}
		}))
	e := engine.New(registry, hooks, sched, listerFunc(func(buffer string) []surface.Surface {
		return []surface.Surface{a, b}
	}))

	if err := v.GotoPage(a, 5); err != nil {
		t.Fatalf("GotoPage failed: %v", err)
	}
	if err := e.Sync(hook.NavEvent{Action: "docview.pageNext", Surface: a, Mode: "docview"}); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	page, err := v.CurrentPage(b)
	if err != nil {
		t.Fatalf("CurrentPage failed: %v", err)
	}
	if page != 6 {
		t.Errorf("expected b synced to page 6, got %d", page)
	}
}

// listerFunc adapts a function to engine.Lister.
type listerFunc func(buffer string) []surface.Surface

func (f listerFunc) Surfaces(buffer string) []surface.Surface { return f(buffer) }

// inertTimer never fires and cannot be stopped meaningfully.
type inertTimer struct{}

func (inertTimer) Stop() bool { return true }
