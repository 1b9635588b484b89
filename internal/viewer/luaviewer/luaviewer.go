// Package luaviewer adapts a Lua script into a viewer.Viewer, so a new
// document mode can be supported by installing a plugin script instead of
// writing Go.
//
// A viewer script returns a table describing the mode and its capability
// functions. Surfaces are addressed by their ID string:
//
//	return {
//	  mode = "docview",
//	  triggers = { "docview.pageNext", "docview.pagePrev" },
//	  current_page = function(id) ... return page end,
//	  max_page = function(id) ... return count end,
//	  goto_page = function(id, page) ... end,
//	  redisplay = function(id, page) ... end,
//	}
package luaviewer

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/pagesync/internal/surface"
)

// ErrBadScript is returned when a script does not produce a valid viewer
// table.
var ErrBadScript = errors.New("lua viewer script invalid")

// Viewer is a viewer.Viewer whose capability functions live in a Lua script.
type Viewer struct {
	// lua.LState is not goroutine-safe; every call into the state is
	// serialized through mu.
	mu    sync.Mutex
	state *lua.LState

	mode     string
	triggers []string

	currentPage lua.LValue
	maxPage     lua.LValue
	gotoPage    lua.LValue
	redisplay   lua.LValue
}

// Load runs the script at path and builds a viewer from its returned table.
func Load(path string) (*Viewer, error) {
	L := lua.NewState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("load viewer script %s: %w", path, err)
	}
	return fromState(L)
}

// LoadString is Load for an in-memory script.
func LoadString(src string) (*Viewer, error) {
	L := lua.NewState()
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("load viewer script: %w", err)
	}
	return fromState(L)
}

// fromState consumes the script's return value from the top of the stack.
func fromState(L *lua.LState) (*Viewer, error) {
	ret := L.Get(-1)
	L.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("%w: script must return a table, got %s", ErrBadScript, ret.Type())
	}

	v := &Viewer{state: L}

	mode, ok := tbl.RawGetString("mode").(lua.LString)
	if !ok || mode == "" {
		L.Close()
		return nil, fmt.Errorf("%w: missing mode", ErrBadScript)
	}
	v.mode = string(mode)

	if triggers, ok := tbl.RawGetString("triggers").(*lua.LTable); ok {
		triggers.ForEach(func(_, val lua.LValue) {
			if s, ok := val.(lua.LString); ok {
				v.triggers = append(v.triggers, string(s))
			}
		})
	}

	for _, fn := range []struct {
		key      string
		dst      *lua.LValue
		required bool
	}{
		{"current_page", &v.currentPage, true},
		{"max_page", &v.maxPage, true},
		{"goto_page", &v.gotoPage, true},
		{"redisplay", &v.redisplay, false},
	} {
		val := tbl.RawGetString(fn.key)
		if _, ok := val.(*lua.LFunction); !ok {
			if fn.required {
				L.Close()
				return nil, fmt.Errorf("%w: %s must be a function", ErrBadScript, fn.key)
			}
			continue
		}
		*fn.dst = val
	}

	return v, nil
}

// Close releases the Lua state. The viewer must not be used afterwards.
func (v *Viewer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Close()
}

// Mode implements viewer.Viewer.
func (v *Viewer) Mode() string { return v.mode }

// TriggerActions implements viewer.Viewer.
func (v *Viewer) TriggerActions() []string {
	out := make([]string, len(v.triggers))
	copy(out, v.triggers)
	return out
}

// CurrentPage implements viewer.Viewer.
func (v *Viewer) CurrentPage(s surface.Surface) (int, error) {
	return v.callInt(v.currentPage, lua.LString(s.ID()))
}

// MaxPage implements viewer.Viewer.
func (v *Viewer) MaxPage(s surface.Surface) (int, error) {
	return v.callInt(v.maxPage, lua.LString(s.ID()))
}

// GotoPage implements viewer.Viewer.
func (v *Viewer) GotoPage(s surface.Surface, page int) error {
	return v.call(v.gotoPage, lua.LString(s.ID()), lua.LNumber(page))
}

// Redisplay implements viewer.Viewer. A script without a redisplay function
// treats it as a no-op.
func (v *Viewer) Redisplay(s surface.Surface, page int) error {
	if v.redisplay == nil {
		return nil
	}
	return v.call(v.redisplay, lua.LString(s.ID()), lua.LNumber(page))
}

// call invokes a Lua function discarding results.
func (v *Viewer) call(fn lua.LValue, args ...lua.LValue) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...)
}

// callInt invokes a Lua function expecting one integer result.
func (v *Viewer) callInt(fn lua.LValue, args ...lua.LValue) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		return 0, err
	}

	ret := v.state.Get(-1)
	v.state.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("%w: expected number result, got %s", ErrBadScript, ret.Type())
	}
	return int(n), nil
}
