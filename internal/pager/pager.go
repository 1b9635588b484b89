package pager

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pagesync/internal/hook"
	"github.com/dshills/pagesync/internal/surface"
)

// Mode is the document-mode identifier the pager registers under.
const Mode = "textpager"

// Navigation action names.
const (
	ActionPageNext  = "pager.pageNext"
	ActionPagePrev  = "pager.pagePrev"
	ActionPageFirst = "pager.pageFirst"
	ActionPageLast  = "pager.pageLast"
)

// Errors returned by capability calls.
var (
	// ErrUnknownSurface indicates a surface this pager does not manage.
	ErrUnknownSurface = errors.New("surface not managed by this pager")

	// ErrPaneClosed indicates a capability call on a closed pane.
	ErrPaneClosed = errors.New("pane is closed")
)

// Pager renders a paginated document into panes on a shared tcell screen and
// exposes the viewer capabilities the sync engine needs. It also implements
// engine.Lister for its document buffer.
type Pager struct {
	mu     sync.Mutex
	screen tcell.Screen
	doc    *Document
	hooks  *hook.Manager
	panes  []*Pane
	focus  int
}

// New creates a pager for doc on screen. Navigation through Navigate fires
// hooks on the given manager.
func New(screen tcell.Screen, doc *Document, hooks *hook.Manager) *Pager {
	return &Pager{
		screen: screen,
		doc:    doc,
		hooks:  hooks,
	}
}

// Document returns the pager's document.
func (p *Pager) Document() *Document { return p.doc }

// Layout splits the screen into n side-by-side panes and replaces any
// previous layout. Panes are named p1..pn left to right.
func (p *Pager) Layout(n int) []*Pane {
	if n < 1 {
		n = 1
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	width, height := p.screen.Size()
	paneWidth := width / n

	for _, pane := range p.panes {
		pane.Close()
	}
	p.panes = make([]*Pane, n)
	for i := range p.panes {
		w := paneWidth
		if i == n-1 {
			w = width - paneWidth*(n-1) // last pane absorbs the remainder
		}
		name := surface.ID(fmt.Sprintf("p%d", i+1))
		p.panes[i] = newPane(name, p.doc.Name(), paneWidth*i, 0, w, height)
	}
	p.focus = 0
	return p.panes
}

// Relayout recomputes pane rectangles for the current screen size, keeping
// pages and focus.
func (p *Pager) Relayout() {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.panes)
	if n == 0 {
		return
	}
	width, height := p.screen.Size()
	paneWidth := width / n
	for i, pane := range p.panes {
		w := paneWidth
		if i == n-1 {
			w = width - paneWidth*(n-1)
		}
		pane.Resize(paneWidth*i, 0, w, height)
	}
}

// Panes returns the current panes left to right.
func (p *Pager) Panes() []*Pane {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Pane, len(p.panes))
	copy(out, p.panes)
	return out
}

// Focused returns the pane navigation keys act on.
func (p *Pager) Focused() *Pane {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.panes) == 0 {
		return nil
	}
	return p.panes[p.focus]
}

// FocusNext cycles focus to the next pane.
func (p *Pager) FocusNext() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.panes) > 0 {
		p.focus = (p.focus + 1) % len(p.panes)
	}
}

// Surfaces implements engine.Lister for the pager's document buffer.
func (p *Pager) Surfaces(buffer string) []surface.Surface {
	p.mu.Lock()
	defer p.mu.Unlock()

	if buffer != p.doc.Name() {
		return nil
	}
	out := make([]surface.Surface, 0, len(p.panes))
	for _, pane := range p.panes {
		out = append(out, pane)
	}
	return out
}

// Navigate performs a user navigation action on a pane, draws it, and fires
// the navigation hooks so the sync engine can follow.
func (p *Pager) Navigate(pane *Pane, action string) {
	current := pane.Page()
	target := current

	switch action {
	case ActionPageNext:
		target = current + 1
	case ActionPagePrev:
		target = current - 1
	case ActionPageFirst:
		target = 1
	case ActionPageLast:
		target = p.doc.PageCount()
	default:
		return
	}

	pane.SetPage(p.doc.ClampPage(target))
	p.DrawPane(pane)
	p.Show()

	p.hooks.Run(hook.NavEvent{Action: action, Surface: pane, Mode: Mode})
}

// Mode implements viewer.Viewer.
func (p *Pager) Mode() string { return Mode }

// TriggerActions implements viewer.Viewer.
func (p *Pager) TriggerActions() []string {
	return []string{ActionPageNext, ActionPagePrev, ActionPageFirst, ActionPageLast}
}

// CurrentPage implements viewer.Viewer.
func (p *Pager) CurrentPage(s surface.Surface) (int, error) {
	pane, err := p.paneFor(s)
	if err != nil {
		return 0, err
	}
	return pane.Page(), nil
}

// MaxPage implements viewer.Viewer.
func (p *Pager) MaxPage(s surface.Surface) (int, error) {
	if _, err := p.paneFor(s); err != nil {
		return 0, err
	}
	return p.doc.PageCount(), nil
}

// GotoPage implements viewer.Viewer.
func (p *Pager) GotoPage(s surface.Surface, page int) error {
	pane, err := p.paneFor(s)
	if err != nil {
		return err
	}
	pane.SetPage(p.doc.ClampPage(page))
	p.DrawPane(pane)
	return nil
}

// Redisplay implements viewer.Viewer: the debounced refresh after a sync
// moved a pane.
func (p *Pager) Redisplay(s surface.Surface, page int) error {
	pane, err := p.paneFor(s)
	if err != nil {
		return err
	}
	p.DrawPane(pane)
	p.Show()
	return nil
}

// paneFor resolves a surface to one of the pager's live panes.
func (p *Pager) paneFor(s surface.Surface) (*Pane, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, pane := range p.panes {
		if pane.ID() == s.ID() {
			if !pane.Live() {
				return nil, fmt.Errorf("%w: %s", ErrPaneClosed, pane.ID())
			}
			return pane, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSurface, s.ID())
}

// Draw renders every pane and flushes the screen.
func (p *Pager) Draw() {
	for _, pane := range p.Panes() {
		p.DrawPane(pane)
	}
	p.Show()
}

// Show flushes pending drawing to the terminal.
func (p *Pager) Show() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.screen.Show()
}

// DrawPane renders one pane: a reverse-video header with the document name
// and page indicator, then the page's lines.
func (p *Pager) DrawPane(pane *Pane) {
	if !pane.Live() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	x, y, width, height := pane.bounds()
	if width < 1 || height < 1 {
		return
	}

	page := pane.Page()
	header := fmt.Sprintf(" %s  page %d/%d ", p.doc.Name(), page, p.doc.PageCount())
	headerStyle := tcell.StyleDefault.Reverse(true)
	p.drawText(x, y, width, header, headerStyle)

	lines := p.doc.PageLines(page)
	style := tcell.StyleDefault
	for row := 1; row < height; row++ {
		line := ""
		if row-1 < len(lines) {
			line = lines[row-1]
		}
		p.drawText(x, y+row, width, line, style)
	}
}

// drawText writes one padded, truncated line of text.
func (p *Pager) drawText(x, y, width int, text string, style tcell.Style) {
	col := 0
	for _, r := range text {
		if col >= width {
			return
		}
		p.screen.SetContent(x+col, y, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		p.screen.SetContent(x+col, y, ' ', nil, style)
	}
}
