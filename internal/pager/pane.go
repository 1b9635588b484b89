package pager

import (
	"sync"

	"github.com/dshills/pagesync/internal/surface"
)

// Pane is one viewport onto the shared document. It implements
// surface.Surface.
type Pane struct {
	mu     sync.Mutex
	name   surface.ID
	buffer string

	x, y          int
	width, height int

	page   int
	closed bool
}

// newPane creates a pane at page 1.
func newPane(name surface.ID, buffer string, x, y, width, height int) *Pane {
	return &Pane{
		name:   name,
		buffer: buffer,
		x:      x,
		y:      y,
		width:  width,
		height: height,
		page:   1,
	}
}

// ID implements surface.Surface.
func (p *Pane) ID() surface.ID { return p.name }

// Position implements surface.Surface.
func (p *Pane) Position() surface.Position {
	p.mu.Lock()
	defer p.mu.Unlock()
	return surface.Position{X: p.x, Y: p.y}
}

// Live implements surface.Surface.
func (p *Pane) Live() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.closed
}

// Buffer implements surface.Surface.
func (p *Pane) Buffer() string { return p.buffer }

// Page returns the page the pane is showing.
func (p *Pane) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// SetPage moves the pane to a page without redrawing.
func (p *Pane) SetPage(page int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page = page
}

// Close marks the pane dead. A closed pane is skipped by the sync engine and
// its pending redisplay is dropped.
func (p *Pane) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// Resize moves the pane to a new screen rectangle.
func (p *Pane) Resize(x, y, width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.x, p.y, p.width, p.height = x, y, width, height
}

// bounds returns the pane's rectangle.
func (p *Pane) bounds() (x, y, width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.x, p.y, p.width, p.height
}
