// Package viewer defines the capability surface a document-viewing mode must
// expose for page synchronization, and the registry mapping document-mode
// identifiers to implementations.
//
// Supporting a new viewer means writing (or scripting, see the luaviewer
// subpackage) one Viewer implementation and registering it; the sync engine
// itself never changes.
package viewer

import "github.com/dshills/pagesync/internal/surface"

// Viewer is the capability descriptor for one document mode.
//
// All page numbers are 1-based. Methods take the surface to operate on; a
// capability call may fail at any time if the surface has died, and callers
// treat such failures as skippable.
type Viewer interface {
	// Mode returns the document-mode identifier this viewer serves.
	Mode() string

	// TriggerActions returns the navigation operation names whose completion
	// should trigger a synchronization pass.
	TriggerActions() []string

	// CurrentPage returns the page the surface is currently showing.
	CurrentPage(s surface.Surface) (int, error)

	// MaxPage returns the page count of the document the surface shows.
	// A correct implementation never returns a value below 1.
	MaxPage(s surface.Surface) (int, error)

	// GotoPage moves the surface to the given page.
	GotoPage(s surface.Surface, page int) error

	// Redisplay forces a redraw of the surface at the given page. It is
	// called on a short delay after GotoPage so the viewer's rendering
	// pipeline can settle first.
	Redisplay(s surface.Surface, page int) error
}
