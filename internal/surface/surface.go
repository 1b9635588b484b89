// Package surface models the visible viewports ("windows") that show a
// paginated document and provides the deterministic order the sync engine
// walks them in.
package surface

import "sort"

// ID is a stable identity for a surface over its lifetime.
type ID string

// Position is a surface's screen placement in cells from the top-left corner.
type Position struct {
	X int
	Y int
}

// Less reports whether p orders before o: ascending X, ties broken by
// ascending Y.
func (p Position) Less(o Position) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	return p.Y < o.Y
}

// Surface is a viewport currently showing a document buffer.
//
// Surfaces are created and destroyed by the host environment; the sync engine
// only observes them and must tolerate a surface dying between the time it is
// listed and the time it is acted on. Live is checked immediately before each
// use.
type Surface interface {
	// ID returns the surface's identity.
	ID() ID

	// Position returns the surface's screen placement.
	Position() Position

	// Live reports whether the surface is still valid.
	Live() bool

	// Buffer returns the identity of the document buffer the surface shows.
	Buffer() string
}

// Order returns the surfaces sorted left-to-right, top-to-bottom: ascending
// horizontal offset, ties broken by ascending vertical offset. The result is
// deterministic for a fixed layout regardless of input order. The input slice
// is not modified.
func Order(surfaces []Surface) []Surface {
	ordered := make([]Surface, len(surfaces))
	copy(ordered, surfaces)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position().Less(ordered[j].Position())
	})
	return ordered
}

// Fixed is a Surface with static attributes. Hosts whose windows do not move
// can use it directly; it is also convenient in tests.
type Fixed struct {
	Name ID
	Pos  Position
	Buf  string
	Dead bool
}

// ID implements Surface.
func (f *Fixed) ID() ID { return f.Name }

// Position implements Surface.
func (f *Fixed) Position() Position { return f.Pos }

// Live implements Surface.
func (f *Fixed) Live() bool { return !f.Dead }

// Buffer implements Surface.
func (f *Fixed) Buffer() string { return f.Buf }
