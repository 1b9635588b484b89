package engine

import "fmt"

// Targets computes the target page for each of count ordered surfaces when
// the surface at triggerIndex is showing currentPage of a document with
// maxPage pages.
//
// The triggering surface keeps its page. Each surface before it in the order
// is one page behind its right neighbor, floored at page 1; each surface
// after it is one page ahead, capped at maxPage. Clamped surfaces may share a
// page with a neighbor; that is accepted, not an error.
func Targets(count, triggerIndex, currentPage, maxPage int) ([]int, error) {
	return Staircase(count, triggerIndex, currentPage, maxPage, 1)
}

// Staircase is Targets with a configurable page step between adjacent
// surfaces. The result is non-decreasing and adjacent entries differ by
// exactly step except where clamped at 1 or maxPage.
func Staircase(count, triggerIndex, currentPage, maxPage, step int) ([]int, error) {
	if maxPage < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageRange, maxPage)
	}
	if step < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadStep, step)
	}
	if triggerIndex < 0 || triggerIndex >= count {
		return nil, fmt.Errorf("%w: index %d of %d", ErrBadTriggerIndex, triggerIndex, count)
	}
	if currentPage < 1 || currentPage > maxPage {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, currentPage, maxPage)
	}

	targets := make([]int, count)
	for i := range targets {
		page := currentPage + (i-triggerIndex)*step
		if page < 1 {
			page = 1
		}
		if page > maxPage {
			page = maxPage
		}
		targets[i] = page
	}
	return targets, nil
}
