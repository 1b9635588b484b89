// Package pager provides a tcell-backed paginated text viewer: the reference
// document mode the sync engine is exercised against. It splits a text
// document into fixed-height pages and renders one pane per surface on a
// shared terminal screen.
package pager

import "strings"

// Document is a text document split into fixed-height pages.
type Document struct {
	name       string
	lines      []string
	pageHeight int
}

// NewDocument paginates text into pages of pageHeight lines. A pageHeight
// below 1 is raised to 1. An empty document still has one (empty) page.
func NewDocument(name, text string, pageHeight int) *Document {
	if pageHeight < 1 {
		pageHeight = 1
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	return &Document{
		name:       name,
		lines:      lines,
		pageHeight: pageHeight,
	}
}

// Name returns the document's display name, also used as its buffer
// identity.
func (d *Document) Name() string { return d.name }

// PageHeight returns the number of lines per page.
func (d *Document) PageHeight() int { return d.pageHeight }

// PageCount returns the number of pages, at least 1.
func (d *Document) PageCount() int {
	count := (len(d.lines) + d.pageHeight - 1) / d.pageHeight
	if count < 1 {
		count = 1
	}
	return count
}

// ClampPage returns page forced into [1, PageCount].
func (d *Document) ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	if max := d.PageCount(); page > max {
		return max
	}
	return page
}

// PageLines returns the lines of a page. The page number is clamped.
func (d *Document) PageLines(page int) []string {
	page = d.ClampPage(page)
	start := (page - 1) * d.pageHeight
	end := start + d.pageHeight
	if start > len(d.lines) {
		return nil
	}
	if end > len(d.lines) {
		end = len(d.lines)
	}
	return d.lines[start:end]
}
