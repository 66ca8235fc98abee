// Package chunker partitions a report-type group into fixed-size pages.
package chunker

import "github.com/comppsych/fmriprepgr/internal/extract"

// DefaultPerPage is the page size used when the caller does not set one.
const DefaultPerPage = 50

// Paginate assigns sequential indices to elements in corpus order and
// partitions them into pages of perPage rows. perPage <= 0 puts all rows
// on a single page. Within each page, indices are re-based to start at 0:
// the page's download TSV and its on-page script both address rows by
// that page-local index.
func Paginate(elements []*extract.Element, perPage int) [][]*extract.Element {
	if len(elements) == 0 {
		return nil
	}

	for i, e := range elements {
		e.Idx = i
		if perPage <= 0 {
			e.Chunk = 0
		} else {
			e.Chunk = i / perPage
		}
	}

	var pages [][]*extract.Element
	for _, e := range elements {
		if e.Chunk >= len(pages) {
			pages = append(pages, nil)
		}
		pages[e.Chunk] = append(pages[e.Chunk], e)
	}

	for _, page := range pages {
		for i, e := range page {
			e.Idx = i
		}
	}
	return pages
}
