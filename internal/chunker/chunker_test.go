package chunker

import (
	"fmt"
	"testing"

	"github.com/comppsych/fmriprepgr/internal/bids"
	"github.com/comppsych/fmriprepgr/internal/extract"
)

func makeElements(n int) []*extract.Element {
	elements := make([]*extract.Element, n)
	for i := range elements {
		name := fmt.Sprintf("sub-%02d_desc-coreg_bold.svg", i)
		elements[i] = &extract.Element{
			Entities:   bids.ParseEntities(name),
			Path:       name,
			Filename:   name,
			ReportType: "coreg",
		}
	}
	return elements
}

func TestPaginate_ChunkBoundaries(t *testing.T) {
	elements := makeElements(120)
	pages := Paginate(elements, 50)

	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	wantSizes := []int{50, 50, 20}
	for i, want := range wantSizes {
		if len(pages[i]) != want {
			t.Errorf("page[%d]: expected %d rows, got %d", i, want, len(pages[i]))
		}
	}

	// Last page re-indexed 0..19.
	for i, e := range pages[2] {
		if e.Idx != i {
			t.Errorf("page[2] row %d: expected idx %d, got %d", i, i, e.Idx)
		}
		if e.Chunk != 2 {
			t.Errorf("page[2] row %d: expected chunk 2, got %d", i, e.Chunk)
		}
	}
}

func TestPaginate_ConcatenationReproducesCorpusOrder(t *testing.T) {
	elements := makeElements(73)
	pages := Paginate(elements, 25)

	var flat []*extract.Element
	for _, page := range pages {
		flat = append(flat, page...)
	}
	if len(flat) != len(elements) {
		t.Fatalf("expected %d rows after concatenation, got %d", len(elements), len(flat))
	}
	for i := range elements {
		if flat[i] != elements[i] {
			t.Fatalf("row %d out of order after pagination", i)
		}
	}
}

func TestPaginate_UnpaginatedSinglePage(t *testing.T) {
	elements := makeElements(120)
	pages := Paginate(elements, 0)

	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	for i, e := range pages[0] {
		if e.Idx != i || e.Chunk != 0 {
			t.Errorf("row %d: idx=%d chunk=%d", i, e.Idx, e.Chunk)
		}
	}
}

func TestPaginate_Empty(t *testing.T) {
	if pages := Paginate(nil, 50); pages != nil {
		t.Errorf("expected nil pages, got %v", pages)
	}
}

func TestPaginate_ExactMultiple(t *testing.T) {
	pages := Paginate(makeElements(100), 50)
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
}
