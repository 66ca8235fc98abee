// Package extract pulls reviewable figure elements out of per-subject
// fMRIPrep report documents and classifies them into report types.
package extract

import (
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/comppsych/fmriprepgr/internal/bids"
	"github.com/comppsych/fmriprepgr/internal/doctree"
)

// Marker classes fMRIPrep uses in its report HTML. Fixed, not configurable.
const (
	reportletClass = "svg-reportlet"
	runTitleClass  = "run-title"
	captionClass   = "elem-caption"
)

// Element is one reviewable figure recovered from a subject report.
// RunTitle and ElemCaption are "" when the document provided none.
// ReportType is empty until Classify runs; Idx and Chunk are assigned
// during pagination.
type Element struct {
	Entities    *bids.Entities
	Path        string
	Filename    string
	RunTitle    string
	ElemCaption string
	ReportType  string
	Idx         int
	Chunk       int
}

// errNotUnique signals a retrieval that did not find exactly one match.
var errNotUnique = errors.New("expected exactly one match")

// ParseReport extracts one Element per figure-embedding node in a subject
// report document, in document order. Extraction never drops a figure node.
func ParseReport(r io.Reader) ([]*Element, error) {
	root, err := doctree.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}

	var elements []*Element
	// Run titles are hierarchical: an element without its own title
	// inherits the most recently seen one. Scoped to this parse pass.
	prevRunTitle := ""

	for _, fig := range root.FindAll("", reportletClass) {
		figPath, ok := fig.Attr("src")
		if !ok || figPath == "" {
			figPath, _ = fig.Attr("data")
		}

		elem := &Element{
			Entities: bids.ParseEntities(figPath),
			Path:     figPath,
			Filename: path.Base(figPath),
		}

		parent := fig.Parent()

		title, err := uniqueText(parent.FindAll("h3", runTitleClass))
		if err != nil {
			elem.RunTitle = prevRunTitle
		} else {
			elem.RunTitle = title
			prevRunTitle = title
		}

		// Some reportlets sit directly under the document body, so the
		// parent scope holds every caption in the report. Fall back to
		// the nearest preceding sibling caption in that case.
		caption, err := uniqueText(parent.FindAll("p", captionClass))
		if err != nil {
			for _, prev := range fig.PrevSiblings() {
				if prev.HasClass(captionClass) {
					caption = prev.Text()
					break
				}
			}
		}
		elem.ElemCaption = caption

		elements = append(elements, elem)
	}
	return elements, nil
}

// uniqueText returns the text of the single node in matches, or an error
// when there are zero or multiple matches.
func uniqueText(matches []*doctree.Node) (string, error) {
	if len(matches) != 1 {
		return "", fmt.Errorf("%w, got %d", errNotUnique, len(matches))
	}
	return matches[0].Text(), nil
}
