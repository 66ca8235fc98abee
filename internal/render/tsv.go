package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/comppsych/fmriprepgr/internal/extract"
)

// WriteTSV emits the page's metadata table: one row per element in
// page-local index order. Entity columns are the union over the page's
// rows, in first-seen order; absent values are left empty.
func WriteTSV(w io.Writer, rows []*extract.Element) error {
	var entityCols []string
	seen := make(map[string]bool)
	for _, e := range rows {
		for _, k := range e.Entities.Keys() {
			if idExclusions[k] || seen[k] {
				continue
			}
			seen[k] = true
			entityCols = append(entityCols, k)
		}
	}

	tw := csv.NewWriter(w)
	tw.Comma = '\t'

	header := append([]string{"idx", "chunk"}, entityCols...)
	header = append(header, "report_type", "filename", "run_title", "elem_caption")
	if err := tw.Write(header); err != nil {
		return fmt.Errorf("write tsv header: %w", err)
	}

	for _, e := range rows {
		rec := []string{strconv.Itoa(e.Idx), strconv.Itoa(e.Chunk)}
		for _, k := range entityCols {
			rec = append(rec, e.Entities.GetString(k))
		}
		rec = append(rec, e.ReportType, e.Filename, e.RunTitle, e.ElemCaption)
		if err := tw.Write(rec); err != nil {
			return fmt.Errorf("write tsv row %d: %w", e.Idx, err)
		}
	}
	tw.Flush()
	return tw.Error()
}
