// Package render emits the consolidated review pages: one interactive HTML
// fragment per figure, page boilerplate around them, and a sibling
// metadata TSV per page.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/comppsych/fmriprepgr/internal/extract"
)

// idExclusions never reach the per-row JSON state blob; they are
// structural fields, not reviewable metadata.
var idExclusions = map[string]bool{
	"path":         true,
	"run_title":    true,
	"elem_caption": true,
	"extension":    true,
	"filename":     true,
}

// headerExclusions additionally drop fields already shown elsewhere on
// the row header.
var headerExclusions = map[string]bool{
	"desc":        true,
	"report_type": true,
}

// Snippet renders one figure row as a self-contained interactive HTML
// fragment: an embedded JSON state blob, an entity header, the Good/Bad
// rating pair, a notes box, and the figure object itself.
func Snippet(e *extract.Element) string {
	idx := e.Idx
	baseName := e.Filename
	if dot := strings.Index(baseName, "."); dot >= 0 {
		baseName = baseName[:dot]
	}

	var header []string
	for _, k := range e.Entities.Keys() {
		if idExclusions[k] || headerExclusions[k] {
			continue
		}
		v, _ := e.Entities.Get(k)
		header = append(header, fmt.Sprintf(`%s <span class="bids-entity">%v</span>`, k, v))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n    <div id=\"id-%d_filename-%s\">\n", idx, baseName)
	b.WriteString("      <script type=\"text/javascript\">\n")
	fmt.Fprintf(&b, "        var subj_qc = %s\n", stateBlob(e))
	b.WriteString("      </script>\n")
	fmt.Fprintf(&b, "      <h2>idx-%d: %s</h2>\n", idx, strings.Join(header, ", "))
	b.WriteString("      <div class=\"radio\">\n")
	fmt.Fprintf(&b, "        <label><input type=\"radio\" name=\"inlineRadio%d\" id=\"inlineRating1\" value=\"1\" onclick=\"qc_update(%d, 'report', this.value)\"> Good </label>\n", idx, idx)
	fmt.Fprintf(&b, "        <label><input type=\"radio\" name=\"inlineRadio%d\" id=\"inlineRating0\" value=\"0\" onclick=\"qc_update(%d, 'report', this.value)\"> Bad</label>\n", idx, idx)
	b.WriteString("      </div>\n")
	fmt.Fprintf(&b, "      <p> Notes: <input type=\"text\" id=\"box%d\" oninput=\"qc_update(%d, 'note', this.value)\"></p>\n", idx, idx)
	fmt.Fprintf(&b, "      <object class=\"svg-reportlet\" type=\"image/svg+xml\" data=\"%s\"> </object>\n", e.Path)
	b.WriteString("    </div>\n")
	b.WriteString("    <script type=\"text/javascript\">\n")
	b.WriteString("      subj_qc[\"report\"] = -1\n")
	b.WriteString("      subjs.push(subj_qc)\n")
	b.WriteString("    </script>\n")
	return b.String()
}

// stateBlob builds the per-row JSON object by hand to keep a stable key
// order: idx, chunk, entities, report type, then the synthetic review
// fields the page script mutates.
func stateBlob(e *extract.Element) string {
	var b strings.Builder
	b.WriteByte('{')
	writePair(&b, "idx", e.Idx)
	b.WriteString(", ")
	writePair(&b, "chunk", e.Chunk)
	for _, k := range e.Entities.Keys() {
		if idExclusions[k] {
			continue
		}
		v, _ := e.Entities.Get(k)
		b.WriteString(", ")
		writePair(&b, k, v)
	}
	b.WriteString(", ")
	writePair(&b, "report_type", e.ReportType)
	b.WriteString(`, "been_on_screen": false, "rater": null, "report": null, "note": null}`)
	return b.String()
}

func writePair(b *strings.Builder, key string, val any) {
	kb, _ := json.Marshal(key)
	vb, _ := json.Marshal(val)
	b.Write(kb)
	b.WriteString(": ")
	b.Write(vb)
}
