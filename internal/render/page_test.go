package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/comppsych/fmriprepgr/internal/extract"
)

func TestPage_ContainsBoilerplateAndSnippets(t *testing.T) {
	rows := []*extract.Element{dsegElement()}

	var buf bytes.Buffer
	if err := Page(&buf, "dseg", 0, "consolidated_dseg_000.tsv", rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"var subjs = [];",
		"function qc_update(idx, field, value)",
		"download_tsv('consolidated_dseg_000.tsv')",
		`id="reviewer-initials"`,
		`id="id-0_filename-sub-22293_acq-mprage_rec-prenorm_run-1_dseg"`,
		"</html>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}

	// The markdown instructions render to HTML.
	if !strings.Contains(out, "<h3") || !strings.Contains(out, "<strong>Good</strong>") {
		t.Error("reviewer instructions were not rendered from markdown")
	}
}

func TestWriteTSV_ColumnsAndValues(t *testing.T) {
	e := dsegElement()

	var buf bytes.Buffer
	if err := WriteTSV(&buf, []*extract.Element{e}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}

	header := strings.Split(lines[0], "\t")
	row := strings.Split(lines[1], "\t")
	if len(header) != len(row) {
		t.Fatalf("header has %d columns, row has %d", len(header), len(row))
	}

	byCol := make(map[string]string, len(header))
	for i, h := range header {
		byCol[h] = row[i]
	}
	for col, want := range map[string]string{
		"idx":          "0",
		"subject":      "22293",
		"run":          "1",
		"report_type":  "dseg",
		"filename":     "sub-22293_acq-mprage_rec-prenorm_run-1_dseg.svg",
		"run_title":    "Brain mask and brain tissue segmentation of the T1w",
		"elem_caption": "This panel shows the template T1-weighted image.",
	} {
		if got := byCol[col]; got != want {
			t.Errorf("column %q: expected %q, got %q", col, want, got)
		}
	}
	if _, present := byCol["path"]; present {
		t.Error("excluded column path leaked into TSV")
	}
}
