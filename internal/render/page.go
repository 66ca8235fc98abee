package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/comppsych/fmriprepgr/internal/extract"
	"github.com/yuin/goldmark"
)

// reviewerInstructions is rendered into every page head. Kept as markdown
// so the blurb stays readable in source.
const reviewerInstructions = `### Reviewing this page

Rate each figure **Good** or **Bad** and add notes where something looks
off. Your ratings, notes, and which figures have been on screen are kept
in the page; use the *Download* button to save them as a TSV before
closing the tab. Enter your initials below so the download records who
reviewed this page.`

// pageScript drives the interactive QC controls: the subjs array is
// filled by the per-row snippets, qc_update mutates it by row index, an
// IntersectionObserver flips been_on_screen, and the download button
// serializes everything to the page's TSV name.
const pageScript = `
    var subjs = [];
    function qc_update(idx, field, value) {
      subjs[idx][field] = value;
    }
    function watch_reportlets() {
      var observer = new IntersectionObserver(function (entries) {
        entries.forEach(function (entry) {
          if (entry.isIntersecting) {
            var container = entry.target.closest('div[id^="id-"]');
            if (container === null) { return; }
            var idx = parseInt(container.id.split('_')[0].replace('id-', ''), 10);
            subjs[idx]['been_on_screen'] = true;
          }
        });
      });
      document.querySelectorAll('.svg-reportlet').forEach(function (el) {
        observer.observe(el);
      });
    }
    function download_tsv(filename) {
      var rater = document.getElementById('reviewer-initials').value;
      var cols = Object.keys(subjs[0]);
      var lines = [cols.join('\t')];
      subjs.forEach(function (row) {
        row['rater'] = rater;
        lines.push(cols.map(function (c) {
          return row[c] === null ? '' : String(row[c]);
        }).join('\t'));
      });
      var blob = new Blob([lines.join('\n')], {type: 'text/tab-separated-values'});
      var a = document.createElement('a');
      a.href = URL.createObjectURL(blob);
      a.download = filename;
      a.click();
      URL.revokeObjectURL(a.href);
    }
    document.addEventListener('DOMContentLoaded', watch_reportlets);
`

const pageStyle = `
    body { font-family: sans-serif; margin: 2em; }
    h2 { font-size: 1em; margin-bottom: 0.2em; }
    .bids-entity { font-weight: bold; color: #205080; }
    .radio label { margin-right: 1em; }
    .svg-reportlet { width: 100%; }
    nav { position: sticky; top: 0; background: #fff; border-bottom: 1px solid #ccc; padding: 0.5em 0; }
    .instructions { background: #f5f5f5; padding: 0.5em 1em; border-radius: 4px; }
`

// Page writes one consolidated review document: head, nav, reviewer
// panel, one snippet per row, foot.
func Page(w io.Writer, reportType string, chunk int, dlName string, rows []*extract.Element) error {
	instructions, err := renderMarkdown(reviewerInstructions)
	if err != nil {
		return err
	}

	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("  <meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "  <title>Consolidated report: %s (page %03d)</title>\n", reportType, chunk)
	fmt.Fprintf(&b, "  <style>%s  </style>\n", pageStyle)
	b.WriteString("  <script type=\"text/javascript\">")
	b.WriteString(pageScript)
	b.WriteString("  </script>\n</head>\n<body>\n")
	fmt.Fprintf(&b, "  <nav>\n    <span>%s &mdash; page %03d &mdash; %d figures</span>\n", reportType, chunk, len(rows))
	fmt.Fprintf(&b, "    <button onclick=\"download_tsv('%s')\">Download</button>\n  </nav>\n", dlName)
	b.WriteString("  <div class=\"instructions\">\n")
	b.Write(instructions)
	b.WriteString("  </div>\n")
	b.WriteString("  <p> Reviewer initials: <input type=\"text\" id=\"reviewer-initials\" size=\"4\"></p>\n")
	for _, e := range rows {
		b.WriteString(Snippet(e))
	}
	b.WriteString("</body>\n</html>\n")

	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

func renderMarkdown(src string) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return nil, fmt.Errorf("render instructions: %w", err)
	}
	return buf.Bytes(), nil
}
