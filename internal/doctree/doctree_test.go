package doctree

import (
	"strings"
	"testing"
)

const sampleDoc = `<html><body>
<div id="sec">
  <h3 class="run-title">Anatomical</h3>
  <p class="elem-caption">First caption.</p>
  <p class="elem-caption">Second caption.</p>
  <object class="svg-reportlet" data="fig.svg"></object>
</div>
</body></html>`

func mustParse(t *testing.T, doc string) *Node {
	t.Helper()
	root, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return root
}

func TestFindAll_TagAndClass(t *testing.T) {
	root := mustParse(t, sampleDoc)

	caps := root.FindAll("p", "elem-caption")
	if len(caps) != 2 {
		t.Fatalf("expected 2 captions, got %d", len(caps))
	}
	if caps[0].Text() != "First caption." {
		t.Errorf("caption[0]: got %q", caps[0].Text())
	}

	// Empty tag matches any element carrying the class.
	figs := root.FindAll("", "svg-reportlet")
	if len(figs) != 1 {
		t.Fatalf("expected 1 reportlet, got %d", len(figs))
	}
	if v, ok := figs[0].Attr("data"); !ok || v != "fig.svg" {
		t.Errorf("data attr: got %q (present=%v)", v, ok)
	}
}

func TestParentAndHasClass(t *testing.T) {
	root := mustParse(t, sampleDoc)
	fig := root.FindAll("", "svg-reportlet")[0]

	parent := fig.Parent()
	if parent == nil || parent.Tag() != "div" {
		t.Fatalf("expected div parent, got %v", parent)
	}
	titles := parent.FindAll("h3", "run-title")
	if len(titles) != 1 || titles[0].Text() != "Anatomical" {
		t.Fatalf("run-title lookup failed: %v", titles)
	}
	if !titles[0].HasClass("run-title") || titles[0].HasClass("elem-caption") {
		t.Error("HasClass mismatch")
	}
}

func TestPrevSiblings_NearestFirst(t *testing.T) {
	root := mustParse(t, sampleDoc)
	fig := root.FindAll("", "svg-reportlet")[0]

	prev := fig.PrevSiblings()
	if len(prev) != 3 {
		t.Fatalf("expected 3 previous siblings, got %d", len(prev))
	}
	// Nearest first: second caption, first caption, then the heading.
	if prev[0].Text() != "Second caption." {
		t.Errorf("prev[0]: got %q", prev[0].Text())
	}
	if prev[2].Tag() != "h3" {
		t.Errorf("prev[2]: expected h3, got %q", prev[2].Tag())
	}
}

func TestText_ConcatenatesNestedContent(t *testing.T) {
	root := mustParse(t, `<html><body><p>Hello <b>bold</b> world</p></body></html>`)
	p := root.FindAll("p", "")[0]
	if got := p.Text(); got != "Hello bold world" {
		t.Errorf("expected %q, got %q", "Hello bold world", got)
	}
}
