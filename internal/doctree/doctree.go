// Package doctree is a minimal read-only view over a parsed HTML document.
//
// It exposes just the traversal surface the report extractor needs:
// attributes, text content, parent, children and previous siblings, plus
// class-based descendant search. Callers never mutate the tree.
package doctree

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Node wraps one node of the parsed document.
type Node struct {
	n *html.Node
}

// Parse reads an HTML document and returns its root node.
func Parse(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Node{n: doc}, nil
}

// Tag returns the element's tag name, or "" for non-element nodes.
func (n *Node) Tag() string {
	if n.n.Type != html.ElementNode {
		return ""
	}
	return n.n.Data
}

// Attr returns the value of the named attribute and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// HasClass reports whether the node's class attribute contains c.
func (n *Node) HasClass(c string) bool {
	cls, ok := n.Attr("class")
	if !ok {
		return false
	}
	for _, f := range strings.Fields(cls) {
		if f == c {
			return true
		}
	}
	return false
}

// Parent returns the node's parent, or nil at the document root.
func (n *Node) Parent() *Node {
	if n.n.Parent == nil {
		return nil
	}
	return &Node{n: n.n.Parent}
}

// Children returns the node's element children in document order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &Node{n: c})
		}
	}
	return out
}

// PrevSiblings returns the node's preceding element siblings, nearest first.
func (n *Node) PrevSiblings() []*Node {
	var out []*Node
	for s := n.n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			out = append(out, &Node{n: s})
		}
	}
	return out
}

// Text returns the node's concatenated text content, trimmed.
func (n *Node) Text() string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(h *html.Node) {
		if h.Type == html.TextNode {
			buf.WriteString(h.Data)
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n.n)
	return strings.TrimSpace(buf.String())
}

// FindAll returns descendants matching tag and class, in document order.
// An empty tag matches any element; an empty class matches any element.
func (n *Node) FindAll(tag, class string) []*Node {
	var out []*Node
	var walk func(*html.Node)
	walk = func(h *html.Node) {
		if h.Type == html.ElementNode && h != n.n {
			cand := &Node{n: h}
			if (tag == "" || h.Data == tag) && (class == "" || cand.HasClass(class)) {
				out = append(out, cand)
			}
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n.n)
	return out
}
