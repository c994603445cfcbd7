package parser

import (
	"strings"

	"golang.org/x/net/html"
)

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hasClass reports whether the class attribute of n contains the token.
func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findAll returns the descendants of root carrying class, in document order.
// An empty tag matches any element.
func findAll(root *html.Node, tag, class string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if hasClass(c, class) && (tag == "" || c.Data == tag) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// precedingWithClass returns the nearest earlier sibling of n carrying class.
func precedingWithClass(n *html.Node, class string) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if hasClass(s, class) {
			return s
		}
	}
	return nil
}
