package parser

import "golang.org/x/net/html"

// Outcome tags the result of a single-match lookup.
type Outcome int

const (
	NotFound Outcome = iota
	Found
	Ambiguous
)

// Lookup is the result of searching a container for exactly one marked
// element. Text is only meaningful when Outcome is Found.
type Lookup struct {
	Outcome Outcome
	Text    string
}

// unique expects exactly one node and returns its text.
func unique(nodes []*html.Node) Lookup {
	switch len(nodes) {
	case 0:
		return Lookup{Outcome: NotFound}
	case 1:
		return Lookup{Outcome: Found, Text: textContent(nodes[0])}
	}
	return Lookup{Outcome: Ambiguous}
}
