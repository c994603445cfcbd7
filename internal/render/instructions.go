package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

//go:embed instructions.md
var defaultInstructions []byte

// DefaultInstructions returns the reviewer instructions shipped with the tool.
func DefaultInstructions() []byte {
	return bytes.Clone(defaultInstructions)
}

// Instructions converts reviewer instructions from Markdown to HTML that is
// safe to embed in every page.
func Instructions(src []byte) (template.HTML, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	if err := goldmark.New().Convert(src, &buf); err != nil {
		return "", fmt.Errorf("convert instructions: %w", err)
	}

	clean := bluemonday.UGCPolicy().SanitizeBytes(buf.Bytes())
	return template.HTML(clean), nil
}
