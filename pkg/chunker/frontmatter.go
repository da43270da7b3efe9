package chunker

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// FrontMatter holds the recognized keys from a runbook's YAML front-matter
// block.
type FrontMatter struct {
	Title            string   `yaml:"title"`
	Tags             []string `yaml:"tags"`
	ApplicableShapes []string `yaml:"applicable_shapes"`
}

// extractFrontMatter strips a leading "---\n...\n---" YAML block from doc and
// parses it. Missing fields default to empty; a document with no
// front-matter fence returns a zero FrontMatter and the document unchanged.
func extractFrontMatter(doc string) (FrontMatter, string) {
	const fence = "---"
	if !strings.HasPrefix(doc, fence) {
		return FrontMatter{}, doc
	}
	// First line is the opening fence; find the closing fence line.
	rest := doc[len(fence):]
	rest = strings.TrimPrefix(rest, "\r\n")
	rest = strings.TrimPrefix(rest, "\n")

	idx := strings.Index(rest, "\n"+fence)
	if idx == -1 {
		return FrontMatter{}, doc
	}
	block := rest[:idx]
	after := rest[idx+1+len(fence):]
	after = strings.TrimPrefix(after, "\r\n")
	after = strings.TrimPrefix(after, "\n")

	var fm FrontMatter
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		// Malformed front-matter is treated as absent rather than a fatal
		// ingestion error — the body still gets chunked.
		return FrontMatter{}, doc
	}
	return fm, after
}
