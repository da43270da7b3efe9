package chunker

import "strings"

// ParsedChunk is one chunker output: a size-bounded section of a runbook
// body plus the document-level metadata it inherits.
type ParsedChunk struct {
	SectionTitle     string
	Content          string
	Tags             []string
	ApplicableShapes []string
}

// Bounds holds the two configurable chunk size thresholds.
type Bounds struct {
	MinChunkSize int
	MaxChunkSize int
}

// DefaultBounds returns the default bounds (100, 2000).
func DefaultBounds() Bounds {
	return Bounds{MinChunkSize: 100, MaxChunkSize: 2000}
}

// normalize merges/splits rawSections to honor min/max size bounds:
//   - accumulate consecutive sections into a buffer; emit once len >= min
//   - emit the buffer first if adding the next section would exceed max
//   - split an over-max buffer at a paragraph boundary at least min chars in,
//     never inside a fenced code block
//   - merge a trailing under-min buffer into the previously emitted chunk
func normalize(sections []rawSection, bounds Bounds) []emittedChunk {
	var emitted []emittedChunk
	var bufTitle string
	var bufParts []string
	bufLen := 0

	emitBuffer := func() {
		if bufLen == 0 {
			return
		}
		content := strings.Join(bufParts, "")
		for _, part := range splitOverMax(content, bounds) {
			title := bufTitle
			if len(emitted) > 0 && part.continuation {
				title = bufTitle + " (cont.)"
			}
			emitted = append(emitted, emittedChunk{title: title, content: part.text})
		}
		bufParts = nil
		bufLen = 0
	}

	for _, sec := range sections {
		if bufLen == 0 {
			bufTitle = sec.title
		}
		// If adding this section would push the buffer over max, emit first,
		// unless the buffer is still empty (a single section > max is handled
		// by splitOverMax itself).
		if bufLen > 0 && bufLen+len(sec.content) > bounds.MaxChunkSize {
			emitBuffer()
			bufTitle = sec.title
		}
		bufParts = append(bufParts, sec.content)
		bufLen += len(sec.content)
		if bufLen >= bounds.MinChunkSize {
			emitBuffer()
		}
	}
	// Trailing buffer: merge into the previously emitted chunk if any,
	// otherwise emit it standalone (it's all the document has).
	if bufLen > 0 {
		if len(emitted) > 0 {
			last := &emitted[len(emitted)-1]
			last.content = last.content + strings.Join(bufParts, "")
		} else {
			emitted = append(emitted, emittedChunk{title: bufTitle, content: strings.Join(bufParts, "")})
		}
	}
	return emitted
}

type emittedChunk struct {
	title   string
	content string
}

type splitPart struct {
	text         string
	continuation bool
}

// splitOverMax splits content into parts <= bounds.MaxChunkSize, preferring a
// "\n\n" paragraph boundary at least MinChunkSize characters into the
// remaining text, and never inside a fenced code block.
func splitOverMax(content string, bounds Bounds) []splitPart {
	if len(content) <= bounds.MaxChunkSize {
		return []splitPart{{text: content, continuation: false}}
	}

	fences := fenceSpans(content)

	var parts []splitPart
	remaining := content
	offset := 0
	first := true
	for len(remaining) > bounds.MaxChunkSize {
		cut := findParagraphCut(remaining, bounds.MinChunkSize, bounds.MaxChunkSize)
		cut = extendPastFence(fences, offset, cut)
		if cut <= 0 || cut >= len(remaining) {
			// No safe boundary found; force a hard cut at MaxChunkSize,
			// extended past any fence it would otherwise bisect.
			cut = extendPastFence(fences, offset, bounds.MaxChunkSize)
			if cut >= len(remaining) {
				break
			}
		}
		parts = append(parts, splitPart{text: remaining[:cut], continuation: !first})
		first = false
		offset += cut
		remaining = remaining[cut:]
	}
	parts = append(parts, splitPart{text: remaining, continuation: !first})
	return parts
}

// fenceSpan is a [start,end) byte range (within the original content) that a
// fenced code block occupies, end exclusive, fence delimiters included.
type fenceSpan struct{ start, end int }

func fenceSpans(content string) []fenceSpan {
	var spans []fenceSpan
	lines := strings.Split(content, "\n")
	pos := 0
	open := -1
	for _, line := range lines {
		lineStart := pos
		pos += len(line) + 1 // account for the '\n' split removed
		if isFence(line) {
			if open == -1 {
				open = lineStart
			} else {
				spans = append(spans, fenceSpan{start: open, end: pos})
				open = -1
			}
		}
	}
	if open != -1 {
		// Unterminated fence: treat the rest of the document as the span.
		spans = append(spans, fenceSpan{start: open, end: len(content)})
	}
	return spans
}

// findParagraphCut finds a "\n\n" offset within [min, max] of remaining,
// preferring the earliest one at or past min. Returns max (a hard cut at the
// search limit) if none exists.
func findParagraphCut(remaining string, min, max int) int {
	if max > len(remaining) {
		max = len(remaining)
	}
	search := remaining
	if max < len(search) {
		search = search[:max]
	}
	best := -1
	idx := 0
	for {
		rel := strings.Index(search[idx:], "\n\n")
		if rel == -1 {
			break
		}
		abs := idx + rel + 2 // cut after the blank line
		if abs >= min {
			best = abs
			break
		}
		idx = idx + rel + 2
	}
	if best == -1 {
		return max
	}
	return best
}

// extendPastFence pushes a candidate local cut (relative to `remaining`,
// whose first byte is at `offset` in the original content) past any fence
// span it falls inside, so a split never bisects a fenced code block.
func extendPastFence(fences []fenceSpan, offset, localCut int) int {
	absCut := offset + localCut
	for _, f := range fences {
		if absCut > f.start && absCut < f.end {
			return f.end - offset
		}
	}
	return localCut
}
