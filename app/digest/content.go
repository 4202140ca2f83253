package digest

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

var (
	codeFenceRegex = regexp.MustCompile("(?s)```.*?```")
	linkRegex      = regexp.MustCompile(`!?\[[^\n\]]*\]\(\s*[^)\s]*\s*\)`)
)

// Span is a half-open [Start,End) byte range over formatted text marking
// an atomic unit that truncation must not split.
type Span struct {
	Start int
	End   int
}

// Content is one free-text body in its quoted form, together with the
// protected spans found inside it and the cut length applied by the
// fitting pass. Created once per issue or comment body, never shared.
type Content struct {
	formatted string
	spans     []Span
	cutLength int
}

// NewContent quotes raw markdown and discovers its protected spans. Code
// fences are matched first; links and images are only protected where
// they do not fall inside a fence, so the span set is always ordered and
// disjoint.
func NewContent(raw string) *Content {
	formatted := quoteMarkdown(raw)

	fences := make([]Span, 0, 4)
	for _, m := range codeFenceRegex.FindAllStringIndex(formatted, -1) {
		fences = append(fences, Span{Start: m[0], End: m[1]})
	}

	spans := make([]Span, 0, len(fences)+4)
	spans = append(spans, fences...)
	for _, m := range linkRegex.FindAllStringIndex(formatted, -1) {
		if !intersectsAny(fences, m[0], m[1]) {
			spans = append(spans, Span{Start: m[0], End: m[1]})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	assertOrderedDisjoint(spans)

	return &Content{
		formatted: formatted,
		spans:     spans,
		cutLength: len(formatted),
	}
}

func quoteMarkdown(raw string) string {
	return ">" + strings.ReplaceAll(raw, "\n", "\n>")
}

// Len is the size of the untrimmed formatted text.
func (c *Content) Len() int {
	return len(c.formatted)
}

// CutLength is the currently applied cut position.
func (c *Content) CutLength() int {
	return c.cutLength
}

// Spans exposes the protected span set.
func (c *Content) Spans() []Span {
	return c.spans
}

// AddToCounter accumulates this content's positional weights into the
// shared fitting counter. Positions outside protected spans contribute
// weight 1 at their own index; a protected span contributes its entire
// length at its last index, pricing the span as indivisible.
func (c *Content) AddToCounter(counter []int) {
	if len(c.formatted) > len(counter) {
		panic("digest: counter array smaller than content")
	}
	i := 0
	for _, span := range c.spans {
		for j := i; j < span.Start; j++ {
			counter[j]++
		}
		counter[span.End-1] += span.End - span.Start
		i = span.End
	}
	for j := i; j < len(c.formatted); j++ {
		counter[j]++
	}
}

// Trim applies a cut length. A cut at or beyond the full length is a
// no-op; a cut inside a protected span snaps down to the span start so
// the span is dropped whole. The final position never splits a UTF-8
// sequence.
func (c *Content) Trim(size int) {
	if size >= len(c.formatted) {
		c.cutLength = len(c.formatted)
		return
	}
	cut := c.correctedIndex(size)
	for cut > 0 && !utf8.RuneStart(c.formatted[cut]) {
		cut--
	}
	c.cutLength = cut
}

// Rendered returns the trimmed text, with an ellipsis marker appended
// when anything was cut away.
func (c *Content) Rendered() string {
	if c.cutLength >= len(c.formatted) {
		return c.formatted
	}
	return c.formatted[:c.cutLength] + ellipsis
}

// correctedIndex snaps an index that falls inside a protected span down
// to the span's start.
func (c *Content) correctedIndex(index int) int {
	for _, span := range c.spans {
		if span.Start <= index && index < span.End {
			return span.Start
		}
	}
	return index
}

func intersectsAny(spans []Span, start, end int) bool {
	for _, s := range spans {
		if start < s.End && s.Start < end {
			return true
		}
	}
	return false
}

// assertOrderedDisjoint enforces the span invariant the fitting algorithm
// depends on. Spans come from a single left-to-right scan, so a violation
// is a programming error, not an input condition.
func assertOrderedDisjoint(spans []Span) {
	for i, s := range spans {
		if s.Start < 0 || s.End <= s.Start {
			panic("digest: malformed protected span")
		}
		if i > 0 && s.Start < spans[i-1].End {
			panic("digest: protected spans overlap or are unordered")
		}
	}
}
