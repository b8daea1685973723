package engine

import (
	"regexp"
	"strings"
)

// Model output follows a lightweight markup convention rather than full
// markdown: a leading "# " marks a section heading, **text** marks a
// subheading (not bold), and leading bullet markers (•, *, -) mark list
// items. RenderMarkup converts that convention into structural HTML.
//
// Grammar, applied in order:
//  1. line-level  ^#\s+(.+)$        → <h2>$1</h2>
//  2. inline      \*\*(.*?)\*\*     → <h3>$1</h3>
//  3. line runs   ^[•*-]\s+(.+)$    → <ul>  <li>$1</li> ... </ul>

var (
	headingRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	subheadRe = regexp.MustCompile(`\*\*(.*?)\*\*`)
	bulletRe  = regexp.MustCompile(`^[•*-]\s+(.+)$`)
)

// RenderMarkup converts the model's markup convention into HTML.
func RenderMarkup(text string) string {
	out := headingRe.ReplaceAllString(text, "<h2>$1</h2>")
	out = subheadRe.ReplaceAllString(out, "<h3>$1</h3>")

	lines := strings.Split(out, "\n")
	processed := make([]string, 0, len(lines))
	inList := false

	for _, line := range lines {
		if m := bulletRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			if !inList {
				processed = append(processed, "<ul>")
				inList = true
			}
			processed = append(processed, "  <li>"+m[1]+"</li>")
			continue
		}
		if inList {
			processed = append(processed, "</ul>")
			inList = false
		}
		processed = append(processed, line)
	}
	if inList {
		processed = append(processed, "</ul>")
	}

	return strings.Join(processed, "\n")
}

var numberedRe = regexp.MustCompile(`\d+\.`)

// ParseNumberedPoints extracts up to n discrete items from a numbered-list
// response. Fragments are trimmed; empty fragments and anything before the
// first number are discarded. Excess items beyond n are dropped.
func ParseNumberedPoints(text string, n int) []string {
	parts := numberedRe.Split(text, -1)
	if len(parts) > 0 {
		parts = parts[1:] // text before the first point
	}
	points := make([]string, 0, n)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		points = append(points, p)
		if len(points) == n {
			break
		}
	}
	return points
}

var sectionSplitRe = regexp.MustCompile(`<h2>|<h3>`)

// ContentToPoints reduces rendered HTML content to at most six display
// points for a saved record: one per heading section when the content has
// enough of them, otherwise the first non-empty lines.
func ContentToPoints(content string) []string {
	const maxPoints = 6

	sections := make([]string, 0, maxPoints)
	for _, s := range sectionSplitRe.Split(content, -1) {
		if strings.TrimSpace(s) != "" {
			sections = append(sections, s)
		}
	}
	if len(sections) >= maxPoints {
		points := make([]string, 0, maxPoints)
		for _, s := range sections[:maxPoints] {
			points = append(points, StripTags(s))
		}
		return points
	}

	points := make([]string, 0, maxPoints)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		points = append(points, line)
		if len(points) == maxPoints {
			break
		}
	}
	return points
}
