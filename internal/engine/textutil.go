package engine

import (
	"regexp"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// StripTags removes HTML tags and trims whitespace.
func StripTags(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

// TruncateInput caps model input at the configured transcript limit,
// appending "..." when truncated. Safe for UTF-8.
func TruncateInput(s string) string {
	return strutil.TruncateWith(s, cfg.MaxTranscriptChars, "...")
}
