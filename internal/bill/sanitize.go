package bill

import (
	"regexp"
	"strings"
)

// tagPattern matches any <...> markup span.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// entityPairs is the fixed entity set the LIS summary feed actually
// emits, decoded in this order, each replacement seeing the output of
// the one before it. Unknown entities stay literal; a generalized
// entity table (html.UnescapeString) is deliberately not used because
// it would decode entities the source never produces.
var entityPairs = [...][2]string{
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&nbsp;", " "},
}

// Sanitize strips markup tags from feed text, decodes the fixed entity
// set, and trims surrounding whitespace. Plain text comes back trimmed
// but otherwise unchanged. Not strictly idempotent: a literal
// "&amp;lt;" decodes all the way to "<" because &amp; is replaced
// first. That matches the source behavior and is left as is.
func Sanitize(text string) string {
	text = tagPattern.ReplaceAllString(text, "")
	for _, p := range entityPairs {
		text = strings.ReplaceAll(text, p[0], p[1])
	}
	return strings.TrimSpace(text)
}
