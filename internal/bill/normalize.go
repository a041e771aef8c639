package bill

import (
	"regexp"
	"strings"
)

// idPattern matches a chamber prefix followed by a possibly zero-padded
// bill number, after trimming and uppercasing.
var idPattern = regexp.MustCompile(`^([A-Z]+)0*([0-9]+)$`)

// NormalizeID canonicalizes a bill identifier: trim, uppercase, strip
// leading zeros from the number ("hb0009" → "HB9"). The canonical form
// is the only form used for equality, joins, and map keys, and must be
// applied to both feed-side and user-requested identifiers before any
// lookup. Input that doesn't look like a bill ID passes through
// uppercased and trimmed rather than failing; idempotent either way.
func NormalizeID(raw string) string {
	id := strings.ToUpper(strings.TrimSpace(raw))
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return id
	}
	num := strings.TrimLeft(m[2], "0")
	if num == "" {
		num = "0"
	}
	return m[1] + num
}
