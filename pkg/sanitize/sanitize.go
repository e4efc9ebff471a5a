package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text strips every HTML tag from s, unescapes entities and collapses
// whitespace. Used for names, addresses and other free-text columns.
func Text(s string) string {
	if s == "" {
		return s
	}
	clean := html.UnescapeString(policy.Sanitize(s))
	return strings.Join(strings.Fields(clean), " ")
}

// Optional applies Text to a nullable field. Blank results become nil.
func Optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := Text(*s)
	if v == "" {
		return nil
	}
	return &v
}
