package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// maxPasses bounds the unescape and sanitize loop for nested entity encodings.
const maxPasses = 5

// Text strips any markup from s, unescapes entities and trims surrounding
// whitespace. Inner whitespace is preserved. Escaped markup such as
// "&lt;b&gt;" is decoded and stripped too, so the result never carries tags.
func Text(s string) string {
	for i := 0; i < maxPasses; i++ {
		out := html.UnescapeString(policy.Sanitize(s))
		if out == s {
			break
		}
		s = out
	}
	return strings.TrimSpace(s)
}
