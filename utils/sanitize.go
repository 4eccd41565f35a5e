package utils

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// posts are plain text, so every tag is stripped
var sanitizer = bluemonday.StrictPolicy()

// maxSanitizePasses bounds the strip/unescape loop for entity-encoded markup
const maxSanitizePasses = 3

// Sanitize strips markup and returns plain text. The policy escapes what it keeps
// (' becomes &#39;), so the output is unescaped again; markup that only appears
// after unescaping is stripped on the next pass.
func Sanitize(input string) string {
	out := input
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(sanitizer.Sanitize(out))
		if next == out {
			break
		}
		out = next
	}
	return out
}
