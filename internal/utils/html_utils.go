package utils

import (
	"html/template"
	"strings"
)

// CommentHTML escapes a comment body and keeps its line breaks visible.
// The only markup in the result is the <br> inserted for each newline.
func CommentHTML(body string) template.HTML {
	if body == "" {
		return ""
	}

	escaped := template.HTMLEscapeString(body)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>\n")

	return template.HTML(escaped)
}
