package api

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// unsafeHrefRe matches href/src attributes with dangerous URL schemes in
// goldmark output.
var unsafeHrefRe = regexp.MustCompile(`(?i)(href|src)\s*=\s*["'](javascript|data|vbscript):[^"']*["']`)

var markdown = goldmark.New(
	goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
)

// RenderMarkdown converts a character reply to HTML for the chat transcript.
// Raw HTML in the source is escaped by goldmark's default renderer; unsafe
// link schemes are stripped afterwards.
func RenderMarkdown(source string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return source
	}
	return unsafeHrefRe.ReplaceAllString(buf.String(), `$1="#"`)
}
