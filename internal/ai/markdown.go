package ai

import (
	"regexp"
	"strings"
)

var (
	mdHeadingLine = regexp.MustCompile(`(?m)^# .*`)
	mdBold        = regexp.MustCompile(`\*\*(.*?)\*\*`)
	mdItalic      = regexp.MustCompile(`\*(.*?)\*`)
	mdInlineCode  = regexp.MustCompile("`([^`]*)`")
	mdLink        = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	mdBlankLines  = regexp.MustCompile(`\n{2,}`)
	mdListDash    = regexp.MustCompile(`(?m)^-\s+`)
)

// MarkdownToText strips the markdown a speech engine would read aloud:
// top-level heading lines are dropped, emphasis and inline code keep their
// text, links keep their label, runs of blank lines collapse, list dashes
// go away and double quotes become single quotes.
func MarkdownToText(md string) string {
	s := mdHeadingLine.ReplaceAllString(md, "")
	s = mdBold.ReplaceAllString(s, "$1")
	s = mdItalic.ReplaceAllString(s, "$1")
	s = mdInlineCode.ReplaceAllString(s, "$1")
	s = mdLink.ReplaceAllString(s, "$1")
	s = mdBlankLines.ReplaceAllString(s, "\n")
	s = mdListDash.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, `"`, "'")
	return strings.TrimSpace(s)
}
