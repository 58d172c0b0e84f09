// Package guide embeds the data-gathering guide and renders it for terminals
// and the HTTP server.
package guide

import (
	"bytes"
	_ "embed"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

//go:embed guide.md
var source []byte

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown returns the full guide.
func Markdown() string {
	return string(source)
}

// Chapters returns the title of every chapter in order.
func Chapters() []string {
	chs := chapters(source)
	titles := make([]string, len(chs))
	for i, c := range chs {
		titles[i] = c.title
	}
	return titles
}

// Chapter returns the markdown of chapter n, counting from 1.
func Chapter(n int) (string, error) {
	chs := chapters(source)
	if n < 1 || n > len(chs) {
		return "", eris.Errorf("guide: no chapter %d (have %d)", n, len(chs))
	}
	return strings.TrimSpace(string(source[chs[n-1].start:chs[n-1].end])) + "\n", nil
}

// chapter is a level-2 section of the guide; start and end are byte offsets
// into the source, end being the start of the next chapter.
type chapter struct {
	title      string
	start, end int
}

// chapters walks the parsed document so headings inside code blocks are
// never mistaken for chapter breaks.
func chapters(src []byte) []chapter {
	doc := md.Parser().Parse(text.NewReader(src))

	var out []chapter
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level == 2 && h.Lines().Len() > 0 {
			out = append(out, chapter{
				title: headingText(h, src),
				start: lineStart(src, h.Lines().At(0).Start),
			})
		}
		return ast.WalkSkipChildren, nil
	})
	for i := range out {
		if i+1 < len(out) {
			out[i].end = out[i+1].start
		} else {
			out[i].end = len(src)
		}
	}
	return out
}

func lineStart(src []byte, off int) int {
	return bytes.LastIndexByte(src[:off], '\n') + 1
}

func headingText(h *ast.Heading, src []byte) string {
	var b strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
		}
	}
	return b.String()
}

// HTML renders the full guide to an HTML fragment.
func HTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return nil, eris.Wrap(err, "guide: render html")
	}
	return buf.Bytes(), nil
}
