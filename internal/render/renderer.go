// Package render converts Markdown to output formats: styled HTML
// documents for export and browser preview, and ANSI text for the
// terminal preview pane.
package render

import (
	"bytes"
	"fmt"
	"html"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Options controls a single HTML rendering. Theme must already be
// resolved to "light" or "dark"; "auto" resolution happens upstream.
type Options struct {
	Theme           string
	Title           string
	BodyFontSize    int
	CodeFontSize    int
	CodeFontFamily  string
	InlineCodeColor string
	BlockCodeColor  string
	HighlightAssets bool
}

// Renderer converts Markdown to full HTML documents.
type Renderer struct {
	md goldmark.Markdown
}

func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Footnote,
				extension.DefinitionList,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				goldmarkhtml.WithHardWraps(),
				goldmarkhtml.WithUnsafe(),
			),
		),
	}
}

// RenderBody converts Markdown source to an HTML fragment.
func (r *Renderer) RenderBody(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// RenderDocument converts Markdown source to a complete standalone
// HTML document with embedded theme CSS and, when enabled, the
// highlight.js assets for fenced code blocks.
func (r *Renderer) RenderDocument(src []byte, opts Options) (string, error) {
	body, err := r.RenderBody(src)
	if err != nil {
		return "", err
	}
	return document(body, opts), nil
}

// RenderFile reads and renders a Markdown file. Read failures yield
// an error page rather than an error so callers always have a
// document to display.
func (r *Renderer) RenderFile(path string, opts Options) string {
	src, err := os.ReadFile(path)
	if err != nil {
		return ErrorPage(fmt.Sprintf("cannot read %s: %v", path, err))
	}
	doc, err := r.RenderDocument(src, opts)
	if err != nil {
		return ErrorPage(err.Error())
	}
	return doc
}

const highlightBase = "https://cdnjs.cloudflare.com/ajax/libs/highlight.js/11.9.0"

func highlightHead(theme string) string {
	style := "github.min.css"
	if theme == "dark" {
		style = "github-dark.min.css"
	}
	return fmt.Sprintf(`  <link rel="stylesheet" href="%s/styles/%s">
  <script src="%s/highlight.min.js" defer></script>
  <script>
    window.addEventListener('DOMContentLoaded', function () {
      if (window.hljs && window.hljs.highlightAll) {
        window.hljs.highlightAll();
      }
    });
  </script>
`, highlightBase, style, highlightBase)
}

func document(body string, opts Options) string {
	head := ""
	if opts.HighlightAssets {
		head = highlightHead(opts.Theme)
	}
	title := opts.Title
	if title == "" {
		title = "Markdown"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
  <style>
%s
  </style>
%s</head>
<body>
%s
</body>
</html>`, html.EscapeString(title), themeCSS(opts), head, body)
}

// ErrorPage renders a minimal document for read and convert failures.
func ErrorPage(message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      padding: 40px;
      color: #d32f2f;
    }
  </style>
</head>
<body>
  <h1>Error</h1>
  <p>%s</p>
</body>
</html>`, html.EscapeString(message))
}
