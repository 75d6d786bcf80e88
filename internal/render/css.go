package render

import "fmt"

type palette struct {
	bg          string
	fg          string
	heading     string
	link        string
	border      string
	blockquote  string
	codeBg      string
	inlineCode  string
	blockCode   string
	tableStripe string
}

var lightPalette = palette{
	bg:          "#ffffff",
	fg:          "#24292f",
	heading:     "#1f2328",
	link:        "#0969da",
	border:      "#d0d7de",
	blockquote:  "#57606a",
	codeBg:      "#f6f8fa",
	inlineCode:  "#c7254e",
	blockCode:   "#24292f",
	tableStripe: "#f6f8fa",
}

var darkPalette = palette{
	bg:          "#0d1117",
	fg:          "#c9d1d9",
	heading:     "#e6edf3",
	link:        "#58a6ff",
	border:      "#30363d",
	blockquote:  "#8b949e",
	codeBg:      "#161b22",
	inlineCode:  "#ff7b72",
	blockCode:   "#c9d1d9",
	tableStripe: "#161b22",
}

// themeCSS builds the document stylesheet for the resolved theme,
// substituting the session's font sizes, code font family and code
// colors into the base palette.
func themeCSS(opts Options) string {
	p := lightPalette
	if opts.Theme == "dark" {
		p = darkPalette
	}

	bodySize := opts.BodyFontSize
	if bodySize <= 0 {
		bodySize = 16
	}
	codeSize := opts.CodeFontSize
	if codeSize <= 0 {
		codeSize = 14
	}
	codeFamily := opts.CodeFontFamily
	if codeFamily == "" {
		codeFamily = "Consolas, 'Courier New', monospace"
	}
	inlineColor := opts.InlineCodeColor
	if inlineColor == "" {
		inlineColor = p.inlineCode
	}
	blockColor := opts.BlockCodeColor
	if blockColor == "" {
		blockColor = p.blockCode
	}

	return fmt.Sprintf(`    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Helvetica, Arial, sans-serif;
      font-size: %dpx;
      line-height: 1.6;
      color: %s;
      background-color: %s;
      max-width: 900px;
      margin: 0 auto;
      padding: 32px 40px;
      word-wrap: break-word;
    }
    h1, h2, h3, h4, h5, h6 {
      color: %s;
      margin-top: 24px;
      margin-bottom: 16px;
      font-weight: 600;
      line-height: 1.25;
    }
    h1 { font-size: 2em; border-bottom: 1px solid %s; padding-bottom: .3em; }
    h2 { font-size: 1.5em; border-bottom: 1px solid %s; padding-bottom: .3em; }
    a { color: %s; text-decoration: none; }
    a:hover { text-decoration: underline; }
    blockquote {
      margin: 0;
      padding: 0 1em;
      color: %s;
      border-left: .25em solid %s;
    }
    code {
      font-family: %s;
      font-size: %dpx;
      color: %s;
      background-color: %s;
      padding: .2em .4em;
      border-radius: 6px;
    }
    pre {
      background-color: %s;
      padding: 16px;
      border-radius: 6px;
      overflow: auto;
    }
    pre code {
      font-family: %s;
      font-size: %dpx;
      color: %s;
      background-color: transparent;
      padding: 0;
    }
    table { border-collapse: collapse; margin: 16px 0; }
    th, td { border: 1px solid %s; padding: 6px 13px; }
    tr:nth-child(2n) { background-color: %s; }
    img { max-width: 100%%; }
    hr { border: 0; border-top: 1px solid %s; margin: 24px 0; }
    ul.contains-task-list { list-style: none; padding-left: 1em; }`,
		bodySize, p.fg, p.bg,
		p.heading,
		p.border, p.border,
		p.link,
		p.blockquote, p.border,
		codeFamily, codeSize, inlineColor, p.codeBg,
		p.codeBg,
		codeFamily, codeSize, blockColor,
		p.border, p.tableStripe,
		p.border)
}
