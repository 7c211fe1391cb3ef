package render_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/yaklabco/mdlite/pkg/mdast"
	"github.com/yaklabco/mdlite/pkg/parser"
	"github.com/yaklabco/mdlite/pkg/render"
)

func parseDoc(t *testing.T, input string) *mdast.Document {
	t.Helper()

	doc, err := parser.New().Parse(context.Background(), "test.md", []byte(input))
	require.NoError(t, err)
	return doc
}

func renderPage(t *testing.T, input string, opts render.Options) *html.Node {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, render.RenderPage(&buf, parseDoc(t, input), opts))

	root, err := html.Parse(&buf)
	require.NoError(t, err)
	return root
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func TestRender_Fragment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "header",
			input: "# Hello, World!\n",
			want:  "<h1 id=\"hello-world\">Hello, World!</h1>\n",
		},
		{
			name:  "paragraph with soft break",
			input: "A\nB\n",
			want:  "<p>A<br>\nB</p>\n",
		},
		{
			name:  "emphasis",
			input: "*a* **b** ***c***",
			want:  "<p><em>a</em> <strong>b</strong> <em><strong>c</strong></em></p>\n",
		},
		{
			name:  "list",
			input: "- a\n- b\n",
			want:  "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n",
		},
		{
			name:  "ordered list",
			input: "1. a\n",
			want:  "<ol>\n<li>a</li>\n</ol>\n",
		},
		{
			name:  "blockquote",
			input: "> q\n",
			want:  "<blockquote>\n<p>q</p>\n</blockquote>\n",
		},
		{
			name:  "text is escaped",
			input: "a <b> & \"c\"",
			want:  "<p>a &lt;b&gt; &amp; &#34;c&#34;</p>\n",
		},
		{
			name:  "link and image",
			input: "[x](a?b=1&c=2) ![pic](p.png)",
			want:  "<p><a href=\"a?b=1&amp;c=2\">x</a> <img src=\"p.png\" alt=\"pic\"></p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, render.Render(&buf, parseDoc(t, tt.input)))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderPage_Structure(t *testing.T) {
	t.Parallel()

	input := "# Intro\n\nSome *text* and a [link](https://example.com).\n\n# Intro\n\n- one\n- two\n"
	root := renderPage(t, input, render.Options{Title: "My Doc", CSS: "style.css"})

	title := cascadia.MustCompile("head > title").MatchFirst(root)
	require.NotNil(t, title)
	assert.Equal(t, "My Doc", textOf(title))

	link := cascadia.MustCompile("head > link[rel=stylesheet]").MatchFirst(root)
	require.NotNil(t, link)
	assert.Equal(t, "style.css", attr(link, "href"))

	headings := cascadia.MustCompile("body > h1").MatchAll(root)
	require.Len(t, headings, 2)
	assert.Equal(t, "intro", attr(headings[0], "id"))
	assert.Equal(t, "intro-1", attr(headings[1], "id"))

	em := cascadia.MustCompile("body > p > em").MatchAll(root)
	require.Len(t, em, 1)
	assert.Equal(t, "text", textOf(em[0]))

	anchor := cascadia.MustCompile("body > p > a").MatchFirst(root)
	require.NotNil(t, anchor)
	assert.Equal(t, "https://example.com", attr(anchor, "href"))

	items := cascadia.MustCompile("body > ul > li").MatchAll(root)
	require.Len(t, items, 2)
	assert.Equal(t, "two", textOf(items[1]))
}

func TestRenderPage_Defaults(t *testing.T) {
	t.Parallel()

	root := renderPage(t, "x", render.Options{})

	title := cascadia.MustCompile("title").MatchFirst(root)
	require.NotNil(t, title)
	assert.Equal(t, render.DefaultTitle, textOf(title))
	assert.Nil(t, cascadia.MustCompile("link").MatchFirst(root))
	assert.Nil(t, cascadia.MustCompile("style").MatchFirst(root))
}

func TestRenderPage_InlineCSS(t *testing.T) {
	t.Parallel()

	css, err := render.ParseStylesheet([]byte("body { color: red; }"))
	require.NoError(t, err)

	root := renderPage(t, "x", render.Options{InlineCSS: css})
	style := cascadia.MustCompile("head > style").MatchFirst(root)
	require.NotNil(t, style)
	assert.Contains(t, textOf(style), "color: red")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRender_WriteError(t *testing.T) {
	t.Parallel()

	err := render.Render(failWriter{}, parseDoc(t, "# x\n"))
	require.Error(t, err)
}

func TestTitleFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{path: "docs/getting_started.md", want: "Getting Started"},
		{path: "README.md", want: "Readme"},
		{path: "release-notes.v2.markdown", want: "Release Notes V2"},
		{path: "", want: render.DefaultTitle},
		{path: "-", want: render.DefaultTitle},
		{path: "_.md", want: render.DefaultTitle},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, render.TitleFromPath(tt.path), "path %q", tt.path)
	}
}

func TestParseStylesheet_Invalid(t *testing.T) {
	t.Parallel()

	_, err := render.ParseStylesheet([]byte("body { color: red; } }"))
	require.ErrorIs(t, err, render.ErrInvalidStylesheet)
}

func BenchmarkRender(b *testing.B) {
	content := []byte(strings.Repeat("# Title\n\nSome *text* with a [link](https://example.com).\n\n- one\n- two\n\n", 100))
	doc, err := parser.New().Parse(context.Background(), "bench.md", content)
	if err != nil {
		b.Fatal(err)
	}

	var buf bytes.Buffer
	b.ResetTimer()
	for range b.N {
		buf.Reset()
		if err := render.Render(&buf, doc); err != nil {
			b.Fatal(err)
		}
	}
}
