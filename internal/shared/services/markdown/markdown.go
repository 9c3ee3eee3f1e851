// Package markdown renders issue descriptions and comments to sanitized HTML.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Renderer turns markdown into HTML that is safe to embed. Render is pure.
type Renderer interface {
	// Render converts text for display inside project; "#12" links to issue 12 of
	// that project. An empty project disables issue links.
	Render(text, project string) (string, error)
}

type service struct {
	md      goldmark.Markdown
	policy  *bluemonday.Policy
	baseURL string
}

var projectKey = parser.NewContextKey()

// NewRenderer builds a GFM renderer. baseURL prefixes issue links, e.g.
// "https://tracker.example.com".
func NewRenderer(baseURL string) Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Strikethrough,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithInlineParsers(util.Prioritized(&issueRefParser{}, 950)),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span", "div", "pre", "a")
	policy.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	return &service{
		md:      md,
		policy:  policy,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *service) Render(src, project string) (string, error) {
	pc := parser.NewContext()
	if project != "" {
		pc.Set(projectKey, s.baseURL+"/projects/"+project+"/issues/")
	}

	var buf bytes.Buffer
	if err := s.md.Convert([]byte(src), &buf, parser.WithContext(pc)); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return s.policy.Sanitize(buf.String()), nil
}

// issueRefParser turns "#<digits>" into a link to that issue of the project set in
// the parser context.
type issueRefParser struct{}

func (p *issueRefParser) Trigger() []byte {
	return []byte{'#'}
}

func (p *issueRefParser) Parse(_ ast.Node, block text.Reader, pc parser.Context) ast.Node {
	prefix, ok := pc.Get(projectKey).(string)
	if !ok {
		return nil
	}
	if isWordRune(block.PrecendingCharacter()) {
		return nil
	}

	line, segment := block.PeekLine()
	i := 1
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 1 || (i < len(line) && isWordRune(rune(line[i]))) {
		return nil
	}

	link := ast.NewLink()
	link.Destination = []byte(prefix + string(line[1:i]))
	link.AppendChild(link, ast.NewTextSegment(text.NewSegment(segment.Start, segment.Start+i)))
	block.Advance(i)
	return link
}

func isWordRune(r rune) bool {
	return r == '_' || r == '-' || r == '/' ||
		(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
