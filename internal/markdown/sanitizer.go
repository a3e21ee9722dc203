package markdown

import (
	"bytes"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Kind selects the allow-list applied after markdown rendering. Posts
// keep block structure; comments are flattened to inline markup.
type Kind int

const (
	KindPost Kind = iota
	KindComment
)

// renderer is initialized once and shared. The goldmark instance is
// safe for concurrent Convert calls; per-call state lives in the
// reader it parses. GFM's Linkify part autolinks bare URLs and email
// addresses, replacing a separate linkify pass.
var (
	renderer     goldmark.Markdown
	rendererOnce sync.Once
)

func getRenderer() goldmark.Markdown {
	rendererOnce.Do(func() {
		// Raw HTML passes through the renderer so the allow-list is
		// the single authority on what markup survives; escaping it
		// here would show stripped tags as literal text instead of
		// removing them.
		renderer = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		)
	})
	return renderer
}

var (
	postPolicy    = buildPolicy(KindPost)
	commentPolicy = buildPolicy(KindComment)
)

func buildPolicy(kind Kind) *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("a", "abbr", "acronym", "b", "code", "em", "i", "strong")
	if kind == KindPost {
		p.AllowElements("blockquote", "li", "ol", "pre", "ul", "h1", "h2", "h3", "p")
	}
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowAttrs("title").OnElements("abbr", "acronym")
	p.AllowStandardURLs()
	return p
}

// Sanitize renders raw markdown to HTML and strips every tag and
// attribute outside the allow-list for kind. Disallowed markup is
// removed while its text content is kept; nothing is escaped back into
// visible text.
func Sanitize(raw string, kind Kind) string {
	var buf bytes.Buffer
	if err := getRenderer().Convert([]byte(raw), &buf); err != nil {
		// Convert only fails on writer errors; a bytes.Buffer never
		// returns one. Fall back to sanitizing the raw text.
		buf.Reset()
		buf.WriteString(raw)
	}

	policy := postPolicy
	if kind == KindComment {
		policy = commentPolicy
	}
	return policy.Sanitize(buf.String())
}
