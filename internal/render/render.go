// Package render turns stored markdown into servable HTML: article
// pseudo-links are resolved against the store, goldmark converts the
// markdown, and relative media references are rewritten into absolute
// media URLs.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// ArticleResolver looks up an article id by (project slug, article
// slug). Implemented by the store.
type ArticleResolver interface {
	ArticleIDBySlug(ctx context.Context, projectSlug, articleSlug string) (int64, bool, error)
}

type Renderer struct {
	resolver ArticleResolver
	md       goldmark.Markdown
}

func NewRenderer(resolver ArticleResolver) *Renderer {
	return &Renderer{
		resolver: resolver,
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Footnote,
				extension.Strikethrough,
				highlighting.NewHighlighting(
					highlighting.WithStyle("monokai"),
					highlighting.WithFormatOptions(
						chromahtml.WithClasses(true),
					),
				),
			),
		),
	}
}

// articleLinkRe matches inline links targeting the article: scheme,
// e.g. [Mira](article:mira-the-smith).
var articleLinkRe = regexp.MustCompile(`\[([^\]]+)\]\(article:([a-z0-9-]+)\)`)

// mediaURLRe matches relative media references left in rendered HTML
// attributes, e.g. src="media/map.png".
var mediaURLRe = regexp.MustCompile(`(src|href)="media/([^"]+)"`)

// ResolveArticleLinks rewrites article: pseudo-links into concrete
// article URLs. Links whose slug does not resolve are left untouched
// and render as dead links; that is deliberate, not an error.
func (r *Renderer) ResolveArticleLinks(ctx context.Context, markdownText, projectSlug string) string {
	return articleLinkRe.ReplaceAllStringFunc(markdownText, func(match string) string {
		parts := articleLinkRe.FindStringSubmatch(match)
		text, slug := parts[1], parts[2]
		id, ok, err := r.resolver.ArticleIDBySlug(ctx, projectSlug, slug)
		if err != nil {
			slog.Warn("article link lookup failed", "project", projectSlug, "slug", slug, "err", err)
			return match
		}
		if !ok {
			return match
		}
		return fmt.Sprintf("[%s](/projects/%s/a/%d)", text, projectSlug, id)
	})
}

// RewriteMediaURLs replaces relative media paths in rendered HTML with
// absolute URLs under the project's media-serving endpoint.
func RewriteMediaURLs(html, projectSlug string) string {
	return mediaURLRe.ReplaceAllString(html,
		`$1="/projects/`+projectSlug+`/media/files/$2"`)
}

// Render runs the full pipeline used for article bodies and project
// descriptions alike: resolve article links, convert markdown, rewrite
// media URLs.
func (r *Renderer) Render(ctx context.Context, markdownText, projectSlug string) (string, error) {
	resolved := r.ResolveArticleLinks(ctx, markdownText, projectSlug)
	var b strings.Builder
	if err := r.md.Convert([]byte(resolved), &b); err != nil {
		return "", err
	}
	return RewriteMediaURLs(b.String(), projectSlug), nil
}
