package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithRendererOptions(html.WithHardWraps(), html.WithUnsafe()),
)

var (
	badgeHighRE  = regexp.MustCompile(`🟢\s*HIGH`)
	badgeMedRE   = regexp.MustCompile(`🟡\s*MED`)
	badgeStateRE = regexp.MustCompile(`🔴\s*STATE`)
)

// Markdown renders report markdown to HTML. Trust markers become styled
// badges and every link opens in a new tab.
func Markdown(text string) (string, error) {
	text = badgeHighRE.ReplaceAllString(text, `<span class="badge badge-high">🟢 HIGH</span>`)
	text = badgeMedRE.ReplaceAllString(text, `<span class="badge badge-med">🟡 MED</span>`)
	text = badgeStateRE.ReplaceAllString(text, `<span class="badge badge-state">🔴 STATE</span>`)

	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	out := strings.ReplaceAll(buf.String(), "<a ", `<a target="_blank" rel="noopener" `)
	return out, nil
}
