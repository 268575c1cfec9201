package extract

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// htmlCandidates handles responses delivered as HTML rather than markdown:
// the input is converted to markdown and the fence strategy is re-run over
// the conversion, so <pre><code> blocks surface as candidates. The
// conversion is only attempted when the input actually carries code-bearing
// HTML markup; plain prose and bare JSON skip this strategy entirely.
func htmlCandidates(raw string) []string {
	if !looksLikeHTML(raw) {
		return nil
	}
	markdown, err := htmltomarkdown.ConvertString(raw)
	if err != nil {
		return nil
	}
	return fenceCandidates(markdown)
}

func looksLikeHTML(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.Contains(lower, "<pre") || strings.Contains(lower, "<code")
}
