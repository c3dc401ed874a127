package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"KeywordEngine/internal/domain"
)

// Document is the normalized view of a content item: a flat token stream for
// candidate generation plus the structural subsets (title, headings, intro)
// used for positional boosting. Stopwords are intentionally still present;
// each consumer applies its own masking.
type Document struct {
	Tokens []string

	Title       string
	TitleTokens map[string]struct{}

	Headings      string
	HeadingTokens map[string]struct{}

	Intro       string
	IntroTokens map[string]struct{}
}

// Normalize strips markup, case-folds and tokenizes the content. The combined
// title+body input is capped at maxChars before tokenizing; anything beyond
// the cap is silently dropped. Truncation is part of the contract, not an
// error: it bounds pipeline cost on pathologically large inputs.
func Normalize(content domain.Content, maxChars int) Document {
	title := content.Title
	body, markupHeadings := stripMarkup(content.Body)

	if maxChars > 0 && len(title)+len(body) > maxChars {
		remaining := maxChars - len(title)
		if remaining < 0 {
			remaining = 0
			title = truncateAtRune(title, maxChars)
		}
		body = truncateAtRune(body, remaining)
	}

	headings := append(markupHeadings, content.Headings...)
	intro := firstSentence(body)

	normTitle := normalizeText(title)
	normHeadings := normalizeText(strings.Join(headings, " "))
	normIntro := normalizeText(intro)
	normBody := normalizeText(body)

	tokens := tokenize(normTitle + " " + normBody)

	return Document{
		Tokens:        tokens,
		Title:         normTitle,
		TitleTokens:   tokenSet(normTitle),
		Headings:      normHeadings,
		HeadingTokens: tokenSet(normHeadings),
		Intro:         normIntro,
		IntroTokens:   tokenSet(normIntro),
	}
}

// stripMarkup removes tag-delimited markup from the body and collects heading
// text found inside it. Plain-text bodies pass through unchanged.
func stripMarkup(body string) (string, []string) {
	if !strings.Contains(body, "<") {
		return body, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return body, nil
	}

	var headings []string
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			headings = append(headings, text)
		}
	})

	doc.Find("script, style").Remove()
	return doc.Text(), headings
}

// firstSentence returns the leading sentence of the stripped body text, used
// as the intro signal. Sentence detection is a plain terminator scan; the
// boosting it feeds tolerates imprecision.
func firstSentence(body string) string {
	body = strings.TrimSpace(body)
	for i, r := range body {
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			return body[:i]
		}
	}
	return body
}

// normalizeText lower-cases and collapses every non-alphanumeric rune to a
// single space.
func normalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastSpace := true
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}

	return strings.TrimSpace(b.String())
}

// truncateAtRune cuts s to at most limit bytes without splitting a multi-byte
// rune; the cut backs up to the preceding rune boundary.
func truncateAtRune(s string, limit int) string {
	if limit >= len(s) {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func tokenize(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}

func tokenSet(normalized string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, tok := range tokenize(normalized) {
		set[tok] = struct{}{}
	}
	return set
}
