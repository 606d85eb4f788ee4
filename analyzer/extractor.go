package analyzer

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Elements whose text is never rendered and must not leak into body text.
var invisibleElements = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"template": {},
}

// Extract parses an HTML document and derives the full on-page feature set
// for the given primary keyword. Parsing is lenient: unclosed or malformed
// markup degrades to missing features, it never fails the request.
func Extract(htmlText, pageURL, primaryKeyword string) PageFeatures {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		// goquery's parser recovers from malformed markup; a read error
		// from an in-memory string does not happen in practice. Treat it
		// as an empty document rather than failing the audit.
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}

	keyword := strings.ToLower(primaryKeyword)
	features := PageFeatures{}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	features.Title = ElementCheck{
		Present:         title != "",
		Length:          len(title),
		IncludesKeyword: containsKeyword(title, keyword),
	}

	metaDesc, _ := doc.Find("meta[name='description']").First().Attr("content")
	metaDesc = strings.TrimSpace(metaDesc)
	features.Meta = ElementCheck{
		Present:         metaDesc != "",
		Length:          len(metaDesc),
		IncludesKeyword: containsKeyword(metaDesc, keyword),
	}

	headings := []string{}
	doc.Find("h1").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, collapsedText(s))
	})
	features.H1 = HeadingCheck{
		Count: len(headings),
		Texts: headings,
	}
	if len(headings) > 0 {
		features.H1.IncludesKeyword = containsKeyword(headings[0], keyword)
	}

	bodyText := collapsedText(doc.Find("body"))
	features.WordCount = len(wordPattern.FindAllString(bodyText, -1))
	features.KeywordInFirst150 = containsKeyword(firstRunes(bodyText, 150), keyword)

	pageDomain := RootDomain(pageURL)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" {
			return
		}
		switch linkDomain := RootDomain(href); {
		case linkDomain == "":
			// Relative or unresolvable target: neither internal nor external.
		case linkDomain == pageDomain:
			features.InternalLinks++
		default:
			features.ExternalLinks++
		}
	})

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		features.Images.Total++
		if alt, exists := s.Attr("alt"); !exists || alt == "" {
			features.Images.MissingAlt++
		}
	})

	features.URLContainsKeyword = strings.Contains(
		NormalizeKeyword(pageURL), NormalizeKeyword(primaryKeyword))

	return features
}

// AnalyzeHTML extracts page features and attaches the health score.
func AnalyzeHTML(htmlText, pageURL, primaryKeyword string) HealthReport {
	features := Extract(htmlText, pageURL, primaryKeyword)
	return HealthReport{
		PageFeatures: features,
		HealthScore:  HealthScore(features),
	}
}

func containsKeyword(text, lowerKeyword string) bool {
	return strings.Contains(strings.ToLower(text), lowerKeyword)
}

// collapsedText concatenates the visible text nodes under the selection in
// document order, collapsing whitespace runs to single spaces and trimming
// the ends.
func collapsedText(s *goquery.Selection) string {
	var b strings.Builder
	for _, node := range s.Nodes {
		appendVisibleText(&b, node)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func appendVisibleText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	if n.Type == html.ElementNode {
		if _, skip := invisibleElements[n.Data]; skip {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendVisibleText(b, c)
	}
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}
