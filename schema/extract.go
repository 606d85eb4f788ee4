// Package schema extracts structured-data markup (JSON-LD and Microdata)
// from a page for the schema audit endpoint.
package schema

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Data groups the structured-data objects found on one page, keyed by syntax.
type Data struct {
	JSONLD    []interface{} `json:"json-ld"`
	Microdata []interface{} `json:"microdata"`
}

// Item is one Microdata itemscope with its resolved properties. Repeated
// property names collect into a list, preserving document order.
type Item struct {
	Type       string                 `json:"type,omitempty"`
	ID         string                 `json:"id,omitempty"`
	Properties map[string]interface{} `json:"properties"`
}

// Extract parses htmlText and returns every JSON-LD block and every
// top-level Microdata item. baseURL resolves relative URL-valued properties.
// Malformed markup and unparseable JSON-LD blocks are skipped, never fatal.
func Extract(htmlText, baseURL string) Data {
	data := Data{
		JSONLD:    []interface{}{},
		Microdata: []interface{}{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return data
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	doc.Find("script[type='application/ld+json']").Each(func(_ int, s *goquery.Selection) {
		var block interface{}
		if err := json.Unmarshal([]byte(s.Text()), &block); err != nil {
			return
		}
		// A top-level array holds multiple independent objects.
		if list, ok := block.([]interface{}); ok {
			data.JSONLD = append(data.JSONLD, list...)
			return
		}
		data.JSONLD = append(data.JSONLD, block)
	})

	doc.Find("[itemscope]").Each(func(_ int, s *goquery.Selection) {
		// Nested itemscopes become property values of their parent item.
		if s.ParentsFiltered("[itemscope]").Length() > 0 {
			return
		}
		data.Microdata = append(data.Microdata, parseItem(s, base))
	})

	return data
}

func parseItem(scope *goquery.Selection, base *url.URL) Item {
	item := Item{Properties: map[string]interface{}{}}
	item.Type, _ = scope.Attr("itemtype")
	item.ID, _ = scope.Attr("itemid")

	scopeNode := scope.Get(0)
	scope.Find("[itemprop]").Each(func(_ int, prop *goquery.Selection) {
		// Only direct properties: the nearest enclosing itemscope must be
		// this item, not a nested one.
		parents := prop.ParentsFiltered("[itemscope]")
		if parents.Length() == 0 || parents.Get(0) != scopeNode {
			return
		}

		name, _ := prop.Attr("itemprop")
		if name == "" {
			return
		}

		var value interface{}
		if _, nested := prop.Attr("itemscope"); nested {
			value = parseItem(prop, base)
		} else {
			value = propertyValue(prop, base)
		}

		switch existing := item.Properties[name].(type) {
		case nil:
			item.Properties[name] = value
		case []interface{}:
			item.Properties[name] = append(existing, value)
		default:
			item.Properties[name] = []interface{}{existing, value}
		}
	})

	return item
}

// propertyValue follows the HTML Microdata value rules for the common
// elements: URL-valued elements resolve against the page base, meta uses its
// content attribute, everything else falls back to collapsed text.
func propertyValue(prop *goquery.Selection, base *url.URL) string {
	switch goquery.NodeName(prop) {
	case "meta":
		content, _ := prop.Attr("content")
		return content
	case "img", "audio", "video", "embed", "iframe", "source", "track":
		src, _ := prop.Attr("src")
		return resolveURL(src, base)
	case "a", "area", "link":
		href, _ := prop.Attr("href")
		return resolveURL(href, base)
	case "object":
		dataAttr, _ := prop.Attr("data")
		return resolveURL(dataAttr, base)
	case "data", "meter":
		if value, ok := prop.Attr("value"); ok {
			return value
		}
	case "time":
		if datetime, ok := prop.Attr("datetime"); ok {
			return datetime
		}
	}
	return strings.Join(strings.Fields(prop.Text()), " ")
}

func resolveURL(raw string, base *url.URL) string {
	if raw == "" || base == nil {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return base.ResolveReference(ref).String()
}
