package extranet

import (
	"bytes"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// FormFieldExtractor recovers the login form's field name/value pairs
// (hidden fields, CSRF tokens) from the login page HTML. It is a strategy
// interface so the scraping approach can be swapped without touching the
// authentication protocol in Client.
type FormFieldExtractor interface {
	Extract(html []byte) (map[string]string, error)
}

var inputPattern = regexp.MustCompile(`(?i)<input[^>]*name=["']([^"']*)["'][^>]*value=["']([^"']*)["'][^>]*>`)

// RegexExtractor scans for <input> tags carrying both a name and a value
// attribute. Deliberately minimal: no HTML parser, brittle to markup
// reordering (a value attribute preceding name is missed), but sufficient
// for the extranet's static login page. This is the default strategy.
type RegexExtractor struct{}

func (RegexExtractor) Extract(html []byte) (map[string]string, error) {
	fields := map[string]string{}
	for _, m := range inputPattern.FindAllSubmatch(html, -1) {
		fields[string(m[1])] = string(m[2])
	}
	return fields, nil
}

// DocumentExtractor does the same recovery through a real HTML parser.
// Inputs without a value attribute are skipped to match RegexExtractor.
type DocumentExtractor struct{}

func (DocumentExtractor) Extract(html []byte) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}
	fields := map[string]string{}
	doc.Find("input[name]").Each(func(_ int, sel *goquery.Selection) {
		name := sel.AttrOr("name", "")
		value, ok := sel.Attr("value")
		if name == "" || !ok {
			return
		}
		fields[name] = value
	})
	return fields, nil
}
