// Package htmltok confirms HTML findings against tokenized tag structure
// instead of raw pattern matches. It backs the detector's strict-HTML mode.
package htmltok

import (
	"strings"

	"golang.org/x/net/html"
)

// ConfirmInlineScript reports whether the line tokenizes to a <script> tag
// without a src attribute followed by non-whitespace script text.
func ConfirmInlineScript(line string) bool {
	z := html.NewTokenizer(strings.NewReader(line))
	inScript := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken:
			tok := z.Token()
			inScript = tok.Data == "script" && attrValue(tok, "src") == ""
		case html.TextToken:
			if inScript && strings.TrimSpace(z.Token().Data) != "" {
				return true
			}
		case html.EndTagToken:
			inScript = false
		}
	}
}

// ConfirmRemoteAttr reports whether the line tokenizes to one of the given
// tags carrying attr with an http(s) URL. Schemes like data: do not count.
func ConfirmRemoteAttr(line string, tags []string, attr string) bool {
	z := html.NewTokenizer(strings.NewReader(line))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if !contains(tags, tok.Data) {
				continue
			}
			val := strings.ToLower(strings.TrimSpace(attrValue(tok, attr)))
			if strings.HasPrefix(val, "http://") || strings.HasPrefix(val, "https://") {
				return true
			}
		}
	}
}

func attrValue(tok html.Token, name string) string {
	for _, a := range tok.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
