package detector

import (
	"regexp"
	"strings"

	"github.com/google/CSP-Validator/pkg/models"
)

// rule is a single validation rule. Most rules are a plain regex applied to
// each line; rules whose trigger condition needs more than one pattern carry
// a custom match function instead.
type rule struct {
	id         models.RuleID
	types      []models.ContentType
	message    string
	chromeApps bool
	match      func(line string) [][2]int
}

func (r *rule) appliesTo(ct models.ContentType) bool {
	for _, t := range r.types {
		if t == ct {
			return true
		}
	}
	return false
}

// regexMatcher returns the column spans of every match of re on the line.
func regexMatcher(re *regexp.Regexp) func(string) [][2]int {
	return func(line string) [][2]int {
		var spans [][2]int
		for _, m := range re.FindAllStringIndex(line, -1) {
			spans = append(spans, [2]int{m[0], m[1]})
		}
		return spans
	}
}

var (
	// Opening <script> tag, capturing its attribute text.
	scriptOpenRe = regexp.MustCompile(`(?i)<script\b([^>]*)>`)
	scriptSrcRe  = regexp.MustCompile(`(?i)\ssrc\s*=`)
	scriptEndRe  = regexp.MustCompile(`(?i)</script`)

	// src attributes with an http[s] protocol on script/img tags.
	remoteSrcRe = regexp.MustCompile(`(?i)<(?:img|script)\b[^>]*\ssrc\s*=\s*["']https?://[^"']*["']?`)

	// href attributes with an http[s] protocol on link tags.
	remoteLinkRe = regexp.MustCompile(`(?i)<link\b[^>]*\shref\s*=\s*["']https?://[^"']*["']?`)

	// eval / new Function. Word-anchored so myEval( does not trigger.
	evalRe = regexp.MustCompile(`\beval\s*\(|\bnew\s+Function\s*\(`)

	// Timer calls whose first argument is a string literal.
	stringTimerRe = regexp.MustCompile("\\bset(?:Timeout|Interval)\\s*\\(\\s*[\"'`]")

	// Inline on{event} handler attributes inside a tag.
	eventHandlerRe = regexp.MustCompile(`(?i)<[a-z][^>]*\son[a-z]+\s*=`)

	// hrefs with a javascript: url.
	javascriptURLRe = regexp.MustCompile(`(?i)<[^>]*\shref\s*=\s*["']?\s*javascript:[^>]*>`)

	// External resources in CSS, including protocol-relative URLs.
	remoteCSSRe = regexp.MustCompile(`(?i)url\(\s*["']?(?:https?:)?//[^)]*\)`)
)

// matchInlineScript flags <script> opening tags that carry an inline body on
// the same line and no src attribute. The span covers the opening tag.
func matchInlineScript(line string) [][2]int {
	var spans [][2]int
	for _, m := range scriptOpenRe.FindAllStringSubmatchIndex(line, -1) {
		attrs := line[m[2]:m[3]]
		if scriptSrcRe.MatchString(" " + attrs) {
			continue
		}
		body := line[m[1]:]
		if end := scriptEndRe.FindStringIndex(body); end != nil {
			body = body[:end[0]]
		}
		if strings.TrimSpace(body) == "" {
			continue
		}
		spans = append(spans, [2]int{m[0], m[1]})
	}
	return spans
}

// newRules compiles the rule table in declaration order. The order is part
// of the detector contract: same-position findings tie-break on it.
func newRules() []*rule {
	htmlOnly := []models.ContentType{models.ContentHTML}
	jsOnly := []models.ContentType{models.ContentJavaScript}
	cssOnly := []models.ContentType{models.ContentCSS}

	return []*rule{
		{
			id:      models.RuleInlineScript,
			types:   htmlOnly,
			message: "Inline scripts are not allowed",
			match:   matchInlineScript,
		},
		{
			id:      models.RuleRemoteSrcAttribute,
			types:   htmlOnly,
			message: "External resources are not allowed",
			match:   regexMatcher(remoteSrcRe),
		},
		{
			id:      models.RuleEvalUsage,
			types:   jsOnly,
			message: "Code creation from strings, e.g. eval / new Function is not allowed",
			match:   regexMatcher(evalRe),
		},
		{
			id:      models.RuleStringTimeout,
			types:   jsOnly,
			message: "Code creation from strings, e.g. setTimeout(\"string\") is not allowed",
			match:   regexMatcher(stringTimerRe),
		},
		{
			id:      models.RuleRemoteCSSResource,
			types:   cssOnly,
			message: "External resources are not allowed",
			match:   regexMatcher(remoteCSSRe),
		},
		{
			id:         models.RuleRemoteLinkHref,
			types:      htmlOnly,
			message:    "External resources are not allowed",
			chromeApps: true,
			match:      regexMatcher(remoteLinkRe),
		},
		{
			id:      models.RuleInlineEventHandler,
			types:   htmlOnly,
			message: "Event handlers should be added from an external src file",
			match:   regexMatcher(eventHandlerRe),
		},
		{
			id:         models.RuleJavaScriptURL,
			types:      htmlOnly,
			message:    "Inline JavaScript calls are not allowed",
			chromeApps: true,
			match:      regexMatcher(javascriptURLRe),
		},
	}
}
