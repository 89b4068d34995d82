package detector

import (
	"sort"

	"github.com/google/CSP-Validator/pkg/detector/htmltok"
	"github.com/google/CSP-Validator/pkg/detector/jsast"
	"github.com/google/CSP-Validator/pkg/logger"
	"github.com/google/CSP-Validator/pkg/models"
)

// Detector runs the CSP validation rules over a document. It holds no state
// across scans beyond its configuration; Scan is a pure function of the
// document and the options set here. The host owns the Detector value and
// mutates Enabled through its own command interface.
type Detector struct {
	// Enabled gates the whole detector. When false, Scan returns nil
	// regardless of content.
	Enabled bool

	rules      []*rule
	chromeApps bool
	strictJS   bool
	strictHTML bool
	disabled   map[models.RuleID]bool
	log        *logger.Logger
}

// NewDetector creates a detector with all rules compiled and enabled.
// Chrome-Apps-only rules are off by default.
func NewDetector(log *logger.Logger) *Detector {
	if log == nil {
		log = logger.NewLogger(0)
	}
	return &Detector{
		Enabled:  true,
		rules:    newRules(),
		disabled: make(map[models.RuleID]bool),
		log:      log,
	}
}

// SetChromeApps enables the rules that only apply to Chrome packaged apps
// (remote link hrefs, javascript: urls).
func (d *Detector) SetChromeApps(on bool) {
	d.chromeApps = on
}

// SetStrictJS enables AST confirmation of JavaScript findings.
func (d *Detector) SetStrictJS(on bool) {
	d.strictJS = on
}

// SetStrictHTML enables tokenizer confirmation of HTML findings.
func (d *Detector) SetStrictHTML(on bool) {
	d.strictHTML = on
}

// DisableRule removes a single rule from the scan.
func (d *Detector) DisableRule(id models.RuleID) {
	d.disabled[id] = true
}

// Scan applies every applicable rule to every line of the document and
// returns the findings in ascending line order, then ascending column order,
// then rule-declaration order. Unscannable content (nil document, binary
// data, unknown content type) yields nil rather than an error.
func (d *Detector) Scan(doc *models.Document) []models.Finding {
	if !d.Enabled {
		return nil
	}
	if doc == nil || !doc.Scannable() {
		return nil
	}

	type hit struct {
		finding models.Finding
		ruleIdx int
	}
	var hits []hit

	for i, line := range doc.Lines {
		for ri, r := range d.rules {
			if !r.appliesTo(doc.Type) {
				continue
			}
			if r.chromeApps && !d.chromeApps {
				continue
			}
			if d.disabled[r.id] {
				continue
			}
			for _, span := range r.match(line) {
				if !d.confirm(r.id, line) {
					d.log.VV("dropped unconfirmed %s at %s:%d", r.id, doc.Path, i+1)
					continue
				}
				hits = append(hits, hit{
					finding: models.Finding{
						Path:        doc.Path,
						RuleID:      r.id,
						Line:        i + 1,
						ColumnStart: span[0],
						ColumnEnd:   span[1],
						Message:     r.message,
					},
					ruleIdx: ri,
				})
			}
		}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].finding.Line != hits[b].finding.Line {
			return hits[a].finding.Line < hits[b].finding.Line
		}
		if hits[a].finding.ColumnStart != hits[b].finding.ColumnStart {
			return hits[a].finding.ColumnStart < hits[b].finding.ColumnStart
		}
		return hits[a].ruleIdx < hits[b].ruleIdx
	})

	if len(hits) == 0 {
		return nil
	}
	findings := make([]models.Finding, len(hits))
	for i, h := range hits {
		findings[i] = h.finding
	}
	return findings
}

// confirm re-validates a lexical match with the optional strict passes.
// With both passes off this is always true; the detector stays purely
// pattern-based, matching the original trade-off.
func (d *Detector) confirm(id models.RuleID, line string) bool {
	if d.strictJS {
		switch id {
		case models.RuleEvalUsage:
			return jsast.ConfirmEval(line)
		case models.RuleStringTimeout:
			return jsast.ConfirmStringTimer(line)
		}
	}
	if d.strictHTML {
		switch id {
		case models.RuleInlineScript:
			return htmltok.ConfirmInlineScript(line)
		case models.RuleRemoteSrcAttribute:
			return htmltok.ConfirmRemoteAttr(line, []string{"script", "img"}, "src")
		case models.RuleRemoteLinkHref:
			return htmltok.ConfirmRemoteAttr(line, []string{"link"}, "href")
		}
	}
	return true
}
