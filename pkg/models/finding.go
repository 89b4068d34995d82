package models

type RuleID string

const (
	RuleInlineScript       RuleID = "INLINE_SCRIPT"
	RuleRemoteSrcAttribute RuleID = "REMOTE_SRC_ATTRIBUTE"
	RuleEvalUsage          RuleID = "EVAL_USAGE"
	RuleStringTimeout      RuleID = "STRING_TIMEOUT"
	RuleRemoteCSSResource  RuleID = "REMOTE_CSS_RESOURCE"
	RuleRemoteLinkHref     RuleID = "REMOTE_LINK_HREF"
	RuleInlineEventHandler RuleID = "INLINE_EVENT_HANDLER"
	RuleJavaScriptURL      RuleID = "JAVASCRIPT_URL"
)

// Finding is a single detected potential CSP violation. Findings carry no
// identity beyond their fields and are recomputed on every scan.
type Finding struct {
	Path        string `json:"path,omitempty"`
	RuleID      RuleID `json:"rule_id"`
	Line        int    `json:"line"`         // 1-based
	ColumnStart int    `json:"column_start"` // 0-based byte offset
	ColumnEnd   int    `json:"column_end"`   // exclusive
	Message     string `json:"message"`
}
