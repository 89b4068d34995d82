package runner

import (
	"strings"

	"github.com/google/CSP-Validator/pkg/config"
	"github.com/google/CSP-Validator/pkg/models"
)

// Options holds all configuration options for the runner
type Options struct {
	// Input
	Paths     []string
	Recursive bool

	// Detection
	Disabled     bool // detector toggle: true means scans return nothing
	ChromeApps   bool
	StrictJS     bool
	StrictHTML   bool
	DisableRules string // comma-separated RuleIDs

	// Output
	Format      string
	OutputFile  string
	Verbose     bool
	VeryVerbose bool
	Silent      bool

	// Scanning
	Concurrency int
}

// DefaultOptions returns a new Options struct with default values
func DefaultOptions() *Options {
	return &Options{
		Concurrency: config.DefaultConcurrency,
		Format:      config.DefaultFormat,
	}
}

// DisabledRuleIDs parses the DisableRules list into rule IDs.
func (o *Options) DisabledRuleIDs() []models.RuleID {
	if o.DisableRules == "" {
		return nil
	}
	var ids []models.RuleID
	for _, part := range strings.Split(o.DisableRules, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			ids = append(ids, models.RuleID(strings.ToUpper(part)))
		}
	}
	return ids
}

// VerboseLevel maps the two verbosity flags onto the logger levels.
func (o *Options) VerboseLevel() int {
	switch {
	case o.VeryVerbose:
		return 2
	case o.Verbose:
		return 1
	default:
		return 0
	}
}
