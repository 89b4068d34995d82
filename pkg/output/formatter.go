package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/google/CSP-Validator/pkg/config"
	"github.com/google/CSP-Validator/pkg/models"
)

// Format returns the formatted finding string based on the selected format.
// The sarif format aggregates a whole scan and is handled by WriteSARIF.
func Format(f models.Finding, format string) string {
	switch format {
	case "human":
		// Human-readable format (Purple Gothic Theme)
		cPurple := "\x1b[38;5;129m"
		cLightPurple := "\x1b[38;5;141m"
		cDarkPurple := "\x1b[38;5;93m"
		cReset := "\x1b[0m"

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("\n%s[+] CSP Issue Found%s\n", cPurple, cReset))
		sb.WriteString(fmt.Sprintf("    %sFile:%s     %s%s%s\n", cDarkPurple, cReset, cLightPurple, f.Path, cReset))
		sb.WriteString(fmt.Sprintf("    %sLocation:%s %sline %d, col %d-%d%s\n", cDarkPurple, cReset, cLightPurple, f.Line, f.ColumnStart, f.ColumnEnd, cReset))
		sb.WriteString(fmt.Sprintf("    %sRule:%s     %s%s%s\n", cDarkPurple, cReset, cLightPurple, f.RuleID, cReset))
		sb.WriteString(fmt.Sprintf("    %sMessage:%s  %s%s%s\n", cDarkPurple, cReset, cLightPurple, f.Message, cReset))
		return sb.String()

	case "json":
		out, err := json.Marshal(f)
		if err != nil {
			return fmt.Sprintf("{\"error\":\"failed to marshal finding: %v\"}", err)
		}
		return string(out)

	default:
		// Compiler-style, one line per finding, pipe-friendly.
		return fmt.Sprintf("%s:%d:%d: %s [%s]", f.Path, f.Line, f.ColumnStart, f.Message, f.RuleID)
	}
}

// WriteSARIF renders the findings of a whole scan as a SARIF 2.1.0 report.
func WriteSARIF(w io.Writer, findings []models.Finding) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("cspscan", config.InfoURI)
	for _, f := range findings {
		rule := run.AddRule(string(f.RuleID)).
			WithDescription(f.Message).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: "warning",
			})

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(f.Path)).
				WithRegion(sarif.NewRegion().
					WithStartLine(f.Line).
					WithStartColumn(f.ColumnStart + 1).
					WithEndColumn(f.ColumnEnd + 1)),
		)

		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(f.Message)).
			WithLevel("warning").
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}
	report.AddRun(run)

	return report.PrettyWrite(w)
}
