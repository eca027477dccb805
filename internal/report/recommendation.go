package report

import (
	"fmt"
	"strings"

	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
)

// RenderRecommendation returns the printout for a single PR recommendation
func RenderRecommendation(facts models.PullRequestFacts, rec models.Recommendation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## PR #%d: %s\n\n", facts.ID, facts.Title)
	fmt.Fprintf(&b, "**Recommended Strategy**: %s\n", rec.Strategy.Display())
	fmt.Fprintf(&b, "**Confidence**: %d%%\n", rec.Confidence)
	fmt.Fprintf(&b, "**Timeline**: %s\n\n", rec.TimelineEstimate)

	if len(rec.Prerequisites) > 0 {
		b.WriteString("**Prerequisites**:\n")
		for _, prereq := range rec.Prerequisites {
			fmt.Fprintf(&b, "- %s\n", prereq)
		}
		b.WriteString("\n")
	}

	b.WriteString("**Reasoning**:\n")
	for _, reason := range rec.Reasoning {
		fmt.Fprintf(&b, "- %s\n", reason)
	}

	if len(rec.Risks) > 0 {
		b.WriteString("\n**Risks**:\n")
		for _, risk := range rec.Risks {
			fmt.Fprintf(&b, "- ⚠️ %s\n", risk)
		}
	}

	b.WriteString("\n---\n\n")
	b.WriteString("**PR Details**:\n")
	fmt.Fprintf(&b, "- State: %s\n", facts.State)
	fmt.Fprintf(&b, "- Mergeable: %s\n", MergeableDisplay(facts.Mergeable))
	fmt.Fprintf(&b, "- Mergeable State: %s\n", facts.MergeableState)
	fmt.Fprintf(&b, "- Changes: +%d/-%d\n", facts.Additions, facts.Deletions)
	fmt.Fprintf(&b, "- Files: %d\n", facts.ChangedFiles)
	fmt.Fprintf(&b, "- Commits: %d\n", facts.Commits)
	fmt.Fprintf(&b, "- Draft: %t\n", facts.Draft)

	return b.String()
}

// MergeableDisplay formats the tri-state mergeable flag
func MergeableDisplay(mergeable *bool) string {
	if mergeable == nil {
		return "unknown"
	}
	return fmt.Sprintf("%t", *mergeable)
}
