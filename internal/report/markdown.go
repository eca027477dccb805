// Package report renders merge strategy analyses as Markdown and JSON.
package report

import (
	"fmt"
	"strings"

	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
)

// Guidelines is the static rule-of-thumb block closing every report
var Guidelines = []string{
	"**Small PRs (< 100 lines)**: Prefer squash merge for clean history",
	"**Medium PRs (100-1000 lines)**: Use merge commit to preserve context",
	"**Large PRs (> 1000 lines)**: Consider breaking down or use merge commit",
	"**Hotfixes**: Use squash merge for clean production history",
	"**Feature branches**: Use merge commit to maintain feature context",
}

// Render returns the Markdown report for a repository analysis.
// The output contains no timestamps; equal analyses render identically.
func Render(analysis models.RepositoryAnalysis) string {
	var b strings.Builder

	b.WriteString("# Merge Strategy Analysis Report\n\n")

	writeOverview(&b, analysis)
	if analysis.LatestMerged != nil {
		writeLatestMerged(&b, *analysis.LatestMerged)
	}

	b.WriteString("## Active PR Recommendations\n\n")
	for _, pr := range analysis.ActivePRs {
		writeRecommendation(&b, pr)
	}

	b.WriteString("## General Recommendations\n\n")
	writePriorityActions(&b, analysis.Conflicted())
	writeReady(&b, analysis.Ready())
	writeGuidelines(&b)

	// Failures follow the fixed sections
	if len(analysis.Failures) > 0 {
		b.WriteString("## Scan Failures\n")
		for _, f := range analysis.Failures {
			fmt.Fprintf(&b, "- PR #%d: %s\n", f.Number, f.Error)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeOverview(b *strings.Builder, analysis models.RepositoryAnalysis) {
	b.WriteString("## Repository Overview\n")
	if analysis.Owner != "" && analysis.Repo != "" {
		fmt.Fprintf(b, "- **Repository**: %s/%s\n", analysis.Owner, analysis.Repo)
	}
	fmt.Fprintf(b, "- **Preferred Strategy**: %s\n", analysis.Patterns.PreferredStrategy)
	fmt.Fprintf(b, "- **Average PR Size**: %d lines\n", analysis.Patterns.AveragePRSize)
	fmt.Fprintf(b, "- **Active PRs**: %d\n\n", len(analysis.ActivePRs))
}

func writeLatestMerged(b *strings.Builder, latest models.PullRequestFacts) {
	b.WriteString("## Latest Merged PR Context\n")
	fmt.Fprintf(b, "- **PR #%d**: %s\n", latest.ID, latest.Title)
	fmt.Fprintf(b, "- **Size**: %d lines changed\n", latest.TotalChanges())
	fmt.Fprintf(b, "- **Files**: %d files modified\n\n", latest.ChangedFiles)
}

func writeRecommendation(b *strings.Builder, pr models.PRAnalysis) {
	rec := pr.Recommendation

	fmt.Fprintf(b, "### PR #%d: %s\n", pr.Facts.ID, pr.Facts.Title)
	fmt.Fprintf(b, "- **Recommended Strategy**: %s\n", rec.Strategy.Display())
	fmt.Fprintf(b, "- **Confidence**: %d%%\n", rec.Confidence)
	fmt.Fprintf(b, "- **Timeline**: %s\n", rec.TimelineEstimate)
	if len(rec.Prerequisites) > 0 {
		fmt.Fprintf(b, "- **Prerequisites**: %s\n", strings.Join(rec.Prerequisites, ", "))
	}

	b.WriteString("\n**Reasoning**:\n")
	for _, reason := range rec.Reasoning {
		fmt.Fprintf(b, "- %s\n", reason)
	}

	if len(rec.Risks) > 0 {
		b.WriteString("\n**Risks**:\n")
		for _, risk := range rec.Risks {
			fmt.Fprintf(b, "- ⚠️ %s\n", risk)
		}
	}

	b.WriteString("\n---\n\n")
}

func writePriorityActions(b *strings.Builder, conflicted []models.PRAnalysis) {
	if len(conflicted) == 0 {
		return
	}
	b.WriteString("### 🚨 Priority Actions\n")
	fmt.Fprintf(b, "%d PR(s) have merge conflicts requiring immediate attention:\n", len(conflicted))
	for _, pr := range conflicted {
		fmt.Fprintf(b, "- PR #%d: %s\n", pr.Facts.ID, pr.Facts.Title)
	}
	b.WriteString("\n")
}

func writeReady(b *strings.Builder, ready []models.PRAnalysis) {
	if len(ready) == 0 {
		return
	}
	b.WriteString("### ✅ Ready to Merge\n")
	for _, pr := range ready {
		fmt.Fprintf(b, "- PR #%d: **%s** merge recommended\n", pr.Facts.ID, pr.Recommendation.Strategy.Display())
	}
	b.WriteString("\n")
}

func writeGuidelines(b *strings.Builder) {
	b.WriteString("### 📋 Merge Strategy Guidelines\n")
	for _, line := range Guidelines {
		fmt.Fprintf(b, "- %s\n", line)
	}
	b.WriteString("\n")
}
