package report

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
	"github.com/wahlandcase/attuned.mergestrategy/internal/strategy"
)

func analyzed(facts models.PullRequestFacts) models.PRAnalysis {
	return models.PRAnalysis{Facts: facts, Recommendation: strategy.Recommend(facts)}
}

func sampleAnalysis() models.RepositoryAnalysis {
	conflicted := models.PullRequestFacts{
		ID:             32,
		Title:          "Dev",
		State:          models.PRStateOpen,
		MergeableState: models.MergeableStateDirty,
		Mergeable:      models.BoolPtr(false),
		Additions:      1300,
		Deletions:      831,
		ChangedFiles:   16,
		Commits:        8,
		Draft:          true,
	}
	draft := models.PullRequestFacts{
		ID:             30,
		Title:          "Security fix",
		State:          models.PRStateOpen,
		MergeableState: models.MergeableStateClean,
		Mergeable:      models.BoolPtr(true),
		Additions:      200,
		Deletions:      50,
		ChangedFiles:   5,
		Commits:        3,
		Draft:          true,
	}
	ready := models.PullRequestFacts{
		ID:             27,
		Title:          "Bump next",
		State:          models.PRStateOpen,
		MergeableState: models.MergeableStateClean,
		Mergeable:      models.BoolPtr(true),
		Additions:      8,
		Deletions:      2,
		ChangedFiles:   1,
		Commits:        1,
	}
	unknown := models.PullRequestFacts{
		ID:             25,
		Title:          "Still computing",
		State:          models.PRStateOpen,
		MergeableState: models.MergeableStateUnknown,
		Additions:      10,
		Deletions:      1,
		ChangedFiles:   1,
		Commits:        1,
	}
	latest := models.PullRequestFacts{
		ID:           28,
		Title:        "Security and quality",
		State:        models.PRStateClosed,
		Additions:    192,
		Deletions:    103,
		ChangedFiles: 10,
		Commits:      7,
	}

	return models.RepositoryAnalysis{
		Owner:        "mrwebwork",
		Repo:         "spotify",
		LatestMerged: &latest,
		ActivePRs:    []models.PRAnalysis{analyzed(conflicted), analyzed(draft), analyzed(ready), analyzed(unknown)},
		Patterns: models.RepositoryMergePatterns{
			PreferredStrategy: models.StrategySquash,
			AveragePRSize:     295,
			ConflictFrequency: 0.1,
		},
	}
}

func TestRenderSectionOrder(t *testing.T) {
	out := Render(sampleAnalysis())

	sections := []string{
		"# Merge Strategy Analysis Report",
		"## Repository Overview",
		"## Latest Merged PR Context",
		"## Active PR Recommendations",
		"### PR #32: Dev",
		"### PR #30: Security fix",
		"### PR #27: Bump next",
		"### PR #25: Still computing",
		"## General Recommendations",
		"### 🚨 Priority Actions",
		"### ✅ Ready to Merge",
		"### 📋 Merge Strategy Guidelines",
	}

	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		require.NotEqual(t, -1, idx, "missing section %q", s)
		assert.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}
}

func TestRenderOverviewAndLatest(t *testing.T) {
	out := Render(sampleAnalysis())

	assert.Contains(t, out, "- **Preferred Strategy**: squash\n")
	assert.Contains(t, out, "- **Average PR Size**: 295 lines\n")
	assert.Contains(t, out, "- **Active PRs**: 4\n")
	assert.Contains(t, out, "- **PR #28**: Security and quality\n")
	assert.Contains(t, out, "- **Size**: 295 lines changed\n")
	assert.Contains(t, out, "- **Files**: 10 files modified\n")
}

func TestRenderRecommendationBlock(t *testing.T) {
	out := Render(sampleAnalysis())

	assert.Contains(t, out, "### PR #32: Dev\n- **Recommended Strategy**: MANUAL\n- **Confidence**: 90%\n- **Timeline**: 1-2 hours for conflict resolution\n- **Prerequisites**: Resolve merge conflicts first\n")
	assert.Contains(t, out, "- **Prerequisites**: Mark PR as ready for review\n")
	assert.Contains(t, out, "- ⚠️ PR is still in draft state\n")

	// Ready PR has neither prerequisites nor risks
	block := out[strings.Index(out, "### PR #27"):strings.Index(out, "### PR #25")]
	assert.NotContains(t, block, "Prerequisites")
	assert.NotContains(t, block, "**Risks**")
}

func TestRenderPriorityAndReady(t *testing.T) {
	out := Render(sampleAnalysis())

	priority := out[strings.Index(out, "### 🚨 Priority Actions"):strings.Index(out, "### ✅ Ready to Merge")]
	assert.Contains(t, priority, "2 PR(s) have merge conflicts")
	assert.Contains(t, priority, "- PR #32: Dev\n")
	assert.Contains(t, priority, "- PR #25: Still computing\n")
	assert.NotContains(t, priority, "PR #30")

	ready := out[strings.Index(out, "### ✅ Ready to Merge"):strings.Index(out, "### 📋")]
	assert.Equal(t, "### ✅ Ready to Merge\n- PR #27: **SQUASH** merge recommended\n\n", ready)
}

func TestRenderOptionalSections(t *testing.T) {
	analysis := sampleAnalysis()
	analysis.LatestMerged = nil
	analysis.ActivePRs = analysis.ActivePRs[1:2]

	out := Render(analysis)

	assert.NotContains(t, out, "Latest Merged PR Context")
	assert.NotContains(t, out, "Priority Actions")
	assert.NotContains(t, out, "Ready to Merge")
	assert.NotContains(t, out, "Scan Failures")
	assert.Contains(t, out, "Merge Strategy Guidelines")
}

func TestRenderFailures(t *testing.T) {
	analysis := sampleAnalysis()
	analysis.Failures = []models.ScanFailure{{Number: 40, Error: "boom"}}

	out := Render(analysis)

	assert.True(t, strings.HasSuffix(out, "## Scan Failures\n- PR #40: boom\n\n"))
	assert.Less(t, strings.Index(out, "### 📋 Merge Strategy Guidelines"), strings.Index(out, "## Scan Failures"))

	// The fixed sections render as without failures
	analysis.Failures = nil
	assert.True(t, strings.HasPrefix(out, Render(analysis)))
}

func TestRenderIsIdempotent(t *testing.T) {
	analysis := sampleAnalysis()

	assert.Equal(t, Render(analysis), Render(analysis))
}

func TestRenderGuidelinesAreStatic(t *testing.T) {
	empty := Render(models.RepositoryAnalysis{})
	full := Render(sampleAnalysis())

	guidelines := func(s string) string { return s[strings.Index(s, "### 📋"):] }
	assert.Equal(t, guidelines(empty), guidelines(full))
	assert.Contains(t, empty, "- **Active PRs**: 0\n")
}

func TestRenderRecommendation(t *testing.T) {
	facts := models.PullRequestFacts{
		ID:             30,
		Title:          "Security fix",
		State:          models.PRStateOpen,
		MergeableState: models.MergeableStateClean,
		Mergeable:      models.BoolPtr(true),
		Additions:      200,
		Deletions:      50,
		ChangedFiles:   5,
		Commits:        3,
		Draft:          true,
	}

	out := RenderRecommendation(facts, strategy.Recommend(facts))

	assert.True(t, strings.HasPrefix(out, "## PR #30: Security fix\n\n**Recommended Strategy**: MERGE\n**Confidence**: 60%\n"))
	assert.Contains(t, out, "**Prerequisites**:\n- Mark PR as ready for review\n")
	assert.Contains(t, out, "- Mergeable: true\n")
	assert.Contains(t, out, "- Changes: +200/-50\n")
	assert.Contains(t, out, "- Draft: true\n")
}

func TestMergeableDisplay(t *testing.T) {
	assert.Equal(t, "unknown", MergeableDisplay(nil))
	assert.Equal(t, "false", MergeableDisplay(models.BoolPtr(false)))
}

func TestRecommendationJSONRoundTrip(t *testing.T) {
	facts := models.PullRequestFacts{
		Mergeable:      models.BoolPtr(true),
		MergeableState: models.MergeableStateClean,
		Additions:      800,
		Deletions:      700,
		ChangedFiles:   30,
		Commits:        12,
		Draft:          true,
	}
	rec := strategy.Recommend(facts)

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded models.Recommendation
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rec, decoded)
}

func TestWriteAndReadAnalysis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "merge-analysis.json")
	analysis := sampleAnalysis()

	require.NoError(t, WriteAnalysis(path, analysis))

	loaded, err := ReadAnalysis(path)
	require.NoError(t, err)
	assert.Equal(t, analysis, *loaded)
	assert.Equal(t, Render(analysis), Render(*loaded))
}
