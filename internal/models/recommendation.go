package models

// Recommendation is the merge strategy advice for a single pull request.
// Reasoning, Risks and Prerequisites keep the order in which rules fired.
type Recommendation struct {
	Strategy         Strategy `json:"strategy"`
	Confidence       int      `json:"confidence"`
	Reasoning        []string `json:"reasoning"`
	Risks            []string `json:"risks"`
	Prerequisites    []string `json:"prerequisites"`
	TimelineEstimate string   `json:"timeline_estimate"`
}
