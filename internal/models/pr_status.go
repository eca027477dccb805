package models

// PRStatus is the dashboard classification of an open PR
type PRStatus int

const (
	// StatusPending is mergeable-but-not-clean or still being computed
	StatusPending PRStatus = iota
	// StatusConflicted has merge conflicts or a manual recommendation
	StatusConflicted
	// StatusDraft is still marked as draft
	StatusDraft
	// StatusReady can be merged now
	StatusReady
)

// StatusOf classifies a PR from its facts and recommendation
func StatusOf(facts PullRequestFacts, rec Recommendation) PRStatus {
	switch {
	case rec.Strategy == StrategyManual || facts.HasConflicts():
		return StatusConflicted
	case facts.Draft:
		return StatusDraft
	case facts.IsReady():
		return StatusReady
	default:
		return StatusPending
	}
}

// Display returns a display string for this status
func (s PRStatus) Display() string {
	switch s {
	case StatusConflicted:
		return "conflicted"
	case StatusDraft:
		return "draft"
	case StatusReady:
		return "ready"
	default:
		return "pending"
	}
}

// Priority is how soon a PR needs attention
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityLow
	PriorityHigh
	PriorityUrgent
)

// Priority maps a status to its priority
func (s PRStatus) Priority() Priority {
	switch s {
	case StatusConflicted:
		return PriorityUrgent
	case StatusDraft:
		return PriorityHigh
	case StatusReady:
		return PriorityLow
	default:
		return PriorityNormal
	}
}

// Display returns a display string for this priority
func (p Priority) Display() string {
	switch p {
	case PriorityUrgent:
		return "urgent"
	case PriorityHigh:
		return "high"
	case PriorityLow:
		return "low"
	default:
		return "normal"
	}
}
