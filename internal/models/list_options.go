package models

// ListOptions selects a page of pull requests, most recently updated first
type ListOptions struct {
	// State filters by PR state (open or closed)
	State PRState
	// Page is 1-based
	Page int
	// PerPage is the page size
	PerPage int
}
