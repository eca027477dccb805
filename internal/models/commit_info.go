package models

// CommitInfo contains information about a git commit
type CommitInfo struct {
	// SHA is the full commit hash
	SHA string `json:"sha"`
	// Message is the full commit message
	Message string `json:"message"`
}

// ShortSHA returns the 7 character abbreviated hash
func (c CommitInfo) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}
