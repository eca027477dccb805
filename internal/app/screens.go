package app

// Screen represents the current view in the application
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenList
	ScreenDetail
	ScreenMergeConfirm
	ScreenMerging
	ScreenMergeResult
	ScreenError
)

func (s Screen) String() string {
	names := []string{
		"Loading",
		"List",
		"Detail",
		"MergeConfirm",
		"Merging",
		"MergeResult",
		"Error",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}
