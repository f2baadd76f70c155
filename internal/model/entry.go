package model

// Entry is a single diary record owned by exactly one account.
//
// ID and UserID are immutable once the row exists: updates only ever touch
// the six descriptive fields. Date and Time are free-form text — the
// original system never parsed them, and neither do we. The expected shapes
// are "YYYY-MM-DD" and "HH:MM:SS" but no format is enforced.
type Entry struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"` // task name
	Duration string `json:"duration"`
	Address  string `json:"address"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Details  string `json:"details"`
	UserID   int64  `json:"userId"`
}
