package profile

import "errors"

// Profile status lifecycle, ordered.
const (
	StatusIncomplete = "incomplete"
	StatusBasic      = "basic"
	StatusVerified   = "verified"
	StatusPremium    = "premium"
)

var statusOrder = map[string]int{
	StatusIncomplete: 0,
	StatusBasic:      1,
	StatusVerified:   2,
	StatusPremium:    3,
}

var ErrInvalidTransition = errors.New("invalid profile status transition")

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s string) bool {
	_, ok := statusOrder[s]
	return ok
}

// CanTransition enforces the strict forward order
// incomplete → basic → verified → premium, one step at a time.
func CanTransition(from, to string) bool {
	fo, ok1 := statusOrder[from]
	to2, ok2 := statusOrder[to]
	if !ok1 || !ok2 {
		return false
	}
	return to2 == fo+1
}

// ProgressForStatus maps a status to the dashboard progress percentage.
// Display-only; gating always compares status directly.
func ProgressForStatus(status string) int {
	switch status {
	case StatusBasic:
		return 50
	case StatusVerified:
		return 75
	case StatusPremium:
		return 100
	default:
		return 25
	}
}
