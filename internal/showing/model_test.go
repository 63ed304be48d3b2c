package showing

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"requested can be confirmed", StatusRequested, StatusConfirmed, true},
		{"requested can be cancelled", StatusRequested, StatusCancelled, true},
		{"requested cannot complete directly", StatusRequested, StatusCompleted, false},
		{"requested cannot reschedule", StatusRequested, StatusRescheduled, false},
		{"confirmed can complete", StatusConfirmed, StatusCompleted, true},
		{"confirmed can cancel", StatusConfirmed, StatusCancelled, true},
		{"confirmed can reschedule", StatusConfirmed, StatusRescheduled, true},
		{"rescheduled back to confirmed", StatusRescheduled, StatusConfirmed, true},
		{"rescheduled can cancel", StatusRescheduled, StatusCancelled, true},
		{"rescheduled cannot complete", StatusRescheduled, StatusCompleted, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"no self transition", StatusConfirmed, StatusConfirmed, false},
		{"unknown from", "archived", StatusCancelled, false},
		{"unknown to", StatusConfirmed, "archived", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
