package profile

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"incomplete to basic", StatusIncomplete, StatusBasic, true},
		{"basic to verified", StatusBasic, StatusVerified, true},
		{"verified to premium", StatusVerified, StatusPremium, true},
		{"skip basic", StatusIncomplete, StatusVerified, false},
		{"skip verified", StatusBasic, StatusPremium, false},
		{"backwards", StatusVerified, StatusBasic, false},
		{"premium is terminal", StatusPremium, StatusVerified, false},
		{"same state", StatusBasic, StatusBasic, false},
		{"unknown from", "bogus", StatusBasic, false},
		{"unknown to", StatusBasic, "bogus", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestProgressForStatus(t *testing.T) {
	tests := []struct {
		status string
		want   int
	}{
		{StatusIncomplete, 25},
		{StatusBasic, 50},
		{StatusVerified, 75},
		{StatusPremium, 100},
		{"bogus", 25},
	}

	for _, tt := range tests {
		if got := ProgressForStatus(tt.status); got != tt.want {
			t.Errorf("ProgressForStatus(%q) = %d, want %d", tt.status, got, tt.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusIncomplete, StatusBasic, StatusVerified, StatusPremium} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	if ValidStatus("gold") {
		t.Error("ValidStatus(\"gold\") = true, want false")
	}
}

func TestRoleFor(t *testing.T) {
	tests := []struct {
		name      string
		wantTable string
		wantOK    bool
	}{
		{"tenant", "tenant_profiles", true},
		{"agent", "realtor_profiles", true},
		{"landlord", "landlord_profiles", true},
		{"admin", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		role, ok := RoleFor(tt.name)
		if ok != tt.wantOK {
			t.Errorf("RoleFor(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			continue
		}
		if ok && role.Table != tt.wantTable {
			t.Errorf("RoleFor(%q).Table = %q, want %q", tt.name, role.Table, tt.wantTable)
		}
	}
}
