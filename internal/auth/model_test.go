package auth

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		want Role
	}{
		{"admin", RoleAdmin},
		{"head", RoleHead},
		{"officer", RoleOfficer},
		{"user", RoleUser},

		// Legacy alias from older accounts.
		{"worker", RoleOfficer},
		{"Worker", RoleOfficer},

		// Normalization.
		{"  Admin  ", RoleAdmin},
		{"HEAD", RoleHead},

		// Unknown or empty falls back to the lowest privilege.
		{"", RoleUser},
		{"superuser", RoleUser},
		{"moderator", RoleUser},
	}

	for _, tt := range tests {
		if got := ParseRole(tt.raw); got != tt.want {
			t.Errorf("ParseRole(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, raw := range []string{"user", "officer", "worker", "head", "admin", " Admin "} {
		if !ValidRole(raw) {
			t.Errorf("ValidRole(%q) = false, want true", raw)
		}
	}
	for _, raw := range []string{"", "superuser", "root"} {
		if ValidRole(raw) {
			t.Errorf("ValidRole(%q) = true, want false", raw)
		}
	}
}

func TestNewProfileFlags(t *testing.T) {
	tests := []struct {
		role      string
		isAdmin   bool
		isHead    bool
		isOfficer bool
	}{
		{"admin", true, false, false},
		{"head", false, true, false},
		{"officer", false, false, true},
		{"worker", false, false, true},
		{"user", false, false, false},
		{"garbage", false, false, false},
	}

	for _, tt := range tests {
		p := NewProfile(&User{ID: 1, Email: "a@b.c", Role: tt.role})
		if p.IsAdmin != tt.isAdmin || p.IsHead != tt.isHead || p.IsOfficer != tt.isOfficer {
			t.Errorf("NewProfile(role=%q) flags = admin:%v head:%v officer:%v", tt.role, p.IsAdmin, p.IsHead, p.IsOfficer)
		}
	}
}

func TestDegradedProfile(t *testing.T) {
	p := DegradedProfile(42, "a@b.c")
	if p.Role != RoleUser {
		t.Errorf("degraded role = %s, want user", p.Role)
	}
	if p.IsAdmin || p.IsHead || p.IsOfficer {
		t.Error("degraded profile must carry no elevated flags")
	}
	if p.UserID != 42 || p.Email != "a@b.c" {
		t.Errorf("degraded profile identity = %d/%s", p.UserID, p.Email)
	}
}

func TestCheckPasswordStrength(t *testing.T) {
	valid := []string{"Password1", "Str0ngEnough", "xY3aaaaa"}
	for _, pw := range valid {
		if err := checkPasswordStrength(pw); err != nil {
			t.Errorf("checkPasswordStrength(%q) = %v, want nil", pw, err)
		}
	}

	weak := []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"}
	for _, pw := range weak {
		if err := checkPasswordStrength(pw); err == nil {
			t.Errorf("checkPasswordStrength(%q) = nil, want ErrWeakPassword", pw)
		}
	}
}
