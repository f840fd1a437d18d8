package user

import "testing"

func TestVerifyPasswordComplexity(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"good", "passw0rd", false},
		{"long mixed", "Tracker2025", false},
		{"too short", "ab1", true},
		{"letters only", "passwordz", true},
		{"digits only", "12345678", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := VerifyPasswordComplexity(tc.password)
			if tc.wantErr && err == nil {
				t.Fatalf("expected an error for %q", tc.password)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.password, err)
			}
		})
	}
}
