package domain

import "testing"

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		price float64
		want  int64
	}{
		{19.99, 1999},
		{0.29, 29},
		{10, 1000},
		{10.005, 1000},
		{0, 0},
		{-5.25, -525},
	}

	for _, tc := range cases {
		if got := MinorUnits(tc.price); got != tc.want {
			t.Errorf("price=%v: expected %d, got %d", tc.price, tc.want, got)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"Student", "Teacher", "Admin"} {
		if r, err := ParseRole(s); err != nil || string(r) != s {
			t.Fatalf("expected %q to parse, got %q %v", s, r, err)
		}
	}
	for _, s := range []string{"", "admin", "Guest"} {
		if _, err := ParseRole(s); err != ErrInvalidRole {
			t.Fatalf("expected ErrInvalidRole for %q, got %v", s, err)
		}
	}
}

func TestParseReviewStatus(t *testing.T) {
	if st, err := ParseReviewStatus("Accepted"); err != nil || st != StatusAccepted {
		t.Fatalf("expected Accepted, got %q %v", st, err)
	}
	if _, err := ParseReviewStatus("accepted"); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
