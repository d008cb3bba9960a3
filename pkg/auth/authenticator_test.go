package auth

import "testing"

func TestIsAuthorized(t *testing.T) {
	tests := []struct {
		name   string
		ids    []int64
		userID int64
		want   bool
	}{
		{"empty list allows everyone", nil, 42, true},
		{"listed user allowed", []int64{1, 2}, 2, true},
		{"unlisted user denied", []int64{1, 2}, 3, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := NewAuthenticator(test.ids).IsAuthorized(test.userID); got != test.want {
				t.Errorf("IsAuthorized(%d) = %v, want %v", test.userID, got, test.want)
			}
		})
	}
}
