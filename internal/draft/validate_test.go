package draft

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePickName(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain name", input: "Keith Richards"},
		{name: "apostrophe", input: "Conan O'Brien"},
		{name: "hyphen and period", input: "Joseph Gordon-Levitt Jr."},
		{name: "digits allowed", input: "50 Cent"},
		{name: "accented letters", input: "Pelé"},
		{name: "too short", input: "X", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 256), wantErr: true},
		{name: "emoji rejected", input: "Bad Pick \U0001F480", wantErr: true},
		{name: "sql-ish characters rejected", input: "Robert'); DROP TABLE picks;--", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePickName(tc.input)
			if tc.wantErr && err == nil {
				t.Fatal("expected a validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Errorf("expected a ValidationError, got %T", err)
				}
			}
		})
	}
}
