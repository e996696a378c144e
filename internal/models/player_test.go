package models

import "testing"

func TestPlayerName(t *testing.T) {
	tests := []struct {
		name   string
		player Player
		want   string
	}{
		{"first and last", Player{FirstName: "Alice", LastName: "Smith"}, "Alice Smith"},
		{"first name only", Player{FirstName: "Cher"}, "Cher"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.player.Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}
