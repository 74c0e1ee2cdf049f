package models

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2024-03-05", false},
		{" 2024-03-05 ", false},
		{"2024-03-05 14:30:00", false},
		{"2024-03-05T14:30:00", false},
		{"2024-03-05T14:30:00+05:30", false},
		{"05/03/2024", true},
		{"", true},
		{"2024-02-30", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) failed: %v", tt.in, err)
			}
			if !got.Equal(want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, want)
			}
		})
	}
}

func TestDateOnly(t *testing.T) {
	if got := DateOnly("2024-03-05 09:15:00"); got != "2024-03-05" {
		t.Errorf("DateOnly with time = %q", got)
	}
	if got := DateOnly("2024-03-05"); got != "2024-03-05" {
		t.Errorf("DateOnly without time = %q", got)
	}
	if got := DateOnly(""); got != "" {
		t.Errorf("DateOnly empty = %q", got)
	}
}

func TestEnums(t *testing.T) {
	if !StatusPaid.Valid() || !StatusUnpaid.Valid() {
		t.Error("known statuses should be valid")
	}
	if PaymentStatus("Partial").Valid() {
		t.Error("unknown status should be invalid")
	}
	for _, m := range PaymentModes {
		if !m.Valid() {
			t.Errorf("mode %s should be valid", m)
		}
	}
	if PaymentMode("Crypto").Valid() {
		t.Error("unknown mode should be invalid")
	}
}
