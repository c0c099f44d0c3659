package utils

import (
	"testing"
	"time"
)

func TestTimeToMs(t *testing.T) {
	if got := TimeToMs(1500 * time.Microsecond); got != 1.5 {
		t.Errorf("expected 1.5, got %v", got)
	}
	if got := TimeToMs(0); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := TimeToMs(2 * time.Second); got != 2000 {
		t.Errorf("expected 2000, got %v", got)
	}
	if got := MsToTime(1.5); got != 1500*time.Microsecond {
		t.Errorf("expected 1.5ms, got %v", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Nanosecond, "500ns"},
		{1234 * time.Nanosecond, "1µs"},
		{12345678 * time.Nanosecond, "12.35ms"},
		{1234567890 * time.Nanosecond, "1.23s"},
		{90*time.Second + 400*time.Millisecond, "1m30s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
