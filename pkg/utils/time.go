package utils

import "time"

// TimeToMs converts time.Duration to milliseconds
func TimeToMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// MsToTime converts milliseconds to time.Duration
func MsToTime(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// FormatDuration formats a duration rounded to a precision that suits its size
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return d.String()
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(10 * time.Microsecond).String()
	case d < time.Minute:
		return d.Round(10 * time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}
