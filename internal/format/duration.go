package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds below a millisecond, milliseconds below a second,
// and the default string representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}

// FormatRate formats a throughput of count items over d, e.g. "12,345 items/s".
// A non-positive duration yields "n/a".
func FormatRate(count int64, d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	rate := float64(count) / d.Seconds()
	if rate >= 100 {
		return FormatInt(int64(rate+0.5)) + " items/s"
	}
	return fmt.Sprintf("%.2f items/s", rate)
}
