package format

import (
	"fmt"
	"strings"
	"time"
)

// MaxETA caps estimates produced by ETAEstimator.
const MaxETA = 24 * time.Hour

// etaSmoothing is the weight of the newest rate sample in the moving average.
const etaSmoothing = 0.3

// ProgressBar renders a bar of length cells for a progress in [0, 1].
// Out-of-range values are clamped.
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	progress = clampFraction(progress)
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatETA renders a remaining-time estimate compactly. A non-positive
// estimate means there is not enough data yet.
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		s := int(eta.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h := int(eta.Hours())
		m := int(eta.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// FormatProgressBarWithETA renders "[bar] 42.0% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	progress = clampFraction(progress)
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}

// ETAEstimator derives a remaining-time estimate from successive progress
// observations using an exponential moving average of the progress rate.
// It is not safe for concurrent use.
type ETAEstimator struct {
	lastTime time.Time
	lastFrac float64
	rate     float64 // fraction per second
}

// NewETAEstimator creates an estimator whose first observation is at start
// with no progress.
func NewETAEstimator(start time.Time) *ETAEstimator {
	return &ETAEstimator{lastTime: start}
}

// Observe records that progress reached fraction at now and returns the
// updated estimate.
func (e *ETAEstimator) Observe(fraction float64, now time.Time) time.Duration {
	fraction = clampFraction(fraction)
	dt := now.Sub(e.lastTime).Seconds()
	if dt > 0 && fraction >= e.lastFrac {
		sample := (fraction - e.lastFrac) / dt
		if e.rate == 0 {
			e.rate = sample
		} else {
			e.rate = etaSmoothing*sample + (1-etaSmoothing)*e.rate
		}
		e.lastTime = now
	}
	e.lastFrac = fraction
	return e.ETA()
}

// Progress returns the last observed fraction.
func (e *ETAEstimator) Progress() float64 { return e.lastFrac }

// ETA returns the current estimate, 0 while the rate is unknown.
func (e *ETAEstimator) ETA() time.Duration {
	if e.lastFrac >= 1 {
		return 0
	}
	if e.rate <= 0 {
		return 0
	}
	secs := (1 - e.lastFrac) / e.rate
	if secs > MaxETA.Seconds() {
		return MaxETA
	}
	return time.Duration(secs * float64(time.Second))
}

func clampFraction(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
