// Package pricing computes time-and-demand-sensitive parking fees.
package pricing

import (
	"math"
	"time"
)

// PeakWindow is an hour-of-day range [StartHour, EndHour) during which the
// peak multiplier applies.
type PeakWindow struct {
	StartHour int
	EndHour   int
}

// Engine turns a recorded parking interval into a monetary fee. It is a pure
// function of its configuration and the supplied timestamps: same inputs
// always yield the same fee.
type Engine struct {
	baseRate       float64
	peakMultiplier float64
	peakWindows    []PeakWindow
}

// NewEngine builds a pricing engine. Non-positive rate or multiplier values
// fall back to the defaults (5 units/hour, 2x, 09:00-17:00).
func NewEngine(baseRate, peakMultiplier float64, windows []PeakWindow) *Engine {
	if baseRate <= 0 {
		baseRate = 5
	}
	if peakMultiplier <= 0 {
		peakMultiplier = 2
	}
	if len(windows) == 0 {
		windows = []PeakWindow{{StartHour: 9, EndHour: 17}}
	}
	return &Engine{baseRate: baseRate, peakMultiplier: peakMultiplier, peakWindows: windows}
}

// Fee computes the charge for a session bounded by entry and exit. The base
// charge is elapsed hours times the hourly rate. When the session's entry
// hour falls at or after a peak window's start and its exit hour before the
// window's end, the multiplier applies to the entire fee. The result is
// non-negative and rounded to two decimals, half away from zero.
func (e *Engine) Fee(entry, exit time.Time) float64 {
	hours := exit.Sub(entry).Hours()
	if hours < 0 {
		hours = 0
	}
	fee := hours * e.baseRate
	for _, window := range e.peakWindows {
		if entry.Hour() >= window.StartHour && exit.Hour() < window.EndHour {
			fee *= e.peakMultiplier
			break
		}
	}
	return round2(fee)
}

// BaseRate exposes the configured hourly rate.
func (e *Engine) BaseRate() float64 {
	return e.baseRate
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
