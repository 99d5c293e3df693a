// Package timeclock turns raw clock events into ledger day entries: the
// elapsed-hours resolver, the clock-in/out punch flow and the bulk
// hours-card save.
package timeclock

import (
	"math"
	"time"
)

// TimeLayout is the clock reading format on the hours card.
const TimeLayout = "15:04"

// ResolveHours returns the elapsed hours between two clock readings,
// rounded to two decimals. An end before the start means the shift ran
// past midnight, so a day is added before differencing; there is no upper
// bound on shift length. A missing or malformed reading resolves to zero
// rather than failing the row.
func ResolveHours(start, end string) float64 {
	startAt, err := time.Parse(TimeLayout, start)
	if err != nil {
		return 0
	}
	endAt, err := time.Parse(TimeLayout, end)
	if err != nil {
		return 0
	}

	if endAt.Before(startAt) {
		endAt = endAt.Add(24 * time.Hour)
	}
	return math.Round(endAt.Sub(startAt).Hours()*100) / 100
}
