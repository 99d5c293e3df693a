package ledger

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// NormalizeDay builds a DayEntry from a loosely shaped incoming row. Only
// the recognized fields are carried over; anything else is dropped.
func NormalizeDay(raw map[string]any) DayEntry {
	return DayEntry{
		Date:       asString(raw["date"]),
		Day:        asString(raw["day"]),
		Saturday:   asString(raw["saturday"]),
		Holiday:    asString(raw["holiday"]),
		SickDay:    asString(raw["sick_day"]),
		DayOff:     asString(raw["day_off"]),
		StartTime:  asString(raw["start_time"]),
		EndTime:    asString(raw["end_time"]),
		Task:       asString(raw["task"]),
		TotalHours: asString(raw["totalHours"]),
	}
}

// MergeDays upserts incoming rows into the existing day list, keyed by
// date. Later rows win, rows without a date are skipped, and the merged
// list comes back sorted ascending with unparseable dates first. A nil
// batch merges as empty.
func MergeDays(existing []DayEntry, incoming []map[string]any) []DayEntry {
	byDate := make(map[string]DayEntry, len(existing)+len(incoming))
	for _, day := range existing {
		if day.Date != "" {
			byDate[day.Date] = day
		}
	}
	for _, raw := range incoming {
		entry := NormalizeDay(raw)
		if entry.Date == "" {
			continue
		}
		byDate[entry.Date] = entry
	}

	merged := make([]DayEntry, 0, len(byDate))
	for _, day := range byDate {
		merged = append(merged, day)
	}
	sort.Slice(merged, func(i, j int) bool {
		return dateSortKey(merged[i].Date).Before(dateSortKey(merged[j].Date))
	})
	return merged
}

func dateSortKey(date string) time.Time {
	at, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}
	}
	return at
}

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
