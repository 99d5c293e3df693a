// Package ledger owns the durable payroll data model: per-employee,
// per-month day entries with their caller-supplied totals, grouped into a
// year ledger keyed by employee id.
package ledger

import (
	"encoding/json"
	"fmt"
)

// DateLayout is the calendar-date format used throughout the ledger.
const DateLayout = "2006-01-02"

// NameKey is the reserved key that carries the employee display name
// inside a per-employee ledger object, next to the "YYYY-MM" month keys.
// Month-key iteration must skip it; EmployeeYear handles that in its JSON
// round trip so Months only ever holds real months.
const NameKey = "employee_name"

// DayEntry is one worked day on an employee's hours card. Times stay
// "HH:MM" strings and TotalHours a rendered string so an incomplete day
// remains blank instead of a misleading zero.
type DayEntry struct {
	Date       string `json:"date"`
	Day        string `json:"day"`
	Saturday   string `json:"saturday"`
	Holiday    string `json:"holiday"`
	SickDay    string `json:"sick_day"`
	DayOff     string `json:"day_off"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Task       string `json:"task"`
	TotalHours string `json:"totalHours"`
}

// HoursTable groups a month's day rows with the totals the caller
// computed for them. Totals are kept loosely typed: they arrive as display
// strings from the hours card and are never recomputed here.
type HoursTable struct {
	WorkDayEntries []DayEntry     `json:"work_day_entries"`
	MonthlyTotals  map[string]any `json:"monthly_totals,omitempty"`
	PaidTotals     map[string]any `json:"paid_totals,omitempty"`
	Tax            map[string]any `json:"tax,omitempty"`
}

// MonthRecord is one employee-month slot in the year ledger.
type MonthRecord struct {
	HoursTable HoursTable `json:"hours_table"`
}

// EmployeeYear holds one employee's month records for a calendar year plus
// the display name.
type EmployeeYear struct {
	Name   string
	Months map[string]MonthRecord
}

// YearLedger maps employee id to that employee's records for one year.
type YearLedger map[string]EmployeeYear

// MonthKey builds the zero-padded "YYYY-MM" key for a month slot.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%d-%02d", year, month)
}

func (e EmployeeYear) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Months)+1)
	out[NameKey] = e.Name
	for key, record := range e.Months {
		out[key] = record
	}
	return json.Marshal(out)
}

func (e *EmployeeYear) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Months = make(map[string]MonthRecord, len(raw))
	for key, value := range raw {
		if key == NameKey {
			_ = json.Unmarshal(value, &e.Name)
			continue
		}
		var record MonthRecord
		if err := json.Unmarshal(value, &record); err != nil {
			// malformed month slot reads as absent
			continue
		}
		e.Months[key] = record
	}
	return nil
}
