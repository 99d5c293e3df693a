package timeclock

import (
	"context"
	"time"

	"paydesk/internal/domain/ledger"
	"paydesk/internal/platform/locks"
	"paydesk/internal/platform/money"
)

// hebrewDays is indexed by time.Weekday (Sunday first).
var hebrewDays = [7]string{"ראשון", "שני", "שלישי", "רביעי", "חמישי", "שישי", "שבת"}

// NameLookup resolves an employee's display name for the ledger record.
type NameLookup interface {
	DisplayName(ctx context.Context, employeeID string) (string, error)
}

type Service struct {
	ledger ledger.Store
	names  NameLookup
	locks  *locks.Keyed
}

func NewService(store ledger.Store, names NameLookup, keyed *locks.Keyed) *Service {
	return &Service{ledger: store, names: names, locks: keyed}
}

// ClockIn stamps the start time on today's entry, creating the entry if
// the employee has not punched yet. An existing end time is left alone.
func (s *Service) ClockIn(ctx context.Context, employeeID string, now time.Time) (ledger.DayEntry, error) {
	return s.punch(ctx, employeeID, now, func(entry *ledger.DayEntry) {
		entry.StartTime = now.Format(TimeLayout)
	})
}

// ClockOut stamps the end time and task on today's entry and derives the
// day's total hours when a start time is present. Without a start the
// total stays blank; the day reads as incomplete, not zero-length.
func (s *Service) ClockOut(ctx context.Context, employeeID, task string, now time.Time) (ledger.DayEntry, error) {
	return s.punch(ctx, employeeID, now, func(entry *ledger.DayEntry) {
		entry.EndTime = now.Format(TimeLayout)
		entry.Task = task
		if entry.StartTime != "" {
			entry.TotalHours = money.Plain2(ResolveHours(entry.StartTime, entry.EndTime))
		}
	})
}

// SaveDays merges a batch of hours-card rows into the employee's month
// record and persists it as a whole-record replace. Totals are untouched;
// the submission flow supplies those.
func (s *Service) SaveDays(ctx context.Context, employeeID string, year, month int, incoming []map[string]any) (ledger.MonthRecord, error) {
	unlock := s.locks.Lock(locks.EmployeeYearKey(employeeID, year))
	defer unlock()

	record, err := s.loadEmployee(ctx, employeeID, year)
	if err != nil {
		return ledger.MonthRecord{}, err
	}

	key := ledger.MonthKey(year, month)
	slot := record.Months[key]
	slot.HoursTable.WorkDayEntries = ledger.MergeDays(slot.HoursTable.WorkDayEntries, incoming)
	record.Months[key] = slot

	if err := s.ledger.SaveEmployee(ctx, year, employeeID, record); err != nil {
		return ledger.MonthRecord{}, err
	}
	return slot, nil
}

// Month returns the employee's record for one month; an empty record when
// nothing has been saved yet.
func (s *Service) Month(ctx context.Context, employeeID string, year, month int) (ledger.MonthRecord, error) {
	record, _, err := s.ledger.LoadEmployee(ctx, year, employeeID)
	if err != nil {
		return ledger.MonthRecord{}, err
	}
	return record.Months[ledger.MonthKey(year, month)], nil
}

func (s *Service) punch(ctx context.Context, employeeID string, now time.Time, update func(*ledger.DayEntry)) (ledger.DayEntry, error) {
	year := now.Year()
	unlock := s.locks.Lock(locks.EmployeeYearKey(employeeID, year))
	defer unlock()

	record, err := s.loadEmployee(ctx, employeeID, year)
	if err != nil {
		return ledger.DayEntry{}, err
	}

	key := ledger.MonthKey(year, int(now.Month()))
	slot := record.Months[key]

	date := now.Format(ledger.DateLayout)
	entries := slot.HoursTable.WorkDayEntries
	index := -1
	for i := range entries {
		if entries[i].Date == date {
			index = i
			break
		}
	}
	if index < 0 {
		entries = append(entries, newDayEntry(now))
		index = len(entries) - 1
	}
	update(&entries[index])

	slot.HoursTable.WorkDayEntries = entries
	record.Months[key] = slot

	if err := s.ledger.SaveEmployee(ctx, year, employeeID, record); err != nil {
		return ledger.DayEntry{}, err
	}
	return entries[index], nil
}

func (s *Service) loadEmployee(ctx context.Context, employeeID string, year int) (ledger.EmployeeYear, error) {
	record, _, err := s.ledger.LoadEmployee(ctx, year, employeeID)
	if err != nil {
		return ledger.EmployeeYear{}, err
	}
	if record.Months == nil {
		record.Months = map[string]ledger.MonthRecord{}
	}
	if s.names != nil {
		if name, err := s.names.DisplayName(ctx, employeeID); err == nil && name != "" {
			record.Name = name
		}
	}
	return record, nil
}

func newDayEntry(now time.Time) ledger.DayEntry {
	weekday := now.Weekday()
	entry := ledger.DayEntry{
		Date: now.Format(ledger.DateLayout),
		Day:  hebrewDays[weekday],
	}
	if weekday == time.Saturday {
		entry.Saturday = hebrewDays[time.Saturday]
	}
	return entry
}
