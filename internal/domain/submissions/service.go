// Package submissions saves a completed month of hours and tax figures
// into the year ledger, guarding against duplicate saves and folding the
// month's tax figures into year-to-date totals on the way in.
package submissions

import (
	"context"
	"errors"
	"log/slog"

	"paydesk/internal/domain/ledger"
	"paydesk/internal/domain/yearly"
	"paydesk/internal/platform/locks"
)

// ErrAlreadyExists reports that a record for this employee and month is
// already on file, either in the ledger or in the legacy table.
var ErrAlreadyExists = errors.New("record already exists for this employee and month")

// Submission is one month of payroll data for one employee, as assembled
// by the hours card.
type Submission struct {
	EmployeeID    string           `json:"employee_id"`
	EmployeeName  string           `json:"employee_name"`
	Year          int              `json:"year"`
	Month         int              `json:"month"`
	Entries       []map[string]any `json:"work_day_entries"`
	MonthlyTotals map[string]any   `json:"monthly_totals"`
	PaidTotals    map[string]any   `json:"paid_totals"`
	Tax           map[string]any   `json:"tax"`
}

// Result reports what was persisted for the month.
type Result struct {
	Record       ledger.MonthRecord `json:"record"`
	YearlyTotals map[string]string  `json:"yearly_totals"`
}

type Service struct {
	Ledger ledger.Store
	Legacy *LegacyTable
	Locks  *locks.Keyed
}

func NewService(store ledger.Store, legacy *LegacyTable, keyed *locks.Keyed) *Service {
	return &Service{Ledger: store, Legacy: legacy, Locks: keyed}
}

// Exists reports whether a record for the employee and month is already on
// file, consulting both the ledger and the legacy table.
func (s *Service) Exists(ctx context.Context, employeeID string, year, month int) (bool, error) {
	record, found, err := s.Ledger.LoadEmployee(ctx, year, employeeID)
	if err != nil {
		return false, err
	}
	monthKey := ledger.MonthKey(year, month)
	if found {
		if _, ok := record.Months[monthKey]; ok {
			return true, nil
		}
	}
	if s.Legacy != nil {
		if _, ok := s.Legacy.Lookup(employeeID, monthKey); ok {
			return true, nil
		}
	}
	return false, nil
}

// Submit persists one month for one employee. The duplicate guard rejects
// a month that is already on file; a rejected submission leaves the stored
// record untouched. Yearly totals are computed over prior persisted months
// plus this submission's tax figures and written into the saved tax map.
func (s *Service) Submit(ctx context.Context, sub Submission) (Result, error) {
	exists, err := s.Exists(ctx, sub.EmployeeID, sub.Year, sub.Month)
	if err != nil {
		return Result{}, err
	}
	if exists {
		return Result{}, ErrAlreadyExists
	}

	unlock := s.Locks.Lock(locks.EmployeeYearKey(sub.EmployeeID, sub.Year))
	defer unlock()

	record, _, err := s.Ledger.LoadEmployee(ctx, sub.Year, sub.EmployeeID)
	if err != nil {
		return Result{}, err
	}
	if record.Months == nil {
		record.Months = map[string]ledger.MonthRecord{}
	}
	if sub.EmployeeName != "" {
		record.Name = sub.EmployeeName
	}

	totals := yearly.ComputeTotals(record, sub.Year, sub.Month, sub.Tax)

	tax := make(map[string]any, len(sub.Tax)+len(totals))
	for key, value := range sub.Tax {
		tax[key] = value
	}
	for key, value := range totals {
		tax[key] = value
	}

	monthKey := ledger.MonthKey(sub.Year, sub.Month)
	slot := record.Months[monthKey]
	slot.HoursTable.WorkDayEntries = ledger.MergeDays(slot.HoursTable.WorkDayEntries, sub.Entries)
	slot.HoursTable.MonthlyTotals = sub.MonthlyTotals
	slot.HoursTable.PaidTotals = sub.PaidTotals
	slot.HoursTable.Tax = tax
	record.Months[monthKey] = slot

	if err := s.Ledger.SaveEmployee(ctx, sub.Year, sub.EmployeeID, record); err != nil {
		return Result{}, err
	}

	slog.InfoContext(ctx, "month submitted",
		"employee_id", sub.EmployeeID,
		"month", monthKey,
		"days", len(slot.HoursTable.WorkDayEntries),
	)
	return Result{Record: slot, YearlyTotals: totals}, nil
}
