// Package yearly folds one employee's monthly tax figures into cumulative
// year-to-date totals as of a reporting month.
package yearly

import (
	"strconv"
	"strings"

	"paydesk/internal/domain/ledger"
	"paydesk/internal/platform/money"
)

// Statutory leave entitlements, in days per year.
const (
	SickDaysEntitlement     = 18.0
	VacationDaysEntitlement = 12.0
)

// Fields is the fixed set of tax figures tracked into yearly totals. The
// two balance fields are summed like the rest and then overwritten by the
// entitlement arithmetic below.
var Fields = []string{
	"sick_days_salary",
	"vacation_days_salary",
	"sick_days_balance",
	"vacation_balance",
	"gross_taxable",
	"employee_pension_fund",
	"self_employed_pension_fund",
	"study_fund_deductions",
	"miscellaneous_deductions",
	"national_insurance_deductions",
	"health_insurance_deductions",
	"income_tax",
	"amount_tax_credit_points_monthly",
	"final_city_tax_benefit",
	"pension_fund",
	"compensation",
	"study_fund",
	"disability",
	"miscellaneous",
	"national_insurance",
	"salary_tax",
	"total_employer_contributions",
	"total_salary_cost",
}

// ComputeTotals sums the tracked fields over every persisted month of the
// target year strictly before currentMonth, then adds the caller-supplied
// figures for the month being saved. The persisted slot for currentMonth
// itself is excluded so repeated saves of the same month never double
// count. Balances may go negative; usage beyond the entitlement is not
// clamped.
//
// The result maps "<field>_yearly" to a display string: balance and
// day-count figures plain with two decimals, everything else grouped.
func ComputeTotals(record ledger.EmployeeYear, year, currentMonth int, currentTax map[string]any) map[string]string {
	totals := make(map[string]float64, len(Fields))
	for _, field := range Fields {
		totals[field+"_yearly"] = 0
	}

	prefix := strconv.Itoa(year)
	for key, slot := range record.Months {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		parts := strings.SplitN(key, "-", 2)
		if len(parts) != 2 {
			continue
		}
		month, err := strconv.Atoi(parts[1])
		if err != nil || month >= currentMonth {
			continue
		}

		tax := slot.HoursTable.Tax
		for _, field := range Fields {
			totals[field+"_yearly"] += money.Clean(tax[field])
		}
	}

	for _, field := range Fields {
		totals[field+"_yearly"] += money.Clean(currentTax[field])
	}

	totals["sick_days_balance_yearly"] = SickDaysEntitlement - totals["sick_days_salary_yearly"]
	totals["vacation_balance_yearly"] = VacationDaysEntitlement - totals["vacation_days_salary_yearly"]

	formatted := make(map[string]string, len(totals))
	for key, value := range totals {
		if strings.Contains(key, "balance") || strings.Contains(key, "days") {
			formatted[key] = money.Plain2(value)
		} else {
			formatted[key] = money.Grouped2(value)
		}
	}
	return formatted
}
