package reports

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"paydesk/internal/domain/ledger"
)

var today = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func employeeMonth(tax map[string]any) ledger.EmployeeYear {
	return ledger.EmployeeYear{
		Months: map[string]ledger.MonthRecord{
			"2025-06": {HoursTable: ledger.HoursTable{Tax: tax}},
		},
	}
}

func TestBuildSumsQualifyingEmployees(t *testing.T) {
	yearLedger := ledger.YearLedger{
		"1": employeeMonth(map[string]any{
			"date_of_birth":                 "1990-01-01",
			"gross_taxable":                 "10,000",
			"income_tax":                    "1,500",
			"national_insurance_deductions": "400",
			"health_insurance_deductions":   "300",
			"study_fund_deductions":         "100",
			"employee_pension_fund":         "600",
			"self_employed_pension_fund":    "50",
			"pension_fund":                  "650",
			"compensation":                  "500",
			"disability":                    "70",
			"study_fund":                    "250",
		}),
		"2": employeeMonth(map[string]any{
			"date_of_birth": "1985-05-05",
			"gross_taxable": "5,000",
			"income_tax":    "500",
		}),
		// no record for June: must not be counted
		"3": {Months: map[string]ledger.MonthRecord{"2025-05": {}}},
	}

	agg := Build(yearLedger, 2025, 6, General, today)

	if agg.EmployeeCount != 2 {
		t.Fatalf("expected 2 employees, got %d", agg.EmployeeCount)
	}
	if agg.RegularCount != 2 || agg.ReducedCount != 0 {
		t.Fatalf("unexpected buckets: regular=%d reduced=%d", agg.RegularCount, agg.ReducedCount)
	}
	if agg.GrossPay != "15,000" {
		t.Fatalf("expected gross 15,000, got %q", agg.GrossPay)
	}
	if agg.IncomeTax != "2,000" {
		t.Fatalf("expected income tax 2,000, got %q", agg.IncomeTax)
	}
	// 400+300+(600+50)+100 = 1,450
	if agg.EmployeeDeductions != "1,450" {
		t.Fatalf("expected employee deductions 1,450, got %q", agg.EmployeeDeductions)
	}
	// 650+500+70+250 = 1,470
	if agg.EmployerContributions != "1,470" {
		t.Fatalf("expected employer contributions 1,470, got %q", agg.EmployerContributions)
	}
	// 1,450 + 1,470
	if agg.TotalsPaid != "2,920" {
		t.Fatalf("expected totals paid 2,920, got %q", agg.TotalsPaid)
	}
	if agg.Regional != nil {
		t.Fatal("general variant must not carry regional totals")
	}
}

func TestBuildAgeClassificationBoundary(t *testing.T) {
	cases := []struct {
		name        string
		dob         string
		wantReduced bool
	}{
		{"exactly 18 today", "2007-06-15", false},
		{"day before 18th birthday", "2007-06-16", true},
		{"retirement age", "1958-06-15", true},
		{"day before retirement age", "1958-06-16", false},
		{"missing birth date", "", true},
		{"malformed birth date", "15/06/1990", true},
	}

	for _, tc := range cases {
		yearLedger := ledger.YearLedger{
			"1": employeeMonth(map[string]any{"date_of_birth": tc.dob, "gross_taxable": "1000"}),
		}
		agg := Build(yearLedger, 2025, 6, General, today)
		if tc.wantReduced && agg.ReducedCount != 1 {
			t.Fatalf("%s: expected reduced bucket", tc.name)
		}
		if !tc.wantReduced && agg.RegularCount != 1 {
			t.Fatalf("%s: expected regular bucket", tc.name)
		}
	}
}

func TestBuildRegionalBenefit(t *testing.T) {
	yearLedger := ledger.YearLedger{
		"1": employeeMonth(map[string]any{"date_of_birth": "1990-01-01", "income_tax": "1,000"}),
	}

	agg := Build(yearLedger, 2025, 6, RegionalBenefit, today)
	if agg.Regional == nil {
		t.Fatal("expected regional totals")
	}
	if agg.Regional.RegularTax != "1,000" {
		t.Fatalf("expected base 1,000, got %q", agg.Regional.RegularTax)
	}
	if agg.Regional.Benefit != "200" {
		t.Fatalf("expected benefit 200, got %q", agg.Regional.Benefit)
	}
	if agg.Regional.TaxAfterBenefit != "800" {
		t.Fatalf("expected tax after benefit 800, got %q", agg.Regional.TaxAfterBenefit)
	}
	if agg.Regional.TotalTax != "800" {
		t.Fatalf("expected total tax 800, got %q", agg.Regional.TotalTax)
	}
	// placeholder buckets render as empty strings (zero amounts)
	if agg.Regional.ControllingTax != "" || agg.Regional.OutsideTax != "" {
		t.Fatalf("expected zero placeholder buckets, got %+v", agg.Regional)
	}
}

func TestBuildIdempotent(t *testing.T) {
	yearLedger := ledger.YearLedger{
		"1": employeeMonth(map[string]any{"date_of_birth": "1990-01-01", "gross_taxable": "7,500", "income_tax": "900"}),
	}

	first := Build(yearLedger, 2025, 6, RegionalBenefit, today)
	second := Build(yearLedger, 2025, 6, RegionalBenefit, today)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregates differ between runs:\n%+v\n%+v", first, second)
	}
}

func TestBuildEmptyMonth(t *testing.T) {
	agg := Build(ledger.YearLedger{}, 2025, 6, General, today)
	if agg.EmployeeCount != 0 {
		t.Fatalf("expected no employees, got %d", agg.EmployeeCount)
	}
	if agg.GrossPay != "" {
		t.Fatalf("zero amounts must render empty, got %q", agg.GrossPay)
	}
}

func TestParseVariant(t *testing.T) {
	cases := map[string]Variant{"102": General, "b102": ReducedRate, "H102": RegionalBenefit}
	for name, want := range cases {
		got, ok := ParseVariant(name)
		if !ok || got != want {
			t.Fatalf("ParseVariant(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParseVariant("106"); ok {
		t.Fatal("expected unknown form to be rejected")
	}
}

func TestAggregateJSONUsesFormName(t *testing.T) {
	agg := Build(ledger.YearLedger{}, 2025, 6, RegionalBenefit, today)

	encoded, err := json.Marshal(agg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(encoded), `"variant":"H102"`) {
		t.Fatalf("expected form name in JSON, got %s", encoded)
	}

	for v, want := range map[Variant]string{General: `"102"`, ReducedRate: `"B102"`} {
		got, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %v: %v", v, err)
		}
		if string(got) != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	yearLedger := ledger.YearLedger{
		"1": employeeMonth(map[string]any{"date_of_birth": "1990-01-01", "gross_taxable": "1,000"}),
	}
	agg := Build(yearLedger, 2025, 6, General, today)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, agg); err != nil {
		t.Fatalf("csv error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "form,period,") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "102,06/2025,") {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestWritePDF(t *testing.T) {
	agg := Build(ledger.YearLedger{}, 2025, 6, RegionalBenefit, today)

	var buf bytes.Buffer
	if err := WritePDF(&buf, agg); err != nil {
		t.Fatalf("pdf error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}
