package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

type exportField struct {
	Label string
	Value string
}

func exportFields(agg Aggregate) []exportField {
	fields := []exportField{
		{"num_employees", strconv.Itoa(agg.EmployeeCount)},
		{"regular_count", strconv.Itoa(agg.RegularCount)},
		{"reduced_count", strconv.Itoa(agg.ReducedCount)},
		{"regular_salary", agg.RegularPay},
		{"reduced_salary", agg.ReducedPay},
		{"total_salary", agg.TotalPay},
		{"total_gross_salary", agg.GrossPay},
		{"total_income_tax", agg.IncomeTax},
		{"total_national_insurance", agg.NationalInsurance},
		{"total_health_insurance", agg.HealthInsurance},
		{"total_provident_deduction", agg.StudyFundDeductions},
		{"total_employee_pension", agg.EmployeePension},
		{"total_self_pension", agg.SelfEmployedPension},
		{"total_pension_deduction", agg.PensionDeductions},
		{"employer_pension", agg.EmployerPension},
		{"employer_compensation", agg.EmployerCompensation},
		{"employer_disability", agg.EmployerDisability},
		{"employer_study_fund", agg.EmployerStudyFund},
		{"employer_contributions", agg.EmployerContributions},
		{"total_employee_deductions", agg.EmployeeDeductions},
		{"final_totals_paid", agg.TotalsPaid},
		{"final_total_income_tax", agg.FinalIncomeTax},
	}
	if agg.Regional != nil {
		fields = append(fields,
			exportField{"eilat_regular_tax", agg.Regional.RegularTax},
			exportField{"eilat_benefit_20", agg.Regional.Benefit},
			exportField{"eilat_total_tax_after_benefit", agg.Regional.TaxAfterBenefit},
			exportField{"controlling_salary", agg.Regional.ControllingPay},
			exportField{"controlling_tax", agg.Regional.ControllingTax},
			exportField{"outside_eilat_salary", agg.Regional.OutsidePay},
			exportField{"outside_eilat_tax", agg.Regional.OutsideTax},
			exportField{"total_tax_all", agg.Regional.TotalTax},
		)
	}
	return fields
}

// WriteCSV renders the aggregate as a header row plus one value row,
// matching the legacy single-record form export.
func WriteCSV(w io.Writer, agg Aggregate) error {
	fields := exportFields(agg)
	header := make([]string, 0, len(fields)+2)
	values := make([]string, 0, len(fields)+2)
	header = append(header, "form", "period")
	values = append(values, agg.Variant.String(), fmt.Sprintf("%02d/%d", agg.Month, agg.Year))
	for _, field := range fields {
		header = append(header, field.Label)
		values = append(values, field.Value)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.Write(values); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// WritePDF renders the aggregate as a one-page summary.
func WritePDF(w io.Writer, agg Aggregate) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Form %s", agg.Variant))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %02d/%d", agg.Month, agg.Year))
	pdf.Ln(10)

	for _, field := range exportFields(agg) {
		value := field.Value
		if value == "" {
			value = "0"
		}
		pdf.Cell(95, 7, field.Label)
		pdf.Cell(0, 7, value)
		pdf.Ln(6)
	}

	return pdf.Output(w)
}
