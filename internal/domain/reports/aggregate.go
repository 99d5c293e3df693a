package reports

import (
	"time"

	"paydesk/internal/domain/ledger"
	"paydesk/internal/platform/money"
)

// BenefitRate is the statutory Eilat-area income tax benefit.
const BenefitRate = 0.20

// Age bracket for the regular wage bucket; below or at/above goes to the
// reduced bucket.
const (
	minRegularAge = 18
	retirementAge = 67
)

// Aggregate is one employer-level statutory report for a month. Monetary
// fields are already rendered: whole units, thousands-grouped, empty for
// zero — the string contract the form consumers depend on.
type Aggregate struct {
	Variant Variant `json:"variant"`
	Year    int     `json:"year"`
	Month   int     `json:"month"`

	EmployeeCount int `json:"employeeCount"`
	RegularCount  int `json:"regularCount"`
	ReducedCount  int `json:"reducedCount"`

	RegularPay string `json:"regularPay"`
	ReducedPay string `json:"reducedPay"`
	TotalPay   string `json:"totalPay"`

	GrossPay            string `json:"grossPay"`
	IncomeTax           string `json:"incomeTax"`
	NationalInsurance   string `json:"nationalInsurance"`
	HealthInsurance     string `json:"healthInsurance"`
	StudyFundDeductions string `json:"studyFundDeductions"`

	EmployeePension     string `json:"employeePension"`
	SelfEmployedPension string `json:"selfEmployedPension"`
	PensionDeductions   string `json:"pensionDeductions"`

	EmployerPension       string `json:"employerPension"`
	EmployerCompensation  string `json:"employerCompensation"`
	EmployerDisability    string `json:"employerDisability"`
	EmployerStudyFund     string `json:"employerStudyFund"`
	EmployerContributions string `json:"employerContributions"`

	EmployeeDeductions string `json:"employeeDeductions"`
	TotalsPaid         string `json:"totalsPaid"`
	FinalIncomeTax     string `json:"finalIncomeTax"`

	Regional *RegionalTotals `json:"regional,omitempty"`
}

// RegionalTotals carries the H102-only derived figures. The controlling
// and outside-region buckets are not computed from ledger data and stay
// zero until a salary split is supplied upstream.
type RegionalTotals struct {
	RegularTax      string `json:"regularTax"`
	Benefit         string `json:"benefit"`
	TaxAfterBenefit string `json:"taxAfterBenefit"`
	ControllingPay  string `json:"controllingPay"`
	ControllingTax  string `json:"controllingTax"`
	OutsidePay      string `json:"outsidePay"`
	OutsideTax      string `json:"outsideTax"`
	TotalTax        string `json:"totalTax"`
}

// Build scans every employee holding a record at the exact year-month key
// and produces the employer aggregate for the requested variant. It reads
// the ledger and nothing else; calling it twice over unchanged data yields
// identical output.
func Build(yearLedger ledger.YearLedger, year, month int, variant Variant, today time.Time) Aggregate {
	key := ledger.MonthKey(year, month)

	var (
		employeeCount, regularCount, reducedCount     int
		regularPay, reducedPay                        float64
		gross, incomeTax                              float64
		nationalInsurance, health, studyFundDeduction float64
		employeePension, selfPension                  float64
		pension, compensation, disability, studyFund  float64
	)

	for _, record := range yearLedger {
		slot, ok := record.Months[key]
		if !ok {
			continue
		}
		employeeCount++
		tax := slot.HoursTable.Tax

		grossTaxable := money.Clean(tax["gross_taxable"])
		if age := ageAt(birthDate(tax), today); age < minRegularAge || age >= retirementAge {
			reducedPay += grossTaxable
			reducedCount++
		} else {
			regularPay += grossTaxable
			regularCount++
		}

		gross += grossTaxable
		incomeTax += money.Clean(tax["income_tax"])
		nationalInsurance += money.Clean(tax["national_insurance_deductions"])
		health += money.Clean(tax["health_insurance_deductions"])
		studyFundDeduction += money.Clean(tax["study_fund_deductions"])
		employeePension += money.Clean(tax["employee_pension_fund"])
		selfPension += money.Clean(tax["self_employed_pension_fund"])
		pension += money.Clean(tax["pension_fund"])
		compensation += money.Clean(tax["compensation"])
		disability += money.Clean(tax["disability"])
		studyFund += money.Clean(tax["study_fund"])
	}

	pensionCombined := employeePension + selfPension
	employeeDeductions := nationalInsurance + health + pensionCombined + studyFundDeduction
	employerCombined := pension + compensation + disability + studyFund
	totalsPaid := employeeDeductions + employerCombined

	agg := Aggregate{
		Variant: variant,
		Year:    year,
		Month:   month,

		EmployeeCount: employeeCount,
		RegularCount:  regularCount,
		ReducedCount:  reducedCount,

		RegularPay: money.Whole(regularPay),
		ReducedPay: money.Whole(reducedPay),
		TotalPay:   money.Whole(regularPay + reducedPay),

		GrossPay:            money.Whole(gross),
		IncomeTax:           money.Whole(incomeTax),
		NationalInsurance:   money.Whole(nationalInsurance),
		HealthInsurance:     money.Whole(health),
		StudyFundDeductions: money.Whole(studyFundDeduction),

		EmployeePension:     money.Whole(employeePension),
		SelfEmployedPension: money.Whole(selfPension),
		PensionDeductions:   money.Whole(pensionCombined),

		EmployerPension:       money.Whole(pension),
		EmployerCompensation:  money.Whole(compensation),
		EmployerDisability:    money.Whole(disability),
		EmployerStudyFund:     money.Whole(studyFund),
		EmployerContributions: money.Whole(employerCombined),

		EmployeeDeductions: money.Whole(employeeDeductions),
		TotalsPaid:         money.Whole(totalsPaid),
		FinalIncomeTax:     money.Whole(incomeTax),
	}

	if variant == RegionalBenefit {
		base := incomeTax
		benefit := base * BenefitRate
		after := base - benefit
		agg.Regional = &RegionalTotals{
			RegularTax:      money.Whole(base),
			Benefit:         money.Whole(benefit),
			TaxAfterBenefit: money.Whole(after),
			ControllingPay:  money.Whole(0),
			ControllingTax:  money.Whole(0),
			OutsidePay:      money.Whole(0),
			OutsideTax:      money.Whole(0),
			TotalTax:        money.Whole(after),
		}
	}

	return agg
}

func birthDate(tax map[string]any) string {
	if s, ok := tax["date_of_birth"].(string); ok {
		return s
	}
	return ""
}

// ageAt returns whole years as of today, month/day aware, or zero when
// the birth date is missing or malformed. Zero lands the employee in the
// reduced bucket; that mirrors the legacy behavior and is flagged as a
// business-rule question in DESIGN.md.
func ageAt(dob string, today time.Time) int {
	birth, err := time.Parse(ledger.DateLayout, dob)
	if err != nil {
		return 0
	}
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}
