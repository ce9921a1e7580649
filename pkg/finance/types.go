// Package finance provides the financial projection engine: it turns business
// assumptions into income statements, cash flows, balance sheets, working
// capital figures, investment appraisal indicators and ratios.
package finance

import (
	"strings"

	"github.com/iwvelando/finance-projection/pkg/loans"
)

// Frequency is how often a cost recurs.
type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// PeriodsPerYear returns how many times per year the frequency recurs.
// Unknown frequencies are treated as monthly.
func (f Frequency) PeriodsPerYear() float64 {
	switch f.normalize() {
	case FrequencyQuarterly:
		return 4
	case FrequencyYearly:
		return 1
	default:
		return 12
	}
}

// Valid reports whether f names a known frequency.
func (f Frequency) Valid() bool {
	switch strings.ToLower(strings.TrimSpace(string(f))) {
	case "monthly", "month", "quarterly", "quarter", "yearly", "annual", "annually", "year":
		return true
	}
	return false
}

func (f Frequency) normalize() Frequency {
	switch strings.ToLower(strings.TrimSpace(string(f))) {
	case "quarterly", "quarter":
		return FrequencyQuarterly
	case "yearly", "annual", "annually", "year":
		return FrequencyYearly
	default:
		return FrequencyMonthly
	}
}

// RevenueCategory tags a revenue stream.
type RevenueCategory string

const (
	RevenueProduct      RevenueCategory = "product"
	RevenueService      RevenueCategory = "service"
	RevenueSubscription RevenueCategory = "subscription"
	RevenueOther        RevenueCategory = "other"
)

// Normalize maps unknown categories onto RevenueOther.
func (c RevenueCategory) Normalize() RevenueCategory {
	switch RevenueCategory(strings.ToLower(strings.TrimSpace(string(c)))) {
	case RevenueProduct:
		return RevenueProduct
	case RevenueService:
		return RevenueService
	case RevenueSubscription:
		return RevenueSubscription
	default:
		return RevenueOther
	}
}

// CostCategory places a cost on an income statement line.
type CostCategory string

const (
	CostPurchases       CostCategory = "purchases"
	CostExternalCharges CostCategory = "external_charges"
	CostPersonnel       CostCategory = "personnel"
	CostTaxes           CostCategory = "taxes"
	CostOther           CostCategory = "other"
)

// Normalize maps unknown categories onto CostOther.
func (c CostCategory) Normalize() CostCategory {
	switch CostCategory(strings.ToLower(strings.TrimSpace(string(c)))) {
	case CostPurchases:
		return CostPurchases
	case CostExternalCharges, "external":
		return CostExternalCharges
	case CostPersonnel, "payroll", "salaries":
		return CostPersonnel
	case CostTaxes:
		return CostTaxes
	default:
		return CostOther
	}
}

// CostBehavior classifies a cost as fixed or variable.
type CostBehavior string

const (
	CostFixed    CostBehavior = "fixed"
	CostVariable CostBehavior = "variable"
)

// IsVariable reports whether the cost moves with activity. Anything other
// than "variable" is fixed.
func (b CostBehavior) IsVariable() bool {
	return CostBehavior(strings.ToLower(strings.TrimSpace(string(b)))) == CostVariable
}

// InvestmentCategory tags a fixed asset.
type InvestmentCategory string

const (
	InvestmentIntangible InvestmentCategory = "intangible"
	InvestmentTangible   InvestmentCategory = "tangible"
	InvestmentFinancial  InvestmentCategory = "financial"
	InvestmentOther      InvestmentCategory = "other"
)

// Normalize maps unknown categories onto InvestmentOther.
func (c InvestmentCategory) Normalize() InvestmentCategory {
	switch InvestmentCategory(strings.ToLower(strings.TrimSpace(string(c)))) {
	case InvestmentIntangible:
		return InvestmentIntangible
	case InvestmentTangible:
		return InvestmentTangible
	case InvestmentFinancial:
		return InvestmentFinancial
	default:
		return InvestmentOther
	}
}

// RevenueStream is one line of sales.
type RevenueStream struct {
	Name            string          `json:"name" yaml:"name"`
	UnitPrice       float64         `json:"unitPrice" yaml:"unitPrice"`
	MonthlyQuantity float64         `json:"monthlyQuantity" yaml:"monthlyQuantity"`
	Seasonality     []float64       `json:"seasonality,omitempty" yaml:"seasonality,omitempty"`
	GrowthRate      float64         `json:"growthRate" yaml:"growthRate"`
	Category        RevenueCategory `json:"category,omitempty" yaml:"category,omitempty"`
}

// CostItem is one recurring charge.
type CostItem struct {
	Name       string       `json:"name" yaml:"name"`
	Amount     float64      `json:"amount" yaml:"amount"`
	Frequency  Frequency    `json:"frequency" yaml:"frequency"`
	GrowthRate float64      `json:"growthRate" yaml:"growthRate"`
	Category   CostCategory `json:"category,omitempty" yaml:"category,omitempty"`
	Behavior   CostBehavior `json:"behavior,omitempty" yaml:"behavior,omitempty"`
}

// InvestmentItem is a fixed asset acquired at the start of the plan.
type InvestmentItem struct {
	Name              string             `json:"name" yaml:"name"`
	Amount            float64            `json:"amount" yaml:"amount"`
	Category          InvestmentCategory `json:"category,omitempty" yaml:"category,omitempty"`
	DepreciationYears int                `json:"depreciationYears" yaml:"depreciationYears"`
	ResidualValue     float64            `json:"residualValue,omitempty" yaml:"residualValue,omitempty"`
	AcquisitionDate   string             `json:"acquisitionDate,omitempty" yaml:"acquisitionDate,omitempty"`
}

// LoanItem is a bank loan. AnnualRate is a decimal (0.12 = 12%).
type LoanItem struct {
	Source      string       `json:"source" yaml:"source"`
	Principal   float64      `json:"principal" yaml:"principal"`
	AnnualRate  float64      `json:"annualRate" yaml:"annualRate"`
	TermYears   int          `json:"termYears" yaml:"termYears"`
	GraceMonths int          `json:"graceMonths,omitempty" yaml:"graceMonths,omitempty"`
	Method      loans.Method `json:"method,omitempty" yaml:"method,omitempty"`
}

// GrantItem is a subsidy. Schedule holds per-year disbursements; when it is
// empty the whole Amount is received in year 0.
type GrantItem struct {
	Source   string    `json:"source" yaml:"source"`
	Amount   float64   `json:"amount" yaml:"amount"`
	Schedule []float64 `json:"schedule,omitempty" yaml:"schedule,omitempty"`
}

// WorkingCapitalDays holds the day-count assumptions for working capital.
type WorkingCapitalDays struct {
	Receivable float64 `json:"receivable" yaml:"receivable"`
	Payable    float64 `json:"payable" yaml:"payable"`
	Inventory  float64 `json:"inventory" yaml:"inventory"`
}

// FinancialInputs is the immutable input to a single engine run.
type FinancialInputs struct {
	Revenues    []RevenueStream  `json:"revenues" yaml:"revenues"`
	Costs       []CostItem       `json:"costs" yaml:"costs"`
	Investments []InvestmentItem `json:"investments" yaml:"investments"`
	Loans       []LoanItem       `json:"loans" yaml:"loans"`
	Grants      []GrantItem      `json:"grants" yaml:"grants"`

	OwnFunds float64 `json:"ownFunds" yaml:"ownFunds"`
	// Years is the projection horizon.
	Years int `json:"years" yaml:"years"`
	// StartYear labels year offset 0 in outputs; it does not affect figures.
	StartYear int `json:"startYear,omitempty" yaml:"startYear,omitempty"`

	TaxRate      float64 `json:"taxRate" yaml:"taxRate"`
	DiscountRate float64 `json:"discountRate" yaml:"discountRate"`
	// DepreciationRate is used for investments without a depreciation horizon.
	DepreciationRate float64 `json:"depreciationRate,omitempty" yaml:"depreciationRate,omitempty"`
	// SocialChargeRate loads gross payroll with statutory social charges.
	SocialChargeRate float64 `json:"socialChargeRate,omitempty" yaml:"socialChargeRate,omitempty"`

	WorkingCapital WorkingCapitalDays `json:"workingCapital" yaml:"workingCapital"`
}
