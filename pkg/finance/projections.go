package finance

import "github.com/iwvelando/finance-projection/pkg/loans"

// IncomeStatement is the simple income statement. FixedCosts includes
// depreciation and financial charges so NetProfit matches the detailed
// statement.
type IncomeStatement struct {
	Revenue         []float64 `json:"revenue"`
	VariableCosts   []float64 `json:"variableCosts"`
	GrossProfit     []float64 `json:"grossProfit"`
	FixedCosts      []float64 `json:"fixedCosts"`
	OperatingProfit []float64 `json:"operatingProfit"`
	Tax             []float64 `json:"tax"`
	NetProfit       []float64 `json:"netProfit"`
}

// DetailedIncomeStatement breaks charges down from value added to net result.
type DetailedIncomeStatement struct {
	Revenue          []float64 `json:"revenue"`
	Purchases        []float64 `json:"purchases"`
	ExternalCharges  []float64 `json:"externalCharges"`
	ValueAdded       []float64 `json:"valueAdded"`
	Personnel        []float64 `json:"personnel"`
	SocialCharges    []float64 `json:"socialCharges"`
	TaxesAndDuties   []float64 `json:"taxesAndDuties"`
	OtherCharges     []float64 `json:"otherCharges"`
	EBITDA           []float64 `json:"ebitda"`
	Depreciation     []float64 `json:"depreciation"`
	EBIT             []float64 `json:"ebit"`
	FinancialCharges []float64 `json:"financialCharges"`
	PreTaxResult     []float64 `json:"preTaxResult"`
	IncomeTax        []float64 `json:"incomeTax"`
	NetResult        []float64 `json:"netResult"`
}

// CashFlowStatement holds the yearly cash flows. Interest is paid within
// DebtService, so Operating adds financial charges back to net profit.
type CashFlowStatement struct {
	Operating              []float64 `json:"operating"`
	Investment             []float64 `json:"investment"`
	Financing              []float64 `json:"financing"`
	Net                    []float64 `json:"net"`
	Cumulative             []float64 `json:"cumulative"`
	Grants                 []float64 `json:"grants"`
	DebtService            []float64 `json:"debtService"`
	FreeCashFlow           []float64 `json:"freeCashFlow"`
	CumulativeFreeCashFlow []float64 `json:"cumulativeFreeCashFlow"`
}

// MonthlyCashPosition is one month of the first-year cash plan.
type MonthlyCashPosition struct {
	Month         int     `json:"month"`
	Receipts      float64 `json:"receipts"`
	Disbursements float64 `json:"disbursements"`
	Tax           float64 `json:"tax"`
	DebtService   float64 `json:"debtService"`
	Net           float64 `json:"net"`
	Cumulative    float64 `json:"cumulative"`
}

// MonthlyCashPlan is the month-by-month treasury of the first year, starting
// from the cash left once the initial funding has paid for the investments.
type MonthlyCashPlan struct {
	OpeningCash float64               `json:"openingCash"`
	Months      []MonthlyCashPosition `json:"months"`
}

// BalanceSheetYear is the closing balance sheet of one year.
type BalanceSheetYear struct {
	Year int `json:"year"`

	NetFixedAssets float64 `json:"netFixedAssets"`
	Inventory      float64 `json:"inventory"`
	Receivables    float64 `json:"receivables"`
	Cash           float64 `json:"cash"`
	Assets         float64 `json:"assets"`

	LongTermDebt float64 `json:"longTermDebt"`
	Payables     float64 `json:"payables"`
	Overdraft    float64 `json:"overdraft"`
	Liabilities  float64 `json:"liabilities"`

	OwnFunds         float64 `json:"ownFunds"`
	Grants           float64 `json:"grants"`
	RetainedEarnings float64 `json:"retainedEarnings"`
	Equity           float64 `json:"equity"`
}

// Reconciliation reports assets minus liabilities and equity for every year.
type Reconciliation struct {
	Imbalance    []float64 `json:"imbalance"`
	MaxImbalance float64   `json:"maxImbalance"`
	Balanced     bool      `json:"balanced"`
}

// WorkingCapital holds the BFR, FDR and TN series.
type WorkingCapital struct {
	Receivables []float64 `json:"receivables"`
	Payables    []float64 `json:"payables"`
	Inventory   []float64 `json:"inventory"`
	BFR         []float64 `json:"bfr"`
	DeltaBFR    []float64 `json:"deltaBfr"`
	BFRDays     []float64 `json:"bfrDays"`
	FDR         []float64 `json:"fdr"`
	TN          []float64 `json:"tn"`
}

// IRRResult is the outcome of the IRR search. Rate is 0 when Converged is
// false.
type IRRResult struct {
	Rate       float64 `json:"rate"`
	Converged  bool    `json:"converged"`
	Iterations int     `json:"iterations"`
	Method     string  `json:"method,omitempty"`
}

// BreakEven describes the first-year break-even point. Revenue and Months
// are -1 when the point is not reached.
type BreakEven struct {
	ContributionMarginRate float64 `json:"contributionMarginRate"`
	Revenue                float64 `json:"revenue"`
	Months                 float64 `json:"months"`
}

// Appraisal holds the investment appraisal indicators.
type Appraisal struct {
	DiscountRate           float64   `json:"discountRate"`
	NPV                    float64   `json:"npv"`
	IRR                    IRRResult `json:"irr"`
	PaybackYears           int       `json:"paybackYears"`
	DiscountedPaybackYears int       `json:"discountedPaybackYears"`
	ProfitabilityIndex     float64   `json:"profitabilityIndex"`
	BreakEven              BreakEven `json:"breakEven"`
	DSCR                   []float64 `json:"dscr"`
}

// Ratios holds per-year ratios. Percentages are expressed out of 100.
type Ratios struct {
	GrossMargin      []float64 `json:"grossMargin"`
	NetMargin        []float64 `json:"netMargin"`
	EBITDAMargin     []float64 `json:"ebitdaMargin"`
	ROE              []float64 `json:"roe"`
	ROCE             []float64 `json:"roce"`
	CurrentRatio     []float64 `json:"currentRatio"`
	QuickRatio       []float64 `json:"quickRatio"`
	DebtToEquity     []float64 `json:"debtToEquity"`
	NetGearing       []float64 `json:"netGearing"`
	DebtToEBITDA     []float64 `json:"debtToEbitda"`
	InterestCoverage []float64 `json:"interestCoverage"`
	AssetTurnover    []float64 `json:"assetTurnover"`
}

// FinancialProjections is the result of one engine run. Every slice is
// indexed by year offset from 0 to Years-1.
type FinancialProjections struct {
	Years     []int `json:"years"`
	StartYear int   `json:"startYear,omitempty"`

	IncomeStatement         IncomeStatement         `json:"incomeStatement"`
	DetailedIncomeStatement DetailedIncomeStatement `json:"detailedIncomeStatement"`
	CashFlow                CashFlowStatement       `json:"cashFlow"`
	MonthlyCashPlan         MonthlyCashPlan         `json:"monthlyCashPlan"`
	BalanceSheet            []BalanceSheetYear      `json:"balanceSheet"`
	Reconciliation          Reconciliation          `json:"reconciliation"`
	WorkingCapital          WorkingCapital          `json:"workingCapital"`
	Appraisal               Appraisal               `json:"appraisal"`
	Ratios                  Ratios                  `json:"ratios"`

	Depreciation []float64         `json:"depreciation"`
	Schedules    []*loans.Schedule `json:"schedules"`
}

// Horizon returns the number of projected years.
func (p *FinancialProjections) Horizon() int {
	return len(p.Years)
}

// YearLabel returns the calendar year of a year offset, or the 1-based
// offset when no start year was given.
func (p *FinancialProjections) YearLabel(offset int) int {
	if p.StartYear > 0 {
		return p.StartYear + offset
	}
	return offset + 1
}
