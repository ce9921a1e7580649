// Package output renders projection results for the terminal, spreadsheets
// and other programs.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/iwvelando/finance-projection/internal/projection"
	"github.com/iwvelando/finance-projection/pkg/constants"
	"github.com/iwvelando/finance-projection/pkg/finance"
	"github.com/iwvelando/finance-projection/pkg/format"
	"github.com/iwvelando/finance-projection/pkg/mathutil"
)

type row struct {
	label  string
	values []float64
	render func(float64) string
}

type section struct {
	title string
	rows  []row
}

func amounts(label string, values []float64) row {
	return row{label: label, values: values, render: format.Amount}
}

func percents(label string, values []float64) row {
	return row{label: label, values: values, render: format.Percent}
}

func multiples(label string, values []float64) row {
	return row{label: label, values: values, render: format.Ratio}
}

func days(label string, values []float64) row {
	return row{label: label, values: values, render: func(v float64) string { return format.Units(v) + " d" }}
}

// sections lays out the yearly statements in display order. The pretty and
// CSV writers share it so both show the same lines.
func sections(p *finance.FinancialProjections) []section {
	is := p.IncomeStatement
	d := p.DetailedIncomeStatement
	cf := p.CashFlow
	wc := p.WorkingCapital
	r := p.Ratios

	sheet := func(pick func(finance.BalanceSheetYear) float64) []float64 {
		values := make([]float64, len(p.BalanceSheet))
		for i, year := range p.BalanceSheet {
			values[i] = pick(year)
		}
		return values
	}

	return []section{
		{title: "Income statement", rows: []row{
			amounts("Revenue", is.Revenue),
			amounts("Variable costs", is.VariableCosts),
			amounts("Gross profit", is.GrossProfit),
			amounts("Fixed costs", is.FixedCosts),
			amounts("Operating profit", is.OperatingProfit),
			amounts("Tax", is.Tax),
			amounts("Net profit", is.NetProfit),
		}},
		{title: "Detailed income statement", rows: []row{
			amounts("Revenue", d.Revenue),
			amounts("Purchases", d.Purchases),
			amounts("External charges", d.ExternalCharges),
			amounts("Value added", d.ValueAdded),
			amounts("Personnel", d.Personnel),
			amounts("Social charges", d.SocialCharges),
			amounts("Taxes and duties", d.TaxesAndDuties),
			amounts("Other charges", d.OtherCharges),
			amounts("EBITDA", d.EBITDA),
			amounts("Depreciation", d.Depreciation),
			amounts("EBIT", d.EBIT),
			amounts("Financial charges", d.FinancialCharges),
			amounts("Pre-tax result", d.PreTaxResult),
			amounts("Income tax", d.IncomeTax),
			amounts("Net result", d.NetResult),
		}},
		{title: "Cash flow", rows: []row{
			amounts("Operating", cf.Operating),
			amounts("Investment", cf.Investment),
			amounts("Financing", cf.Financing),
			amounts("Net", cf.Net),
			amounts("Cumulative", cf.Cumulative),
			amounts("Grants", cf.Grants),
			amounts("Debt service", cf.DebtService),
			amounts("Free cash flow", cf.FreeCashFlow),
		}},
		{title: "Balance sheet", rows: []row{
			amounts("Net fixed assets", sheet(func(y finance.BalanceSheetYear) float64 { return y.NetFixedAssets })),
			amounts("Inventory", sheet(func(y finance.BalanceSheetYear) float64 { return y.Inventory })),
			amounts("Receivables", sheet(func(y finance.BalanceSheetYear) float64 { return y.Receivables })),
			amounts("Cash", sheet(func(y finance.BalanceSheetYear) float64 { return y.Cash })),
			amounts("Total assets", sheet(func(y finance.BalanceSheetYear) float64 { return y.Assets })),
			amounts("Long-term debt", sheet(func(y finance.BalanceSheetYear) float64 { return y.LongTermDebt })),
			amounts("Payables", sheet(func(y finance.BalanceSheetYear) float64 { return y.Payables })),
			amounts("Overdraft", sheet(func(y finance.BalanceSheetYear) float64 { return y.Overdraft })),
			amounts("Equity", sheet(func(y finance.BalanceSheetYear) float64 { return y.Equity })),
			amounts("Imbalance", p.Reconciliation.Imbalance),
		}},
		{title: "Working capital", rows: []row{
			amounts("Receivables", wc.Receivables),
			amounts("Inventory", wc.Inventory),
			amounts("Payables", wc.Payables),
			amounts("BFR", wc.BFR),
			amounts("Change in BFR", wc.DeltaBFR),
			days("BFR in days of revenue", wc.BFRDays),
			amounts("FDR", wc.FDR),
			amounts("TN", wc.TN),
		}},
		{title: "Ratios", rows: []row{
			percents("Gross margin", r.GrossMargin),
			percents("EBITDA margin", r.EBITDAMargin),
			percents("Net margin", r.NetMargin),
			percents("ROE", r.ROE),
			percents("ROCE", r.ROCE),
			multiples("Current ratio", r.CurrentRatio),
			multiples("Quick ratio", r.QuickRatio),
			multiples("Debt to equity", r.DebtToEquity),
			multiples("Net gearing", r.NetGearing),
			multiples("Debt to EBITDA", r.DebtToEBITDA),
			multiples("Interest coverage", r.InterestCoverage),
			multiples("Asset turnover", r.AssetTurnover),
			multiples("DSCR", p.Appraisal.DSCR),
		}},
	}
}

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, results []projection.Projection) error {
	for i, result := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := prettyScenario(w, result); err != nil {
			return fmt.Errorf("failed to render scenario %s: %w", result.Name, err)
		}
	}
	return nil
}

func prettyScenario(w io.Writer, result projection.Projection) error {
	p := result.Projections
	if _, err := fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name); err != nil {
		return err
	}
	if p == nil {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	years := make([]string, p.Horizon())
	for i := range years {
		years[i] = strconv.Itoa(p.YearLabel(i))
	}

	for _, s := range sections(p) {
		fmt.Fprintf(tw, "%s\t| %s\t|\n", s.title, strings.Join(years, "\t| "))
		fmt.Fprintf(tw, "%s\t| %s\t|\n", strings.Repeat("_", len(s.title)), strings.Join(underlines(years), "\t| "))
		for _, r := range s.rows {
			cells := make([]string, len(years))
			for i := range cells {
				if i < len(r.values) {
					cells[i] = r.render(r.values[i])
				}
			}
			fmt.Fprintf(tw, "%s\t| %s\t|\n", r.label, strings.Join(cells, "\t| "))
		}
		fmt.Fprintln(tw, "\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if err := prettyAppraisal(w, p.Appraisal); err != nil {
		return err
	}
	if err := prettySchedules(w, p); err != nil {
		return err
	}
	if err := prettyMonthlyPlan(w, p.MonthlyCashPlan); err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		if _, err := fmt.Fprintf(w, "warning: %s\n", warning); err != nil {
			return err
		}
	}
	return nil
}

func underlines(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = strings.Repeat("_", len(l))
	}
	return out
}

func prettyAppraisal(w io.Writer, a finance.Appraisal) error {
	irr := "did not converge"
	if a.IRR.Converged {
		irr = format.Rate(a.IRR.Rate)
	}
	breakEven := "not reached"
	if a.BreakEven.Revenue != constants.NotReached {
		breakEven = format.Amount(a.BreakEven.Revenue)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintln(tw, "Appraisal")
	fmt.Fprintln(tw, "_________")
	fmt.Fprintf(tw, "Discount rate\t%s\n", format.Rate(a.DiscountRate))
	fmt.Fprintf(tw, "NPV\t%s\n", format.Amount(a.NPV))
	fmt.Fprintf(tw, "IRR\t%s\n", irr)
	fmt.Fprintf(tw, "Payback\t%s\n", format.Years(a.PaybackYears))
	fmt.Fprintf(tw, "Discounted payback\t%s\n", format.Years(a.DiscountedPaybackYears))
	fmt.Fprintf(tw, "Profitability index\t%s\n", format.Ratio(a.ProfitabilityIndex))
	fmt.Fprintf(tw, "Contribution margin\t%s\n", format.Rate(a.BreakEven.ContributionMarginRate))
	fmt.Fprintf(tw, "Break-even revenue\t%s\n", breakEven)
	fmt.Fprintf(tw, "Break-even month\t%s\n", format.Months(a.BreakEven.Months))
	fmt.Fprintln(tw)
	return tw.Flush()
}

func prettySchedules(w io.Writer, p *finance.FinancialProjections) error {
	if len(p.Schedules) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintln(tw, "Loan\t| Method\t| Principal\t| Rate\t| Monthly payment\t| Total interest")
	fmt.Fprintln(tw, "____\t| ______\t| _________\t| ____\t| _______________\t| ______________")
	for _, s := range p.Schedules {
		fmt.Fprintf(tw, "%s\t| %s\t| %s\t| %s\t| %s\t| %s\n",
			s.Name, s.Method, format.Amount(s.Principal), format.Rate(s.AnnualRate),
			format.Amount(s.MonthlyPayment), format.Amount(s.TotalInterest))
	}
	fmt.Fprintln(tw)
	return tw.Flush()
}

func prettyMonthlyPlan(w io.Writer, plan finance.MonthlyCashPlan) error {
	if len(plan.Months) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Month\t| Receipts\t| Disbursements\t| Tax\t| Debt service\t| Net\t| Cash\t|\n")
	fmt.Fprintf(tw, "_____\t| ________\t| _____________\t| ___\t| ____________\t| ___\t| ____\t|\n")
	fmt.Fprintf(tw, "open\t|\t|\t|\t|\t|\t| %s\t|\n", format.Amount(plan.OpeningCash))
	for _, m := range plan.Months {
		fmt.Fprintf(tw, "%d\t| %s\t| %s\t| %s\t| %s\t| %s\t| %s\t|\n", m.Month,
			format.Amount(m.Receipts), format.Amount(m.Disbursements), format.Amount(m.Tax),
			format.Amount(m.DebtService), format.Amount(m.Net), format.Amount(m.Cumulative))
	}
	fmt.Fprintln(tw, "\t")
	return tw.Flush()
}

// CsvFormat writes one record per scenario, statement line and year.
// Values are rounded to cents.
func CsvFormat(w io.Writer, results []projection.Projection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"scenario", "statement", "line", "year", "value"}); err != nil {
		return err
	}
	for _, result := range results {
		p := result.Projections
		if p == nil {
			continue
		}
		for _, s := range sections(p) {
			for _, r := range s.rows {
				for i, v := range r.values {
					record := []string{
						result.Name,
						s.title,
						r.label,
						strconv.Itoa(p.YearLabel(i)),
						strconv.FormatFloat(mathutil.Round(v), 'f', 2, 64),
					}
					if err := cw.Write(record); err != nil {
						return err
					}
				}
			}
		}
		a := p.Appraisal
		for _, kv := range []struct {
			line  string
			value float64
		}{
			{"NPV", a.NPV},
			{"IRR", a.IRR.Rate},
			{"Payback years", float64(a.PaybackYears)},
			{"Discounted payback years", float64(a.DiscountedPaybackYears)},
			{"Profitability index", a.ProfitabilityIndex},
			{"Break-even revenue", a.BreakEven.Revenue},
			{"Break-even months", a.BreakEven.Months},
		} {
			record := []string{result.Name, "Appraisal", kv.line, "", strconv.FormatFloat(mathutil.RoundPlaces(kv.value, 4), 'f', -1, 64)}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat writes the results, inputs included, as an indented JSON array.
func JSONFormat(w io.Writer, results []projection.Projection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if results == nil {
		results = []projection.Projection{}
	}
	return enc.Encode(results)
}

// Write dispatches to the writer of the named format.
func Write(w io.Writer, outputFormat string, results []projection.Projection) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		return CsvFormat(w, results)
	case constants.OutputFormatJSON:
		return JSONFormat(w, results)
	case constants.OutputFormatPretty, "":
		return PrettyFormat(w, results)
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
}
