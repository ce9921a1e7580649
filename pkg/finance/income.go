package finance

import "math"

// costLayers splits the annualized cost items by income statement line and
// by behavior. Personnel lines carry their social charges.
type costLayers struct {
	purchases     []float64
	external      []float64
	personnel     []float64
	socialCharges []float64
	taxes         []float64
	other         []float64

	variable []float64
	fixed    []float64
}

func buildCostLayers(items []CostItem, years int, socialChargeRate float64) costLayers {
	layers := costLayers{
		purchases:     make([]float64, years),
		external:      make([]float64, years),
		personnel:     make([]float64, years),
		socialCharges: make([]float64, years),
		taxes:         make([]float64, years),
		other:         make([]float64, years),
		variable:      make([]float64, years),
		fixed:         make([]float64, years),
	}

	for y := 0; y < years; y++ {
		for _, item := range items {
			amount := AnnualCost(item, y)
			loaded := amount

			switch item.Category.Normalize() {
			case CostPurchases:
				layers.purchases[y] += amount
			case CostExternalCharges:
				layers.external[y] += amount
			case CostPersonnel:
				social := amount * socialChargeRate
				layers.personnel[y] += amount
				layers.socialCharges[y] += social
				loaded += social
			case CostTaxes:
				layers.taxes[y] += amount
			default:
				layers.other[y] += amount
			}

			if item.Behavior.IsVariable() {
				layers.variable[y] += loaded
			} else {
				layers.fixed[y] += loaded
			}
		}
	}
	return layers
}

// CorporateTax applies the tax rate to a positive result only.
func CorporateTax(result, rate float64) float64 {
	return math.Max(0, result*rate)
}

// buildIncomeStatement derives the simple income statement.
func buildIncomeStatement(revenue []float64, costs costLayers, depreciation, interest []float64, taxRate float64) IncomeStatement {
	years := len(revenue)
	is := IncomeStatement{
		Revenue:         append([]float64(nil), revenue...),
		VariableCosts:   make([]float64, years),
		GrossProfit:     make([]float64, years),
		FixedCosts:      make([]float64, years),
		OperatingProfit: make([]float64, years),
		Tax:             make([]float64, years),
		NetProfit:       make([]float64, years),
	}

	for y := 0; y < years; y++ {
		is.VariableCosts[y] = costs.variable[y]
		is.GrossProfit[y] = revenue[y] - is.VariableCosts[y]
		is.FixedCosts[y] = costs.fixed[y] + depreciation[y] + interest[y]
		is.OperatingProfit[y] = is.GrossProfit[y] - is.FixedCosts[y]
		is.Tax[y] = CorporateTax(is.OperatingProfit[y], taxRate)
		is.NetProfit[y] = is.OperatingProfit[y] - is.Tax[y]
	}
	return is
}

// buildDetailedIncomeStatement derives value added, EBITDA, EBIT and the net
// result line by line.
func buildDetailedIncomeStatement(revenue []float64, costs costLayers, depreciation, interest []float64, taxRate float64) DetailedIncomeStatement {
	years := len(revenue)
	d := DetailedIncomeStatement{
		Revenue:          append([]float64(nil), revenue...),
		Purchases:        append([]float64(nil), costs.purchases...),
		ExternalCharges:  append([]float64(nil), costs.external...),
		ValueAdded:       make([]float64, years),
		Personnel:        append([]float64(nil), costs.personnel...),
		SocialCharges:    append([]float64(nil), costs.socialCharges...),
		TaxesAndDuties:   append([]float64(nil), costs.taxes...),
		OtherCharges:     append([]float64(nil), costs.other...),
		EBITDA:           make([]float64, years),
		Depreciation:     append([]float64(nil), depreciation...),
		EBIT:             make([]float64, years),
		FinancialCharges: append([]float64(nil), interest...),
		PreTaxResult:     make([]float64, years),
		IncomeTax:        make([]float64, years),
		NetResult:        make([]float64, years),
	}

	for y := 0; y < years; y++ {
		d.ValueAdded[y] = revenue[y] - d.Purchases[y] - d.ExternalCharges[y]
		d.EBITDA[y] = d.ValueAdded[y] - d.Personnel[y] - d.SocialCharges[y] - d.TaxesAndDuties[y] - d.OtherCharges[y]
		d.EBIT[y] = d.EBITDA[y] - d.Depreciation[y]
		d.PreTaxResult[y] = d.EBIT[y] - d.FinancialCharges[y]
		d.IncomeTax[y] = CorporateTax(d.PreTaxResult[y], taxRate)
		d.NetResult[y] = d.PreTaxResult[y] - d.IncomeTax[y]
	}
	return d
}
