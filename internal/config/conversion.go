package config

import "github.com/iwvelando/finance-projection/pkg/finance"

// Inputs merges the common plan with a scenario into the engine input. Item
// lists are concatenated, common items first, and set overrides replace the
// common scalars. The returned value shares no slices with the configuration.
func (c *Configuration) Inputs(scenario Scenario) finance.FinancialInputs {
	common := c.Common
	inputs := finance.FinancialInputs{
		Revenues:    concat(common.Revenues, scenario.Revenues),
		Costs:       concat(common.Costs, scenario.Costs),
		Investments: concat(common.Investments, scenario.Investments),
		Loans:       concat(common.Loans, scenario.Loans),
		Grants:      concat(common.Grants, scenario.Grants),

		OwnFunds:         common.OwnFunds,
		Years:            common.Years,
		StartYear:        common.StartYear,
		TaxRate:          common.TaxRate,
		DiscountRate:     common.DiscountRate,
		DepreciationRate: common.DepreciationRate,
		SocialChargeRate: common.SocialChargeRate,
		WorkingCapital:   common.WorkingCapital,
	}

	if scenario.Years != nil {
		inputs.Years = *scenario.Years
	}
	if scenario.OwnFunds != nil {
		inputs.OwnFunds = *scenario.OwnFunds
	}
	if scenario.TaxRate != nil {
		inputs.TaxRate = *scenario.TaxRate
	}
	if scenario.DiscountRate != nil {
		inputs.DiscountRate = *scenario.DiscountRate
	}
	if scenario.DepreciationRate != nil {
		inputs.DepreciationRate = *scenario.DepreciationRate
	}
	if scenario.SocialChargeRate != nil {
		inputs.SocialChargeRate = *scenario.SocialChargeRate
	}
	if scenario.WorkingCapital != nil {
		inputs.WorkingCapital = *scenario.WorkingCapital
	}

	// Seasonality and grant schedules are slices too.
	for i := range inputs.Revenues {
		inputs.Revenues[i].Seasonality = append([]float64(nil), inputs.Revenues[i].Seasonality...)
	}
	for i := range inputs.Grants {
		inputs.Grants[i].Schedule = append([]float64(nil), inputs.Grants[i].Schedule...)
	}
	return inputs
}

func concat[T any](common, scenario []T) []T {
	out := make([]T, 0, len(common)+len(scenario))
	out = append(out, common...)
	return append(out, scenario...)
}
