// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the plan file.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/finance-projection/pkg/constants"
	"github.com/iwvelando/finance-projection/pkg/finance"
	"github.com/iwvelando/finance-projection/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for finance-projection.
type Configuration struct {
	Common    Common        `yaml:"common"`
	Scenarios []Scenario    `yaml:"scenarios"`
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Common holds the assumptions and items shared by all scenarios.
type Common struct {
	Years            int     `yaml:"years"`
	StartYear        int     `yaml:"startYear,omitempty"`
	OwnFunds         float64 `yaml:"ownFunds"`
	TaxRate          float64 `yaml:"taxRate"`
	DiscountRate     float64 `yaml:"discountRate"`
	DepreciationRate float64 `yaml:"depreciationRate,omitempty"`
	SocialChargeRate float64 `yaml:"socialChargeRate,omitempty"`

	WorkingCapital finance.WorkingCapitalDays `yaml:"workingCapital"`

	Revenues    []finance.RevenueStream  `yaml:"revenues,omitempty"`
	Costs       []finance.CostItem       `yaml:"costs,omitempty"`
	Investments []finance.InvestmentItem `yaml:"investments,omitempty"`
	Loans       []finance.LoanItem       `yaml:"loans,omitempty"`
	Grants      []finance.GrantItem      `yaml:"grants,omitempty"`
}

// Scenario adds items to the common plan and may override its scalar
// assumptions. Unset overrides keep the common value.
type Scenario struct {
	Name   string `yaml:"name"`
	Active bool   `yaml:"active"`

	Years            *int     `yaml:"years,omitempty"`
	OwnFunds         *float64 `yaml:"ownFunds,omitempty"`
	TaxRate          *float64 `yaml:"taxRate,omitempty"`
	DiscountRate     *float64 `yaml:"discountRate,omitempty"`
	DepreciationRate *float64 `yaml:"depreciationRate,omitempty"`
	SocialChargeRate *float64 `yaml:"socialChargeRate,omitempty"`

	WorkingCapital *finance.WorkingCapitalDays `yaml:"workingCapital,omitempty"`

	Revenues    []finance.RevenueStream  `yaml:"revenues,omitempty"`
	Costs       []finance.CostItem       `yaml:"costs,omitempty"`
	Investments []finance.InvestmentItem `yaml:"investments,omitempty"`
	Loans       []finance.LoanItem       `yaml:"loans,omitempty"`
	Grants      []finance.GrantItem      `yaml:"grants,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("common.years", constants.DefaultProjectionYears)
	v.SetDefault("common.discountRate", constants.DefaultDiscountRate)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a configuration from r. configType is a
// viper config type such as "yaml" or "json".
func LoadConfigurationFromReader(r io.Reader, configType string) (*Configuration, error) {
	if configType == "" {
		configType = "yml"
	}
	v := newViper()
	v.SetConfigType(configType)

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading configuration, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// ActiveScenarios returns the scenarios flagged active, in file order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings never stop a run.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	if len(c.ActiveScenarios()) == 0 {
		warnings = append(warnings, "no active scenarios defined")
	}
	for _, scenario := range c.ActiveScenarios() {
		for _, w := range validation.CheckInputs(c.Inputs(scenario)) {
			warnings = append(warnings, fmt.Sprintf("scenario %s: %s", scenario.Name, w))
		}
	}
	return warnings
}
