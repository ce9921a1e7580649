package finance

import "errors"

var (
	ErrInvalidHorizon     = errors.New("projection horizon must be at least one year")
	ErrInvalidSeasonality = errors.New("seasonality must hold 12 non-negative multipliers")
)
