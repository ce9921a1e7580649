package loans

import "errors"

var (
	ErrInvalidPrincipal  = errors.New("loan principal must be positive")
	ErrInvalidTerm       = errors.New("loan term must be a positive number of months")
	ErrInvalidRate       = errors.New("loan interest rate must be a non-negative number")
	ErrInvalidGrace      = errors.New("loan grace period cannot be negative")
	ErrUnsupportedMethod = errors.New("unsupported amortization method")
)
