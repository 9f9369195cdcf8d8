package payments

import "errors"

var (
	ErrInvalidInput      = errors.New("missing required fields")
	ErrAlreadyPurchased  = errors.New("analysis already purchased")
	ErrSignatureMismatch = errors.New("payment signature mismatch")
	ErrGateway           = errors.New("payment gateway error")
	ErrNotEntitled       = errors.New("analysis not purchased")
)
