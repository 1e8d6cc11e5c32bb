package tour

import "errors"

var (
	ErrTourNotFound    = errors.New("tour not found")
	ErrDiscountTooHigh = errors.New("discount price should be lower than the actual price")
)
