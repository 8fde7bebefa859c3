package common

import "errors"

var (
	// ErrInvalidDate reports a date string that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidAmount reports an amount that is not a decimal number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidFrequency reports a recurrence frequency outside daily,
	// weekly, monthly and yearly.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrInvalidMonth reports a month selector outside "01".."12".
	ErrInvalidMonth = errors.New("invalid month")
)
