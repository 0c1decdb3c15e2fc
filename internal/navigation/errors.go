package navigation

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedAddress is returned when an address normalises to zero segments.
	ErrMalformedAddress = errors.New("navigation: malformed address")
	// ErrIneligibleTarget is returned when Resolve is asked to place a page whose
	// layout does not take part in the hierarchy.
	ErrIneligibleTarget = errors.New("navigation: target layout is not eligible")
)

// MalformedAddressError carries the offending address.
type MalformedAddressError struct {
	Address string
	Source  string
}

func (e *MalformedAddressError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("navigation: malformed address %q (source %s)", e.Address, e.Source)
	}
	return fmt.Sprintf("navigation: malformed address %q", e.Address)
}

func (e *MalformedAddressError) Unwrap() error {
	return ErrMalformedAddress
}
