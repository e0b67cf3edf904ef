package wizard

import "errors"

var (
	// ErrInvalidGuests is returned when the guest count is not a positive integer.
	ErrInvalidGuests = errors.New("guest count must be a positive integer")

	// ErrNoGuests is returned when advancing without a guest count.
	ErrNoGuests = errors.New("guest count is required")

	// ErrNoCategories is returned when advancing without any selected meat.
	ErrNoCategories = errors.New("select at least one meat")

	// ErrInvalidPrice is returned when a price is not a positive number.
	ErrInvalidPrice = errors.New("price must be a positive number")

	// ErrMissingPrice is returned when advancing while a selected meat has no price.
	ErrMissingPrice = errors.New("every selected meat needs a price")

	// ErrNotSelected is returned when editing the share of a meat that is not selected.
	ErrNotSelected = errors.New("meat is not selected")

	// ErrSharesUnbalanced is returned when advancing while the shares do not add up to 100%.
	ErrSharesUnbalanced = errors.New("the shares must add up to 100%")

	// ErrLastStep is returned when advancing past the result.
	ErrLastStep = errors.New("already at the last step")
)
