package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is wrapped by all parameter validation failures.
	ErrValidation = errors.New("invalid parameters")

	// ErrNoTariffData is returned when the tariff table is empty or no row
	// satisfies even the fallback rule.
	ErrNoTariffData = errors.New("no tariff data")
)

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
