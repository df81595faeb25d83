package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Exact-decimal column shapes. Prices and costs are kopeck-precise amounts;
// regional coefficients carry up to four fractional digits.
const (
	MoneyPrecision       = 18
	MoneyScale           = 2
	CoefficientPrecision = 8
	CoefficientScale     = 4
)

// checkNumeric rejects values a NUMERIC(precision, scale) column would round
// or refuse.
func checkNumeric(field string, d decimal.Decimal, precision, scale int) error {
	if !d.Equal(d.Truncate(int32(scale))) {
		return fmt.Errorf("%w: %s %s has more than %d decimal places", ErrValidation, field, d, scale)
	}
	if !d.Abs().LessThan(decimal.New(1, int32(precision-scale))) {
		return fmt.Errorf("%w: %s %s exceeds %d integer digits", ErrValidation, field, d, precision-scale)
	}
	return nil
}
