package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// maxCoefficient bounds regional price coefficients.
var maxCoefficient = decimal.NewFromInt(10)

// Region is a regional price coefficient keyed by region code.
type Region struct {
	Code        string
	Name        string
	Coefficient decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the region key and coefficient range.
func (r *Region) Validate() error {
	if err := checkLen("region code", r.Code, 10); err != nil {
		return err
	}
	if utf8.RuneCountInString(r.Name) == 0 {
		return fmt.Errorf("%w: region %s has no name", ErrValidation, r.Code)
	}
	if !r.Coefficient.IsPositive() || r.Coefficient.GreaterThan(maxCoefficient) {
		return fmt.Errorf("%w: region %s coefficient %s outside (0, %s]",
			ErrValidation, r.Code, r.Coefficient, maxCoefficient)
	}
	return checkNumeric("region "+r.Code+" coefficient", r.Coefficient, CoefficientPrecision, CoefficientScale)
}
