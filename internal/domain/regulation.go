package domain

import (
	"fmt"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentType identifies the estimate base a regulation belongs to.
type DocumentType string

// Estimate bases.
const (
	DocumentFER   DocumentType = "FER"   // federal unit rates
	DocumentTER   DocumentType = "TER"   // territorial unit rates
	DocumentGESN  DocumentType = "GESN"  // state element norms
	DocumentFSBTS DocumentType = "FSBTS" // federal construction price base
	DocumentTSN   DocumentType = "TSN"   // territorial norms
)

// Territorial reports whether records of this type are bound to a region.
func (t DocumentType) Territorial() bool {
	return t == DocumentTER || t == DocumentTSN
}

func (t DocumentType) valid() bool {
	switch t {
	case DocumentFER, DocumentTER, DocumentGESN, DocumentFSBTS, DocumentTSN:
		return true
	}
	return false
}

// Category groups regulations by kind of work.
type Category string

// Work categories.
const (
	CategoryEarthworks Category = "earthworks"
	CategoryConcrete   Category = "concrete"
	CategoryMasonry    Category = "masonry"
	CategoryRoofing    Category = "roofing"
	CategoryFinishing  Category = "finishing"
	CategoryPlumbing   Category = "plumbing"
	CategoryElectrical Category = "electrical"
	CategoryHVAC       Category = "hvac"
	CategoryGeneral    Category = "general"
)

func (c Category) valid() bool {
	switch c {
	case CategoryEarthworks, CategoryConcrete, CategoryMasonry, CategoryRoofing,
		CategoryFinishing, CategoryPlumbing, CategoryElectrical, CategoryHVAC, CategoryGeneral:
		return true
	}
	return false
}

// Status is the lifecycle state of a regulation.
type Status string

// Regulation statuses.
const (
	StatusActive     Status = "ACTIVE"
	StatusDraft      Status = "DRAFT"
	StatusArchived   Status = "ARCHIVED"
	StatusDeprecated Status = "DEPRECATED"
)

func (s Status) valid() bool {
	switch s {
	case StatusActive, StatusDraft, StatusArchived, StatusDeprecated:
		return true
	}
	return false
}

// regulationNamespace scopes the name-based UUIDs given to regulations.
var regulationNamespace = uuid.MustParse("5b0f2c3e-8f4a-4d61-9d0a-3c7e2b1f6a10")

// Regulation is a single unit cost rule from one of the estimate bases.
type Regulation struct {
	ID           uuid.UUID
	Code         string
	Name         string
	Unit         string
	Type         DocumentType
	Category     Category
	RegionCode   string
	BasePrice    decimal.Decimal
	LaborCost    decimal.NullDecimal
	MachineCost  decimal.NullDecimal
	MaterialCost decimal.NullDecimal
	ValidFrom    time.Time
	ValidTo      *time.Time
	Status       Status
	SourceURL    string
}

// RegulationID returns the stable identifier for a regulation key.
func RegulationID(t DocumentType, code, regionCode string) uuid.UUID {
	return uuid.NewSHA1(regulationNamespace, []byte(string(t)+"|"+code+"|"+regionCode))
}

// Validate checks the record against the shape the estimate bases publish.
func (r *Regulation) Validate() error {
	if err := checkLen("code", r.Code, 50); err != nil {
		return err
	}
	if err := checkLen("name", r.Name, 500); err != nil {
		return err
	}
	if err := checkLen("unit", r.Unit, 20); err != nil {
		return err
	}
	if !r.Type.valid() {
		return fmt.Errorf("%w: unknown document type %q", ErrValidation, r.Type)
	}
	if !r.Category.valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, r.Category)
	}
	if r.RegionCode != "" && utf8.RuneCountInString(r.RegionCode) != 2 {
		return fmt.Errorf("%w: region code %q must be 2 characters", ErrValidation, r.RegionCode)
	}
	if r.Type.Territorial() && r.RegionCode == "" {
		return fmt.Errorf("%w: %s record requires a region code", ErrValidation, r.Type)
	}
	if r.BasePrice.IsNegative() {
		return fmt.Errorf("%w: base price must not be negative", ErrValidation)
	}
	if err := checkNumeric("base price", r.BasePrice, MoneyPrecision, MoneyScale); err != nil {
		return err
	}
	for _, c := range []struct {
		name string
		v    decimal.NullDecimal
	}{
		{"labor cost", r.LaborCost},
		{"machine cost", r.MachineCost},
		{"material cost", r.MaterialCost},
	} {
		if !c.v.Valid {
			continue
		}
		if c.v.Decimal.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", ErrValidation, c.name)
		}
		if err := checkNumeric(c.name, c.v.Decimal, MoneyPrecision, MoneyScale); err != nil {
			return err
		}
	}
	if r.ValidFrom.IsZero() {
		return fmt.Errorf("%w: valid-from date is required", ErrValidation)
	}
	if r.ValidTo != nil && r.ValidTo.Before(r.ValidFrom) {
		return fmt.Errorf("%w: valid-to %s is before valid-from %s", ErrValidation,
			r.ValidTo.Format(DateLayout), r.ValidFrom.Format(DateLayout))
	}
	if !r.Status.valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, r.Status)
	}
	if r.SourceURL != "" {
		u, err := url.Parse(r.SourceURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: source url %q is not absolute", ErrValidation, r.SourceURL)
		}
	}
	return nil
}

// DateLayout is the calendar-date format used for validity periods.
const DateLayout = "2006-01-02"

func checkLen(field, v string, limit int) error {
	n := utf8.RuneCountInString(v)
	if n == 0 {
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	if n > limit {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrValidation, field, limit)
	}
	return nil
}
