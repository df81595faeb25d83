package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var templateNamespace = uuid.MustParse("0c9d51a4-2b7e-4f3a-8e15-6a4d9b2c7f08")

// EstimateTemplate is a named starting point for a new estimate.
type EstimateTemplate struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
	Public      bool
	Structure   TemplateStructure
}

// TemplateStructure is the default layout an estimate created from a
// template starts with. It is stored as JSON.
type TemplateStructure struct {
	Currency     string            `json:"currency"`
	OverheadRate decimal.Decimal   `json:"overheadRate"`
	ProfitRate   decimal.Decimal   `json:"profitRate"`
	VATRate      decimal.Decimal   `json:"vatRate"`
	Sections     []TemplateSection `json:"sections"`
}

// TemplateSection is one ordered section of a template.
type TemplateSection struct {
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	ItemCodes []string `json:"itemCodes,omitempty"`
}

// TemplateID returns the stable identifier for a template name.
func TemplateID(name string) uuid.UUID {
	return uuid.NewSHA1(templateNamespace, []byte(name))
}

// Validate checks the template name and structure.
func (t *EstimateTemplate) Validate() error {
	if err := checkLen("template name", t.Name, 255); err != nil {
		return err
	}
	if len(t.Structure.Sections) == 0 {
		return fmt.Errorf("%w: template %q has no sections", ErrValidation, t.Name)
	}
	for i, s := range t.Structure.Sections {
		if s.Name == "" {
			return fmt.Errorf("%w: template %q section %d has no name", ErrValidation, t.Name, i)
		}
		if !s.Category.valid() {
			return fmt.Errorf("%w: template %q section %q has unknown category %q",
				ErrValidation, t.Name, s.Name, s.Category)
		}
	}
	return nil
}
