package domain_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/johnwards/smetaseed/internal/domain"
)

func validRegulation() domain.Regulation {
	return domain.Regulation{
		ID:        domain.RegulationID(domain.DocumentFER, "ФЕР01-01-003-01", ""),
		Code:      "ФЕР01-01-003-01",
		Name:      "Разработка грунта экскаватором",
		Unit:      "1000 м3",
		Type:      domain.DocumentFER,
		Category:  domain.CategoryEarthworks,
		BasePrice: decimal.RequireFromString("4520.30"),
		LaborCost: decimal.NewNullDecimal(decimal.RequireFromString("410.12")),
		ValidFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:    domain.StatusActive,
		SourceURL: "https://fgiscs.minstroyrf.ru/frsn",
	}
}

func TestRegulationValidate(t *testing.T) {
	before := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(r *domain.Regulation)
		want   string
	}{
		{"valid", func(*domain.Regulation) {}, ""},
		{"missing code", func(r *domain.Regulation) { r.Code = "" }, "code is required"},
		{"long code", func(r *domain.Regulation) { r.Code = strings.Repeat("Ф", 51) }, "code exceeds 50"},
		{"missing unit", func(r *domain.Regulation) { r.Unit = "" }, "unit is required"},
		{"unknown type", func(r *domain.Regulation) { r.Type = "SNIP" }, "unknown document type"},
		{"unknown category", func(r *domain.Regulation) { r.Category = "demolition" }, "unknown category"},
		{"bad region code", func(r *domain.Regulation) { r.RegionCode = "770" }, "must be 2 characters"},
		{"territorial without region", func(r *domain.Regulation) { r.Type = domain.DocumentTER }, "requires a region code"},
		{"negative price", func(r *domain.Regulation) { r.BasePrice = decimal.NewFromInt(-1) }, "base price"},
		{"negative labor", func(r *domain.Regulation) {
			r.LaborCost = decimal.NewNullDecimal(decimal.NewFromInt(-5))
		}, "labor cost"},
		{"missing valid from", func(r *domain.Regulation) { r.ValidFrom = time.Time{} }, "valid-from"},
		{"valid to before from", func(r *domain.Regulation) { r.ValidTo = &before }, "is before valid-from"},
		{"unknown status", func(r *domain.Regulation) { r.Status = "PUBLISHED" }, "unknown status"},
		{"relative url", func(r *domain.Regulation) { r.SourceURL = "/frsn" }, "not absolute"},
		{"price scale", func(r *domain.Regulation) { r.BasePrice = decimal.RequireFromString("4520.305") }, "more than 2 decimal places"},
		{"price magnitude", func(r *domain.Regulation) { r.BasePrice = decimal.New(1, 16) }, "exceeds 16 integer digits"},
		{"material scale", func(r *domain.Regulation) {
			r.MaterialCost = decimal.NewNullDecimal(decimal.RequireFromString("0.001"))
		}, "material cost"},
		{"trailing zeros", func(r *domain.Regulation) { r.BasePrice = decimal.RequireFromString("4520.3000") }, ""},
		{"largest price", func(r *domain.Regulation) { r.BasePrice = decimal.RequireFromString("9999999999999999.99") }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegulation()
			tt.mutate(&r)
			err := r.Validate()

			if tt.want == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestTerritorialTypes(t *testing.T) {
	for typ, want := range map[domain.DocumentType]bool{
		domain.DocumentFER:   false,
		domain.DocumentGESN:  false,
		domain.DocumentFSBTS: false,
		domain.DocumentTER:   true,
		domain.DocumentTSN:   true,
	} {
		if got := typ.Territorial(); got != want {
			t.Errorf("%s.Territorial() = %v, want %v", typ, got, want)
		}
	}
}

func TestRegulationIDIsStable(t *testing.T) {
	a := domain.RegulationID(domain.DocumentTER, "ТЕР06-01-001-01", "77")
	b := domain.RegulationID(domain.DocumentTER, "ТЕР06-01-001-01", "77")
	if a != b {
		t.Fatalf("expected equal ids, got %s and %s", a, b)
	}
	if c := domain.RegulationID(domain.DocumentTER, "ТЕР06-01-001-01", "78"); c == a {
		t.Error("expected region code to change the id")
	}
	if c := domain.RegulationID(domain.DocumentFER, "ТЕР06-01-001-01", "77"); c == a {
		t.Error("expected document type to change the id")
	}
}

func TestRegionValidate(t *testing.T) {
	tests := []struct {
		name   string
		region domain.Region
		ok     bool
	}{
		{"valid", domain.Region{Code: "77", Name: "Москва", Coefficient: decimal.RequireFromString("1.15")}, true},
		{"upper bound", domain.Region{Code: "77", Name: "Москва", Coefficient: decimal.NewFromInt(10)}, true},
		{"no code", domain.Region{Name: "Москва", Coefficient: decimal.NewFromInt(1)}, false},
		{"long code", domain.Region{Code: "12345678901", Name: "x", Coefficient: decimal.NewFromInt(1)}, false},
		{"no name", domain.Region{Code: "77", Coefficient: decimal.NewFromInt(1)}, false},
		{"zero coefficient", domain.Region{Code: "77", Name: "Москва"}, false},
		{"negative coefficient", domain.Region{Code: "77", Name: "Москва", Coefficient: decimal.NewFromInt(-1)}, false},
		{"above bound", domain.Region{Code: "77", Name: "Москва", Coefficient: decimal.RequireFromString("10.01")}, false},
		{"four decimals", domain.Region{Code: "77", Name: "Москва", Coefficient: decimal.RequireFromString("1.1525")}, true},
		{"five decimals", domain.Region{Code: "77", Name: "Москва", Coefficient: decimal.RequireFromString("1.15255")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.region.Validate()
			if tt.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.ok && !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestTemplateValidate(t *testing.T) {
	tpl := domain.EstimateTemplate{
		ID:   domain.TemplateID("Жилой дом"),
		Name: "Жилой дом",
		Structure: domain.TemplateStructure{
			Currency: "RUB",
			Sections: []domain.TemplateSection{{Name: "Фундаменты", Category: domain.CategoryConcrete}},
		},
	}
	if err := tpl.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	noSections := tpl
	noSections.Structure.Sections = nil
	if err := noSections.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for no sections, got %v", err)
	}

	badCategory := tpl
	badCategory.Structure.Sections = []domain.TemplateSection{{Name: "Снос", Category: "demolition"}}
	if err := badCategory.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for unknown category, got %v", err)
	}

	if domain.TemplateID("Жилой дом") != tpl.ID {
		t.Error("expected template id to be stable")
	}
}
