// Package regulation loads unit-cost regulation records from the published
// estimate bases. The default dataset is compiled into the binary; a JSON file
// in the same format can replace it.
package regulation

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/johnwards/smetaseed/internal/domain"
)

//go:embed data/fsbc.json
var embedded []byte

// Provider yields every regulation record of a data source, in source order.
type Provider interface {
	LoadAll(ctx context.Context) ([]domain.Regulation, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context) ([]domain.Regulation, error)

// LoadAll calls f.
func (f ProviderFunc) LoadAll(ctx context.Context) ([]domain.Regulation, error) {
	return f(ctx)
}

// Embedded returns the provider for the dataset shipped with the binary.
func Embedded() Provider {
	return ProviderFunc(func(_ context.Context) ([]domain.Regulation, error) {
		regs, err := Decode(bytes.NewReader(embedded))
		if err != nil {
			return nil, fmt.Errorf("embedded dataset: %w", err)
		}
		return regs, nil
	})
}

// File returns a provider reading the JSON dataset at path on every load.
func File(path string) Provider {
	return ProviderFunc(func(_ context.Context) ([]domain.Regulation, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open regulations file: %w", err)
		}
		defer func() { _ = f.Close() }()

		regs, err := Decode(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return regs, nil
	})
}

// record is the wire shape of one dataset entry.
type record struct {
	Code         string              `json:"code"`
	Name         string              `json:"name"`
	Unit         string              `json:"unit"`
	Type         domain.DocumentType `json:"type"`
	Category     domain.Category     `json:"category"`
	RegionCode   string              `json:"regionCode"`
	BasePrice    *decimal.Decimal    `json:"basePrice"`
	LaborCost    decimal.NullDecimal `json:"laborCost"`
	MachineCost  decimal.NullDecimal `json:"machineCost"`
	MaterialCost decimal.NullDecimal `json:"materialCost"`
	ValidFrom    string              `json:"validFrom"`
	ValidTo      string              `json:"validTo"`
	Status       domain.Status       `json:"status"`
	SourceURL    string              `json:"sourceUrl"`
}

// Decode parses a JSON array of regulation records and validates each one.
// The array must be the only value in r.
// The first malformed record aborts decoding with domain.ErrValidation.
func Decode(r io.Reader) ([]domain.Regulation, error) {
	var recs []record
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&recs); err != nil {
		return nil, fmt.Errorf("%w: decode regulations: %w", domain.ErrValidation, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after regulation list", domain.ErrValidation)
	}

	out := make([]domain.Regulation, 0, len(recs))
	for i, rec := range recs {
		reg, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, rec.Code, err)
		}
		if err := reg.Validate(); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, rec.Code, err)
		}
		out = append(out, reg)
	}
	return out, nil
}

func (rec record) toDomain() (domain.Regulation, error) {
	if rec.BasePrice == nil {
		return domain.Regulation{}, fmt.Errorf("%w: base price is required", domain.ErrValidation)
	}

	reg := domain.Regulation{
		ID:           domain.RegulationID(rec.Type, rec.Code, rec.RegionCode),
		Code:         rec.Code,
		Name:         rec.Name,
		Unit:         rec.Unit,
		Type:         rec.Type,
		Category:     rec.Category,
		RegionCode:   rec.RegionCode,
		BasePrice:    *rec.BasePrice,
		LaborCost:    rec.LaborCost,
		MachineCost:  rec.MachineCost,
		MaterialCost: rec.MaterialCost,
		Status:       rec.Status,
		SourceURL:    rec.SourceURL,
	}
	if reg.Status == "" {
		reg.Status = domain.StatusActive
	}

	if rec.ValidFrom != "" {
		from, err := time.Parse(domain.DateLayout, rec.ValidFrom)
		if err != nil {
			return domain.Regulation{}, fmt.Errorf("%w: valid-from: %w", domain.ErrValidation, err)
		}
		reg.ValidFrom = from
	}
	if rec.ValidTo != "" {
		to, err := time.Parse(domain.DateLayout, rec.ValidTo)
		if err != nil {
			return domain.Regulation{}, fmt.Errorf("%w: valid-to: %w", domain.ErrValidation, err)
		}
		reg.ValidTo = &to
	}

	return reg, nil
}
