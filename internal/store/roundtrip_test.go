package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/johnwards/smetaseed/internal/database"
	"github.com/johnwards/smetaseed/internal/domain"
	"github.com/johnwards/smetaseed/internal/store"
	"github.com/johnwards/smetaseed/internal/testhelpers"
)

func TestDecimalRoundTripSQLite(t *testing.T) {
	checkDecimalRoundTrip(t, setupStore(t))
}

func TestDecimalRoundTripPostgres(t *testing.T) {
	checkDecimalRoundTrip(t, store.New(testhelpers.NewPostgresDB(t), database.DriverPostgres))
}

// checkDecimalRoundTrip writes the largest and smallest values the schema
// admits and expects them back unchanged.
func checkDecimalRoundTrip(t *testing.T, s *store.Store) {
	t.Helper()
	ctx := context.Background()

	reg := regulation("ФЕР99-99-999-99")
	reg.BasePrice = decimal.RequireFromString("1234567890123456.78")
	reg.LaborCost = decimal.NewNullDecimal(decimal.RequireFromString("9999999999999999.99"))
	reg.MaterialCost = decimal.NewNullDecimal(decimal.RequireFromString("0.01"))
	if err := reg.Validate(); err != nil {
		t.Fatalf("fixture is not valid: %v", err)
	}

	region := domain.Region{Code: "77", Name: "Москва", Coefficient: decimal.RequireFromString("9.9999"), Active: true}
	if err := region.Validate(); err != nil {
		t.Fatalf("fixture is not valid: %v", err)
	}

	withSession(t, s, func(sess store.Session) {
		if _, err := sess.CreateRegulations(ctx, []domain.Regulation{reg}); err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := sess.UpsertRegion(ctx, region); err != nil {
			t.Fatalf("upsert: %v", err)
		}
		if _, err := sess.CreateRegulations(ctx, []domain.Regulation{reg}); !errors.Is(err, domain.ErrWriteConflict) {
			t.Errorf("expected ErrWriteConflict on duplicate, got %v", err)
		}
	})

	regs, err := s.ListRegulations(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(regs) != 1 {
		t.Fatalf("expected 1 regulation, got %d", len(regs))
	}
	got := regs[0]
	if !got.BasePrice.Equal(reg.BasePrice) {
		t.Errorf("base price = %s, want %s", got.BasePrice, reg.BasePrice)
	}
	if !got.LaborCost.Valid || !got.LaborCost.Decimal.Equal(reg.LaborCost.Decimal) {
		t.Errorf("labor cost = %v, want %s", got.LaborCost, reg.LaborCost.Decimal)
	}
	if got.MachineCost.Valid {
		t.Errorf("expected machine cost to stay NULL, got %s", got.MachineCost.Decimal)
	}
	if !got.MaterialCost.Valid || !got.MaterialCost.Decimal.Equal(reg.MaterialCost.Decimal) {
		t.Errorf("material cost = %v, want %s", got.MaterialCost, reg.MaterialCost.Decimal)
	}

	r, err := s.GetRegion(ctx, "77")
	if err != nil {
		t.Fatalf("get region: %v", err)
	}
	if !r.Coefficient.Equal(region.Coefficient) {
		t.Errorf("coefficient = %s, want %s", r.Coefficient, region.Coefficient)
	}
}
