package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/johnwards/smetaseed/internal/domain"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("not found")

// ListRegulations returns all regulations ordered by type, code and region.
func (s *Store) ListRegulations(ctx context.Context) ([]domain.Regulation, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, code, name, unit, doc_type, category, region_code,
			base_price, labor_cost, machine_cost, material_cost,
			valid_from, valid_to, status, source_url
		 FROM regulations ORDER BY doc_type, code, region_code`)
	if err != nil {
		return nil, fmt.Errorf("query regulations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Regulation
	for rows.Next() {
		var (
			r                  domain.Regulation
			id, docType, cat   string
			status, validFrom  string
			validTo, sourceURL sql.NullString
		)
		if err := rows.Scan(&id, &r.Code, &r.Name, &r.Unit, &docType, &cat, &r.RegionCode,
			&r.BasePrice, &r.LaborCost, &r.MachineCost, &r.MaterialCost,
			&validFrom, &validTo, &status, &sourceURL,
		); err != nil {
			return nil, fmt.Errorf("scan regulation: %w", err)
		}

		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("regulation %s id: %w", r.Code, err)
		}
		if r.ValidFrom, err = time.Parse(domain.DateLayout, validFrom); err != nil {
			return nil, fmt.Errorf("regulation %s valid_from: %w", r.Code, err)
		}
		if validTo.Valid {
			to, err := time.Parse(domain.DateLayout, validTo.String)
			if err != nil {
				return nil, fmt.Errorf("regulation %s valid_to: %w", r.Code, err)
			}
			r.ValidTo = &to
		}
		r.Type = domain.DocumentType(docType)
		r.Category = domain.Category(cat)
		r.Status = domain.Status(status)
		r.SourceURL = sourceURL.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate regulations: %w", err)
	}
	return out, nil
}

// ListRegions returns all regions ordered by code.
func (s *Store) ListRegions(ctx context.Context) ([]domain.Region, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT region_code, region_name, coefficient, is_active, created_at, updated_at
		 FROM regions ORDER BY region_code`)
	if err != nil {
		return nil, fmt.Errorf("query regions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Region
	for rows.Next() {
		r, err := scanRegion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate regions: %w", err)
	}
	return out, nil
}

// GetRegion returns a single region by code.
func (s *Store) GetRegion(ctx context.Context, code string) (*domain.Region, error) {
	row := s.DB.QueryRowContext(ctx, s.driver.Rebind(
		`SELECT region_code, region_name, coefficient, is_active, created_at, updated_at
		 FROM regions WHERE region_code = ?`), code)

	r, err := scanRegion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("region %q: %w", code, ErrNotFound)
		}
		return nil, err
	}
	return r, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegion(row rowScanner) (*domain.Region, error) {
	var (
		r                domain.Region
		created, updated string
	)
	if err := row.Scan(&r.Code, &r.Name, &r.Coefficient, &r.Active, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan region: %w", err)
	}

	var err error
	if r.CreatedAt, err = parseTimestamp(created); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListTemplates returns all estimate templates ordered by name.
func (s *Store) ListTemplates(ctx context.Context) ([]domain.EstimateTemplate, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, description, category, is_public, structure
		 FROM estimate_templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.EstimateTemplate
	for rows.Next() {
		var (
			t             domain.EstimateTemplate
			id, structure string
		)
		if err := rows.Scan(&id, &t.Name, &t.Description, &t.Category, &t.Public, &structure); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		if t.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("template %q id: %w", t.Name, err)
		}
		if err := json.Unmarshal([]byte(structure), &t.Structure); err != nil {
			return nil, fmt.Errorf("template %q structure: %w", t.Name, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return out, nil
}
