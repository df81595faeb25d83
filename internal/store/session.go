package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/johnwards/smetaseed/internal/database"
	"github.com/johnwards/smetaseed/internal/domain"
)

// Write statements, in ? placeholder form. Both backends accept the
// ON CONFLICT ... excluded upsert syntax.
const (
	insertRegulationSQL = `INSERT INTO regulations (id, code, name, unit, doc_type, category, region_code,
	base_price, labor_cost, machine_cost, material_cost, valid_from, valid_to, status, source_url, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	upsertRegionSQL = `INSERT INTO regions (region_code, region_name, coefficient, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (region_code) DO UPDATE SET
	region_name = excluded.region_name,
	coefficient = excluded.coefficient,
	is_active = excluded.is_active,
	updated_at = excluded.updated_at`

	insertTemplateSQL = `INSERT INTO estimate_templates (id, name, description, category, is_public, structure, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
)

// sqlSession implements Session over a single pooled connection.
type sqlSession struct {
	conn   *sql.Conn
	driver database.Driver
	now    func() time.Time
	closed bool
}

// CreateRegulations inserts all regulations in one transaction. Either every
// record is written or none is.
func (s *sqlSession) CreateRegulations(ctx context.Context, regs []domain.Regulation) (int, error) {
	if len(regs) == 0 {
		return 0, nil
	}
	ts := timestamp(s.now())

	err := s.inTx(ctx, TableRegulations, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, s.driver.Rebind(insertRegulationSQL))
		if err != nil {
			return writeError(TableRegulations, "prepare", "", err)
		}
		defer func() { _ = stmt.Close() }()

		for i := range regs {
			r := &regs[i]
			var validTo sql.NullString
			if r.ValidTo != nil {
				validTo = sql.NullString{String: r.ValidTo.Format(domain.DateLayout), Valid: true}
			}
			if _, err := stmt.ExecContext(ctx,
				r.ID.String(), r.Code, r.Name, r.Unit, string(r.Type), string(r.Category), r.RegionCode,
				r.BasePrice, r.LaborCost, r.MachineCost, r.MaterialCost,
				r.ValidFrom.Format(domain.DateLayout), validTo, string(r.Status),
				sql.NullString{String: r.SourceURL, Valid: r.SourceURL != ""}, ts,
			); err != nil {
				return writeError(TableRegulations, "insert", r.Code, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(regs), nil
}

// UpsertRegion creates the region or overwrites an existing one with the same
// code. The original creation time is kept.
func (s *sqlSession) UpsertRegion(ctx context.Context, r domain.Region) error {
	ts := timestamp(s.now())

	if _, err := s.conn.ExecContext(ctx, s.driver.Rebind(upsertRegionSQL),
		r.Code, r.Name, r.Coefficient, r.Active, ts, ts,
	); err != nil {
		return writeError(TableRegions, "upsert", r.Code, err)
	}
	return nil
}

// CreateTemplates inserts all templates in one transaction.
func (s *sqlSession) CreateTemplates(ctx context.Context, tpls []domain.EstimateTemplate) (int, error) {
	if len(tpls) == 0 {
		return 0, nil
	}
	ts := timestamp(s.now())

	err := s.inTx(ctx, TableTemplates, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, s.driver.Rebind(insertTemplateSQL))
		if err != nil {
			return writeError(TableTemplates, "prepare", "", err)
		}
		defer func() { _ = stmt.Close() }()

		for i := range tpls {
			t := &tpls[i]
			structure, err := json.Marshal(t.Structure)
			if err != nil {
				return fmt.Errorf("marshal template %q structure: %w", t.Name, err)
			}
			if _, err := stmt.ExecContext(ctx,
				t.ID.String(), t.Name, t.Description, t.Category, t.Public, string(structure), ts,
			); err != nil {
				return writeError(TableTemplates, "insert", t.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(tpls), nil
}

// Close releases the connection back to the pool. Calling it again is a no-op.
func (s *sqlSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

func (s *sqlSession) inTx(ctx context.Context, table string, fn func(*sql.Tx) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return writeError(table, "begin", "", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return writeError(table, "commit", "", err)
	}
	return nil
}
