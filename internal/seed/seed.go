package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/johnwards/smetaseed/internal/domain"
	"github.com/johnwards/smetaseed/internal/metrics"
	"github.com/johnwards/smetaseed/internal/regulation"
	"github.com/johnwards/smetaseed/internal/store"
)

// Step names, as used in logs and metrics.
const (
	StepRegulations = "regulations"
	StepRegions     = "regions"
	StepTemplates   = "templates"
)

// Seeder populates the store with construction-cost reference data.
type Seeder struct {
	Store       store.Connector
	Regulations regulation.Provider
	Regions     []domain.Region
	Templates   []domain.EstimateTemplate
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
}

// New returns a Seeder that loads regulations from p and the built-in region
// and template lists into c.
func New(c store.Connector, p regulation.Provider) *Seeder {
	return &Seeder{
		Store:       c,
		Regulations: p,
		Regions:     DefaultRegions(),
		Templates:   DefaultTemplates(),
		Logger:      slog.Default(),
	}
}

// Run acquires one store session and seeds regulations, regions and
// templates, in that order. The session is released on every return path.
// The first failing step aborts the run; writes made by earlier steps stay
// committed.
func (s *Seeder) Run(ctx context.Context) (err error) {
	log := s.Logger
	if log == nil {
		log = slog.Default()
	}
	start := time.Now()

	sess, err := s.Store.Connect(ctx)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		cerr := sess.Close()
		switch {
		case cerr == nil:
		case err == nil:
			err = fmt.Errorf("release connection: %w", cerr)
		default:
			log.Warn("release connection after failed run", "error", cerr)
		}
	}()

	steps := []struct {
		name  string
		table string
		op    metrics.Operation
		run   func() (int, error)
	}{
		{StepRegulations, store.TableRegulations, metrics.OperationInsert, func() (int, error) {
			return Regulations(ctx, sess, s.Regulations)
		}},
		{StepRegions, store.TableRegions, metrics.OperationUpsert, func() (int, error) {
			return Regions(ctx, sess, s.Regions)
		}},
		{StepTemplates, store.TableTemplates, metrics.OperationInsert, func() (int, error) {
			return Templates(ctx, sess, s.Templates)
		}},
	}

	for _, st := range steps {
		stepStart := time.Now()
		n, err := st.run()
		s.Metrics.RecordRows(st.table, st.op, n)
		s.Metrics.RecordStep(st.name, time.Since(stepStart), err)
		if err != nil {
			return fmt.Errorf("seed %s: %w", st.name, err)
		}
		log.Info("seed step completed", "step", st.name, "records", n)
	}

	s.Metrics.RecordSuccess(time.Now())
	log.Info("seeding completed", "duration", time.Since(start))
	return nil
}

// Regulations loads every record from p and bulk-inserts them.
func Regulations(ctx context.Context, sess store.Session, p regulation.Provider) (int, error) {
	regs, err := p.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load regulations: %w", err)
	}

	n, err := sess.CreateRegulations(ctx, regs)
	if err != nil {
		return 0, fmt.Errorf("insert regulations: %w", err)
	}
	return n, nil
}

// Regions upserts each region in order and stops at the first failure. The
// returned count is the number of regions written before it.
func Regions(ctx context.Context, sess store.Session, regions []domain.Region) (int, error) {
	for i := range regions {
		r := regions[i]
		if err := r.Validate(); err != nil {
			return i, fmt.Errorf("region %d: %w", i, err)
		}
		if err := sess.UpsertRegion(ctx, r); err != nil {
			return i, fmt.Errorf("upsert region %s: %w", r.Code, err)
		}
	}
	return len(regions), nil
}

// Templates validates and bulk-inserts the estimate templates.
func Templates(ctx context.Context, sess store.Session, tpls []domain.EstimateTemplate) (int, error) {
	for i := range tpls {
		if err := tpls[i].Validate(); err != nil {
			return 0, fmt.Errorf("template %d: %w", i, err)
		}
	}

	n, err := sess.CreateTemplates(ctx, tpls)
	if err != nil {
		return 0, fmt.Errorf("insert templates: %w", err)
	}
	return n, nil
}
