package database

import (
	"fmt"

	"github.com/johnwards/smetaseed/internal/domain"
)

// decimalType returns the column type used for exact decimal values. SQLite
// has no exact numeric storage class, so the decimal text is kept as is.
func (d Driver) decimalType(precision, scale int) string {
	if d == DriverPostgres {
		return fmt.Sprintf("NUMERIC(%d,%d)", precision, scale)
	}
	return "TEXT"
}

// migrations returns the ordered list of SQL migration groups for driver.
// Each entry is a slice of SQL statements that are executed together in a
// single transaction. The version number is the 1-based index into the
// returned slice.
func migrations(d Driver) [][]string {
	money := d.decimalType(domain.MoneyPrecision, domain.MoneyScale)
	coefficient := d.decimalType(domain.CoefficientPrecision, domain.CoefficientScale)

	return [][]string{
		// Migration 1: reference data tables
		{
			`CREATE TABLE regulations (
				id TEXT PRIMARY KEY,
				code TEXT NOT NULL,
				name TEXT NOT NULL,
				unit TEXT NOT NULL,
				doc_type TEXT NOT NULL,
				category TEXT NOT NULL,
				region_code TEXT NOT NULL DEFAULT '',
				base_price ` + money + ` NOT NULL,
				labor_cost ` + money + `,
				machine_cost ` + money + `,
				material_cost ` + money + `,
				valid_from TEXT NOT NULL,
				valid_to TEXT,
				status TEXT NOT NULL DEFAULT 'ACTIVE',
				source_url TEXT,
				created_at TEXT NOT NULL,
				UNIQUE (code, doc_type, region_code)
			)`,
			`CREATE INDEX idx_regulations_category ON regulations(category, doc_type)`,

			`CREATE TABLE regions (
				region_code TEXT PRIMARY KEY,
				region_name TEXT NOT NULL,
				coefficient ` + coefficient + ` NOT NULL,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,

			`CREATE TABLE estimate_templates (
				id TEXT PRIMARY KEY,
				name TEXT UNIQUE NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				category TEXT NOT NULL,
				is_public BOOLEAN NOT NULL DEFAULT TRUE,
				structure TEXT NOT NULL,
				created_at TEXT NOT NULL
			)`,
		},
	}
}
