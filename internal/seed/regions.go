package seed

import (
	"github.com/shopspring/decimal"

	"github.com/johnwards/smetaseed/internal/domain"
)

type regionDef struct {
	code        string
	name        string
	coefficient string
}

// defaultRegions are the regional price coefficients applied to the federal
// base, keyed by OKATO region code.
var defaultRegions = []regionDef{
	{code: "77", name: "Москва", coefficient: "1.15"},
	{code: "78", name: "Санкт-Петербург", coefficient: "1.12"},
	{code: "50", name: "Московская область", coefficient: "1.08"},
	{code: "47", name: "Ленинградская область", coefficient: "1.05"},
	{code: "23", name: "Краснодарский край", coefficient: "0.98"},
	{code: "61", name: "Ростовская область", coefficient: "0.95"},
	{code: "66", name: "Свердловская область", coefficient: "1.02"},
	{code: "54", name: "Новосибирская область", coefficient: "1.04"},
	{code: "92", name: "Республика Татарстан", coefficient: "0.97"},
	{code: "80", name: "Республика Башкортостан", coefficient: "0.96"},
}

// DefaultRegions returns a fresh copy of the built-in regional coefficient
// list, in seeding order.
func DefaultRegions() []domain.Region {
	out := make([]domain.Region, 0, len(defaultRegions))
	for _, rd := range defaultRegions {
		out = append(out, domain.Region{
			Code:        rd.code,
			Name:        rd.name,
			Coefficient: decimal.RequireFromString(rd.coefficient),
			Active:      true,
		})
	}
	return out
}
