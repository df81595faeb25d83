package seed

import (
	"github.com/shopspring/decimal"

	"github.com/johnwards/smetaseed/internal/domain"
)

type templateDef struct {
	name        string
	description string
	category    string
	overhead    int64
	profit      int64
	sections    []domain.TemplateSection
}

var defaultTemplates = []templateDef{
	{
		name:        "Жилой дом",
		description: "Многоэтажный жилой дом: нулевой цикл, коробка, кровля, отделка и инженерные системы",
		category:    "residential",
		overhead:    12,
		profit:      8,
		sections: []domain.TemplateSection{
			{Name: "Земляные работы", Category: domain.CategoryEarthworks, ItemCodes: []string{"ФЕР01-01-003-01"}},
			{Name: "Фундаменты", Category: domain.CategoryConcrete, ItemCodes: []string{"ФЕР06-01-001-01"}},
			{Name: "Стены", Category: domain.CategoryMasonry, ItemCodes: []string{"ФЕР08-02-001-01"}},
			{Name: "Кровля", Category: domain.CategoryRoofing, ItemCodes: []string{"ФЕР12-01-002-09"}},
			{Name: "Отделочные работы", Category: domain.CategoryFinishing},
			{Name: "Водопровод и канализация", Category: domain.CategoryPlumbing},
			{Name: "Электроснабжение", Category: domain.CategoryElectrical},
			{Name: "Отопление и вентиляция", Category: domain.CategoryHVAC},
		},
	},
	{
		name:        "Коммерческое здание",
		description: "Офисное или торговое здание с каркасом из монолитного железобетона",
		category:    "commercial",
		overhead:    14,
		profit:      9,
		sections: []domain.TemplateSection{
			{Name: "Земляные работы", Category: domain.CategoryEarthworks},
			{Name: "Монолитный каркас", Category: domain.CategoryConcrete},
			{Name: "Кровля", Category: domain.CategoryRoofing},
			{Name: "Отделочные работы", Category: domain.CategoryFinishing},
			{Name: "Электроснабжение", Category: domain.CategoryElectrical},
			{Name: "Вентиляция и кондиционирование", Category: domain.CategoryHVAC},
		},
	},
	{
		name:        "Дорожные работы",
		description: "Устройство и реконструкция автомобильных дорог",
		category:    "roads",
		overhead:    10,
		profit:      7,
		sections: []domain.TemplateSection{
			{Name: "Подготовка территории", Category: domain.CategoryGeneral},
			{Name: "Земляное полотно", Category: domain.CategoryEarthworks, ItemCodes: []string{"ФЕР01-01-003-01"}},
			{Name: "Основания и покрытия", Category: domain.CategoryConcrete},
		},
	},
	{
		name:        "Инженерные сети",
		description: "Наружные сети водоснабжения, канализации и электроснабжения",
		category:    "utilities",
		overhead:    11,
		profit:      8,
		sections: []domain.TemplateSection{
			{Name: "Траншеи", Category: domain.CategoryEarthworks, ItemCodes: []string{"ФЕР01-02-057-02"}},
			{Name: "Трубопроводы", Category: domain.CategoryPlumbing, ItemCodes: []string{"ФЕР16-02-005-02"}},
			{Name: "Кабельные линии", Category: domain.CategoryElectrical, ItemCodes: []string{"ФЕРм08-02-412-01"}},
		},
	},
	{
		name:        "Капитальный ремонт",
		description: "Капитальный ремонт многоквартирного дома",
		category:    "repair",
		overhead:    13,
		profit:      8,
		sections: []domain.TemplateSection{
			{Name: "Ремонт кровли", Category: domain.CategoryRoofing},
			{Name: "Фасад", Category: domain.CategoryFinishing, ItemCodes: []string{"ГЭСН15-04-005-03"}},
			{Name: "Внутридомовые инженерные системы", Category: domain.CategoryPlumbing},
			{Name: "Электрооборудование", Category: domain.CategoryElectrical},
		},
	},
}

// vatRate is the VAT percentage applied to every default template.
var vatRate = decimal.NewFromInt(20)

// DefaultTemplates returns a fresh copy of the built-in estimate templates.
func DefaultTemplates() []domain.EstimateTemplate {
	out := make([]domain.EstimateTemplate, 0, len(defaultTemplates))
	for _, td := range defaultTemplates {
		sections := make([]domain.TemplateSection, len(td.sections))
		copy(sections, td.sections)

		out = append(out, domain.EstimateTemplate{
			ID:          domain.TemplateID(td.name),
			Name:        td.name,
			Description: td.description,
			Category:    td.category,
			Public:      true,
			Structure: domain.TemplateStructure{
				Currency:     "RUB",
				OverheadRate: decimal.NewFromInt(td.overhead),
				ProfitRate:   decimal.NewFromInt(td.profit),
				VATRate:      vatRate,
				Sections:     sections,
			},
		})
	}
	return out
}
