package usecase

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
)

// TurnaroundStandard is assumed when an order names no turnaround.
const TurnaroundStandard = "standard"

// Catalog holds unit prices for every selectable option.
type Catalog struct {
	PrintAreas  map[string]decimal.Decimal
	Products    map[string]bool
	ColorModes  map[string]decimal.Decimal
	CopyOptions map[string]decimal.Decimal
	DoubleSided decimal.Decimal
	Turnarounds map[string]decimal.Decimal
}

// DefaultCatalog returns the storefront price list.
func DefaultCatalog() Catalog {
	return Catalog{
		PrintAreas: map[string]decimal.Decimal{
			"front":        decimal.RequireFromString("5.00"),
			"back":         decimal.RequireFromString("5.00"),
			"left_sleeve":  decimal.RequireFromString("2.50"),
			"right_sleeve": decimal.RequireFromString("2.50"),
		},
		Products: map[string]bool{"tshirt": true, "hoodie": true, "hat": true, "mug": true},
		ColorModes: map[string]decimal.Decimal{
			"color": decimal.RequireFromString("0.50"),
			"bw":    decimal.RequireFromString("0.10"),
		},
		CopyOptions: map[string]decimal.Decimal{
			"stapling":   decimal.RequireFromString("0.10"),
			"hole_punch": decimal.RequireFromString("0.05"),
			"lamination": decimal.RequireFromString("1.00"),
			"cardstock":  decimal.RequireFromString("0.25"),
		},
		DoubleSided: decimal.RequireFromString("0.25"),
		Turnarounds: map[string]decimal.Decimal{
			TurnaroundStandard: decimal.Zero,
			"rush":             decimal.RequireFromString("4.00"),
			"same_day":         decimal.RequireFromString("10.00"),
		},
	}
}

// Price computes base = round(quantity * sum(units), 2) and total = round(base + turnaround, 2).
func Price(quantity int, units []decimal.Decimal, turnaround decimal.Decimal) model.Pricing {
	unit := decimal.Sum(decimal.Zero, units...)
	base := unit.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	return model.Pricing{
		UnitPrice:       unit.Round(2),
		BasePrice:       base,
		TurnaroundPrice: turnaround.Round(2),
		TotalPrice:      base.Add(turnaround).Round(2),
	}
}

// PriceTShirt prices an apparel order by its selected print areas.
func (c Catalog) PriceTShirt(quantity int, d model.TShirtDesign) (model.Pricing, error) {
	if len(d.PrintAreas) == 0 {
		return model.Pricing{}, domainErrors.Invalid("at least one print area is required")
	}
	units := make([]decimal.Decimal, 0, len(d.PrintAreas))
	seen := make(map[string]bool, len(d.PrintAreas))
	for _, area := range d.PrintAreas {
		price, ok := c.PrintAreas[area]
		if !ok {
			return model.Pricing{}, domainErrors.Invalid("unknown print area %q", area)
		}
		if seen[area] {
			return model.Pricing{}, domainErrors.Invalid("print area %q selected twice", area)
		}
		seen[area] = true
		units = append(units, price)
	}
	turnaround, err := c.turnaround(d.Turnaround)
	if err != nil {
		return model.Pricing{}, err
	}
	return Price(quantity, units, turnaround), nil
}

// PriceColorCopies prices a copy order per sheet.
func (c Catalog) PriceColorCopies(quantity int, d model.ColorCopiesDesign) (model.Pricing, error) {
	mode, ok := c.ColorModes[d.ColorMode]
	if !ok {
		return model.Pricing{}, domainErrors.Invalid("unknown color mode %q", d.ColorMode)
	}
	units := []decimal.Decimal{mode}
	if d.DoubleSided {
		units = append(units, c.DoubleSided)
	}
	for _, opt := range d.Options {
		price, ok := c.CopyOptions[opt]
		if !ok {
			return model.Pricing{}, domainErrors.Invalid("unknown copy option %q", opt)
		}
		units = append(units, price)
	}
	turnaround, err := c.turnaround(d.Turnaround)
	if err != nil {
		return model.Pricing{}, err
	}
	return Price(quantity, units, turnaround), nil
}

func (c Catalog) turnaround(name string) (decimal.Decimal, error) {
	if name == "" {
		name = TurnaroundStandard
	}
	price, ok := c.Turnarounds[name]
	if !ok {
		names := make([]string, 0, len(c.Turnarounds))
		for n := range c.Turnarounds {
			names = append(names, n)
		}
		slices.Sort(names)
		return decimal.Zero, domainErrors.Invalid("unknown turnaround %q, expected one of %s", name, strings.Join(names, ", "))
	}
	return price, nil
}
