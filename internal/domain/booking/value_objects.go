package booking

import (
	"strings"

	"tourbook/internal/pkg/errs"
)

const defaultCurrency = "USD"

// Guests is the party size. Infants count towards capacity like everyone else.
type Guests struct {
	Adults   int
	Children int
	Infants  int
}

func NewGuests(adults, children, infants int) (Guests, error) {
	if adults < 0 || children < 0 || infants < 0 {
		return Guests{}, errs.Validation("Guest counts cannot be negative")
	}
	g := Guests{Adults: adults, Children: children, Infants: infants}
	if g.Total() < 1 {
		return Guests{}, errs.Validation("At least one guest is required")
	}
	return g, nil
}

func (g Guests) Total() int {
	return g.Adults + g.Children + g.Infants
}

type Pricing struct {
	SubtotalCents int64
	DiscountCents int64
	TaxCents      int64
	TotalCents    int64
	Currency      string
}

// PriceInput carries the unit price and any amounts the caller set explicitly.
type PriceInput struct {
	UnitPriceCents int64
	Adults         int
	Currency       string
	SubtotalCents  *int64
	DiscountCents  *int64
	TaxCents       *int64
	TotalCents     *int64
}

// CalculatePricing defaults the subtotal to unit price times adults and the
// total to subtotal minus discount plus tax. Explicit amounts win.
func CalculatePricing(in PriceInput) (Pricing, error) {
	p := Pricing{
		SubtotalCents: in.UnitPriceCents * int64(in.Adults),
		Currency:      strings.ToUpper(strings.TrimSpace(in.Currency)),
	}
	if p.Currency == "" {
		p.Currency = defaultCurrency
	}
	if in.SubtotalCents != nil {
		p.SubtotalCents = *in.SubtotalCents
	}
	if in.DiscountCents != nil {
		p.DiscountCents = *in.DiscountCents
	}
	if in.TaxCents != nil {
		p.TaxCents = *in.TaxCents
	}
	p.TotalCents = p.SubtotalCents - p.DiscountCents + p.TaxCents
	if in.TotalCents != nil {
		p.TotalCents = *in.TotalCents
	}

	if p.SubtotalCents < 0 || p.DiscountCents < 0 || p.TaxCents < 0 {
		return Pricing{}, errs.Validation("Price amounts cannot be negative")
	}
	if p.TotalCents < 0 {
		return Pricing{}, errs.Validation("Total cannot be negative")
	}
	return p, nil
}
