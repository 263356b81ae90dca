//go:build unit

package booking_test

import (
	"testing"

	"tourbook/internal/domain/booking"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/pkg/patch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGuests(t *testing.T) {
	tests := []struct {
		name                      string
		adults, children, infants int
		wantTotal                 int
		wantErr                   bool
	}{
		{name: "adults only", adults: 2, wantTotal: 2},
		{name: "infants count towards the total", adults: 1, children: 1, infants: 1, wantTotal: 3},
		{name: "single child", children: 1, wantTotal: 1},
		{name: "empty party", wantErr: true},
		{name: "negative count", adults: 3, children: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := booking.NewGuests(tt.adults, tt.children, tt.infants)
			if tt.wantErr {
				assert.True(t, errs.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, g.Total())
		})
	}
}

func TestCalculatePricing(t *testing.T) {
	tests := []struct {
		name    string
		in      booking.PriceInput
		want    booking.Pricing
		wantErr bool
	}{
		{
			name: "base price times adults",
			in:   booking.PriceInput{UnitPriceCents: 4500, Adults: 2},
			want: booking.Pricing{SubtotalCents: 9000, TotalCents: 9000, Currency: "USD"},
		},
		{
			name: "discount and tax",
			in: booking.PriceInput{
				UnitPriceCents: 4500, Adults: 2, Currency: "eur",
				DiscountCents: patch.Ptr(int64(1000)), TaxCents: patch.Ptr(int64(400)),
			},
			want: booking.Pricing{SubtotalCents: 9000, DiscountCents: 1000, TaxCents: 400, TotalCents: 8400, Currency: "EUR"},
		},
		{
			name: "explicit subtotal and total win",
			in: booking.PriceInput{
				UnitPriceCents: 4500, Adults: 2,
				SubtotalCents: patch.Ptr(int64(5000)), TotalCents: patch.Ptr(int64(4000)),
			},
			want: booking.Pricing{SubtotalCents: 5000, TotalCents: 4000, Currency: "USD"},
		},
		{
			name:    "discount larger than subtotal",
			in:      booking.PriceInput{UnitPriceCents: 1000, Adults: 1, DiscountCents: patch.Ptr(int64(2000))},
			wantErr: true,
		},
		{
			name:    "negative tax",
			in:      booking.PriceInput{UnitPriceCents: 1000, Adults: 1, TaxCents: patch.Ptr(int64(-1))},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := booking.CalculatePricing(tt.in)
			if tt.wantErr {
				assert.True(t, errs.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := booking.ParseStatus("no_show")
	require.NoError(t, err)
	assert.True(t, s.IsTerminal())
	assert.False(t, s.HoldsCapacity())

	_, err = booking.ParseStatus("archived")
	assert.True(t, errs.IsValidation(err))

	_, err = booking.ParsePaymentStatus("overdue")
	assert.True(t, errs.IsValidation(err))
}
