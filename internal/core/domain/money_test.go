package domain_test

import (
	"testing"

	"github.com/acmeerp/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
		wantErr  error
	}{
		{
			name:     "plain amount",
			amount:   "100",
			currency: "USD",
			want:     "100.0000",
		},
		{
			name:     "truncates beyond scale, never rounds",
			amount:   "10.99999",
			currency: "USD",
			want:     "10.9999",
		},
		{
			name:     "negative amount",
			amount:   "-42.5",
			currency: "EUR",
			want:     "-42.5000",
		},
		{
			name:     "not numeric",
			amount:   "abc",
			currency: "USD",
			wantErr:  domain.ErrInvalidAmount,
		},
		{
			name:     "currency too short",
			amount:   "1",
			currency: "US",
			wantErr:  domain.ErrInvalidCurrency,
		},
		{
			name:     "currency too long",
			amount:   "1",
			currency: "USDT",
			wantErr:  domain.ErrInvalidCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NewMoney(tt.amount, tt.currency)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.currency, got.CurrencyCode())
		})
	}
}

func TestMoney_AddSub(t *testing.T) {
	usd100 := mustMoney(t, "100.0000", "USD")
	usd25 := mustMoney(t, "25.1234", "USD")
	eur10 := mustMoney(t, "10.0000", "EUR")

	sum, err := usd100.Add(usd25)
	require.NoError(t, err)
	assert.Equal(t, "125.1234", sum.String())

	diff, err := usd100.Sub(usd25)
	require.NoError(t, err)
	assert.Equal(t, "74.8766", diff.String())

	_, err = usd100.Add(eur10)
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)

	_, err = usd100.Sub(eur10)
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)

	// operands are untouched
	assert.Equal(t, "100.0000", usd100.String())
}

func TestMoney_Mul(t *testing.T) {
	m := mustMoney(t, "10.0001", "USD")
	got := m.Mul(decimal.RequireFromString("3"))
	assert.Equal(t, "30.0003", got.String())

	// 0.0001 * 0.5 = 0.00005, truncated to zero
	tiny := mustMoney(t, "0.0001", "USD")
	assert.Equal(t, "0.0000", tiny.Mul(decimal.RequireFromString("0.5")).String())
}

func TestMoney_Div(t *testing.T) {
	m := mustMoney(t, "100.0000", "USD")

	q, err := m.Div(decimal.RequireFromString("3"))
	require.NoError(t, err)
	// exact truncation: 33.3333..., not 33.3334
	assert.Equal(t, "33.3333", q.String())

	_, err = m.Div(decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrDivisionByZero)
}

func TestMoney_Comparisons(t *testing.T) {
	zero := domain.ZeroMoney("USD")
	pos := mustMoney(t, "0.0001", "USD")
	neg := mustMoney(t, "-0.0001", "USD")

	assert.True(t, zero.IsZero())
	assert.False(t, zero.IsPositive())
	assert.True(t, pos.IsPositive())
	assert.False(t, neg.IsPositive())

	a := mustMoney(t, "1.5", "USD")
	b := mustMoney(t, "1.5000", "USD")
	c := mustMoney(t, "1.5", "EUR")
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))

	assert.Equal(t, "0.0001", neg.Neg().String())
}

func mustMoney(t *testing.T, amount, currency string) domain.Money {
	t.Helper()
	m, err := domain.NewMoney(amount, currency)
	require.NoError(t, err)
	return m
}
