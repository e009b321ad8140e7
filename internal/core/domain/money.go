package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the fixed number of fractional digits every monetary amount is
// kept at. Results of arithmetic are truncated (not rounded) to this scale;
// truncation is a deliberate policy so computed totals stay bit-compatible with
// the historical ledger data.
const MoneyScale = 4

var (
	ErrInvalidAmount    = errors.New("amount is not a valid decimal number")
	ErrInvalidCurrency  = errors.New("currency code must be exactly 3 characters")
	ErrCurrencyMismatch = errors.New("operands have different currencies")
	ErrDivisionByZero   = errors.New("division by zero")
)

// Money is an immutable fixed-point amount tagged with its currency.
// All monetary math in the ledger goes through this type; comparisons are
// exact decimal comparisons, never floating-point.
type Money struct {
	amount       decimal.Decimal
	currencyCode string
}

// NewMoney parses amount and builds a Money at MoneyScale (truncating).
func NewMoney(amount string, currencyCode string) (Money, error) {
	if len(currencyCode) != 3 {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, currencyCode)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	return Money{amount: d.Truncate(MoneyScale), currencyCode: currencyCode}, nil
}

// NewMoneyFromDecimal builds a Money from an already-parsed decimal, truncating to MoneyScale.
func NewMoneyFromDecimal(amount decimal.Decimal, currencyCode string) (Money, error) {
	if len(currencyCode) != 3 {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, currencyCode)
	}
	return Money{amount: amount.Truncate(MoneyScale), currencyCode: currencyCode}, nil
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currencyCode string) Money {
	return Money{amount: decimal.Zero, currencyCode: currencyCode}
}

// Amount returns the underlying decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// CurrencyCode returns the 3-letter currency code.
func (m Money) CurrencyCode() string {
	return m.currencyCode
}

// String renders the amount at full MoneyScale, e.g. "100.0000".
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

// Add returns m + other. Fails if currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if m.currencyCode != other.currencyCode {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.currencyCode, other.currencyCode)
	}
	return Money{amount: m.amount.Add(other.amount).Truncate(MoneyScale), currencyCode: m.currencyCode}, nil
}

// Sub returns m - other. Fails if currencies differ.
func (m Money) Sub(other Money) (Money, error) {
	if m.currencyCode != other.currencyCode {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.currencyCode, other.currencyCode)
	}
	return Money{amount: m.amount.Sub(other.amount).Truncate(MoneyScale), currencyCode: m.currencyCode}, nil
}

// Mul returns m * factor, truncated to MoneyScale.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor).Truncate(MoneyScale), currencyCode: m.currencyCode}
}

// Div returns m / divisor with an exact truncating quotient at MoneyScale.
// QuoRem is used instead of Div so no intermediate rounding can leak into the result.
func (m Money) Div(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, ErrDivisionByZero
	}
	q, _ := m.amount.QuoRem(divisor, MoneyScale)
	return Money{amount: q, currencyCode: m.currencyCode}, nil
}

// Neg returns the amount with its sign flipped.
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg(), currencyCode: m.currencyCode}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Equals reports whether amount and currency are both equal.
func (m Money) Equals(other Money) bool {
	return m.currencyCode == other.currencyCode && m.amount.Equal(other.amount)
}

type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// MarshalJSON renders the amount as a fixed-scale string so no reader ever
// sees a floating-point representation.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.String(), Currency: m.currencyCode})
}

// UnmarshalJSON parses the wire form produced by MarshalJSON.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewMoney(raw.Amount, raw.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
