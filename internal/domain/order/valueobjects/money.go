package valueobjects

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const CurrencyVND = "VND"

var hundred = decimal.NewFromInt(100)

// Money is an amount in major units of its currency.
type Money struct {
	amount   decimal.Decimal
	currency string
}

func NewMoney(amount decimal.Decimal, currency string) Money {
	if currency == "" {
		currency = CurrencyVND
	}
	return Money{amount: amount, currency: currency}
}

// NewMoneyFromMinorUnits builds Money from a gateway amount (major units ×100).
func NewMoneyFromMinorUnits(minor int64, currency string) Money {
	return NewMoney(decimal.New(minor, -2), currency)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

// MinorUnits returns the amount ×100 with any remaining fraction truncated,
// which is the integer VNPay expects in vnp_Amount.
func (m Money) MinorUnits() int64 {
	return m.amount.Mul(hundred).Truncate(0).IntPart()
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount) && m.currency == other.currency
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}
