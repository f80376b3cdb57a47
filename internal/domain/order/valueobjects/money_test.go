package valueobjects

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney_MinorUnits(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   int64
	}{
		{name: "whole dong", amount: "150000", want: 15000000},
		{name: "two decimals", amount: "99.99", want: 9999},
		{name: "fraction below minor unit is truncated", amount: "10.129", want: 1012},
		{name: "large order", amount: "123456789", want: 12345678900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMoney(decimal.RequireFromString(tt.amount), "")
			assert.Equal(t, tt.want, m.MinorUnits())
			assert.Equal(t, CurrencyVND, m.Currency())
		})
	}
}

func TestMoney_FromMinorUnitsRoundTrip(t *testing.T) {
	m := NewMoneyFromMinorUnits(15000000, CurrencyVND)
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(150000)))
	assert.Equal(t, int64(15000000), m.MinorUnits())
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoney(decimal.NewFromInt(100000), CurrencyVND)
	b := NewMoney(decimal.NewFromInt(50000), CurrencyVND)

	sum := a.Add(b)
	assert.True(t, sum.Equals(NewMoney(decimal.NewFromInt(150000), CurrencyVND)))
	assert.True(t, sum.IsPositive())
	assert.False(t, NewMoney(decimal.Zero, CurrencyVND).IsPositive())
	assert.Equal(t, "150000.00 VND", sum.String())
}

func TestOrderStatus(t *testing.T) {
	assert.True(t, OrderStatusAwaitingPayment.IsValid())
	assert.False(t, OrderStatus("refunded").IsValid())
	assert.True(t, OrderStatusPaymentFailed.CanStartPayment())
	assert.False(t, OrderStatusPaid.CanStartPayment())
	assert.True(t, OrderStatusPaid.IsPaid())
}
