package valueobjects

type OrderStatus string

const (
	OrderStatusCreated         OrderStatus = "created"
	OrderStatusAwaitingPayment OrderStatus = "awaiting_payment"
	OrderStatusPaid            OrderStatus = "paid"
	OrderStatusPaymentFailed   OrderStatus = "payment_failed"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusAwaitingPayment, OrderStatusPaid, OrderStatusPaymentFailed:
		return true
	default:
		return false
	}
}

func (s OrderStatus) IsPaid() bool {
	return s == OrderStatusPaid
}

// CanStartPayment reports whether a payment URL may be issued for the order.
func (s OrderStatus) CanStartPayment() bool {
	return s == OrderStatusCreated || s == OrderStatusAwaitingPayment || s == OrderStatusPaymentFailed
}

// CanSettle reports whether a gateway result may be applied to the order.
func (s OrderStatus) CanSettle() bool {
	return s == OrderStatusAwaitingPayment || s == OrderStatusPaymentFailed
}

// SettleableStatuses lists the stored statuses CanSettle accepts.
func SettleableStatuses() []string {
	return []string{OrderStatusAwaitingPayment.String(), OrderStatusPaymentFailed.String()}
}

func (s OrderStatus) String() string {
	return string(s)
}
