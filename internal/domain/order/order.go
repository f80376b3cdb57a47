package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/bookstore-vn/bookstore/internal/domain/order/valueobjects"
	"github.com/bookstore-vn/bookstore/internal/shared/biztime"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderAlreadyPaid = errors.New("order already paid")
	// ErrOrderNotPayable is returned when a settlement targets an order that
	// never started a payment.
	ErrOrderNotPayable = errors.New("order is not awaiting payment")
)

// Customer holds the contact details captured at checkout.
type Customer struct {
	Name         string
	Email        string
	MobileNumber string
	Address      string
}

// Item is a cart line frozen into the order at checkout.
type Item struct {
	BookID    uint
	Title     string
	Quantity  int
	UnitPrice vo.Money
}

func (i Item) Subtotal() vo.Money {
	return vo.NewMoney(i.UnitPrice.Amount().Mul(decimal.NewFromInt(int64(i.Quantity))), i.UnitPrice.Currency())
}

type Order struct {
	id            uint
	userID        string
	customer      Customer
	items         []Item
	totalAmount   vo.Money
	status        vo.OrderStatus
	isPaid        bool
	paymentMethod string
	payment       *vo.PaymentInfo
	failureCode   string
	paidAt        *time.Time
	metadata      map[string]interface{}
	createdAt     time.Time
	updatedAt     time.Time
}

func NewOrder(userID string, customer Customer, items []Item) (*Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if customer.Name == "" || customer.Email == "" {
		return nil, fmt.Errorf("customer name and email are required")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	total := vo.NewMoney(decimal.Zero, vo.CurrencyVND)
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item %d has invalid quantity %d", item.BookID, item.Quantity)
		}
		total = total.Add(item.Subtotal())
	}
	if total.MinorUnits() <= 0 {
		return nil, fmt.Errorf("order total must be positive")
	}

	now := biztime.NowUTC()
	return &Order{
		userID:        userID,
		customer:      customer,
		items:         items,
		totalAmount:   total,
		status:        vo.OrderStatusCreated,
		paymentMethod: vo.PaymentMethodVNPay,
		metadata:      make(map[string]interface{}),
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// AwaitPayment moves the order to AwaitingPayment before a payment URL is issued.
// An order whose previous attempt failed may start a new one.
func (o *Order) AwaitPayment() error {
	if o.isPaid {
		return ErrOrderAlreadyPaid
	}
	if !o.status.CanStartPayment() {
		return fmt.Errorf("cannot start payment for order with status %s", o.status)
	}
	if o.status == vo.OrderStatusAwaitingPayment {
		return nil
	}

	o.status = vo.OrderStatusAwaitingPayment
	o.failureCode = ""
	o.updatedAt = biztime.NowUTC()
	return nil
}

// MarkAsPaid records a successful gateway settlement. It reports false without
// touching the order when the order is already paid.
func (o *Order) MarkAsPaid(info vo.PaymentInfo) (bool, error) {
	if o.isPaid {
		return false, nil
	}
	if !o.status.CanSettle() {
		return false, fmt.Errorf("cannot mark order as paid with status %s", o.status)
	}

	now := biztime.NowUTC()
	o.status = vo.OrderStatusPaid
	o.isPaid = true
	o.paymentMethod = vo.PaymentMethodVNPay
	o.payment = &info
	o.failureCode = ""
	o.paidAt = &now
	o.updatedAt = now
	return true, nil
}

// MarkPaymentFailed records a declined or cancelled attempt.
func (o *Order) MarkPaymentFailed(responseCode string) error {
	if o.isPaid {
		return ErrOrderAlreadyPaid
	}
	if !o.status.CanSettle() {
		return fmt.Errorf("cannot mark payment failed with status %s", o.status)
	}

	o.status = vo.OrderStatusPaymentFailed
	o.failureCode = responseCode
	o.updatedAt = biztime.NowUTC()
	return nil
}

// ValidateCallbackAmount checks a gateway amount (major units ×100) against the order total.
func (o *Order) ValidateCallbackAmount(minorUnits int64) error {
	if expected := o.totalAmount.MinorUnits(); expected != minorUnits {
		return fmt.Errorf("amount mismatch: expected %d, got %d", expected, minorUnits)
	}
	return nil
}

func (o *Order) IsOwnedBy(userID string) bool {
	return o.userID == userID
}

func (o *Order) SetMetadata(key string, value interface{}) {
	if o.metadata == nil {
		o.metadata = make(map[string]interface{})
	}
	o.metadata[key] = value
	o.updatedAt = biztime.NowUTC()
}

// SetID sets the order ID after persistence.
func (o *Order) SetID(id uint) {
	o.id = id
}

func (o *Order) ID() uint                         { return o.id }
func (o *Order) UserID() string                   { return o.userID }
func (o *Order) Customer() Customer               { return o.customer }
func (o *Order) Items() []Item                    { return o.items }
func (o *Order) TotalAmount() vo.Money            { return o.totalAmount }
func (o *Order) Status() vo.OrderStatus           { return o.status }
func (o *Order) IsPaid() bool                     { return o.isPaid }
func (o *Order) PaymentMethod() string            { return o.paymentMethod }
func (o *Order) Payment() *vo.PaymentInfo         { return o.payment }
func (o *Order) FailureCode() string              { return o.failureCode }
func (o *Order) PaidAt() *time.Time               { return o.paidAt }
func (o *Order) Metadata() map[string]interface{} { return o.metadata }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }
func (o *Order) UpdatedAt() time.Time             { return o.updatedAt }

// OrderReconstructParams carries persisted state back into an Order.
type OrderReconstructParams struct {
	ID            uint
	UserID        string
	Customer      Customer
	Items         []Item
	TotalAmount   vo.Money
	Status        vo.OrderStatus
	IsPaid        bool
	PaymentMethod string
	Payment       *vo.PaymentInfo
	FailureCode   string
	PaidAt        *time.Time
	Metadata      map[string]interface{}
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func ReconstructOrder(p OrderReconstructParams) *Order {
	metadata := p.Metadata
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return &Order{
		id:            p.ID,
		userID:        p.UserID,
		customer:      p.Customer,
		items:         p.Items,
		totalAmount:   p.TotalAmount,
		status:        p.Status,
		isPaid:        p.IsPaid,
		paymentMethod: p.PaymentMethod,
		payment:       p.Payment,
		failureCode:   p.FailureCode,
		paidAt:        p.PaidAt,
		metadata:      metadata,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}
}
