package paymentgateway

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrMissingCallbackField is returned by ParseCallback when a required field is absent.
	// Callers treat it like a signature failure.
	ErrMissingCallbackField = errors.New("callback field missing")
	// ErrMalformedCallback is returned when a field is present but unusable, such as a non-numeric order reference.
	ErrMalformedCallback = errors.New("malformed callback")
)

// PaymentGateway defines the hosted payment page integration.
type PaymentGateway interface {
	// CreatePaymentURL returns the signed redirect URL for the order.
	CreatePaymentURL(ctx context.Context, req CreatePaymentRequest) (string, error)
	// VerifyCallback reports whether the callback signature is valid. It has no side effects.
	VerifyCallback(params map[string]string) bool
	// ParseCallback extracts the typed callback fields. Only meaningful after VerifyCallback.
	ParseCallback(params map[string]string) (*CallbackData, error)
}

// CreatePaymentRequest contains the data needed to sign a payment request.
type CreatePaymentRequest struct {
	OrderID uint
	Amount  decimal.Decimal // major units; the gateway multiplies by 100
	Client  ClientInfo
}

// ClientInfo describes the shopper's HTTP request. Scheme and Host resolve a
// relative return URL.
type ClientInfo struct {
	IP     string
	Scheme string
	Host   string
}

// CallbackData is the parsed gateway callback. Amount is in the gateway's
// minor units (major ×100) and is only meaningful when HasAmount is set.
type CallbackData struct {
	OrderID           uint
	ResponseCode      string
	TransactionStatus string
	BankCode          string
	TransactionNo     string
	PayDate           string
	Amount            int64
	HasAmount         bool
	RawData           map[string]string
}

const ResponseCodeSuccess = "00"

// IsSuccess reports whether the gateway settled the payment. When the gateway
// also sends a transaction status it must agree.
func (c *CallbackData) IsSuccess() bool {
	if c.ResponseCode != ResponseCodeSuccess {
		return false
	}
	return c.TransactionStatus == "" || c.TransactionStatus == ResponseCodeSuccess
}
