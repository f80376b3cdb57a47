package vnpay

import (
	"context"

	"github.com/bookstore-vn/bookstore/internal/application/payment/paymentgateway"
	"github.com/bookstore-vn/bookstore/internal/shared/config"
)

var _ paymentgateway.PaymentGateway = (*Gateway)(nil)

// Gateway adapts Signer and Verifier to paymentgateway.PaymentGateway.
type Gateway struct {
	signer   *Signer
	verifier *Verifier
}

func NewGateway(cfg config.VNPayConfig, opts ...SignerOption) *Gateway {
	return &Gateway{
		signer:   NewSigner(cfg, opts...),
		verifier: NewVerifier(cfg.HashSecret),
	}
}

func (g *Gateway) CreatePaymentURL(_ context.Context, req paymentgateway.CreatePaymentRequest) (string, error) {
	return g.signer.CreatePaymentURL(req.OrderID, req.Amount, req.Client)
}

func (g *Gateway) VerifyCallback(params map[string]string) bool {
	return g.verifier.Verify(params)
}

func (g *Gateway) ParseCallback(params map[string]string) (*paymentgateway.CallbackData, error) {
	return ParseCallback(params)
}
