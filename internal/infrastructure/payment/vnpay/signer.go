package vnpay

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookstore-vn/bookstore/internal/application/payment/paymentgateway"
	"github.com/bookstore-vn/bookstore/internal/shared/biztime"
	"github.com/bookstore-vn/bookstore/internal/shared/config"
)

const (
	Version        = "2.1.0"
	CommandPay     = "pay"
	CurrencyCode   = "VND"
	OrderTypeOther = "other"
	DefaultLocale  = "vn"
	DefaultIP      = "127.0.0.1"

	// DateLayout is the yyyyMMddHHmmss format of vnp_CreateDate and vnp_PayDate.
	DateLayout = "20060102150405"

	defaultOrderInfoPrefix = "Thanh toan don hang"
)

var hundred = decimal.NewFromInt(100)

// Signer builds signed redirect URLs for the hosted payment page.
type Signer struct {
	cfg             config.VNPayConfig
	orderInfoPrefix string
	now             func() time.Time
}

type SignerOption func(*Signer)

// WithClock replaces time.Now. vnp_CreateDate is rendered in the business timezone.
func WithClock(now func() time.Time) SignerOption {
	return func(s *Signer) {
		s.now = now
	}
}

func NewSigner(cfg config.VNPayConfig, opts ...SignerOption) *Signer {
	prefix := asciiOrderInfo(cfg.OrderInfoPrefix)
	if prefix == "" {
		prefix = defaultOrderInfoPrefix
	}
	if cfg.Locale == "" {
		cfg.Locale = DefaultLocale
	}

	s := &Signer{cfg: cfg, orderInfoPrefix: prefix, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePaymentURL returns base URL + encoded parameters + &vnp_SecureHash=<hash>.
func (s *Signer) CreatePaymentURL(orderID uint, amount decimal.Decimal, client paymentgateway.ClientInfo) (string, error) {
	params, err := s.buildParams(orderID, amount, client)
	if err != nil {
		return "", err
	}

	hash := secureHash(s.cfg.HashSecret, canonicalString(params))

	separator := "?"
	if strings.Contains(s.cfg.URL, "?") {
		separator = "&"
	}

	paymentURLsCreated.Inc()
	return s.cfg.URL + separator + encodeQuery(params) + "&" + paramSecureHash + "=" + hash, nil
}

func (s *Signer) buildParams(orderID uint, amount decimal.Decimal, client paymentgateway.ClientInfo) (map[string]string, error) {
	if orderID == 0 {
		return nil, errors.New("order ID is required")
	}
	minor := amount.Mul(hundred).Truncate(0).IntPart()
	if minor <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %s", amount.String())
	}

	returnURL, err := s.resolveReturnURL(client)
	if err != nil {
		return nil, err
	}

	ip := client.IP
	if ip == "" {
		ip = DefaultIP
	}

	txnRef := strconv.FormatUint(uint64(orderID), 10)
	return map[string]string{
		"vnp_Version":    Version,
		"vnp_Command":    CommandPay,
		"vnp_TmnCode":    s.cfg.TmnCode,
		"vnp_Amount":     strconv.FormatInt(minor, 10),
		"vnp_CreateDate": s.now().In(biztime.Location()).Format(DateLayout),
		"vnp_CurrCode":   CurrencyCode,
		"vnp_IpAddr":     ip,
		"vnp_Locale":     s.cfg.Locale,
		"vnp_OrderInfo":  s.orderInfoPrefix + " " + txnRef,
		"vnp_OrderType":  OrderTypeOther,
		"vnp_ReturnUrl":  returnURL,
		"vnp_TxnRef":     txnRef,
	}, nil
}

// resolveReturnURL turns a path-only return URL into an absolute one using
// the scheme and host the shopper reached us on.
func (s *Signer) resolveReturnURL(client paymentgateway.ClientInfo) (string, error) {
	if !strings.HasPrefix(s.cfg.ReturnURL, "/") {
		return s.cfg.ReturnURL, nil
	}
	if client.Host == "" {
		return "", errors.New("relative return url needs the request host")
	}
	scheme := client.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return scheme + "://" + client.Host + s.cfg.ReturnURL, nil
}

// encodeQuery percent-encodes params sorted by key, with spaces as %20.
func encodeQuery(params map[string]string) string {
	values := make(url.Values, len(params))
	for k, v := range params {
		values.Set(k, v)
	}
	return strings.ReplaceAll(values.Encode(), "+", "%20")
}
