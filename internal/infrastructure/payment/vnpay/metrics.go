package vnpay

import "github.com/VictoriaMetrics/metrics"

var (
	paymentURLsCreated = metrics.GetOrCreateCounter(`vnpay_payment_urls_total`)
	signatureValid     = metrics.GetOrCreateCounter(`vnpay_signature_checks_total{result="valid"}`)
	signatureInvalid   = metrics.GetOrCreateCounter(`vnpay_signature_checks_total{result="invalid"}`)
	signatureMissing   = metrics.GetOrCreateCounter(`vnpay_signature_checks_total{result="missing"}`)
)
