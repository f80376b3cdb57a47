package vnpay

import (
	"crypto/hmac"
	"strings"
)

// Verifier checks callback signatures. It holds no state besides the secret
// and is safe for concurrent use.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// Verify recomputes the hash over the vnp_ fields of params, excluding
// vnp_SecureHash and vnp_SecureHashType, and compares it with the supplied
// vnp_SecureHash ignoring case. A missing hash fails.
func (v *Verifier) Verify(params map[string]string) bool {
	supplied := strings.ToUpper(strings.TrimSpace(params[paramSecureHash]))
	if supplied == "" {
		signatureMissing.Inc()
		return false
	}

	expected := secureHash(v.secret, canonicalString(signedFields(params)))
	if !hmac.Equal([]byte(expected), []byte(supplied)) {
		signatureInvalid.Inc()
		return false
	}

	signatureValid.Inc()
	return true
}
