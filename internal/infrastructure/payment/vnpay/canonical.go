// Package vnpay signs payment requests for the VNPay hosted payment page and
// verifies the callbacks it sends back.
//
// Both directions hash the same canonical string: vnp_ parameters sorted
// byte-wise by key and joined as key=value&key=value with raw, unencoded
// values. The hash is the uppercase hex HMAC-SHA512 of that string keyed with
// the merchant secret. The redirect URL on the other hand carries
// URL-encoded values; the two encodings must not be mixed up.
package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"sort"
	"strings"
)

const (
	paramPrefix         = "vnp_"
	paramSecureHash     = "vnp_SecureHash"
	paramSecureHashType = "vnp_SecureHashType"
)

// canonicalString joins params sorted by key as k=v pairs separated by &.
// Values are written verbatim.
func canonicalString(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}

// secureHash returns the uppercase hex HMAC-SHA512 of data keyed with secret.
func secureHash(secret, data string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(data))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}

// signedFields keeps the vnp_ fields a callback signature covers.
func signedFields(params map[string]string) map[string]string {
	fields := make(map[string]string, len(params))
	for k, v := range params {
		if !strings.HasPrefix(k, paramPrefix) || k == paramSecureHash || k == paramSecureHashType {
			continue
		}
		fields[k] = v
	}
	return fields
}
