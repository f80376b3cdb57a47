package vnpay

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bookstore-vn/bookstore/internal/application/payment/paymentgateway"
)

// callbackParams mirrors the fields VNPay appends to the return and IPN URLs.
type callbackParams struct {
	TxnRef            string `param:"vnp_TxnRef" validate:"required"`
	ResponseCode      string `param:"vnp_ResponseCode" validate:"required"`
	BankCode          string `param:"vnp_BankCode" validate:"required"`
	TransactionNo     string `param:"vnp_TransactionNo" validate:"required"`
	PayDate           string `param:"vnp_PayDate" validate:"required"`
	SecureHash        string `param:"vnp_SecureHash" validate:"required,hexadecimal"`
	Amount            string `param:"vnp_Amount" validate:"omitempty,number"`
	TransactionStatus string `param:"vnp_TransactionStatus"`
}

var callbackValidator = newCallbackValidator()

func newCallbackValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("param")
	})
	return v
}

func readCallbackParams(params map[string]string) callbackParams {
	get := func(k string) string { return strings.TrimSpace(params[k]) }
	return callbackParams{
		TxnRef:            get("vnp_TxnRef"),
		ResponseCode:      get("vnp_ResponseCode"),
		BankCode:          get("vnp_BankCode"),
		TransactionNo:     get("vnp_TransactionNo"),
		PayDate:           get("vnp_PayDate"),
		SecureHash:        get(paramSecureHash),
		Amount:            get("vnp_Amount"),
		TransactionStatus: get("vnp_TransactionStatus"),
	}
}

// ParseCallback extracts the typed callback. A missing required field yields
// paymentgateway.ErrMissingCallbackField; an unusable value yields
// paymentgateway.ErrMalformedCallback.
func ParseCallback(params map[string]string) (*paymentgateway.CallbackData, error) {
	p := readCallbackParams(params)

	if err := callbackValidator.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("%w: %v", paymentgateway.ErrMalformedCallback, err)
		}
		var missing, invalid []string
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				missing = append(missing, fe.Field())
			} else {
				invalid = append(invalid, fe.Field())
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: %s", paymentgateway.ErrMissingCallbackField, strings.Join(missing, ", "))
		}
		return nil, fmt.Errorf("%w: invalid %s", paymentgateway.ErrMalformedCallback, strings.Join(invalid, ", "))
	}

	orderID, err := strconv.ParseUint(p.TxnRef, 10, 0)
	if err != nil || orderID == 0 {
		return nil, fmt.Errorf("%w: vnp_TxnRef %q is not an order id", paymentgateway.ErrMalformedCallback, p.TxnRef)
	}

	data := &paymentgateway.CallbackData{
		OrderID:           uint(orderID),
		ResponseCode:      p.ResponseCode,
		TransactionStatus: p.TransactionStatus,
		BankCode:          p.BankCode,
		TransactionNo:     p.TransactionNo,
		PayDate:           p.PayDate,
		RawData:           signedFields(params),
	}

	if p.Amount != "" {
		amount, err := strconv.ParseInt(p.Amount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: vnp_Amount %q", paymentgateway.ErrMalformedCallback, p.Amount)
		}
		data.Amount = amount
		data.HasAmount = true
	}

	return data, nil
}
