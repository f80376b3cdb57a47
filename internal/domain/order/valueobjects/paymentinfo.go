package valueobjects

const PaymentMethodVNPay = "VNPAY"

// PaymentInfo is what the gateway reports for a settled transaction.
// PayDate is kept verbatim in the gateway's yyyyMMddHHmmss format.
type PaymentInfo struct {
	BankCode      string
	TransactionNo string
	PayDate       string
}
