package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	cartdto "github.com/bookstore-vn/bookstore/internal/application/cart/dto"
	orderdto "github.com/bookstore-vn/bookstore/internal/application/order/dto"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/config"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/migration"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/payment/vnpay"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/persistence/models"
	"github.com/bookstore-vn/bookstore/internal/interfaces/http/handlers"
	"github.com/bookstore-vn/bookstore/internal/interfaces/http/handlers/testutil"
	sharedConfig "github.com/bookstore-vn/bookstore/internal/shared/config"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
)

const e2eSecret = "BOOKSTORESANDBOXSECRET"

type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migration.NewAutoMigrateStrategy(logger.NewNopLogger()).Migrate(gdb))

	cfg := &config.Config{
		VNPay: sharedConfig.VNPayConfig{
			URL:             "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
			TmnCode:         "BOOKS001",
			HashSecret:      e2eSecret,
			ReturnURL:       "/payments/vnpay/return",
			Locale:          "vn",
			OrderInfoPrefix: "Thanh toán đơn hàng",
		},
		Metrics: sharedConfig.MetricsConfig{Enabled: true},
	}

	fixed := time.Date(2024, 3, 1, 17, 30, 0, 0, time.UTC)
	c := NewContainer(gdb, cfg, logger.NewNopLogger(), WithSignerOptions(vnpay.WithClock(func() time.Time { return fixed })))
	c.SetupRoutes()

	return &testServer{engine: c.Engine(), db: gdb}
}

func (s *testServer) do(t *testing.T, method, target, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// vnpaySign signs params the way the VNPay sandbox does.
func vnpaySign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}

	mac := hmac.New(sha512.New, []byte(e2eSecret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}

// gatewayCallback builds the query VNPay appends to the return URL for a payment URL.
func gatewayCallback(t *testing.T, paymentURL, responseCode string) map[string]string {
	t.Helper()
	u, err := url.Parse(paymentURL)
	require.NoError(t, err)
	q := u.Query()

	params := map[string]string{
		"vnp_Amount":            q.Get("vnp_Amount"),
		"vnp_BankCode":          "NCB",
		"vnp_BankTranNo":        "VNP14226112",
		"vnp_CardType":          "ATM",
		"vnp_OrderInfo":         q.Get("vnp_OrderInfo"),
		"vnp_PayDate":           "20240302003512",
		"vnp_ResponseCode":      responseCode,
		"vnp_TmnCode":           q.Get("vnp_TmnCode"),
		"vnp_TransactionNo":     "14226112",
		"vnp_TransactionStatus": responseCode,
		"vnp_TxnRef":            q.Get("vnp_TxnRef"),
	}
	params["vnp_SecureHash"] = vnpaySign(params)
	return params
}

func encodeQuery(params map[string]string) string {
	v := url.Values{}
	for k, val := range params {
		v.Set(k, val)
	}
	return v.Encode()
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NoError(t, json.Unmarshal(resp.Data, target))
}

func seedCatalogBook(t *testing.T, gdb *gorm.DB, price int64) uint {
	b := &models.BookModel{Title: "Cho tôi xin một vé đi tuổi thơ", Author: "Nguyễn Nhật Ánh", Price: decimal.NewFromInt(price)}
	require.NoError(t, gdb.Create(b).Error)
	return b.ID
}

func checkout(t *testing.T, s *testServer, userID string, bookID uint, quantity int) handlers.CheckoutResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/cart/items", userID, handlers.AddCartItemRequest{BookID: bookID, Quantity: quantity})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/checkout/vnpay", userID, handlers.CheckoutRequest{
		Name:         "Nguyễn Văn An",
		Email:        "an@example.vn",
		MobileNumber: "0901234567",
		Address:      "12 Lê Lợi, Quận 1, TP.HCM",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res handlers.CheckoutResponse
	decodeData(t, w, &res)
	return res
}

func TestCheckoutAndVNPayReturn_EndToEnd(t *testing.T) {
	s := newTestServer(t)
	bookID := seedCatalogBook(t, s.db, 75000)

	res := checkout(t, s, "user-1", bookID, 2)
	assert.Equal(t, "150000", res.TotalAmount)
	assert.True(t, strings.HasPrefix(res.PaymentURL, "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?"))
	assert.Contains(t, res.PaymentURL, "vnp_Amount=15000000")
	assert.Contains(t, res.PaymentURL, fmt.Sprintf("vnp_TxnRef=%d", res.OrderID))
	assert.Contains(t, res.PaymentURL, "vnp_CreateDate=20240302003000")

	params := gatewayCallback(t, res.PaymentURL, "00")
	w := s.do(t, http.MethodGet, "/payments/vnpay/return?"+encodeQuery(params), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cb handlers.CallbackResponse
	decodeData(t, w, &cb)
	assert.Equal(t, "paid", cb.Outcome)
	require.NotNil(t, cb.Order)
	assert.True(t, cb.Order.IsPaid)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/orders/%d", res.OrderID), "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var o orderdto.OrderDTO
	decodeData(t, w, &o)
	assert.Equal(t, "paid", o.Status)
	assert.True(t, o.IsPaid)
	assert.Equal(t, "150000", o.TotalAmount)
	assert.Equal(t, "VNPAY", o.PaymentMethod)
	require.NotNil(t, o.Payment)
	assert.Equal(t, "NCB", o.Payment.BankCode)
	assert.Equal(t, "14226112", o.Payment.TransactionNo)

	var cartRows int64
	require.NoError(t, s.db.Model(&models.CartItemModel{}).Where("user_id = ?", "user-1").Count(&cartRows).Error)
	assert.Zero(t, cartRows)

	// VNPay's IPN for the same payment arrives after the return.
	w = s.do(t, http.MethodGet, "/payments/vnpay/ipn?"+encodeQuery(params), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ipn handlers.IPNResponse
	require.NoError(t, testutil.ParseResponse(w, &ipn))
	assert.Equal(t, "02", ipn.RspCode)
}

func TestVNPayReturn_DeclinedPaymentCanBeRetried(t *testing.T) {
	s := newTestServer(t)
	bookID := seedCatalogBook(t, s.db, 150000)
	res := checkout(t, s, "user-2", bookID, 1)

	w := s.do(t, http.MethodGet, "/payments/vnpay/return?"+encodeQuery(gatewayCallback(t, res.PaymentURL, "24")), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cb handlers.CallbackResponse
	decodeData(t, w, &cb)
	assert.Equal(t, "payment_failed", cb.Outcome)
	require.NotNil(t, cb.Order)
	assert.False(t, cb.Order.IsPaid)
	assert.Equal(t, "payment_failed", cb.Order.Status)

	// The cart survives a declined payment.
	var cartRows int64
	require.NoError(t, s.db.Model(&models.CartItemModel{}).Where("user_id = ?", "user-2").Count(&cartRows).Error)
	assert.Equal(t, int64(1), cartRows)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/payments/vnpay/pay/%d", res.OrderID), "user-2", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "vnp_Amount=15000000")
}

func TestVNPayPay_OnlyOwnerCanRetry(t *testing.T) {
	s := newTestServer(t)
	bookID := seedCatalogBook(t, s.db, 150000)
	res := checkout(t, s, "user-1", bookID, 1)

	w := s.do(t, http.MethodGet, "/payments/vnpay/return?"+encodeQuery(gatewayCallback(t, res.PaymentURL, "24")), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	payPath := fmt.Sprintf("/payments/vnpay/pay/%d", res.OrderID)

	w = s.do(t, http.MethodGet, payPath, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Header().Get("Location"))

	w = s.do(t, http.MethodGet, payPath, "user-2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Header().Get("Location"))

	w = s.do(t, http.MethodGet, fmt.Sprintf("/orders/%d", res.OrderID), "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var o orderdto.OrderDTO
	decodeData(t, w, &o)
	assert.Equal(t, "payment_failed", o.Status)
	assert.Equal(t, "24", o.FailureCode)
}

func TestVNPayReturn_RejectsForgedCallbacks(t *testing.T) {
	s := newTestServer(t)
	bookID := seedCatalogBook(t, s.db, 150000)
	res := checkout(t, s, "user-3", bookID, 1)

	tampered := gatewayCallback(t, res.PaymentURL, "00")
	tampered["vnp_Amount"] = "100"

	missing := gatewayCallback(t, res.PaymentURL, "00")
	delete(missing, "vnp_SecureHash")

	for name, params := range map[string]map[string]string{"tampered": tampered, "unsigned": missing} {
		t.Run(name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/payments/vnpay/return?"+encodeQuery(params), "", nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			w = s.do(t, http.MethodGet, "/payments/vnpay/ipn?"+encodeQuery(params), "", nil)
			var ipn handlers.IPNResponse
			require.NoError(t, testutil.ParseResponse(w, &ipn))
			assert.Equal(t, "97", ipn.RspCode)
		})
	}

	w := s.do(t, http.MethodGet, fmt.Sprintf("/orders/%d", res.OrderID), "user-3", nil)
	var o orderdto.OrderDTO
	decodeData(t, w, &o)
	assert.False(t, o.IsPaid)
	assert.Equal(t, "awaiting_payment", o.Status)
}

func TestCartRemovalAndOrderHistory(t *testing.T) {
	s := newTestServer(t)
	kept := seedCatalogBook(t, s.db, 75000)
	dropped := seedCatalogBook(t, s.db, 40000)

	w := s.do(t, http.MethodPost, "/cart/items", "user-4", handlers.AddCartItemRequest{BookID: dropped, Quantity: 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/cart/items/%d", dropped), "user-4", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var c cartdto.CartDTO
	decodeData(t, w, &c)
	assert.Empty(t, c.Items)
	assert.Zero(t, c.ItemCount)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/cart/items/%d", dropped), "user-4", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Checkout charges only what is left in the cart.
	res := checkout(t, s, "user-4", kept, 2)
	assert.Equal(t, "150000", res.TotalAmount)

	w = s.do(t, http.MethodGet, "/orders", "user-4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []orderdto.OrderDTO
	decodeData(t, w, &history)
	require.Len(t, history, 1)
	assert.Equal(t, res.OrderID, history[0].ID)
	assert.Equal(t, "awaiting_payment", history[0].Status)

	w = s.do(t, http.MethodGet, "/orders", "user-5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var empty []orderdto.OrderDTO
	decodeData(t, w, &empty)
	assert.Empty(t, empty)
}

func TestRoutes_RequireUserIdentity(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{"/cart", "/orders", "/orders/1", "/payments/vnpay/pay/1"} {
		w := s.do(t, http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}
	w := s.do(t, http.MethodPost, "/checkout/vnpay", "", handlers.CheckoutRequest{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(t, http.MethodDelete, "/cart/items/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
