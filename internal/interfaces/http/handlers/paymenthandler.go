package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	orderdto "github.com/bookstore-vn/bookstore/internal/application/order/dto"
	"github.com/bookstore-vn/bookstore/internal/application/payment/paymentgateway"
	paymentUsecases "github.com/bookstore-vn/bookstore/internal/application/payment/usecases"
	"github.com/bookstore-vn/bookstore/internal/domain/order"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/metrics"
	"github.com/bookstore-vn/bookstore/internal/interfaces/http/middleware"
	apperrors "github.com/bookstore-vn/bookstore/internal/shared/errors"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
	"github.com/bookstore-vn/bookstore/internal/shared/utils"
)

type PaymentHandler struct {
	checkoutUC checkoutUseCase
	payOrderUC payOrderUseCase
	callbackUC vnpayCallbackUseCase
	logger     logger.Interface
}

func NewPaymentHandler(
	checkoutUC checkoutUseCase,
	payOrderUC payOrderUseCase,
	callbackUC vnpayCallbackUseCase,
	logger logger.Interface,
) *PaymentHandler {
	return &PaymentHandler{
		checkoutUC: checkoutUC,
		payOrderUC: payOrderUC,
		callbackUC: callbackUC,
		logger:     logger,
	}
}

type CheckoutRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email,max=255"`
	MobileNumber string `json:"mobile_number" validate:"required,max=20"`
	Address      string `json:"address" validate:"required,max=255"`
}

type CheckoutResponse struct {
	OrderID     uint   `json:"order_id"`
	TotalAmount string `json:"total_amount"`
	PaymentURL  string `json:"payment_url"`
}

// CallbackResponse reports how the shopper's return from VNPay was handled.
type CallbackResponse struct {
	OrderID      uint               `json:"order_id,omitempty"`
	Outcome      string             `json:"outcome"`
	ResponseCode string             `json:"response_code,omitempty"`
	Order        *orderdto.OrderDTO `json:"order,omitempty"`
}

// IPNResponse is the acknowledgement body VNPay expects from the IPN URL.
type IPNResponse struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

// Checkout handles POST /checkout/vnpay
func (h *PaymentHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("failed to bind checkout request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.checkoutUC.Execute(c.Request.Context(), paymentUsecases.CheckoutCommand{
		UserID: userID,
		Customer: order.Customer{
			Name:         req.Name,
			Email:        req.Email,
			MobileNumber: req.MobileNumber,
			Address:      req.Address,
		},
		Client: clientInfo(c),
	})
	if err != nil {
		if apperrors.IsAppError(err) && !isInternal(err) {
			metrics.RecordCheckout("rejected")
		} else {
			metrics.RecordCheckout("error")
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	metrics.RecordCheckout("created")
	utils.CreatedResponse(c, CheckoutResponse{
		OrderID:     result.OrderID,
		TotalAmount: result.TotalAmount.String(),
		PaymentURL:  result.PaymentURL,
	}, "order created, continue to payment")
}

// Pay handles GET /payments/vnpay/pay/:order_id by redirecting the order's owner
// to a freshly signed URL.
func (h *PaymentHandler) Pay(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	orderID, err := utils.ParseUintParam(c, "order_id", "order")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	paymentURL, err := h.payOrderUC.Execute(c.Request.Context(), paymentUsecases.PayOrderCommand{
		OrderID: orderID,
		UserID:  userID,
		Client:  clientInfo(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Redirect(http.StatusFound, paymentURL)
}

// Return handles GET /payments/vnpay/return, where VNPay sends the shopper back.
func (h *PaymentHandler) Return(c *gin.Context) {
	start := time.Now()
	defer metrics.ObserveCallbackDuration(metrics.SourceReturn, start)

	result, err := h.callbackUC.Execute(c.Request.Context(), queryParams(c))
	if err != nil {
		metrics.RecordCallback(metrics.SourceReturn, "error")
		h.logger.Errorw("failed to process vnpay return", "error", err, "client_ip", c.ClientIP())
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to process payment result")
		return
	}
	metrics.RecordCallback(metrics.SourceReturn, result.Outcome.String())

	resp := CallbackResponse{
		OrderID:      result.OrderID,
		Outcome:      result.Outcome.String(),
		ResponseCode: result.ResponseCode,
	}
	if result.Order != nil {
		resp.Order = orderdto.ToOrderDTO(result.Order)
	}

	switch result.Outcome {
	case paymentUsecases.OutcomePaid, paymentUsecases.OutcomeAlreadyPaid:
		utils.SuccessResponse(c, http.StatusOK, "payment successful", resp)
	case paymentUsecases.OutcomePaymentFailed:
		utils.SuccessResponse(c, http.StatusOK, "payment was not completed", resp)
	case paymentUsecases.OutcomeOrderNotFound:
		utils.ErrorResponseWithData(c, http.StatusNotFound, string(apperrors.ErrorTypeNotFound), "order not found", resp)
	case paymentUsecases.OutcomeInvalidSignature:
		h.logger.Warnw("vnpay return rejected", "outcome", result.Outcome, "client_ip", c.ClientIP())
		utils.ErrorResponseWithData(c, http.StatusBadRequest, string(apperrors.ErrorTypeBadRequest), "invalid payment signature", resp)
	case paymentUsecases.OutcomeAmountMismatch:
		utils.ErrorResponseWithData(c, http.StatusBadRequest, string(apperrors.ErrorTypeBadRequest), "payment amount does not match the order", resp)
	case paymentUsecases.OutcomeNotPayable:
		utils.ErrorResponseWithData(c, http.StatusConflict, string(apperrors.ErrorTypeConflict), "order is not awaiting payment", resp)
	default:
		utils.ErrorResponseWithData(c, http.StatusBadRequest, string(apperrors.ErrorTypeBadRequest), "malformed payment result", resp)
	}
}

// IPN handles GET /payments/vnpay/ipn, VNPay's server-to-server notification.
// VNPay retries until it receives RspCode 00 or 02.
func (h *PaymentHandler) IPN(c *gin.Context) {
	start := time.Now()
	defer metrics.ObserveCallbackDuration(metrics.SourceIPN, start)

	result, err := h.callbackUC.Execute(c.Request.Context(), queryParams(c))
	if err != nil {
		metrics.RecordCallback(metrics.SourceIPN, "error")
		h.logger.Errorw("failed to process vnpay ipn", "error", err, "client_ip", c.ClientIP())
		c.JSON(http.StatusOK, IPNResponse{RspCode: "99", Message: "Unknown error"})
		return
	}
	metrics.RecordCallback(metrics.SourceIPN, result.Outcome.String())

	c.JSON(http.StatusOK, ipnResponse(result.Outcome))
}

func ipnResponse(outcome paymentUsecases.CallbackOutcome) IPNResponse {
	switch outcome {
	case paymentUsecases.OutcomePaid, paymentUsecases.OutcomePaymentFailed:
		return IPNResponse{RspCode: "00", Message: "Confirm Success"}
	case paymentUsecases.OutcomeOrderNotFound:
		return IPNResponse{RspCode: "01", Message: "Order not found"}
	case paymentUsecases.OutcomeAlreadyPaid:
		return IPNResponse{RspCode: "02", Message: "Order already confirmed"}
	case paymentUsecases.OutcomeAmountMismatch:
		return IPNResponse{RspCode: "04", Message: "Invalid amount"}
	case paymentUsecases.OutcomeInvalidSignature:
		return IPNResponse{RspCode: "97", Message: "Invalid signature"}
	default:
		return IPNResponse{RspCode: "99", Message: "Invalid request"}
	}
}

// queryParams flattens the callback query; VNPay never repeats a key.
func queryParams(c *gin.Context) map[string]string {
	query := c.Request.URL.Query()
	params := make(map[string]string, len(query))
	for k, v := range query {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params
}

func clientInfo(c *gin.Context) paymentgateway.ClientInfo {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	} else if proto := c.GetHeader("X-Forwarded-Proto"); proto == "https" || proto == "http" {
		scheme = proto
	}
	return paymentgateway.ClientInfo{
		IP:     c.ClientIP(),
		Scheme: scheme,
		Host:   c.Request.Host,
	}
}

func isInternal(err error) bool {
	appErr := apperrors.GetAppError(err)
	return appErr != nil && appErr.Type == apperrors.ErrorTypeInternal
}
