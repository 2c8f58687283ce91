package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet/internal/domain"
	"wallet/internal/service"
)

// PaymentHandler handles HTTP requests for form-driven payment operations.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// PaymentFormRequest is the HTTP request body for the card payment form.
// Card number and expiry arrive in display form; the server re-derives the
// raw digits itself.
type PaymentFormRequest struct {
	Amount     string `json:"amount"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// BalanceFormRequest is the HTTP request body for the balance top-up form.
// Amount supplements the visual form: the ledger needs one.
type BalanceFormRequest struct {
	Email      string `json:"email"`
	Amount     string `json:"amount"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// ServiceFormRequest is the HTTP request body for mobile top-up and gas forms.
type ServiceFormRequest struct {
	Account string `json:"account"`
	Service string `json:"service"`
	Amount  string `json:"amount"`
}

// OperationResponse is the HTTP response for a settled form operation.
type OperationResponse struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	State string `json:"state"`
}

// Pay handles POST /v1/payments
func (h *PaymentHandler) Pay(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
		return
	}

	var req PaymentFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	op, err := h.paymentService.Pay(c.Request.Context(), service.PayRequest{
		Session: session,
		Input: domain.FormInput{
			Amount:     req.Amount,
			CardNumber: req.CardNumber,
			Expiry:     req.Expiry,
			CVV:        req.CVV,
		},
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, operationResponse(op))
}

// AddBalance handles POST /v1/payments/balance
func (h *PaymentHandler) AddBalance(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
		return
	}

	var req BalanceFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	op, err := h.paymentService.AddBalance(c.Request.Context(), service.AddBalanceRequest{
		Session: session,
		Input: domain.FormInput{
			Email:      req.Email,
			Amount:     req.Amount,
			CardNumber: req.CardNumber,
			Expiry:     req.Expiry,
			CVV:        req.CVV,
		},
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, operationResponse(op))
}

// MobileTopUp handles POST /v1/payments/mobile
func (h *PaymentHandler) MobileTopUp(c *gin.Context) {
	h.payService(c, domain.KindMobileTopUp)
}

// GasPayment handles POST /v1/payments/gas
func (h *PaymentHandler) GasPayment(c *gin.Context) {
	h.payService(c, domain.KindGasPayment)
}

func (h *PaymentHandler) payService(c *gin.Context, kind domain.TransactionKind) {
	session, ok := sessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
		return
	}

	var req ServiceFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	op, err := h.paymentService.PayService(c.Request.Context(), service.ServicePaymentRequest{
		Session: session,
		Kind:    kind,
		Input: domain.FormInput{
			Account: req.Account,
			Service: req.Service,
			Amount:  req.Amount,
		},
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, operationResponse(op))
}

func operationResponse(op *domain.Operation) OperationResponse {
	return OperationResponse{
		ID:    op.ID,
		Kind:  string(op.Kind),
		State: string(op.State),
	}
}
