package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"wallet/internal/domain"
	"wallet/internal/service"
)

// TransactionHandler handles HTTP requests for transaction history.
type TransactionHandler struct {
	paymentService *service.PaymentService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(paymentService *service.PaymentService) *TransactionHandler {
	return &TransactionHandler{paymentService: paymentService}
}

// TransactionResponse is the HTTP representation of a recorded transaction.
type TransactionResponse struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Status       string    `json:"status"`
	Amount       float64   `json:"amount"`
	Counterparty string    `json:"counterparty"`
	CreatedAt    time.Time `json:"created_at"`
}

// List handles GET /v1/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	txs, err := h.paymentService.ListTransactions(c.Request.Context(), session.Email, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, transactionResponse(tx))
	}

	respondJSON(c, http.StatusOK, gin.H{"transactions": out})
}

// Get handles GET /v1/transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
		return
	}

	tx, err := h.paymentService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	// History is per-user; other users' transactions stay invisible.
	if tx.Email != session.Email {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "transaction not found"})
		return
	}

	respondJSON(c, http.StatusOK, transactionResponse(tx))
}

func transactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           tx.ID,
		Kind:         string(tx.Kind),
		Status:       string(tx.Status),
		Amount:       tx.Amount,
		Counterparty: tx.Counterparty,
		CreatedAt:    tx.CreatedAt,
	}
}
