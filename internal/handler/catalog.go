package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet/internal/form"
)

// CatalogHandler serves the static form catalogs: mobile operators, gas
// providers and the quick-amount suggestions shown next to amount inputs.
type CatalogHandler struct{}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// OperatorResponse is the HTTP representation of a mobile operator.
type OperatorResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}

// CatalogResponse carries everything the client forms need to render.
type CatalogResponse struct {
	Operators           []OperatorResponse `json:"operators"`
	GasServices         []string           `json:"gas_services"`
	QuickAmountsPayment []int              `json:"quick_amounts_payment"`
	QuickAmountsMobile  []int              `json:"quick_amounts_mobile"`
	QuickAmountsGas     []int              `json:"quick_amounts_gas"`
}

// Catalog handles GET /v1/services/catalog
func (h *CatalogHandler) Catalog(c *gin.Context) {
	operators := make([]OperatorResponse, 0, len(form.MobileOperators))
	for _, op := range form.MobileOperators {
		operators = append(operators, OperatorResponse{
			ID:     op.ID,
			Name:   op.Name,
			Prefix: op.Prefix,
		})
	}

	respondJSON(c, http.StatusOK, CatalogResponse{
		Operators:           operators,
		GasServices:         form.GasServices,
		QuickAmountsPayment: form.QuickAmountsPayment,
		QuickAmountsMobile:  form.QuickAmountsMobile,
		QuickAmountsGas:     form.QuickAmountsGas,
	})
}
