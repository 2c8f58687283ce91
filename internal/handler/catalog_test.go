package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/v1/services/catalog", NewCatalogHandler().Catalog)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/services/catalog", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp CatalogResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	if len(resp.Operators) != 3 {
		t.Fatalf("expected 3 operators, got %d", len(resp.Operators))
	}
	if resp.Operators[0].ID != "azercell" || resp.Operators[0].Prefix != "50" {
		t.Errorf("unexpected first operator: %+v", resp.Operators[0])
	}
	if len(resp.GasServices) == 0 {
		t.Error("expected gas services")
	}
	if len(resp.QuickAmountsPayment) == 0 || len(resp.QuickAmountsMobile) == 0 || len(resp.QuickAmountsGas) == 0 {
		t.Error("expected quick amount suggestions for all three forms")
	}
}
