package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet/internal/service"
)

// StatsHandler handles HTTP requests for dashboard stats and insights.
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// DashboardResponse is the batched stats payload for the dashboard view.
type DashboardResponse struct {
	Balance          float64 `json:"balance"`
	CardNumber       string  `json:"card_number"`
	TransactionCount int     `json:"transaction_count"`
	TransactionTotal float64 `json:"transaction_total"`
	Income           float64 `json:"income"`
	Expense          float64 `json:"expense"`
}

// InsightsResponse carries the derived analytics metrics.
type InsightsResponse struct {
	SavingsRate               float64 `json:"savings_rate"`
	SavingsRating             string  `json:"savings_rating"`
	PredictedNextMonthExpense int     `json:"predicted_next_month_expense"`
	PotentialSavings          int     `json:"potential_savings"`
	GoalAmount                int     `json:"goal_amount"`
	MonthsToGoal              int     `json:"months_to_goal"`
}

// Dashboard handles GET /v1/stats/dashboard
func (h *StatsHandler) Dashboard(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
		return
	}

	stats, err := h.statsService.Dashboard(c.Request.Context(), session.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, DashboardResponse{
		Balance:          stats.Balance,
		CardNumber:       stats.CardNumber,
		TransactionCount: stats.TransactionCount,
		TransactionTotal: stats.TransactionTotal,
		Income:           stats.Income,
		Expense:          stats.Expense,
	})
}

// Insights handles GET /v1/stats/insights
func (h *StatsHandler) Insights(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
		return
	}

	stats, err := h.statsService.Dashboard(c.Request.Context(), session.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	insights := service.ComputeInsights(stats.Income, stats.Expense)

	respondJSON(c, http.StatusOK, InsightsResponse{
		SavingsRate:               insights.SavingsRate,
		SavingsRating:             insights.SavingsRating,
		PredictedNextMonthExpense: insights.PredictedNextMonthExpense,
		PotentialSavings:          insights.PotentialSavings,
		GoalAmount:                insights.GoalAmount,
		MonthsToGoal:              insights.MonthsToGoal,
	})
}
