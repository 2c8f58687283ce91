package service

import "math"

// GoalAmount is the fixed savings goal the insights view tracks.
const GoalAmount = 10000

// Insights holds the derived metrics shown on the analytics view. The
// formulas are deliberately naive; they are presentation arithmetic, not a
// forecasting model.
type Insights struct {
	SavingsRate               float64
	SavingsRating             string
	PredictedNextMonthExpense int
	PotentialSavings          int
	GoalAmount                int
	MonthsToGoal              int
}

// ComputeInsights derives the analytics metrics from monthly income and
// expense figures.
func ComputeInsights(income, expense float64) Insights {
	var savingsRate float64
	if income > 0 {
		savingsRate = (income - expense) / income * 100
	}

	monthsToGoal := 0
	if income-expense > 0 {
		monthsToGoal = int(math.Ceil(GoalAmount / (income - expense)))
	}

	return Insights{
		SavingsRate:               savingsRate,
		SavingsRating:             savingsRating(savingsRate),
		PredictedNextMonthExpense: int(math.Round(expense * 1.1)),
		PotentialSavings:          int(math.Round((income - expense) * 0.2)),
		GoalAmount:                GoalAmount,
		MonthsToGoal:              monthsToGoal,
	}
}

func savingsRating(rate float64) string {
	switch {
	case rate > 20:
		return "Excellent"
	case rate > 10:
		return "Good"
	default:
		return "Fair"
	}
}
