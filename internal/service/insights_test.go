package service

import "testing"

func TestComputeInsights(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		income        float64
		expense       float64
		wantRate      float64
		wantRating    string
		wantPredicted int
		wantPotential int
		wantMonths    int
	}{
		{
			name:          "healthy savings",
			income:        5000,
			expense:       3000,
			wantRate:      40,
			wantRating:    "Excellent",
			wantPredicted: 3300,
			wantPotential: 400,
			wantMonths:    5,
		},
		{
			name:          "thin margin",
			income:        1000,
			expense:       850,
			wantRate:      15,
			wantRating:    "Good",
			wantPredicted: 935,
			wantPotential: 30,
			wantMonths:    67,
		},
		{
			name:          "spending everything",
			income:        2000,
			expense:       2000,
			wantRate:      0,
			wantRating:    "Fair",
			wantPredicted: 2200,
			wantPotential: 0,
			wantMonths:    0,
		},
		{
			name:          "zero income",
			income:        0,
			expense:       500,
			wantRate:      0,
			wantRating:    "Fair",
			wantPredicted: 550,
			wantPotential: -100,
			wantMonths:    0,
		},
		{
			name:          "overspending",
			income:        1000,
			expense:       1500,
			wantRate:      -50,
			wantRating:    "Fair",
			wantPredicted: 1650,
			wantPotential: -100,
			wantMonths:    0,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ComputeInsights(tc.income, tc.expense)

			if got.SavingsRate != tc.wantRate {
				t.Errorf("SavingsRate = %v, want %v", got.SavingsRate, tc.wantRate)
			}
			if got.SavingsRating != tc.wantRating {
				t.Errorf("SavingsRating = %q, want %q", got.SavingsRating, tc.wantRating)
			}
			if got.PredictedNextMonthExpense != tc.wantPredicted {
				t.Errorf("PredictedNextMonthExpense = %d, want %d", got.PredictedNextMonthExpense, tc.wantPredicted)
			}
			if got.PotentialSavings != tc.wantPotential {
				t.Errorf("PotentialSavings = %d, want %d", got.PotentialSavings, tc.wantPotential)
			}
			if got.GoalAmount != GoalAmount {
				t.Errorf("GoalAmount = %d, want %d", got.GoalAmount, GoalAmount)
			}
			if got.MonthsToGoal != tc.wantMonths {
				t.Errorf("MonthsToGoal = %d, want %d", got.MonthsToGoal, tc.wantMonths)
			}
		})
	}
}

func TestSavingsRatingBoundaries(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		rate float64
		want string
	}{
		{rate: 25, want: "Excellent"},
		{rate: 20, want: "Good"},
		{rate: 15, want: "Good"},
		{rate: 10, want: "Fair"},
		{rate: 0, want: "Fair"},
	}

	for _, tc := range testCases {
		if got := savingsRating(tc.rate); got != tc.want {
			t.Errorf("savingsRating(%v) = %q, want %q", tc.rate, got, tc.want)
		}
	}
}
