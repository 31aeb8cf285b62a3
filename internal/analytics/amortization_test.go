package analytics_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/liamba05/Fynnance/internal/analytics"
	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/testutil"
)

var projectionNow = time.Date(2026, time.January, 1, 9, 30, 0, 0, time.UTC)

// TestProject tests the loan payoff projection.
//
// WHY: Payoff projections are shown to users as financial guidance. The term must follow
// the annuity inversion exactly, including the round-up of partial months.
func TestProject(t *testing.T) {
	t.Run("projects a credit balance at 18 percent", func(t *testing.T) {
		prediction, err := analytics.Project(10000, 18, 300, projectionNow)
		if err != nil {
			t.Fatalf("Project() returned unexpected error: %v", err)
		}

		expected := int(math.Ceil(math.Log(300.0/(300-150)) / math.Log(1.015)))
		if prediction.RemainingPayments != expected {
			t.Errorf("Expected %d remaining payments, got %d", expected, prediction.RemainingPayments)
		}
		if prediction.TotalToPay != 300*float64(expected) {
			t.Errorf("Expected total to pay %.2f, got %.2f", 300*float64(expected), prediction.TotalToPay)
		}
		if prediction.TotalInterest != 300*float64(expected)-10000 {
			t.Errorf("Expected total interest %.2f, got %.2f", 300*float64(expected)-10000, prediction.TotalInterest)
		}
		if prediction.MonthlyInterest != 150 {
			t.Errorf("Expected monthly interest 150, got %.2f", prediction.MonthlyInterest)
		}
		if prediction.MonthlyPrincipal != 150 {
			t.Errorf("Expected monthly principal 150, got %.2f", prediction.MonthlyPrincipal)
		}

		wantPayoff := testutil.Date(2026, time.January, 1).AddDays(30 * expected)
		if prediction.PayoffDate != wantPayoff {
			t.Errorf("Expected payoff date %s, got %s", wantPayoff, prediction.PayoffDate)
		}
	})

	t.Run("adds accelerated scenarios at +100, +200 and +500", func(t *testing.T) {
		prediction, err := analytics.Project(10000, 18, 300, projectionNow)
		if err != nil {
			t.Fatalf("Project() returned unexpected error: %v", err)
		}

		if len(prediction.AcceleratedPayoff) != 3 {
			t.Fatalf("Expected 3 scenarios, got %d", len(prediction.AcceleratedPayoff))
		}

		for i, extra := range []float64{100, 200, 500} {
			s := prediction.AcceleratedPayoff[i]
			if s.AdditionalMonthly != extra {
				t.Errorf("Scenario %d: expected additional %.0f, got %.0f", i, extra, s.AdditionalMonthly)
			}
			if s.NewPayment != 300+extra {
				t.Errorf("Scenario %d: expected new payment %.0f, got %.0f", i, 300+extra, s.NewPayment)
			}

			newRemaining := int(math.Ceil(math.Log((300+extra)/(300+extra-150)) / math.Log(1.015)))
			if s.MonthsSaved != prediction.RemainingPayments-newRemaining {
				t.Errorf("Scenario %d: expected %d months saved, got %d", i, prediction.RemainingPayments-newRemaining, s.MonthsSaved)
			}
			if s.MonthsSaved <= 0 {
				t.Errorf("Scenario %d: expected months saved to be positive, got %d", i, s.MonthsSaved)
			}
			if s.InterestSavings <= 0 {
				t.Errorf("Scenario %d: expected positive interest savings, got %.2f", i, s.InterestSavings)
			}
			if !s.NewPayoffDate.Before(prediction.PayoffDate) {
				t.Errorf("Scenario %d: expected earlier payoff than %s, got %s", i, prediction.PayoffDate, s.NewPayoffDate)
			}
		}
	})

	t.Run("returns insufficient payment error when payment equals interest", func(t *testing.T) {
		_, err := analytics.Project(10000, 18, 150, projectionNow)

		var insufficient *apperrors.InsufficientPaymentError
		if !errors.As(err, &insufficient) {
			t.Fatalf("Expected InsufficientPaymentError, got %v", err)
		}
		if !errors.Is(err, apperrors.ErrInsufficientPayment) {
			t.Error("Expected error to match ErrInsufficientPayment")
		}
		// The suggested minimum is interest plus a flat 100 buffer. It is a heuristic,
		// not a payment that guarantees a reasonable payoff term.
		if insufficient.MinimumRequired != 250 {
			t.Errorf("Expected minimum required 250, got %.2f", insufficient.MinimumRequired)
		}
		if insufficient.MonthlyInterest != 150 {
			t.Errorf("Expected monthly interest 150, got %.2f", insufficient.MonthlyInterest)
		}
	})

	t.Run("rejects out-of-domain input", func(t *testing.T) {
		tests := []struct {
			name                   string
			balance, rate, payment float64
			field                  string
		}{
			{"zero balance", 0, 5, 100, "balance"},
			{"negative balance", -100, 5, 100, "balance"},
			{"zero rate", 1000, 0, 100, "interestRate"},
			{"negative rate", 1000, -3, 100, "interestRate"},
			{"zero payment", 1000, 5, 0, "payment"},
			{"NaN balance", math.NaN(), 5, 100, "balance"},
			{"infinite payment", 1000, 5, math.Inf(1), "payment"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := analytics.Project(tt.balance, tt.rate, tt.payment, projectionNow)

				var invalid *apperrors.InvalidInputError
				if !errors.As(err, &invalid) {
					t.Fatalf("Expected InvalidInputError, got %v", err)
				}
				if invalid.Field != tt.field {
					t.Errorf("Expected field %q, got %q", tt.field, invalid.Field)
				}
			})
		}
	})
}

// TestProject_Properties checks invariants over generated loans.
//
// WHY: The projection must never report negative interest, and paying more must never
// lengthen the term. Payments at or below the interest-only amount must always error.
func TestProject_Properties(t *testing.T) {
	//nolint:gosec // G404: deterministic source for property checks
	rng := rand.New(rand.NewSource(20260101))

	for i := 0; i < 500; i++ {
		balance := 100 + rng.Float64()*500000
		rate := 0.1 + rng.Float64()*30
		interest := balance * rate / 1200

		payment := interest + 1 + rng.Float64()*balance/12
		prediction, err := analytics.Project(balance, rate, payment, projectionNow)
		if err != nil {
			t.Fatalf("Project(%.2f, %.2f, %.2f) returned unexpected error: %v", balance, rate, payment, err)
		}
		if prediction.TotalInterest < 0 {
			t.Errorf("Project(%.2f, %.2f, %.2f): negative total interest %.2f", balance, rate, payment, prediction.TotalInterest)
		}

		more, err := analytics.Project(balance, rate, payment+1+rng.Float64()*1000, projectionNow)
		if err != nil {
			t.Fatalf("Project() with larger payment returned unexpected error: %v", err)
		}
		if more.RemainingPayments > prediction.RemainingPayments {
			t.Errorf("Project(%.2f, %.2f): larger payment increased term from %d to %d",
				balance, rate, prediction.RemainingPayments, more.RemainingPayments)
		}

		low := interest * rng.Float64()
		if low <= 0 {
			continue
		}
		if _, err := analytics.Project(balance, rate, low, projectionNow); !errors.Is(err, apperrors.ErrInsufficientPayment) {
			t.Errorf("Project(%.2f, %.2f, %.2f): expected insufficient payment, got %v", balance, rate, low, err)
		}
	}
}

// TestProject_TinyRates covers rates small enough that 1+monthlyRate rounds to 1.
//
// WHY: Any positive rate passes validation, so the term must stay finite and the
// interest non-negative down to the smallest representable rates.
func TestProject_TinyRates(t *testing.T) {
	t.Run("projects like an interest-free loan", func(t *testing.T) {
		for _, rate := range []float64{1e-9, 1e-14, 1e-300} {
			prediction, err := analytics.Project(10000, rate, 300, projectionNow)
			if err != nil {
				t.Fatalf("Project(10000, %g, 300) returned unexpected error: %v", rate, err)
			}
			if prediction.RemainingPayments != 34 {
				t.Errorf("rate %g: expected 34 remaining payments, got %d", rate, prediction.RemainingPayments)
			}
			if prediction.TotalInterest < 0 {
				t.Errorf("rate %g: negative total interest %.2f", rate, prediction.TotalInterest)
			}
			for _, s := range prediction.AcceleratedPayoff {
				if s.MonthsSaved < 0 || s.TotalToPay <= 0 {
					t.Errorf("rate %g: invalid scenario %+v", rate, s)
				}
			}
		}
	})

	t.Run("rejects a rate that underflows to zero", func(t *testing.T) {
		// Setup
		rate := math.SmallestNonzeroFloat64

		// Execute
		_, err := analytics.Project(10000, rate, 300, projectionNow)

		// Assert
		var invalid *apperrors.InvalidInputError
		if !errors.As(err, &invalid) {
			t.Fatalf("Expected InvalidInputError, got %v", err)
		}
		if invalid.Field != "interestRate" {
			t.Errorf("Expected field interestRate, got %q", invalid.Field)
		}
	})

	t.Run("rejects a term beyond the projection limit", func(t *testing.T) {
		// 0.001 percent on a million leaves a cent of principal per month.
		_, err := analytics.Project(1_000_000, 0.001, 1_000_000*0.001/1200+0.01, projectionNow)

		var invalid *apperrors.InvalidInputError
		if !errors.As(err, &invalid) {
			t.Fatalf("Expected InvalidInputError, got %v", err)
		}
		if invalid.Field != "payment" {
			t.Errorf("Expected field payment, got %q", invalid.Field)
		}
	})
}
