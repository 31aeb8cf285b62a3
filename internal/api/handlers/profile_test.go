package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/liamba05/Fynnance/internal/model"
	"github.com/liamba05/Fynnance/internal/testutil"
)

func newHandlerDataSource() *testutil.MockDataSource {
	src := testutil.NewMockDataSource()
	src.AccountList = []model.Account{
		{AccountID: "chk", Name: "Checking", Type: "depository", CurrentBalance: testutil.Float(1200)},
		{AccountID: "stu", Name: "Federal Loan", Type: "loan", CurrentBalance: testutil.Float(10000)},
	}
	src.TransactionList = testutil.Series("Spotify", testutil.Date(2026, time.January, 20),
		[]int{30, 30, 30, 30}, []float64{10.99, 10.99, 10.99, 10.99, 10.99})
	src.TransactionList = append(src.TransactionList, testutil.NewTransaction().
		WithName("ACME PAYROLL").
		WithAccount("chk").
		WithAmount(-3000).
		OnDate(testutil.Date(2026, time.June, 1)).
		Build())
	src.RawLiabilities = model.RawLiabilities{
		Student: []model.RawStudentLoan{{
			AccountID:                   "stu",
			InterestRatePercentage:      testutil.Float(6),
			MinimumPaymentAmount:        testutil.Float(200),
			OutstandingPrincipalBalance: testutil.Float(10000),
		}},
	}
	src.LiabilityAccounts = src.AccountList
	return src
}

// TestProfileHandler_Profile tests the consolidated profile endpoint.
//
// WHY: The window is user supplied. Out of range values must be rejected
// before any upstream call, and an upstream outage must surface as 502.
func TestProfileHandler_Profile(t *testing.T) {
	userID := testutil.MakeID()
	params := map[string]string{"uuid": userID}

	t.Run("returns profile", func(t *testing.T) {
		handler := NewProfileHandler(testutil.NewTestProfileService(t, newHandlerDataSource(), nil))
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/user/"+userID+"/profile?days=90", params)
		w := httptest.NewRecorder()

		handler.Profile(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var profile model.FinancialProfile
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&profile)
		if profile.UserID != userID || len(profile.Accounts) != 2 {
			t.Errorf("Unexpected profile identity: %s with %d accounts", profile.UserID, len(profile.Accounts))
		}
		if profile.Recurring == nil || len(profile.Recurring.RecurringPayments) != 1 {
			t.Errorf("Expected 1 recurring payment, got %+v", profile.Recurring)
		}
	})

	t.Run("returns 200 with a warning for a malformed transaction", func(t *testing.T) {
		// Setup
		src := newHandlerDataSource()
		src.TransactionList = append(src.TransactionList, testutil.NewTransaction().
			WithMerchant("Spotify").
			WithoutAmount().
			OnDate(testutil.Date(2026, time.June, 10)).
			Build())
		handler := NewProfileHandler(testutil.NewTestProfileService(t, src, nil))
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/user/"+userID+"/profile", params)
		w := httptest.NewRecorder()

		// Execute
		handler.Profile(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var profile model.FinancialProfile
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&profile)
		if profile.Recurring != nil {
			t.Errorf("Expected null recurring section, got %+v", profile.Recurring)
		}
		if len(profile.Warnings) != 1 {
			t.Errorf("Expected one warning, got %v", profile.Warnings)
		}
		if profile.Liabilities == nil || len(profile.Accounts) != 2 {
			t.Error("Expected the other sections to be built")
		}
	})

	t.Run("returns null liabilities when their fetch fails", func(t *testing.T) {
		src := newHandlerDataSource()
		src.LiabilitiesErr = testutil.ErrMockUpstream
		handler := NewProfileHandler(testutil.NewTestProfileService(t, src, nil))
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/user/"+userID+"/profile", params)
		w := httptest.NewRecorder()

		handler.Profile(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]any
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&body)
		if liabilities, ok := body["liabilities"]; !ok || liabilities != nil {
			t.Errorf("Expected liabilities to be null, got %v", liabilities)
		}
	})

	t.Run("returns 400 for window out of range", func(t *testing.T) {
		src := newHandlerDataSource()
		handler := NewProfileHandler(testutil.NewTestProfileService(t, src, nil))

		for _, days := range []string{"0", "731", "week"} {
			req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/user/"+userID+"/profile?days="+days, params)
			w := httptest.NewRecorder()

			handler.Profile(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("days=%s: expected 400, got %d", days, w.Code)
			}
		}
		if len(src.TransactionWindows) != 0 {
			t.Errorf("Expected no upstream calls, got %d", len(src.TransactionWindows))
		}
	})

	t.Run("returns 502 when accounts fail", func(t *testing.T) {
		src := newHandlerDataSource()
		src.AccountsErr = testutil.ErrMockUpstream
		handler := NewProfileHandler(testutil.NewTestProfileService(t, src, nil))
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/user/"+userID+"/profile", params)
		w := httptest.NewRecorder()

		handler.Profile(w, req)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected 502, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 503 when not configured", func(t *testing.T) {
		handler := NewProfileHandler(nil)
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/user/"+userID+"/profile", params)
		w := httptest.NewRecorder()

		handler.Profile(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d", w.Code)
		}
	})
}

func TestProfileHandler_Recurring(t *testing.T) {
	t.Run("returns 502 for a malformed transaction", func(t *testing.T) {
		src := newHandlerDataSource()
		src.TransactionList = append(src.TransactionList, testutil.NewTransaction().
			WithoutAmount().
			OnDate(testutil.Date(2026, time.June, 10)).
			Build())
		handler := NewProfileHandler(testutil.NewTestProfileService(t, src, nil))
		userID := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/user/"+userID+"/recurring",
			map[string]string{"uuid": userID})
		w := httptest.NewRecorder()

		handler.Recurring(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("Expected 502, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]any
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&body)
		if body["error"] != "upstream data error" {
			t.Errorf("Expected upstream data error, got %v", body["error"])
		}
	})

	src := newHandlerDataSource()
	handler := NewProfileHandler(testutil.NewTestProfileService(t, src, nil))
	userID := testutil.MakeID()
	req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/user/"+userID+"/recurring?lookbackDays=200",
		map[string]string{"uuid": userID})
	w := httptest.NewRecorder()

	handler.Recurring(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var analysis model.RecurringAnalysis
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&analysis)
	if analysis.Metadata == nil || analysis.Metadata.AnalysisPeriodDays != 200 {
		t.Errorf("Expected 200 day analysis, got %+v", analysis.Metadata)
	}
}

func TestProfileHandler_Liabilities(t *testing.T) {
	handler := NewProfileHandler(testutil.NewTestProfileService(t, newHandlerDataSource(), nil))
	userID := testutil.MakeID()
	req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/user/"+userID+"/liabilities",
		map[string]string{"uuid": userID})
	w := httptest.NewRecorder()

	handler.Liabilities(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var report model.LiabilityReport
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&report)
	if len(report.StudentLoans) != 1 || report.StudentLoans[0].Name != "Federal Loan" {
		t.Errorf("Unexpected student loans %+v", report.StudentLoans)
	}
}
