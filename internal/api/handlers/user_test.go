package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/liamba05/Fynnance/internal/model"
	"github.com/liamba05/Fynnance/internal/testutil"
)

func setupUserHandler(t *testing.T) *UserHandler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewUserHandler(testutil.NewTestUserFactsService(t, db))
}

// TestUserHandler_Facts tests reading and writing user facts.
//
// WHY: The first PUT creates the user. Later PUTs only touch the fields they send,
// so a client updating its zip code cannot wipe out the stored income.
func TestUserHandler_Facts(t *testing.T) {
	handler := setupUserHandler(t)
	userID := testutil.MakeID()
	params := map[string]string{"uuid": userID}
	path := "/api/user/" + userID + "/facts"

	t.Run("returns 404 before first write", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, path, params)
		w := httptest.NewRecorder()

		handler.Facts(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("creates and partially updates", func(t *testing.T) {
		// Setup
		create := testutil.NewJSONRequest(t, http.MethodPut, path,
			map[string]any{"income": 85000, "creditScore": 720}, params)
		update := testutil.NewJSONRequest(t, http.MethodPut, path,
			map[string]any{"zipCode": "94103"}, params)

		// Execute
		w := httptest.NewRecorder()
		handler.UpdateFacts(w, create)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200 on create, got %d: %s", w.Code, w.Body.String())
		}
		w = httptest.NewRecorder()
		handler.UpdateFacts(w, update)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200 on update, got %d: %s", w.Code, w.Body.String())
		}

		w = httptest.NewRecorder()
		handler.Facts(w, testutil.NewRequestWithURLParams(http.MethodGet, path, params))

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		var facts model.UserFacts
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&facts)
		if facts.Income == nil || *facts.Income != 85000 {
			t.Errorf("Expected income 85000, got %v", facts.Income)
		}
		if facts.CreditScore == nil || *facts.CreditScore != 720 {
			t.Errorf("Expected credit score 720, got %v", facts.CreditScore)
		}
		if facts.ZipCode == nil || *facts.ZipCode != "94103" {
			t.Errorf("Expected zip 94103, got %v", facts.ZipCode)
		}
		if facts.Assets != nil {
			t.Errorf("Expected no assets, got %v", *facts.Assets)
		}
	})

	t.Run("rejects invalid facts", func(t *testing.T) {
		tests := []struct {
			name  string
			body  any
			field string
		}{
			{"empty update", map[string]any{}, "body"},
			{"negative income", map[string]any{"income": -1}, "income"},
			{"score out of range", map[string]any{"creditScore": 200}, "creditScore"},
			{"malformed zip", map[string]any{"zipCode": "SW1A"}, "zipCode"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := testutil.NewJSONRequest(t, http.MethodPut, path, tt.body, params)
				w := httptest.NewRecorder()

				handler.UpdateFacts(w, req)

				if w.Code != http.StatusBadRequest {
					t.Fatalf("Expected 400, got %d", w.Code)
				}
				if body := decodeError(t, w); body.Details[tt.field] == nil {
					t.Errorf("Expected error for %s, got %+v", tt.field, body.Details)
				}
			})
		}
	})
}

// TestUserHandler_Goals tests goals and memories.
func TestUserHandler_Goals(t *testing.T) {
	handler := setupUserHandler(t)
	userID := testutil.MakeID()
	params := map[string]string{"uuid": userID}

	t.Run("requires stored facts", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/user/"+userID+"/goals",
			map[string]string{"goals": "buy a house"}, params)
		w := httptest.NewRecorder()

		handler.UpdateGoals(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	// Create the user for the remaining cases.
	w := httptest.NewRecorder()
	handler.UpdateFacts(w, testutil.NewJSONRequest(t, http.MethodPut, "/api/user/"+userID+"/facts",
		map[string]any{"income": 50000}, params))
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to create user: %d %s", w.Code, w.Body.String())
	}

	t.Run("updates goals and appends memories", func(t *testing.T) {
		// Execute
		w := httptest.NewRecorder()
		handler.UpdateGoals(w, testutil.NewJSONRequest(t, http.MethodPut, "/api/user/"+userID+"/goals",
			map[string]string{"goals": "buy a house", "preferences": "quiet street"}, params))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		w = httptest.NewRecorder()
		handler.AddMemories(w, testutil.NewJSONRequest(t, http.MethodPost, "/api/user/"+userID+"/memories",
			map[string][]string{"memories": {"has a dog", "rents downtown", "has a dog"}}, params))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		w = httptest.NewRecorder()
		handler.Goals(w, testutil.NewRequestWithURLParams(http.MethodGet, "/api/user/"+userID+"/goals", params))

		// Assert
		var goals model.UserGoals
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&goals)
		if goals.Goals != "buy a house" || goals.Preferences != "quiet street" {
			t.Errorf("Unexpected goals %+v", goals)
		}
		if len(goals.Memories) != 2 {
			t.Errorf("Expected 2 distinct memories, got %v", goals.Memories)
		}
	})

	t.Run("rejects oversized memory", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/user/"+userID+"/memories",
			map[string][]string{"memories": {strings.Repeat("x", 501)}}, params)
		w := httptest.NewRecorder()

		handler.AddMemories(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("rejects empty goals update", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/user/"+userID+"/goals", map[string]string{}, params)
		w := httptest.NewRecorder()

		handler.UpdateGoals(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}
