package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestRespondJSON tests the respondJSON helper function.
// This is an internal test (package handlers, not handlers_test) because
// respondJSON is unexported.
func TestRespondJSON(t *testing.T) {
	t.Run("sets content-type and status code correctly", func(t *testing.T) {
		w := httptest.NewRecorder()

		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", w.Header().Get("Content-Type"))
		}
		if !strings.Contains(w.Body.String(), `"status":"healthy"`) {
			t.Errorf("Unexpected body %s", w.Body.String())
		}
	})

	t.Run("handles nil data without error", func(t *testing.T) {
		w := httptest.NewRecorder()

		respondJSON(w, http.StatusNoContent, nil)

		if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
			t.Errorf("Expected empty 204, got %d %q", w.Code, w.Body.String())
		}
	})

	t.Run("handles un-encodable data gracefully", func(t *testing.T) {
		w := httptest.NewRecorder()

		// Channels cannot be JSON encoded
		respondJSON(w, http.StatusOK, map[string]interface{}{"channel": make(chan int)})

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})
}

// TestParseJSON tests request body decoding.
//
// WHY: A typo in a field name would otherwise decode as "field not sent" and
// silently change the analysis, e.g. a misspelled income reads as missing.
func TestParseJSON(t *testing.T) {
	type body struct {
		Income *float64 `json:"income"`
	}

	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{"valid", `{"income": 85000}`, ""},
		{"empty", ``, "request body is required"},
		{"malformed", `{"income": }`, "failed to decode"},
		{"unknown field", `{"incom": 85000}`, "unknown field"},
		{"trailing object", `{"income": 1}{"income": 2}`, "single JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.payload))

			got, err := parseJSON[body](req)

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				if got.Income == nil || *got.Income != 85000 {
					t.Errorf("Expected income 85000, got %v", got.Income)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
