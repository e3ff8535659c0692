package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

func TestProperty_ErrorsHaveConsistentStructure(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("all error responses share the envelope", prop.ForAll(
		func(message string, statusCode int) bool {
			w := httptest.NewRecorder()
			RespondWithError(w, statusCode, message)

			if w.Code != statusCode || w.Header().Get("Content-Type") != "application/json" {
				return false
			}

			var response ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				return false
			}

			if response.Error.Code != CodeForStatus(statusCode) || response.Error.Message != message {
				return false
			}

			_, err := time.Parse(time.RFC3339, response.Error.Timestamp)
			return err == nil
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
		gen.OneConstOf(
			http.StatusBadRequest,
			http.StatusUnauthorized,
			http.StatusForbidden,
			http.StatusNotFound,
			http.StatusConflict,
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
		),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRespondWithValidationErrors(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithValidationErrors(w, []ValidationError{{Field: "email", Message: "Email is required"}})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	var response struct {
		Error struct {
			Details struct {
				ValidationErrors []ValidationError `json:"validation_errors"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(response.Error.Details.ValidationErrors) != 1 || response.Error.Details.ValidationErrors[0].Field != "email" {
		t.Errorf("Unexpected details: %+v", response.Error.Details)
	}
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		respond  func(w http.ResponseWriter)
		status   int
		expected ErrorCode
	}{
		{"not found", func(w http.ResponseWriter) { RespondWithError(w, http.StatusNotFound, "product not found") }, http.StatusNotFound, CodeNotFound},
		{"rate limited", func(w http.ResponseWriter) { RespondWithError(w, http.StatusTooManyRequests, "slow down") }, http.StatusTooManyRequests, CodeRateLimited},
		{"unmapped server status", func(w http.ResponseWriter) { RespondWithError(w, http.StatusBadGateway, "upstream") }, http.StatusBadGateway, CodeInternal},
		{"unmapped client status", func(w http.ResponseWriter) { RespondWithError(w, http.StatusTeapot, "teapot") }, http.StatusTeapot, CodeBadRequest},
		{"explicit code", func(w http.ResponseWriter) {
			RespondWithCode(w, http.StatusConflict, CodeOutOfStock, "product is out of stock")
		}, http.StatusConflict, CodeOutOfStock},
		{"validation", func(w http.ResponseWriter) {
			RespondWithValidationErrors(w, []ValidationError{{Field: "email", Message: "Email is required"}})
		}, http.StatusBadRequest, CodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.respond(w)

			var response ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("Invalid JSON: %v", err)
			}
			if w.Code != tt.status || response.Error.Code != tt.expected {
				t.Errorf("Expected %d/%s, got %d/%s", tt.status, tt.expected, w.Code, response.Error.Code)
			}
		})
	}
}

func TestErrorHandlingMiddlewareRecoversPanics(t *testing.T) {
	handler := ErrorHandlingMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}
}
