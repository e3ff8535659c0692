package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type testEnv struct {
	router  http.Handler
	rotator *service.BannerRotator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	catalogService := service.NewCatalogService(
		repository.NewFixtureCategoryRepository(repository.FixtureCategories()),
		repository.NewFixtureProductRepository(repository.FixtureProducts()),
	)
	cartService := service.NewCartService(
		repository.NewCartRepository(repository.FixtureCartLines),
		repository.NewOrderRepository(nil),
		decimal.Zero,
	)
	authService := service.NewAuthService(
		repository.NewUserRepository(),
		repository.NewRefreshTokenRepository(),
		repository.NewPasswordResetRepository(),
		service.TokenSettings{Secret: testSecret, AccessExpiry: 15 * time.Minute, RefreshExpiry: 24 * time.Hour},
		logger,
	)
	rotator := service.NewBannerRotator(repository.FixtureBanners(), 0, logger)

	authMiddleware := middleware.AuthMiddleware(testSecret, logger)
	noop := func(next http.Handler) http.Handler { return next }

	r := chi.NewRouter()
	NewCatalogHandler(catalogService, logger).RegisterRoutes(r)
	NewBannerHandler(rotator).RegisterRoutes(r)
	NewUserHandler(authService, cartService, true, logger).RegisterRoutes(r, authMiddleware, noop)
	NewCartHandler(cartService, catalogService, logger).RegisterRoutes(r,
		authMiddleware,
		middleware.RequireRole([]string{service.RoleCustomer}, logger),
	)

	return &testEnv{router: r, rotator: rotator}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signIn registers a customer and returns the login response
func (e *testEnv) signIn(t *testing.T, email string) LoginResponse {
	t.Helper()

	w := e.do(t, "POST", "/api/users/register", RegisterRequest{
		FullName:        "John Doe",
		Email:           email,
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = e.do(t, "POST", "/api/users/login", LoginRequest{Email: email, Password: "secret1"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp LoginResponse
	decodeBody(t, w, &resp)
	return resp
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			ValidationErrors []middleware.ValidationError `json:"validation_errors"`
		} `json:"details"`
	} `json:"error"`
}
