package transport

import (
	"net/http"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestRegisterValidationReportsEveryField(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/api/users/register", RegisterRequest{
		FullName:        " ",
		Email:           "john.doe",
		Password:        "123",
		ConfirmPassword: "321",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	var body errorBody
	decodeBody(t, w, &body)

	got := map[string]string{}
	for _, e := range body.Error.Details.ValidationErrors {
		got[e.Field] = e.Message
	}

	want := map[string]string{
		"full_name":        "Full name is required",
		"email":            "Please enter a valid email address",
		"password":         "Password must be at least 6 characters",
		"confirm_password": "Passwords do not match",
	}
	for field, message := range want {
		if got[field] != message {
			t.Errorf("%s: got %q, want %q", field, got[field], message)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, "dup@example.com")

	w := env.do(t, "POST", "/api/users/register", RegisterRequest{
		FullName:        "Jane Doe",
		Email:           "DUP@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}, "")
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409, got %d", w.Code)
	}
}

func TestProperty_WrongPasswordIsRejected(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, "login@example.com")

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 10
	properties := gopter.NewProperties(params)

	properties.Property("login with a wrong password returns 401", prop.ForAll(
		func(password string) bool {
			w := env.do(t, "POST", "/api/users/login", LoginRequest{Email: "login@example.com", Password: password}, "")
			return w.Code == http.StatusUnauthorized
		},
		gen.RegexMatch(`[a-z0-9]{6,12}`).SuchThat(func(s string) bool { return s != "secret1" }),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProfileAndRefresh(t *testing.T) {
	env := newTestEnv(t)
	session := env.signIn(t, "profile@example.com")

	w := env.do(t, "GET", "/api/users/profile", nil, session.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var profile UserProfile
	decodeBody(t, w, &profile)
	if profile.FullName != "John Doe" || profile.Email != "profile@example.com" || profile.Role != "customer" {
		t.Errorf("Unexpected profile: %+v", profile)
	}

	w = env.do(t, "POST", "/api/users/refresh", RefreshRequest{RefreshToken: session.RefreshToken}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on refresh, got %d", w.Code)
	}
	var refreshed RefreshResponse
	decodeBody(t, w, &refreshed)
	if refreshed.AccessToken == "" {
		t.Error("Expected a new access token")
	}

	w = env.do(t, "POST", "/api/users/logout", RefreshRequest{RefreshToken: session.RefreshToken}, session.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on logout, got %d", w.Code)
	}

	w = env.do(t, "POST", "/api/users/refresh", RefreshRequest{RefreshToken: session.RefreshToken}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for revoked refresh token, got %d", w.Code)
	}
}

func TestForgotPasswordDoesNotRevealAccounts(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, "known@example.com")

	for _, email := range []string{"known@example.com", "nobody@example.com"} {
		w := env.do(t, "POST", "/api/users/forgot-password", ForgotPasswordRequest{Email: email}, "")
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", email, w.Code)
		}

		var resp ForgotPasswordResponse
		decodeBody(t, w, &resp)
		if resp.Message != "We've sent a password reset link to "+email {
			t.Errorf("Unexpected message %q", resp.Message)
		}
	}

	if w := env.do(t, "POST", "/api/users/forgot-password", ForgotPasswordRequest{Email: "bad"}, ""); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed email, got %d", w.Code)
	}
}

func TestResetPasswordFlow(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, "reset@example.com")

	w := env.do(t, "POST", "/api/users/forgot-password", ForgotPasswordRequest{Email: "reset@example.com"}, "")
	var resp ForgotPasswordResponse
	decodeBody(t, w, &resp)
	if resp.ResetToken == "" {
		t.Fatal("Expected a reset token for a known email")
	}

	reset := ResetPasswordRequest{Token: resp.ResetToken, NewPassword: "newpass1", ConfirmNewPassword: "newpass1"}
	if w := env.do(t, "POST", "/api/users/reset-password", reset, ""); w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w := env.do(t, "POST", "/api/users/reset-password", reset, ""); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 on token reuse, got %d", w.Code)
	}

	if w := env.do(t, "POST", "/api/users/login", LoginRequest{Email: "reset@example.com", Password: "secret1"}, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected old password to fail, got %d", w.Code)
	}
	if w := env.do(t, "POST", "/api/users/login", LoginRequest{Email: "reset@example.com", Password: "newpass1"}, ""); w.Code != http.StatusOK {
		t.Errorf("Expected new password to work, got %d", w.Code)
	}
}
