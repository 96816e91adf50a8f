package handler_test

import (
	"net/http"
	"testing"
)

func TestAuthFlow_OverHTTP(t *testing.T) {
	env := newTestEnv(t)
	srv := env.server(t)
	client := srv.Client()

	// Request an OTP.
	resp := doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/send-otp", "",
		map[string]string{"email": "flow@example.com"}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("send-otp status = %d, want 200", resp.StatusCode)
	}
	code, ok := env.mailer.sent["flow@example.com"]
	if !ok {
		t.Fatal("no OTP was mailed")
	}

	// Wrong code is rejected.
	wrongCode := "000000"
	if code == wrongCode {
		wrongCode = "111111"
	}
	resp = doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/verify-otp", "",
		map[string]string{"email": "flow@example.com", "otp": wrongCode}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("verify-otp wrong code status = %d, want 401", resp.StatusCode)
	}

	// Right code verifies.
	resp = doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/verify-otp", "",
		map[string]string{"email": "flow@example.com", "otp": code}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify-otp status = %d, want 200", resp.StatusCode)
	}

	// Complete signup returns the user and a token.
	var signup struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Token string `json:"token"`
	}
	resp = doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/complete-signup", "",
		map[string]string{"email": "flow@example.com", "name": "Flow", "password": "password123"}, &signup)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete-signup status = %d, want 200", resp.StatusCode)
	}
	if signup.Token == "" || signup.Email != "flow@example.com" || signup.Name != "Flow" {
		t.Fatalf("unexpected signup response: %+v", signup)
	}

	// Login with the password.
	var login struct {
		ID    int64  `json:"id"`
		Token string `json:"token"`
	}
	resp = doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/login", "",
		map[string]string{"email": "flow@example.com", "password": "password123"}, &login)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
	if login.ID != signup.ID {
		t.Errorf("login id = %d, want %d", login.ID, signup.ID)
	}

	// The token authenticates the check endpoint.
	var check struct {
		Message string `json:"message"`
		User    struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	resp = doJSON(t, client, http.MethodGet, srv.URL+"/api/auth/check", login.Token, nil, &check)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("check status = %d, want 200", resp.StatusCode)
	}
	if check.User.Email != "flow@example.com" {
		t.Errorf("check user email = %q", check.User.Email)
	}
}

func TestSendOTP_ExistingUserConflicts(t *testing.T) {
	env := newTestEnv(t)
	srv := env.server(t)
	env.signUpToken(t, "taken@example.com", "Taken", "password123")

	resp := doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/api/auth/send-otp", "",
		map[string]string{"email": "taken@example.com"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	env := newTestEnv(t)
	srv := env.server(t)
	env.signUpToken(t, "login@example.com", "Login", "password123")

	resp := doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/api/auth/login", "",
		map[string]string{"email": "login@example.com", "password": "wrongpass"}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", resp.StatusCode)
	}

	resp = doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/api/auth/login", "",
		map[string]string{"email": "nobody@example.com", "password": "password123"}, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown user status = %d, want 404", resp.StatusCode)
	}
}

func TestUpdatePassword_OverHTTP(t *testing.T) {
	env := newTestEnv(t)
	srv := env.server(t)
	client := srv.Client()
	token := env.signUpToken(t, "pw@example.com", "PW", "oldpassword1")

	resp := doJSON(t, client, http.MethodPut, srv.URL+"/api/auth/updatePassword", token,
		map[string]string{"currentPassword": "nope", "newPassword": "newpassword1"}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong current password status = %d, want 401", resp.StatusCode)
	}

	resp = doJSON(t, client, http.MethodPut, srv.URL+"/api/auth/updatePassword", token,
		map[string]string{"currentPassword": "oldpassword1", "newPassword": "newpassword1"}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update password status = %d, want 200", resp.StatusCode)
	}

	resp = doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/login", "",
		map[string]string{"email": "pw@example.com", "password": "newpassword1"}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login with new password status = %d, want 200", resp.StatusCode)
	}
}

func TestDeleteAccount_OverHTTP(t *testing.T) {
	env := newTestEnv(t)
	srv := env.server(t)
	client := srv.Client()
	token := env.signUpToken(t, "bye@example.com", "Bye", "password123")

	// Owning content must not block deletion.
	resp := doJSON(t, client, http.MethodPost, srv.URL+"/api/content", token,
		map[string]any{
			"type": "script",
			"data": map[string]string{"prompt": "p", "response": "r"},
		}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create content status = %d, want 201", resp.StatusCode)
	}

	resp = doJSON(t, client, http.MethodDelete, srv.URL+"/api/auth/delete", token, nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", resp.StatusCode)
	}

	// The old token no longer authenticates.
	resp = doJSON(t, client, http.MethodGet, srv.URL+"/api/auth/check", token, nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("check after delete status = %d, want 401", resp.StatusCode)
	}
}

func TestLogout_Stateless(t *testing.T) {
	env := newTestEnv(t)
	srv := env.server(t)

	resp := doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/api/auth/logout", "", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", resp.StatusCode)
	}
}
