package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/creator-studio/internal/domain"
	"github.com/msomdec/creator-studio/internal/service"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleSendOTP starts registration by mailing a one-time passcode.
// POST /api/auth/send-otp
// Request:  {"email":"..."}
// Response: {"message":"..."} or 400 if a verified user owns the email
func (h *AuthHandler) HandleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.auth.SendOTP(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeMessage(w, http.StatusBadRequest, "User already exists.")
		case errors.Is(err, domain.ErrInvalidInput):
			writeMessage(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("send otp", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Error sending OTP.")
		}
		return
	}

	writeMessage(w, http.StatusOK, "OTP sent to email.")
}

// HandleVerifyOTP confirms a pending passcode.
// POST /api/auth/verify-otp
// Request:  {"email":"...","otp":"..."}
// Response: {"message":"..."}
func (h *AuthHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.auth.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "OTP not found. Please request a new one.")
		case errors.Is(err, domain.ErrOTPExpired):
			writeMessage(w, http.StatusBadRequest, "OTP has expired. Please request a new one.")
		case errors.Is(err, domain.ErrUnauthorized):
			writeMessage(w, http.StatusUnauthorized, "Invalid OTP.")
		case errors.Is(err, domain.ErrInvalidInput):
			writeMessage(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("verify otp", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Server error during OTP verification.")
		}
		return
	}

	writeMessage(w, http.StatusOK, "OTP verified successfully.")
}

// HandleCompleteSignup finishes registration for a verified email.
// POST /api/auth/complete-signup
// Request:  {"email":"...","name":"...","password":"..."}
// Response: {"id":...,"name":"...","email":"...","token":"..."}
func (h *AuthHandler) HandleCompleteSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, token, err := h.auth.CompleteSignup(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, http.StatusBadRequest, "User does not exist.")
		case errors.Is(err, domain.ErrAlreadyRegistered):
			writeMessage(w, http.StatusConflict, "User already completed signup.")
		case errors.Is(err, domain.ErrInvalidInput):
			writeMessage(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("complete signup", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Error completing signup.")
		}
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponseDTO(user, token))
}

// HandleLogin processes a JSON login request.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"id":...,"name":"...","email":"...","token":"..."}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "User not found.")
		case errors.Is(err, domain.ErrUnauthorized):
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials.")
		default:
			slog.Error("login user", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Login failed.")
		}
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponseDTO(user, token))
}

// HandleCheck returns the currently authenticated user.
// GET /api/auth/check
// Response: {"message":"...","user":{...}}
func (h *AuthHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeMessage(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Authenticated",
		"user":    toUserDTO(user),
	})
}

// HandleUpdatePassword replaces the caller's password.
// PUT /api/auth/updatePassword
// Request:  {"currentPassword":"...","newPassword":"..."}
// Response: {"message":"..."}
func (h *AuthHandler) HandleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeMessage(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.auth.UpdatePassword(r.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			writeMessage(w, http.StatusUnauthorized, "Incorrect current password.")
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "User not found.")
		case errors.Is(err, domain.ErrInvalidInput):
			writeMessage(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("update password", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Error updating password.")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Password updated successfully.")
}

// HandleDeleteAccount deletes the caller's account. Content items are not
// cascade-deleted.
// DELETE /api/auth/delete
// Response: {"message":"..."} or 404 if already deleted
func (h *AuthHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeMessage(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	if err := h.auth.DeleteAccount(r.Context(), user.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found.")
			return
		}
		slog.Error("delete account", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error deleting account.")
		return
	}

	writeMessage(w, http.StatusOK, "Account deleted successfully.")
}

// HandleLogout acknowledges logout. Sessions are stateless bearer tokens,
// so the client simply discards its copy.
// POST /api/auth/logout
// Response: {"message":"..."}
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Logged out successfully.")
}
