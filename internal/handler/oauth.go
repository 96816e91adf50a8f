package handler

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/msomdec/creator-studio/internal/service"
	"golang.org/x/oauth2"
)

const oauthStateCookie = "oauth_state"

// googleProfile is the subset of the Google userinfo response we use.
type googleProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleHandler implements the Google OAuth login flow. The callback hands
// the session token and a URL-encoded user object back to the SPA as query
// parameters; on any failure it redirects to the SPA login page instead.
type GoogleHandler struct {
	auth        *service.AuthService
	oauth       *oauth2.Config
	clientURL   string
	userInfoURL string
}

// NewGoogleHandler creates a new GoogleHandler redirecting back to the SPA
// at clientURL.
func NewGoogleHandler(auth *service.AuthService, oauth *oauth2.Config, clientURL string) *GoogleHandler {
	return &GoogleHandler{
		auth:        auth,
		oauth:       oauth,
		clientURL:   clientURL,
		userInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
	}
}

// HandleRedirect sends the browser to Google's consent screen.
// GET /api/auth/google
func (h *GoogleHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	state, err := randomState()
	if err != nil {
		slog.Error("generate oauth state", "error", err)
		writeMessage(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300,
	})

	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// HandleCallback exchanges the authorization code, fetches the Google
// profile, finds or creates the account, and redirects to the SPA with
// `?token=&user=<url-encoded json>`.
// GET /api/auth/google/callback
func (h *GoogleHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		h.failClosed(w, r, "oauth state mismatch", err)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.failClosed(w, r, "oauth callback without code", nil)
		return
	}

	token, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		h.failClosed(w, r, "oauth code exchange", err)
		return
	}

	profile, err := h.fetchProfile(r, token)
	if err != nil {
		h.failClosed(w, r, "fetch google profile", err)
		return
	}

	user, jwtToken, err := h.auth.LoginWithGoogle(r.Context(), profile.ID, profile.Name, profile.Email)
	if err != nil {
		h.failClosed(w, r, "google login", err)
		return
	}

	userJSON, err := json.Marshal(toUserDTO(user))
	if err != nil {
		h.failClosed(w, r, "marshal user", err)
		return
	}

	redirect := h.clientURL + "/google-auth?token=" + url.QueryEscape(jwtToken) +
		"&user=" + url.QueryEscape(string(userJSON))
	http.Redirect(w, r, redirect, http.StatusTemporaryRedirect)
}

func (h *GoogleHandler) fetchProfile(r *http.Request, token *oauth2.Token) (*googleProfile, error) {
	resp, err := h.oauth.Client(r.Context(), token).Get(h.userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var profile googleProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// failClosed logs the failure server-side and sends the browser back to
// the SPA login page with no detail attached.
func (h *GoogleHandler) failClosed(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Redirect(w, r, h.clientURL+"/login", http.StatusTemporaryRedirect)
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
