package handler

import (
	"net/http"

	"github.com/msomdec/creator-studio/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. The Google
// handler may be nil when OAuth is not configured; its routes are then
// omitted.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	contents *service.ContentService,
	speech *service.SpeechService,
	images ImageGenerator,
	google *GoogleHandler,
) {
	authHandler := NewAuthHandler(auth)
	contentHandler := NewContentHandler(contents)
	speechHandler := NewSpeechHandler(speech)
	thumbnailHandler := NewThumbnailHandler(images)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	// Auth.
	mux.HandleFunc("POST /api/auth/send-otp", authHandler.HandleSendOTP)
	mux.HandleFunc("POST /api/auth/verify-otp", authHandler.HandleVerifyOTP)
	mux.HandleFunc("POST /api/auth/complete-signup", authHandler.HandleCompleteSignup)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/check", RequireAuth(auth, http.HandlerFunc(authHandler.HandleCheck)))
	mux.Handle("PUT /api/auth/updatePassword", RequireAuth(auth, http.HandlerFunc(authHandler.HandleUpdatePassword)))
	mux.Handle("DELETE /api/auth/delete", RequireAuth(auth, http.HandlerFunc(authHandler.HandleDeleteAccount)))

	if google != nil {
		mux.HandleFunc("GET /api/auth/google", google.HandleRedirect)
		mux.HandleFunc("GET /api/auth/google/callback", google.HandleCallback)
	}

	// Content.
	mux.Handle("POST /api/content", RequireAuth(auth, http.HandlerFunc(contentHandler.HandleCreate)))
	mux.Handle("GET /api/content", RequireAuth(auth, http.HandlerFunc(contentHandler.HandleList)))
	mux.Handle("POST /api/content/save", RequireAuth(auth, http.HandlerFunc(contentHandler.HandleSave)))
	mux.Handle("POST /api/content/generate", RequireAuth(auth, http.HandlerFunc(contentHandler.HandleGenerate)))
	mux.Handle("DELETE /api/content/{id}", RequireAuth(auth, http.HandlerFunc(contentHandler.HandleDelete)))

	// Providers.
	mux.HandleFunc("POST /api/tts", speechHandler.HandleSynthesize)
	mux.HandleFunc("POST /api/thumbnail", thumbnailHandler.HandleGenerate)
}
