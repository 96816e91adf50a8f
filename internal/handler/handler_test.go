package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/msomdec/creator-studio/internal/handler"
	"github.com/msomdec/creator-studio/internal/repository/sqlite"
	"github.com/msomdec/creator-studio/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests"

type fakeMailer struct {
	sent map[string]string // email -> last code
}

func (m *fakeMailer) SendOTP(ctx context.Context, to, code string) error {
	m.sent[to] = code
	return nil
}

type fakeCompleter struct {
	response string
}

func (c *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return c.response, nil
}

type fakeFetcher struct{}

func (f *fakeFetcher) FetchAudio(ctx context.Context, text string) ([]byte, error) {
	return []byte(text), nil
}

type fakeImages struct {
	url string
	err error
}

func (f *fakeImages) Generate(ctx context.Context, prompt string) (string, error) {
	return f.url, f.err
}

type testEnv struct {
	auth     *service.AuthService
	contents *service.ContentService
	speech   *service.SpeechService
	images   *fakeImages
	mailer   *fakeMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mailer := &fakeMailer{sent: make(map[string]string)}
	return &testEnv{
		auth:     service.NewAuthService(db.Users(), mailer, testJWTSecret, 4),
		contents: service.NewContentService(db.Contents(), &fakeCompleter{response: "generated"}),
		speech:   service.NewSpeechService(&fakeFetcher{}, 200),
		images:   &fakeImages{url: "https://img.example.com/1.png"},
		mailer:   mailer,
	}
}

func (e *testEnv) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, e.auth, e.contents, e.speech, e.images, nil)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// signUpToken walks a user through the OTP flow at the service level and
// returns a bearer token.
func (e *testEnv) signUpToken(t *testing.T, email, name, password string) string {
	t.Helper()
	ctx := context.Background()
	if err := e.auth.SendOTP(ctx, email); err != nil {
		t.Fatalf("SendOTP: %v", err)
	}
	if err := e.auth.VerifyOTP(ctx, email, e.mailer.sent[email]); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	_, token, err := e.auth.CompleteSignup(ctx, email, name, password)
	if err != nil {
		t.Fatalf("CompleteSignup: %v", err)
	}
	return token
}

// doJSON issues a request with an optional bearer token and JSON body,
// decoding the JSON response into out when out is non-nil.
func doJSON(t *testing.T, client *http.Client, method, url, token string, body any, out any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}
