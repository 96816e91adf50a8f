package handler_test

import (
	"errors"
	"net/http"
	"testing"
)

func TestHandleThumbnailGenerate(t *testing.T) {
	env := newTestEnv(t)
	srv := env.server(t)

	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	resp := doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/api/thumbnail", "",
		map[string]string{"prompt": "a neon city skyline"}, &out)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if out.ImageURL != env.images.url {
		t.Errorf("imageUrl = %q, want %q", out.ImageURL, env.images.url)
	}
}

func TestHandleThumbnailGenerate_Failures(t *testing.T) {
	env := newTestEnv(t)
	srv := env.server(t)

	resp := doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/api/thumbnail", "",
		map[string]string{"prompt": "  "}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("blank prompt status = %d, want 400", resp.StatusCode)
	}

	env.images.err = errors.New("provider down")
	resp = doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/api/thumbnail", "",
		map[string]string{"prompt": "a mountain"}, nil)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("provider failure status = %d, want 500", resp.StatusCode)
	}
}
