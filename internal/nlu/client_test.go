package nlu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/furiafan/furiabot/internal/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&config.NLUConfig{
		BaseURL: srv.URL,
		Token:   "nlu-token",
		Timeout: 2 * time.Second,
	})
}

func TestDetectIntentParsesLabelAndSlots(t *testing.T) {
	var gotPath, gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"queryResult":{"intent":{"displayName":"team_stats"},"parameters":{"year":2019}}}`))
	})

	res := c.DetectIntent(context.Background(), "tg-42", "retrospecto de 2019")
	if res.Absent {
		t.Fatal("result must be present")
	}
	if res.Label != "team_stats" {
		t.Errorf("label = %q", res.Label)
	}
	if res.Slots["year"] != "2019" {
		t.Errorf("numeric slot must flatten without fraction, got %q", res.Slots["year"])
	}
	if !strings.Contains(gotPath, "tg-42") {
		t.Errorf("session id must be in the path, got %q", gotPath)
	}
	if gotAuth != "Bearer nlu-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestDetectIntentAbsentOnFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		text    string
	}{
		{
			"auth failure",
			func(w http.ResponseWriter, r *http.Request) { http.Error(w, "denied", http.StatusUnauthorized) },
			"oi",
		},
		{
			"garbage body",
			func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("{{{")) },
			"oi",
		},
		{
			"no intent in result",
			func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"queryResult":{}}`)) },
			"oi",
		},
		{
			"empty input",
			func(w http.ResponseWriter, r *http.Request) { t.Error("empty input must not hit the provider") },
			"   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			res := c.DetectIntent(context.Background(), "tg-1", tt.text)
			if !res.Absent {
				t.Errorf("result must be absent, got %+v", res)
			}
		})
	}
}

func TestDetectIntentAbsentWithoutEndpoint(t *testing.T) {
	c := NewClient(&config.NLUConfig{})
	if res := c.DetectIntent(context.Background(), "tg-1", "fala"); !res.Absent {
		t.Errorf("missing endpoint must yield absent, got %+v", res)
	}
}
