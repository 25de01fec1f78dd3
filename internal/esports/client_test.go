package esports

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/furiafan/furiabot/internal/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(&config.EsportsConfig{
		BaseURL:  srv.URL,
		Token:    "secret-token",
		TeamID:   124530,
		PageSize: 50,
		Timeout:  2 * time.Second,
		Timezone: "UTC",
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestClientSendsBearerAndPageSize(t *testing.T) {
	var gotAuth, gotSize, gotSort string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotSize = r.URL.Query().Get("page[size]")
		gotSort = r.URL.Query().Get("sort")
		w.Write([]byte(`[]`))
	})

	if _, err := c.UpcomingMatches(context.Background()); err != nil {
		t.Fatal(err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotSize != "50" {
		t.Errorf("page[size] = %q", gotSize)
	}
	if gotSort != "begin_at" {
		t.Errorf("sort = %q", gotSort)
	}
}

func TestClientNon2xxIsStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	})

	_, err := c.RunningTournaments(context.Background(), 124530)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusBadRequest {
		t.Errorf("code = %d", statusErr.Code)
	}
}

func TestClientTeamFilterParam(t *testing.T) {
	var gotFilter string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotFilter = r.URL.Query().Get("filter[team_id]")
		w.Write([]byte(`[]`))
	})

	if _, err := c.RunningTournaments(context.Background(), 124530); err != nil {
		t.Fatal(err)
	}
	if gotFilter != "124530" {
		t.Errorf("filter[team_id] = %q", gotFilter)
	}

	if _, err := c.RunningTournaments(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	if gotFilter != "" {
		t.Errorf("unfiltered query must omit the team param, got %q", gotFilter)
	}
}

func TestClientDecodesAndNormalizesMatches(t *testing.T) {
	body := `[{
		"id": 99,
		"name": "FURIA vs NAVI",
		"status": "running",
		"begin_at": "2026-06-01T18:00:00Z",
		"opponents": [
			{"opponent": {"id": 124530, "name": "FURIA"}},
			{"opponent": {"id": 1, "name": "NAVI"}}
		],
		"results": [
			{"team_id": 124530, "score": 1,
			 "extra_key_we_do_not_know": true},
			{"team_id": 1, "score": 0}
		],
		"serie": {"full_name": "Major 2026"}
	}]`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})

	matches, err := c.RunningMatches(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches", len(matches))
	}

	m := matches[0]
	if !m.HasTeam(124530) {
		t.Error("team id must be present on a side")
	}
	if m.Tournament != "Major 2026" {
		t.Errorf("tournament = %q", m.Tournament)
	}
	if !m.HasScores || m.Scores != [2]int{1, 0} {
		t.Errorf("scores = %v has=%v", m.Scores, m.HasScores)
	}
}

func TestClientMatchesByDateRange(t *testing.T) {
	var gotRange string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotRange = r.URL.Query().Get("range[begin_at]")
		w.Write([]byte(`[]`))
	})

	day := time.Date(2026, 6, 1, 13, 45, 0, 0, time.UTC)
	if _, err := c.MatchesByDate(context.Background(), day); err != nil {
		t.Fatal(err)
	}
	want := "2026-06-01T00:00:00Z,2026-06-02T00:00:00Z"
	if gotRange != want {
		t.Errorf("range[begin_at] = %q, want %q", gotRange, want)
	}
}

func TestClientTeamDetail(t *testing.T) {
	body := `{"id": 124530, "name": "FURIA", "players": [
		{"name": "yuurih", "active": true},
		{"name": "bench", "active": false}
	]}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams/124530" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(body))
	})

	members, err := c.Team(context.Background(), 124530)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 2 || members[0].Name != "yuurih" || !members[0].Active || members[1].Active {
		t.Errorf("members = %+v", members)
	}
}
