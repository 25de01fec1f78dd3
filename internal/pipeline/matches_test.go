package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/furiafan/furiabot/internal/pkg/models"
)

func matchWith(id int64, a, b models.MatchSide) models.Match {
	return models.Match{
		ID:       id,
		Name:     a.Name + " vs " + b.Name,
		Teams:    [2]models.MatchSide{a, b},
		HasTeams: true,
	}
}

var (
	furia = models.MatchSide{ID: testTeamID, Name: "FURIA"}
	navi  = models.MatchSide{ID: 1, Name: "NAVI"}
	g2    = models.MatchSide{ID: 2, Name: "G2"}
	faze  = models.MatchSide{ID: 3, Name: "FaZe"}
)

func TestNextMatchPicksFirstEntryWithTeam(t *testing.T) {
	api := &stubScores{
		upcoming: func() ([]models.Match, error) {
			return []models.Match{
				matchWith(1, navi, g2),
				matchWith(2, g2, faze),
				matchWith(3, furia, navi),
				matchWith(4, furia, g2),
			}, nil
		},
	}
	s := newTestService(api, nil)

	render := s.NextMatch(context.Background())
	if !strings.Contains(render.Text, "FURIA vs NAVI") {
		t.Errorf("expected the 3rd entry to be rendered, got %q", render.Text)
	}
	if strings.Contains(render.Text, "G2 vs FaZe") {
		t.Errorf("entries without the team must not be rendered, got %q", render.Text)
	}
}

func TestNextMatchWindowWithoutTeamIsNotAnError(t *testing.T) {
	api := &stubScores{
		upcoming: func() ([]models.Match, error) {
			return []models.Match{matchWith(1, navi, g2)}, nil
		},
	}
	s := newTestService(api, nil)

	render := s.NextMatch(context.Background())
	if !strings.Contains(render.Text, "Nenhum jogo") {
		t.Errorf("expected the not-found render, got %q", render.Text)
	}
}

func TestNextMatchUpstreamFailureIsDegraded(t *testing.T) {
	api := &stubScores{
		upcoming: func() ([]models.Match, error) { return nil, errors.New("boom") },
	}
	s := newTestService(api, nil)

	render := s.NextMatch(context.Background())
	if !strings.Contains(render.Text, "Não consegui") {
		t.Errorf("expected the degraded render, got %q", render.Text)
	}
}

func TestLastMatchResolvesOutcomeByWinnerID(t *testing.T) {
	tests := []struct {
		name     string
		winnerID int64
		want     string
	}{
		{"win", testTeamID, "VITÓRIA"},
		{"loss", 1, "não deu"},
		{"no winner", 0, "empate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := matchWith(10, furia, navi)
			m.WinnerID = tt.winnerID
			api := &stubScores{
				past: func() ([]models.Match, error) { return []models.Match{m}, nil },
			}
			s := newTestService(api, nil)

			render := s.LastMatch(context.Background())
			if !strings.Contains(render.Text, tt.want) {
				t.Errorf("LastMatch outcome = %q, want substring %q", render.Text, tt.want)
			}
		})
	}
}

func TestTodayPartialFailureKeepsScheduledSection(t *testing.T) {
	scheduled := matchWith(5, furia, faze)
	api := &stubScores{
		running: func() ([]models.Match, error) { return nil, errors.New("upstream 500") },
		byDate: func(day time.Time) ([]models.Match, error) {
			return []models.Match{scheduled}, nil
		},
	}
	s := newTestService(api, nil)

	render := s.Today(context.Background())
	if !strings.Contains(render.Text, "Agendados") {
		t.Errorf("scheduled section must survive the running-source failure, got %q", render.Text)
	}
	if strings.Contains(render.Text, "Ao vivo") {
		t.Errorf("live section must be omitted when its source fails, got %q", render.Text)
	}
}

func TestTodayDropsRunningIDsFromScheduled(t *testing.T) {
	live := matchWith(7, furia, navi)
	api := &stubScores{
		running: func() ([]models.Match, error) { return []models.Match{live}, nil },
		byDate: func(day time.Time) ([]models.Match, error) {
			return []models.Match{live, matchWith(8, g2, faze)}, nil
		},
	}
	s := newTestService(api, nil)

	render := s.Today(context.Background())
	if got := strings.Count(render.Text, "FURIA vs NAVI"); got != 1 {
		t.Errorf("a match present in both sets must render once, got %d occurrences in %q", got, render.Text)
	}
}

func TestTodayBothSourcesEmpty(t *testing.T) {
	s := newTestService(&stubScores{}, nil)

	render := s.Today(context.Background())
	if !strings.Contains(render.Text, "Sem jogos") {
		t.Errorf("expected the empty-day render, got %q", render.Text)
	}
}

func TestRosterOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		members []models.RosterMember
		err     error
		want    string
	}{
		{
			name: "active only surfaced",
			members: []models.RosterMember{
				{Name: "yuurih", Active: true},
				{Name: "oldplayer", Active: false},
				{Name: "KSCERATO", Active: true},
			},
			want: "yuurih",
		},
		{
			name: "zero players",
			want: "não listou nenhum jogador",
		},
		{
			name:    "zero active players",
			members: []models.RosterMember{{Name: "benched", Active: false}},
			want:    "Nenhum jogador ativo",
		},
		{
			name: "fetch failure",
			err:  errors.New("timeout"),
			want: "Não consegui",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &stubScores{
				team: func(id int64) ([]models.RosterMember, error) { return tt.members, tt.err },
			}
			s := newTestService(api, nil)

			render := s.Roster(context.Background())
			if !strings.Contains(render.Text, tt.want) {
				t.Errorf("Roster render = %q, want substring %q", render.Text, tt.want)
			}
		})
	}
}

func TestRosterHidesInactiveMembers(t *testing.T) {
	api := &stubScores{
		team: func(id int64) ([]models.RosterMember, error) {
			return []models.RosterMember{
				{Name: "yuurih", Active: true},
				{Name: "retired", Active: false},
			}, nil
		},
	}
	s := newTestService(api, nil)

	render := s.Roster(context.Background())
	if strings.Contains(render.Text, "retired") {
		t.Errorf("inactive members must not be rendered, got %q", render.Text)
	}
}
