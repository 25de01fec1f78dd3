package esports

import (
	"time"

	"github.com/furiafan/furiabot/internal/pkg/models"
)

// Placeholders the normalizer substitutes for missing payload fields. The
// formatter renders them as-is.
const (
	PlaceholderTeamA = "Time A?"
	PlaceholderTeamB = "Time B?"
)

// normalizeMatch maps a raw match payload to the canonical entity. Total:
// any missing or malformed field becomes a placeholder or zero value.
func normalizeMatch(p matchPayload, loc *time.Location) models.Match {
	m := models.Match{
		ID:       p.ID,
		Name:     p.Name,
		Status:   normalizeStatus(p.Status),
		WinnerID: p.WinnerID,
	}

	if p.BeginAt != nil {
		m.StartTime = p.BeginAt.In(loc)
	}

	m.Tournament = tournamentName(p)

	sideA, sideB, ok := twoOpponents(p.Opponents)
	if ok {
		m.Teams = [2]models.MatchSide{sideA, sideB}
		m.HasTeams = true
		if m.Name == "" {
			m.Name = sideA.Name + " vs " + sideB.Name
		}
	}

	if scores, ok := pairScores(p.Results, m); ok {
		m.Scores = scores
		m.HasScores = true
	}

	return m
}

func normalizeStatus(s string) models.MatchStatus {
	switch s {
	case "not_started":
		return models.StatusNotStarted
	case "running":
		return models.StatusRunning
	case "finished":
		return models.StatusFinished
	default:
		return models.StatusUnknown
	}
}

// tournamentName prefers the serie full name over the bare tournament name.
func tournamentName(p matchPayload) string {
	if p.Serie != nil && p.Serie.FullName != "" {
		return p.Serie.FullName
	}
	if p.Tournament != nil && p.Tournament.Name != "" {
		return p.Tournament.Name
	}
	if p.League != nil {
		return p.League.Name
	}
	return ""
}

// twoOpponents extracts exactly two sides from a variable-length opponents
// array. Fewer than two entries means the pairing is unusable; extra entries
// are ignored in the provider's order.
func twoOpponents(opps []opponentPayload) (models.MatchSide, models.MatchSide, bool) {
	if len(opps) < 2 {
		return models.MatchSide{}, models.MatchSide{}, false
	}

	a := models.MatchSide{ID: opps[0].Opponent.ID, Name: opps[0].Opponent.Name}
	b := models.MatchSide{ID: opps[1].Opponent.ID, Name: opps[1].Opponent.Name}
	if a.Name == "" {
		a.Name = PlaceholderTeamA
	}
	if b.Name == "" {
		b.Name = PlaceholderTeamB
	}
	return a, b, true
}

// pairScores aligns result records to the two sides. When the result records
// carry team ids we pair by id; otherwise we trust the provider's array
// position, which the provider treats as aligned with opponents but does not
// guarantee.
func pairScores(results []resultPayload, m models.Match) ([2]int, bool) {
	if len(results) < 2 || !m.HasTeams {
		return [2]int{}, false
	}

	byID := make(map[int64]int, len(results))
	for _, r := range results {
		if r.TeamID != 0 {
			byID[r.TeamID] = r.Score
		}
	}

	sa, okA := byID[m.Teams[0].ID]
	sb, okB := byID[m.Teams[1].ID]
	if okA && okB {
		return [2]int{sa, sb}, true
	}

	// Positional fallback.
	return [2]int{results[0].Score, results[1].Score}, true
}

func normalizeTournament(p tournamentPayload, tag models.TournamentTag, loc *time.Location) models.Tournament {
	t := models.Tournament{
		ID:   p.ID,
		Name: p.Name,
		Tier: p.Tier,
		Tag:  tag,
	}
	if p.Serie != nil && p.Serie.FullName != "" {
		t.Name = p.Serie.FullName
	}
	if p.BeginAt != nil {
		t.StartDate = p.BeginAt.In(loc)
	}
	if p.EndAt != nil {
		t.EndDate = p.EndAt.In(loc)
	}
	return t
}

func normalizeRoster(p teamPayload) []models.RosterMember {
	out := make([]models.RosterMember, 0, len(p.Players))
	for _, pl := range p.Players {
		out = append(out, models.RosterMember{Name: pl.Name, Active: pl.Active})
	}
	return out
}
