package pipeline

import (
	"context"
	"log/slog"

	"github.com/furiafan/furiabot/internal/format"
	"github.com/furiafan/furiabot/internal/pkg/models"
)

// NextMatch scans the upcoming-matches window for the first match with the
// team on either side. The provider offers no server-side team filter here,
// so the scan order is the provider's: first hit wins, no reordering.
func (s *Service) NextMatch(ctx context.Context) format.Render {
	matches, err := s.api.UpcomingMatches(ctx)
	if err != nil {
		slog.Warn("Upcoming matches fetch failed", "error", err)
		return format.NextMatchDegraded()
	}

	m, found := firstWithTeam(matches, s.teamID)
	return format.NextMatch(m, found)
}

// LastMatch is the mirror of NextMatch over the past-matches window, which
// arrives ordered by end time descending; the first hit is the most recent.
func (s *Service) LastMatch(ctx context.Context) format.Render {
	matches, err := s.api.PastMatches(ctx)
	if err != nil {
		slog.Warn("Past matches fetch failed", "error", err)
		return format.LastMatchDegraded()
	}

	m, found := firstWithTeam(matches, s.teamID)
	return format.LastMatch(m, found, s.teamID)
}

func firstWithTeam(matches []models.Match, teamID int64) (models.Match, bool) {
	for _, m := range matches {
		if m.HasTeam(teamID) {
			return m, true
		}
	}
	return models.Match{}, false
}

// Today merges the global running set with the matches starting today. A
// match already running can still appear in the scheduled query while its
// status transitions, so running ids are dropped from the scheduled section.
func (s *Service) Today(ctx context.Context) format.Render {
	today := s.now().In(s.loc)

	running, runErr, scheduled, schedErr := fetchPair(
		func() ([]models.Match, error) { return s.api.RunningMatches(ctx) },
		func() ([]models.Match, error) { return s.api.MatchesByDate(ctx, today) },
	)
	if runErr != nil {
		slog.Warn("Running matches fetch failed", "error", runErr)
	}
	if schedErr != nil {
		slog.Warn("Scheduled matches fetch failed", "error", schedErr)
	}

	liveIDs := make(map[int64]struct{}, len(running))
	for _, m := range running {
		liveIDs[m.ID] = struct{}{}
	}

	kept := scheduled[:0]
	for _, m := range scheduled {
		if _, dup := liveIDs[m.ID]; !dup {
			kept = append(kept, m)
		}
	}

	return format.Today(running, kept, runErr == nil, schedErr == nil)
}

// Roster filters the team detail payload down to active members. An empty
// roster and a roster with no active members are distinct outcomes, not
// failures.
func (s *Service) Roster(ctx context.Context) format.Render {
	members, err := s.api.Team(ctx, s.teamID)
	if err != nil {
		slog.Warn("Team detail fetch failed", "error", err)
		return format.Roster(nil, format.RosterFetchFailed)
	}

	if len(members) == 0 {
		return format.Roster(nil, format.RosterNoPlayers)
	}

	active := make([]models.RosterMember, 0, len(members))
	for _, m := range members {
		if m.Active {
			active = append(active, m)
		}
	}
	if len(active) == 0 {
		return format.Roster(nil, format.RosterNoActive)
	}

	return format.Roster(active, format.RosterOK)
}
