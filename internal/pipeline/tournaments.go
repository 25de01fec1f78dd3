package pipeline

import (
	"context"
	"log/slog"
	"sort"

	"github.com/furiafan/furiabot/internal/format"
	"github.com/furiafan/furiabot/internal/pkg/models"
)

// Tournaments is a two-tier fallback. Tier one asks running+upcoming with
// the team filter; the filter parameter is a guess the provider may reject
// with a 400, and a rejected or empty tier-one result falls through to the
// unfiltered tier, marked as general results in the render.
func (s *Service) Tournaments(ctx context.Context) format.Render {
	combined := s.fetchTournaments(ctx, s.teamID)
	if len(combined) > 0 {
		return format.Tournaments(combined, false, false)
	}

	combined, failed := s.fetchTournamentsChecked(ctx, 0)
	if failed {
		return format.Tournaments(nil, true, true)
	}
	return format.Tournaments(combined, true, false)
}

func (s *Service) fetchTournaments(ctx context.Context, teamID int64) []models.Tournament {
	combined, _ := s.fetchTournamentsChecked(ctx, teamID)
	return combined
}

// fetchTournamentsChecked issues the running and upcoming queries
// concurrently and merges them. failed is true only when both sources
// errored; a single failing source just contributes nothing.
func (s *Service) fetchTournamentsChecked(ctx context.Context, teamID int64) (combined []models.Tournament, failed bool) {
	running, runErr, upcoming, upErr := fetchPair(
		func() ([]models.Tournament, error) { return s.api.RunningTournaments(ctx, teamID) },
		func() ([]models.Tournament, error) { return s.api.UpcomingTournaments(ctx, teamID) },
	)
	if runErr != nil {
		slog.Warn("Running tournaments fetch failed", "team_id", teamID, "error", runErr)
	}
	if upErr != nil {
		slog.Warn("Upcoming tournaments fetch failed", "team_id", teamID, "error", upErr)
	}

	// Dedup by id across the pair: running results merge first, so their
	// tag wins for ids present in both.
	seen := make(map[int64]struct{}, len(running)+len(upcoming))
	for _, t := range running {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		combined = append(combined, t)
	}
	for _, t := range upcoming {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		combined = append(combined, t)
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].StartDate.Before(combined[j].StartDate)
	})

	return combined, runErr != nil && upErr != nil
}
