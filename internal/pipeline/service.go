package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/furiafan/furiabot/internal/format"
	"github.com/furiafan/furiabot/internal/pkg/config"
	"github.com/furiafan/furiabot/internal/pkg/models"
	"github.com/furiafan/furiabot/internal/stats"
)

// ScoresAPI is the upstream scores/tournaments collaborator boundary.
type ScoresAPI interface {
	UpcomingMatches(ctx context.Context) ([]models.Match, error)
	PastMatches(ctx context.Context) ([]models.Match, error)
	RunningMatches(ctx context.Context) ([]models.Match, error)
	MatchesByDate(ctx context.Context, day time.Time) ([]models.Match, error)
	RunningTournaments(ctx context.Context, teamID int64) ([]models.Tournament, error)
	UpcomingTournaments(ctx context.Context, teamID int64) ([]models.Tournament, error)
	Team(ctx context.Context, id int64) ([]models.RosterMember, error)
}

// FeedAPI is the syndication collaborator boundary.
type FeedAPI interface {
	Fetch(ctx context.Context, feedURL string) ([]models.NewsItem, error)
}

// Service runs one aggregation pipeline per capability: fetch concurrently,
// isolate per-source failures, merge, and hand the result to the formatter.
// Stateless across invocations.
type Service struct {
	api      ScoresAPI
	feeds    FeedAPI
	stats    *stats.Table
	teamID   int64
	feedURLs []string
	keywords []string
	maxNews  int
	loc      *time.Location
	now      func() time.Time
}

func NewService(api ScoresAPI, feeds FeedAPI, table *stats.Table, cfg *config.Config, loc *time.Location) *Service {
	return &Service{
		api:      api,
		feeds:    feeds,
		stats:    table,
		teamID:   cfg.Esports.TeamID,
		feedURLs: cfg.News.Feeds,
		keywords: cfg.News.Keywords,
		maxNews:  cfg.News.MaxItems,
		loc:      loc,
		now:      time.Now,
	}
}

// Handle dispatches an action to its pipeline. A panic anywhere below is
// downgraded to the generic apology; stack traces never reach the user.
func (s *Service) Handle(ctx context.Context, action models.Action) (render format.Render) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Pipeline panicked", "capability", action.Capability, "panic", r)
			render = format.Apology()
		}
	}()

	switch action.Capability {
	case models.CapNextMatch:
		return s.NextMatch(ctx)
	case models.CapLastMatch:
		return s.LastMatch(ctx)
	case models.CapToday:
		return s.Today(ctx)
	case models.CapRoster:
		return s.Roster(ctx)
	case models.CapTournaments:
		return s.Tournaments(ctx)
	case models.CapNews:
		return s.News(ctx)
	case models.CapYearStats:
		return s.YearStats(action.Year)
	default:
		return format.Apology()
	}
}

// YearStats needs no network at all: a direct lookup in the static table.
func (s *Service) YearStats(year int) format.Render {
	row, ok := s.stats.Lookup(year)
	if !ok {
		return format.YearStatsMissing(s.stats.Years())
	}
	return format.YearStats(year, row)
}

// fetchPair runs two independent fetches concurrently. Each side's failure
// is captured in its own error slot so one source failing never aborts its
// sibling.
func fetchPair[A, B any](fa func() (A, error), fb func() (B, error)) (a A, aErr error, b B, bErr error) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a, aErr = fa()
	}()
	go func() {
		defer wg.Done()
		b, bErr = fb()
	}()
	wg.Wait()
	return a, aErr, b, bErr
}
