package models

import "time"

// MatchStatus — нормализованный статус матча, не зависящий от провайдера.
type MatchStatus string

const (
	StatusNotStarted MatchStatus = "not_started"
	StatusRunning    MatchStatus = "running"
	StatusFinished   MatchStatus = "finished"
	StatusUnknown    MatchStatus = "unknown"
)

// Match is the canonical match entity. Constructed fresh per fetch, never
// mutated, discarded after the responding message is sent.
type Match struct {
	ID         int64
	Name       string
	Tournament string
	StartTime  time.Time // provider instants are UTC; display conversion happens in the normalizer
	Status     MatchStatus
	Teams      [2]MatchSide
	HasTeams   bool
	Scores     [2]int
	HasScores  bool
	WinnerID   int64
}

// MatchSide is one of the two sides of a match.
type MatchSide struct {
	ID   int64
	Name string
}

// HasTeam reports whether teamID plays on either side of the match.
func (m Match) HasTeam(teamID int64) bool {
	if !m.HasTeams {
		return false
	}
	return m.Teams[0].ID == teamID || m.Teams[1].ID == teamID
}

// TournamentTag marks which query produced a tournament.
type TournamentTag string

const (
	TournamentRunning  TournamentTag = "running"
	TournamentUpcoming TournamentTag = "upcoming"
)

// Tournament — канонический турнир. Unique by ID within a combined result
// set; the first query to include an ID wins the tag.
type Tournament struct {
	ID        int64
	Name      string // prefer the serie full name, else the tournament name
	Tier      string // nullable rank label, "" when absent
	StartDate time.Time
	EndDate   time.Time
	Tag       TournamentTag
}

// RosterMember is one player of the team detail payload.
type RosterMember struct {
	Name   string
	Active bool
}

// NewsItem is a single syndication entry. Link is the dedup key across feeds.
type NewsItem struct {
	Title     string
	Link      string
	Feed      string
	Summary   string    // used for keyword matching only, never rendered
	Published time.Time // zero when the feed carries no date; sorts last
}

// TeamStatsYear is one row of the static year→record table.
type TeamStatsYear struct {
	Resumo  string
	Results []string
	Titles  int
}

// Capability is one of the fixed user-facing features.
type Capability string

const (
	CapNextMatch   Capability = "next_match"
	CapLastMatch   Capability = "last_match"
	CapToday       Capability = "today"
	CapRoster      Capability = "roster"
	CapTournaments Capability = "tournaments"
	CapNews        Capability = "news"
	CapYearStats   Capability = "year_stats"
)

// Action is the canonical dispatch unit produced by the intent router. Year
// is meaningful only for CapYearStats.
type Action struct {
	Capability Capability
	Year       int
}

// IntentResult is the exact contract returned by the NLU collaborator.
// Absent is true on any failure (auth, transport, empty input).
type IntentResult struct {
	Absent bool
	Label  string
	Slots  map[string]string
}
