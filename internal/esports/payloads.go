package esports

import "time"

// Raw provider payloads. Every field is optional in practice: the provider
// omits keys freely, so all of these decode to zero values and the
// normalizer fills in placeholders. Do not add validation here.

type matchPayload struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Status   string     `json:"status"`
	BeginAt  *time.Time `json:"begin_at"`
	EndAt    *time.Time `json:"end_at"`
	WinnerID int64      `json:"winner_id"`

	Opponents []opponentPayload `json:"opponents"`
	Results   []resultPayload   `json:"results"`

	Tournament *tournamentRef `json:"tournament"`
	Serie      *serieRef      `json:"serie"`
	League     *leagueRef     `json:"league"`
}

type opponentPayload struct {
	Opponent teamPayload `json:"opponent"`
}

// resultPayload carries the score of one side. TeamID is present on most
// responses but the opponents/results positional alignment is the only
// guarantee the provider documents, so the normalizer pairs by team id when
// it can and falls back to position.
type resultPayload struct {
	TeamID int64 `json:"team_id"`
	Score  int   `json:"score"`
}

type tournamentRef struct {
	Name string `json:"name"`
}

type serieRef struct {
	FullName string `json:"full_name"`
}

type leagueRef struct {
	Name string `json:"name"`
}

type tournamentPayload struct {
	ID      int64      `json:"id"`
	Name    string     `json:"name"`
	Tier    string     `json:"tier"`
	BeginAt *time.Time `json:"begin_at"`
	EndAt   *time.Time `json:"end_at"`
	Serie   *serieRef  `json:"serie"`
}

type teamPayload struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Players []playerPayload `json:"players"`
}

type playerPayload struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
