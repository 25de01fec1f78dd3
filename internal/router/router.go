package router

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/furiafan/furiabot/internal/pkg/models"
)

// IntentDetector is the NLU collaborator boundary.
type IntentDetector interface {
	DetectIntent(ctx context.Context, sessionID, text string) models.IntentResult
}

// Command is an inbound slash command: name without the slash, raw args in
// the order the user typed them.
type Command struct {
	Name string
	Args []string
}

// FreeText is any non-command inbound message.
type FreeText struct {
	Text   string
	UserID int64
}

// Decision is the routing outcome. Exactly one of three shapes:
// dispatch (OK), prompt (Prompt non-empty), or silence (neither). Silence is
// deliberate: an unrecognized utterance must not make the bot noisy.
type Decision struct {
	Action models.Action
	OK     bool
	Prompt string
}

func dispatch(a models.Action) Decision { return Decision{Action: a, OK: true} }
func prompt(p string) Decision          { return Decision{Prompt: p} }
func silence() Decision                 { return Decision{} }

// Router maps commands and NLU results onto canonical actions. Stateless:
// the same input always yields the same decision.
type Router struct {
	nlu     IntentDetector
	minYear int
	now     func() time.Time
}

func New(nlu IntentDetector, minYear int) *Router {
	return &Router{nlu: nlu, minYear: minYear, now: time.Now}
}

var commandTable = map[string]models.Capability{
	"proximo":  models.CapNextMatch,
	"ultimo":   models.CapLastMatch,
	"hoje":     models.CapToday,
	"elenco":   models.CapRoster,
	"torneios": models.CapTournaments,
	"noticias": models.CapNews,
	"stats":    models.CapYearStats,
}

var intentTable = map[string]models.Capability{
	"next_match":  models.CapNextMatch,
	"last_match":  models.CapLastMatch,
	"today":       models.CapToday,
	"roster":      models.CapRoster,
	"tournaments": models.CapTournaments,
	"news":        models.CapNews,
	"team_stats":  models.CapYearStats,
}

// yearSlot is the slot name the NLU provider uses for the stats intent.
const yearSlot = "year"

// RouteCommand validates a slash command against the fixed capability table.
// Argument problems each get their own corrective prompt; nothing upstream
// is called for them.
func (r *Router) RouteCommand(cmd Command) Decision {
	capability, ok := commandTable[strings.ToLower(cmd.Name)]
	if !ok {
		return silence()
	}

	if capability != models.CapYearStats {
		return dispatch(models.Action{Capability: capability})
	}

	switch {
	case len(cmd.Args) == 0:
		return prompt("Me diga o ano! Use /stats <ano>, por exemplo /stats 2019.")
	case len(cmd.Args) > 1:
		return prompt("Um ano de cada vez! Use /stats <ano> com um único ano.")
	}

	year, err := r.parseYear(cmd.Args[0])
	switch err {
	case nil:
		return dispatch(models.Action{Capability: capability, Year: year})
	case errYearNotNumber:
		return prompt("Não entendi esse ano. Use um número, por exemplo /stats 2019.")
	default:
		return prompt(r.rangePrompt())
	}
}

// RouteText classifies free text through the NLU collaborator. An absent
// result or an unknown label keeps the bot silent.
func (r *Router) RouteText(ctx context.Context, msg FreeText) Decision {
	result := r.nlu.DetectIntent(ctx, sessionID(msg.UserID), msg.Text)
	if result.Absent {
		return silence()
	}

	capability, ok := intentTable[result.Label]
	if !ok {
		return silence()
	}

	if capability != models.CapYearStats {
		return dispatch(models.Action{Capability: capability})
	}

	raw := strings.TrimSpace(result.Slots[yearSlot])
	if raw == "" {
		return prompt("De qual ano você quer saber? Me fala o ano, por exemplo 2019.")
	}

	year, err := r.parseYear(raw)
	switch err {
	case nil:
		return dispatch(models.Action{Capability: capability, Year: year})
	case errYearNotNumber:
		return prompt("Não entendi esse ano. Me fala um número, por exemplo 2019.")
	default:
		return prompt(r.rangePrompt())
	}
}

// sessionID keeps the NLU session stable per end user so the provider can
// hold multi-turn context.
func sessionID(userID int64) string {
	return fmt.Sprintf("tg-%d", userID)
}

var (
	errYearNotNumber  = fmt.Errorf("year is not a number")
	errYearOutOfRange = fmt.Errorf("year out of range")
)

func (r *Router) parseYear(raw string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errYearNotNumber
	}
	if year < r.minYear || year > r.now().Year() {
		return 0, errYearOutOfRange
	}
	return year, nil
}

func (r *Router) rangePrompt() string {
	return fmt.Sprintf("Só conheço o retrospecto de %d até %d.", r.minYear, r.now().Year())
}
