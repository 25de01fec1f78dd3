package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/furiafan/furiabot/internal/pkg/models"
)

// Render is the outbound text artifact. RichText asks the transport for
// Markdown delivery; NoPreview suppresses link previews on link-bearing
// renders.
type Render struct {
	Text      string
	RichText  bool
	NoPreview bool
}

const (
	// maxSectionItems bounds each list section; anything beyond it is
	// replaced by an "e mais N" marker.
	maxSectionItems = 5
	// maxMessageLen stays under Telegram's 4096-char message limit.
	maxMessageLen = 4000

	apologyText = "Ops, algo deu errado aqui. 😿 Tenta de novo daqui a pouco!"
)

// Apology is the generic failure render. The pipeline boundary falls back to
// it whenever rendering itself blows up.
func Apology() Render {
	return Render{Text: apologyText}
}

// NextMatch renders the first upcoming match of the team, or the "none
// scheduled" copy when the window had no hit.
func NextMatch(m models.Match, found bool) Render {
	if !found {
		return Render{Text: "Nenhum jogo da FURIA agendado na janela que eu enxergo. 👀 Volte mais tarde!"}
	}

	var b strings.Builder
	b.WriteString("🔥 *Próximo jogo da FURIA*\n\n")
	writeMatchLine(&b, m)
	return bounded(b.String(), true, false)
}

// NextMatchDegraded is the upstream-failure variant of NextMatch.
func NextMatchDegraded() Render {
	return Render{Text: "Não consegui consultar os próximos jogos agora. 😕 Tenta de novo em instantes!"}
}

// LastMatch renders the most recent finished match, resolving win/loss/draw
// against the team id.
func LastMatch(m models.Match, found bool, teamID int64) Render {
	if !found {
		return Render{Text: "Não achei um jogo recente da FURIA por aqui. 🤔"}
	}

	var b strings.Builder
	b.WriteString("📊 *Último jogo da FURIA*\n\n")
	writeMatchLine(&b, m)
	b.WriteString("\n")
	b.WriteString(outcomeLine(m, teamID))
	return bounded(b.String(), true, false)
}

// LastMatchDegraded is the upstream-failure variant of LastMatch.
func LastMatchDegraded() Render {
	return Render{Text: "Não consegui consultar os resultados agora. 😕 Tenta de novo em instantes!"}
}

func outcomeLine(m models.Match, teamID int64) string {
	switch {
	case m.WinnerID == 0:
		return "🤝 Resultado: empate (ou sem vencedor declarado)."
	case m.WinnerID == teamID:
		return "✅ VITÓRIA DA FURIA! #DIADEFURIA"
	default:
		return "❌ Dessa vez não deu. Bola pra frente!"
	}
}

// Today renders the live and scheduled sections. A section whose source
// failed is omitted entirely; when both fail the degraded copy is used.
func Today(live, scheduled []models.Match, liveOK, scheduledOK bool) Render {
	if !liveOK && !scheduledOK {
		return Render{Text: "Não consegui consultar a agenda de hoje. 😕 Tenta de novo em instantes!"}
	}
	if liveOK && scheduledOK && len(live) == 0 && len(scheduled) == 0 {
		return Render{Text: "Sem jogos ao vivo nem agendados para hoje. 📅"}
	}

	var b strings.Builder
	b.WriteString("📅 *Jogos de hoje*\n")
	sections := 0
	if liveOK && len(live) > 0 {
		b.WriteString("\n🔴 *Ao vivo*\n")
		writeMatchSection(&b, live)
		sections++
	}
	if scheduledOK && len(scheduled) > 0 {
		b.WriteString("\n🕐 *Agendados*\n")
		writeMatchSection(&b, scheduled)
		sections++
	}
	if sections == 0 {
		// One source failed and the surviving one came back empty.
		return Render{Text: "Não achei jogos para hoje, e uma das fontes está fora do ar. 😕"}
	}
	return bounded(b.String(), true, false)
}

// RosterOutcome distinguishes the roster pipeline's terminal states.
type RosterOutcome int

const (
	RosterOK RosterOutcome = iota
	RosterNoPlayers
	RosterNoActive
	RosterFetchFailed
)

// Roster renders the active line-up.
func Roster(members []models.RosterMember, outcome RosterOutcome) Render {
	switch outcome {
	case RosterNoPlayers:
		return Render{Text: "O provedor não listou nenhum jogador para a FURIA. 🤷"}
	case RosterNoActive:
		return Render{Text: "Nenhum jogador ativo listado no momento. 🤷"}
	case RosterFetchFailed:
		return Render{Text: "Não consegui consultar o elenco agora. 😕 Tenta de novo em instantes!"}
	}

	var b strings.Builder
	b.WriteString("🐯 *Elenco atual da FURIA*\n\n")
	for _, m := range members {
		b.WriteString("• " + escapeMarkdown(m.Name) + "\n")
	}
	return bounded(b.String(), true, false)
}

// Tournaments renders the combined running+upcoming list. fallback marks the
// render when the team-scoped query came back empty and the general query
// was used instead.
func Tournaments(list []models.Tournament, fallback bool, fetchFailed bool) Render {
	if fetchFailed {
		return Render{Text: "Não consegui consultar os campeonatos agora. 😕 Tenta de novo em instantes!"}
	}
	if len(list) == 0 {
		return Render{Text: "Nenhum campeonato rolando ou por vir encontrado. 🏆"}
	}

	var b strings.Builder
	b.WriteString("🏆 *Campeonatos*\n")
	if fallback {
		b.WriteString("_(mostrando resultados gerais, sem filtro por time)_\n")
	}
	b.WriteString("\n")

	shown := list
	if len(shown) > maxSectionItems {
		shown = shown[:maxSectionItems]
	}
	for _, t := range shown {
		label := "🕐 em breve"
		if t.Tag == models.TournamentRunning {
			label = "🔴 rolando"
		}
		b.WriteString(fmt.Sprintf("• %s — %s", escapeMarkdown(t.Name), label))
		if t.Tier != "" {
			b.WriteString(" (tier " + escapeMarkdown(t.Tier) + ")")
		}
		b.WriteString("\n  " + dateRange(t.StartDate, t.EndDate) + "\n")
	}
	if n := len(list) - len(shown); n > 0 {
		b.WriteString(fmt.Sprintf("… e mais %d\n", n))
	}
	return bounded(b.String(), true, false)
}

// News renders the filtered, deduplicated headlines, newest first.
func News(items []models.NewsItem, fetchFailed bool) Render {
	if fetchFailed {
		return Render{Text: "Não consegui buscar notícias agora. 😕 Tenta de novo em instantes!"}
	}
	if len(items) == 0 {
		return Render{Text: "Nenhuma notícia fresca da FURIA nos feeds. 📰"}
	}

	var b strings.Builder
	b.WriteString("📰 *Últimas da FURIA*\n\n")
	for _, item := range items {
		b.WriteString(fmt.Sprintf("• [%s](%s)", escapeMarkdown(item.Title), item.Link))
		if item.Feed != "" {
			b.WriteString(" — " + escapeMarkdown(item.Feed))
		}
		b.WriteString("\n")
	}
	return bounded(b.String(), true, true)
}

// YearStats renders one row of the static retrospect table.
func YearStats(year int, s models.TeamStatsYear) Render {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📜 *FURIA em %d*\n\n", year))
	b.WriteString(escapeMarkdown(s.Resumo) + "\n")

	if len(s.Results) > 0 {
		b.WriteString("\n*Resultados:*\n")
		shown := s.Results
		if len(shown) > maxSectionItems {
			shown = shown[:maxSectionItems]
		}
		for _, r := range shown {
			b.WriteString("• " + escapeMarkdown(r) + "\n")
		}
		if n := len(s.Results) - len(shown); n > 0 {
			b.WriteString(fmt.Sprintf("… e mais %d\n", n))
		}
	}

	b.WriteString(fmt.Sprintf("\n🏆 Títulos no ano: *%d*\n", s.Titles))
	return bounded(b.String(), true, false)
}

// YearStatsMissing lists the years the table actually knows, ascending.
func YearStatsMissing(years []int) Render {
	labels := make([]string, 0, len(years))
	for _, y := range years {
		labels = append(labels, strconv.Itoa(y))
	}
	return Render{
		Text: "Não tenho o retrospecto desse ano. 🤔 Anos disponíveis: " + strings.Join(labels, ", ") + ".",
	}
}

// Greeting is the /start reply, kept from the original bot.
func Greeting(firstName string) Render {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = "torcedor"
	}
	return Render{
		Text: fmt.Sprintf("Fala, %s! Bem-vindo ao Furia Fan Bot! 🔥\nUse os comandos para saber tudo sobre a FURIA. #DIADEFURIA", name),
	}
}

// Help lists the available commands.
func Help() Render {
	text := `🐯 *Furia Fan Bot*

/proximo — próximo jogo da FURIA
/ultimo — último resultado
/hoje — jogos de hoje (ao vivo e agendados)
/elenco — elenco atual
/torneios — campeonatos rolando e por vir
/noticias — últimas notícias
/stats <ano> — retrospecto de um ano

Você também pode perguntar em texto livre, tipo "quando a FURIA joga?".`
	return Render{Text: text, RichText: true}
}

func writeMatchSection(b *strings.Builder, matches []models.Match) {
	shown := matches
	if len(shown) > maxSectionItems {
		shown = shown[:maxSectionItems]
	}
	for _, m := range shown {
		writeMatchLine(b, m)
	}
	if n := len(matches) - len(shown); n > 0 {
		b.WriteString(fmt.Sprintf("… e mais %d\n", n))
	}
}

func writeMatchLine(b *strings.Builder, m models.Match) {
	name := m.Name
	if m.HasTeams {
		name = m.Teams[0].Name + " vs " + m.Teams[1].Name
	}
	if name == "" {
		name = "Partida sem nome"
	}

	b.WriteString("• *" + escapeMarkdown(name) + "*")
	if m.HasScores {
		b.WriteString(fmt.Sprintf(" (%d x %d)", m.Scores[0], m.Scores[1]))
	}
	b.WriteString("\n")
	if m.Tournament != "" {
		b.WriteString("  🏆 " + escapeMarkdown(m.Tournament) + "\n")
	}
	b.WriteString("  🕐 " + formatTime(m.StartTime) + "\n")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "Hora indefinida"
	}
	return t.Format("02/01/2006 15:04")
}

func dateRange(start, end time.Time) string {
	if start.IsZero() {
		return "Datas indefinidas"
	}
	if end.IsZero() {
		return "a partir de " + start.Format("02/01/2006")
	}
	return start.Format("02/01/2006") + " até " + end.Format("02/01/2006")
}

// bounded caps the message under the transport limit.
func bounded(text string, rich, noPreview bool) Render {
	if len(text) > maxMessageLen {
		text = text[:maxMessageLen] + "\n…"
	}
	return Render{Text: text, RichText: rich, NoPreview: noPreview}
}

// escapeMarkdown escapes the characters Telegram's classic Markdown mode
// treats specially.
func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return replacer.Replace(text)
}
