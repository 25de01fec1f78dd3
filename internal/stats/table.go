package stats

import (
	"sort"

	"github.com/furiafan/furiabot/internal/pkg/models"
)

// Table is the static year→record lookup. Read-only after construction;
// pipelines consume it the same way they consume fetched data.
type Table struct {
	years map[int]models.TeamStatsYear
}

// Default returns the built-in FURIA CS retrospect table.
func Default() *Table {
	return &Table{years: furiaYears}
}

// Lookup returns the record for one year.
func (t *Table) Lookup(year int) (models.TeamStatsYear, bool) {
	y, ok := t.years[year]
	return y, ok
}

// Years lists the known years in ascending order.
func (t *Table) Years() []int {
	out := make([]int, 0, len(t.years))
	for y := range t.years {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

// MinYear is the earliest year of the table.
func (t *Table) MinYear() int {
	years := t.Years()
	if len(years) == 0 {
		return 0
	}
	return years[0]
}

var furiaYears = map[int]models.TeamStatsYear{
	2017: {
		Resumo:  "Ano de fundação. A FURIA nasce em agosto de 2017 e disputa o cenário nacional.",
		Results: []string{"Campeã — Copa Aorus", "Top 4 — Liga Profissional Gamers Club"},
		Titles:  1,
	},
	2018: {
		Resumo:  "Primeiro ano completo: domínio no cenário brasileiro e primeiras viagens internacionais.",
		Results: []string{"Campeã — Aorus League", "Campeã — Gamers Club Masters", "Top 8 — ZOTAC Cup Masters"},
		Titles:  2,
	},
	2019: {
		Resumo:  "Explosão internacional: top mundial, semifinal de Major qualifier e entrada no top 10 do ranking.",
		Results: []string{"Campeã — ECS Season 7 (playoffs de grupo)", "Top 4 — ECS Season 7 Finals", "Playoffs — StarLadder Berlin Major"},
		Titles:  1,
	},
	2020: {
		Resumo:  "Melhor temporada online: domínio na América do Norte durante o cenário remoto.",
		Results: []string{"Campeã — ESL Pro League S12 NA", "Campeã — DreamHack Masters Spring NA", "Campeã — IEM New York NA"},
		Titles:  3,
	},
	2021: {
		Resumo:  "Volta dos eventos presenciais; playoffs do PGL Major Stockholm.",
		Results: []string{"Top 8 — PGL Major Stockholm", "Top 4 — IEM Fall NA"},
		Titles:  0,
	},
	2022: {
		Resumo:  "Semifinal histórica do IEM Rio Major jogando em casa.",
		Results: []string{"Top 4 — IEM Rio Major", "Top 8 — ESL Pro League S15"},
		Titles:  0,
	},
	2023: {
		Resumo:  "Ano de reconstrução da line-up após o Major do Rio.",
		Results: []string{"Playoffs — BLAST Paris Major RMR", "Top 8 — Gamers8"},
		Titles:  0,
	},
	2024: {
		Resumo:  "Transição para o CS2 com nova formação.",
		Results: []string{"Top 8 — PGL Major Copenhagen", "Playoffs — IEM Chengdu"},
		Titles:  0,
	},
}
