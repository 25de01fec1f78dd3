package format

import (
	"strings"
	"testing"
	"time"

	"github.com/furiafan/furiabot/internal/pkg/models"
)

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Team_Spirit", "Team\\_Spirit"},
		{"G2 *Esports*", "G2 \\*Esports\\*"},
		{"[bracket", "\\[bracket"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := escapeMarkdown(tt.input); got != tt.expected {
			t.Errorf("escapeMarkdown(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestMatchLineZeroTimeIsPlaceholder(t *testing.T) {
	m := models.Match{Name: "FURIA vs NAVI"}
	r := NextMatch(m, true)
	if !strings.Contains(r.Text, "Hora indefinida") {
		t.Errorf("zero start time must render the placeholder, got %q", r.Text)
	}
}

func TestSectionCapAddsMarker(t *testing.T) {
	matches := make([]models.Match, 8)
	for i := range matches {
		matches[i] = models.Match{ID: int64(i), Name: "Jogo"}
	}

	r := Today(nil, matches, true, true)
	if !strings.Contains(r.Text, "… e mais 3") {
		t.Errorf("section beyond the cap must carry the marker, got %q", r.Text)
	}
	if got := strings.Count(r.Text, "Jogo"); got != maxSectionItems {
		t.Errorf("section must show %d items, got %d", maxSectionItems, got)
	}
}

func TestNewsRenderFlags(t *testing.T) {
	r := News([]models.NewsItem{{Title: "FURIA", Link: "https://x.test/1"}}, false)
	if !r.RichText {
		t.Error("news render must be rich text")
	}
	if !r.NoPreview {
		t.Error("link-bearing render must suppress previews")
	}
}

func TestEmptyAndDegradedCopyDiffer(t *testing.T) {
	empty := News(nil, false)
	degraded := News(nil, true)
	if empty.Text == degraded.Text {
		t.Errorf("empty and degraded renders must use different copy, both %q", empty.Text)
	}

	emptyT := Today(nil, nil, true, true)
	degradedT := Today(nil, nil, false, false)
	if emptyT.Text == degradedT.Text {
		t.Errorf("empty and degraded today renders must differ, both %q", emptyT.Text)
	}
}

func TestBoundedCapsLongMessages(t *testing.T) {
	long := strings.Repeat("a", maxMessageLen+500)
	r := bounded(long, true, false)
	if len(r.Text) > maxMessageLen+10 {
		t.Errorf("render length %d exceeds the cap", len(r.Text))
	}
	if !strings.HasSuffix(r.Text, "…") {
		t.Error("truncated render must end with the marker")
	}
}

func TestTournamentsFallbackNote(t *testing.T) {
	list := []models.Tournament{{ID: 1, Name: "IEM", Tag: models.TournamentRunning, StartDate: time.Now()}}

	with := Tournaments(list, true, false)
	without := Tournaments(list, false, false)
	if !strings.Contains(with.Text, "resultados gerais") {
		t.Errorf("fallback render must carry the note, got %q", with.Text)
	}
	if strings.Contains(without.Text, "resultados gerais") {
		t.Errorf("scoped render must not carry the note, got %q", without.Text)
	}
}

func TestGreetingFallsBackToGenericName(t *testing.T) {
	r := Greeting("  ")
	if !strings.Contains(r.Text, "torcedor") {
		t.Errorf("blank name must fall back, got %q", r.Text)
	}
	if !strings.Contains(r.Text, "#DIADEFURIA") {
		t.Errorf("greeting must keep the hashtag, got %q", r.Text)
	}
}
