package sim

import (
	"testing"
	"time"

	"github.com/yourusername/gridiron/internal/models"
)

func TestSlateSeedFromEarliestKickoff(t *testing.T) {
	games := []models.GameLine{
		{HomeTeam: "KC", AwayTeam: "DEN", Kickoff: time.Date(2025, 9, 8, 0, 15, 0, 0, time.UTC)},
		{HomeTeam: "BUF", AwayTeam: "NYJ", Kickoff: time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)},
	}

	if got := SlateSeed(games); got != 20250907 {
		t.Fatalf("want 20250907, got %d", got)
	}
}

func TestSlateSeedFallback(t *testing.T) {
	games := []models.GameLine{
		{HomeTeam: "KC", AwayTeam: "DEN"},
	}

	if got := SlateSeed(games); got != 20240901 {
		t.Fatalf("want fallback 20240901, got %d", got)
	}
}

func TestGameSeedStableAndDistinct(t *testing.T) {
	kickoff := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
	a := models.GameLine{HomeTeam: "KC", AwayTeam: "DEN", Kickoff: kickoff}
	b := models.GameLine{HomeTeam: "BUF", AwayTeam: "NYJ", Kickoff: kickoff}
	slateSeed := SlateSeed([]models.GameLine{a, b})

	if GameSeed(slateSeed, &a) != GameSeed(slateSeed, &a) {
		t.Fatal("game seed must be stable")
	}
	if GameSeed(slateSeed, &a) == GameSeed(slateSeed, &b) {
		t.Fatal("different games must get different seeds")
	}
}
