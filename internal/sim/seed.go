package sim

import (
	"hash/fnv"
	"strconv"
	"time"

	"github.com/yourusername/gridiron/internal/models"
)

// fallbackSeed is used when no kickoff in the slate parses to a date
const fallbackSeed int64 = 20240901

// SlateSeed derives the deterministic base seed for a slate from its
// earliest kickoff date (UTC, as YYYYMMDD). Repeated runs over the same
// slate reproduce bit-for-bit; different slates get different seeds.
func SlateSeed(games []models.GameLine) int64 {
	var earliest time.Time
	for _, g := range games {
		if g.Kickoff.IsZero() {
			continue
		}
		if earliest.IsZero() || g.Kickoff.Before(earliest) {
			earliest = g.Kickoff
		}
	}
	if earliest.IsZero() {
		return fallbackSeed
	}
	seed, err := strconv.ParseInt(earliest.UTC().Format("20060102"), 10, 64)
	if err != nil {
		return fallbackSeed
	}
	return seed
}

// GameSeed mixes the slate seed with the game identity so each game owns an
// independent generator and parallel execution stays reproducible.
func GameSeed(slateSeed int64, game *models.GameLine) int64 {
	h := fnv.New64a()
	h.Write([]byte(game.GameID()))
	return slateSeed ^ int64(h.Sum64())
}
