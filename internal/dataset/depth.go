package dataset

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron/internal/models"
)

// LoadDepthChart reads the depth/value table. Required columns:
// team_code, position, player_name, value. Accepts the legacy "player"
// column name for player_name.
func LoadDepthChart(path string) ([]models.DepthEntry, error) {
	t, err := readTable(path, "depth_chart")
	if err != nil {
		return nil, err
	}
	playerCol := "player_name"
	if !t.hasColumn(playerCol) && t.hasColumn("player") {
		playerCol = "player"
	}
	if err := t.requireColumns("team_code", "position", playerCol, "value"); err != nil {
		return nil, err
	}

	entries := make([]models.DepthEntry, 0, len(t.rows))
	for i, row := range t.rows {
		e := models.DepthEntry{
			TeamCode:   NormalizeTeamCode(t.cell(row, "team_code")),
			Position:   t.cell(row, "position"),
			PlayerName: t.cell(row, playerCol),
			Value:      t.floatCell(row, "value"),
		}
		if e.PlayerName == "" {
			return nil, fmt.Errorf("depth_chart row %d: player name is required", i+2)
		}
		if math.IsNaN(e.Value) || e.Value < 0 {
			return nil, fmt.Errorf("depth_chart row %d (%s): value must be numeric and non-negative", i+2, e.PlayerName)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// LoadInjuries reads the weekly injury report. Required columns: team_code,
// player_name (or player), status. Rows with an unclassifiable status are
// skipped with a warning rather than failing the slate; injuries are a
// best-effort signal.
func LoadInjuries(path string, logger *logrus.Logger) ([]models.InjuryRecord, error) {
	t, err := readTable(path, "injuries")
	if err != nil {
		return nil, err
	}
	playerCol := "player_name"
	if !t.hasColumn(playerCol) && t.hasColumn("player") {
		playerCol = "player"
	}
	if err := t.requireColumns("team_code", playerCol, "status"); err != nil {
		return nil, err
	}

	records := make([]models.InjuryRecord, 0, len(t.rows))
	for i, row := range t.rows {
		status, err := models.ParseInjuryStatus(t.cell(row, "status"))
		if err != nil {
			logger.WithFields(logrus.Fields{
				"row":    i + 2,
				"player": t.cell(row, playerCol),
			}).WithError(err).Warn("Skipping injury row with unknown status")
			continue
		}
		records = append(records, models.InjuryRecord{
			TeamCode:   NormalizeTeamCode(t.cell(row, "team_code")),
			PlayerName: t.cell(row, playerCol),
			Status:     status,
		})
	}
	return records, nil
}
