package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron/internal/models"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestNormalizeTeamCode(t *testing.T) {
	cases := map[string]string{
		"WAS":     "WSH",
		"was":     "WSH",
		" OAK ":   "LV",
		"NY Jets": "NYJ",
		"KC":      "KC",
		"XYZ":     "XYZ",
	}
	for in, want := range cases {
		if got := NormalizeTeamCode(in); got != want {
			t.Fatalf("NormalizeTeamCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadRatings(t *testing.T) {
	path := writeCSV(t, "team_code,rating,uncertainty,hfa\nKC,8.0,0.5,2.0\nwas,-1.5,0.7,2.5\n")

	ratings, err := LoadRatings(path)
	if err != nil {
		t.Fatalf("LoadRatings failed: %v", err)
	}
	if len(ratings) != 2 {
		t.Fatalf("expected 2 ratings, got %d", len(ratings))
	}
	if ratings[0].TeamCode != "KC" || ratings[0].Rating != 8.0 {
		t.Fatalf("unexpected first rating: %+v", ratings[0])
	}
	if ratings[1].TeamCode != "WSH" {
		t.Fatalf("alias not normalized: %s", ratings[1].TeamCode)
	}
}

func TestLoadRatingsPowerRatingAlias(t *testing.T) {
	path := writeCSV(t, "team_code,power_rating,uncertainty,hfa\nKC,8.0,0.5,2.0\n")

	ratings, err := LoadRatings(path)
	if err != nil {
		t.Fatalf("LoadRatings failed: %v", err)
	}
	if ratings[0].Rating != 8.0 {
		t.Fatalf("power_rating column not accepted: %+v", ratings[0])
	}
}

func TestLoadRatingsMissingColumn(t *testing.T) {
	path := writeCSV(t, "team_code,rating\nKC,8.0\n")

	_, err := LoadRatings(path)
	if !errors.Is(err, models.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestLoadRatingsDuplicateTeam(t *testing.T) {
	path := writeCSV(t, "team_code,rating,uncertainty,hfa\nKC,8.0,0.5,2.0\nKC,7.0,0.5,2.0\n")

	_, err := LoadRatings(path)
	if !errors.Is(err, models.ErrDuplicateTeam) {
		t.Fatalf("expected ErrDuplicateTeam, got %v", err)
	}
}

func TestLoadRatingsNonNumeric(t *testing.T) {
	path := writeCSV(t, "team_code,rating,uncertainty,hfa\nKC,strong,0.5,2.0\n")

	if _, err := LoadRatings(path); err == nil {
		t.Fatal("expected a non-numeric rating to be fatal")
	}
}

func TestLoadGameLines(t *testing.T) {
	path := writeCSV(t,
		"home_team,away_team,spread_home,total,kickoff_utc,neutral_site\n"+
			"KC,DEN,-7.5,45.5,2025-09-07T17:00:00Z,0\n"+
			"BUF,NYJ,-9.5,,2025-09-08T00:15:00Z,false\n")

	games, err := LoadGameLines(path, quietLogger())
	if err != nil {
		t.Fatalf("LoadGameLines failed: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	g := games[0]
	if g.SpreadHome != -7.5 || !g.SpreadKnown {
		t.Fatalf("unexpected spread: %+v", g)
	}
	if !g.Kickoff.Equal(time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)) {
		t.Fatalf("kickoff parsed wrong: %v", g.Kickoff)
	}
	if games[1].HasTotal() {
		t.Fatal("blank total should parse as missing")
	}
}

func TestLoadGameLinesDerivesHomeSpread(t *testing.T) {
	path := writeCSV(t,
		"home_team,away_team,spread_away,total,kickoff_utc,neutral_site\n"+
			"KC,DEN,7.5,45.5,2025-09-07T17:00:00Z,0\n")

	games, err := LoadGameLines(path, quietLogger())
	if err != nil {
		t.Fatalf("LoadGameLines failed: %v", err)
	}
	if games[0].SpreadHome != -7.5 || !games[0].SpreadKnown {
		t.Fatalf("derived spread wrong: %+v", games[0])
	}
}

func TestLoadGameLinesInconsistentSpreads(t *testing.T) {
	path := writeCSV(t,
		"home_team,away_team,spread_home,spread_away,total,kickoff_utc,neutral_site\n"+
			"KC,DEN,-7.5,4.0,45.5,2025-09-07T17:00:00Z,0\n")

	_, err := LoadGameLines(path, quietLogger())
	if !errors.Is(err, models.ErrInconsistentSpread) {
		t.Fatalf("expected ErrInconsistentSpread, got %v", err)
	}
}

func TestLoadGameLinesPickEmFallback(t *testing.T) {
	path := writeCSV(t,
		"home_team,away_team,spread_home,total,kickoff_utc,neutral_site\n"+
			"KC,DEN,,45.5,2025-09-07T17:00:00Z,0\n")

	games, err := LoadGameLines(path, quietLogger())
	if err != nil {
		t.Fatalf("LoadGameLines failed: %v", err)
	}
	if games[0].SpreadHome != 0 || games[0].SpreadKnown {
		t.Fatalf("expected pick'em fallback: %+v", games[0])
	}
}

func TestLoadGameLinesQuantizesToHalfPoint(t *testing.T) {
	path := writeCSV(t,
		"home_team,away_team,spread_home,total,kickoff_utc,neutral_site\n"+
			"KC,DEN,-7.3,45.7,2025-09-07T17:00:00Z,0\n")

	games, err := LoadGameLines(path, quietLogger())
	if err != nil {
		t.Fatalf("LoadGameLines failed: %v", err)
	}
	if games[0].SpreadHome != -7.5 {
		t.Fatalf("spread not quantized to half point: %v", games[0].SpreadHome)
	}
	if games[0].Total != 45.5 {
		t.Fatalf("total not quantized to half point: %v", games[0].Total)
	}
}

func TestLoadGameLinesNoSpreadColumns(t *testing.T) {
	path := writeCSV(t,
		"home_team,away_team,total,kickoff_utc,neutral_site\n"+
			"KC,DEN,45.5,2025-09-07T17:00:00Z,0\n")

	_, err := LoadGameLines(path, quietLogger())
	if !errors.Is(err, models.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestLoadGameLinesEmptySlate(t *testing.T) {
	path := writeCSV(t, "home_team,away_team,spread_home,total,kickoff_utc,neutral_site\n")

	_, err := LoadGameLines(path, quietLogger())
	if !errors.Is(err, models.ErrEmptySlate) {
		t.Fatalf("expected ErrEmptySlate, got %v", err)
	}
}

func TestLoadDepthChart(t *testing.T) {
	path := writeCSV(t, "team_code,position,player_name,value\nKC,QB,Pat Starr,10\nKC,WR,Sam Deep,4.5\n")

	entries, err := LoadDepthChart(path)
	if err != nil {
		t.Fatalf("LoadDepthChart failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Value != 10 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestLoadDepthChartLegacyPlayerColumn(t *testing.T) {
	path := writeCSV(t, "team_code,position,player,value\nKC,QB,Pat Starr,10\n")

	entries, err := LoadDepthChart(path)
	if err != nil {
		t.Fatalf("LoadDepthChart failed: %v", err)
	}
	if entries[0].PlayerName != "Pat Starr" {
		t.Fatalf("legacy player column not accepted: %+v", entries[0])
	}
}

func TestLoadDepthChartNegativeValue(t *testing.T) {
	path := writeCSV(t, "team_code,position,player_name,value\nKC,QB,Pat Starr,-3\n")

	if _, err := LoadDepthChart(path); err == nil {
		t.Fatal("expected a negative value to be fatal")
	}
}

func TestLoadInjuries(t *testing.T) {
	path := writeCSV(t,
		"team_code,player_name,status\n"+
			"KC,Pat Starr,Out\n"+
			"KC,Sam Deep,Questionable\n"+
			"DEN,Lee Block,Injured Reserve\n")

	records, err := LoadInjuries(path, quietLogger())
	if err != nil {
		t.Fatalf("LoadInjuries failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Status != models.StatusOut || records[2].Status != models.StatusInjuredReserve {
		t.Fatalf("statuses parsed wrong: %+v", records)
	}
}

func TestLoadInjuriesSkipsUnknownStatus(t *testing.T) {
	path := writeCSV(t,
		"team_code,player_name,status\n"+
			"KC,Pat Starr,Out\n"+
			"KC,Sam Deep,Mysterious\n")

	records, err := LoadInjuries(path, quietLogger())
	if err != nil {
		t.Fatalf("LoadInjuries failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("unknown status should be skipped, got %d records", len(records))
	}
}

func TestLoadCalibrationSamples(t *testing.T) {
	path := writeCSV(t,
		"home_win,home_winprob\n"+
			"1,0.72\n"+
			"0,0.31\n"+
			"1,0.55\n")

	samples, cols, err := LoadCalibrationSamples(path)
	if err != nil {
		t.Fatalf("LoadCalibrationSamples failed: %v", err)
	}
	if cols.Label != "home_win" || cols.Prob != "home_winprob" {
		t.Fatalf("unexpected column selection: %+v", cols)
	}
	if len(samples) != 3 || samples[0].Outcome != 1 || samples[1].Outcome != 0 {
		t.Fatalf("unexpected samples: %+v", samples)
	}
	if math.Abs(samples[0].Prob-0.72) > 1e-9 {
		t.Fatalf("prob parsed wrong: %v", samples[0].Prob)
	}
}

func TestLoadCalibrationSamplesLogitFallback(t *testing.T) {
	path := writeCSV(t,
		"label,logit\n"+
			"1,1.2\n"+
			"0,-0.8\n")

	samples, cols, err := LoadCalibrationSamples(path)
	if err != nil {
		t.Fatalf("LoadCalibrationSamples failed: %v", err)
	}
	if cols.Logit != "logit" || cols.Prob != "" {
		t.Fatalf("expected logit column selection: %+v", cols)
	}
	if samples[0].Prob <= 0.5 || samples[1].Prob >= 0.5 {
		t.Fatalf("logit transform wrong: %+v", samples)
	}
}

func TestLoadCalibrationSamplesRejectsOutOfRangeProb(t *testing.T) {
	// the "prob" column holds margins, not probabilities; with no logit
	// alias either, selection must fail rather than guess
	path := writeCSV(t,
		"home_win,prob\n"+
			"1,14.0\n"+
			"0,-7.5\n")

	_, _, err := LoadCalibrationSamples(path)
	if !errors.Is(err, models.ErrNoProbabilityColumn) {
		t.Fatalf("expected ErrNoProbabilityColumn, got %v", err)
	}
}

func TestLoadCalibrationSamplesNoLabel(t *testing.T) {
	path := writeCSV(t, "home_winprob\n0.5\n")

	_, _, err := LoadCalibrationSamples(path)
	if !errors.Is(err, models.ErrNoLabelColumn) {
		t.Fatalf("expected ErrNoLabelColumn, got %v", err)
	}
}
