package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	app "github.com/okian/scoutbrief/internal/app"
	"github.com/okian/scoutbrief/internal/domain/model"
	"github.com/okian/scoutbrief/internal/domain/roster"
	"github.com/smartystreets/goconvey/convey"
)

const eventCSV = `match_number,frc_team,event_key,driver_station,auto_coral_l4,tele_coral_l4,auto_algae_processor,tele_algae_processor,tele_climb_speed,auto_moved
1,frc254,2025txwac,Red 1,0,1,0,0,Deep,yes
2,frc254,2025txwac,Red 1,0,2,0,1,No,yes
2,frc118,2025txwac,Blue 1,1,0,0,0,Shallow,no
3,frc254,2025txwac,Red 2,1,6,1,3,Deep,yes
3,frc118,2025txwac,Blue 2,0,2,0,0,No,no
`

func setupEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scouting.csv")
	if err := os.WriteFile(path, []byte(eventCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	tba := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(tba.Close)

	t.Setenv("SCOUT_CSV_PATH", path)
	t.Setenv("SCOUT_TBA_BASE_URL", tba.URL)
	t.Setenv("SCOUT_TBA_KEY", "k")
	t.Setenv("SCOUT_NARRATIVE_PROVIDER", "none")
}

func TestRun(t *testing.T) {
	convey.Convey("Given a scouting log and an unreachable schedule", t, func() {
		setupEnv(t)
		var stdout, stderr bytes.Buffer

		convey.Convey("When briefing a played match", func() {
			code := run(context.Background(), []string{"-match", "3", "-alliance", "r"}, &stdout, &stderr)
			out := stdout.String()

			convey.Convey("Then the briefing and actual result are printed", func() {
				convey.So(code, convey.ShouldEqual, exitOK)
				convey.So(out, convey.ShouldContainSubstring, "--- Simulating Strategy for Match 3 (RED Alliance) ---")
				convey.So(out, convey.ShouldContainSubstring, "TBA lookup failed.")
				convey.So(out, convey.ShouldContainSubstring, "Red Alliance: 254\n")
				convey.So(out, convey.ShouldContainSubstring, "Blue Alliance: 118\n")
				convey.So(out, convey.ShouldContainSubstring, "=== AI Strategy Advisor Recommendation ===\nError: ")
				convey.So(out, convey.ShouldContainSubstring, "Team 254: Scored 7 L4 Coral, Processed 4 Algae.")
				convey.So(out, convey.ShouldContainSubstring, "Team 118: Scored 2 L4 Coral, Processed 0 Algae.")
			})

			convey.Convey("Then logs stay off stdout", func() {
				convey.So(out, convey.ShouldNotContainSubstring, "scouting log loaded")
				convey.So(stderr.String(), convey.ShouldContainSubstring, "scouting log loaded")
			})
		})

		convey.Convey("When the match is past the end of the log", func() {
			code := run(context.Background(), []string{"-match", "99"}, &stdout, &stderr)

			convey.Convey("Then the roster cannot be found", func() {
				convey.So(code, convey.ShouldEqual, exitFatal)
				convey.So(stdout.String(), convey.ShouldContainSubstring, "No data found for match 99")
			})
		})

		convey.Convey("When the match flag is missing", func() {
			code := run(context.Background(), nil, &stdout, &stderr)

			convey.Convey("Then usage is reported", func() {
				convey.So(code, convey.ShouldEqual, exitUsage)
			})
		})

		convey.Convey("When the alliance is unknown", func() {
			code := run(context.Background(), []string{"-match", "2", "-alliance", "green"}, &stdout, &stderr)

			convey.Convey("Then usage is reported", func() {
				convey.So(code, convey.ShouldEqual, exitUsage)
			})
		})
	})

	convey.Convey("Given a missing scouting log", t, func() {
		setupEnv(t)
		t.Setenv("SCOUT_CSV_PATH", filepath.Join(t.TempDir(), "missing.csv"))
		var stdout, stderr bytes.Buffer

		code := run(context.Background(), []string{"-match", "1"}, &stdout, &stderr)

		convey.Convey("Then the command fails", func() {
			convey.So(code, convey.ShouldEqual, exitFatal)
		})
	})
}

func TestPrintBriefing(t *testing.T) {
	convey.Convey("Given a briefing for a match not yet played", t, func() {
		var out bytes.Buffer
		printBriefing(&out, model.Briefing{
			MatchNumber:    40,
			Roster:         model.MatchRoster{Red: []string{"254", "1678"}, Blue: []string{"118"}, Source: "tba"},
			Recommendation: "Play defense on 118.",
		})

		convey.Convey("Then the oracle reports no result", func() {
			convey.So(out.String(), convey.ShouldContainSubstring, "Red Alliance: 254, 1678\n")
			convey.So(out.String(), convey.ShouldContainSubstring, "Play defense on 118.\n")
			convey.So(out.String(), convey.ShouldEndWith, "--- Actual Result (Oracle) ---\nMatch has not happened relative to dataset.\n")
			convey.So(out.String(), convey.ShouldNotContainSubstring, "TBA lookup failed")
		})
	})
}

func TestPrintFailure(t *testing.T) {
	convey.Convey("Given a failed briefing", t, func() {
		var out bytes.Buffer

		convey.Convey("When no roster source knew the match", func() {
			printFailure(&out, 12, fmt.Errorf("%w: match 12: %w", roster.ErrRosterUnavailable, roster.ErrNoLocalRows))

			convey.Convey("Then the no-data line is printed", func() {
				convey.So(out.String(), convey.ShouldEqual, "No data found for match 12 in CSV or TBA.\n")
			})
		})

		convey.Convey("When the service failed for another reason", func() {
			printFailure(&out, 12, app.ErrNotStarted)

			convey.Convey("Then the real cause is printed instead", func() {
				convey.So(out.String(), convey.ShouldNotContainSubstring, "No data found")
				convey.So(out.String(), convey.ShouldContainSubstring, "Could not build a briefing for match 12")
				convey.So(out.String(), convey.ShouldContainSubstring, app.ErrNotStarted.Error())
			})
		})
	})
}
