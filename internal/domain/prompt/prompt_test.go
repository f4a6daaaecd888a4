package prompt_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/scoutbrief/internal/domain/model"
	"github.com/okian/scoutbrief/internal/domain/prompt"
	"github.com/okian/scoutbrief/internal/domain/profile"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleInput() prompt.Input {
	return prompt.Input{
		Match:    12,
		Alliance: model.Red,
		Roster: model.MatchRoster{
			Red:  []string{"254", "1678", "118"},
			Blue: []string{"6377", "148", "2056"},
		},
		Red: []model.TeamProfile{
			{TeamID: "254", Matches: 4, AvgCoralL4: 1.5, ClimbRate: "50.0%", AutoMovedRate: "100.0%"},
			profile.Zero("1678"),
			profile.Zero("118"),
		},
		Blue: []model.TeamProfile{profile.Zero("6377"), profile.Zero("148"), profile.Zero("2056")},
	}
}

func TestBuild(t *testing.T) {
	Convey("Given a briefing input for the red alliance", t, func() {
		in := sampleInput()
		out := prompt.Build(in)

		Convey("Then it opens with the match and both rosters", func() {
			So(out, ShouldStartWith, "Analyze Match 12 for the 2025 FRC Game Reefscape.\n")
			So(out, ShouldContainSubstring, "Red Alliance: 254, 1678, 118\n")
			So(out, ShouldContainSubstring, "Blue Alliance: 6377, 148, 2056\n")
		})

		Convey("Then red profiles come before blue profiles", func() {
			red := strings.Index(out, "--- RED ALLIANCE ---")
			blue := strings.Index(out, "--- BLUE ALLIANCE ---")
			t254 := strings.Index(out, "Team 254:")
			t6377 := strings.Index(out, "Team 6377:")
			So(red, ShouldBeGreaterThan, 0)
			So(red, ShouldBeLessThan, t254)
			So(t254, ShouldBeLessThan, blue)
			So(blue, ShouldBeLessThan, t6377)
		})

		Convey("Then profile values are rendered", func() {
			So(out, ShouldContainSubstring, "Team 254: matches=4, avg_auto_coral=0, avg_tele_coral=0, avg_coral_l1=0, avg_coral_l4=1.5,")
			So(out, ShouldContainSubstring, "climb_rate=50.0%, auto_moved_rate=100.0%")
			So(out, ShouldContainSubstring, "Team 1678: matches=0")
		})

		Convey("Then the default rules and directives are included", func() {
			So(out, ShouldContainSubstring, "IMPORTANT GAME RULES & CONSTRAINTS:")
			So(out, ShouldContainSubstring, "Deep Cage Hang (12 Points)")
			So(out, ShouldContainSubstring, "**RED ALLIANCE**")
			So(out, ShouldContainSubstring, "Should RED prioritize securing Ranking Points")
			So(out, ShouldContainSubstring, "Only focus on RED alliance")
			So(out, ShouldContainSubstring, "Algae clearing is only needed for L2 and L3")
			So(out, ShouldContainSubstring, "addressed to the Drive Coach")
		})

		Convey("Then building twice yields the same text", func() {
			So(prompt.Build(in), ShouldEqual, out)
		})

		Convey("When custom rules are supplied", func() {
			in.Rules = "Only L1 counts this week."
			custom := prompt.Build(in)

			Convey("Then they replace the default block", func() {
				So(custom, ShouldContainSubstring, "Only L1 counts this week.")
				So(custom, ShouldNotContainSubstring, "Deep Cage Hang")
			})
		})

		Convey("When the target alliance is blue", func() {
			in.Alliance = model.Blue
			blue := prompt.Build(in)

			Convey("Then directives name blue", func() {
				So(blue, ShouldContainSubstring, "**BLUE ALLIANCE**")
				So(blue, ShouldContainSubstring, "Only focus on BLUE alliance")
			})
		})
	})
}

func TestLoadRules(t *testing.T) {
	Convey("Given rule sources", t, func() {
		Convey("When no path is set", func() {
			rules, err := prompt.LoadRules("")

			Convey("Then the embedded rules are used", func() {
				So(err, ShouldBeNil)
				So(rules, ShouldEqual, prompt.DefaultRules)
				So(rules, ShouldContainSubstring, "Coral RP")
			})
		})

		Convey("When a rules file exists", func() {
			path := filepath.Join(t.TempDir(), "rules.txt")
			So(os.WriteFile(path, []byte("  house rules\n"), 0o600), ShouldBeNil)
			rules, err := prompt.LoadRules(path)

			Convey("Then its trimmed contents are used", func() {
				So(err, ShouldBeNil)
				So(rules, ShouldEqual, "house rules")
			})
		})

		Convey("When the file is missing or blank", func() {
			_, missing := prompt.LoadRules(filepath.Join(t.TempDir(), "nope.txt"))
			blankPath := filepath.Join(t.TempDir(), "blank.txt")
			So(os.WriteFile(blankPath, []byte("\n"), 0o600), ShouldBeNil)
			_, blank := prompt.LoadRules(blankPath)

			Convey("Then an error is returned", func() {
				So(missing, ShouldNotBeNil)
				So(blank, ShouldNotBeNil)
			})
		})
	})
}
