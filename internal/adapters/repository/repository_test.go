package repository_test

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	repository "github.com/okian/scoutbrief/internal/adapters/repository"
	"github.com/okian/scoutbrief/internal/domain/model"
	"github.com/okian/scoutbrief/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

const wacoCSV = `match_number,frc_team,event_key,driver_station,auto_coral_l1,auto_coral_l2,auto_coral_l3,auto_coral_l4,tele_coral_l1,tele_coral_l2,tele_coral_l3,tele_coral_l4,auto_algae_processor,tele_algae_processor,defender_rating,tele_climb_speed,auto_moved
3,frc254,2025txwac,Red 1,1,0,0,2,3,0,1,4,0,2,1,Fast,Yes
1,frc254,2025txwac,Red 2,0,0,0,1,2,1,0,3,1,1,0,No,no
2,FRC6377,2025txwac,Blue 1,x,,0,0,5,0,0,0,0,0,4,No Attempt,YES
2,118,2025txwac,Blue 2,0,0,0,0,1,1,1,1,0,0,-3,Slow,Yes please
`

func writeCSV(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "scouting.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("Given a scouting log on disk", t, func() {
		ctx := context.Background()

		Convey("When loading a well-formed log", func() {
			table, err := repository.Load(ctx, writeCSV(t, wacoCSV))
			So(err, ShouldBeNil)
			rows := table.Rows()

			Convey("Then rows are sorted by match number", func() {
				So(table.Len(), ShouldEqual, 4)
				So(rows[0].MatchNumber, ShouldEqual, 1)
				So(rows[1].MatchNumber, ShouldEqual, 2)
				So(rows[2].MatchNumber, ShouldEqual, 2)
				So(rows[3].MatchNumber, ShouldEqual, 3)
				So(table.MaxMatch(), ShouldEqual, 3)
			})

			Convey("Then rows sharing a match keep their file order", func() {
				So(rows[1].TeamID, ShouldEqual, "6377")
				So(rows[2].TeamID, ShouldEqual, "118")
			})

			Convey("Then team ids lose their prefix", func() {
				So(rows[0].TeamID, ShouldEqual, "254")
				So(rows[1].TeamID, ShouldEqual, "6377")
			})

			Convey("Then metrics are coerced with zero defaults", func() {
				So(rows[1].AutoCoral[0], ShouldEqual, 0) // "x"
				So(rows[1].AutoCoral[1], ShouldEqual, 0) // blank
				So(rows[1].TeleCoral[0], ShouldEqual, 5)
				So(rows[2].DefenderRating, ShouldEqual, 0) // negative clamps
				So(rows[3].TeleCoral[3], ShouldEqual, 4)
				So(rows[3].TeleAlgaeProcessor, ShouldEqual, 2)
			})

			Convey("Then climb and auto-move flags are derived", func() {
				So(rows[0].ClimbSuccess, ShouldBeFalse) // No
				So(rows[1].ClimbSuccess, ShouldBeFalse) // No Attempt
				So(rows[2].ClimbSuccess, ShouldBeTrue)  // Slow
				So(rows[3].ClimbSuccess, ShouldBeTrue)  // Fast
				So(rows[1].AutoMoved, ShouldBeTrue)     // YES
				So(rows[2].AutoMoved, ShouldBeFalse)    // Yes please
				So(rows[3].AutoMoved, ShouldBeTrue)
			})

			Convey("Then the event key comes from the first row", func() {
				So(table.EventKey(), ShouldEqual, "2025txwac")
			})
		})

		Convey("When metric columns are absent", func() {
			csv := "match_number,frc_team,driver_station\n4,frc100,Blue 3\n"
			table, err := repository.Load(ctx, writeCSV(t, csv))

			Convey("Then they are synthesised as zeros and flags as false", func() {
				So(err, ShouldBeNil)
				row := table.Rows()[0]
				So(row.AutoCoral, ShouldResemble, [model.ReefLevels]float64{})
				So(row.TeleCoral, ShouldResemble, [model.ReefLevels]float64{})
				So(row.DefenderRating, ShouldEqual, 0)
				So(row.ClimbSuccess, ShouldBeFalse)
				So(row.AutoMoved, ShouldBeFalse)
				So(row.EventKey, ShouldEqual, "")
			})
		})

		Convey("When rows carry unusable match numbers", func() {
			csv := "match_number,frc_team\n1,frc1\npractice,frc2\n,frc3\n-2,frc4\n2.0,frc5\n2.5,frc6\n"
			table, err := repository.Load(ctx, writeCSV(t, csv))

			Convey("Then those rows are skipped", func() {
				So(err, ShouldBeNil)
				So(table.Len(), ShouldEqual, 2)
				So(table.Skipped(), ShouldEqual, 4)
				So(table.Rows()[1].TeamID, ShouldEqual, "5")
			})
		})

		Convey("When headers vary in case, spacing and BOM", func() {
			csv := "\ufeff Match_Number , FRC_Team ,Tele_Coral_L4\n7,frc9,2\n"
			table, err := repository.Load(ctx, writeCSV(t, csv))

			Convey("Then they are still recognised", func() {
				So(err, ShouldBeNil)
				So(table.Rows()[0].MatchNumber, ShouldEqual, 7)
				So(table.Rows()[0].TeamID, ShouldEqual, "9")
				So(table.Rows()[0].TeleCoral[3], ShouldEqual, 2)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := repository.Load(ctx, filepath.Join(t.TempDir(), "missing.csv"))

			Convey("Then the data is reported unavailable", func() {
				So(errors.Is(err, repository.ErrDataUnavailable), ShouldBeTrue)
			})
		})

		Convey("When the file is empty", func() {
			_, err := repository.Load(ctx, writeCSV(t, ""))

			Convey("Then the data is reported unavailable", func() {
				So(errors.Is(err, repository.ErrDataUnavailable), ShouldBeTrue)
			})
		})

		Convey("When the match_number column is missing", func() {
			_, err := repository.Load(ctx, writeCSV(t, "frc_team,auto_moved\nfrc1,yes\n"))

			Convey("Then a schema error is returned", func() {
				So(errors.Is(err, repository.ErrSchema), ShouldBeTrue)
				So(errors.Is(err, repository.ErrDataUnavailable), ShouldBeFalse)
			})
		})
	})
}

func TestTableQueries(t *testing.T) {
	Convey("Given a table spanning matches 1 to 4", t, func() {
		table := repository.NewTable([]model.MatchObservation{
			{MatchNumber: 4, TeamID: "100"},
			{MatchNumber: 1, TeamID: "100"},
			{MatchNumber: 3, TeamID: "200"},
			{MatchNumber: 2, TeamID: "100"},
			{MatchNumber: 3, TeamID: "100"},
		})

		Convey("When selecting rows before a cutoff", func() {
			before := table.RowsBefore(3)

			Convey("Then only strictly earlier matches are returned", func() {
				So(before.Len(), ShouldEqual, 2)
				for _, r := range before.Rows() {
					So(r.MatchNumber, ShouldBeLessThan, 3)
				}
				So(before.MaxMatch(), ShouldEqual, 2)
			})

			Convey("Then repeated calls are identical and leave the source intact", func() {
				So(table.RowsBefore(3).Rows(), ShouldResemble, before.Rows())
				So(table.Len(), ShouldEqual, 5)
			})
		})

		Convey("When the cutoff is at or below the first match", func() {
			Convey("Then nothing is visible", func() {
				So(table.RowsBefore(1).Len(), ShouldEqual, 0)
				So(table.RowsBefore(0).Len(), ShouldEqual, 0)
			})
		})

		Convey("When the cutoff is past the last match", func() {
			Convey("Then everything is visible", func() {
				So(table.RowsBefore(99).Len(), ShouldEqual, 5)
			})
		})

		Convey("When selecting rows at a match", func() {
			Convey("Then exactly that match is returned", func() {
				at := table.RowsAt(3)
				So(at.Len(), ShouldEqual, 2)
				So(at.Rows()[0].TeamID, ShouldEqual, "200")
				So(table.RowsAt(5).Len(), ShouldEqual, 0)
			})

			Convey("Then the largest representable match is empty, not a crash", func() {
				So(table.RowsAt(math.MaxInt).Len(), ShouldEqual, 0)
				So(table.RowsAt(math.MaxInt).Rows(), ShouldBeEmpty)
				So(table.RowsBefore(math.MaxInt).Len(), ShouldEqual, 5)
			})
		})

		Convey("When the last row sits at the largest match number", func() {
			edge := repository.NewTable([]model.MatchObservation{
				{MatchNumber: 1, TeamID: "100"},
				{MatchNumber: math.MaxInt, TeamID: "200"},
			})

			Convey("Then RowsAt still finds it", func() {
				at := edge.RowsAt(math.MaxInt)
				So(at.Len(), ShouldEqual, 1)
				So(at.Rows()[0].TeamID, ShouldEqual, "200")
			})
		})

		Convey("When mutating a returned copy", func() {
			rows := table.Rows()
			rows[0].TeamID = "999"

			Convey("Then the table is unaffected", func() {
				So(table.Rows()[0].TeamID, ShouldEqual, "100")
			})
		})

		Convey("When listing teams", func() {
			Convey("Then each team appears once in first-seen order", func() {
				So(table.Teams(), ShouldResemble, []string{"100", "200"})
			})
		})
	})
}

func TestParseClimb(t *testing.T) {
	Convey("Given climb descriptions", t, func() {
		Convey("Then explicit non-climbs are false", func() {
			for _, s := range []string{"No", "no attempt", " NO ATTEMPT ", "0", "", "None", "nan", "  "} {
				So(repository.ParseClimb(s), ShouldBeFalse)
			}
		})

		Convey("Then any other text counts as a climb", func() {
			for _, s := range []string{"Slow", "Fast", "Yes", "3", "deep"} {
				So(repository.ParseClimb(s), ShouldBeTrue)
			}
		})
	})
}

func TestParseAutoMoved(t *testing.T) {
	Convey("Given auto-move cells", t, func() {
		Convey("Then only yes counts", func() {
			So(repository.ParseAutoMoved("yes"), ShouldBeTrue)
			So(repository.ParseAutoMoved(" YES "), ShouldBeTrue)
			So(repository.ParseAutoMoved("Yes please"), ShouldBeFalse)
			So(repository.ParseAutoMoved("1"), ShouldBeFalse)
			So(repository.ParseAutoMoved(""), ShouldBeFalse)
		})
	})
}

func TestParseMetric(t *testing.T) {
	Convey("Given metric cells", t, func() {
		Convey("Then numbers parse and junk reads as zero", func() {
			So(repository.ParseMetric("3"), ShouldEqual, 3)
			So(repository.ParseMetric(" 2.5 "), ShouldEqual, 2.5)
			So(repository.ParseMetric(""), ShouldEqual, 0)
			So(repository.ParseMetric("n/a"), ShouldEqual, 0)
			So(repository.ParseMetric("NaN"), ShouldEqual, 0)
			So(repository.ParseMetric("-1"), ShouldEqual, 0)
		})
	})
}
