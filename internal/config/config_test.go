package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/scoutbrief/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.CSVPath, convey.ShouldEqual, "scouting.csv")
			convey.So(cfg.TBABaseURL, convey.ShouldEqual, "https://www.thebluealliance.com/api/v3")
			convey.So(cfg.TBAKey, convey.ShouldBeEmpty)
			convey.So(cfg.AIProxyKey, convey.ShouldBeEmpty)
			convey.So(cfg.NarrativeProvider, convey.ShouldEqual, config.ProviderOpenAI)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the request timeout is unset", func() {
			convey.So(cfg.RequestTimeout(), convey.ShouldEqual, time.Duration(0))
		})

		convey.Convey("When a timeout is configured", func() {
			cfg.RequestTimeoutMS = 2500

			convey.Convey("Then it converts to a duration", func() {
				convey.So(cfg.RequestTimeout(), convey.ShouldEqual, 2500*time.Millisecond)
			})
		})
	})
}
