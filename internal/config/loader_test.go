package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/fairsplit/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FAIRSPLIT_CONFIG", "")
	t.Setenv("FAIRSPLIT_GROUP_COUNT", "4")

	Convey("Given only a group count in the environment", t, func() {
		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults fill every other field", func() {
				So(err, ShouldBeNil)
				So(cfg.GroupCount, ShouldEqual, 4)
				So(cfg.TimeBudgetSeconds, ShouldEqual, 900)
				So(cfg.SwapProbability, ShouldEqual, 0.8)
				So(cfg.FocusWindow, ShouldEqual, 3)
				So(cfg.RecomputeEvery, ShouldEqual, 500)
				So(cfg.OutputFile, ShouldEqual, "balanced_groups.xlsx")
			})
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FAIRSPLIT_CONFIG", "")
	t.Setenv("FAIRSPLIT_GROUP_COUNT", "4")
	t.Setenv("FAIRSPLIT_TIME_BUDGET_SECONDS", "30")
	t.Setenv("FAIRSPLIT_SWAP_PROBABILITY", "0.6")

	Convey("Given env vars overriding tunables", t, func() {
		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then the overrides win over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.TimeBudgetSeconds, ShouldEqual, 30)
				So(cfg.SwapProbability, ShouldEqual, 0.6)
			})
		})
	})
}

func TestLoadFileLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "group_count: 8\ninitial_temp: 500\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FAIRSPLIT_CONFIG", path)
	t.Setenv("FAIRSPLIT_GROUP_COUNT", "4")

	Convey("Given a YAML file layered under the environment", t, func() {
		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then the env beats the file and the file beats defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.GroupCount, ShouldEqual, 4)
				So(cfg.InitialTemp, ShouldEqual, 500.0)
			})
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given no group count anywhere", t, func() {
		t.Setenv("FAIRSPLIT_CONFIG", "")
		t.Setenv("FAIRSPLIT_GROUP_COUNT", "")

		Convey("When loading", func() {
			_, err := config.Load(context.Background())

			Convey("Then validation rejects the config", func() {
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})

	Convey("Given an out-of-range cooling factor", t, func() {
		t.Setenv("FAIRSPLIT_CONFIG", "")
		t.Setenv("FAIRSPLIT_GROUP_COUNT", "4")
		t.Setenv("FAIRSPLIT_COOLING_FACTOR", "1.5")

		Convey("When loading", func() {
			_, err := config.Load(context.Background())

			Convey("Then validation rejects the config", func() {
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("FAIRSPLIT_GROUP_COUNT", "4")
	t.Setenv("FAIRSPLIT_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	Convey("Given a config file that does not exist", t, func() {
		Convey("When loading", func() {
			_, err := config.Load(context.Background())

			Convey("Then the load fails", func() {
				So(err, ShouldWrap, config.ErrLoadConfig)
			})
		})
	})
}
