package game

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConfigurationValidate(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		cfg := DefaultConfiguration()

		Convey("It validates and resolves the derived properties", func() {
			So(cfg.Validate(), ShouldBeNil)
			So(cfg.Horizon, ShouldEqual, 5*7*10)
			So(cfg.CommandMode(), ShouldEqual, Normal)
			So(cfg.ActionSpaceSize(), ShouldEqual, 6)
			So(cfg.NbOrientations(), ShouldEqual, 4)
			So(cfg.NbColors(), ShouldEqual, NbColors)
			So(len(cfg.Tokens()), ShouldEqual, len(DefaultTokens))
		})

		Convey("An explicit horizon is kept as-is", func() {
			cfg.Horizon = 42
			So(cfg.Validate(), ShouldBeNil)
			So(cfg.Horizon, ShouldEqual, 42)
		})

		Convey("Nonpositive extents are rejected", func() {
			cfg.Rows = 0
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("Fewer than one robot is rejected", func() {
			cfg.NbRobots = 0
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("Positive penalties are rejected", func() {
			cfg.RewardDuplicateBeep = 0.5
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("An unknown mode is rejected", func() {
			cfg.Mode = "continuous"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("A negative horizon is rejected", func() {
			cfg.Horizon = -1
			So(cfg.Validate(), ShouldNotBeNil)
		})
	})
}

func TestConfigFromYaml(t *testing.T) {
	Convey("Given a config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		doc := `
kind: sapientino
def:
  environment:
    rows: 4
    columns: 6
    mode: differential
    rewardPerStep: -0.05
`
		So(os.WriteFile(path, []byte(doc), 0644), ShouldBeNil)

		Convey("Explicit values land and omissions keep the defaults", func() {
			cfg, err := ConfigFromYaml(path)
			So(err, ShouldBeNil)
			So(cfg.Rows, ShouldEqual, 4)
			So(cfg.Columns, ShouldEqual, 6)
			So(cfg.CommandMode(), ShouldEqual, Differential)
			So(cfg.RewardPerStep, ShouldAlmostEqual, -0.05)
			So(cfg.RewardOutsideGrid, ShouldAlmostEqual, -1.0)
			So(cfg.NbRobots, ShouldEqual, 1)
			So(cfg.Horizon, ShouldEqual, 4*6*10)
		})

		Convey("A path outside the working directory loads", func() {
			nested := filepath.Join(dir, "conf", "envs")
			So(os.MkdirAll(nested, 0755), ShouldBeNil)
			nestedPath := filepath.Join(nested, "config.yaml")
			So(os.WriteFile(nestedPath, []byte(doc), 0644), ShouldBeNil)

			cfg, err := ConfigFromYaml(nestedPath)
			So(err, ShouldBeNil)
			So(cfg.Rows, ShouldEqual, 4)
		})

		Convey("A missing file yields an error", func() {
			_, err := ConfigFromYaml(filepath.Join(dir, "absent.yaml"))
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a config referencing a map file", t, func() {
		dir := t.TempDir()
		mapPath := filepath.Join(dir, "board.map")
		So(os.WriteFile(mapPath, []byte("r g\n   \nb u\n"), 0644), ShouldBeNil)

		cfg := DefaultConfiguration()
		cfg.Rows = 3
		cfg.Columns = 3
		cfg.MapFile = mapPath

		Convey("The map supplies the marker layout", func() {
			So(cfg.Validate(), ShouldBeNil)
			So(len(cfg.Tokens()), ShouldEqual, 4)
		})

		Convey("A map extent mismatch is rejected", func() {
			cfg.Rows = 5
			cfg.Columns = 7
			So(cfg.Validate(), ShouldNotBeNil)
		})
	})
}
