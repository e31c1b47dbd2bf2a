package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidswitch/vidswitch/filesystem"
	"github.com/vidswitch/vidswitch/key"
	"github.com/vidswitch/vidswitch/where"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)
		So(enabled, ShouldBeFalse)

		Convey("Emissions are discarded without panicking", func() {
			So(func() { Infof("switch %d", 1) }, ShouldNotPanic)
			So(func() { WithFields(map[string]interface{}{"generation": 1}).Info("ignored") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		viper.Set(key.LogsJson, true)
		Reset(func() {
			viper.Set(key.LogsWrite, false)
			viper.Set(key.LogsJson, false)
			enabled = false
		})

		So(Setup(), ShouldBeNil)
		So(enabled, ShouldBeTrue)
		So(logger.GetLevel(), ShouldEqual, logrus.DebugLevel)

		Convey("Entries land in today's file", func() {
			WithFields(map[string]interface{}{"label": "720p"}).Debug("switching")

			path := filepath.Join(where.Logs(), "vidswitch-"+time.Now().Format("2006-01-02")+".log")
			data, err := filesystem.API().ReadFile(path)
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"label":"720p"`)
			So(string(data), ShouldContainSubstring, "switching")
		})
	})

	Convey("An unknown level falls back to info", t, func() {
		viper.Set(key.LogsLevel, "loud")
		So(level(), ShouldEqual, logrus.InfoLevel)
	})
}
