package log

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/pplay-cli/pplay/filesystem"
	"github.com/pplay-cli/pplay/key"
	"github.com/pplay-cli/pplay/where"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("WithFields should still return a usable entry", func() {
			entry := WithFields(Fields{"file": "movie.mkv"})
			So(entry, ShouldNotBeNil)
			So(func() { entry.Info("ignored") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)

		So(Setup(), ShouldBeNil)

		Convey("A daily log file should be created", func() {
			Info("hello")
			path := filepath.Join(where.Logs(), fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
			So(lo.Must(filesystem.API().Exists(path)), ShouldBeTrue)
		})

		Convey("Entries below the level are dropped", func() {
			viper.Set(key.LogsLevel, "warn")
			So(Setup(), ShouldBeNil)
			So(logger.IsLevelEnabled(logrus.DebugLevel), ShouldBeFalse)
			So(logger.IsLevelEnabled(logrus.WarnLevel), ShouldBeTrue)
		})
	})
}
