package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pplay-cli/pplay/filesystem"
	"github.com/pplay-cli/pplay/key"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestDirectories(t *testing.T) {
	Convey("Given the in-memory filesystem", t, func() {
		dirs := map[string]func() string{
			"config": Config,
			"cache":  Cache,
			"logs":   Logs,
			"mpv":    MPV,
			"temp":   Temp,
		}

		for name, resolve := range dirs {
			Convey(name+" is created on demand", func() {
				path := resolve()
				So(path, ShouldNotBeEmpty)
				So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			})
		}

		Convey("Logs and mpv live inside the config directory", func() {
			viper.Set(key.PlayerConfigDir, "")
			So(filepath.Dir(Logs()), ShouldEqual, Config())
			So(MPV(), ShouldEqual, filepath.Join(Config(), "mpv"))
		})

		Convey("Media info is a file in the cache directory", func() {
			So(filepath.Dir(MediaInfo()), ShouldEqual, Cache())
			So(lo.Must(filesystem.API().Exists(MediaInfo())), ShouldBeFalse)
		})

		Convey("The mpv directory can be configured", func() {
			viper.Set(key.PlayerConfigDir, "/srv/mpv")
			defer viper.Set(key.PlayerConfigDir, "")
			So(MPV(), ShouldEqual, "/srv/mpv")
			So(lo.Must(filesystem.API().IsDir("/srv/mpv")), ShouldBeTrue)
		})

		Convey("The config directory follows the environment", func() {
			So(os.Setenv(EnvConfigPath, "/etc/pplay-test"), ShouldBeNil)
			defer os.Unsetenv(EnvConfigPath)
			So(Config(), ShouldEqual, "/etc/pplay-test")
		})
	})
}
