package config

import (
	"testing"

	"github.com/pplay-cli/pplay/filesystem"
	"github.com/pplay-cli/pplay/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.PlayerSeekStep), ShouldEqual, 5)
			So(viper.GetStringSlice(key.BrowserExtensions), ShouldContain, "mkv")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("player.seek_step")
			So(result, ShouldEqual, "player_seek_step")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.OSDTimeout]

		Convey("Env should be prefixed with the application name", func() {
			So(field.Env(), ShouldEqual, "PPLAY_OSD_TIMEOUT")
		})

		Convey("Type name should reflect the default value", func() {
			So(field.typeName(), ShouldEqual, "int")
			So(Default[key.BrowserExtensions].typeName(), ShouldEqual, "[]string")
		})

		Convey("Section is the key prefix", func() {
			So(field.Section(), ShouldEqual, "osd")
		})

		Convey("Changed follows the effective value", func() {
			_ = Setup()
			So(field.Changed(), ShouldBeFalse)
			viper.Set(key.OSDTimeout, 9)
			defer viper.Set(key.OSDTimeout, field.Value)
			So(field.Changed(), ShouldBeTrue)
		})
	})

	Convey("Fields are sorted by key", t, func() {
		fields := Fields()
		So(fields, ShouldHaveLength, len(Default))
		for i := 1; i < len(fields); i++ {
			So(fields[i-1].Key, ShouldBeLessThan, fields[i].Key)
		}
	})
}
