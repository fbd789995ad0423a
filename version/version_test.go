package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Comparing versions", t, func() {
		Convey("Should order by major, minor then patch", func() {
			for _, c := range []struct {
				a, b string
				want int
			}{
				{"0.38.0", "0.37.9", 1},
				{"0.37.0", "0.38.0", -1},
				{"1.0.0", "0.99.99", 1},
				{"v0.38.0", "0.38.0", 0},
				{"0.38", "0.38.0", 0},
				{"0.38.0-dirty", "0.38.0", 0},
				{"0.39.0+git20240101", "0.38.0", 1},
			} {
				got, err := Compare(c.a, c.b)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, c.want)
			}
		})

		Convey("Should reject garbage", func() {
			_, err := Compare("latest", "0.38.0")
			So(err, ShouldNotBeNil)

			_, err = Compare("1", "0.38.0")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Parsing mpv --version output", t, func() {
		Convey("Should find release versions", func() {
			v, err := Parse("mpv 0.38.0 Copyright © 2000-2024 mpv/MPlayer/mplayer2 projects\n built on ...")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "0.38.0")
		})

		Convey("Should find git builds", func() {
			v, err := Parse("mpv v0.37.0-411-g8e2b5f1 Copyright © 2000-2023\n")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "0.37.0-411-g8e2b5f1")
			So(Supported(v), ShouldBeFalse)
		})

		Convey("Should fail without a version line", func() {
			_, err := Parse("command not found")
			So(err, ShouldEqual, ErrUnknown)
		})
	})

	Convey("Supported versions", t, func() {
		So(Supported("0.38.0"), ShouldBeTrue)
		So(Supported("0.40.1"), ShouldBeTrue)
		So(Supported("0.35.1"), ShouldBeFalse)
		So(Supported("garbage"), ShouldBeFalse)
	})
}
