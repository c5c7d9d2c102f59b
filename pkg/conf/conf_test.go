package conf

import (
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
)

const testAppName = "testAppName"

var customFlag = NewStringFlag("custom_arg", "help", "default")

func clearEnv() {
	// Clear all environment variables in context of that test.
	logLevelFlag.clear()
	customFlag.clear()
}

func TestFlag(t *testing.T) {
	Convey("While using Flag struct, it should construct proper dbsweep environment var name", t, func() {
		So(customFlag.envName(), ShouldEqual, "DBSWEEP_CUSTOM_ARG")
	})
}

func TestConf(t *testing.T) {
	Convey("While using Conf pkg", t, func() {
		clearEnv()
		defer clearEnv()

		SetAppName(testAppName)

		Convey("Name should match the specified one", func() {
			So(AppName(), ShouldEqual, testAppName)
		})

		Convey("Log level can be fetched", func() {
			So(ParseEnv(), ShouldBeNil)
			So(LogLevel(), ShouldEqual, logrus.InfoLevel)
		})

		Convey("Log level can be fetched from env", func() {
			os.Setenv(logLevelFlag.envName(), "debug")
			So(ParseEnv(), ShouldBeNil)
			So(LogLevel(), ShouldEqual, logrus.DebugLevel)
		})

		Convey("Custom flag value is default until parsed", func() {
			os.Setenv(customFlag.envName(), "from-env")

			So(ParseEnv(), ShouldBeNil)
			So(customFlag.Value(), ShouldEqual, "from-env")
		})

		Convey("Registered flags are present in the dump", func() {
			So(ParseEnv(), ShouldBeNil)
			dump := DumpConfig()
			So(dump, ShouldContainSubstring, "DBSWEEP_LOG=")
			So(dump, ShouldContainSubstring, "DBSWEEP_CUSTOM_ARG=")
		})
	})
}

func TestTypedFlags(t *testing.T) {
	Convey("While defining typed flags", t, func() {
		Convey("Int flag returns its default before parse", func() {
			intFlag := NewIntFlag("conf_test_int", "help", 42)
			defer intFlag.clear()
			So(intFlag.Value(), ShouldEqual, 42)
		})

		Convey("Bool flag can be set from env", func() {
			boolFlag := NewBoolFlag("conf_test_bool", "help", false)
			defer boolFlag.clear()

			os.Setenv(boolFlag.envName(), "true")
			So(ParseEnv(), ShouldBeNil)
			So(boolFlag.Value(), ShouldBeTrue)
		})

		Convey("Duration flag parses duration syntax from env", func() {
			durationFlag := NewDurationFlag("conf_test_duration", "help", time.Second)
			defer durationFlag.clear()

			os.Setenv(durationFlag.envName(), "2m")
			So(ParseEnv(), ShouldBeNil)
			So(durationFlag.Value(), ShouldEqual, 2*time.Minute)
		})

		Convey("Slice flag splits comma separated values from env", func() {
			sliceFlag := NewSliceFlag("conf_test_slice", "help", "a", "b")
			defer sliceFlag.clear()

			os.Setenv(sliceFlag.envName(), "x, y,z")
			So(ParseEnv(), ShouldBeNil)
			So(sliceFlag.Value(), ShouldResemble, []string{"x", "y", "z"})
		})
	})
}
