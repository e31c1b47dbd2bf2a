package config

import (
	"testing"

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
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.IsSet(name), ShouldBeTrue)
			}
			So(viper.GetString(key.LabelStatic), ShouldEqual, "Quality")
			So(viper.GetBool(key.LabelDynamic), ShouldBeTrue)
			So(viper.GetDuration(key.SwitchTimeout).Seconds(), ShouldEqual, 30)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("switch.default")
			So(result, ShouldEqual, "switch_default")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.SwitchDefault]

		Convey("Env should be prefixed with the app name", func() {
			So(field.Env(), ShouldEqual, "VIDSWITCH_SWITCH_DEFAULT")
		})

		Convey("typeName should reflect the default value", func() {
			So(field.typeName(), ShouldEqual, "string")
			args, dynamic := Default[key.PlayerMpvArgs], Default[key.LabelDynamic]
			So(args.typeName(), ShouldEqual, "[]string")
			So(dynamic.typeName(), ShouldEqual, "bool")
		})

		Convey("Section should be the key prefix", func() {
			So(field.Section(), ShouldEqual, "switch")
			logs := Default[key.LogsJson]
			So(logs.Section(), ShouldEqual, "logs")
		})

		Convey("Pretty should show the key and env", func() {
			out := field.Pretty()
			So(out, ShouldContainSubstring, key.SwitchDefault)
			So(out, ShouldContainSubstring, "VIDSWITCH_SWITCH_DEFAULT")
		})

		Convey("MarshalJSON should include the default", func() {
			data, err := field.MarshalJSON()
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"key":"switch.default"`)
		})
	})
}

func TestConfigFile(t *testing.T) {
	Convey("Given a config file and an environment override", t, func() {
		path := where.Config() + "/vidswitch.toml"
		So(filesystem.API().WriteFile(path, []byte("[switch]\ndefault = \"720\"\ntimeout = \"5s\"\n"), 0o644), ShouldBeNil)
		t.Setenv("VIDSWITCH_SWITCH_TIMEOUT", "2s")

		Reset(func() {
			_ = filesystem.API().Remove(path)
		})

		So(Setup(), ShouldBeNil)

		Convey("The file wins over defaults", func() {
			So(viper.GetString(key.SwitchDefault), ShouldEqual, "720")
		})

		Convey("The environment wins over the file", func() {
			So(viper.GetString(key.SwitchTimeout), ShouldEqual, "2s")
		})
	})
}
