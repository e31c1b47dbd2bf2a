package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
	"github.com/vidswitch/vidswitch/constant"
	"github.com/vidswitch/vidswitch/filesystem"
	"github.com/vidswitch/vidswitch/where"
)

// EnvKeyReplacer maps "switch.timeout" to "switch_timeout" for environment lookups.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup loads defaults, environment variables and vidswitch.toml, in increasing precedence.
// A missing config file is not an error.
func Setup() error {
	viper.SetConfigName(constant.Vidswitch)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	bindEnv()
	setDefaults()

	err := viper.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

func bindEnv() {
	viper.SetEnvPrefix(constant.Vidswitch)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}
}

func setDefaults() {
	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}
}
