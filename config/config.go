package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pplay-cli/pplay/constant"
	"github.com/pplay-cli/pplay/filesystem"
	"github.com/pplay-cli/pplay/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps "player.seek_step" to "player_seek_step".
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// File is the TOML file settings are read from and saved to.
func File() string {
	return filepath.Join(where.Config(), constant.Pplay+".toml")
}

// Setup layers, from weakest to strongest: defaults, the config file, PPLAY_ variables.
// Flags bound by the command line sit on top. A missing config file is not an error.
func Setup() error {
	viper.SetTypeByDefaultValue(true)
	for _, field := range Fields() {
		viper.SetDefault(field.Key, field.Value)
	}

	viper.SetEnvPrefix(constant.Pplay)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, k := range EnvExposed {
		if err := viper.BindEnv(k); err != nil {
			return fmt.Errorf("bind env for %s: %w", k, err)
		}
	}

	viper.SetFs(filesystem.API())
	viper.SetConfigFile(File())
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", File(), err)
	}

	return nil
}

// Save writes the effective settings to File, creating it when needed.
func Save() error {
	return viper.WriteConfigAs(File())
}
