// Package where knows the directories pplay reads and writes. Every directory
// returned is created on first use.
package where

import (
	"os"
	"path/filepath"

	"github.com/pplay-cli/pplay/constant"
	"github.com/pplay-cli/pplay/filesystem"
	"github.com/pplay-cli/pplay/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvConfigPath overrides the config directory.
const EnvConfigPath = "PPLAY_CONFIG_PATH"

func mkdir(elem ...string) string {
	path := filepath.Join(elem...)
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// userDir returns a platform directory, or a hidden one under the working directory when the platform has none.
func userDir(lookup func() (string, error), fallback string) string {
	if dir, err := lookup(); err == nil {
		return dir
	}
	return fallback
}

func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok && custom != "" {
		return mkdir(custom)
	}
	return mkdir(userDir(os.UserConfigDir, ".config"), constant.Pplay)
}

func Cache() string {
	return mkdir(userDir(os.UserCacheDir, ".cache"), constant.Pplay)
}

func Logs() string {
	return mkdir(Config(), "logs")
}

// MPV holds the mpv.conf, scripts and watch_later data the engine is started with.
func MPV() string {
	if custom := viper.GetString(key.PlayerConfigDir); custom != "" {
		return mkdir(custom)
	}
	return mkdir(Config(), "mpv")
}

// MediaInfo is the file probed media information is kept in.
func MediaInfo() string {
	return filepath.Join(Cache(), "mediainfo.json")
}

// Temp holds IPC sockets. Its content does not outlive a run.
func Temp() string {
	return mkdir(os.TempDir(), constant.Pplay)
}
