package version

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"

	"github.com/pplay-cli/pplay/constant"
)

// ErrUnknown is returned when the engine output carries no version.
var ErrUnknown = errors.New("unknown mpv version")

var mpvPattern = regexp.MustCompile(`(?m)^mpv\s+v?(\d+\.\d+(?:\.\d+)?\S*)`)

// MPV runs the engine executable and returns the version it reports.
func MPV(executable string) (string, error) {
	path, err := exec.LookPath(executable)
	if err != nil {
		return "", err
	}

	out, err := exec.Command(path, "--no-config", "--version").Output()
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", executable, err)
	}

	return Parse(string(out))
}

// Parse extracts the version from the output of mpv --version.
func Parse(output string) (string, error) {
	match := mpvPattern.FindStringSubmatch(output)
	if match == nil {
		return "", ErrUnknown
	}
	return match[1], nil
}

// Supported reports whether v is recent enough for the playback engine adapter.
func Supported(v string) bool {
	comp, err := Compare(v, constant.MPVMinVersion)
	return err == nil && comp >= 0
}
