package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/pplay-cli/pplay/constant"
	"github.com/pplay-cli/pplay/icon"
	"github.com/pplay-cli/pplay/key"
	"github.com/pplay-cli/pplay/log"
	"github.com/pplay-cli/pplay/style"
	"github.com/pplay-cli/pplay/version"
	"github.com/spf13/viper"
)

// CheckDependencies verifies that the configured mpv executable can be found and is recent enough.
// A missing or outdated engine is fatal. An unrecognized version only warns.
func CheckDependencies() {
	executable := viper.GetString(key.PlayerExecutable)
	if _, err := exec.LookPath(executable); err != nil {
		printDependencyError(
			"Missing Dependency",
			fmt.Sprintf("The required dependency '%s' was not found in your PATH.", executable),
			installCommand(),
		)
		os.Exit(1)
	}

	v, err := version.MPV(executable)
	if err != nil {
		log.Warnf("could not detect mpv version: %v", err)
		return
	}

	if !version.Supported(v) {
		printDependencyError(
			"Outdated Dependency",
			fmt.Sprintf("mpv %s is installed, but %s or newer is required.", v, constant.MPVMinVersion),
			installCommand(),
		)
		os.Exit(1)
	}
}

func installCommand() string {
	switch runtime.GOOS {
	case constant.Darwin:
		return "brew install mpv"
	case constant.Linux:
		return "sudo apt install mpv"
	case constant.Windows:
		return "scoop install mpv"
	default:
		return ""
	}
}

func printDependencyError(headline, message, installCmd string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.ErrorColor).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s Error: %s", icon.Get(icon.Fail), headline))
	body := style.New().Foreground(style.Text).Render(message)

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
