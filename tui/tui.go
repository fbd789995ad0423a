// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pplay-cli/pplay/key"
	"github.com/pplay-cli/pplay/log"
	"github.com/pplay-cli/pplay/metadata"
	"github.com/pplay-cli/pplay/player"
	"github.com/pplay-cli/pplay/where"
	"github.com/spf13/viper"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Dir is the directory the browser opens in
	Dir string
	// Play is a file to start playing right away
	Play string
}

// Run starts the playback engine and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	engine := player.NewMPV(player.Options{
		Executable: viper.GetString(key.PlayerExecutable),
		ConfigDir:  where.MPV(),
		SocketDir:  where.Temp(),
	})

	if err := engine.Start(); err != nil {
		return fmt.Errorf("could not start mpv: %w", err)
	}
	defer func() {
		if err := engine.Close(); err != nil {
			log.Warnf("could not close mpv: %v", err)
		}
	}()

	if slang := viper.GetString(key.PlayerSlang); slang != "" {
		if err := engine.SetOption("slang", slang); err != nil {
			log.Warnf("could not set slang: %v", err)
		}
	}

	var store infoStore
	if viper.GetBool(key.MetadataSave) {
		store = metadata.Default()
	}

	bubble := newBubble(engine, store, options)

	var programOptions []tea.ProgramOption
	if viper.GetBool(key.TUIAltScreen) {
		programOptions = append(programOptions, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(bubble, programOptions...).Run(); err != nil {
		return err
	}

	return bubble.lastError
}
