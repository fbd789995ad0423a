package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pplay-cli/pplay/media"
)

// ErrEndedBeforeLoad is returned by Probe when the engine gave up on the file before loading it.
var ErrEndedBeforeLoad = errors.New("playback ended before the file was loaded")

const probeInterval = 20 * time.Millisecond

// Probe loads path paused and returns its media information once the engine reports it loaded.
// The file is stopped again before returning.
func Probe(ctx context.Context, engine Engine, path string) (media.Info, error) {
	if err := engine.Load(path, LoadReplace, "pause=yes"); err != nil {
		return media.Info{}, fmt.Errorf("could not load %s: %w", path, err)
	}

	ticker := time.NewTicker(probeInterval)
	defer ticker.Stop()

	for {
		for {
			event, ok := engine.PullEvent()
			if !ok {
				break
			}

			switch e := event.(type) {
			case FileLoadedEvent:
				info, err := engine.MediaInfo()
				_ = engine.Stop()
				return info, err
			case EndFileEvent:
				if e.Reason == EndReasonError && e.Error != "" {
					return media.Info{}, fmt.Errorf("%w: %s", ErrEndedBeforeLoad, e.Error)
				}
				return media.Info{}, ErrEndedBeforeLoad
			}
		}

		select {
		case <-ctx.Done():
			_ = engine.Stop()
			return media.Info{}, ctx.Err()
		case <-ticker.C:
			if !engine.IsAvailable() {
				return media.Info{}, ErrNotRunning
			}
		}
	}
}
