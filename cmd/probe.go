package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/pplay-cli/pplay/color"
	"github.com/pplay-cli/pplay/constant"
	"github.com/pplay-cli/pplay/filesystem"
	"github.com/pplay-cli/pplay/icon"
	"github.com/pplay-cli/pplay/key"
	"github.com/pplay-cli/pplay/log"
	"github.com/pplay-cli/pplay/media"
	"github.com/pplay-cli/pplay/metadata"
	"github.com/pplay-cli/pplay/player"
	"github.com/pplay-cli/pplay/style"
	"github.com/pplay-cli/pplay/util"
	"github.com/pplay-cli/pplay/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	probeCmd.Flags().Bool("schema", false, "Print the JSON schema of the probe output and exit")
	probeCmd.Flags().DurationP("timeout", "t", 10*time.Second, "Give up when the file is not loaded in time")

	probeCmd.SetOut(os.Stdout)
}

// probeCmd loads a file in a headless engine and prints its streams.
var probeCmd = &cobra.Command{
	Use:     "probe <file>",
	Short:   "Print the duration and the video, audio and subtitle streams of a media file",
	Example: "  pplay probe ./movie.mkv --json",
	Args: func(cmd *cobra.Command, args []string) error {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			return nil
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			schema := jsonschema.Reflect(&media.Info{})
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(schema))
			return
		}

		CheckDependencies()

		file, err := probeFile(args[0], lo.Must(cmd.Flags().GetDuration("timeout")))
		handleErr(err)

		if viper.GetBool(key.MetadataSave) {
			if err := metadata.Default().Save(file); err != nil {
				log.Warnf("could not save media info of %s: %v", file.Path, err)
			}
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(file.Info))
			return
		}

		cmd.Print(describeInfo(file))
	},
}

func probeFile(path string, timeout time.Duration) (*media.File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	stat, err := filesystem.API().Stat(abs)
	if err != nil {
		return nil, err
	}
	file := media.NewFile(filepath.Dir(abs), stat)

	engine := player.NewMPV(player.Options{
		Executable: viper.GetString(key.PlayerExecutable),
		ConfigDir:  where.MPV(),
		SocketDir:  where.Temp(),
		Headless:   true,
	})
	if err := engine.Start(); err != nil {
		return nil, fmt.Errorf("could not start mpv: %w", err)
	}
	defer func() {
		if err := engine.Close(); err != nil {
			log.Warnf("could not close mpv: %v", err)
		}
	}()

	erase := util.PrintErasable(fmt.Sprintf("%s Probing %s...", icon.Get(icon.Progress), style.Fg(color.Media)(file.Name)))
	defer erase()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	file.Info, err = player.Probe(ctx, engine, file.Path)
	if err != nil {
		return nil, err
	}

	return file, nil
}

// describeInfo renders the probed streams one category per block.
func describeInfo(file *media.File) string {
	header := style.New().Bold(true).Foreground(color.HiPurple).Render

	out := fmt.Sprintf("%s %s\n%s %s\n",
		icon.Get(icon.File), style.Bold(file.Name),
		style.Faint("Duration"), file.Info.DurationString(),
	)

	for _, kind := range []media.StreamKind{media.KindVideo, media.KindAudio, media.KindSubtitle} {
		tracks := lo.Reject(file.Info.Tracks(kind), func(track media.Track, _ int) bool {
			return track.ID == constant.SubtitleNone
		})
		if len(tracks) == 0 {
			continue
		}

		out += "\n" + header(util.Quantify(len(tracks), kind.String()+" track", kind.String()+" tracks")) + "\n"
		for _, track := range tracks {
			out += fmt.Sprintf("  %s %s\n", style.Fg(color.Yellow)(fmt.Sprintf("#%d", track.ID)), track.Label)
		}
	}

	return out
}
