package cmd

import (
	"encoding/json"
	"os"

	"github.com/pplay-cli/pplay/color"
	"github.com/pplay-cli/pplay/style"
	"github.com/pplay-cli/pplay/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type location struct {
	flag    string
	short   string
	label   string
	resolve func() string
	hidden  bool
}

var locations = []location{
	{flag: "config", short: "c", label: "Config", resolve: where.Config},
	{flag: "logs", short: "l", label: "Logs", resolve: where.Logs},
	{flag: "mpv", short: "m", label: "mpv config", resolve: where.MPV},
	{flag: "metadata", label: "Metadata", resolve: where.MediaInfo},
	{flag: "cache", label: "Cache", resolve: where.Cache, hidden: true},
	{flag: "temp", label: "Sockets", resolve: where.Temp, hidden: true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		whereCmd.Flags().BoolP(l.flag, l.short, false, "Print only the "+l.label+" path")
		if l.hidden {
			lo.Must0(whereCmd.Flags().MarkHidden(l.flag))
		}
	}
	whereCmd.Flags().BoolP("json", "j", false, "Print every path as a JSON object")

	whereCmd.MarkFlagsMutuallyExclusive(append(lo.Map(locations, func(l location, _ int) string { return l.flag }), "json")...)
	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where pplay keeps its config, logs, metadata and mpv files",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if l, ok := lo.Find(locations, func(l location) bool { return lo.Must(cmd.Flags().GetBool(l.flag)) }); ok {
			cmd.Println(l.resolve())
			return
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			paths := lo.SliceToMap(locations, func(l location) (string, string) { return l.flag, l.resolve() })
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(paths))
			return
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Reject(locations, func(l location, _ int) bool { return l.hidden })
		for i, l := range visible {
			if i > 0 {
				cmd.Println()
			}
			cmd.Println(header(l.label) + " " + style.Faint("--"+l.flag))
			cmd.Println(l.resolve())
		}
	},
}
