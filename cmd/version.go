package cmd

import (
	"encoding/json"
	"os"
	"runtime"
	"strings"

	"github.com/pplay-cli/pplay/color"
	"github.com/pplay-cli/pplay/constant"
	"github.com/pplay-cli/pplay/key"
	"github.com/pplay-cli/pplay/style"
	"github.com/pplay-cli/pplay/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the pplay version")
	versionCmd.Flags().BoolP("json", "j", false, "Print build information as JSON")
	versionCmd.MarkFlagsMutuallyExclusive("short", "json")
}

type buildInfo struct {
	Version  string `json:"version"`
	Revision string `json:"revision,omitempty"`
	BuiltAt  string `json:"built_at,omitempty"`
	BuiltBy  string `json:"built_by,omitempty"`
	Platform string `json:"platform"`
	MPV      string `json:"mpv"`
}

func currentBuild() buildInfo {
	mpv, err := version.MPV(viper.GetString(key.PlayerExecutable))
	if err != nil {
		mpv = ""
	}

	return buildInfo{
		Version:  constant.Version,
		Revision: constant.Revision,
		BuiltAt:  strings.TrimSpace(constant.BuiltAt),
		BuiltBy:  constant.BuiltBy,
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		MPV:      mpv,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version, build metadata and the detected mpv",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		info := currentBuild()
		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(info))
			return
		}

		mpv := style.Bold(info.MPV)
		switch {
		case info.MPV == "":
			mpv = style.Fg(color.Bad)("not found")
		case !version.Supported(info.MPV):
			mpv += " " + style.Fg(color.Bad)("(unsupported, "+constant.MPVMinVersion+" or newer is required)")
		}

		rows := []lo.Tuple2[string, string]{
			lo.T2("Version", style.Bold(info.Version)),
			lo.T2("Git Commit", style.Bold(info.Revision)),
			lo.T2("Build Date", style.Bold(info.BuiltAt)),
			lo.T2("Built By", style.Bold(info.BuiltBy)),
			lo.T2("Platform", style.Bold(info.Platform)),
			lo.T2("mpv", mpv),
		}

		cmd.Println(style.Fg(color.Media)("▇▇▇ " + constant.Pplay))
		cmd.Println()
		for _, row := range rows {
			cmd.Printf("  %s %s\n", style.Faint(row.A+strings.Repeat(" ", 15-len(row.A))), row.B)
		}
	},
}
