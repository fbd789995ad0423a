package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pplay-cli/pplay/icon"
	"github.com/pplay-cli/pplay/metadata"
	"github.com/pplay-cli/pplay/util"
	"github.com/pplay-cli/pplay/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// clearTarget is a file or directory the clear command can remove.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{"metadata", "metadata", mo.Some("m"), where.MediaInfo},
	{"cache directory", "cache", mo.Some("c"), where.Cache},
	{"logs", "logs", mo.Some("l"), where.Logs},
	{"temporary files", "temp", mo.Some("t"), where.Temp},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}

	clearCmd.Flags().BoolP("stale", "s", false, "Forget the metadata of files that were moved, changed or deleted")
	clearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

// clearCmd removes persisted metadata, caches and logs.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear persisted metadata, caches and logs",
	Run: func(cmd *cobra.Command, args []string) {
		targets := lo.Filter(clearTargets, func(target clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(target.argLong))
		})

		if lo.Must(cmd.Flags().GetBool("stale")) {
			pruned, err := metadata.Default().Prune()
			handleErr(err)
			fmt.Printf("%s Forgot %s\n", icon.Get(icon.Success), util.Quantify(pruned, "stale file", "stale files"))
			if len(targets) == 0 {
				return
			}
		}

		if len(targets) == 0 {
			handleErr(cmd.Help())
			return
		}

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			names := lo.Map(targets, func(target clearTarget, _ int) string {
				return target.name
			})

			confirm := survey.Confirm{
				Message: fmt.Sprintf("Clear %s?", util.Capitalize(joinNames(names))),
				Default: false,
			}
			var response bool
			handleErr(survey.AskOne(&confirm, &response))

			if !response {
				return
			}
		}

		for _, target := range targets {
			e := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := util.Delete(target.location())
			e()

			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}
	},
}

// joinNames lists names in prose: "a", "a and b", "a, b and c".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}

	return fmt.Sprintf("%s and %s", strings.Join(names[:len(names)-1], ", "), names[len(names)-1])
}
