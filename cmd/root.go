// Package cmd implements the command-line interface for pplay.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/pplay-cli/pplay/color"
	"github.com/pplay-cli/pplay/constant"
	"github.com/pplay-cli/pplay/icon"
	"github.com/pplay-cli/pplay/key"
	"github.com/pplay-cli/pplay/log"
	"github.com/pplay-cli/pplay/style"
	"github.com/pplay-cli/pplay/tui"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icon variant: "+strings.Join(icon.AvailableVariants(), ", "))
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("save-metadata", "M", true, "Persist probed media information for browsed files")
	lo.Must0(viper.BindPFlag(key.MetadataSave, rootCmd.PersistentFlags().Lookup("save-metadata")))

	rootCmd.PersistentFlags().String("mpv", "", "Path or name of the mpv executable")
	lo.Must0(viper.BindPFlag(key.PlayerExecutable, rootCmd.PersistentFlags().Lookup("mpv")))

	rootCmd.Flags().StringP("play", "p", "", "Start playing this file right away")
	lo.Must0(rootCmd.MarkFlagFilename("play"))
}

// rootCmd opens the file browser, optionally in the given directory.
var rootCmd = &cobra.Command{
	Use:   constant.Pplay + " [dir]",
	Short: "A handheld-style terminal media player front-end for mpv",
	Long: constant.Logo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A handheld-style terminal media player front-end for mpv"),
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if f := cmd.Flag("icons"); f != nil && f.Changed && !icon.IsVariant(f.Value.String()) {
			return fmt.Errorf("unknown icons variant %q, expected one of %s", f.Value.String(), strings.Join(icon.AvailableVariants(), ", "))
		}
		return nil
	},
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveFilterDirs
	},
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		options := tui.Options{
			Play: lo.Must(cmd.Flags().GetString("play")),
		}
		if len(args) > 0 {
			options.Dir = args[0]
		}

		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
