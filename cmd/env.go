package cmd

import (
	"os"
	"sort"
	"strings"

	"github.com/pplay-cli/pplay/color"
	"github.com/pplay-cli/pplay/config"
	"github.com/pplay-cli/pplay/style"
	"github.com/pplay-cli/pplay/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")
	envCmd.Flags().BoolP("describe", "d", false, "Display the description of every variable")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.SetOut(os.Stdout)
}

// envVariable is an environment variable pplay reads.
type envVariable struct {
	name        string
	description string
}

// envVariables returns every supported variable sorted by name.
func envVariables() []envVariable {
	vars := lo.FilterMap(config.EnvExposed, func(key string, _ int) (envVariable, bool) {
		field, ok := config.Default[key]
		if !ok {
			return envVariable{}, false
		}
		return envVariable{name: field.Env(), description: field.Description}, true
	})

	vars = append(vars, envVariable{
		name:        where.EnvConfigPath,
		description: "Directory holding the configuration file",
	})

	sort.Slice(vars, func(i, j int) bool {
		return vars[i].name < vars[j].name
	})
	return vars
}

// envCmd displays the current process values for all supported environment variables.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the collection of supported environment variables",
	Long:  `Display the collection of supported environment variables and their current process values.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			setOnly   = lo.Must(cmd.Flags().GetBool("set-only"))
			unsetOnly = lo.Must(cmd.Flags().GetBool("unset-only"))
			describe  = lo.Must(cmd.Flags().GetBool("describe"))
		)

		for _, v := range envVariables() {
			value, present := os.LookupEnv(v.name)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			if describe {
				for _, line := range strings.Split(v.description, "\n") {
					cmd.Println(style.Faint("# " + line))
				}
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(v.name))
			cmd.Print("=")

			if present {
				cmd.Println(style.Fg(color.Ok)(value))
			} else {
				cmd.Println(style.Fg(color.Bad)("unset"))
			}
		}
	},
}
