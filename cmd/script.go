package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/promptcraft/internal/script"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Inspect the conversation script",
}

var scriptValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a script file (default: the configured script)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			sc  *script.Script
			err error
		)
		if len(args) == 1 {
			sc, err = readScript(args[0])
		} else {
			sc, err = configuredScript(cmd)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d steps, %d knowledge cards\n",
			sc.StepCount(), len(sc.KnowledgePoints()))
		return nil
	},
}

var scriptShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the steps and options of the script",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		if raw {
			_, err := cmd.OutOrStdout().Write(script.Raw())
			return err
		}

		sc, err := configuredScript(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%-3s  %-16s  %-24s  %s\n", "#", "ID", "Parameter", "Options")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for i, st := range sc.Steps() {
			opts := make([]string, 0, len(st.Choices))
			for _, o := range st.Choices {
				opts = append(opts, o.Display())
			}
			fmt.Fprintf(out, "%-3d  %-16s  %-24s  %s\n",
				i+1, st.ID, sc.ParameterLabel(st.ID), strings.Join(opts, " | "))
		}

		fmt.Fprintf(out, "\n%d steps\n", sc.StepCount())
		return nil
	},
}

func init() {
	scriptShowCmd.Flags().Bool("raw", false, "Print the built-in script JSON")

	scriptCmd.AddCommand(scriptValidateCmd)
	scriptCmd.AddCommand(scriptShowCmd)
}
