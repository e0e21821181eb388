package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/promptcraft/internal/export"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Print the knowledge review cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		share, _ := cmd.Flags().GetBool("share")

		sc, err := configuredScript(cmd)
		if err != nil {
			return err
		}

		text := export.LearnerCards(sc.KnowledgePoints())
		if share {
			text = export.ShareLearnerCards(sc.KnowledgePoints())
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	cardsCmd.Flags().Bool("share", false, "Prefix the cards with the share title")
}
