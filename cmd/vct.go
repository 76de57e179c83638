package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lilcord/lilbot/pkg/bot"
	"github.com/lilcord/lilbot/pkg/match"
)

var vctCmd = &cobra.Command{
	Use:   "vct <upcoming|live|results>",
	Short: "Print VCT matches from vlr.gg without connecting to Discord",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := match.ParseMode(args[0])
		if err != nil {
			return err
		}
		list, err := bot.NewMatchClient().Fetch(cmd.Context(), mode)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintf(out, "No %s matches right now.\n", mode)
			return nil
		}
		for _, m := range list {
			fmt.Fprintf(out, "%s vs %s  %s  [%s] %s\n", m.TeamA.Name, m.TeamB.Name, m.ScoreLine(), m.Status, m.Event)
			if m.PageURL != "" {
				fmt.Fprintf(out, "  %s\n", m.PageURL)
			}
		}
		return nil
	},
}
