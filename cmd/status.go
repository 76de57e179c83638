package cmd

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lilcord/lilbot/pkg/bot"
	"github.com/lilcord/lilbot/pkg/config"
	"github.com/lilcord/lilbot/pkg/status"
)

var statusCmd = &cobra.Command{
	Use:   "status [subject]",
	Short: "Print stored statuses without connecting to Discord",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := bot.NewLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		store, err := bot.OpenStatusStore(logger.With(zap.String("command", "status")))
		if err != nil {
			return err
		}

		subjects := store.Subjects()
		if store.Mode() == status.ModeOpen {
			subjects = nil
		}
		if len(args) > 0 {
			subjects = args
		}
		if len(subjects) == 0 {
			return fmt.Errorf("no subject given and no subjects configured in %s mode", config.C.Status.Mode)
		}
		slices.Sort(subjects)

		out := cmd.OutOrStdout()
		for _, subject := range subjects {
			text, ok := store.Get(subject)
			fmt.Fprintf(out, "%s: %s\n", subject, lo.Ternary(ok, text, "(none)"))
		}
		return nil
	},
}
