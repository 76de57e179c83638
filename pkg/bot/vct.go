package bot

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lilcord/lilbot/pkg/config"
	"github.com/lilcord/lilbot/pkg/domain"
	"github.com/lilcord/lilbot/pkg/match"
)

const stopKeyword = "stop"

func vctCommand(matches match.Fetcher, tracker *match.Tracker) *CommandInstance {
	usage := fmt.Sprintf("Usage: `%svct <upcoming|live|results|stop>`", config.C.Prefix)
	return &CommandInstance{
		name:        "vct",
		argsSyntax:  "<upcoming|live|results|stop>",
		description: "VCT matches from vlr.gg; live cards update every minute",
		run: func(ctx domain.Context) error {
			if len(ctx.Args()) == 0 {
				return ctx.ReplyBad(usage)
			}

			if ctx.Args()[0] == stopKeyword {
				if tracker == nil || !tracker.Unbind(ctx.ChannelID()) {
					return ctx.Reply("There is no live scoreboard in this channel.")
				}
				return ctx.Reply("Stopped updating the live scoreboard in this channel.")
			}

			mode, err := match.ParseMode(ctx.Args()[0])
			if err != nil {
				return ctx.ReplyBad(usage)
			}

			list, err := matches.Fetch(ctx, mode)
			if err != nil {
				ctx.L().Warn("match fetch failed", zap.String("mode", string(mode)), zap.Error(err))
				return ctx.ReplyFailure("Couldn't reach vlr.gg, try again later.")
			}
			if len(list) == 0 {
				return ctx.Reply(fmt.Sprintf("No %s matches right now.", mode))
			}

			if mode == match.ModeLive {
				ref, err := ctx.ReplyCard(match.Render(list[0]))
				if err != nil {
					return err
				}
				if tracker != nil {
					tracker.Bind(ref)
				}
				return nil
			}

			for _, m := range list {
				if _, err := ctx.ReplyCard(match.Render(m)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
