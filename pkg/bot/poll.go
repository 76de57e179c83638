package bot

import (
	"fmt"

	"github.com/lilcord/lilbot/pkg/config"
	"github.com/lilcord/lilbot/pkg/domain"
)

const (
	colorPoll = 0x2ECC71
	colorWYR  = 0x9B59B6
)

var pollReactions = []string{"👍", "👎", "🤷"}

var wyrReactions = []string{"🅰️", "🅱️"}

type choice struct {
	a, b string
}

var wyrCatalog = []choice{
	{"only play Jett for the rest of your life", "never play a Duelist again"},
	{"always win pistol rounds", "always win the last round"},
	{"have perfect aim but no game sense", "have perfect game sense but bronze aim"},
	{"play every match on Split", "play every match on Breeze"},
	{"queue with a toxic Radiant", "queue with a friendly Iron"},
	{"lose every clutch", "never get a clutch chance"},
	{"eat balut every day", "never eat rice again"},
	{"be stuck in traffic on EDSA for 5 hours", "wait in line at the LTO for 5 hours"},
}

// pollCommands posts reaction-voted cards. Votes are counted by the platform; the
// bot never reads reactions back.
func pollCommands() []*CommandInstance {
	return []*CommandInstance{
		{
			name:        "poll",
			argsSyntax:  "<question>",
			description: "Start a thumbs up/down poll",
			run: func(ctx domain.Context) error {
				question := ctx.Remainder()
				if question == "" {
					return ctx.ReplyBad(fmt.Sprintf("Usage: `%spoll <question>`", config.C.Prefix))
				}
				_, err := ctx.ReplyCard(&domain.Card{
					Title:       "THOUGHTS NI LIL",
					Description: question,
					Color:       colorPoll,
					Footer:      "Poll by " + ctx.ExecutorName(),
				}, pollReactions...)
				return err
			},
		},
		{
			name:        "wyr",
			description: "Would you rather...",
			run: func(ctx domain.Context) error {
				c := wyrCatalog[pick(len(wyrCatalog))]
				_, err := ctx.ReplyCard(&domain.Card{
					Title:       "Would you rather...",
					Description: fmt.Sprintf("%s %s\n\n**or**\n\n%s %s", wyrReactions[0], c.a, wyrReactions[1], c.b),
					Color:       colorWYR,
				}, wyrReactions...)
				return err
			},
		},
	}
}
