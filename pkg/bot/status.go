package bot

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/lilcord/lilbot/pkg/config"
	"github.com/lilcord/lilbot/pkg/domain"
	"github.com/lilcord/lilbot/pkg/status"
)

func statusCommands(store *status.Store) []*CommandInstance {
	if store.Mode() == status.ModeOpen {
		return []*CommandInstance{
			{
				name:        "status",
				argsSyntax:  "[@user]",
				description: "Show your status or someone else's",
				run: func(ctx domain.Context) error {
					subject := ctx.Executor()
					if m := ctx.Mentions(); len(m) > 0 {
						subject = m[0]
					}
					return replyStatus(ctx, store, subject, mention(subject))
				},
			},
			{
				name:        "setstatus",
				argsSyntax:  "<text>",
				description: "Set your status",
				run: func(ctx domain.Context) error {
					text := ctx.Remainder()
					if text == "" {
						return ctx.ReplyBad(fmt.Sprintf("Usage: `%ssetstatus <text>`", config.C.Prefix))
					}
					return setStatus(ctx, store, ctx.Executor(), text, ctx.ExecutorMention())
				},
			},
		}
	}

	subjects := store.Subjects()
	slices.Sort(subjects)
	usage := strings.Join(subjects, "|")
	return []*CommandInstance{
		{
			name:        "status",
			argsSyntax:  "<" + usage + ">",
			description: "Show someone's status",
			run: func(ctx domain.Context) error {
				if len(ctx.Args()) == 0 {
					return ctx.ReplyBad(fmt.Sprintf("Usage: `%sstatus <%s>`", config.C.Prefix, usage))
				}
				subject := ctx.Args()[0]
				if !slices.Contains(subjects, subject) {
					return ctx.ReplyBad(fmt.Sprintf("Unknown subject `%s`, try one of: %s", subject, usage))
				}
				return replyStatus(ctx, store, subject, subject)
			},
		},
		{
			name:        "setstatus",
			argsSyntax:  "<" + usage + "> <text>",
			description: "Set a status (owner only)",
			run: func(ctx domain.Context) error {
				if len(ctx.Args()) < 2 {
					return ctx.ReplyBad(fmt.Sprintf("Usage: `%ssetstatus <%s> <text>`", config.C.Prefix, usage))
				}
				subject := ctx.Args()[0]
				return setStatus(ctx, store, subject, ctx.ShiftArgs().Remainder(), subject)
			},
		},
	}
}

func replyStatus(ctx domain.Context, store *status.Store, subject, display string) error {
	text, ok := store.Get(subject)
	if !ok {
		return ctx.Reply(fmt.Sprintf("%s has no status yet.", display))
	}
	return ctx.Reply(fmt.Sprintf("**%s**: %s", display, text))
}

func setStatus(ctx domain.Context, store *status.Store, subject, text, display string) error {
	err := store.Set(subject, text, ctx.Executor())
	switch {
	case errors.Is(err, status.ErrDenied):
		return ctx.ReplyForbid(fmt.Sprintf("You are not allowed to set %s's status.", display))
	case errors.Is(err, status.ErrUnknownSubject):
		return ctx.ReplyBad(fmt.Sprintf("Unknown subject `%s`", subject))
	case err != nil:
		return fmt.Errorf("setting status of %s: %w", subject, err)
	}
	return ctx.Reply(fmt.Sprintf("✅ %s's status is now: %s", display, text))
}
