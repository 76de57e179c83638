package bot

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/samber/lo"

	"github.com/lilcord/lilbot/pkg/config"
	"github.com/lilcord/lilbot/pkg/domain"
)

// pick returns a random index in [0, n). Tests replace it.
var pick = rand.IntN

var jokes = []string{
	"Bakit hindi marunong mag-basketball ang Duelist? Kasi laging entry, never assist.",
	"Why did the Sage main break up? Too many walls in the relationship.",
	"I'd tell you a joke about eco rounds, but you probably can't afford it.",
	"Why don't Jett mains ever pay rent? They always dash before the bill.",
	"Ano ang tawag sa Reyna na walang kill? Reyna ng bench.",
}

var memes = []string{
	"https://i.imgflip.com/1ur9b0.jpg",
	"https://i.imgflip.com/30b1gx.jpg",
	"https://i.imgflip.com/1g8my4.jpg",
	"https://i.imgflip.com/26am.jpg",
	"https://i.imgflip.com/9ehk.jpg",
}

func templated(name, description, format string) *CommandInstance {
	return &CommandInstance{
		name:        name,
		description: description,
		run: func(ctx domain.Context) error {
			return ctx.Reply(fmt.Sprintf(format, ctx.ExecutorMention()))
		},
	}
}

func randomLine(name, description string, catalog []string) *CommandInstance {
	return &CommandInstance{
		name:        name,
		description: description,
		run: func(ctx domain.Context) error {
			return ctx.Reply(catalog[pick(len(catalog))])
		},
	}
}

func staticCommands() []*CommandInstance {
	cmds := []*CommandInstance{
		templated("hello", "Say hello", "Hello %s!"),
		templated("lil", "Lil is sleeping", "Sleeping %s!"),
		templated("tiktok", "Lil's TikTok", "https://www.tiktok.com/@shanghaispicy %s!"),
		templated("rank", "Lil's rank", "Radiant %s!"),
		templated("aiz", "About aiz", "soft spoken clove main yan hehe sarap %s!"),
		randomLine("joke", "Tell a joke", jokes),
		randomLine("meme", "Post a meme", memes),
	}

	listed := []string{"hello", "lil", "tiktok", "rank", "aiz"}
	cmds = append(cmds, &CommandInstance{
		name:        "lilcommands",
		description: "List the fun commands",
		run: func(ctx domain.Context) error {
			return ctx.Reply(strings.Join(
				lo.Map(listed, func(s string, _ int) string { return config.C.Prefix + s }),
				", ",
			))
		},
	})
	return cmds
}
