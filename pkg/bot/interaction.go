package bot

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lilcord/lilbot/pkg/config"
	"github.com/lilcord/lilbot/pkg/domain"
	"github.com/lilcord/lilbot/pkg/gif"
)

const colorInteraction = 0xFF69B4

type interaction struct {
	name   string
	phrase string
	// action receives the executor and target mentions.
	action string
	// self receives the executor mention.
	self string
}

var interactions = []interaction{
	{"kiss", "anime kiss", "%s kissed %s 💋", "%s tried to kiss themselves... that's just a mirror 😳"},
	{"slap", "anime slap", "%s slapped %s! 👋", "%s, stop hitting yourself!"},
	{"hug", "anime hug", "%s hugged %s 🤗", "%s hugs themselves... here, have a virtual hug 🫂"},
	{"punch", "anime punch", "%s punched %s 👊", "%s punched themselves. Why though?"},
	{"kill", "anime kill", "%s killed %s ☠️", "%s, please don't. You matter 💛"},
	{"vanish", "anime disappear", "%s made %s vanish 💨", "%s vanished into thin air 💨"},
}

func interactionCommands(gifs gif.Searcher) []*CommandInstance {
	cmds := make([]*CommandInstance, 0, len(interactions))
	for _, in := range interactions {
		cmds = append(cmds, &CommandInstance{
			name:        in.name,
			argsSyntax:  "@user",
			description: fmt.Sprintf("Send a %s GIF to someone", in.name),
			run: func(ctx domain.Context) error {
				return in.execute(ctx, gifs)
			},
		})
	}
	return cmds
}

func (in interaction) execute(ctx domain.Context, gifs gif.Searcher) error {
	mentions := ctx.Mentions()
	if len(mentions) == 0 {
		return ctx.ReplyBad(fmt.Sprintf("Mention someone to %s! `%s%s @user`", in.name, config.C.Prefix, in.name))
	}
	target := mentions[0]
	if target == ctx.Executor() {
		return ctx.Reply(fmt.Sprintf(in.self, ctx.ExecutorMention()))
	}

	text := fmt.Sprintf(in.action, ctx.ExecutorMention(), mention(target))
	url, err := gifs.Search(ctx, in.phrase)
	if err != nil {
		ctx.L().Warn("gif search failed", zap.String("phrase", in.phrase), zap.Error(err))
		return ctx.ReplyFailure("Couldn't fetch a GIF right now, try again later.")
	}
	if url == "" {
		return ctx.Reply(text)
	}
	_, err = ctx.ReplyCard(&domain.Card{
		Description: text,
		Color:       colorInteraction,
		ImageURL:    url,
	})
	return err
}
