package discord

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/bwmarrin/discordgo"
	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lilcord/lilbot/pkg/config"
	"github.com/lilcord/lilbot/pkg/domain"
	"github.com/lilcord/lilbot/pkg/moderation"
)

const intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsGuildMembers |
	discordgo.IntentsMessageContent |
	discordgo.IntentsDirectMessages

type discordBot struct {
	session *discordgo.Session
	rootCmd domain.Command
	filter  *moderation.Filter
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewSession creates an unopened Discord session for a bot token.
func NewSession(token string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	session.Identify.Intents = intents
	return session, nil
}

func NewBot(
	session *discordgo.Session,
	rootCmd domain.Command,
	filter *moderation.Filter,
	limiter *rate.Limiter,
	logger *zap.Logger,
) domain.Bot {
	b := &discordBot{
		session: session,
		rootCmd: rootCmd,
		filter:  filter,
		limiter: limiter,
		logger:  logger,
	}
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.guard("ready", func() {
			b.logger.Info("logged in", zap.String("user", r.User.Username), zap.Int("guilds", len(r.Guilds)))
		})
	})
	session.AddHandler(func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
		b.guard("guild_member_add", func() { b.memberJoined(m) })
	})
	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		b.guard("message_create", func() { b.messageReceived(m) })
	})
	return b
}

func (b *discordBot) Start(ctx context.Context) error {
	err := b.session.Open()
	if err != nil {
		return fmt.Errorf("opening discord session: %w", err)
	}
	defer b.session.Close()

	<-ctx.Done()
	return nil
}

// guard keeps a panicking handler from taking the process down.
func (b *discordBot) guard(event string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("recovered from panic in event handler",
				zap.String("event", event),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
		}
	}()
	fn()
}

func (b *discordBot) memberJoined(m *discordgo.GuildMemberAdd) {
	if m.User == nil || m.User.Bot {
		return
	}
	ctx := context.Background()
	ch, err := b.session.UserChannelCreate(m.User.ID, discordgo.WithContext(ctx))
	if err != nil {
		b.logger.Warn("failed to open DM channel", zap.String("user", m.User.ID), zap.Error(err))
		return
	}
	if err := b.limiter.Wait(ctx); err != nil {
		return
	}
	_, err = b.session.ChannelMessageSend(ch.ID, fmt.Sprintf(config.C.Welcome, m.User.Username), discordgo.WithContext(ctx))
	if err != nil {
		b.logger.Warn("failed to send welcome message", zap.String("user", m.User.ID), zap.Error(err))
	}
}

// messageReceived is the MESSAGE_CREATE handler: moderation first, then commands.
func (b *discordBot) messageReceived(m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return // Ignore bots, including ourselves
	}

	ctx := &discordContext{
		Context: context.Background(),
		session: b.session,
		limiter: b.limiter,
		logger:  b.logger,
		m:       m,
	}

	if err := b.filter.Apply(ctx); err != nil {
		ctx.L().Warn("moderation action failed", zap.Error(err))
	}

	if !strings.HasPrefix(m.Content, config.C.Prefix) {
		return // Command prefix does not match
	}
	ctx.args, ctx.rests = parseArgs(strings.TrimPrefix(m.Content, config.C.Prefix))

	err := b.rootCmd.Execute(ctx)
	if err != nil {
		ctx.L().Error("failed to execute command", zap.Error(err))
		_ = ctx.ReplyFailure("Something went wrong, try again later.")
	}
}

// parseArgs splits the prefix-stripped text into arguments. Unbalanced quotes
// fall back to whitespace splitting so apostrophes in free text still work.
// rests[i] is the raw text starting at args[i], so remainders follow the same
// word boundaries as the arguments.
func parseArgs(text string) (args, rests []string) {
	args, err := shellquote.Split(text)
	shell := err == nil
	if !shell {
		args = strings.Fields(text)
	}

	starts := wordStarts(text, shell)
	if len(starts) != len(args) {
		// Boundaries disagree with the parser; whitespace words are always consistent
		args = strings.Fields(text)
		starts = wordStarts(text, false)
	}
	rests = make([]string, len(starts))
	for i, start := range starts {
		rests[i] = strings.TrimSpace(text[start:])
	}
	return args, rests
}

// wordStarts returns the byte offsets at which the words of text start. With
// shell set, quotes and backslash escapes keep separators inside a word, as in
// shellquote.Split.
func wordStarts(text string, shell bool) []int {
	isSep := unicode.IsSpace
	if shell {
		isSep = func(r rune) bool { return strings.ContainsRune(" \n\t", r) }
	}

	var (
		starts  []int
		inWord  bool
		quote   rune
		escaped bool
	)
	for i, r := range text {
		switch {
		case escaped:
			escaped = false
		case quote != 0:
			if r == quote {
				quote = 0
			} else if r == '\\' && quote == '"' {
				escaped = true
			}
		case isSep(r):
			inWord = false
			continue
		case shell && r == '\\':
			escaped = true
		case shell && (r == '\'' || r == '"'):
			quote = r
		}
		if !inWord {
			starts = append(starts, i)
			inWord = true
		}
	}
	return starts
}
