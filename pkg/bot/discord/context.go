package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lilcord/lilbot/pkg/domain"
	"github.com/lilcord/lilbot/pkg/utils"
)

const (
	messageLimit = 2000
	sendRetries  = 3
	reactBad     = "❓"
	reactForbid  = "🚫"
	reactFailure = "⚠️"
)

type discordContext struct {
	context.Context
	session *discordgo.Session
	limiter *rate.Limiter
	logger  *zap.Logger

	m    *discordgo.MessageCreate
	args  []string
	rests []string
}

var _ domain.Context = (*discordContext)(nil)

func (ctx *discordContext) Executor() string {
	return ctx.m.Author.ID
}

func (ctx *discordContext) ExecutorMention() string {
	return ctx.m.Author.Mention()
}

func (ctx *discordContext) ExecutorName() string {
	if ctx.m.Member != nil && ctx.m.Member.Nick != "" {
		return ctx.m.Member.Nick
	}
	if ctx.m.Author.GlobalName != "" {
		return ctx.m.Author.GlobalName
	}
	return ctx.m.Author.Username
}

func (ctx *discordContext) GuildID() string {
	return ctx.m.GuildID
}

func (ctx *discordContext) ChannelID() string {
	return ctx.m.ChannelID
}

func (ctx *discordContext) Mentions() []string {
	return lo.Map(ctx.m.Mentions, func(u *discordgo.User, _ int) string { return u.ID })
}

func (ctx *discordContext) Text() string {
	return ctx.m.Content
}

func (ctx *discordContext) Args() []string {
	return ctx.args
}

func (ctx *discordContext) Remainder() string {
	if len(ctx.rests) == 0 {
		return ""
	}
	return ctx.rests[0]
}

func (ctx *discordContext) ShiftArgs() domain.Context {
	shifted := *ctx
	if len(ctx.args) > 0 {
		shifted.args = ctx.args[1:]
	}
	if len(ctx.rests) > 0 {
		shifted.rests = ctx.rests[1:]
	}
	return &shifted
}

func (ctx *discordContext) L() *zap.Logger {
	return ctx.logger.With(
		zap.String("executor", ctx.m.Author.ID),
		zap.String("guild", ctx.m.GuildID),
		zap.String("channel", ctx.m.ChannelID),
		zap.String("message", ctx.m.ID),
		zap.String("command", utils.LimitMessage(ctx.m.Content, 100)),
	)
}

// send waits for the shared outbound budget, then retries fn a few times.
func (ctx *discordContext) send(fn func(ctx context.Context) error) error {
	if err := ctx.limiter.Wait(ctx); err != nil {
		return err
	}
	return utils.WithRetry(ctx, ctx.L(), sendRetries, fn)
}

func (ctx *discordContext) Reply(message ...string) error {
	content := utils.LimitMessage(strings.Join(message, "\n"), messageLimit)
	return ctx.send(func(c context.Context) error {
		_, err := ctx.session.ChannelMessageSend(ctx.m.ChannelID, content, discordgo.WithContext(c))
		return err
	})
}

// react marks the invoking message; the message may already be gone.
func (ctx *discordContext) react(emoji string) {
	err := ctx.session.MessageReactionAdd(ctx.m.ChannelID, ctx.m.ID, emoji, discordgo.WithContext(ctx))
	if err != nil {
		ctx.L().Debug("failed to add reaction", zap.String("emoji", emoji), zap.Error(err))
	}
}

func (ctx *discordContext) ReplyBad(message ...string) error {
	ctx.react(reactBad)
	if len(message) == 0 {
		return nil
	}
	return ctx.Reply(message...)
}

func (ctx *discordContext) ReplyForbid(message ...string) error {
	ctx.react(reactForbid)
	if len(message) == 0 {
		return nil
	}
	return ctx.Reply(message...)
}

func (ctx *discordContext) ReplyFailure(message ...string) error {
	ctx.react(reactFailure)
	if len(message) == 0 {
		return nil
	}
	return ctx.Reply(message...)
}

func (ctx *discordContext) ReplyCard(card *domain.Card, reactions ...string) (domain.MessageRef, error) {
	var msg *discordgo.Message
	err := ctx.send(func(c context.Context) error {
		var err error
		msg, err = ctx.session.ChannelMessageSendEmbed(ctx.m.ChannelID, toEmbed(card), discordgo.WithContext(c))
		return err
	})
	if err != nil {
		return domain.MessageRef{}, fmt.Errorf("sending card: %w", err)
	}

	ref := domain.MessageRef{ChannelID: msg.ChannelID, MessageID: msg.ID}
	for _, r := range reactions {
		if err := ctx.session.MessageReactionAdd(ref.ChannelID, ref.MessageID, r, discordgo.WithContext(ctx)); err != nil {
			ctx.L().Warn("failed to add reaction to card", zap.String("emoji", r), zap.Error(err))
		}
	}
	return ref, nil
}

func (ctx *discordContext) DeleteMessage() error {
	return ctx.session.ChannelMessageDelete(ctx.m.ChannelID, ctx.m.ID, discordgo.WithContext(ctx))
}

func (ctx *discordContext) Roles() ([]domain.Role, error) {
	roles, err := ctx.session.GuildRoles(ctx.m.GuildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("listing guild roles: %w", err)
	}
	return lo.Map(roles, func(r *discordgo.Role, _ int) domain.Role {
		return domain.Role{ID: r.ID, Name: r.Name}
	}), nil
}

func (ctx *discordContext) GrantRole(roleID string) error {
	return ctx.send(func(c context.Context) error {
		return ctx.session.GuildMemberRoleAdd(ctx.m.GuildID, ctx.m.Author.ID, roleID, discordgo.WithContext(c))
	})
}

type cardEditor struct {
	session *discordgo.Session
	limiter *rate.Limiter
}

// NewCardEditor edits previously posted cards in place.
func NewCardEditor(session *discordgo.Session, limiter *rate.Limiter) domain.CardEditor {
	return &cardEditor{session: session, limiter: limiter}
}

func (e *cardEditor) EditCard(ctx context.Context, ref domain.MessageRef, card *domain.Card) error {
	if err := e.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := e.session.ChannelMessageEditEmbed(ref.ChannelID, ref.MessageID, toEmbed(card), discordgo.WithContext(ctx))
	return err
}

func toEmbed(card *domain.Card) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       card.Title,
		Description: card.Description,
		URL:         card.URL,
		Color:       card.Color,
		Fields: lo.Map(card.Fields, func(f domain.CardField, _ int) *discordgo.MessageEmbedField {
			return &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline}
		}),
	}
	if card.ImageURL != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: card.ImageURL}
	}
	if card.ThumbnailURL != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: card.ThumbnailURL}
	}
	if card.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: card.Footer}
	}
	if !card.Timestamp.IsZero() {
		e.Timestamp = card.Timestamp.Format(time.RFC3339)
	}
	return e
}
