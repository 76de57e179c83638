package domain

import (
	"context"

	"go.uber.org/zap"
)

type Bot interface {
	// Start connects the bot. Must block on success.
	Start(ctx context.Context) error
}

// Context is the execution context of a single inbound message.
type Context interface {
	context.Context

	// Executor returns the ID of the user who posted the message.
	Executor() string
	// ExecutorMention returns a mention string for the executor.
	ExecutorMention() string
	// ExecutorName returns the display name of the executor.
	ExecutorName() string
	// GuildID returns the originating guild, or "" for direct messages.
	GuildID() string
	// ChannelID returns the originating channel.
	ChannelID() string
	// Mentions returns the IDs of users mentioned in the message, in order.
	Mentions() []string
	// Text returns the full message text.
	Text() string
	// Args returns the message split into arguments, with the prefix removed.
	Args() []string
	// Remainder returns the raw text following the current leading argument.
	Remainder() string
	// ShiftArgs pops the first argument and creates a new command context.
	ShiftArgs() Context

	// L returns logger.
	L() *zap.Logger

	// Reply posts plain text to the originating channel.
	Reply(message ...string) error
	// ReplyBad reports a user input error.
	ReplyBad(message ...string) error
	// ReplyForbid reports a permission denial.
	ReplyForbid(message ...string) error
	// ReplyFailure reports an upstream or internal failure.
	ReplyFailure(message ...string) error
	// ReplyCard posts a display card and adds the given reactions to it in order.
	ReplyCard(card *Card, reactions ...string) (MessageRef, error)

	// DeleteMessage deletes the inbound message.
	DeleteMessage() error
	// Roles lists the roles of the originating guild.
	Roles() ([]Role, error)
	// GrantRole gives the executor a role of the originating guild.
	GrantRole(roleID string) error
}

// Command is a node in the command table.
type Command interface {
	Execute(ctx Context) error
	HelpMessage(indent int) []string
}

// CardEditor edits previously sent display cards outside of any inbound message.
type CardEditor interface {
	EditCard(ctx context.Context, ref MessageRef, card *Card) error
}
