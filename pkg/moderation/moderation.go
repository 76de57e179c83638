// Package moderation inspects inbound chat text for a banned token and greeting phrases.
package moderation

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/lilcord/lilbot/pkg/domain"
	"github.com/lilcord/lilbot/pkg/metrics"
)

// Greeting is a greeting category. Categories are mutually exclusive.
type Greeting int

const (
	NoGreeting Greeting = iota
	Morning
	Night
	Hello
)

type greetingRule struct {
	category Greeting
	phrases  []string
	// words only match as whole words
	words []string
	reply string
}

// greetingRules are checked in priority order; first match wins.
var greetingRules = []greetingRule{
	{
		category: Morning,
		phrases:  []string{"good morning", "goodmorning", "good mornin", "magandang umaga"},
		words:    []string{"gm"},
		reply:    "Good morning %s! ☀️",
	},
	{
		category: Night,
		phrases:  []string{"good night", "goodnight", "good nite", "magandang gabi"},
		words:    []string{"gn"},
		reply:    "Good night %s! 🌙",
	},
	{
		category: Hello,
		phrases:  []string{"hello"},
		reply:    "Hello %s! 👋",
	},
}

// Verdict is the decision for a single message. Delete and Greeting are independent.
type Verdict struct {
	Delete   bool
	Greeting Greeting
}

type Filter struct {
	bannedToken string
	warning     string
	prefix      string
}

// NewFilter creates a filter. bannedToken is matched as a case-insensitive raw
// substring; warning is a format string receiving the author mention. Messages
// starting with the command prefix are never greeted.
func NewFilter(bannedToken, warning, prefix string) *Filter {
	return &Filter{
		bannedToken: strings.ToLower(bannedToken),
		warning:     warning,
		prefix:      prefix,
	}
}

// Inspect decides what to do with text. It has no side effects.
func (f *Filter) Inspect(text string) Verdict {
	lower := strings.ToLower(text)

	var v Verdict
	// NOTE: raw substring, so "zeebra" also matches "zee".
	if f.bannedToken != "" && strings.Contains(lower, f.bannedToken) {
		v.Delete = true
	}
	if f.prefix != "" && strings.HasPrefix(text, f.prefix) {
		return v // Commands answer for themselves
	}

	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	for _, rule := range greetingRules {
		matched := lo.ContainsBy(rule.phrases, func(p string) bool { return strings.Contains(lower, p) }) ||
			lo.Some(words, rule.words)
		if matched {
			v.Greeting = rule.category
			break
		}
	}
	return v
}

// GreetingReply returns the canonical reply for g addressed to mention.
func GreetingReply(g Greeting, mention string) string {
	rule, ok := lo.Find(greetingRules, func(r greetingRule) bool { return r.category == g })
	if !ok {
		return ""
	}
	return fmt.Sprintf(rule.reply, mention)
}

// Apply inspects the message of ctx and performs the resulting actions in its channel.
// A failed deletion is returned after the remaining actions ran.
func (f *Filter) Apply(ctx domain.Context) error {
	v := f.Inspect(ctx.Text())

	var deleteErr error
	if v.Delete {
		metrics.ModerationActions.WithLabelValues("delete").Inc()
		deleteErr = ctx.DeleteMessage()
		if deleteErr != nil {
			ctx.L().Warn("failed to delete banned message", zap.Error(deleteErr))
		}
		if err := ctx.Reply(fmt.Sprintf(f.warning, ctx.ExecutorMention())); err != nil {
			return fmt.Errorf("posting warning: %w", err)
		}
	}

	if v.Greeting != NoGreeting {
		metrics.ModerationActions.WithLabelValues("greet").Inc()
		if err := ctx.Reply(GreetingReply(v.Greeting, ctx.ExecutorMention())); err != nil {
			return fmt.Errorf("posting greeting: %w", err)
		}
	}

	if deleteErr != nil {
		return fmt.Errorf("deleting message: %w", deleteErr)
	}
	return nil
}
