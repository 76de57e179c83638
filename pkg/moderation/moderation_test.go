package moderation

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/lilcord/lilbot/pkg/domain"
)

func TestInspect(t *testing.T) {
	f := NewFilter("zee", "%s - no", "!")
	cases := []struct {
		text string
		want Verdict
	}{
		{"ZEE is cool", Verdict{Delete: true}},
		{"zeebra", Verdict{Delete: true}},
		{"nothing to see", Verdict{}},
		{"good morning everyone", Verdict{Greeting: Morning}},
		{"goodmorning", Verdict{Greeting: Morning}},
		{"GM all", Verdict{Greeting: Morning}},
		{"good night hello", Verdict{Greeting: Night}},
		{"good morning and good night", Verdict{Greeting: Morning}},
		{"Hello there", Verdict{Greeting: Hello}},
		{"hello zee", Verdict{Delete: true, Greeting: Hello}},
		{"signal", Verdict{}},
		{"!hello", Verdict{}},
		{"!poll good morning?", Verdict{}},
		{"!hello zee", Verdict{Delete: true}},
	}
	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			if got := f.Inspect(c.text); got != c.want {
				t.Errorf("Inspect(%q): want %+v, got %+v", c.text, c.want, got)
			}
		})
	}
}

func TestInspectNoBannedToken(t *testing.T) {
	f := NewFilter("", "%s", "!")
	if got := f.Inspect("anything"); got.Delete {
		t.Errorf("empty banned token deleted %q", "anything")
	}
}

type fakeContext struct {
	domain.Context
	text      string
	deleteErr error

	deleted bool
	replies []string
}

func (c *fakeContext) Text() string            { return c.text }
func (c *fakeContext) ExecutorMention() string { return "<@1>" }
func (c *fakeContext) L() *zap.Logger          { return zap.NewNop() }
func (c *fakeContext) DeleteMessage() error {
	c.deleted = true
	return c.deleteErr
}
func (c *fakeContext) Reply(message ...string) error {
	c.replies = append(c.replies, message...)
	return nil
}

func TestApply(t *testing.T) {
	f := NewFilter("zee", "%s - wag mo banggitin yan!", "!")

	ctx := &fakeContext{text: "good morning zee"}
	if err := f.Apply(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ctx.deleted {
		t.Error("message was not deleted")
	}
	want := []string{"<@1> - wag mo banggitin yan!", "Good morning <@1>! ☀️"}
	if diff := cmp.Diff(want, ctx.replies); diff != "" {
		t.Errorf("wrong replies (-want +got):\n%s", diff)
	}
}

func TestApplyDeleteFailure(t *testing.T) {
	f := NewFilter("zee", "%s - no", "!")
	boom := errors.New("unknown message")
	ctx := &fakeContext{text: "zee hello", deleteErr: boom}
	err := f.Apply(ctx)
	if !errors.Is(err, boom) {
		t.Errorf("want delete error surfaced, got %v", err)
	}
	want := []string{"<@1> - no", "Hello <@1>! 👋"}
	if diff := cmp.Diff(want, ctx.replies); diff != "" {
		t.Errorf("wrong replies (-want +got):\n%s", diff)
	}
}

func TestApplyNoAction(t *testing.T) {
	f := NewFilter("zee", "%s", "!")
	ctx := &fakeContext{text: "just chatting"}
	if err := f.Apply(ctx); err != nil {
		t.Fatal(err)
	}
	if ctx.deleted || len(ctx.replies) != 0 {
		t.Errorf("unexpected action: deleted=%v replies=%v", ctx.deleted, ctx.replies)
	}
}
