package discord

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"
	"golang.org/x/time/rate"

	"github.com/lilcord/lilbot/pkg/config"
	"github.com/lilcord/lilbot/pkg/domain"
	"github.com/lilcord/lilbot/pkg/moderation"
)

func TestMain(m *testing.M) {
	config.C.Prefix = "!"
	os.Exit(m.Run())
}

// restCall is one request received by the fake Discord REST API. path is
// relative to /channels/.
type restCall struct {
	method  string
	path    string
	content string
}

type fakeREST struct {
	mu    sync.Mutex
	calls []restCall
}

func (f *fakeREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var msg struct {
		Content string `json:"content"`
	}
	_ = json.Unmarshal(body, &msg)
	_, path, _ := strings.Cut(r.URL.Path, "/channels/")

	f.mu.Lock()
	f.calls = append(f.calls, restCall{method: r.Method, path: path, content: msg.Content})
	f.mu.Unlock()

	if r.Method == http.MethodPost {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"m2","channel_id":"c1"}`))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeREST) Calls() []restCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]restCall(nil), f.calls...)
}

// redirect sends every request to target, keeping the path.
type redirect struct {
	target *url.URL
}

func (rt redirect) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	req.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

type commandFunc func(ctx domain.Context) error

func (f commandFunc) Execute(ctx domain.Context) error { return f(ctx) }
func (f commandFunc) HelpMessage(int) []string        { return nil }

func newTestBot(t *testing.T, root domain.Command) (*discordBot, *fakeREST) {
	t.Helper()
	rest := &fakeREST{}
	srv := httptest.NewServer(rest)
	t.Cleanup(srv.Close)
	target, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	session, err := discordgo.New("Bot test")
	if err != nil {
		t.Fatal(err)
	}
	session.Client = &http.Client{Transport: redirect{target: target}}

	b := &discordBot{
		session: session,
		rootCmd: root,
		filter:  moderation.NewFilter("zee", "%s - no", "!"),
		limiter: rate.NewLimiter(rate.Inf, 1),
		logger:  zaptest.NewLogger(t),
	}
	return b, rest
}

func newMessage(content string, bot bool) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "m1",
		ChannelID: "c1",
		GuildID:   "g1",
		Content:   content,
		Author:    &discordgo.User{ID: "u1", Username: "lil", Bot: bot},
	}}
}

func TestGuardRecovers(t *testing.T) {
	b := &discordBot{logger: zaptest.NewLogger(t)}
	b.guard("x", func() { panic("boom") })

	ran := false
	b.guard("y", func() { ran = true })
	if !ran {
		t.Error("guard did not run the handler")
	}
}

func TestMessageReceivedIgnoresBots(t *testing.T) {
	executed := false
	b, rest := newTestBot(t, commandFunc(func(domain.Context) error {
		executed = true
		return nil
	}))

	b.messageReceived(newMessage("!hello zee", true))
	if executed {
		t.Error("command executed for a bot author")
	}
	if calls := rest.Calls(); len(calls) != 0 {
		t.Errorf("want no REST calls, got %+v", calls)
	}
}

func TestMessageReceivedModeration(t *testing.T) {
	executed := false
	b, rest := newTestBot(t, commandFunc(func(domain.Context) error {
		executed = true
		return nil
	}))

	b.messageReceived(newMessage("ZEE is here", false))
	want := []restCall{
		{method: http.MethodDelete, path: "c1/messages/m1"},
		{method: http.MethodPost, path: "c1/messages", content: "<@u1> - no"},
	}
	if diff := cmp.Diff(want, rest.Calls(), cmp.AllowUnexported(restCall{})); diff != "" {
		t.Errorf("REST calls mismatch (-want +got):\n%s", diff)
	}
	if executed {
		t.Error("unprefixed message was dispatched")
	}
}

func TestMessageReceivedDispatch(t *testing.T) {
	var gotArgs []string
	var gotRest string
	b, rest := newTestBot(t, commandFunc(func(ctx domain.Context) error {
		gotArgs = ctx.Args()
		gotRest = ctx.ShiftArgs().Remainder()
		return nil
	}))

	b.messageReceived(newMessage(`!setstatus "big lil" hi`, false))
	if diff := cmp.Diff([]string{"setstatus", "big lil", "hi"}, gotArgs); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	if gotRest != `"big lil" hi` {
		t.Errorf("remainder: got %q", gotRest)
	}
	if calls := rest.Calls(); len(calls) != 0 {
		t.Errorf("want no REST calls, got %+v", calls)
	}
}

func TestMessageReceivedCommandFailure(t *testing.T) {
	b, rest := newTestBot(t, commandFunc(func(domain.Context) error {
		return errors.New("store unavailable")
	}))

	b.messageReceived(newMessage("!boom", false))
	var posted []string
	for _, c := range rest.Calls() {
		if c.method == http.MethodPost {
			posted = append(posted, c.content)
		}
	}
	if diff := cmp.Diff([]string{"Something went wrong, try again later."}, posted); diff != "" {
		t.Errorf("posted messages mismatch (-want +got):\n%s", diff)
	}
}

func TestMessageReceivedPanicContained(t *testing.T) {
	b, rest := newTestBot(t, commandFunc(func(domain.Context) error {
		panic("nil map")
	}))

	// Same wrapping as the MESSAGE_CREATE handler registered by NewBot
	b.guard("message_create", func() { b.messageReceived(newMessage("!boom", false)) })
	if calls := rest.Calls(); len(calls) != 0 {
		t.Errorf("want no REST calls, got %+v", calls)
	}
}
