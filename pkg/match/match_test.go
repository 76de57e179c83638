package match

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func ptr(s string) *string { return &s }

func TestNormalizeFallbacks(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		mode Mode
		want Match
	}{
		{
			name: "primary keys",
			raw: map[string]any{
				"team1": "Sentinels", "team2": "LOUD",
				"score1": "2", "score2": "1",
				"match_event": "Champions", "match_series": "Grand Final",
				"time_until_match": "1h 20m",
				"match_page":       "/123/sen-vs-loud",
				"team1_logo":       "//owcdn.net/sen.png",
			},
			mode: ModeUpcoming,
			want: Match{
				TeamA:   Team{Name: "Sentinels", Score: ptr("2"), LogoURL: "https://owcdn.net/sen.png"},
				TeamB:   Team{Name: "LOUD", Score: ptr("1")},
				Event:   "Champions",
				Stage:   "Grand Final",
				Status:  StatusUpcoming,
				ETA:     "1h 20m",
				PageURL: "https://www.vlr.gg/123/sen-vs-loud",
			},
		},
		{
			name: "secondary keys",
			raw: map[string]any{
				"team1_name": "Sentinels", "team2_name": "LOUD",
				"team1_score": "13", "score_b": 11.0,
				"tournament_name": "Masters",
				"round_info":      "Playoffs",
			},
			mode: ModeLive,
			want: Match{
				TeamA:  Team{Name: "Sentinels", Score: ptr("13")},
				TeamB:  Team{Name: "LOUD", Score: ptr("11")},
				Event:  "Masters",
				Stage:  "Playoffs",
				Status: StatusLive,
			},
		},
		{
			name: "defaults",
			raw:  map[string]any{"team1": "", "score1": nil},
			mode: ModeResults,
			want: Match{
				TeamA:  Team{Name: "TBD"},
				TeamB:  Team{Name: "TBD"},
				Event:  "Unknown Event",
				Status: StatusFinished,
			},
		},
		{
			name: "maps",
			raw: map[string]any{
				"team1": "A", "team2": "B",
				"maps": []any{
					map[string]any{"map": "Ascent", "score1": "13", "score2": "7"},
					map[string]any{"team1_score": "9"},
					"garbage",
				},
				"time_completed": "2h ago",
			},
			mode: ModeResults,
			want: Match{
				TeamA:     Team{Name: "A"},
				TeamB:     Team{Name: "B"},
				Event:     "Unknown Event",
				Status:    StatusFinished,
				Completed: "2h ago",
				Maps: []MapScore{
					{Name: "Ascent", ScoreA: "13", ScoreB: "7"},
					{Name: "Map 2", ScoreA: "9", ScoreB: "-"},
				},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Normalize(c.raw, c.mode, "https://www.vlr.gg")
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("wrong match (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"//cdn.example/x.png":        "https://cdn.example/x.png",
		"/img/x.png":                 "https://www.vlr.gg/img/x.png",
		"https://already.full/x.png": "https://already.full/x.png",
		"":                           "",
	}
	for in, want := range cases {
		if got := NormalizeURL("https://www.vlr.gg/", in); got != want {
			t.Errorf("NormalizeURL(%q): want %q, got %q", in, want, got)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"upcoming", "LIVE", "results"} {
		if _, err := ParseMode(s); err != nil {
			t.Errorf("ParseMode(%q): %v", s, err)
		}
	}
	if _, err := ParseMode("tomorrow"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("want ErrUnknownMode, got %v", err)
	}
}

func TestClientFetch(t *testing.T) {
	cases := []struct {
		name  string
		mode  Mode
		query string
		body  string
		want  []string
	}{
		{
			name:  "segments",
			mode:  ModeLive,
			query: "live_score",
			body: `{"data":{"status":200,"segments":[
				{"team1":"A","team2":"B"},{"team1":"C","team2":"D"},
				{"team1":"E","team2":"F"},{"team1":"G","team2":"H"}]}}`,
			want: []string{"A vs B", "C vs D", "E vs F"},
		},
		{
			name:  "matches",
			mode:  ModeResults,
			query: "results",
			body:  `{"data":{"matches":[{"team1_name":"X"}]}}`,
			want:  []string{"X vs TBD"},
		},
		{
			name:  "empty",
			mode:  ModeUpcoming,
			query: "upcoming",
			body:  `{"data":{"segments":[]}}`,
			want:  []string{},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/match" {
					t.Errorf("wrong path %q", r.URL.Path)
				}
				if q := r.URL.Query().Get("q"); q != c.query {
					t.Errorf("wrong query: want %q, got %q", c.query, q)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(c.body))
			}))
			defer srv.Close()

			client := NewClient(Options{Origin: srv.URL + "/", Site: "https://www.vlr.gg", Timeout: 5 * time.Second, Limit: 3})
			matches, err := client.Fetch(context.Background(), c.mode)
			if err != nil {
				t.Fatal(err)
			}
			got := make([]string, 0, len(matches))
			for _, m := range matches {
				got = append(got, m.TeamA.Name+" vs "+m.TeamB.Name)
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("wrong matches (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClientFetchUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(Options{Origin: srv.URL + "/", Timeout: 5 * time.Second})
	if _, err := client.Fetch(context.Background(), ModeLive); err == nil {
		t.Error("want error for 502")
	}
}

func TestRender(t *testing.T) {
	live := Render(Match{
		TeamA: Team{Name: "SEN", Score: ptr("1")}, TeamB: Team{Name: "LOUD"},
		Event: "Champions", Status: StatusLive, CurrentMap: "Bind",
	})
	if live.Color != ColorLive {
		t.Errorf("live color: got %#x", live.Color)
	}
	if live.Title != "SEN vs LOUD" {
		t.Errorf("live title: got %q", live.Title)
	}
	if live.Fields[0].Name != "🔴 LIVE" || live.Fields[0].Value != "1 - -" {
		t.Errorf("live field: got %+v", live.Fields[0])
	}

	done := Render(Match{
		TeamA: Team{Name: "A"}, TeamB: Team{Name: "B"}, Event: "E", Status: StatusFinished,
		Maps: []MapScore{{Name: "Haven", ScoreA: "13", ScoreB: "5"}},
	})
	if done.Color != ColorResults {
		t.Errorf("results color: got %#x", done.Color)
	}
	last := done.Fields[len(done.Fields)-1]
	if last.Name != "Maps" || last.Value != "Haven: 13 - 5" {
		t.Errorf("maps field: got %+v", last)
	}

	next := Render(Match{TeamA: Team{Name: "A"}, TeamB: Team{Name: "B"}, Event: "E", Status: StatusUpcoming, ETA: "5m"})
	if next.Color != ColorUpcoming || next.Fields[0].Value != "5m" {
		t.Errorf("upcoming card: got %+v", next)
	}
}
