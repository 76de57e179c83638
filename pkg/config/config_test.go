package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func eqcase[T comparable](t *testing.T, name string, val T, eq T) {
	t.Helper()
	if val != eq {
		t.Errorf("wrong %s: want %#v, got %#v", name, eq, val)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	content := `
prefix: "?"
moderation:
  bannedToken: bad
status:
  mode: open
  subjects:
    - name: aiz
      owner: "123"
match:
  interval: 30s
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", file)
	t.Setenv("DISCORD_TOKEN", "tok")
	t.Setenv("HEALTH_PORT", "9090")

	if err := Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	eqcase(t, "Prefix", C.Prefix, "?")
	eqcase(t, "Discord.Token", C.Discord.Token, "tok")
	eqcase(t, "Health.Port", C.Health.Port, 9090)
	eqcase(t, "Moderation.BannedToken", C.Moderation.BannedToken, "bad")
	eqcase(t, "Moderation.Warning", C.Moderation.Warning, "%s - wag mo banggitin yan!")
	eqcase(t, "Status.Mode", C.Status.Mode, "open")
	eqcase(t, "Match.Interval", C.Match.Interval, 30*time.Second)
	eqcase(t, "Match.Timeout", C.Match.Timeout, 15*time.Second)
	eqcase(t, "Match.Limit", C.Match.Limit, 3)
	eqcase(t, "Giphy.Rating", C.Giphy.Rating, "g")

	wantSubjects := []*SubjectConfig{{Name: "aiz", Owner: "123"}}
	if diff := cmp.Diff(wantSubjects, C.Status.Subjects); diff != "" {
		t.Errorf("wrong subjects (-want +got):\n%s", diff)
	}
	wantRoles := []*RoleConfig{
		{Command: "valorant", Role: "Valorant"},
		{Command: "tft", Role: "Teamfight Tactics"},
		{Command: "lol", Role: "League of Legends"},
	}
	if diff := cmp.Diff(wantRoles, C.Roles); diff != "" {
		t.Errorf("wrong roles (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsNonPositiveInterval(t *testing.T) {
	for _, interval := range []string{"0s", "-5s"} {
		t.Run(interval, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(file, []byte("match:\n  interval: "+interval+"\n"), 0o644); err != nil {
				t.Fatal(err)
			}
			t.Setenv("CONFIG_FILE", file)

			if err := Load(); err == nil {
				t.Errorf("interval %s was accepted", interval)
			}
		})
	}
}
