package match

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// step reads one upstream key and converts its value.
type step[T any] struct {
	key  string
	conv func(v any) (T, bool)
}

// chain is a prioritized list of steps; the first key present with a convertible value wins.
type chain[T any] []step[T]

func (c chain[T]) lookup(raw map[string]any) (T, bool) {
	for _, s := range c {
		v, ok := raw[s.key]
		if !ok || v == nil {
			continue
		}
		if t, ok := s.conv(v); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

func (c chain[T]) or(raw map[string]any, def T) T {
	if t, ok := c.lookup(raw); ok {
		return t
	}
	return def
}

// text converts strings and numbers. Blank strings count as missing.
func text(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		s := strings.TrimSpace(v)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	case int:
		return strconv.Itoa(v), true
	}
	return "", false
}

func textSteps(keys ...string) chain[string] {
	c := make(chain[string], len(keys))
	for i, k := range keys {
		c[i] = step[string]{key: k, conv: text}
	}
	return c
}

// side is 1 for team A and 2 for team B.
func teamNameChain(side int) chain[string] {
	return textSteps(fmt.Sprintf("team%d", side), fmt.Sprintf("team%d_name", side))
}

func scoreChain(side int) chain[string] {
	return textSteps(
		fmt.Sprintf("score%d", side),
		fmt.Sprintf("team%d_score", side),
		fmt.Sprintf("score_%c", 'a'+side-1),
	)
}

func logoChain(side int) chain[string] {
	return textSteps(fmt.Sprintf("team%d_logo", side), fmt.Sprintf("logo%d", side))
}

var (
	eventChain      = textSteps("match_event", "tournament_name")
	stageChain      = textSteps("match_series", "round_info")
	etaChain        = textSteps("time_until_match", "eta")
	completedChain  = textSteps("time_completed", "completed")
	pageChain       = textSteps("match_page", "url")
	eventIconChain  = textSteps("tournament_icon", "event_icon")
	currentMapChain = textSteps("current_map")
	mapNameChain    = textSteps("map", "name")

	mapsChain = chain[[]any]{{key: "maps", conv: func(v any) ([]any, bool) {
		l, ok := v.([]any)
		return l, ok && len(l) > 0
	}}}
)

const (
	defaultTeamName = "TBD"
	defaultEvent    = "Unknown Event"
)

// Normalize converts one upstream record into a Match. site is the origin that relative
// URLs resolve against.
func Normalize(raw map[string]any, mode Mode, site string) Match {
	m := Match{
		TeamA:      normalizeTeam(raw, 1, site),
		TeamB:      normalizeTeam(raw, 2, site),
		Event:      eventChain.or(raw, defaultEvent),
		Stage:      stageChain.or(raw, ""),
		ETA:        etaChain.or(raw, ""),
		Completed:  completedChain.or(raw, ""),
		PageURL:    NormalizeURL(site, pageChain.or(raw, "")),
		EventIcon:  NormalizeURL(site, eventIconChain.or(raw, "")),
		CurrentMap: currentMapChain.or(raw, ""),
	}
	switch mode {
	case ModeLive:
		m.Status = StatusLive
	case ModeResults:
		m.Status = StatusFinished
		m.Maps = normalizeMaps(raw)
	default:
		m.Status = StatusUpcoming
	}
	return m
}

func normalizeTeam(raw map[string]any, side int, site string) Team {
	t := Team{
		Name:    teamNameChain(side).or(raw, defaultTeamName),
		LogoURL: NormalizeURL(site, logoChain(side).or(raw, "")),
	}
	if s, ok := scoreChain(side).lookup(raw); ok {
		t.Score = &s
	}
	return t
}

func normalizeMaps(raw map[string]any) []MapScore {
	list, ok := mapsChain.lookup(raw)
	if !ok {
		return nil
	}
	var maps []MapScore
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		maps = append(maps, MapScore{
			Name:   mapNameChain.or(obj, fmt.Sprintf("Map %d", i+1)),
			ScoreA: scoreChain(1).or(obj, "-"),
			ScoreB: scoreChain(2).or(obj, "-"),
		})
	}
	return maps
}

// NormalizeURL makes upstream URLs absolute: "//" gets an https scheme, "/" resolves
// against site, and anything else passes through.
func NormalizeURL(site, u string) string {
	switch {
	case strings.HasPrefix(u, "//"):
		return "https:" + u
	case strings.HasPrefix(u, "/"):
		return strings.TrimRight(site, "/") + u
	default:
		return u
	}
}
