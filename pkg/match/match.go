// Package match fetches VCT matches from the vlr.gg API and renders them as display cards.
package match

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Mode is a match listing kind.
type Mode string

const (
	ModeUpcoming Mode = "upcoming"
	ModeLive     Mode = "live"
	ModeResults  Mode = "results"
)

var ErrUnknownMode = errors.New("unknown match mode")

// ParseMode parses a user supplied mode keyword.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(s))
	if !lo.Contains([]Mode{ModeUpcoming, ModeLive, ModeResults}, m) {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// query returns the upstream query value for the mode.
func (m Mode) query() string {
	if m == ModeLive {
		return "live_score"
	}
	return string(m)
}

type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusLive     Status = "live"
	StatusFinished Status = "finished"
)

// Match is a normalized upstream match record.
type Match struct {
	TeamA Team
	TeamB Team
	Event string
	// Stage is empty when the upstream has no stage label.
	Stage      string
	Status     Status
	ETA        string
	Completed  string
	PageURL    string
	EventIcon  string
	CurrentMap string
	Maps       []MapScore
}

type Team struct {
	Name string
	// Score is nil when the upstream did not report one.
	Score   *string
	LogoURL string
}

type MapScore struct {
	Name   string
	ScoreA string
	ScoreB string
}

// ScoreLine renders "A - B", with "-" for unknown scores.
func (m Match) ScoreLine() string {
	return fmt.Sprintf("%s - %s", scoreOrDash(m.TeamA.Score), scoreOrDash(m.TeamB.Score))
}

func scoreOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
