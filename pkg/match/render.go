package match

import (
	"fmt"
	"strings"

	"github.com/lilcord/lilbot/pkg/domain"
)

const (
	ColorLive     = 0xE74C3C
	ColorResults  = 0x2ECC71
	ColorUpcoming = 0x3498DB
)

// Render builds the display card of m.
func Render(m Match) *domain.Card {
	card := &domain.Card{
		Title:        fmt.Sprintf("%s vs %s", m.TeamA.Name, m.TeamB.Name),
		URL:          m.PageURL,
		ThumbnailURL: m.EventIcon,
	}
	if card.ThumbnailURL == "" {
		card.ThumbnailURL = m.TeamA.LogoURL
	}

	var desc strings.Builder
	desc.WriteString("**" + m.Event + "**")
	if m.Stage != "" {
		desc.WriteString("\n" + m.Stage)
	}
	card.Description = desc.String()

	switch m.Status {
	case StatusLive:
		card.Color = ColorLive
		card.Fields = append(card.Fields,
			domain.CardField{Name: "🔴 LIVE", Value: m.ScoreLine(), Inline: true},
		)
		if m.CurrentMap != "" {
			card.Fields = append(card.Fields, domain.CardField{Name: "Map", Value: m.CurrentMap, Inline: true})
		}
	case StatusFinished:
		card.Color = ColorResults
		card.Fields = append(card.Fields,
			domain.CardField{Name: "Final", Value: m.ScoreLine(), Inline: true},
			domain.CardField{Name: "Completed", Value: orDash(m.Completed), Inline: true},
		)
		if len(m.Maps) > 0 {
			lines := make([]string, 0, len(m.Maps))
			for _, ms := range m.Maps {
				lines = append(lines, fmt.Sprintf("%s: %s - %s", ms.Name, ms.ScoreA, ms.ScoreB))
			}
			card.Fields = append(card.Fields, domain.CardField{Name: "Maps", Value: strings.Join(lines, "\n")})
		}
	default:
		card.Color = ColorUpcoming
		card.Fields = append(card.Fields,
			domain.CardField{Name: "Starts in", Value: orDash(m.ETA), Inline: true},
		)
	}
	return card
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
