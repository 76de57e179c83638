package domain

import "time"

// Card is a rich display message: title, description, color and optional media.
type Card struct {
	Title        string
	Description  string
	URL          string
	Color        int
	ImageURL     string
	ThumbnailURL string
	Fields       []CardField
	Footer       string
	Timestamp    time.Time
}

type CardField struct {
	Name   string
	Value  string
	Inline bool
}

// MessageRef identifies a sent message.
type MessageRef struct {
	ChannelID string
	MessageID string
}

type Role struct {
	ID   string
	Name string
}
