package store

import "time"

type Record struct {
	Id           string
	Transcript   string
	CustomPrompt string
	Summary      string
	MeetingTitle string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
