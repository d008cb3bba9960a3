package domain

import "time"

// Description is one recorded result of an image description run.
type Description struct {
	ID        int64
	ChatID    int64
	FileID    string
	Model     string
	Text      string
	CreatedAt time.Time
}
