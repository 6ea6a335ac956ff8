package entity

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        string
	UserID    string
	Username  string
	Text      string
	Timestamp time.Time
	// RawTimestamp is the stored text, kept verbatim on rewrite.
	RawTimestamp string
}

func NewComment(username, text string) Comment {
	return Comment{
		ID:        newCommentID(),
		UserID:    UserIDFor(username),
		Username:  username,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}

func (c *Comment) TimestampString() string {
	if c.RawTimestamp != "" || c.Timestamp.IsZero() {
		return c.RawTimestamp
	}
	return c.Timestamp.UTC().Format(TimestampLayout)
}

func newCommentID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
