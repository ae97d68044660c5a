package domain

import (
	"errors"
	"time"
)

var (
	ErrEmptyMessage  = errors.New("message can not be empty")
	ErrSelfMessage   = errors.New("sender and recipient can't be equal")
	ErrBadPagination = errors.New("invalid pagination parameters")
)

// Message is a single message between two stored users. Read starts false
// and flips to true only via the read-all operation.
type Message struct {
	ID          string
	Created     time.Time
	SenderID    string
	RecipientID string
	Read        bool
	Body        string
}
