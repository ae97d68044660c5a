package ports

import (
	"context"
	"time"
)

// NewMessageInput carries the payload for sending a message.
type NewMessageInput struct {
	Recipient string
	Body      string
}

// MessageResult is the shape handed back to the web layer for one message.
type MessageResult struct {
	Created   time.Time `json:"created"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient"`
	Body      string    `json:"message"`
}

// MessagePage is one page of a recipient's inbox.
type MessagePage struct {
	Content       []MessageResult `json:"content"`
	Page          int             `json:"page"`
	Size          int             `json:"size"`
	TotalElements int64           `json:"total_elements"`
	TotalPages    int             `json:"total_pages"`
}

type MessageService interface {
	CreateMessage(ctx context.Context, sender string, input NewMessageInput) (*MessageResult, error)
	ListMessages(ctx context.Context, recipient string, opts ListOptions) (*MessagePage, error)
	MarkAllRead(ctx context.Context, recipient string) error
}
