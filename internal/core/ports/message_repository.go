package ports

import (
	"context"

	"github.com/simplemsg/message-api/internal/core/domain"
)

// ListOptions selects one page of a recipient's inbox, ordered by creation
// time ascending. Page is zero-based.
type ListOptions struct {
	Page       int
	Size       int
	UnreadOnly bool
}

// MessageRepository defines the interface for message persistence.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	ListByRecipient(ctx context.Context, recipientID string, opts ListOptions) ([]domain.Message, error)
	CountByRecipient(ctx context.Context, recipientID string, unreadOnly bool) (int64, error)
	MarkAllRead(ctx context.Context, recipientID string) error
}
