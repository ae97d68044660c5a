package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/simplemsg/message-api/internal/core/domain"
	"github.com/simplemsg/message-api/internal/core/ports"
)

type MessageService struct {
	users    ports.UserRepository
	messages ports.MessageRepository
	logger   zerolog.Logger
}

func NewMessageService(users ports.UserRepository, messages ports.MessageRepository, logger zerolog.Logger) *MessageService {
	return &MessageService{users: users, messages: messages, logger: logger}
}

// CreateMessage stores a message from sender to input.Recipient. Both ends
// must exist and differ; the body must be non-blank.
func (s *MessageService) CreateMessage(ctx context.Context, sender string, input ports.NewMessageInput) (*ports.MessageResult, error) {
	if strings.TrimSpace(input.Body) == "" {
		return nil, domain.ErrEmptyMessage
	}

	from, err := s.users.FindByUsername(ctx, sender)
	if err != nil {
		return nil, err
	}

	to, err := s.users.FindByUsername(ctx, input.Recipient)
	if err != nil {
		return nil, err
	}

	if from.ID == to.ID {
		return nil, domain.ErrSelfMessage
	}

	msg, err := s.messages.Create(ctx, &domain.Message{
		Created:     time.Now().UTC(),
		SenderID:    from.ID,
		RecipientID: to.ID,
		Body:        input.Body,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to store message")
		return nil, err
	}

	s.logger.Info().Str("sender", from.Username).Str("recipient", to.Username).Msg("message created")

	return &ports.MessageResult{
		Created:   msg.Created,
		Sender:    from.Username,
		Recipient: to.Username,
		Body:      msg.Body,
	}, nil
}

// ListMessages returns one page of the recipient's inbox, oldest first.
func (s *MessageService) ListMessages(ctx context.Context, recipient string, opts ports.ListOptions) (*ports.MessagePage, error) {
	if opts.Page < 0 || opts.Size < 1 {
		return nil, domain.ErrBadPagination
	}

	user, err := s.users.FindByUsername(ctx, recipient)
	if err != nil {
		return nil, err
	}

	msgs, err := s.messages.ListByRecipient(ctx, user.ID, opts)
	if err != nil {
		return nil, err
	}

	total, err := s.messages.CountByRecipient(ctx, user.ID, opts.UnreadOnly)
	if err != nil {
		return nil, err
	}

	content := make([]ports.MessageResult, 0, len(msgs))
	for _, m := range msgs {
		sender := ""
		if u, err := s.users.FindByID(ctx, m.SenderID); err == nil {
			sender = u.Username
		}
		content = append(content, ports.MessageResult{
			Created:   m.Created,
			Sender:    sender,
			Recipient: user.Username,
			Body:      m.Body,
		})
	}

	pages := int(total / int64(opts.Size))
	if total%int64(opts.Size) != 0 {
		pages++
	}

	return &ports.MessagePage{
		Content:       content,
		Page:          opts.Page,
		Size:          opts.Size,
		TotalElements: total,
		TotalPages:    pages,
	}, nil
}

// MarkAllRead flips every message addressed to recipient to read.
func (s *MessageService) MarkAllRead(ctx context.Context, recipient string) error {
	user, err := s.users.FindByUsername(ctx, recipient)
	if err != nil {
		return err
	}
	return s.messages.MarkAllRead(ctx, user.ID)
}
