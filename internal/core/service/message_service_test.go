package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/simplemsg/message-api/internal/core/domain"
	"github.com/simplemsg/message-api/internal/core/ports"
)

type stubMessageRepo struct {
	messages []domain.Message
}

func (r *stubMessageRepo) Create(_ context.Context, msg *domain.Message) (*domain.Message, error) {
	stored := *msg
	stored.ID = "m1"
	r.messages = append(r.messages, stored)
	return &stored, nil
}

func (r *stubMessageRepo) ListByRecipient(_ context.Context, recipientID string, opts ports.ListOptions) ([]domain.Message, error) {
	var all []domain.Message
	for _, m := range r.messages {
		if m.RecipientID != recipientID {
			continue
		}
		if opts.UnreadOnly && m.Read {
			continue
		}
		all = append(all, m)
	}

	start := opts.Page * opts.Size
	if start >= len(all) {
		return nil, nil
	}
	end := start + opts.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *stubMessageRepo) CountByRecipient(_ context.Context, recipientID string, unreadOnly bool) (int64, error) {
	var n int64
	for _, m := range r.messages {
		if m.RecipientID == recipientID && !(unreadOnly && m.Read) {
			n++
		}
	}
	return n, nil
}

func (r *stubMessageRepo) MarkAllRead(_ context.Context, recipientID string) error {
	for i := range r.messages {
		if r.messages[i].RecipientID == recipientID {
			r.messages[i].Read = true
		}
	}
	return nil
}

func seedUsers(t *testing.T, repo *stubUserRepo, names ...string) {
	t.Helper()
	for _, n := range names {
		if _, err := repo.Create(context.Background(), &domain.User{
			Username: n,
			Active:   true,
			Roles:    []string{domain.RoleUser},
		}); err != nil {
			t.Fatalf("seed user %s: %v", n, err)
		}
	}
}

func TestMessageService_CreateMessage(t *testing.T) {
	users := newStubUserRepo()
	seedUsers(t, users, "alice", "bob")
	msgs := &stubMessageRepo{}
	svc := NewMessageService(users, msgs, zerolog.Nop())

	result, err := svc.CreateMessage(context.Background(), "alice", ports.NewMessageInput{
		Recipient: "bob",
		Body:      "hello bob",
	})
	if err != nil {
		t.Fatalf("create message: %v", err)
	}
	if result.Sender != "alice" || result.Recipient != "bob" || result.Body != "hello bob" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(msgs.messages) != 1 || msgs.messages[0].Read {
		t.Fatalf("expected one unread stored message, got %+v", msgs.messages)
	}
}

func TestMessageService_CreateMessage_Invalid(t *testing.T) {
	users := newStubUserRepo()
	seedUsers(t, users, "alice", "bob")
	svc := NewMessageService(users, &stubMessageRepo{}, zerolog.Nop())

	cases := []struct {
		name      string
		sender    string
		recipient string
		body      string
		want      error
	}{
		{"blank body", "alice", "bob", "   ", domain.ErrEmptyMessage},
		{"unknown recipient", "alice", "ghost", "hi", domain.ErrUserNotFound},
		{"unknown sender", "ghost", "bob", "hi", domain.ErrUserNotFound},
		{"self message", "alice", "alice", "hi", domain.ErrSelfMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateMessage(context.Background(), tc.sender, ports.NewMessageInput{
				Recipient: tc.recipient,
				Body:      tc.body,
			})
			if err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestMessageService_ListMessages_Pagination(t *testing.T) {
	users := newStubUserRepo()
	seedUsers(t, users, "alice", "bob")
	msgs := &stubMessageRepo{}
	svc := NewMessageService(users, msgs, zerolog.Nop())

	for i := 0; i < 5; i++ {
		if _, err := svc.CreateMessage(context.Background(), "alice", ports.NewMessageInput{
			Recipient: "bob",
			Body:      "hello",
		}); err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}

	page, err := svc.ListMessages(context.Background(), "bob", ports.ListOptions{Page: 1, Size: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Content) != 2 {
		t.Fatalf("expected 2 messages on page, got %d", len(page.Content))
	}
	if page.TotalElements != 5 || page.TotalPages != 3 {
		t.Fatalf("unexpected totals: %+v", page)
	}
	if page.Content[0].Sender != "alice" || page.Content[0].Recipient != "bob" {
		t.Fatalf("unexpected message: %+v", page.Content[0])
	}
}

func TestMessageService_ListMessages_BadPagination(t *testing.T) {
	users := newStubUserRepo()
	seedUsers(t, users, "bob")
	svc := NewMessageService(users, &stubMessageRepo{}, zerolog.Nop())

	if _, err := svc.ListMessages(context.Background(), "bob", ports.ListOptions{Page: -1, Size: 10}); err != domain.ErrBadPagination {
		t.Fatalf("expected ErrBadPagination for negative page, got %v", err)
	}
	if _, err := svc.ListMessages(context.Background(), "bob", ports.ListOptions{Page: 0, Size: 0}); err != domain.ErrBadPagination {
		t.Fatalf("expected ErrBadPagination for zero size, got %v", err)
	}
}

func TestMessageService_MarkAllRead(t *testing.T) {
	users := newStubUserRepo()
	seedUsers(t, users, "alice", "bob")
	msgs := &stubMessageRepo{}
	svc := NewMessageService(users, msgs, zerolog.Nop())

	_, _ = svc.CreateMessage(context.Background(), "alice", ports.NewMessageInput{Recipient: "bob", Body: "one"})
	_, _ = svc.CreateMessage(context.Background(), "alice", ports.NewMessageInput{Recipient: "bob", Body: "two"})

	if err := svc.MarkAllRead(context.Background(), "bob"); err != nil {
		t.Fatalf("mark all read: %v", err)
	}

	page, err := svc.ListMessages(context.Background(), "bob", ports.ListOptions{Page: 0, Size: 10, UnreadOnly: true})
	if err != nil {
		t.Fatalf("list unread: %v", err)
	}
	if len(page.Content) != 0 {
		t.Fatalf("expected no unread messages, got %d", len(page.Content))
	}
}
