package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/simplemsg/message-api/internal/core/domain"
	"github.com/simplemsg/message-api/internal/core/ports"
)

const messageCollection = "messages"

// MessageRepository persists messages in MongoDB.
type MessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{coll: db.Collection(messageCollection)}
}

// messageIndexes defines the indexes applied at startup. Inbox listing
// filters on recipient and sorts on created, so both go into one compound
// index.
func messageIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "created", Value: 1}}},
	}
}

// EnsureIndexes creates necessary indexes on the messages collection.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, messageIndexes())
	return err
}

type mongoMessage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Created     int64              `bson:"created"`
	SenderID    string             `bson:"sender"`
	RecipientID string             `bson:"recipient"`
	Read        bool               `bson:"read"`
	Body        string             `bson:"message"`
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	doc := mongoMessage{
		Created:     msg.Created.Unix(),
		SenderID:    msg.SenderID,
		RecipientID: msg.RecipientID,
		Read:        msg.Read,
		Body:        msg.Body,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	stored := *msg
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		stored.ID = oid.Hex()
	}
	return &stored, nil
}

func (r *MessageRepository) ListByRecipient(ctx context.Context, recipientID string, opts ports.ListOptions) ([]domain.Message, error) {
	filter := r.filter(recipientID, opts.UnreadOnly)

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created", Value: 1}}).
		SetSkip(int64(opts.Page) * int64(opts.Size)).
		SetLimit(int64(opts.Size))

	cur, err := r.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cur.Close(ctx)

	var msgs []domain.Message
	for cur.Next(ctx) {
		var mm mongoMessage
		if err := cur.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		msgs = append(msgs, domain.Message{
			ID:          mm.ID.Hex(),
			Created:     unixToTime(mm.Created),
			SenderID:    mm.SenderID,
			RecipientID: mm.RecipientID,
			Read:        mm.Read,
			Body:        mm.Body,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

func (r *MessageRepository) CountByRecipient(ctx context.Context, recipientID string, unreadOnly bool) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, r.filter(recipientID, unreadOnly))
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}

func (r *MessageRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"recipient": recipientID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("mark messages read: %w", err)
	}
	return nil
}

func (r *MessageRepository) filter(recipientID string, unreadOnly bool) bson.M {
	filter := bson.M{"recipient": recipientID}
	if unreadOnly {
		filter["read"] = false
	}
	return filter
}
