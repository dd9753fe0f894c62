package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	feedbacksvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/feedback"
)

const feedbackCollection = "feedbacks"

type feedbackDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Phone    string             `bson:"phone,omitempty"`
	Place    string             `bson:"place,omitempty"`
	Feedback string             `bson:"feedback"`
}

type FeedbackRepo struct {
	collection *mongo.Collection
}

func NewFeedbackRepo(client *mongo.Client, database string) *FeedbackRepo {
	if client == nil {
		return &FeedbackRepo{}
	}
	return &FeedbackRepo{
		collection: client.Database(database).Collection(feedbackCollection),
	}
}

func (r *FeedbackRepo) Insert(ctx context.Context, entry feedbacksvc.Feedback) (feedbacksvc.Feedback, error) {
	if r.collection == nil {
		return feedbacksvc.Feedback{}, fmt.Errorf("mongo collection is nil")
	}

	doc := feedbackDoc{
		Name:     entry.Name,
		Phone:    entry.Phone,
		Place:    entry.Place,
		Feedback: entry.Feedback,
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return feedbacksvc.Feedback{}, fmt.Errorf("insert feedback: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}

	return toFeedback(doc), nil
}

func (r *FeedbackRepo) List(ctx context.Context) ([]feedbacksvc.Feedback, error) {
	if r.collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []feedbackDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}

	out := make([]feedbacksvc.Feedback, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toFeedback(doc))
	}
	return out, nil
}

func (r *FeedbackRepo) Delete(ctx context.Context, id string) (feedbacksvc.Feedback, error) {
	if r.collection == nil {
		return feedbacksvc.Feedback{}, fmt.Errorf("mongo collection is nil")
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return feedbacksvc.Feedback{}, feedbacksvc.ErrNotFound
	}

	var doc feedbackDoc
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return feedbacksvc.Feedback{}, feedbacksvc.ErrNotFound
		}
		return feedbacksvc.Feedback{}, fmt.Errorf("delete feedback: %w", err)
	}

	return toFeedback(doc), nil
}

func toFeedback(doc feedbackDoc) feedbacksvc.Feedback {
	return feedbacksvc.Feedback{
		ID:       doc.ID.Hex(),
		Name:     doc.Name,
		Phone:    doc.Phone,
		Place:    doc.Place,
		Feedback: doc.Feedback,
	}
}
