package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	bookingssvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/bookings"
)

const bookingCollection = "bookings"

type bookingDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	MobileNumber string             `bson:"mobileNumber"`
	Place        string             `bson:"place"`
	Participants int                `bson:"participants"`
	Date         time.Time          `bson:"date"`
	Time         string             `bson:"time"`
	Language     string             `bson:"language"`
	TotalPrice   float64            `bson:"totalPrice"`
}

type BookingRepo struct {
	collection *mongo.Collection
}

func NewBookingRepo(client *mongo.Client, database string) *BookingRepo {
	if client == nil {
		return &BookingRepo{}
	}
	return &BookingRepo{
		collection: client.Database(database).Collection(bookingCollection),
	}
}

func (r *BookingRepo) Insert(ctx context.Context, booking bookingssvc.Booking) (bookingssvc.Booking, error) {
	if r.collection == nil {
		return bookingssvc.Booking{}, fmt.Errorf("mongo collection is nil")
	}

	doc := bookingDoc{
		Name:         booking.Name,
		MobileNumber: booking.MobileNumber,
		Place:        booking.Place,
		Participants: booking.Participants,
		Date:         booking.Date.UTC(),
		Time:         booking.Time,
		Language:     booking.Language,
		TotalPrice:   booking.TotalPrice,
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return bookingssvc.Booking{}, fmt.Errorf("insert booking: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}

	return toBooking(doc), nil
}

func (r *BookingRepo) List(ctx context.Context) ([]bookingssvc.Booking, error) {
	if r.collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bookingDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}

	out := make([]bookingssvc.Booking, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toBooking(doc))
	}
	return out, nil
}

func (r *BookingRepo) Delete(ctx context.Context, id string) (bookingssvc.Booking, error) {
	if r.collection == nil {
		return bookingssvc.Booking{}, fmt.Errorf("mongo collection is nil")
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return bookingssvc.Booking{}, bookingssvc.ErrNotFound
	}

	var doc bookingDoc
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return bookingssvc.Booking{}, bookingssvc.ErrNotFound
		}
		return bookingssvc.Booking{}, fmt.Errorf("delete booking: %w", err)
	}

	return toBooking(doc), nil
}

func toBooking(doc bookingDoc) bookingssvc.Booking {
	return bookingssvc.Booking{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		MobileNumber: doc.MobileNumber,
		Place:        doc.Place,
		Participants: doc.Participants,
		Date:         doc.Date,
		Time:         doc.Time,
		Language:     doc.Language,
		TotalPrice:   doc.TotalPrice,
	}
}
