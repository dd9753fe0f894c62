package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	placessvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/places"
)

const placeCollection = "places"

type placeDoc struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Title              string             `bson:"placetitle"`
	Location           string             `bson:"placelocation"`
	GuideName          string             `bson:"guidename,omitempty"`
	GuideMobile        string             `bson:"guidemobile,omitempty"`
	GuideLanguage      string             `bson:"guidelanguage,omitempty"`
	ResidentialDetails string             `bson:"residentialdetails,omitempty"`
	PoliceStation      string             `bson:"policestation,omitempty"`
	FireStation        string             `bson:"firestation,omitempty"`
	MapLink            string             `bson:"maplink,omitempty"`
	Description        string             `bson:"description"`
	ImageKey           string             `bson:"image,omitempty"`
	Latitude           string             `bson:"latitude,omitempty"`
	Longitude          string             `bson:"longitude,omitempty"`
}

type PlaceRepo struct {
	collection *mongo.Collection
}

func NewPlaceRepo(client *mongo.Client, database string) *PlaceRepo {
	if client == nil {
		return &PlaceRepo{}
	}
	return &PlaceRepo{
		collection: client.Database(database).Collection(placeCollection),
	}
}

func (r *PlaceRepo) Insert(ctx context.Context, place placessvc.Place) (placessvc.Place, error) {
	if r.collection == nil {
		return placessvc.Place{}, fmt.Errorf("mongo collection is nil")
	}

	doc := fromPlace(place)
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return placessvc.Place{}, fmt.Errorf("insert place: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}

	return toPlace(doc), nil
}

func (r *PlaceRepo) List(ctx context.Context) ([]placessvc.Place, error) {
	if r.collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find places: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []placeDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode places: %w", err)
	}

	out := make([]placessvc.Place, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toPlace(doc))
	}
	return out, nil
}

func (r *PlaceRepo) Get(ctx context.Context, id string) (placessvc.Place, error) {
	if r.collection == nil {
		return placessvc.Place{}, fmt.Errorf("mongo collection is nil")
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return placessvc.Place{}, placessvc.ErrNotFound
	}

	var doc placeDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return placessvc.Place{}, placessvc.ErrNotFound
		}
		return placessvc.Place{}, fmt.Errorf("find place: %w", err)
	}

	return toPlace(doc), nil
}

func (r *PlaceRepo) Update(ctx context.Context, id string, place placessvc.Place) (placessvc.Place, error) {
	if r.collection == nil {
		return placessvc.Place{}, fmt.Errorf("mongo collection is nil")
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return placessvc.Place{}, placessvc.ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"placetitle":         place.Title,
		"placelocation":      place.Location,
		"guidename":          place.GuideName,
		"guidemobile":        place.GuideMobile,
		"guidelanguage":      place.GuideLanguage,
		"residentialdetails": place.ResidentialDetails,
		"policestation":      place.PoliceStation,
		"firestation":        place.FireStation,
		"maplink":            place.MapLink,
		"description":        place.Description,
		"latitude":           place.Latitude,
		"longitude":          place.Longitude,
	}}

	var doc placeDoc
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return placessvc.Place{}, placessvc.ErrNotFound
		}
		return placessvc.Place{}, fmt.Errorf("update place: %w", err)
	}

	return toPlace(doc), nil
}

func (r *PlaceRepo) Delete(ctx context.Context, id string) (placessvc.Place, error) {
	if r.collection == nil {
		return placessvc.Place{}, fmt.Errorf("mongo collection is nil")
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return placessvc.Place{}, placessvc.ErrNotFound
	}

	var doc placeDoc
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return placessvc.Place{}, placessvc.ErrNotFound
		}
		return placessvc.Place{}, fmt.Errorf("delete place: %w", err)
	}

	return toPlace(doc), nil
}

func (r *PlaceRepo) SetImageKey(ctx context.Context, id, key string) error {
	if r.collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return placessvc.ErrNotFound
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"image": key}})
	if err != nil {
		return fmt.Errorf("set place image key: %w", err)
	}
	if res.MatchedCount == 0 {
		return placessvc.ErrNotFound
	}

	return nil
}

func fromPlace(place placessvc.Place) placeDoc {
	return placeDoc{
		Title:              place.Title,
		Location:           place.Location,
		GuideName:          place.GuideName,
		GuideMobile:        place.GuideMobile,
		GuideLanguage:      place.GuideLanguage,
		ResidentialDetails: place.ResidentialDetails,
		PoliceStation:      place.PoliceStation,
		FireStation:        place.FireStation,
		MapLink:            place.MapLink,
		Description:        place.Description,
		ImageKey:           place.ImageKey,
		Latitude:           place.Latitude,
		Longitude:          place.Longitude,
	}
}

func toPlace(doc placeDoc) placessvc.Place {
	return placessvc.Place{
		ID:                 doc.ID.Hex(),
		Title:              doc.Title,
		Location:           doc.Location,
		GuideName:          doc.GuideName,
		GuideMobile:        doc.GuideMobile,
		GuideLanguage:      doc.GuideLanguage,
		ResidentialDetails: doc.ResidentialDetails,
		PoliceStation:      doc.PoliceStation,
		FireStation:        doc.FireStation,
		MapLink:            doc.MapLink,
		Description:        doc.Description,
		ImageKey:           doc.ImageKey,
		Latitude:           doc.Latitude,
		Longitude:          doc.Longitude,
	}
}
