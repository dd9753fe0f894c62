package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	authsvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/auth"
)

// The legacy system stored accounts in a collection named Cred.
const credentialCollection = "Cred"

type credentialDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Phone    string             `bson:"phone"`
	Password string             `bson:"password"`
	Role     string             `bson:"role"`
}

type CredentialRepo struct {
	collection *mongo.Collection
}

func NewCredentialRepo(client *mongo.Client, database string) *CredentialRepo {
	if client == nil {
		return &CredentialRepo{}
	}
	return &CredentialRepo{
		collection: client.Database(database).Collection(credentialCollection),
	}
}

// EnsureIndexes creates the unique phone index backing the
// one-account-per-phone invariant.
func (r *CredentialRepo) EnsureIndexes(ctx context.Context) error {
	if r.collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create phone index: %w", err)
	}

	return nil
}

func (r *CredentialRepo) FindByPhone(ctx context.Context, phone string) (authsvc.Account, error) {
	if r.collection == nil {
		return authsvc.Account{}, fmt.Errorf("mongo collection is nil")
	}

	var doc credentialDoc
	err := r.collection.FindOne(ctx, bson.M{"phone": phone}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return authsvc.Account{}, authsvc.ErrAccountNotFound
		}
		return authsvc.Account{}, fmt.Errorf("find credential by phone: %w", err)
	}

	return toAccount(doc), nil
}

func (r *CredentialRepo) Create(ctx context.Context, account authsvc.Account) (authsvc.Account, error) {
	if r.collection == nil {
		return authsvc.Account{}, fmt.Errorf("mongo collection is nil")
	}

	doc := credentialDoc{
		Name:     account.Name,
		Phone:    account.Phone,
		Password: account.PasswordHash,
		Role:     account.Role,
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return authsvc.Account{}, authsvc.ErrPhoneTaken
		}
		return authsvc.Account{}, fmt.Errorf("insert credential: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}

	return toAccount(doc), nil
}

func toAccount(doc credentialDoc) authsvc.Account {
	return authsvc.Account{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Phone:        doc.Phone,
		PasswordHash: doc.Password,
		Role:         doc.Role,
	}
}
