package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/panelkit/admin-console/internal/core/domain"
)

// CredentialStore implements ports.CredentialStore on the credentials collection.
type CredentialStore struct {
	coll *mongo.Collection
}

func NewCredentialStore(db *mongo.Database) *CredentialStore {
	return &CredentialStore{coll: db.Collection(credentialsCollection)}
}

type credentialDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     int64              `bson:"user_id"`
	Email      string             `bson:"email"`
	Name       string             `bson:"name"`
	Role       string             `bson:"role"`
	AvatarURL  string             `bson:"avatar,omitempty"`
	Phone      string             `bson:"phone,omitempty"`
	SecretHash string             `bson:"secret_hash"`
	CreatedAt  int64              `bson:"created_at"`
}

func (r *CredentialStore) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	var doc credentialDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCredentialNotFound
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}

	role, err := domain.ParseRole(doc.Role)
	if err != nil {
		return nil, fmt.Errorf("credential %s: %w", doc.Email, err)
	}

	return &domain.Credential{
		Identity: domain.Identity{
			ID:        doc.UserID,
			Email:     doc.Email,
			Name:      doc.Name,
			Role:      role,
			AvatarURL: doc.AvatarURL,
			Phone:     doc.Phone,
		},
		Secret: doc.SecretHash,
	}, nil
}

// Seed inserts creds that are not present yet, hashing their secrets with
// bcrypt. Existing documents are left untouched.
func (r *CredentialStore) Seed(ctx context.Context, creds ...domain.Credential) (int, error) {
	inserted := 0
	for _, c := range creds {
		doc, err := newCredentialDoc(c, time.Now())
		if err != nil {
			return inserted, err
		}

		res, err := r.coll.UpdateOne(ctx,
			bson.M{"email": c.Email},
			bson.M{"$setOnInsert": doc},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return inserted, fmt.Errorf("seed credential %s: %w", c.Email, err)
		}
		if res.UpsertedCount > 0 {
			inserted++
		}
	}
	return inserted, nil
}

func newCredentialDoc(c domain.Credential, now time.Time) (credentialDoc, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(c.Secret), bcrypt.DefaultCost)
	if err != nil {
		return credentialDoc{}, fmt.Errorf("hash secret: %w", err)
	}
	return credentialDoc{
		UserID:     c.ID,
		Email:      c.Email,
		Name:       c.Name,
		Role:       c.Role.String(),
		AvatarURL:  c.AvatarURL,
		Phone:      c.Phone,
		SecretHash: string(hash),
		CreatedAt:  now.Unix(),
	}, nil
}
