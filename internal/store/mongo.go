package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodrescue/backend/internal/models"
)

// MongoStore handles user and rescue document CRUD in MongoDB. Both
// collections are keyed by natural identifiers (email, rescue_id) with
// unique indexes standing in for document-keyed writes.
type MongoStore struct {
	users   *mongo.Collection
	rescues *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		users:   db.Collection("users"),
		rescues: db.Collection("rescues"),
	}
}

// EnsureIndexes creates the unique key indexes. Safe to call on every boot.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}
	_, err = s.rescues.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "rescue_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("rescues index: %w", err)
	}
	return nil
}

// ── Users ────────────────────────────────────────────────────────────

func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) error {
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user %s: %w", u.Email, models.ErrConflict)
		}
		return fmt.Errorf("mongo insert user: %w", err)
	}
	return nil
}

func (s *MongoStore) GetUser(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("user %s: %w", email, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("mongo get user: %w", err)
	}
	return &u, nil
}

// UpdateUserFields $set-merges the given fields into the user document.
func (s *MongoStore) UpdateUserFields(ctx context.Context, email string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		// Nothing to merge; still report a missing document.
		_, err := s.GetUser(ctx, email)
		return err
	}
	res, err := s.users.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return fmt.Errorf("mongo update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", email, models.ErrNotFound)
	}
	return nil
}

// DeleteUser is unconditional; deleting a missing user is not an error.
func (s *MongoStore) DeleteUser(ctx context.Context, email string) error {
	_, err := s.users.DeleteOne(ctx, bson.M{"email": email})
	return err
}

// ── Rescues ──────────────────────────────────────────────────────────

func (s *MongoStore) CreateRescue(ctx context.Context, r *models.Rescue) error {
	if _, err := s.rescues.InsertOne(ctx, r); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("rescue %s: %w", r.RescueID, models.ErrConflict)
		}
		return fmt.Errorf("mongo insert rescue: %w", err)
	}
	return nil
}

func (s *MongoStore) GetRescue(ctx context.Context, id string) (*models.Rescue, error) {
	var r models.Rescue
	err := s.rescues.FindOne(ctx, bson.M{"rescue_id": id}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("rescue %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("mongo get rescue: %w", err)
	}
	return &r, nil
}

func (s *MongoStore) ListRescues(ctx context.Context) ([]models.Rescue, error) {
	return s.findRescues(ctx, bson.M{})
}

func (s *MongoStore) ListRescuesByOwner(ctx context.Context, email string) ([]models.Rescue, error) {
	return s.findRescues(ctx, bson.M{"email": email})
}

func (s *MongoStore) findRescues(ctx context.Context, filter bson.M) ([]models.Rescue, error) {
	cur, err := s.rescues.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongo find rescues: %w", err)
	}
	defer cur.Close(ctx)

	var rescues []models.Rescue
	if err := cur.All(ctx, &rescues); err != nil {
		return nil, err
	}
	return rescues, nil
}

func (s *MongoStore) UpdateRescueFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		_, err := s.GetRescue(ctx, id)
		return err
	}
	res, err := s.rescues.UpdateOne(ctx, bson.M{"rescue_id": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return fmt.Errorf("mongo update rescue: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("rescue %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) DeleteRescue(ctx context.Context, id string) error {
	_, err := s.rescues.DeleteOne(ctx, bson.M{"rescue_id": id})
	return err
}
