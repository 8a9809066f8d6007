package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/delivery-price-compare/internal/model"
)

// MongoUserStore keeps one document per user in a MongoDB collection, with
// favorites embedded as an array.  Favorites updates use $addToSet and $pull
// so each is a single atomic document update.
type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection("users")}
}

// EnsureIndexes creates the unique indexes the store relies on.  It is safe
// to call on every startup.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (s *MongoUserStore) InsertUser(ctx context.Context, u model.User) error {
	u.Email = NormalizeEmail(u.Email)
	if u.Favorites == nil {
		u.Favorites = []string{} // $addToSet needs an array, not null
	}
	if _, err := s.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *MongoUserStore) FindUserByEmail(ctx context.Context, email string) (model.User, error) {
	return s.findOne(ctx, bson.M{"email": NormalizeEmail(email)})
}

func (s *MongoUserStore) FindUserByID(ctx context.Context, id string) (model.User, error) {
	return s.findOne(ctx, bson.M{"id": id})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (model.User, error) {
	var u model.User
	if err := s.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("find user: %w", err)
	}
	if u.Favorites == nil {
		u.Favorites = []string{}
	}
	return u, nil
}

func (s *MongoUserStore) AddFavorite(ctx context.Context, userID, restaurantID string) (bool, error) {
	return s.updateFavorites(ctx, userID, favoritesUpdate("$addToSet", restaurantID))
}

func (s *MongoUserStore) RemoveFavorite(ctx context.Context, userID, restaurantID string) (bool, error) {
	return s.updateFavorites(ctx, userID, favoritesUpdate("$pull", restaurantID))
}

func (s *MongoUserStore) updateFavorites(ctx context.Context, userID string, update bson.M) (bool, error) {
	res, err := s.coll.UpdateOne(ctx, bson.M{"id": userID}, update)
	if err != nil {
		return false, fmt.Errorf("update favorites: %w", err)
	}
	if res.MatchedCount == 0 {
		return false, ErrUserNotFound
	}
	return res.ModifiedCount > 0, nil
}

func favoritesUpdate(op, restaurantID string) bson.M {
	return bson.M{op: bson.M{"favorites": restaurantID}}
}
