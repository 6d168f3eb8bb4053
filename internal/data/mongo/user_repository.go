package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/backoffice-ledger/internal/domain/user"
)

// UserRepository implements user.Repository on MongoDB
type UserRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewUserRepository creates a new MongoDB user repository
func NewUserRepository(logger *slog.Logger, db *mongo.Database) user.Repository {
	return &UserRepository{
		coll:   db.Collection(UsersCollection),
		logger: logger,
	}
}

// Create inserts the user. The unique indexes on email and username turn a
// lost registration race into ErrDuplicateUser.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateUserError(err, u)
		}
		r.logger.Error("Failed to create user", "user_id", u.ID, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func duplicateUserError(err error, u *user.User) error {
	if strings.Contains(err.Error(), "uniq_username") {
		return user.ErrDuplicateUser{Field: "username", Value: u.Username}
	}
	return user.ErrDuplicateUser{Field: "email", Value: u.Email}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	email = user.NormalizeEmail(email)
	return r.findOne(ctx, bson.M{"email": email}, email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.findOne(ctx, bson.M{"username": username}, username)
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, key string) (*user.User, error) {
	var u user.User
	if err := r.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrUserNotFound{Key: key}
		}
		r.logger.Error("Failed to get user", "key", key, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	users, err := findAll[user.User](ctx, r.coll, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to delete user", "user_id", id, "error", err)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return user.ErrUserNotFound{Key: id}
	}
	return nil
}
