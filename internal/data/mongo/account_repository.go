package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/backoffice-ledger/internal/domain/account"
)

// AccountRepository implements account.Repository on MongoDB
type AccountRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewAccountRepository creates a new MongoDB account repository
func NewAccountRepository(logger *slog.Logger, db *mongo.Database) account.Repository {
	return &AccountRepository{
		coll:   db.Collection(AccountsCollection),
		logger: logger,
	}
}

// Create inserts the account. A duplicate account_code surfaces as
// ErrDuplicateAccountCode.
func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	if _, err := r.coll.InsertOne(ctx, acc); err != nil {
		if mongo.IsDuplicateKeyError(err) && acc.Code != nil {
			return account.ErrDuplicateAccountCode{Code: *acc.Code}
		}
		r.logger.Error("Failed to create account", "account_id", acc.ID, "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	var acc account.Account
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&acc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, account.ErrAccountNotFound{AccountID: id}
		}
		r.logger.Error("Failed to get account", "account_id", id, "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &acc, nil
}

// GetByCode looks up an account by its code. A missing code yields
// ErrAccountNotFound with an empty id.
func (r *AccountRepository) GetByCode(ctx context.Context, code int) (*account.Account, error) {
	var acc account.Account
	if err := r.coll.FindOne(ctx, bson.M{"account_code": code}).Decode(&acc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, account.ErrAccountNotFound{}
		}
		r.logger.Error("Failed to get account by code", "account_code", code, "error", err)
		return nil, fmt.Errorf("failed to get account by code: %w", err)
	}
	return &acc, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]*account.Account, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	accounts, err := findAll[account.Account](ctx, r.coll, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to list accounts", "error", err)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) Update(ctx context.Context, acc *account.Account) error {
	set := bson.M{
		"name":         acc.Name,
		"account_type": acc.Type,
		"updated_at":   acc.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if acc.Code != nil {
		set["account_code"] = *acc.Code
	} else {
		update["$unset"] = bson.M{"account_code": ""}
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": acc.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) && acc.Code != nil {
			return account.ErrDuplicateAccountCode{Code: *acc.Code}
		}
		r.logger.Error("Failed to update account", "account_id", acc.ID, "error", err)
		return fmt.Errorf("failed to update account: %w", err)
	}
	if result.MatchedCount == 0 {
		return account.ErrAccountNotFound{AccountID: acc.ID}
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to delete account", "account_id", id, "error", err)
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if result.DeletedCount == 0 {
		return account.ErrAccountNotFound{AccountID: id}
	}
	return nil
}
