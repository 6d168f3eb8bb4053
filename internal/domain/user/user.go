package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("role must be admin or user")
	ErrRoleNotAllowed     = errors.New("only an admin can register another admin")
)

// Role gates access to write operations.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is a back-office or shop account holder
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password"`
	Address      string    `json:"address,omitempty" bson:"address,omitempty"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// NewUser creates a user from an already hashed password. An empty role
// defaults to RoleUser.
func NewUser(username, email, passwordHash, address string, role Role) (*User, error) {
	if role == "" {
		role = RoleUser
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	return &User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(username),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Address:      address,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// NormalizeEmail lowercases and trims an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Repository defines user persistence operations
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id string) error
}

// ErrUserNotFound indicates missing user
type ErrUserNotFound struct {
	Key string
}

func (e ErrUserNotFound) Error() string {
	return "user not found: " + e.Key
}

// Is matches any ErrUserNotFound when the target carries no key.
func (e ErrUserNotFound) Is(target error) bool {
	t, ok := target.(ErrUserNotFound)
	if !ok {
		return false
	}
	return t.Key == "" || t.Key == e.Key
}

// ErrDuplicateUser indicates email or username uniqueness violation
type ErrDuplicateUser struct {
	Field string
	Value string
}

func (e ErrDuplicateUser) Error() string {
	return "user with " + e.Field + " already exists: " + e.Value
}

// ErrUserInUse is returned when deleting a user who still owns transactions.
type ErrUserInUse struct {
	UserID string
}

func (e ErrUserInUse) Error() string {
	return "user " + e.UserID + " still has transactions"
}
