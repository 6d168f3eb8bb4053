package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/backoffice-ledger/internal/domain/order"
	"github.com/backoffice-ledger/internal/domain/user"
	"github.com/backoffice-ledger/internal/platform/security"
)

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs session tokens
type TokenIssuer interface {
	Issue(userID, role string) (string, time.Time, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userRepo  user.Repository
	orderRepo order.Repository
	hasher    PasswordHasher
	tokens    TokenIssuer
	logger    *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(logger *slog.Logger, userRepo user.Repository, orderRepo order.Repository, hasher PasswordHasher, tokens TokenIssuer) UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		orderRepo: orderRepo,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates a user. Anonymous callers get the user role; an admin
// account can only be registered by an admin, or as the very first user.
func (s *UserServiceImpl) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	role := in.Role
	if role == "" {
		role = user.RoleUser
	}
	if !role.Valid() {
		return nil, user.ErrInvalidRole
	}
	if role == user.RoleAdmin && in.CallerRole != user.RoleAdmin {
		existing, err := s.userRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			return nil, user.ErrRoleNotAllowed
		}
	}

	if err := s.ensureUnique(ctx, in.Email, in.Username); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(in.Username, in.Email, hash, in.Address, role)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *UserServiceImpl) ensureUnique(ctx context.Context, email, username string) error {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return user.ErrDuplicateUser{Field: "email", Value: user.NormalizeEmail(email)}
	} else if !errors.Is(err, user.ErrUserNotFound{}) {
		return err
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return user.ErrDuplicateUser{Field: "username", Value: username}
	} else if !errors.Is(err, user.ErrUserNotFound{}) {
		return err
	}
	return nil
}

func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound{}) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			s.logger.Info("Login rejected", "user_id", u.ID)
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	token, expires, err := s.tokens.Issue(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expires, User: u}, nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*user.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	refs, err := s.orderRepo.CountByUser(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return user.ErrUserInUse{UserID: id}
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted", "user_id", id)
	return nil
}
