package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/isha-gupta80/loomaproject2222/internal/crypto"
	"github.com/isha-gupta80/loomaproject2222/internal/model"
	"github.com/isha-gupta80/loomaproject2222/internal/store"
)

// Service owns users and their sessions. Usernames and emails are
// stored lowercase; password hashes never leave the service.
type Service struct {
	store      *store.Store
	sessionTTL time.Duration
	now        func() time.Time
}

func New(st *store.Store, sessionTTL time.Duration) *Service {
	return &Service{
		store:      st,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

func (s *Service) CreateUser(ctx context.Context, username, email, password string, role model.Role) (model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return model.User{}, model.ErrValidation
	}
	if role == "" {
		role = model.RoleViewer
	}
	if !model.ValidRole(role) {
		return model.User{}, model.ErrValidation
	}

	// Two independent lookups, as username and email are each unique.
	if _, err := s.userBy(ctx, "username", username); err == nil {
		return model.User{}, model.ErrDuplicateIdentity
	} else if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, storeErr(err)
	}
	if _, err := s.userBy(ctx, "email", email); err == nil {
		return model.User{}, model.ErrDuplicateIdentity
	} else if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, storeErr(err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    model.At(s.now()),
	}
	if err := s.store.Users.Insert(ctx, user); err != nil {
		return model.User{}, storeErr(err)
	}
	return user, nil
}

// Authenticate verifies credentials and issues a session. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (model.Session, model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.userBy(ctx, "username", username)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, model.User{}, model.ErrAuthFailure
	}
	if err != nil {
		return model.Session{}, model.User{}, storeErr(err)
	}
	if !crypto.CheckPassword(user.PasswordHash, password) {
		return model.Session{}, model.User{}, model.ErrAuthFailure
	}

	lastLogin := model.At(s.now())
	user.LastLogin = &lastLogin
	if _, err := s.store.Users.ReplaceOne(ctx, store.ByID(user.ID), user); err != nil {
		return model.Session{}, model.User{}, storeErr(err)
	}

	session, err := s.CreateSession(ctx, user.ID)
	if err != nil {
		return model.Session{}, model.User{}, err
	}
	return session, sanitize(user), nil
}

// UpdateRole is idempotent: assigning the current role again still
// reports success.
func (s *Service) UpdateRole(ctx context.Context, userID string, role model.Role) (bool, error) {
	if !model.ValidRole(role) {
		return false, model.ErrValidation
	}
	user, err := s.store.Users.FindOne(ctx, store.ByID(userID))
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storeErr(err)
	}
	user.Role = role
	if _, err := s.store.Users.ReplaceOne(ctx, store.ByID(userID), user); err != nil {
		return false, storeErr(err)
	}
	return true, nil
}

func (s *Service) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return model.ErrValidation
	}
	user, err := s.store.Users.FindOne(ctx, store.ByID(userID))
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrNotFound
	}
	if err != nil {
		return storeErr(err)
	}
	if !crypto.CheckPassword(user.PasswordHash, oldPassword) {
		return model.ErrAuthFailure
	}
	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	if _, err := s.store.Users.ReplaceOne(ctx, store.ByID(userID), user); err != nil {
		return storeErr(err)
	}
	return nil
}

// DeleteUser revokes every session for the user before removing the
// record, so no orphaned session can outlive its owner.
func (s *Service) DeleteUser(ctx context.Context, userID string) (bool, error) {
	if err := s.RevokeUserSessions(ctx, userID); err != nil {
		return false, err
	}
	deleted, err := s.store.Users.DeleteOne(ctx, store.ByID(userID))
	if err != nil {
		return false, storeErr(err)
	}
	return deleted, nil
}

// ListUsers returns every user with the password hash stripped.
func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.store.Users.Find(ctx, store.Filter{})
	if err != nil {
		return nil, storeErr(err)
	}
	for i := range users {
		users[i] = sanitize(users[i])
	}
	return users, nil
}

// UserFromSession resolves a session token to its owner.
func (s *Service) UserFromSession(ctx context.Context, token string) (model.User, error) {
	session, err := s.ValidateSession(ctx, token)
	if err != nil {
		return model.User{}, err
	}
	user, err := s.store.Users.FindOne(ctx, store.ByID(session.UserID))
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrNotFound
	}
	if err != nil {
		return model.User{}, storeErr(err)
	}
	return sanitize(user), nil
}

func (s *Service) userBy(ctx context.Context, field, value string) (model.User, error) {
	return s.store.Users.FindOne(ctx, store.Filter{Eq: map[string]string{field: value}})
}

func sanitize(user model.User) model.User {
	user.PasswordHash = ""
	return user
}

func storeErr(err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
}
