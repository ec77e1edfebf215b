package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/isha-gupta80/loomaproject2222/internal/crypto"
	"github.com/isha-gupta80/loomaproject2222/internal/model"
	"github.com/isha-gupta80/loomaproject2222/internal/store"
)

func (s *Service) CreateSession(ctx context.Context, userID string) (model.Session, error) {
	token, err := crypto.NewSessionToken()
	if err != nil {
		return model.Session{}, fmt.Errorf("session token: %w", err)
	}

	now := s.now()
	session := model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: model.At(now.Add(s.sessionTTL)),
		CreatedAt: model.At(now),
	}
	if err := s.store.Sessions.Insert(ctx, session); err != nil {
		return model.Session{}, storeErr(err)
	}
	return session, nil
}

// ValidateSession returns the session only while it is unexpired.
// Expired sessions still physically present are reported as not found;
// the purge job removes them eventually.
func (s *Service) ValidateSession(ctx context.Context, token string) (model.Session, error) {
	session, err := s.store.Sessions.FindOne(ctx, store.Filter{
		Eq:    map[string]string{"token": token},
		After: map[string]time.Time{"expiresAt": s.now()},
	})
	if err != nil {
		return model.Session{}, storeErr(err)
	}
	return session, nil
}

// RevokeSession deletes the session for token. Revoking an unknown
// token is not an error.
func (s *Service) RevokeSession(ctx context.Context, token string) (bool, error) {
	deleted, err := s.store.Sessions.DeleteOne(ctx, store.Filter{Eq: map[string]string{"token": token}})
	if err != nil {
		return false, storeErr(err)
	}
	return deleted, nil
}

func (s *Service) RevokeUserSessions(ctx context.Context, userID string) error {
	if _, err := s.store.Sessions.DeleteMany(ctx, store.Filter{Eq: map[string]string{"userId": userID}}); err != nil {
		return storeErr(err)
	}
	return nil
}
