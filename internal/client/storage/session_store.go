package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/onboard/internal/client/models"
	"github.com/dmitrijs2005/onboard/internal/client/repositories/kv"
	"github.com/dmitrijs2005/onboard/internal/dbx"
)

const (
	KeyToken          = "token"
	KeyUser           = "user"
	InterestKeyPrefix = "interests_"
)

var (
	// ErrNoSession is returned by LoadSession when no credential is stored.
	ErrNoSession = errors.New("no stored session")
	// ErrCorrupted is returned when a stored value cannot be decoded.
	ErrCorrupted = errors.New("stored value corrupted")
)

// InterestKey is the storage key of userID's interest selection.
func InterestKey(userID string) string {
	return InterestKeyPrefix + userID
}

// SessionStore persists the credential and cached profile, and the interest
// selection of every user that signed in on this machine.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) repo(tx dbx.DBTX) kv.Repository {
	return kv.NewSQLiteRepository(tx)
}

// SaveSession writes token and the serialized session in one transaction.
func (s *SessionStore) SaveSession(ctx context.Context, token string, session models.Session) error {
	if token == "" {
		return fmt.Errorf("save session: empty token")
	}
	user, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("save session: marshal user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.Set(ctx, KeyToken, []byte(token)); err != nil {
			return err
		}
		return r.Set(ctx, KeyUser, user)
	})
}

// LoadSession returns the stored token and, when present, the cached
// session. It returns ErrNoSession when there is no token and ErrCorrupted
// (together with the token) when the cached user record cannot be parsed.
// A token without a user record yields (token, nil, nil).
func (s *SessionStore) LoadSession(ctx context.Context) (string, *models.Session, error) {
	r := s.repo(s.db)

	rawToken, err := r.Get(ctx, KeyToken)
	if err != nil {
		return "", nil, err
	}
	token := normalizeToken(rawToken)
	if token == "" {
		return "", nil, ErrNoSession
	}

	rawUser, err := r.Get(ctx, KeyUser)
	if err != nil {
		return "", nil, err
	}
	if rawUser == nil {
		return token, nil, nil
	}

	var session models.Session
	if err := json.Unmarshal(rawUser, &session); err != nil {
		return token, nil, fmt.Errorf("%w: user: %v", ErrCorrupted, err)
	}
	if session.UserID == "" {
		return token, nil, fmt.Errorf("%w: user without id", ErrCorrupted)
	}
	return token, &session, nil
}

// ClearSession removes token and user in one transaction. Interest
// selections are kept so they survive the next login.
func (s *SessionStore) ClearSession(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.Delete(ctx, KeyToken); err != nil {
			return err
		}
		return r.Delete(ctx, KeyUser)
	})
}

// LoadInterests returns the selected interest ids of userID. A missing key
// is an empty selection.
func (s *SessionStore) LoadInterests(ctx context.Context, userID string) ([]string, error) {
	raw, err := s.repo(s.db).Get(ctx, InterestKey(userID))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupted, InterestKey(userID), err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// SaveInterests overwrites the selection of userID.
func (s *SessionStore) SaveInterests(ctx context.Context, userID string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal interests: %w", err)
	}
	return s.repo(s.db).Set(ctx, InterestKey(userID), raw)
}

// normalizeToken accepts both raw tokens and JSON-quoted ones written by
// older clients.
func normalizeToken(raw []byte) string {
	token := strings.TrimSpace(string(raw))
	if len(token) >= 2 && strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`) {
		if unq, err := strconv.Unquote(token); err == nil {
			return unq
		}
	}
	return token
}
