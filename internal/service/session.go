// Package service holds the logic shared by several handlers: resolving
// the caller's session and publishing catalog events.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/iliyamo/movie-ticket-cms/internal/model"
	"github.com/iliyamo/movie-ticket-cms/internal/repository"
)

// ErrNoSession means the bearer does not map to a live account and the
// caller must be treated as signed out.
var ErrNoSession = errors.New("no session")

// AccountStore is the subset of the account repository the resolver uses.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (model.Account, error)
}

// ProfileStore is the subset of the profile repository the resolver uses.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
}

// Session is the resolved identity behind a request.
type Session struct {
	Account model.Account
	Profile model.User
	// Synthesized is set when Profile was built from account metadata
	// because the stored row could not be read or created.
	Synthesized bool
}

// IsAdmin reports whether the session may use admin operations.  Only a
// stored profile can carry the admin role.
func (s Session) IsAdmin() bool {
	return !s.Synthesized && s.Profile.IsAdmin()
}

// SessionResolver maps an authenticated account id to a Session,
// bootstrapping the profile row on first use.
type SessionResolver struct {
	accounts AccountStore
	profiles ProfileStore
}

func NewSessionResolver(accounts AccountStore, profiles ProfileStore) *SessionResolver {
	return &SessionResolver{accounts: accounts, profiles: profiles}
}

// Resolve loads the account and its profile.  A missing account yields
// ErrNoSession; any other account lookup failure is returned as is.
func (r *SessionResolver) Resolve(ctx context.Context, accountID string) (Session, error) {
	if accountID == "" {
		return Session{}, ErrNoSession
	}
	acc, err := r.accounts.GetByID(ctx, accountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, err
	}

	profile, err := r.profiles.GetByID(ctx, accountID)
	if err == nil {
		return Session{Account: acc, Profile: profile}, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		slog.Warn("session: profile lookup failed; using metadata", "account_id", accountID, "err", err)
		return synthesize(acc), nil
	}

	// First visit: create the row from metadata.
	profile, err = r.profiles.Create(ctx, model.ProfileFromAccount(acc))
	if errors.Is(err, repository.ErrConflict) {
		// a concurrent request created it first
		profile, err = r.profiles.GetByID(ctx, accountID)
	}
	if err != nil {
		slog.Warn("session: profile bootstrap failed; using metadata", "account_id", accountID, "err", err)
		return synthesize(acc), nil
	}
	slog.Info("session: profile created", "account_id", accountID, "role", profile.Role)
	return Session{Account: acc, Profile: profile}, nil
}

func synthesize(acc model.Account) Session {
	return Session{Account: acc, Profile: model.ProfileFromAccount(acc), Synthesized: true}
}
