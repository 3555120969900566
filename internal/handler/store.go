package handler

import (
	"context"
	"time"

	"github.com/iliyamo/movie-ticket-cms/internal/model"
)

// The interfaces below are the subsets of the repositories each handler
// needs; *repository.XRepo values satisfy them.

type MovieStore interface {
	List(ctx context.Context, active *bool) ([]model.Movie, error)
	Latest(ctx context.Context, limit int) ([]model.Movie, error)
	GetByID(ctx context.Context, id string) (model.Movie, error)
	Create(ctx context.Context, m model.Movie) (model.Movie, error)
	Update(ctx context.Context, id string, m model.Movie, setActive *bool) (model.Movie, error)
	SetActive(ctx context.Context, id string, active bool) (model.Movie, error)
}

type AccountStore interface {
	Create(ctx context.Context, email, password string, meta model.Metadata, cost int) (model.Account, error)
	GetByEmail(ctx context.Context, email string) (model.Account, error)
	GetByID(ctx context.Context, id string) (model.Account, error)
	UpdateMetadata(ctx context.Context, id string, meta model.Metadata) error
}

type ProfileStore interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	SetRole(ctx context.Context, id string, role model.Role) error
	UpdateContact(ctx context.Context, id string, fullName, phone *string) error
}

type TokenStore interface {
	StoreRefresh(ctx context.Context, accountID, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (string, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForAccount(ctx context.Context, accountID string) error
}

// CachePurger drops cached public responses after a catalog write.
type CachePurger func(ctx context.Context) error
