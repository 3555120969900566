package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/movie-ticket-cms/internal/model"
	"github.com/iliyamo/movie-ticket-cms/internal/utils"
)

// ErrAccountNotFound is returned when no account matches the lookup.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepo persists credentials and the metadata blob of each identity.
type AccountRepo struct{ db *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{db: db} }

const accountColumns = "id, email, password_hash, metadata, created_at, updated_at"

// Create hashes password, inserts a new account with a fresh UUID and
// returns the stored row.  A duplicate email yields ErrEmailExists.
func (r *AccountRepo) Create(ctx context.Context, email, password string, meta model.Metadata, cost int) (model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.Account{}, err
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return model.Account{}, fmt.Errorf("encode metadata: %w", err)
	}
	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO accounts (id, email, password_hash, metadata) VALUES (?,?,?,?)",
		id, email, hash, string(metaJSON)); err != nil {
		if isDuplicateKey(err) {
			return model.Account{}, ErrEmailExists
		}
		return model.Account{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByEmail fetches an account by normalized email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := r.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE email=? LIMIT 1", email)
	return scanAccount(row)
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (model.Account, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id=? LIMIT 1", id)
	return scanAccount(row)
}

// UpdateMetadata replaces the metadata blob of an account.
func (r *AccountRepo) UpdateMetadata(ctx context.Context, id string, meta model.Metadata) error {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE accounts SET metadata=? WHERE id=?", string(metaJSON), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func scanAccount(s rowScanner) (model.Account, error) {
	var (
		a    model.Account
		meta []byte
	)
	if err := s.Scan(&a.ID, &a.Email, &a.PasswordHash, &meta, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, ErrAccountNotFound
		}
		return model.Account{}, err
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &a.Metadata); err != nil {
			return model.Account{}, fmt.Errorf("decode metadata: %w", err)
		}
	}
	return a, nil
}
