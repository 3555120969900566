package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/movie-ticket-cms/internal/model"
)

// ErrProfileNotFound is returned when an account has no `users` row.
var ErrProfileNotFound = errors.New("profile not found")

// UserRepo manages profile rows in the `users` table.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = "id, email, full_name, phone, role, created_at, updated_at"

// Create inserts a profile row and returns it as stored.  A second row for
// the same id yields ErrConflict.
func (r *UserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	role := u.Role
	if !role.Valid() {
		role = model.RoleUser
	}
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, email, full_name, phone, role) VALUES (?,?,?,?,?)",
		u.ID, u.Email, u.FullName, u.Phone, string(role)); err != nil {
		if isDuplicateKey(err) {
			return model.User{}, ErrConflict
		}
		return model.User{}, err
	}
	return r.GetByID(ctx, u.ID)
}

// GetByID fetches a profile by account id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrProfileNotFound
	}
	return u, err
}

// List returns every profile, newest first.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SetRole changes the role of a profile.
func (r *UserRepo) SetRole(ctx context.Context, id string, role model.Role) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET role=? WHERE id=?", string(role), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// UpdateContact sets full_name and/or phone.  Nil arguments leave the
// column untouched and empty strings store NULL; when both are nil nothing
// is executed.
func (r *UserRepo) UpdateContact(ctx context.Context, id string, fullName, phone *string) error {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if fullName != nil {
		sets = append(sets, "full_name=?")
		args = append(args, nullIfEmpty(*fullName))
	}
	if phone != nil {
		sets = append(sets, "phone=?")
		args = append(args, nullIfEmpty(*phone))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func scanUser(s rowScanner) (model.User, error) {
	var (
		u               model.User
		fullName, phone sql.NullString
		role            string
	)
	if err := s.Scan(&u.ID, &u.Email, &fullName, &phone, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return model.User{}, err
	}
	u.FullName = nullStringPtr(fullName)
	u.Phone = nullStringPtr(phone)
	u.Role = model.ParseRole(role)
	return u, nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
