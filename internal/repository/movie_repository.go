// Package repository contains data access logic separated from HTTP handlers.
// This file holds the movie catalog queries.  Movies are never removed by
// the API: deletion flips is_active to false, and public listings only
// return active rows.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/movie-ticket-cms/internal/model"
)

// ErrMovieNotFound is returned when a movie cannot be found in the DB.
var ErrMovieNotFound = errors.New("movie not found")

// releaseDateLayout is the DATE column layout.
const releaseDateLayout = "2006-01-02"

// `cast` is quoted because it collides with the SQL CAST function name.
const movieColumns = "id, title, description, image_url, backdrop_url, trailer_url, duration, rating, " +
	"release_date, director, `cast`, genres, is_active, created_at, updated_at"

// MovieRepo encapsulates all database queries related to movies.
type MovieRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// List returns movies newest first.  When active is non-nil only rows
// whose is_active matches it are returned.
func (r *MovieRepo) List(ctx context.Context, active *bool) ([]model.Movie, error) {
	q := "SELECT " + movieColumns + " FROM movies"
	var args []any
	if active != nil {
		q += " WHERE is_active = ?"
		args = append(args, *active)
	}
	q += " ORDER BY created_at DESC"
	return r.query(ctx, q, args...)
}

// Latest returns up to limit active movies, newest first.
func (r *MovieRepo) Latest(ctx context.Context, limit int) ([]model.Movie, error) {
	const q = "SELECT " + movieColumns + " FROM movies WHERE is_active = TRUE ORDER BY created_at DESC LIMIT ?"
	return r.query(ctx, q, limit)
}

// GetByID fetches a movie by id.  It returns ErrMovieNotFound if no row
// is found.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (model.Movie, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+movieColumns+" FROM movies WHERE id = ?", id)
	m, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, ErrMovieNotFound
	}
	return m, err
}

// Create inserts m with a freshly generated id and returns the stored row,
// including database defaults for the timestamps.
func (r *MovieRepo) Create(ctx context.Context, m model.Movie) (model.Movie, error) {
	cast, genres, err := encodeLists(m)
	if err != nil {
		return model.Movie{}, err
	}
	m.ID = uuid.NewString()
	const q = "INSERT INTO movies (id, title, description, image_url, backdrop_url, trailer_url, duration, rating, " +
		"release_date, director, `cast`, genres, is_active) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)"
	if _, err := r.db.ExecContext(ctx, q,
		m.ID, m.Title, m.Description, m.ImageURL, m.BackdropURL, m.TrailerURL, m.Duration, m.Rating,
		m.ReleaseDate, m.Director, cast, genres, m.IsActive); err != nil {
		return model.Movie{}, err
	}
	return r.GetByID(ctx, m.ID)
}

// Update overwrites the editable columns of the movie identified by id.
// is_active is only written when setActive is non-nil.
func (r *MovieRepo) Update(ctx context.Context, id string, m model.Movie, setActive *bool) (model.Movie, error) {
	cast, genres, err := encodeLists(m)
	if err != nil {
		return model.Movie{}, err
	}
	q := "UPDATE movies SET title = ?, description = ?, image_url = ?, backdrop_url = ?, trailer_url = ?, " +
		"duration = ?, rating = ?, release_date = ?, director = ?, `cast` = ?, genres = ?"
	args := []any{m.Title, m.Description, m.ImageURL, m.BackdropURL, m.TrailerURL,
		m.Duration, m.Rating, m.ReleaseDate, m.Director, cast, genres}
	if setActive != nil {
		q += ", is_active = ?"
		args = append(args, *setActive)
	}
	q += " WHERE id = ?"
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return model.Movie{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Movie{}, ErrMovieNotFound
	}
	return r.GetByID(ctx, id)
}

// SetActive flips the soft-delete flag and returns the updated row.
func (r *MovieRepo) SetActive(ctx context.Context, id string, active bool) (model.Movie, error) {
	res, err := r.db.ExecContext(ctx, "UPDATE movies SET is_active = ? WHERE id = ?", active, id)
	if err != nil {
		return model.Movie{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Movie{}, ErrMovieNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *MovieRepo) query(ctx context.Context, q string, args ...any) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanMovie(s rowScanner) (model.Movie, error) {
	var (
		m                                   model.Movie
		desc, image, backdrop, trailer, dir sql.NullString
		duration                            sql.NullInt64
		rating                              sql.NullFloat64
		release                             sql.NullTime
		castJSON, genresJSON                []byte
	)
	if err := s.Scan(&m.ID, &m.Title, &desc, &image, &backdrop, &trailer, &duration, &rating,
		&release, &dir, &castJSON, &genresJSON, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return model.Movie{}, err
	}
	m.Description = nullStringPtr(desc)
	m.ImageURL = nullStringPtr(image)
	m.BackdropURL = nullStringPtr(backdrop)
	m.TrailerURL = nullStringPtr(trailer)
	m.Director = nullStringPtr(dir)
	if duration.Valid {
		d := int(duration.Int64)
		m.Duration = &d
	}
	if rating.Valid {
		v := rating.Float64
		m.Rating = &v
	}
	if release.Valid {
		d := release.Time.In(time.UTC).Format(releaseDateLayout)
		m.ReleaseDate = &d
	}
	var err error
	if m.Cast, err = decodeList(castJSON); err != nil {
		return model.Movie{}, fmt.Errorf("decode cast: %w", err)
	}
	if m.Genres, err = decodeList(genresJSON); err != nil {
		return model.Movie{}, fmt.Errorf("decode genres: %w", err)
	}
	return m, nil
}

func encodeLists(m model.Movie) (cast, genres string, err error) {
	c, err := json.Marshal(nonNil(m.Cast))
	if err != nil {
		return "", "", err
	}
	g, err := json.Marshal(nonNil(m.Genres))
	if err != nil {
		return "", "", err
	}
	return string(c), string(g), nil
}

func decodeList(raw []byte) ([]string, error) {
	out := []string{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil { // JSON null
		out = []string{}
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
