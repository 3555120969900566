package handler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/movie-ticket-cms/internal/model"
	"github.com/iliyamo/movie-ticket-cms/internal/queue"
	"github.com/iliyamo/movie-ticket-cms/internal/repository"
	"github.com/iliyamo/movie-ticket-cms/internal/utils"
)

// memMovies is an in-memory MovieStore.  created_at increases with every
// insert so "newest first" is deterministic.
type memMovies struct {
	mu    sync.Mutex
	rows  map[string]model.Movie
	seq   int
	clock time.Time
	err   error
}

func newMemMovies() *memMovies {
	return &memMovies{rows: map[string]model.Movie{}, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (s *memMovies) sorted(filter func(model.Movie) bool) []model.Movie {
	out := []model.Movie{}
	for _, m := range s.rows {
		if filter(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *memMovies) List(_ context.Context, active *bool) ([]model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.sorted(func(m model.Movie) bool { return active == nil || m.IsActive == *active }), nil
}

func (s *memMovies) Latest(_ context.Context, limit int) ([]model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.sorted(func(m model.Movie) bool { return m.IsActive })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memMovies) GetByID(_ context.Context, id string) (model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.rows[id]
	if !ok {
		return model.Movie{}, repository.ErrMovieNotFound
	}
	return m, nil
}

func (s *memMovies) Create(_ context.Context, m model.Movie) (model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return model.Movie{}, s.err
	}
	s.seq++
	s.clock = s.clock.Add(time.Minute)
	m.ID = fmt.Sprintf("m%d", s.seq)
	m.CreatedAt, m.UpdatedAt = s.clock, s.clock
	s.rows[m.ID] = m
	return m, nil
}

func (s *memMovies) Update(_ context.Context, id string, m model.Movie, setActive *bool) (model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.rows[id]
	if !ok {
		return model.Movie{}, repository.ErrMovieNotFound
	}
	m.ID, m.CreatedAt, m.IsActive = id, cur.CreatedAt, cur.IsActive
	if setActive != nil {
		m.IsActive = *setActive
	}
	s.rows[id] = m
	return m, nil
}

func (s *memMovies) SetActive(_ context.Context, id string, active bool) (model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.rows[id]
	if !ok {
		return model.Movie{}, repository.ErrMovieNotFound
	}
	m.IsActive = active
	s.rows[id] = m
	return m, nil
}

// memAccounts is an in-memory AccountStore.
type memAccounts struct {
	mu   sync.Mutex
	rows map[string]model.Account
	seq  int
}

func newMemAccounts() *memAccounts { return &memAccounts{rows: map[string]model.Account{}} }

func (s *memAccounts) Create(_ context.Context, email, password string, meta model.Metadata, cost int) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range s.rows {
		if a.Email == email {
			return model.Account{}, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.Account{}, err
	}
	s.seq++
	a := model.Account{ID: fmt.Sprintf("acc-%d", s.seq), Email: email, PasswordHash: hash, Metadata: meta}
	s.rows[a.ID] = a
	return a, nil
}

func (s *memAccounts) GetByEmail(_ context.Context, email string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range s.rows {
		if a.Email == email {
			return a, nil
		}
	}
	return model.Account{}, repository.ErrAccountNotFound
}

func (s *memAccounts) GetByID(_ context.Context, id string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[id]
	if !ok {
		return model.Account{}, repository.ErrAccountNotFound
	}
	return a, nil
}

func (s *memAccounts) UpdateMetadata(_ context.Context, id string, meta model.Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	a.Metadata = meta
	s.rows[id] = a
	return nil
}

// memProfiles is an in-memory ProfileStore.
type memProfiles struct {
	mu        sync.Mutex
	rows      map[string]model.User
	createErr error
}

func newMemProfiles() *memProfiles { return &memProfiles{rows: map[string]model.User{}} }

func (s *memProfiles) Create(_ context.Context, u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return model.User{}, s.createErr
	}
	if _, ok := s.rows[u.ID]; ok {
		return model.User{}, repository.ErrConflict
	}
	if !u.Role.Valid() {
		u.Role = model.RoleUser
	}
	s.rows[u.ID] = u
	return u, nil
}

func (s *memProfiles) GetByID(_ context.Context, id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.rows[id]
	if !ok {
		return model.User{}, repository.ErrProfileNotFound
	}
	return u, nil
}

func (s *memProfiles) List(context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.User{}
	for _, u := range s.rows {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memProfiles) SetRole(_ context.Context, id string, role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.rows[id]
	if !ok {
		return repository.ErrProfileNotFound
	}
	u.Role = role
	s.rows[id] = u
	return nil
}

func (s *memProfiles) UpdateContact(_ context.Context, id string, fullName, phone *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.rows[id]
	if !ok {
		return repository.ErrProfileNotFound
	}
	if fullName != nil {
		u.FullName = nullable(*fullName)
	}
	if phone != nil {
		u.Phone = nullable(*phone)
	}
	s.rows[id] = u
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// memTokens is an in-memory TokenStore.
type memTokens struct {
	mu      sync.Mutex
	owner   map[string]string
	revoked map[string]bool
}

func newMemTokens() *memTokens {
	return &memTokens{owner: map[string]string{}, revoked: map[string]bool{}}
}

func (s *memTokens) StoreRefresh(_ context.Context, accountID, hash string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner[hash] = accountID
	return nil
}

func (s *memTokens) ValidateRefresh(_ context.Context, hash string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.owner[hash]
	if !ok || s.revoked[hash] {
		return "", repository.ErrInvalidRefresh
	}
	return id, nil
}

func (s *memTokens) RevokeByHash(_ context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[hash] = true
	return nil
}

func (s *memTokens) RevokeAllForAccount(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for h, id := range s.owner {
		if id == accountID {
			s.revoked[h] = true
		}
	}
	return nil
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.MovieEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.MovieEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []queue.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]queue.EventType, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}
