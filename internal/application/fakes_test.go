package application

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/helliomastic/Movie-Final-Recom/internal/domain/entity"
	"github.com/helliomastic/Movie-Final-Recom/internal/domain/repository"
	"github.com/helliomastic/Movie-Final-Recom/internal/infrastructure/tmdb"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int64
	users map[string]*entity.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	r.seq++
	u.ID = r.seq
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[int64]Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[int64]Session)}
}

func (s *fakeSessionStore) Save(_ context.Context, sess Session, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = sess
	return nil
}

func (s *fakeSessionStore) Get(_ context.Context, userID int64) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		return &sess, nil
	}
	return nil, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

type fakeMovieRepo struct {
	mu     sync.Mutex
	seq    int64
	movies []*entity.Movie
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{}
}

func (r *fakeMovieRepo) Create(m *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	m.ID = r.seq
	m.CreatedAt = time.Now()
	cp := *m
	r.movies = append(r.movies, &cp)
	return nil
}

func (r *fakeMovieRepo) GetByID(id int64) (*entity.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movies {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMovieRepo) List() ([]*entity.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

type fakePosterStore struct {
	mu    sync.Mutex
	saved []string // object paths
}

func (p *fakePosterStore) Save(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saved = append(p.saved, objectPath)
	return "https://storage.example.com/" + objectPath, nil
}

type fakeRecommender struct {
	recs []tmdb.Recommendation
	err  error
}

func (f *fakeRecommender) Search(_ context.Context, _ string) ([]tmdb.Recommendation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.recs, nil
}
