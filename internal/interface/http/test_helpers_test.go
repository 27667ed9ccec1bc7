package handlers

import (
	"context"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/helliomastic/Movie-Final-Recom/internal/application"
	"github.com/helliomastic/Movie-Final-Recom/internal/domain/entity"
	"github.com/helliomastic/Movie-Final-Recom/internal/domain/repository"
	"github.com/helliomastic/Movie-Final-Recom/internal/interface/middleware"
	"github.com/helliomastic/Movie-Final-Recom/pkg/helpers"
	"github.com/helliomastic/Movie-Final-Recom/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int64
	users map[string]*entity.User
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
	sessions map[int64]application.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[int64]application.Session)}
}

func (s *fakeSessionStore) Save(_ context.Context, sess application.Session, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = sess
	return nil
}

func (s *fakeSessionStore) Get(_ context.Context, userID int64) (*application.Session, error) {
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

type userFixture struct {
	handler  *UserHandler
	svc      *application.UserService
	repo     *fakeUserRepo
	sessions *fakeSessionStore
	jwt      *helpers.JWTManager
	router   *gin.Engine
}

func newUserFixture() *userFixture {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	svc := application.NewUserService(repo, jwt, sessions, quietLogger(), nil, false, 24*time.Hour)
	h := NewUserHandler(svc, jwt, quietLogger(), "localhost", false)

	r := gin.New()
	r.GET("/", h.Home)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.Register)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
	auth := r.Group("/")
	auth.Use(middleware.Auth(sessions, jwt))
	auth.GET("/dashboard", h.Dashboard)

	return &userFixture{handler: h, svc: svc, repo: repo, sessions: sessions, jwt: jwt, router: r}
}

// issueSession logs the given user in out-of-band and returns the cookie token.
func issueSession(t *testing.T, jwt *helpers.JWTManager, sessions application.SessionStore, u *entity.User) string {
	t.Helper()
	sid := "sid-test"
	token, _, err := jwt.GenerateAccessToken(u.ID, sid)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	err = sessions.Save(context.Background(), application.Session{
		UserID: u.ID, Email: u.Email, Name: u.Name, SID: sid, CreatedAt: time.Now(),
	}, time.Hour)
	if err != nil {
		t.Fatalf("session save: %v", err)
	}
	return token
}

func sessionCookie(token string) *http.Cookie {
	return &http.Cookie{Name: helpers.SessionCookieName, Value: token}
}

func mustStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("status = %d, want %d", got, want)
	}
}
