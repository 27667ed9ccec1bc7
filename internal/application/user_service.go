package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/helliomastic/Movie-Final-Recom/internal/domain/entity"
	repo "github.com/helliomastic/Movie-Final-Recom/internal/domain/repository"
	"github.com/helliomastic/Movie-Final-Recom/pkg/helpers"
	"github.com/helliomastic/Movie-Final-Recom/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// Session is the server-side state bound to one logged-in browser.
type Session struct {
	UserID    int64
	Email     string
	Name      string
	SID       string
	CreatedAt time.Time
}

// SessionStore is injected so handlers and middleware never touch redis directly.
type SessionStore interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	// Get returns (nil, nil) when no session exists for the user.
	Get(ctx context.Context, userID int64) (*Session, error)
	Delete(ctx context.Context, userID int64) error
}

type UserService struct {
	Repo       repo.UserRepository
	JWT        *helpers.JWTManager
	Sessions   SessionStore
	Logger     *logrus.Logger
	Pub        *helpers.RabbitPublisher
	MailSend   bool
	SessionTTL time.Duration
}

func NewUserService(repo repo.UserRepository, jwt *helpers.JWTManager, sessions SessionStore, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailSend bool, sessionTTL time.Duration) *UserService {
	return &UserService{
		Repo:       repo,
		JWT:        jwt,
		Sessions:   sessions,
		Logger:     logger,
		Pub:        pub,
		MailSend:   mailSend,
		SessionTTL: sessionTTL,
	}
}

// Register hashes the password and stores the user. The pre-insert lookup only
// produces a friendlier error; the unique index closes the race on insert.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	if existing, err := s.Repo.GetByEmail(email); err == nil && existing != nil {
		return nil, repo.ErrDuplicateEmail
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}

	s.enqueueWelcome(ctx, u)
	return u, nil
}

func (s *UserService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailSend {
		return
	}
	job := mailer.EmailJob{
		To:      u.Email,
		Subject: "Welcome to the movie catalog",
		Text:    "Hi " + u.Name + ",\n\nYour account is ready. Log in to browse the catalog and get recommendations.",
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("failed to enqueue welcome email")
	}
}

// Authenticate validates email/password without issuing a session.
// Lookup misses and password mismatches collapse into the same error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and issues a signed session token plus a server-side session.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	sid := uuid.NewString()
	token, exp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return nil, "", time.Time{}, err
	}

	sess := Session{UserID: u.ID, Email: u.Email, Name: u.Name, SID: sid, CreatedAt: time.Now().UTC()}
	if err := s.Sessions.Save(ctx, sess, s.SessionTTL); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("save session failed")
		}
		return nil, "", time.Time{}, err
	}

	return u, token, exp, nil
}

// Logout drops the server-side session; the cookie is cleared by the handler.
func (s *UserService) Logout(ctx context.Context, userID int64) error {
	return s.Sessions.Delete(ctx, userID)
}

func (s *UserService) GetProfile(userID int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
