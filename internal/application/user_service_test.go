package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/helliomastic/Movie-Final-Recom/internal/domain/repository"
	"github.com/helliomastic/Movie-Final-Recom/pkg/helpers"
)

func newTestUserService() (*UserService, *fakeUserRepo, *fakeSessionStore, *helpers.JWTManager) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	svc := NewUserService(repo, jwt, sessions, nil, nil, false, 24*time.Hour)
	return svc, repo, sessions, jwt
}

func TestRegisterStoresVerifiableCredential(t *testing.T) {
	svc, repo, _, _ := newTestUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	stored, err := repo.GetByEmail("ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if stored.PasswordHash == "hunter2hunter2" {
		t.Fatalf("plaintext password must not be stored")
	}
	if !helpers.CompareHashAndPassword(stored.PasswordHash, "hunter2hunter2") {
		t.Fatalf("stored credential must verify against the password")
	}
	if helpers.CompareHashAndPassword(stored.PasswordHash, "not-the-password") {
		t.Fatalf("stored credential must not verify against another string")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, repo, _, _ := newTestUserService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(ctx, "Imposter", "ada@example.com", "different-pass")
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("exactly one user must be stored, got %d", len(repo.users))
	}
}

func TestLoginIssuesSessionAndToken(t *testing.T) {
	svc, _, sessions, jwt := newTestUserService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	u, token, exp, err := svc.Login(ctx, "ada@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("token expiry must be in the future")
	}

	claims, err := jwt.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != u.ID {
		t.Fatalf("token uid = %d, want %d", claims.UserID, u.ID)
	}

	sess, err := sessions.Get(ctx, u.ID)
	if err != nil || sess == nil {
		t.Fatalf("expected a stored session, got %v (%v)", sess, err)
	}
	if sess.Email != "ada@example.com" || sess.SID != claims.SessionID {
		t.Fatalf("session does not match token: %+v", sess)
	}
}

func TestLoginWrongPasswordLeavesNoSession(t *testing.T) {
	svc, _, sessions, _ := newTestUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, _, err := svc.Login(ctx, "ada@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	// Unknown email must yield the same error so callers cannot tell which field failed.
	if _, _, _, err := svc.Login(ctx, "nobody@example.com", "hunter2hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if sess, _ := sessions.Get(ctx, u.ID); sess != nil {
		t.Fatalf("no session must exist after failed login")
	}
}

func TestLogoutDeletesSession(t *testing.T) {
	svc, _, sessions, _ := newTestUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "ada@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(ctx, u.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if sess, _ := sessions.Get(ctx, u.ID); sess != nil {
		t.Fatalf("session must be gone after logout")
	}
}
