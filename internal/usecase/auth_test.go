package usecase

import (
	"context"
	"fmt"
	"testing"

	domainErrors "github.com/polkiloo/megano/internal/domain/errors"
	"github.com/polkiloo/megano/internal/domain/model"
	pkgAuth "github.com/polkiloo/megano/internal/pkg/auth"
	testhelpers "github.com/polkiloo/megano/internal/test"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(userID int64) (string, error) {
			return fmt.Sprintf("token-%d", userID), nil
		},
		ParseFn: func(token string) (int64, error) {
			var id int64
			if _, err := fmt.Sscanf(token, "token-%d", &id); err != nil {
				return 0, pkgAuth.ErrInvalidToken
			}
			return id, nil
		},
	}
}

func TestAuthRegisterAndAuthenticate(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(users, testhelpers.HasherStub{}, newStrategyStub())

	user, token, err := uc.Register(context.Background(), "Alice", "alice", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != fmt.Sprintf("token-%d", user.ID) {
		t.Fatalf("unexpected token %q", token)
	}

	if _, _, err := uc.Register(context.Background(), "Alice", "alice", "secret"); err != domainErrors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	_, token, err = uc.Authenticate(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parsed, err := uc.ParseToken(token)
	if err != nil || parsed != user.ID {
		t.Fatalf("token round trip failed: id=%d err=%v", parsed, err)
	}
}

func TestAuthRejectsBlankCredentials(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())

	if _, _, err := uc.Register(context.Background(), "", "  ", "secret"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "alice", ""); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(users, testhelpers.HasherStub{}, newStrategyStub())

	if _, _, err := uc.Register(context.Background(), "Alice", "alice", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "alice", "wrong"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "ghost", "secret"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(users, testhelpers.HasherStub{}, newStrategyStub())

	user, _, err := uc.Register(context.Background(), "Alice", "alice", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uc.ChangePassword(context.Background(), user.ID, "wrong", "next"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := uc.ChangePassword(context.Background(), user.ID, "secret", "next"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "alice", "next"); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(users, testhelpers.HasherStub{}, newStrategyStub())

	user, _, err := uc.Register(context.Background(), "Alice", "alice", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := uc.UpdateProfile(context.Background(), model.Profile{
		UserID: user.ID, FullName: "Alice Liddell", Email: "alice@example.com", Phone: "+100",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FullName != "Alice Liddell" || updated.Email != "alice@example.com" {
		t.Fatalf("unexpected profile: %+v", updated)
	}

	stored, err := uc.Profile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Phone != "+100" {
		t.Fatalf("unexpected phone: %q", stored.Phone)
	}
}
