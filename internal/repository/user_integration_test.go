//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/stockroom/stockroom/internal/model"
	"github.com/stockroom/stockroom/internal/testutil"
)

func setupUserRepo(t *testing.T) (*Repository, context.Context) {
	t.Helper()

	databaseURL := testutil.RequireEnv(t, "DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	repo, err := New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("failed to acquire DB lock: %v", err)
	}
	t.Cleanup(func() { _ = unlock() })

	if err := testutil.ResetUsersSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("failed to reset users schema: %v", err)
	}

	return repo, ctx
}

func newTestUser(email string) *model.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &model.User{
		ID:           ulid.Make().String(),
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$c29tZXNhbHQ$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserCRUD(t *testing.T) {
	repo, ctx := setupUserRepo(t)

	user := newTestUser("alice@example.com")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	t.Run("get_by_email", func(t *testing.T) {
		got, err := repo.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("ID = %q, want %q", got.ID, user.ID)
		}
		if got.PasswordHash != user.PasswordHash {
			t.Error("password hash was not stored verbatim")
		}
	})

	t.Run("get_by_id", func(t *testing.T) {
		got, err := repo.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID: %v", err)
		}
		if got.Email != user.Email {
			t.Errorf("Email = %q, want %q", got.Email, user.Email)
		}
	})

	t.Run("email_not_found", func(t *testing.T) {
		_, err := repo.GetUserByEmail(ctx, "nobody@example.com")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("err = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("id_not_found", func(t *testing.T) {
		_, err := repo.GetUserByID(ctx, ulid.Make().String())
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("err = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		dup := newTestUser("alice@example.com")
		err := repo.CreateUser(ctx, dup)
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("err = %v, want ErrEmailExists", err)
		}
	})
}
