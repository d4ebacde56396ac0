// seed inserts development sample data for local testing. Run via
// go run ./cmd/seed. Idempotent: skips inserts if the dev user
// (dev@example.com) already exists.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	accountdomain "canopy/backend/internal/account/domain"
	"canopy/backend/internal/account/password"
	accountrepo "canopy/backend/internal/account/repository"
	"canopy/backend/internal/config"
	"canopy/backend/internal/db"
	userdomain "canopy/backend/internal/user/domain"
	userrepo "canopy/backend/internal/user/repository"
	workspacedomain "canopy/backend/internal/workspace/domain"
	workspacerepo "canopy/backend/internal/workspace/repository"
	memberdomain "canopy/backend/internal/workspacemember/domain"
	memberrepo "canopy/backend/internal/workspacemember/repository"
)

const (
	devUserEmail   = "dev@example.com"
	devUser2Email  = "dev2@example.com"
	devPassword    = "password123"
	devWorkspace   = "Dev Workspace"
	seedBcryptCost = 10
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		fail("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	ctx := context.Background()
	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		fail("connect: %v", err)
	}
	defer pool.Close()

	users := userrepo.NewPostgresRepository(pool)
	accounts := accountrepo.NewPostgresRepository(pool)
	workspaces := workspacerepo.NewPostgresRepository(pool)
	members := memberrepo.NewPostgresRepository(pool)

	existing, err := users.GetUserByEmail(ctx, devUserEmail)
	if err != nil {
		fail("lookup dev user: %v", err)
	}
	if existing != nil {
		fmt.Println("seed: dev user already present, nothing to do")
		return
	}

	hasher := password.NewHasher(seedBcryptCost)
	hash, err := hasher.Hash([]byte(devPassword))
	if err != nil {
		fail("hash password: %v", err)
	}

	now := time.Now().UTC()
	owner := &userdomain.User{
		ID:        uuid.NewString(),
		FirstName: "Dev",
		LastName:  "One",
		Email:     devUserEmail,
		CreatedAt: now,
		UpdatedAt: now,
	}
	second := &userdomain.User{
		ID:        uuid.NewString(),
		FirstName: "Dev",
		LastName:  "Two",
		Email:     devUser2Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, u := range []*userdomain.User{owner, second} {
		if err := users.CreateUser(ctx, u); err != nil {
			fail("create user %s: %v", u.Email, err)
		}
		if err := accounts.CreateAccount(ctx, &accountdomain.Account{
			ID:                uuid.NewString(),
			UserID:            u.ID,
			Provider:          accountdomain.ProviderLocal,
			ProviderAccountID: u.Email,
			PasswordHash:      hash,
			CreatedAt:         now,
			UpdatedAt:         now,
		}); err != nil {
			fail("create account %s: %v", u.Email, err)
		}
	}

	workspace := &workspacedomain.Workspace{
		ID:        uuid.NewString(),
		Name:      devWorkspace,
		UserIDs:   []string{owner.ID},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := workspaces.CreateWorkspace(ctx, workspace); err != nil {
		fail("create workspace: %v", err)
	}
	if err := workspaces.AddUserToWorkspace(ctx, workspace.ID, second.ID); err != nil {
		fail("add user to workspace: %v", err)
	}

	memberships := []struct {
		userID string
		role   memberdomain.Role
	}{
		{owner.ID, memberdomain.RoleOwner},
		{second.ID, memberdomain.RoleMember},
	}
	for _, m := range memberships {
		if err := members.AddMember(ctx, &memberdomain.WorkspaceMember{
			ID:          uuid.NewString(),
			WorkspaceID: workspace.ID,
			UserID:      m.userID,
			Role:        m.role,
			JoinedAt:    now,
			UpdatedAt:   now,
		}); err != nil {
			fail("add member: %v", err)
		}
	}

	fmt.Printf("seed: created users %s / %s (password %q) and workspace %q\n",
		devUserEmail, devUser2Email, devPassword, devWorkspace)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
