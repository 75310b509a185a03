package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/vkportfolio/service-core-go/internal/user"
	userrepo "github.com/vkportfolio/service-core-go/internal/user/repo"
	"github.com/vkportfolio/service-core-go/pkg/database"
	"github.com/vkportfolio/service-core-go/pkg/utilities"
)

const (
	defaultAdminEmail    = "admin@portfolio.com"
	defaultAdminPassword = "admin123"
)

// Seeds the initial admin account. Safe to run repeatedly: an existing
// admin is left untouched.
func main() {
	_ = godotenv.Load()

	lg, err := utilities.InitLogger(utilities.LoggerConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()
	sugar := lg.Sugar()

	cfg := database.ConfigFromEnv()
	client, db, err := database.Connect(cfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	repo := userrepo.NewUserRepo(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		sugar.Fatalf("ensure indexes: %v", err)
	}

	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	if email == "" {
		email = defaultAdminEmail
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = defaultAdminPassword
	}

	if existing, err := repo.GetByEmail(ctx, email); err == nil && existing != nil {
		sugar.Infow("admin user already exists", "email", email)
		return
	}

	svc := user.NewService(repo, nil)
	u, err := svc.CreateUser(ctx, "Admin", email, password, "admin", true)
	if err != nil {
		sugar.Fatalf("create admin user: %v", err)
	}

	sugar.Infow("admin user created", "email", u.Email, "id", u.ID.Hex())
	sugar.Warn("change the admin password immediately after first login")
}
