// Package main runs simple-admin without a database using in-memory repositories.
// This is useful for:
// - Quick development and testing
// - Demo/prototype environments
// - Learning the API without database setup
//
// Note: All data is lost when the server stops. For production, use cmd/admin with PostgreSQL.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/chi-demo/app"
	"github.com/tendant/simple-admin/pkg/bootstrap"
	"github.com/tendant/simple-admin/pkg/password"
	"github.com/tendant/simple-admin/pkg/role"
	roleapi "github.com/tendant/simple-admin/pkg/role/api"
	"github.com/tendant/simple-admin/pkg/user"
	userapi "github.com/tendant/simple-admin/pkg/user/api"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting in-memory admin service (no database required)")

	roleRepo := role.NewInMemoryRoleRepository()
	userRepo := user.NewInMemoryUserRepository(roleRepo)

	roleService := role.NewRoleService(roleRepo)
	userService := user.NewUserService(userRepo, roleService)
	hasher := password.NewBcryptHasher()

	seedConfig := bootstrap.SeedConfig{}
	cleanenv.ReadEnv(&seedConfig)

	seeder := bootstrap.NewSeeder(roleService, userService, hasher, seedConfig)
	if err := seeder.Seed(context.Background()); err != nil {
		slog.Error("Failed to seed baseline roles and accounts", "err", err)
		os.Exit(-1)
	}

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)

	roleHandler := roleapi.NewHandler(roleService)
	userHandler := userapi.NewHandler(userService, hasher)

	server.R.Route("/api/admin", func(r chi.Router) {
		roleHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r)
	})

	server.Run()
}
