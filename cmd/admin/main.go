package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"
	"github.com/tendant/simple-admin/pkg/bootstrap"
	"github.com/tendant/simple-admin/pkg/config"
	"github.com/tendant/simple-admin/pkg/password"
	"github.com/tendant/simple-admin/pkg/role"
	roleapi "github.com/tendant/simple-admin/pkg/role/api"
	"github.com/tendant/simple-admin/pkg/user"
	userapi "github.com/tendant/simple-admin/pkg/user/api"
)

type Config struct {
	DbConfig   config.DatabaseConfig
	SeedConfig bootstrap.SeedConfig
	AppConfig  app.AppConfig
}

// loadEnvFile loads environment variables from an env file if one exists.
// ENV_FILE overrides the default path. Variables already set in the
// environment win.
func loadEnvFile() {
	envFile := config.GetEnvOrDefault("ENV_FILE", ".env")
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		return
	}
	if err := godotenv.Load(envFile); err != nil {
		slog.Error("Failed to load env file", "file", envFile, "error", err)
		return
	}
	slog.Info("Configuration loaded from env file", "file", envFile)
}

func main() {
	// Create a logger with source enabled
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true, // Enables line number & file path
	}))
	slog.SetDefault(logger)

	loadEnvFile()

	cfg := Config{}
	cleanenv.ReadEnv(&cfg)

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)

	dbConfig := cfg.DbConfig.ToDbConfig()
	pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host,
			"port", dbConfig.Port, "user", dbConfig.User)
		os.Exit(-1)
	}

	roleRepo := role.NewPostgresRoleRepository(pool)
	userRepo := user.NewPostgresUserRepository(pool)

	roleService := role.NewRoleService(roleRepo)
	userService := user.NewUserService(userRepo, roleService)
	hasher := password.NewBcryptHasher()

	seeder := bootstrap.NewSeeder(roleService, userService, hasher, cfg.SeedConfig)
	if err := seeder.Seed(context.Background()); err != nil {
		slog.Error("Failed to seed baseline roles and accounts", "err", err)
		os.Exit(-1)
	}

	roleHandler := roleapi.NewHandler(roleService)
	userHandler := userapi.NewHandler(userService, hasher)

	server.R.Route("/api/admin", func(r chi.Router) {
		roleHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r)
	})

	server.Run()
}
