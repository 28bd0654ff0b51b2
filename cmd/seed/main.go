// Command seed replaces the contents of the LightBnB database with
// generated demo data. Every seeded user logs in with SEED_PASSWORD.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lightbnb/lightbnb/internal/config"
	"github.com/lightbnb/lightbnb/internal/seed"
	"github.com/lightbnb/lightbnb/migrations"
	pkgconfig "github.com/lightbnb/lightbnb/pkg/config"
	"github.com/lightbnb/lightbnb/pkg/database"
	"github.com/lightbnb/lightbnb/pkg/logger"
)

// options is read from SEED_* variables.
type options struct {
	Password     string `env:"PASSWORD" envDefault:"password"`
	Users        int    `env:"USERS" envDefault:"50"`
	Properties   int    `env:"PROPERTIES" envDefault:"200"`
	Reservations int    `env:"RESERVATIONS" envDefault:"400"`
	RandomSeed   uint64 `env:"RANDOM_SEED" envDefault:"42"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := logger.New("lightbnb-seed", cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("seed complete")
}

func run(cfg *config.Config, log *slog.Logger) error {
	var o options
	if err := pkgconfig.LoadWithPrefix(&o, "SEED_"); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), log)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	dataset := seed.Generate(seed.Options{
		Users:        o.Users,
		Properties:   o.Properties,
		Reservations: o.Reservations,
		Seed:         o.RandomSeed,
		Now:          time.Now(),
	}, string(hash))
	log.Info("generated dataset",
		slog.Int("users", len(dataset.Users)),
		slog.Int("properties", len(dataset.Properties)),
		slog.Int("reservations", len(dataset.Reservations)),
	)

	return seed.NewSeeder(pool, log).Seed(ctx, dataset)
}
