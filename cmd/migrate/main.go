// Command migrate applies, rolls back or inspects the PostgreSQL schema of
// the record store using the migrations embedded in the database package.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"github.com/Gangulr/finace/internal/config"
	"github.com/Gangulr/finace/internal/database"
	"github.com/Gangulr/finace/internal/logger"
)

type command func(m *migrate.Migrate, args []string) error

var commands = map[string]command{
	"up":      up,
	"down":    down,
	"version": version,
	"force":   force,
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		logger.Named("migrate").Fatalw("migration failed", "error", err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: migrate <up|down|version|force> [N]")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q (use up, down, version or force)", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.StoreDriver != config.DriverPostgres {
		return fmt.Errorf("migrations only apply to the postgres store (STORE_DRIVER=%s)", cfg.StoreDriver)
	}

	m, err := database.NewMigrator(cfg.PostgresURL())
	if err != nil {
		return err
	}
	defer database.CloseMigrator(m)

	return cmd(m, args[1:])
}

func up(m *migrate.Migrate, _ []string) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("up: %w", err)
	}
	return version(m, nil)
}

func down(m *migrate.Migrate, args []string) error {
	steps, err := intArg(args, 1)
	if err != nil {
		return err
	}
	if steps < 1 {
		return fmt.Errorf("down: step count must be positive, got %d", steps)
	}
	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("down: %w", err)
	}
	logger.Named("migrate").Infow("rolled back", "steps", steps)
	return nil
}

func version(m *migrate.Migrate, _ []string) error {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		logger.Named("migrate").Info("no migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("version: %w", err)
	}
	logger.Named("migrate").Infow("schema version", "version", v, "dirty", dirty)
	return nil
}

// force marks a version as applied without running it, clearing a dirty state.
func force(m *migrate.Migrate, args []string) error {
	if len(args) == 0 {
		return errors.New("force: version required")
	}
	v, err := intArg(args, 0)
	if err != nil {
		return err
	}
	if err := m.Force(v); err != nil {
		return fmt.Errorf("force: %w", err)
	}
	return version(m, nil)
}

func intArg(args []string, fallback int) (int, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", args[0], err)
	}
	return n, nil
}
