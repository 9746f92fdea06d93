package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/carhive/backend/internal/infrastructure/config"
	"github.com/carhive/backend/internal/infrastructure/logger"
	"github.com/carhive/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const usage = `CarHive schema migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (negative rolls back)
  version               Show the current schema version
  force <version>       Stamp the schema version after manual repair
  create <name> [desc]  Generate a new migration file pair
  list                  List the migration pairs on disk

Flags:
  -path string          Migrations directory (default: ./migrations)
  -log-level string     debug, info, warn, error (default: info)

Database settings come from configs/config.toml or CARHIVE_DATABASE_*
environment variables.`

func main() {
	var (
		dir      string
		logLevel string
	)
	flag.StringVar(&dir, "path", "migrations", "migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "log level")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Println(usage)
		os.Exit(1)
	}
	command, args := args[0], args[1:]

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	dir, err = filepath.Abs(dir)
	if err != nil {
		log.Fatal("Failed to resolve migrations directory", zap.Error(err))
	}

	// create and list work on files alone, no database needed
	switch command {
	case "create":
		runCreate(log, dir, args)
		return
	case "list":
		runList(log, dir)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to reach database", zap.Error(err))
	}

	mg, err := migration.New(db, dir, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer mg.Close()

	switch command {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	case "step":
		err = mg.Steps(intArg(log, args, "step count"))
	case "version":
		var version uint
		var dirty bool
		if version, dirty, err = mg.Version(); err == nil {
			log.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
	case "force":
		err = mg.Force(intArg(log, args, "target version"))
	default:
		fmt.Println(usage)
		os.Exit(1)
	}

	if err != nil {
		log.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
}

func runCreate(log *zap.Logger, dir string, args []string) {
	if len(args) == 0 {
		log.Fatal("Migration name required. Usage: migrate create <name> [description]")
	}
	description := ""
	if len(args) > 1 {
		description = args[1]
	}

	mf, err := migration.Create(dir, args[0], description)
	if err != nil {
		log.Fatal("Failed to create migration", zap.Error(err))
	}
	log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up", mf.UpPath),
		zap.String("down", mf.DownPath),
	)
}

func runList(log *zap.Logger, dir string) {
	names, err := migration.List(dir)
	if err != nil {
		log.Fatal("Failed to list migrations", zap.Error(err))
	}
	if len(names) == 0 {
		log.Info("No migrations found", zap.String("path", dir))
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
}

func intArg(log *zap.Logger, args []string, what string) int {
	if len(args) == 0 {
		log.Fatal("Missing argument", zap.String("expected", what))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		log.Fatal("Invalid argument", zap.String("expected", what), zap.String("got", args[0]))
	}
	return n
}
