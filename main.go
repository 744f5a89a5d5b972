package main

import (
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kennywhwu/blogly/api"
	"github.com/kennywhwu/blogly/config"
	"github.com/kennywhwu/blogly/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	if config.GetBool(c, "LOG_PRETTY", false) {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	db, err := openDatabase(c)
	if err != nil {
		log.Error().Err(err).Msg("Error connecting to database")
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		log.Error().Err(err).Msg("Error running database migration")
		os.Exit(1)
	}

	currentDB := database.New(db)

	server, err := api.NewServer(currentDB)
	if err != nil {
		log.Error().Err(err).Msg("Error initializing server")
		os.Exit(1)
	}

	var group errgroup.Group

	group.Go(func() error {
		log.Info().Msgf("Server started on: %s", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		sigChannel := make(chan os.Signal, 1)
		signal.Notify(sigChannel, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChannel
		log.Info().Msgf("Received signal: %s", sig)
		server.ShutdownGracefully(30 * time.Second)
		return nil
	})

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("Closing server")
		os.Exit(1)
	}
}

// openDatabase connects to the store named by DB_TYPE: postgres for
// deployments, a local sqlite file otherwise.
func openDatabase(c map[string]string) (*gorm.DB, error) {
	gormLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	gormConfig := &gorm.Config{Logger: gormLogger}

	switch config.GetString(c, "DB_TYPE", "sqlite") {
	case "postgres":
		connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			config.GetString(c, "DB_HOST", "localhost"),
			config.GetString(c, "DB_USER", "blogly"),
			config.GetString(c, "DB_PASSWORD", ""),
			config.GetString(c, "DB_NAME", "blogly"),
			config.GetString(c, "DB_PORT", "5432"),
			config.GetString(c, "DB_SSLMODE", "disable"),
		)
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  connStr,
			PreferSimpleProtocol: true,
		}), gormConfig)
	case "sqlite":
		path := config.GetString(c, "DB_PATH", "blogly.db")
		db, err := gorm.Open(sqlite.Open(path), gormConfig)
		if err != nil {
			return nil, err
		}
		// sqlite only honors the FK constraints when asked to
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE: %s", config.GetString(c, "DB_TYPE", ""))
	}
}
