package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/joho/godotenv/autoload"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/designpro/designpro/internal/config"
	"github.com/designpro/designpro/internal/usecase"
)

// implements usecase.Repository
type service struct {
	db *gorm.DB
}

var (
	database = os.Getenv(config.ENV_KEY_DB_DATABASE)
	password = os.Getenv(config.ENV_KEY_DB_PASSWORD)
	username = os.Getenv(config.ENV_KEY_DB_USER)
	port     = os.Getenv(config.ENV_KEY_DB_PORT)
	host     = os.Getenv(config.ENV_KEY_DB_HOST)
)

func New() *service {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", username, password, host, port, database)

	gormDB, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := gormDB.Use(tracing.NewPlugin()); err != nil {
		log.Fatal(err)
	}

	db, err := gormDB.DB()
	if err != nil {
		log.Fatal(err)
	}

	var maxOpenConnections int
	if m, err := strconv.Atoi(
		os.Getenv(config.ENV_KEY_DB_MAX_OPEN_CONNECTIONS)); err == nil {
		maxOpenConnections = m
	}
	db.SetMaxOpenConns(maxOpenConnections)

	if _, err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`); err != nil {
		log.Fatal(err)
	}

	err = gormDB.AutoMigrate(
		Template{},
		Design{},
		User{},
		Job{},
	)
	if err != nil {
		log.Fatal(err)
	}

	s := &service{db: gormDB}
	if err := s.seed(context.Background()); err != nil {
		log.Printf("seed failed: %v", err)
	}

	return s
}

// translate maps gorm/driver errors onto the usecase error kinds.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return usecase.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return usecase.ErrConflict
	case errors.Is(err, context.DeadlineExceeded):
		return usecase.ErrUnavailable
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return usecase.ErrUnavailable
	}

	return err
}

// Health reports connection pool statistics for the health endpoint.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	db, err := s.db.DB()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	if err := db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()

	return stats
}

func (s *service) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	log.Printf("Disconnected from database: %s", database)
	return db.Close()
}
