package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/srgjo27/rail_ticket/internal/config"
)

var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("postgres", dsn)
}

func DSN(cfg config.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   cfg.Host + ":" + cfg.Port,
		Path:   cfg.Name,
	}
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	u.RawQuery = url.Values{"sslmode": {sslmode}}.Encode()

	return u.String()
}

// NewPostgresDB retries until the database answers a ping, which covers
// containers that start postgres after the service.
func NewPostgresDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	retries := cfg.ConnectRetries
	if retries < 1 {
		retries = 1
	}

	var (
		db  *sql.DB
		err error
	)
	for i := 1; i <= retries; i++ {
		logrus.WithFields(logrus.Fields{"host": cfg.Host, "attempt": i, "max": retries}).Info("connecting to database")

		db, err = openDB(DSN(cfg))
		if err == nil {
			err = db.PingContext(ctx)
			if err == nil {
				break
			}
			db.Close()
		}

		if i == retries {
			return nil, fmt.Errorf("connect database after %d attempts: %w", retries, err)
		}

		logrus.WithError(err).Warnf("database not ready, retrying in %s", cfg.RetryInterval)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryInterval):
		}
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	logrus.Info("database connected")
	return db, nil
}
