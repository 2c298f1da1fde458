package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Trip archive pool sizing.  The archive only sees one insert per finished
// trip plus the occasional /v1/trips listing, so a small pool is enough;
// allocation traffic never touches the database.
const (
	archiveMaxOpenConns = 10
	archiveMaxIdleConns = 5
	archiveConnLifetime = 30 * time.Minute
	pingTimeout         = 5 * time.Second
)

// Open connects to the MySQL trip archive and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = host + ":" + port
	cfg.DBName = name
	cfg.ParseTime = true // DATETIME columns scan into time.Time
	cfg.Loc = time.UTC   // trip timestamps are stored and compared in UTC
	cfg.Collation = "utf8mb4_general_ci"

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(archiveMaxOpenConns)
	db.SetMaxIdleConns(archiveMaxIdleConns)
	db.SetConnMaxLifetime(archiveConnLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
