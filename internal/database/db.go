package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
)

// MySQL holds the connection settings taken from DB_* variables.
type MySQL struct {
	User string
	Pass string
	Host string
	Port string
	Name string
}

// DriverConfig maps the settings onto the driver's config.  Times are parsed
// into time.Time in UTC and the session uses utf8mb4 so restaurant names
// with non-Latin characters survive a round trip.
func (m MySQL) DriverConfig() *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = m.User
	cfg.Passwd = m.Pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(m.Host, m.Port)
	cfg.DBName = m.Name
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Collation = "utf8mb4_unicode_ci"
	return cfg
}

// Open connects to MySQL and pings it within ctx.  The pool is sized for a
// single API process.
func Open(ctx context.Context, m MySQL) (*sql.DB, error) {
	conn, err := mysql.NewConnector(m.DriverConfig())
	if err != nil {
		return nil, fmt.Errorf("mysql config: %w", err)
	}
	db := sql.OpenDB(conn)
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql ping %s: %w", m.DriverConfig().Addr, err)
	}
	return db, nil
}
