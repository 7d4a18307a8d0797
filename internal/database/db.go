package database

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// Supported driver names.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// sqliteDriver is the sqlite3 driver with LOWER replaced by a Unicode aware
// version. The builtin only folds ASCII, MySQL's utf8mb4 collation folds all
// letters, and searches must behave the same on both.
const sqliteDriver = "sqlite3_fyyur"

func init() {
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", unicodeLower, true)
		},
	})
}

// unicodeLower backs LOWER() on sqlite connections. Non-text values pass
// through unchanged.
func unicodeLower(v any) any {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		return bytes.ToLower(s)
	default:
		return v
	}
}

// Config describes how to reach the store. MySQL uses the network fields,
// SQLite only needs Path.
type Config struct {
	Driver string
	User   string
	Pass   string
	Host   string
	Port   string
	Name   string
	Path   string
}

// DSN returns the driver specific data source name.
func (c Config) DSN() string {
	if c.Driver == DriverSQLite {
		return SQLiteDSN(c.Path)
	}
	auth := c.User
	if c.Pass != "" {
		auth = fmt.Sprintf("%s:%s", c.User, c.Pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, c.Host, c.Port, c.Name)
}

// SQLiteDSN enables foreign keys and a busy timeout for a sqlite file.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}

// Open connects to the configured store and verifies the connection.
func Open(cfg Config) (*sqlx.DB, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverMySQL
	}
	if cfg.Driver != DriverMySQL && cfg.Driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}

	var db *sqlx.DB
	if cfg.Driver == DriverSQLite {
		raw, err := sql.Open(sqliteDriver, cfg.DSN())
		if err != nil {
			return nil, err
		}
		// keep the public driver name so Flavor still resolves to sqlite
		db = sqlx.NewDb(raw, DriverSQLite)
	} else {
		var err error
		if db, err = sqlx.Open(cfg.Driver, cfg.DSN()); err != nil {
			return nil, err
		}
	}

	// Pool settings
	if cfg.Driver == DriverSQLite {
		// one writer at a time keeps sqlite away from "database is locked"
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Flavor maps a driver name to the go-sqlbuilder dialect.
func Flavor(driver string) sqlbuilder.Flavor {
	if driver == DriverSQLite {
		return sqlbuilder.SQLite
	}
	return sqlbuilder.MySQL
}
