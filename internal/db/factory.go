package db

import (
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// sqliteDefaults are applied to every SQLite connection unless the DSN
// already sets the same parameter. busy_timeout makes a writer wait for the
// lock instead of failing with SQLITE_BUSY, and _txlock=immediate takes the
// write lock at BEGIN so a read-then-write transaction cannot lose the
// upgrade race to another connection.
var sqliteDefaults = []struct{ key, value string }{
	{"_pragma", "busy_timeout(5000)"},
	{"_pragma", "journal_mode(WAL)"},
	{"_pragma", "foreign_keys(1)"},
	{"_txlock", "immediate"},
}

// New opens a database connection for the given driver and DSN.
// Supported drivers: sqlite3, mysql, postgres.
func New(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case "sqlite3":
		// modernc/sqlite registers itself as "sqlite" (CGO-free)
		db, err := sqlx.Open("sqlite", SQLiteDSN(dsn))
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping sqlite: %w", err)
		}
		return db, nil
	case "mysql":
		// Timestamps only scan into time.Time when the DSN carries parseTime=true.
		db, err := sqlx.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		db.SetConnMaxLifetime(5 * time.Minute)
		return db, nil
	case "postgres":
		db, err := sqlx.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported DB driver %q: must be sqlite3, mysql, or postgres", driver)
	}
}

// SQLiteDSN appends the connection defaults to dsn, keeping any pragma or
// _txlock the caller already set.
func SQLiteDSN(dsn string) string {
	var params []string
	for _, d := range sqliteDefaults {
		if d.key == "_pragma" {
			name := d.value[:strings.Index(d.value, "(")]
			if strings.Contains(dsn, "_pragma="+name+"(") {
				continue
			}
		} else if strings.Contains(dsn, d.key+"=") {
			continue
		}
		params = append(params, d.key+"="+d.value)
	}
	if len(params) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}
