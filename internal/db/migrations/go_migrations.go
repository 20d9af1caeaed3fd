// Package migrations contains dialect-aware Go database migrations. The
// schema needs auto-increment integer keys, which every supported database
// spells differently, so no migration here is a plain .sql file.
package migrations

// dialect is set by the parent db package before migrations are applied.
var dialect string

// SetDialect configures the SQL dialect for Go migrations.
// Must be called before goose.Up. Valid values: "sqlite3", "postgres", "mysql".
func SetDialect(d string) {
	dialect = d
}

// idColumn returns the auto-increment primary key column definition.
func idColumn() string {
	switch dialect {
	case "postgres":
		return "id BIGSERIAL PRIMARY KEY"
	case "mysql":
		return "id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY"
	default: // sqlite3
		return "id INTEGER PRIMARY KEY AUTOINCREMENT"
	}
}

// timestampType returns the column type used for created_at/updated_at style columns.
func timestampType() string {
	switch dialect {
	case "postgres":
		return "TIMESTAMPTZ"
	case "mysql":
		return "DATETIME(6)"
	default: // sqlite3; modernc parses TIMESTAMP columns back into time.Time
		return "TIMESTAMP"
	}
}

// textType returns the type for short indexed strings. MySQL cannot index TEXT
// without a prefix length.
func textType() string {
	if dialect == "mysql" {
		return "VARCHAR(255)"
	}
	return "TEXT"
}
