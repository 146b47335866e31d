package sqlstore

import (
	"database/sql"
	"fmt"
	"regexp"

	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect captures the differences between the supported SQL engines.
type Dialect struct {
	Name       string
	driverName string
	migrations string
	positional bool
	lockClause string
}

var (
	// Postgres stores fields as JSONB through the pgx driver.
	Postgres = Dialect{
		Name:       "postgres",
		driverName: "pgx",
		migrations: "migrations/postgres",
		lockClause: " FOR UPDATE",
	}

	// SQLite stores fields as JSON text through the pure-Go sqlite driver.
	SQLite = Dialect{
		Name:       "sqlite",
		driverName: "sqlite",
		migrations: "migrations/sqlite",
		positional: true,
	}
)

var placeholder = regexp.MustCompile(`\$\d+`)

// bind rewrites numbered placeholders for engines that only accept "?".
// Queries must reference their parameters in ascending order.
func (d Dialect) bind(q string) string {
	if !d.positional {
		return q
	}
	return placeholder.ReplaceAllString(q, "?")
}

func (d Dialect) migrationDriver(db *sql.DB) (database.Driver, string, error) {
	switch d.Name {
	case Postgres.Name:
		drv, err := migratepgx.WithInstance(db, &migratepgx.Config{})
		return drv, "pgx5", err
	case SQLite.Name:
		drv, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
		return drv, "sqlite", err
	default:
		return nil, "", fmt.Errorf("unsupported dialect: %s", d.Name)
	}
}
