// Package sqlstore implements the document store gateway over a SQL engine.
// All collections share one records table; the record payload is kept as
// JSON so the schema-less contract of the gateway is preserved.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/catalog-console/pkg/docstore"
	"github.com/JaimeStill/catalog-console/pkg/lifecycle"
	"github.com/JaimeStill/catalog-console/pkg/record"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
)

//go:embed migrations
var migrations embed.FS

// Store is a docstore.System backed by database/sql.
type Store struct {
	db          *sql.DB
	dialect     Dialect
	logger      *slog.Logger
	connTimeout time.Duration
	now         func() time.Time
}

// New opens the database described by cfg. The connection pool is lazy;
// connectivity and migrations are checked when Start runs.
func New(cfg *docstore.Config, dialect Dialect, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open(dialect.driverName, cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect.Name, err)
	}

	if dialect.positional {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxPoolSize)
	}

	return &Store{
		db:          db,
		dialect:     dialect,
		logger:      logger.With("system", "docstore", "driver", dialect.Name),
		connTimeout: cfg.ConnTimeoutDuration(),
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *Store) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting document store")

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), s.connTimeout)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Error("database ping failed", "error", err)
			return
		}
		if err := s.Migrate(); err != nil {
			s.logger.Error("database migration failed", "error", err)
			return
		}
		s.logger.Info("database connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		s.logger.Info("closing database connection")

		if err := s.db.Close(); err != nil {
			s.logger.Error("database close failed", "error", err)
			return
		}
		s.logger.Info("database connection closed")
	})

	return nil
}

// Migrate applies the embedded schema migrations for the store's dialect.
func (s *Store) Migrate() error {
	src, err := iofs.New(migrations, s.dialect.migrations)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	drv, name, err := s.dialect.migrationDriver(s.db)
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, name, drv)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) List(ctx context.Context, collection string) ([]record.Record, error) {
	q := s.dialect.bind(`SELECT id, fields FROM records WHERE collection = $1 ORDER BY position`)

	records, err := queryMany(ctx, s.db, q, []any{collection}, scanRecord)
	if err != nil {
		return nil, mapError("list "+collection, err)
	}
	return records, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (record.Record, error) {
	q := s.dialect.bind(`SELECT id, fields FROM records WHERE collection = $1 AND id = $2`)

	r, err := queryOne(ctx, s.db, q, []any{collection, id}, scanRecord)
	if err != nil {
		return record.Record{}, mapError("get "+collection, err)
	}
	return r, nil
}

func (s *Store) Create(ctx context.Context, collection string, fields record.Fields) (string, error) {
	id := uuid.NewString()
	now := s.now()

	doc := fields.Clone()
	if _, ok := doc[record.FieldCreatedAt]; !ok {
		doc[record.FieldCreatedAt] = now
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode fields: %w", err)
	}

	q := s.dialect.bind(`INSERT INTO records (collection, id, fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`)

	if _, err := s.db.ExecContext(ctx, q, collection, id, string(payload), now, now); err != nil {
		return "", mapError("create "+collection, err)
	}

	s.logger.Debug("record created", "collection", collection, "id", id)
	return id, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields record.Fields) error {
	selectQ := s.dialect.bind(`SELECT id, fields FROM records WHERE collection = $1 AND id = $2` + s.dialect.lockClause)
	updateQ := s.dialect.bind(`UPDATE records SET fields = $1, updated_at = $2 WHERE collection = $3 AND id = $4`)

	_, err := withTx(ctx, s.db, func(tx *sql.Tx) (struct{}, error) {
		existing, err := queryOne(ctx, tx, selectQ, []any{collection, id}, scanRecord)
		if err != nil {
			return struct{}{}, err
		}

		payload, err := json.Marshal(existing.Fields.Merge(fields))
		if err != nil {
			return struct{}{}, fmt.Errorf("encode fields: %w", err)
		}

		_, err = tx.ExecContext(ctx, updateQ, string(payload), s.now(), collection, id)
		return struct{}{}, err
	})

	if err != nil {
		return mapError("update "+collection, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	q := s.dialect.bind(`DELETE FROM records WHERE collection = $1 AND id = $2`)

	if _, err := s.db.ExecContext(ctx, q, collection, id); err != nil {
		return mapError("delete "+collection, err)
	}
	return nil
}

func scanRecord(sc Scanner) (record.Record, error) {
	var (
		r       record.Record
		payload []byte
	)
	if err := sc.Scan(&r.ID, &payload); err != nil {
		return r, err
	}

	r.Fields = record.Fields{}
	if err := json.Unmarshal(payload, &r.Fields); err != nil {
		return r, fmt.Errorf("decode fields: %w", err)
	}

	if ts, ok := record.Time(r.Fields[record.FieldCreatedAt]); ok {
		r.Fields[record.FieldCreatedAt] = ts
	}
	return r, nil
}
