package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	persistence "github.com/goliatone/go-persistence-bun"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type StoreFactory struct {
	db          *bun.DB
	secureStore *SecureStore
}

func NewStoreFactory() *StoreFactory {
	return &StoreFactory{}
}

func NewStoreFactoryFromPersistence(client *persistence.Client) (*StoreFactory, error) {
	factory := NewStoreFactory()
	if err := factory.BuildStores(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewStoreFactoryFromDB(db *bun.DB) (*StoreFactory, error) {
	factory := NewStoreFactory()
	if err := factory.BuildStores(db); err != nil {
		return nil, err
	}
	return factory, nil
}

// BuildStores accepts a *bun.DB or anything exposing DB() *bun.DB, such as a
// go-persistence-bun client.
func (f *StoreFactory) BuildStores(persistenceClient any) error {
	if f == nil {
		return fmt.Errorf("sqlstore: store factory is nil")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return err
		}
		f.db = db
	}
	if f.secureStore != nil {
		return nil
	}
	return f.initStores()
}

func (f *StoreFactory) SecureStore() *SecureStore {
	if f == nil {
		return nil
	}
	return f.secureStore
}

func (f *StoreFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

func (f *StoreFactory) initStores() error {
	tokenRepo := repository.NewRepository[*tokenRecord](f.db, tokenHandlers())
	if validator, ok := tokenRepo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("sqlstore: invalid token repository wiring: %w", err)
		}
	}
	f.secureStore = &SecureStore{
		db:   f.db,
		repo: tokenRepo,
	}
	return nil
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}

// NewSQLiteDB opens a sqlite-backed bun handle. For in-memory databases pass
// a shared-cache DSN and keep a single open connection.
func NewSQLiteDB(dsn string) (*bun.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlstore: sqlite dsn is required")
	}
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return bun.NewDB(sqlDB, sqlitedialect.New()), nil
}

func NewPostgresDB(dsn string) (*bun.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlstore: postgres dsn is required")
	}
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open postgres db: %w", err)
	}
	return bun.NewDB(sqlDB, pgdialect.New()), nil
}

// EnsureSchema creates the token table when migrations are not wired in. The
// embedded migration tree remains the source of truth for managed schemas.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return fmt.Errorf("sqlstore: bun db is required")
	}
	if _, err := db.NewCreateTable().
		Model((*tokenRecord)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("sqlstore: create auth_client_tokens: %w", err)
	}
	if _, err := db.NewCreateIndex().
		Model((*tokenRecord)(nil)).
		Index("idx_auth_client_tokens_storage_key").
		Unique().
		Column("storage_key").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("sqlstore: create storage key index: %w", err)
	}
	return nil
}
