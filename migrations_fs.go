package authclient

import (
	"embed"
	"fmt"
	"io/fs"

	persistence "github.com/goliatone/go-persistence-bun"
)

// migrationsFS holds the token table migrations, with dialect alternatives
// under data/sql/migrations/sqlite.
//
//go:embed data/sql/migrations/*.sql data/sql/migrations/sqlite/*.sql
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded migration tree for registration with
// a go-persistence-bun client.
func GetMigrationsFS() fs.FS {
	return migrationsFS
}

// RegisterMigrations registers the embedded token table migrations with a
// go-persistence-bun client. Call before client.Migrate.
func RegisterMigrations(client *persistence.Client) error {
	if client == nil {
		return fmt.Errorf("authclient: persistence client is required")
	}
	client.RegisterSQLMigrations(migrationsFS)
	return nil
}
