package database

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"musterbot/internal/infrastructure/database/pgstore"
	"musterbot/internal/infrastructure/database/sqlitestore"
	"musterbot/internal/ports/output"
)

// Backend est le moteur désigné par le schéma de DATABASE_URL.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// ParseBackend déduit le moteur du schéma de l'URL.
func ParseBackend(databaseURL string) (Backend, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("database: URL invalide %q: %w", databaseURL, err)
	}
	switch u.Scheme {
	case "sqlite":
		if sqlitePath(databaseURL) == "" {
			return "", fmt.Errorf("database: chemin SQLite manquant dans %q", databaseURL)
		}
		return BackendSQLite, nil
	case "postgres", "postgresql":
		if u.Host == "" {
			return "", fmt.Errorf("database: hôte PostgreSQL manquant dans %q", databaseURL)
		}
		return BackendPostgres, nil
	default:
		return "", fmt.Errorf("database: schéma %q non supporté (sqlite:// ou postgres://)", u.Scheme)
	}
}

// sqlitePath extrait le chemin du fichier de "sqlite://chemin?options".
func sqlitePath(databaseURL string) string {
	path := strings.TrimPrefix(databaseURL, "sqlite://")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return path
}

// Store regroupe les dépôts d'un même moteur.
type Store struct {
	Backend Backend
	Musters output.MusterRepository
	Tickets output.TicketRepository
	Members output.MemberRepository
	Pings   output.PingRepository

	close func() error
}

// Open ouvre la base désignée par databaseURL. Le schéma doit déjà être à
// jour (voir RunMigrations).
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	backend, err := ParseBackend(databaseURL)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendPostgres:
		pool, err := pgstore.NewPool(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return &Store{
			Backend: backend,
			Musters: pgstore.NewMusterRepository(pool),
			Tickets: pgstore.NewTicketRepository(pool),
			Members: pgstore.NewMemberRepository(pool),
			Pings:   pgstore.NewPingRepository(pool),
			close:   func() error { pool.Close(); return nil },
		}, nil
	default:
		pool, err := sqlitestore.Open(sqlitePath(databaseURL))
		if err != nil {
			return nil, err
		}
		return &Store{
			Backend: backend,
			Musters: sqlitestore.NewMusterRepository(pool),
			Tickets: sqlitestore.NewTicketRepository(pool),
			Members: sqlitestore.NewMemberRepository(pool),
			Pings:   sqlitestore.NewPingRepository(pool),
			close:   pool.Close,
		}, nil
	}
}

func (s *Store) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

func ensureSQLiteDir(databaseURL string) error {
	dir := filepath.Dir(sqlitePath(databaseURL))
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("database: create %s: %w", dir, err)
	}
	return nil
}
