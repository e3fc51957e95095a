// Package sqlitestore implémente les ports de persistance sur un fichier SQLite
// (zombiezen.com/go/sqlite).
package sqlitestore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const defaultPoolSize = 4

// Pool est un pool de connexions SQLite configurées pour le bot.
type Pool struct {
	inner *sqlitex.Pool
	path  string
}

// Open ouvre (et crée au besoin) la base située à path.
func Open(path string) (*Pool, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: chemin de base vide")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create %s: %w", dir, err)
		}
	}

	inner, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize:    defaultPoolSize,
		PrepareConn: prepareConn,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	slog.Info("✅ Base de données SQLite ouverte.", "path", path)
	return &Pool{inner: inner, path: path}, nil
}

func prepareConn(conn *sqlite.Conn) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		// ON DELETE CASCADE de muster_members
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("sqlite: %s: %w", pragma, err)
		}
	}
	return nil
}

// Take emprunte une connexion ; l'appelant la rend avec Put.
func (p *Pool) Take(ctx context.Context) (*sqlite.Conn, error) {
	conn, err := p.inner.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlite: take: %w", err)
	}
	return conn, nil
}

func (p *Pool) Put(conn *sqlite.Conn) {
	p.inner.Put(conn)
}

func (p *Pool) Close() error {
	if err := p.inner.Close(); err != nil {
		slog.Error("❌ Fermeture de la base SQLite", "path", p.path, tint.Err(err))
		return fmt.Errorf("sqlite: close %s: %w", p.path, err)
	}
	return nil
}

// Les horodatages sont stockés en millisecondes Unix.
func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
