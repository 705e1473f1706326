package round

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	montecarlo "github.com/Ashenafi-pixel/montecarlo-dice"
	"github.com/Ashenafi-pixel/montecarlo-dice/config"
)

// Open returns the store selected by cfg.Store.
func Open[F cmp.Ordered](ctx context.Context, cfg *config.Config) (Store[F], error) {
	switch cfg.Store {
	case config.StoreSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = filepath.Join(cfg.DataDir, "montecarlo.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		db, err := montecarlo.OpenSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", path, err)
		}
		return NewSQLStore[F](ctx, db, DialectSQLite)
	case config.StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("postgres store needs DATABASE_URL")
		}
		db, err := montecarlo.GetDB()
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if db == nil {
			db, err = montecarlo.OpenPostgres(cfg.DatabaseURL)
			if err != nil {
				return nil, fmt.Errorf("connect postgres: %w", err)
			}
		}
		return NewSQLStore[F](ctx, db, DialectPostgres)
	default:
		return NewFileStore[F](cfg.DataDir), nil
	}
}
