package storefront

import (
	"context"
	"fmt"
	"io"

	"github.com/3-lines-studio/storefront/internal/adapters/db"
	httpadapter "github.com/3-lines-studio/storefront/internal/adapters/http"
	"github.com/3-lines-studio/storefront/internal/catalog"
	"github.com/3-lines-studio/storefront/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenCatalog builds the catalog source selected by cfg.Catalog.Source. The
// returned closer releases database connections for the sql source.
func OpenCatalog(ctx context.Context, cfg config.Config) (catalog.Service, io.Closer, error) {
	switch cfg.Catalog.Source {
	case config.SourceEmbedded:
		cat, err := catalog.Default()
		return cat, nopCloser{}, err

	case config.SourceFile:
		cat, err := catalog.LoadFile(cfg.Catalog.File)
		return cat, nopCloser{}, err

	case config.SourceSQL:
		conn, err := db.Open(cfg.Catalog.SQLDriver, cfg.Catalog.SQLDSN)
		if err != nil {
			return nil, nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, cfg.Catalog.Timeout)
		defer cancel()
		if err := conn.PingContext(pingCtx); err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("connect to catalog database: %w", err)
		}
		return db.NewCatalog(conn, cfg.Catalog.SQLDriver), conn, nil

	case config.SourceAPI:
		return httpadapter.NewCatalogClient(cfg.CatalogBaseURL(), cfg.Catalog.Timeout), nopCloser{}, nil

	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}
