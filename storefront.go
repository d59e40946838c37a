// Package storefront wires the catalog, renderer, exporter and preview
// servers of the product page generator.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/3-lines-studio/storefront/internal/adapters/cli"
	"github.com/3-lines-studio/storefront/internal/adapters/fs"
	httpadapter "github.com/3-lines-studio/storefront/internal/adapters/http"
	"github.com/3-lines-studio/storefront/internal/adapters/watch"
	"github.com/3-lines-studio/storefront/internal/catalog"
	"github.com/3-lines-studio/storefront/internal/config"
	"github.com/3-lines-studio/storefront/internal/core"
	"github.com/3-lines-studio/storefront/internal/page"
	"github.com/3-lines-studio/storefront/internal/usecase"
)

// ErrNotBuilt is returned by PreviewHandler in production when the output
// directory has no manifest.
var ErrNotBuilt = errors.New("no build output found, run storefront build first")

// App holds the catalog and renderer selected by one configuration and runs
// builds and servers against them.
type App struct {
	cfg      config.Config
	logger   *zap.Logger
	catalog  *catalog.Swappable
	renderer *page.Renderer
	closer   io.Closer
}

// New opens the configured catalog source. Close releases it.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cat, closer, err := OpenCatalog(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s catalog: %w", cfg.Catalog.Source, err)
	}

	return &App{
		cfg:     cfg,
		logger:  logger,
		catalog: catalog.NewSwappable(cat),
		renderer: page.NewRenderer(page.Options{
			StoreName:      cfg.StoreName,
			BaseURL:        cfg.CatalogBaseURL(),
			CartAction:     cfg.Cart.Action,
			PlaceholderURL: cfg.Image.PlaceholderURL,
			FallbackWidth:  cfg.Image.FallbackWidth,
			FallbackHeight: cfg.Image.FallbackHeight,
		}),
		closer: closer,
	}, nil
}

// Catalog is the live catalog; in development it is replaced when the catalog
// file changes.
func (a *App) Catalog() catalog.Service {
	return a.catalog
}

// Renderer renders product, not-found and error documents.
func (a *App) Renderer() *page.Renderer {
	return a.renderer
}

// Close releases the catalog source.
func (a *App) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// BuildOptions controls a single Build. Files overrides the output
// filesystem and wins over DryRun.
type BuildOptions struct {
	// DryRun renders every page but keeps all writes in memory.
	DryRun bool
	Output usecase.CLIOutput
	Files  fs.FileSystem
}

// Build exports every product page, the 404 page, public assets and the
// manifest to the configured output directory.
func (a *App) Build(ctx context.Context, opts BuildOptions) usecase.ExportOutput {
	files := opts.Files
	if files == nil {
		files = fs.NewOSFileSystem()
		if opts.DryRun {
			files = fs.NewDryRunFileSystem()
		}
	}

	output := opts.Output
	if output == nil {
		output = cli.NewOutput()
	}

	svc := usecase.NewExportService(a.catalog, a.renderer, files, output, a.logger)
	return svc.Export(ctx, usecase.ExportInput{
		OutDir:      a.cfg.OutDir,
		PublicDir:   a.cfg.PublicDir,
		Concurrency: a.cfg.Concurrency,
		Mode:        a.cfg.Mode(),
	})
}

// PreviewHandler serves the exported site in production and renders pages
// live in development. reload may be nil.
func (a *App) PreviewHandler(files fs.FileSystem, reload *httpadapter.ReloadBroker) (http.Handler, error) {
	mode := a.cfg.Mode()
	opts := httpadapter.PageHandlerOptions{
		Mode:   mode,
		Reload: reload,
		Logger: a.logger,
	}

	public := files.FS(a.cfg.PublicDir)
	if !files.FileExists(a.cfg.PublicDir) {
		public = nil
	}

	if !mode.IsDev() {
		data, err := files.ReadFile(filepath.Join(a.cfg.OutDir, core.ManifestFile))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotBuilt, err)
		}
		manifest, err := core.ParseManifest(data)
		if err != nil {
			return nil, fmt.Errorf("parse manifest: %w", err)
		}
		opts.Manifest = manifest
		opts.Site = files.FS(a.cfg.OutDir)
		public = opts.Site
	}

	pages := httpadapter.NewPageHandler(
		usecase.NewPageService(usecase.NewPropsLoader(a.catalog), a.renderer),
		a.renderer,
		opts,
	)

	return httpadapter.NewPreviewRouter(httpadapter.RouterOptions{
		Pages:  pages,
		Public: public,
		Reload: reload,
		Logger: a.logger,
	}), nil
}

// Serve runs the preview server until ctx is cancelled. In development mode
// with watch set, catalog file and public asset changes reload open pages.
func (a *App) Serve(ctx context.Context, watchFiles bool) error {
	files := fs.NewOSFileSystem()

	var reload *httpadapter.ReloadBroker
	if a.cfg.Mode().IsDev() {
		reload = httpadapter.NewReloadBroker()
	}

	handler, err := a.PreviewHandler(files, reload)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	if reload != nil && watchFiles {
		paths := a.watchPaths(files)
		if len(paths) > 0 {
			watcher, err := watch.New(paths, watch.DefaultDebounce, a.logger)
			if err != nil {
				return err
			}
			g.Go(func() error {
				return watcher.Run(gctx, func() {
					a.reloadCatalog()
					reload.Notify()
				})
			})
		}
	}

	g.Go(func() error {
		return httpadapter.ListenAndServe(gctx, a.cfg.Server.Addr, handler, a.logger)
	})
	return g.Wait()
}

// ServeAPI serves the catalog as JSON until ctx is cancelled.
func (a *App) ServeAPI(ctx context.Context) error {
	api := httpadapter.NewCatalogAPI(a.catalog, a.logger)
	return httpadapter.ListenAndServe(ctx, a.cfg.Server.APIAddr, httpadapter.NewAPIRouter(api, a.logger), a.logger)
}

func (a *App) watchPaths(files fs.FileSystem) []string {
	var paths []string
	if a.cfg.Catalog.Source == config.SourceFile {
		paths = append(paths, a.cfg.Catalog.File)
	}
	if files.FileExists(a.cfg.PublicDir) {
		paths = append(paths, a.cfg.PublicDir)
	}
	return paths
}

// reloadCatalog re-reads a file catalog. An invalid file keeps the previous
// catalog in place.
func (a *App) reloadCatalog() {
	if a.cfg.Catalog.Source != config.SourceFile {
		return
	}
	next, err := catalog.LoadFile(a.cfg.Catalog.File)
	if err != nil {
		a.logger.Warn("catalog reload failed", zap.String("file", a.cfg.Catalog.File), zap.Error(err))
		return
	}
	a.catalog.Swap(next)
	a.logger.Info("catalog reloaded", zap.String("file", a.cfg.Catalog.File))
}
