package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/3-lines-studio/storefront/internal/adapters/cli"
	"github.com/3-lines-studio/storefront/internal/core"
)

type ExportInput struct {
	OutDir      string
	PublicDir   string
	Concurrency int
	Mode        core.Mode
}

type ExportOutput struct {
	Manifest *core.Manifest
	Pages    []ExportedPage
	// Skipped lists routes whose product disappeared between enumeration and
	// prop loading.
	Skipped []string
	Error   error
}

type ExportedPage struct {
	Path string
	File string
	Size int
}

type ExportService struct {
	catalog  Catalog
	loader   *PropsLoader
	renderer PageRenderer
	fs       FileSystem
	cli      CLIOutput
	logger   *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewExportService(catalog Catalog, renderer PageRenderer, fs FileSystem, cli CLIOutput, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		catalog:  catalog,
		loader:   NewPropsLoader(catalog),
		renderer: renderer,
		fs:       fs,
		cli:      cli,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

type pageResult struct {
	path    string
	file    string
	content []byte
	written bool
}

func (s *ExportService) Export(ctx context.Context, input ExportInput) ExportOutput {
	if input.OutDir == "" {
		return ExportOutput{Error: fmt.Errorf("output directory is required")}
	}

	s.cli.PrintHeader("Storefront Build")
	report := cli.NewBuildReport(s.cli, s.cli.Writer(), input.OutDir)
	defer report.Render()

	stepPaths := report.StartStep("Enumerating product routes")
	paths, err := StaticPaths(ctx, s.catalog)
	report.EndStep(stepPaths, err)
	if err != nil {
		report.AddError("catalog", "Failed to enumerate product routes", err.Error())
		return ExportOutput{Error: err}
	}
	report.SetPageCount(len(paths.Paths))
	s.logger.Info("enumerated product routes", zap.Int("count", len(paths.Paths)))

	stepDirs := report.StartStep("Preparing output directory")
	err = s.prepareOutDir(input.OutDir)
	report.EndStep(stepDirs, err)
	if err != nil {
		return ExportOutput{Error: err}
	}

	stepPages := report.StartStep("Rendering product pages")
	results, err := s.renderPages(ctx, input, paths, report)
	report.EndStep(stepPages, err)
	if err != nil {
		return ExportOutput{Error: err}
	}

	stepNotFound := report.StartStep("Writing 404 page")
	err = s.writeNotFound(input.OutDir)
	report.EndStep(stepNotFound, err)
	if err != nil {
		report.AddError(core.NotFoundFile, "Failed to write not-found page", err.Error())
		return ExportOutput{Error: err}
	}

	if input.PublicDir != "" {
		stepPublic := report.StartStep("Copying public assets")
		err := s.copyPublicDir(input.PublicDir, input.OutDir)
		report.EndStep(stepPublic, nil)
		if err != nil {
			report.AddWarning("Public assets", "Failed to copy public assets", err.Error())
		}
	}

	manifest := core.NewManifest(s.newID(), input.Mode, s.now())
	manifest.NotFound = core.NotFoundFile

	out := ExportOutput{Manifest: manifest}
	for _, r := range results {
		if !r.written {
			out.Skipped = append(out.Skipped, r.path)
			continue
		}
		manifest.AddRoute(r.path, r.file, r.content)
		out.Pages = append(out.Pages, ExportedPage{Path: r.path, File: r.file, Size: len(r.content)})
	}

	stepManifest := report.StartStep("Writing manifest")
	err = s.writeManifest(input.OutDir, manifest)
	report.EndStep(stepManifest, err)
	if err != nil {
		report.AddError(core.ManifestFile, "Failed to write manifest", err.Error())
		return ExportOutput{Error: err}
	}

	s.logger.Info("build complete",
		zap.String("build_id", manifest.BuildID),
		zap.Int("pages", len(out.Pages)),
		zap.Int("skipped", len(out.Skipped)),
	)
	return out
}

// renderPages runs load, render and write for every route with bounded
// parallelism. The first failure cancels the remaining routes.
func (s *ExportService) renderPages(ctx context.Context, input ExportInput, paths core.StaticPaths, report *cli.BuildReport) ([]pageResult, error) {
	results := make([]pageResult, len(paths.Paths))

	limit := input.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, params := range paths.Paths {
		routePath := params.Path()
		results[i].path = routePath

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			file, content, found, err := s.exportPage(gctx, input.OutDir, params)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					report.AddError(routePath, "Failed to export page", err.Error())
				}
				return err
			}
			if !found {
				report.AddWarning(routePath, "Product not found at build time, page omitted")
				s.logger.Warn("product not found during export", zap.String("id", params.ID))
				return nil
			}

			results[i].file = file
			results[i].content = content
			results[i].written = true
			report.PageExported()
			s.logger.Debug("exported page", zap.String("path", routePath), zap.String("file", file))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *ExportService) exportPage(ctx context.Context, outDir string, params core.RouteParams) (file string, content []byte, found bool, err error) {
	routePath := params.Path()
	if err := core.ValidateProductID(params.ID); err != nil {
		return "", nil, false, &core.RouteError{Path: routePath, Op: "validate", Err: err}
	}
	if err := core.ValidateRoutePath(routePath); err != nil {
		return "", nil, false, &core.RouteError{Path: routePath, Op: "validate", Err: err}
	}

	res, err := s.loader.Load(ctx, params)
	if err != nil {
		return "", nil, false, &core.RouteError{Path: routePath, Op: "load props", Err: err}
	}
	if res.NotFound {
		return "", nil, false, nil
	}

	content, err = s.renderer.Render(res.Props)
	if err != nil {
		return "", nil, false, &core.RouteError{Path: routePath, Op: "render", Err: err}
	}

	file = core.ProductFile(params.ID)
	dest := filepath.Join(outDir, filepath.FromSlash(file))
	if err := s.fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", nil, false, &core.RouteError{Path: routePath, Op: "write", Err: err}
	}
	if err := s.fs.WriteFile(dest, content, 0o644); err != nil {
		return "", nil, false, &core.RouteError{Path: routePath, Op: "write", Err: err}
	}
	return file, content, true, nil
}

// prepareOutDir drops pages left over from a previous build so removed
// products do not linger.
func (s *ExportService) prepareOutDir(outDir string) error {
	if err := s.fs.RemoveAll(filepath.Join(outDir, "product")); err != nil {
		return fmt.Errorf("clean output directory: %w", err)
	}
	if err := s.fs.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

func (s *ExportService) writeNotFound(outDir string) error {
	html, err := s.renderer.RenderNotFound()
	if err != nil {
		return fmt.Errorf("render not found page: %w", err)
	}
	return s.fs.WriteFile(filepath.Join(outDir, core.NotFoundFile), html, 0o644)
}

func (s *ExportService) writeManifest(outDir string, manifest *core.Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return s.fs.WriteFile(filepath.Join(outDir, core.ManifestFile), data, 0o644)
}

func (s *ExportService) copyPublicDir(src, dst string) error {
	if !s.fs.FileExists(src) {
		return nil
	}

	return s.fs.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			return s.fs.MkdirAll(destPath, 0o755)
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		data, err := s.fs.ReadFile(path)
		if err != nil {
			return err
		}
		return s.fs.WriteFile(destPath, data, iofs.FileMode(0o644))
	})
}
