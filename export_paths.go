package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/3-lines-studio/storefront/internal/core"
	"github.com/3-lines-studio/storefront/internal/usecase"
)

type pathsExport struct {
	Version  int          `json:"version"`
	Fallback bool         `json:"fallback"`
	Entries  []pathExport `json:"entries"`
}

type pathExport struct {
	Params   core.RouteParams `json:"params"`
	Path     string           `json:"path"`
	Props    *core.PageProps  `json:"props"`
	NotFound bool             `json:"notFound,omitempty"`
}

// ExportPaths writes the enumerated routes and their page props as JSON.
func (a *App) ExportPaths(ctx context.Context, w io.Writer) error {
	paths, err := usecase.StaticPaths(ctx, a.catalog)
	if err != nil {
		return err
	}

	export := pathsExport{
		Version:  1,
		Fallback: paths.Fallback,
		Entries:  make([]pathExport, 0, len(paths.Paths)),
	}

	loader := usecase.NewPropsLoader(a.catalog)
	for _, params := range paths.Paths {
		res, err := loader.Load(ctx, params)
		if err != nil {
			return fmt.Errorf("load props for %s: %w", params.Path(), err)
		}

		entry := pathExport{Params: params, Path: params.Path(), NotFound: res.NotFound}
		if !res.NotFound {
			props := res.Props
			entry.Props = &props
		}
		export.Entries = append(export.Entries, entry)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("failed to encode export data: %w", err)
	}
	return nil
}
