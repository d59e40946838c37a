package usecase

import (
	"context"
	"fmt"

	"github.com/3-lines-studio/storefront/internal/core"
)

// StaticPaths enumerates one route per catalog product, in catalog order.
// Fallback is disabled so ids unknown at build time are never rendered.
func StaticPaths(ctx context.Context, cat Catalog) (core.StaticPaths, error) {
	products, err := cat.List(ctx)
	if err != nil {
		return core.StaticPaths{}, fmt.Errorf("list products: %w", err)
	}

	seen := make(map[string]struct{}, len(products))
	paths := make([]core.RouteParams, 0, len(products))
	for _, p := range products {
		if p.ID == "" {
			return core.StaticPaths{}, fmt.Errorf("%w: empty id", core.ErrInvalidProduct)
		}
		if _, ok := seen[p.ID]; ok {
			return core.StaticPaths{}, fmt.Errorf("%w: %q", core.ErrDuplicateProductID, p.ID)
		}
		seen[p.ID] = struct{}{}
		paths = append(paths, p.Params())
	}

	return core.StaticPaths{Paths: paths, Fallback: false}, nil
}
