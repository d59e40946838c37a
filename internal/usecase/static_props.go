package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/3-lines-studio/storefront/internal/core"
)

// PropsLoader resolves the page props of one product route against the
// catalog selected for the current environment.
type PropsLoader struct {
	catalog Catalog
}

func NewPropsLoader(catalog Catalog) *PropsLoader {
	return &PropsLoader{catalog: catalog}
}

func (l *PropsLoader) Load(ctx context.Context, params core.RouteParams) (core.PropsResult, error) {
	product, err := l.catalog.Get(ctx, params.ID)
	if errors.Is(err, core.ErrProductNotFound) {
		return core.PropsResult{NotFound: true}, nil
	}
	if err != nil {
		return core.PropsResult{}, fmt.Errorf("get product %q: %w", params.ID, err)
	}

	return core.PropsResult{Props: core.PageProps{Product: product}}, nil
}
