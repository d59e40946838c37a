// Package catalog holds the product catalog service boundary and its
// in-process sources. Static generation only ever talks to Service.
package catalog

import (
	"context"
	"fmt"

	"golang.org/x/text/currency"

	"github.com/3-lines-studio/storefront/internal/core"
)

// Service lists the catalog and looks up single products by exact id.
// Get reports a missing product with core.ErrProductNotFound.
type Service interface {
	List(ctx context.Context) ([]core.Product, error)
	Get(ctx context.Context, id string) (core.Product, error)
}

// Validate applies core catalog invariants and checks currency codes.
func Validate(products []core.Product) error {
	if err := core.ValidateProducts(products); err != nil {
		return err
	}
	for _, p := range products {
		if _, err := currency.ParseISO(p.CurrencyCode()); err != nil {
			return fmt.Errorf("%w: product %q has unknown currency %q", core.ErrInvalidProduct, p.ID, p.Currency)
		}
	}
	return nil
}
