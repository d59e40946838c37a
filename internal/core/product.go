package core

import (
	"fmt"
	"net/url"
	"strings"
)

const DefaultCurrency = "USD"

// Product is a catalog record as fetched for a single build.
type Product struct {
	ID       string  `json:"id" yaml:"id"`
	Title    string  `json:"title" yaml:"title"`
	Body     string  `json:"body" yaml:"body"`
	Price    float64 `json:"price" yaml:"price"`
	Currency string  `json:"currency,omitempty" yaml:"currency,omitempty"`
	Src      string  `json:"src" yaml:"src"`
	Alt      string  `json:"alt,omitempty" yaml:"alt,omitempty"`
}

// ImageAlt returns the alt text for the product image, falling back to the title.
func (p Product) ImageAlt() string {
	if p.Alt != "" {
		return p.Alt
	}
	return p.Title
}

func (p Product) CurrencyCode() string {
	if p.Currency == "" {
		return DefaultCurrency
	}
	return strings.ToUpper(p.Currency)
}

func (p Product) Params() RouteParams {
	return RouteParams{ID: p.ID}
}

// RouteParams identifies which product page variant to pre-render.
type RouteParams struct {
	ID string `json:"id"`
}

func (r RouteParams) Path() string {
	return ProductPath(r.ID)
}

// StaticPaths is the result of route enumeration. Fallback is always false:
// ids missing at build time resolve to not found.
type StaticPaths struct {
	Paths    []RouteParams
	Fallback bool
}

func (s StaticPaths) IDs() []string {
	ids := make([]string, len(s.Paths))
	for i, p := range s.Paths {
		ids[i] = p.ID
	}
	return ids
}

// PageProps is the input of the page renderer.
type PageProps struct {
	Product Product `json:"product"`
}

// PropsResult carries either page props or the not-found signal.
type PropsResult struct {
	Props    PageProps
	NotFound bool
}

func ProductPath(id string) string {
	return "/product/" + url.PathEscape(id)
}

// ValidateProducts checks catalog invariants: non-empty unique ids, a title,
// a non-negative price.
func ValidateProducts(products []Product) error {
	seen := make(map[string]struct{}, len(products))
	for i, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("%w: product at position %d has an empty id", ErrInvalidProduct, i)
		}
		if err := ValidateProductID(p.ID); err != nil {
			return err
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateProductID, p.ID)
		}
		seen[p.ID] = struct{}{}
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("%w: product %q has an empty title", ErrInvalidProduct, p.ID)
		}
		if p.Price < 0 {
			return fmt.Errorf("%w: product %q has a negative price", ErrInvalidProduct, p.ID)
		}
	}
	return nil
}
