package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/3-lines-studio/storefront/internal/catalog"
	"github.com/3-lines-studio/storefront/internal/core"
)

const maxResponseBytes = 8 << 20

// CatalogClient implements catalog.Service against a remote catalog API.
type CatalogClient struct {
	baseURL string
	client  *http.Client
}

func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// productID accepts ids encoded as JSON strings or numbers.
type productID string

func (id *productID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = productID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id must be a string or number: %s", data)
	}
	*id = productID(n.String())
	return nil
}

type wireProduct struct {
	ID       productID `json:"id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Price    float64   `json:"price"`
	Currency string    `json:"currency"`
	Src      string    `json:"src"`
	Alt      string    `json:"alt"`
}

func (p wireProduct) product() core.Product {
	return core.Product{
		ID:       string(p.ID),
		Title:    p.Title,
		Body:     p.Body,
		Price:    p.Price,
		Currency: p.Currency,
		Src:      p.Src,
		Alt:      p.Alt,
	}
}

func (c *CatalogClient) List(ctx context.Context) ([]core.Product, error) {
	const op = "http.CatalogClient.List"

	body, status, err := c.get(ctx, c.baseURL+"/api/products")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", op, status)
	}

	var resp struct {
		Products []wireProduct `json:"products"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	products := make([]core.Product, len(resp.Products))
	for i, p := range resp.Products {
		products[i] = p.product()
	}
	if err := catalog.Validate(products); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (c *CatalogClient) Get(ctx context.Context, id string) (core.Product, error) {
	const op = "http.CatalogClient.Get"

	body, status, err := c.get(ctx, c.ProductURL(id))
	if err != nil {
		return core.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if status == http.StatusNotFound {
		return core.Product{}, core.ErrProductNotFound
	}
	if status != http.StatusOK {
		return core.Product{}, fmt.Errorf("%s: unexpected status %d", op, status)
	}
	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return core.Product{}, core.ErrProductNotFound
	}

	var p wireProduct
	if err := json.Unmarshal(body, &p); err != nil {
		return core.Product{}, fmt.Errorf("%s: decode: %w", op, err)
	}
	product := p.product()
	if product.ID != id {
		return core.Product{}, fmt.Errorf("%s: requested %q, got %q", op, id, product.ID)
	}
	return product, nil
}

// ProductURL is the lookup URL for id, with id query-escaped.
func (c *CatalogClient) ProductURL(id string) string {
	return c.baseURL + "/api/product?" + url.Values{"id": {id}}.Encode()
}

func (c *CatalogClient) get(ctx context.Context, target string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func (c *CatalogClient) String() string {
	return "api(" + c.baseURL + ")"
}
