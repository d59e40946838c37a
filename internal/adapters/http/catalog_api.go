package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/3-lines-studio/storefront/internal/catalog"
	"github.com/3-lines-studio/storefront/internal/core"
)

// CatalogAPI exposes a catalog.Service as JSON:
//
//	GET /api/products      {"products":[...]}
//	GET /api/product?id=x  product, or null with 404
type CatalogAPI struct {
	catalog catalog.Service
	logger  *zap.Logger
}

type productsResponse struct {
	Products []core.Product `json:"products"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewCatalogAPI(catalog catalog.Service, logger *zap.Logger) *CatalogAPI {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogAPI{catalog: catalog, logger: logger}
}

func (a *CatalogAPI) Mount(r chi.Router) {
	r.Get("/api/products", a.listProducts)
	r.Get("/api/product", a.getProduct)
}

func (a *CatalogAPI) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := a.catalog.List(r.Context())
	if err != nil {
		a.logger.Error("list products", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "catalog unavailable"})
		return
	}
	if products == nil {
		products = []core.Product{}
	}
	writeJSON(w, http.StatusOK, productsResponse{Products: products})
}

func (a *CatalogAPI) getProduct(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("id") {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing id"})
		return
	}

	product, err := a.catalog.Get(r.Context(), query.Get("id"))
	if errors.Is(err, core.ErrProductNotFound) {
		writeJSON(w, http.StatusNotFound, nil)
		return
	}
	if err != nil {
		a.logger.Error("get product", zap.String("id", query.Get("id")), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "catalog unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
