package core

import (
	"errors"
	"testing"
	"time"
)

func TestProductImageAlt(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    string
	}{
		{
			name:    "alt text wins",
			product: Product{Title: "Thuja Green Giant", Alt: "Row of thuja"},
			want:    "Row of thuja",
		},
		{
			name:    "missing alt falls back to title",
			product: Product{Title: "Thuja Green Giant"},
			want:    "Thuja Green Giant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.product.ImageAlt(); got != tt.want {
				t.Errorf("ImageAlt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateProducts(t *testing.T) {
	tests := []struct {
		name     string
		products []Product
		wantErr  error
	}{
		{
			name:     "empty catalog is valid",
			products: nil,
		},
		{
			name: "unique ids are valid",
			products: []Product{
				{ID: "t1", Title: "One", Price: 1},
				{ID: "t2", Title: "Two", Price: 0},
			},
		},
		{
			name: "duplicate id",
			products: []Product{
				{ID: "t1", Title: "One"},
				{ID: "t1", Title: "Again"},
			},
			wantErr: ErrDuplicateProductID,
		},
		{
			name:     "blank id",
			products: []Product{{ID: "  ", Title: "One"}},
			wantErr:  ErrInvalidProduct,
		},
		{
			name:     "missing title",
			products: []Product{{ID: "t1"}},
			wantErr:  ErrInvalidProduct,
		},
		{
			name:     "negative price",
			products: []Product{{ID: "t1", Title: "One", Price: -1}},
			wantErr:  ErrInvalidProduct,
		},
		{
			name:     "dot id",
			products: []Product{{ID: ".", Title: "One"}},
			wantErr:  ErrInvalidProduct,
		},
		{
			name:     "parent id",
			products: []Product{{ID: "..", Title: "One"}},
			wantErr:  ErrInvalidProduct,
		},
		{
			name:     "slash in id",
			products: []Product{{ID: "a/b", Title: "One"}},
			wantErr:  ErrInvalidProduct,
		},
		{
			name:     "space in id is valid",
			products: []Product{{ID: "red maple", Title: "Red Maple"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProducts(tt.products)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestProductPath(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{id: "t1", want: "/product/t1"},
		{id: "42", want: "/product/42"},
		{id: "a b", want: "/product/a%20b"},
		{id: "a/b", want: "/product/a%2Fb"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := (RouteParams{ID: tt.id}).Path(); got != tt.want {
				t.Errorf("Path() = %q, want %q", got, tt.want)
			}
			id, ok := ProductIDFromPath(tt.want)
			if !ok || id != tt.id {
				t.Errorf("ProductIDFromPath(%q) = %q, %v; want %q", tt.want, id, ok, tt.id)
			}
		})
	}
}

func TestProductIDFromPathRejects(t *testing.T) {
	for _, p := range []string{"/", "/product", "/product/", "/products/t1", "/product/t1/extra", "/product/%zz"} {
		if id, ok := ProductIDFromPath(p); ok {
			t.Errorf("ProductIDFromPath(%q) = %q, want no match", p, id)
		}
	}
}

func TestProductFile(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{id: "t1", want: "product/t1/index.html"},
		{id: "red maple", want: "product/red maple/index.html"},
		{id: "a&b", want: "product/a&b/index.html"},
	}

	for _, tt := range tests {
		if got := ProductFile(tt.id); got != tt.want {
			t.Errorf("ProductFile(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestValidateRoutePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{path: "/product/t1", wantErr: false},
		{path: "", wantErr: true},
		{path: "product/t1", wantErr: true},
		{path: "/product/t1?x=1", wantErr: true},
		{path: "/product/t1#top", wantErr: true},
		{path: "/product/..", wantErr: true},
		{path: "/product/*", wantErr: true},
		{path: "/product/.", wantErr: true},
		{path: "/product/./t1", wantErr: true},
		{path: "/product/v1.2", wantErr: false},
	}

	for _, tt := range tests {
		err := ValidateRoutePath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateRoutePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeProd},
		{in: "production", want: ModeProd},
		{in: "Development", want: ModeDev},
		{in: "dev", want: ModeDev},
		{in: "staging", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDecidePageAction(t *testing.T) {
	manifest := NewManifest("build-1", ModeProd, time.Unix(0, 0))
	manifest.AddRoute("/product/t1", "product/t1/index.html", []byte("<html></html>"))

	tests := []struct {
		name       string
		req        PageRequest
		wantAction PageAction
		wantHTML   string
		wantID     string
	}{
		{
			name:       "prod serves exported route",
			req:        PageRequest{Mode: ModeProd, RequestPath: "/product/t1", Manifest: manifest},
			wantAction: ActionServeRouteFile,
			wantHTML:   "product/t1/index.html",
		},
		{
			name:       "prod trailing slash is normalized",
			req:        PageRequest{Mode: ModeProd, RequestPath: "/product/t1/", Manifest: manifest},
			wantAction: ActionServeRouteFile,
			wantHTML:   "product/t1/index.html",
		},
		{
			name:       "prod unmapped id is not found",
			req:        PageRequest{Mode: ModeProd, RequestPath: "/product/does-not-exist", Manifest: manifest},
			wantAction: ActionNotFound,
		},
		{
			name:       "prod without manifest is not found",
			req:        PageRequest{Mode: ModeProd, RequestPath: "/product/t1"},
			wantAction: ActionNotFound,
		},
		{
			name:       "dev renders product routes live",
			req:        PageRequest{Mode: ModeDev, RequestPath: "/product/t9"},
			wantAction: ActionRenderLive,
			wantID:     "t9",
		},
		{
			name:       "dev non product path is not found",
			req:        PageRequest{Mode: ModeDev, RequestPath: "/about"},
			wantAction: ActionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecidePageAction(tt.req)
			if got.Action != tt.wantAction {
				t.Fatalf("Action = %v, want %v", got.Action, tt.wantAction)
			}
			if got.HTMLPath != tt.wantHTML {
				t.Errorf("HTMLPath = %q, want %q", got.HTMLPath, tt.wantHTML)
			}
			if got.Params.ID != tt.wantID {
				t.Errorf("Params.ID = %q, want %q", got.Params.ID, tt.wantID)
			}
		})
	}
}

func TestManifestRoundTrip(t *testing.T) {
	m := NewManifest("build-1", ModeDev, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	m.AddRoute("/product/t1", "product/t1/index.html", []byte("a"))
	m.NotFound = NotFoundFile

	data := []byte(`{"buildId":"build-1","generatedAt":"2026-01-02T03:04:05Z","mode":"development","routes":{"/product/t1":"product/t1/index.html"},"notFound":"404.html"}`)
	parsed, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if parsed.BuildID != m.BuildID || parsed.Mode != m.Mode || parsed.NotFound != m.NotFound {
		t.Errorf("parsed manifest = %+v, want %+v", parsed, m)
	}
	if !parsed.GeneratedAt.Equal(m.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", parsed.GeneratedAt, m.GeneratedAt)
	}
	if htmlPath, ok := MatchStaticRoute(parsed, "/product/t1"); !ok || htmlPath != "product/t1/index.html" {
		t.Errorf("MatchStaticRoute = %q, %v", htmlPath, ok)
	}
}

func TestHashContentStable(t *testing.T) {
	a := HashContent([]byte("hello"))
	if a != HashContent([]byte("hello")) {
		t.Error("hash is not stable")
	}
	if a == HashContent([]byte("hello!")) {
		t.Error("different content produced the same hash")
	}
	if len(a) != 16 {
		t.Errorf("hash length = %d, want 16", len(a))
	}
}

func TestGetContentType(t *testing.T) {
	tests := map[string]string{
		"favicon.ico":       "image/x-icon",
		"a/b/index.html":    "text/html; charset=utf-8",
		"manifest.json":     "application/json",
		"unknown.extension": "application/octet-stream",
	}
	for path, want := range tests {
		if got := GetContentType(path); got != want {
			t.Errorf("GetContentType(%q) = %q, want %q", path, got, want)
		}
	}
}
