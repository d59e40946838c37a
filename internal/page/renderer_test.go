package page

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/storefront/internal/core"
)

var thuja = core.Product{
	ID:    "t1",
	Title: "Thuja Green Giant",
	Body:  "Fast-growing evergreen.",
	Price: 39.99,
	Src:   "https://img/t1.jpg",
}

func renderDoc(t *testing.T, r *Renderer, p core.Product) *goquery.Document {
	t.Helper()
	html, err := r.Render(core.PageProps{Product: p})
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRenderHead(t *testing.T) {
	doc := renderDoc(t, NewRenderer(Options{}), thuja)

	assert.Equal(t, "Thuja Green Giant | Fastest Growing Trees", doc.Find("title").Text())

	desc, _ := doc.Find(`meta[name="description"]`).Attr("content")
	assert.Equal(t, "Fast-growing evergreen.", desc)

	viewport, _ := doc.Find(`meta[name="viewport"]`).Attr("content")
	assert.Equal(t, "width=device-width, initial-scale=1", viewport)

	icon, _ := doc.Find(`link[rel="icon"]`).Attr("href")
	assert.Equal(t, "/favicon.ico", icon)

	assert.Equal(t, 0, doc.Find(`link[rel="canonical"]`).Length())
	assert.Equal(t, 0, doc.Find(`script[type="application/ld+json"]`).Length())
}

func TestRenderStoreNameOption(t *testing.T) {
	doc := renderDoc(t, NewRenderer(Options{StoreName: "Tree Shop"}), thuja)
	assert.Equal(t, "Thuja Green Giant | Tree Shop", doc.Find("title").Text())
}

func TestRenderImage(t *testing.T) {
	tests := []struct {
		name     string
		product  core.Product
		wantSrc  string
		wantAlt  string
		fallback string
	}{
		{
			name:     "alt falls back to title",
			product:  thuja,
			wantSrc:  "https://img/t1.jpg",
			wantAlt:  "Thuja Green Giant",
			fallback: "https://via.placeholder.com/556x554.png?text=?",
		},
		{
			name: "explicit alt",
			product: core.Product{
				ID: "t2", Title: "Leyland Cypress", Price: 49.99,
				Src: "https://img/t2.jpg", Alt: "Cypress hedge",
			},
			wantSrc:  "https://img/t2.jpg",
			wantAlt:  "Cypress hedge",
			fallback: "https://via.placeholder.com/556x554.png?text=?",
		},
		{
			name:     "missing src renders fallback",
			product:  core.Product{ID: "t5", Title: "Meyer Lemon", Price: 69.99},
			wantSrc:  "https://via.placeholder.com/556x554.png?text=?",
			wantAlt:  "Meyer Lemon",
			fallback: "https://via.placeholder.com/556x554.png?text=?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := renderDoc(t, NewRenderer(Options{}), tt.product).Find(".image-box img")
			require.Equal(t, 1, img.Length())

			src, _ := img.Attr("src")
			alt, _ := img.Attr("alt")
			fallback, _ := img.Attr("data-fallback-src")
			onerror, _ := img.Attr("onerror")
			sizes, _ := img.Attr("sizes")

			assert.Equal(t, tt.wantSrc, src)
			assert.Equal(t, tt.wantAlt, alt)
			assert.Equal(t, tt.fallback, fallback)
			assert.Contains(t, onerror, "this.dataset.fallbackSrc")
			assert.Contains(t, sizes, "34.75rem")
		})
	}
}

func TestRenderFallbackOptions(t *testing.T) {
	opts := Options{PlaceholderURL: "https://placehold.example/", FallbackWidth: 100, FallbackHeight: 50}
	assert.Equal(t, "https://placehold.example/100x50.png?text=?", opts.FallbackSrc())
	assert.Equal(t, "https://via.placeholder.com/556x554.png?text=?", Options{}.FallbackSrc())
}

func TestRenderDetailCard(t *testing.T) {
	p := thuja
	p.Body = "Grows **3 feet** a year.\n\n<script>alert(1)</script>"
	doc := renderDoc(t, NewRenderer(Options{}), p)

	card := doc.Find(".card")
	assert.Equal(t, "Thuja Green Giant", card.Find("h1").Text())
	assert.Equal(t, "About", card.Find("h2").Text())
	assert.Equal(t, "3 feet", card.Find(".body strong").Text())
	assert.Equal(t, 0, card.Find(".body script").Length())
}

func TestRenderAddToCart(t *testing.T) {
	doc := renderDoc(t, NewRenderer(Options{CartAction: "/api/cart"}), thuja)

	form := doc.Find("form.add-to-cart")
	require.Equal(t, 1, form.Length())

	action, _ := form.Attr("action")
	assert.Equal(t, "/api/cart", action)

	id, _ := form.Find(`input[name="id"]`).Attr("value")
	qty, _ := form.Find(`input[name="quantity"]`).Attr("value")
	assert.Equal(t, "t1", id)
	assert.Equal(t, "1", qty)

	raw, ok := form.Attr("data-product")
	require.True(t, ok)
	var got core.Product
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, thuja, got)

	assert.Equal(t, "$39.99", doc.Find(".price").Text())
}

func TestRenderCanonicalAndStructuredData(t *testing.T) {
	doc := renderDoc(t, NewRenderer(Options{BaseURL: "https://shop.example/"}), thuja)

	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	assert.Equal(t, "https://shop.example/product/t1", canonical)

	scripts := doc.Find(`script[type="application/ld+json"]`)
	require.Equal(t, 2, scripts.Length())

	var product map[string]any
	require.NoError(t, json.Unmarshal([]byte(scripts.First().Text()), &product))
	assert.Equal(t, "Product", product["@type"])
	assert.Equal(t, "Thuja Green Giant", product["name"])
	offers := product["offers"].(map[string]any)
	assert.Equal(t, "39.99", offers["price"])
	assert.Equal(t, "USD", offers["priceCurrency"])
}

func TestRenderEscapesProductText(t *testing.T) {
	p := thuja
	p.Title = `<b>"Giant"</b>`
	html, err := NewRenderer(Options{}).Render(core.PageProps{Product: p})
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<b>\"Giant\"</b> |")
}

func TestRenderIsDeterministic(t *testing.T) {
	r := NewRenderer(Options{BaseURL: "https://shop.example"})
	a, err := r.Render(core.PageProps{Product: thuja})
	require.NoError(t, err)
	b, err := r.Render(core.PageProps{Product: thuja})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderNotFound(t *testing.T) {
	html, err := NewRenderer(Options{}).RenderNotFound()
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, "Page not found | Fastest Growing Trees", doc.Find("title").Text())
	assert.Equal(t, "404", doc.Find("h1").Text())
}

func TestRenderError(t *testing.T) {
	r := NewRenderer(Options{})

	dev, err := r.RenderError(core.ErrorData{Message: "catalog timeout", IsDev: true})
	require.NoError(t, err)
	assert.Contains(t, string(dev), "catalog timeout")

	prod, err := r.RenderError(core.ErrorData{Message: "catalog timeout"})
	require.NoError(t, err)
	assert.NotContains(t, string(prod), "catalog timeout")
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount float64
		code   string
		want   string
	}{
		{39.99, "USD", "$39.99"},
		{1234.5, "USD", "$1,234.50"},
		{1200, "JPY", "¥1,200"},
		{10, "EUR", "€10.00"},
		{5, "CHF", "CHF 5.00"},
		{5, "nope", "$5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := FormatPrice(tt.amount, tt.code)
			if got != tt.want {
				t.Errorf("FormatPrice(%v, %q) = %q, want %q", tt.amount, tt.code, got, tt.want)
			}
		})
	}
}

func TestRenderResponsiveLayout(t *testing.T) {
	html, err := NewRenderer(Options{}).Render(core.PageProps{Product: thuja})
	require.NoError(t, err)
	s := string(html)

	for _, want := range []string{
		"@media (min-width:48em){.stack{flex-direction:row",
		".image-box{width:34.75rem}",
		".card-box{width:20.625rem}",
		"height:34.625rem",
	} {
		assert.True(t, strings.Contains(s, want), "missing %q", want)
	}
}
