// Package page renders the product detail document and the standalone
// not-found and error documents.
package page

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/3-lines-studio/storefront/internal/core"
	"github.com/3-lines-studio/storefront/internal/seo"
)

const (
	DefaultStoreName      = "Fastest Growing Trees"
	DefaultPlaceholderURL = "https://via.placeholder.com"
	DefaultFallbackWidth  = 556
	DefaultFallbackHeight = 554
	DefaultCartAction     = "/cart"

	detailSubtitle = "About"
	imageWidth     = "34.75rem"
)

type Options struct {
	StoreName string
	// BaseURL is the public site origin. Canonical links and structured data
	// are only emitted when it is set.
	BaseURL        string
	CartAction     string
	PlaceholderURL string
	FallbackWidth  int
	FallbackHeight int
}

func (o Options) withDefaults() Options {
	if o.StoreName == "" {
		o.StoreName = DefaultStoreName
	}
	if o.CartAction == "" {
		o.CartAction = DefaultCartAction
	}
	if o.PlaceholderURL == "" {
		o.PlaceholderURL = DefaultPlaceholderURL
	}
	if o.FallbackWidth <= 0 {
		o.FallbackWidth = DefaultFallbackWidth
	}
	if o.FallbackHeight <= 0 {
		o.FallbackHeight = DefaultFallbackHeight
	}
	o.BaseURL = strings.TrimSuffix(o.BaseURL, "/")
	o.PlaceholderURL = strings.TrimSuffix(o.PlaceholderURL, "/")
	return o
}

// FallbackSrc is the placeholder image shown when the product image fails.
func (o Options) FallbackSrc() string {
	o = o.withDefaults()
	return fmt.Sprintf("%s/%dx%d.png?text=?", o.PlaceholderURL, o.FallbackWidth, o.FallbackHeight)
}

type Renderer struct {
	opts     Options
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

func NewRenderer(opts Options) *Renderer {
	return &Renderer{
		opts:     opts.withDefaults(),
		markdown: goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough)),
		policy:   newBodyPolicy(),
	}
}

func newBodyPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

type productView struct {
	Title       string
	Description string
	Canonical   string
	JSONLD      []template.JS

	ImageSrc    string
	ImageAlt    string
	ImageSizes  string
	FallbackSrc string

	Heading  string
	Subtitle string
	BodyHTML template.HTML

	Price       string
	ProductID   string
	ProductJSON string
	CartAction  string
}

// Render produces the full product document. It depends only on props and
// the renderer options.
func (r *Renderer) Render(props core.PageProps) ([]byte, error) {
	p := props.Product

	body, err := r.renderBody(p.Body)
	if err != nil {
		return nil, fmt.Errorf("render body of %q: %w", p.ID, err)
	}

	productJSON, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode product %q: %w", p.ID, err)
	}

	fallback := r.opts.FallbackSrc()
	src := p.Src
	if src == "" {
		src = fallback
	}

	view := productView{
		Title:       p.Title + " | " + r.opts.StoreName,
		Description: p.Body,
		ImageSrc:    src,
		ImageAlt:    p.ImageAlt(),
		ImageSizes:  imageSizes(),
		FallbackSrc: fallback,
		Heading:     p.Title,
		Subtitle:    detailSubtitle,
		BodyHTML:    body,
		Price:       FormatPrice(p.Price, p.CurrencyCode()),
		ProductID:   p.ID,
		ProductJSON: string(productJSON),
		CartAction:  r.opts.CartAction,
	}

	if r.opts.BaseURL != "" {
		view.Canonical = r.opts.BaseURL + core.ProductPath(p.ID)
		view.JSONLD = r.structuredData(p, view.Canonical)
	}

	var buf bytes.Buffer
	if err := ProductTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("execute product template: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) RenderNotFound() ([]byte, error) {
	var buf bytes.Buffer
	if err := NotFoundTemplate.Execute(&buf, map[string]string{"StoreName": r.opts.StoreName}); err != nil {
		return nil, fmt.Errorf("execute not found template: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderError renders the error document. The message is only included in
// development mode.
func (r *Renderer) RenderError(data core.ErrorData) ([]byte, error) {
	var buf bytes.Buffer
	if err := ErrorTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute error template: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderBody(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

func (r *Renderer) structuredData(p core.Product, canonical string) []template.JS {
	product := seo.Product(p.Title, p.Body, canonical, p.Src, p.ID, &seo.Offer{
		Price:    p.Price,
		Currency: p.CurrencyCode(),
		URL:      canonical,
	})
	breadcrumbs := seo.BreadcrumbList([]seo.BreadcrumbItem{
		{Name: r.opts.StoreName, Item: r.opts.BaseURL + "/"},
		{Name: p.Title, Item: canonical},
	})
	return []template.JS{
		template.JS(seo.JSON(product)),
		template.JS(seo.JSON(breadcrumbs)),
	}
}

// imageSizes mirrors the fixed image width at every breakpoint.
func imageSizes() string {
	return "(max-width: 768px) " + imageWidth + ", (max-width: 1200px) " + imageWidth + ", " + imageWidth
}
