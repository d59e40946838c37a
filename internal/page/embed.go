package page

import (
	_ "embed"
	"html/template"
)

//go:embed templates/product.html
var productTemplateSource string

//go:embed templates/notfound.html
var notFoundTemplateSource string

//go:embed templates/error.html
var errorTemplateSource string

var (
	ProductTemplate  = template.Must(template.New("product").Parse(productTemplateSource))
	NotFoundTemplate = template.Must(template.New("notfound").Parse(notFoundTemplateSource))
	ErrorTemplate    = template.Must(template.New("error").Parse(errorTemplateSource))
)
