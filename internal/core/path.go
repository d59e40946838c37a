package core

import (
	"fmt"
	"path"
	"strings"
)

const (
	NotFoundFile = "404.html"
	ManifestFile = "manifest.json"
)

func NormalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path != "/" && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func ValidateRoutePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must start with /")
	}

	if strings.Contains(path, "?") {
		return fmt.Errorf("path cannot contain query string")
	}

	if strings.Contains(path, "#") {
		return fmt.Errorf("path cannot contain fragment")
	}

	if strings.Contains(path, "..") {
		return fmt.Errorf("path cannot contain parent directory references")
	}

	if strings.Contains(path, "*") {
		return fmt.Errorf("path cannot contain wildcards")
	}

	for _, segment := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		if segment == "." {
			return fmt.Errorf("path cannot contain current directory references")
		}
	}

	return nil
}

// ValidateProductID rejects ids that cannot name a single output directory.
func ValidateProductID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidProduct)
	}
	if id == "." || id == ".." || strings.ContainsAny(id, "/\\") {
		return fmt.Errorf("%w: id %q is not a valid path segment", ErrInvalidProduct, id)
	}
	return nil
}

// ProductFile is the html file of a product page, relative to the output
// directory. The id is not escaped: "red maple" -> product/red maple/index.html.
func ProductFile(id string) string {
	return path.Join("product", id, "index.html")
}
