package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/3-lines-studio/storefront/internal/core"
)

//go:embed data/products.yaml
var defaultCatalog []byte

// Static is an immutable in-memory catalog.
type Static struct {
	products []core.Product
	index    map[string]int
}

func NewStatic(products []core.Product) (*Static, error) {
	if err := Validate(products); err != nil {
		return nil, err
	}

	s := &Static{
		products: append([]core.Product(nil), products...),
		index:    make(map[string]int, len(products)),
	}
	for i, p := range s.products {
		s.index[p.ID] = i
	}
	return s, nil
}

// Default returns the catalog dataset compiled into the binary.
func Default() (*Static, error) {
	products, err := Decode(bytes.NewReader(defaultCatalog))
	if err != nil {
		return nil, fmt.Errorf("decode embedded catalog: %w", err)
	}
	return NewStatic(products)
}

// LoadFile reads a YAML or JSON catalog file.
func LoadFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	products, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", path, err)
	}
	return NewStatic(products)
}

type catalogDocument struct {
	Products []core.Product `yaml:"products"`
}

// Decode accepts either {"products": [...]} or a bare list of products.
func Decode(r io.Reader) ([]core.Product, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var products []core.Product
		if err := root.Decode(&products); err != nil {
			return nil, err
		}
		return trimBodies(products), nil
	}

	var doc catalogDocument
	if err := root.Decode(&doc); err != nil {
		return nil, err
	}
	return trimBodies(doc.Products), nil
}

// Block scalars keep their trailing newline.
func trimBodies(products []core.Product) []core.Product {
	for i := range products {
		products[i].Body = strings.TrimSpace(products[i].Body)
	}
	return products
}

func (s *Static) List(ctx context.Context) ([]core.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]core.Product(nil), s.products...), nil
}

func (s *Static) Get(ctx context.Context, id string) (core.Product, error) {
	if err := ctx.Err(); err != nil {
		return core.Product{}, err
	}
	i, ok := s.index[id]
	if !ok {
		return core.Product{}, core.ErrProductNotFound
	}
	return s.products[i], nil
}
