package catalog

import (
	"context"
	"sync/atomic"

	"github.com/3-lines-studio/storefront/internal/core"
)

// Swappable delegates to a catalog that can be replaced at runtime, e.g. when
// the development server reloads a catalog file.
type Swappable struct {
	current atomic.Pointer[serviceBox]
}

type serviceBox struct {
	Service
}

func NewSwappable(initial Service) *Swappable {
	s := &Swappable{}
	s.Swap(initial)
	return s
}

func (s *Swappable) Swap(next Service) {
	s.current.Store(&serviceBox{next})
}

func (s *Swappable) List(ctx context.Context) ([]core.Product, error) {
	return s.current.Load().List(ctx)
}

func (s *Swappable) Get(ctx context.Context, id string) (core.Product, error) {
	return s.current.Load().Get(ctx, id)
}
