package usecase

import (
	"context"
	"fmt"

	"github.com/3-lines-studio/storefront/internal/core"
)

type ServePageInput struct {
	Mode        core.Mode
	Manifest    *core.Manifest
	RequestPath string
}

type ServePageOutput struct {
	Action core.PageAction
	// RoutePath is the manifest html file, relative to the output directory.
	RoutePath string
	ETag      string
	HTML      []byte
	Error     error
}

type PageService struct {
	loader   *PropsLoader
	renderer PageRenderer
}

func NewPageService(loader *PropsLoader, renderer PageRenderer) *PageService {
	return &PageService{
		loader:   loader,
		renderer: renderer,
	}
}

func (s *PageService) ServePage(ctx context.Context, input ServePageInput) ServePageOutput {
	decision := core.DecidePageAction(core.PageRequest{
		Mode:        input.Mode,
		RequestPath: input.RequestPath,
		Manifest:    input.Manifest,
	})

	switch decision.Action {
	case core.ActionServeRouteFile:
		return ServePageOutput{
			Action:    core.ActionServeRouteFile,
			RoutePath: decision.HTMLPath,
			ETag:      input.Manifest.Hashes[core.NormalizePath(input.RequestPath)],
		}

	case core.ActionNotFound:
		return ServePageOutput{Action: core.ActionNotFound}

	case core.ActionRenderLive:
		return s.renderLive(ctx, decision.Params)

	default:
		return ServePageOutput{
			Action: core.ActionNotFound,
			Error:  fmt.Errorf("unknown page action %d", decision.Action),
		}
	}
}

func (s *PageService) renderLive(ctx context.Context, params core.RouteParams) ServePageOutput {
	res, err := s.loader.Load(ctx, params)
	if err != nil {
		return ServePageOutput{Action: core.ActionRenderLive, Error: err}
	}
	if res.NotFound {
		return ServePageOutput{Action: core.ActionNotFound}
	}

	html, err := s.renderer.Render(res.Props)
	if err != nil {
		return ServePageOutput{
			Action: core.ActionRenderLive,
			Error:  fmt.Errorf("render %s: %w", params.Path(), err),
		}
	}

	return ServePageOutput{
		Action: core.ActionRenderLive,
		HTML:   html,
		ETag:   core.HashContent(html),
	}
}
