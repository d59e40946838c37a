package core

import (
	"net/url"
	"strings"
)

type PageAction int

const (
	ActionServeRouteFile PageAction = iota
	ActionRenderLive
	ActionNotFound
)

type PageRequest struct {
	Mode        Mode
	RequestPath string
	Manifest    *Manifest
}

type PageDecision struct {
	Action   PageAction
	HTMLPath string
	Params   RouteParams
}

// DecidePageAction resolves a preview request. Production only serves routes
// recorded in the manifest; development renders product routes live and lets
// the prop loader decide whether the id exists. Everything else is not found.
func DecidePageAction(req PageRequest) PageDecision {
	requestPath := NormalizePath(req.RequestPath)

	if !req.Mode.IsDev() {
		if htmlPath, ok := MatchStaticRoute(req.Manifest, requestPath); ok {
			return PageDecision{Action: ActionServeRouteFile, HTMLPath: htmlPath}
		}
		return PageDecision{Action: ActionNotFound}
	}

	id, ok := ProductIDFromPath(requestPath)
	if !ok {
		return PageDecision{Action: ActionNotFound}
	}
	return PageDecision{Action: ActionRenderLive, Params: RouteParams{ID: id}}
}

// ProductIDFromPath extracts the id segment of /product/{id}. The path must be
// in escaped form, as produced by ProductPath.
func ProductIDFromPath(requestPath string) (string, bool) {
	rest, ok := strings.CutPrefix(NormalizePath(requestPath), "/product/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	id, err := url.PathUnescape(rest)
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}
