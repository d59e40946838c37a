package core

import (
	"encoding/json"
	"time"
)

// Manifest records what a build exported. Routes maps request paths to html
// files relative to the output directory.
type Manifest struct {
	BuildID     string            `json:"buildId"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Mode        string            `json:"mode"`
	Routes      map[string]string `json:"routes"`
	Hashes      map[string]string `json:"hashes,omitempty"`
	NotFound    string            `json:"notFound,omitempty"`
}

func NewManifest(buildID string, mode Mode, generatedAt time.Time) *Manifest {
	return &Manifest{
		BuildID:     buildID,
		GeneratedAt: generatedAt.UTC(),
		Mode:        mode.String(),
		Routes:      make(map[string]string),
		Hashes:      make(map[string]string),
	}
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) AddRoute(routePath, htmlFile string, content []byte) {
	routePath = NormalizePath(routePath)
	m.Routes[routePath] = htmlFile
	m.Hashes[routePath] = HashContent(content)
}

func MatchStaticRoute(manifest *Manifest, requestPath string) (htmlPath string, found bool) {
	if manifest == nil || manifest.Routes == nil {
		return "", false
	}

	htmlPath, found = manifest.Routes[NormalizePath(requestPath)]
	return htmlPath, found
}
