package build

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/neelance/sourcemap"
)

// ErrNoSourceMap is returned by LoadMap for generated files without a
// sourceMappingURL reference.
var ErrNoSourceMap = errors.New("no sourceMappingURL found")

const dataURIPrefix = "data:application/json;base64,"

var sourceMappingURL = regexp.MustCompile(`[#@] sourceMappingURL=([^\s*]+)`)

// LoadedMap is a decoded source map together with the embedded sources.
type LoadedMap struct {
	*sourcemap.Map
	// SourcesContent is parallel to Sources, nil entries have no content.
	SourcesContent []*string
	// Location is the map file path, or "inline" for data URIs.
	Location string
}

// LoadMap reads the source map of a generated file, following its trailing
// sourceMappingURL comment to a data URI or an external file. Paths ending in
// ".map" are read as source maps directly.
func LoadMap(path string) (*LoadedMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".map") {
		return decodeMap(data, path)
	}

	matches := sourceMappingURL.FindAllSubmatch(data, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSourceMap)
	}
	url := string(matches[len(matches)-1][1])

	if strings.HasPrefix(url, dataURIPrefix) {
		payload, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, dataURIPrefix))
		if err != nil {
			return nil, fmt.Errorf("%s: invalid inline source map: %w", path, err)
		}
		return decodeMap(payload, "inline")
	}

	mapPath := filepath.FromSlash(url)
	if !filepath.IsAbs(mapPath) {
		mapPath = filepath.Join(filepath.Dir(path), mapPath)
	}
	data, err = os.ReadFile(mapPath)
	if err != nil {
		return nil, err
	}
	return decodeMap(data, mapPath)
}

func decodeMap(data []byte, location string) (*LoadedMap, error) {
	m, err := sourcemap.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid source map: %w", location, err)
	}
	var extra struct {
		SourcesContent []*string `json:"sourcesContent"`
	}
	if err := json.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("%s: invalid source map: %w", location, err)
	}
	return &LoadedMap{Map: m, SourcesContent: extra.SourcesContent, Location: location}, nil
}
