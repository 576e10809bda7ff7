/*
 * genaws, Copyright 2026 Juicedata, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package model locates and decodes the service models shipped with an AWS SDK.
//
// Model data is laid out as <root>/<service>/<api-version>/<type>.json, where the
// file may also be gzip compressed (<type>.json.gz). Several roots can be searched;
// earlier roots take precedence.
package model

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/juicedata/genaws/pkg/utils"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

var logger = utils.GetLogger("genaws")

// ServiceModelType is the model type that describes a service API.
const ServiceModelType = "service-2"

const cacheSize = 64

// ServiceModelLoader is the capability the dumper needs from an SDK.
type ServiceModelLoader interface {
	ListAvailableServices(typeName string) ([]string, error)
	LoadServiceModel(serviceName, typeName string) (map[string]interface{}, error)
}

// UnknownServiceError is returned when no search path knows the service.
type UnknownServiceError struct {
	Service string
	Known   []string
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("unknown service: %q, valid service names are: %s", e.Service, strings.Join(e.Known, ", "))
}

// DataNotFoundError is returned when a model file is missing from every search path.
type DataNotFoundError struct {
	Path string
}

func (e *DataNotFoundError) Error() string {
	return fmt.Sprintf("unable to load data for: %s", e.Path)
}

// Loader reads models from a list of directories.
type Loader struct {
	searchPaths []string
	cache       *lru.Cache[string, map[string]interface{}]
}

func NewLoader(searchPaths ...string) *Loader {
	cache, _ := lru.New[string, map[string]interface{}](cacheSize)
	return &Loader{searchPaths: searchPaths, cache: cache}
}

// DefaultSearchPaths returns the entries of AWS_DATA_PATH, then ~/.aws/models, then extra.
func DefaultSearchPaths(extra ...string) []string {
	var paths []string
	if env := os.Getenv("AWS_DATA_PATH"); env != "" {
		for _, p := range filepath.SplitList(env) {
			if p != "" {
				paths = append(paths, expandHome(p))
			}
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".aws", "models"))
	}
	for _, p := range extra {
		paths = append(paths, expandHome(p))
	}
	return paths
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}

func (l *Loader) SearchPaths() []string {
	return l.searchPaths
}

// ListAvailableServices returns the sorted names of every service that has at
// least one API version providing typeName.
func (l *Loader) ListAvailableServices(typeName string) ([]string, error) {
	seen := make(map[string]bool)
	for _, root := range l.searchPaths {
		entries, err := os.ReadDir(root)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "list %s", root)
		}
		for _, e := range entries {
			if !e.IsDir() || seen[e.Name()] {
				continue
			}
			versions, err := versionsIn(filepath.Join(root, e.Name()), typeName)
			if err != nil {
				return nil, err
			}
			if len(versions) > 0 {
				seen[e.Name()] = true
			}
		}
	}
	services := make([]string, 0, len(seen))
	for name := range seen {
		services = append(services, name)
	}
	sort.Strings(services)
	logger.Debugf("Found %d services providing %s in %s", len(services), typeName, strings.Join(l.searchPaths, ":"))
	return services, nil
}

// ListAPIVersions returns the sorted API versions of service that provide typeName.
func (l *Loader) ListAPIVersions(serviceName, typeName string) ([]string, error) {
	seen := make(map[string]bool)
	for _, root := range l.searchPaths {
		versions, err := versionsIn(filepath.Join(root, serviceName), typeName)
		if err != nil {
			return nil, err
		}
		for _, v := range versions {
			seen[v] = true
		}
	}
	versions := make([]string, 0, len(seen))
	for v := range seen {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions, nil
}

func versionsIn(dir, typeName string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "list %s", dir)
	}
	var versions []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, ok := dataFile(filepath.Join(dir, e.Name(), typeName)); ok {
			versions = append(versions, e.Name())
		}
	}
	return versions, nil
}

// dataFile returns the existing file for a model path without extension.
func dataFile(base string) (string, bool) {
	for _, ext := range []string{".json", ".json.gz"} {
		if utils.Exists(base + ext) {
			return base + ext, true
		}
	}
	return "", false
}

// LoadServiceModel loads the latest API version of typeName for serviceName.
// The returned map is shared with the loader's cache and must not be modified.
func (l *Loader) LoadServiceModel(serviceName, typeName string) (map[string]interface{}, error) {
	key := serviceName + "/" + typeName
	if m, ok := l.cache.Get(key); ok {
		return m, nil
	}
	versions, err := l.ListAPIVersions(serviceName, typeName)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		known, err := l.ListAvailableServices(typeName)
		if err != nil {
			return nil, err
		}
		return nil, &UnknownServiceError{Service: serviceName, Known: known}
	}
	m, err := l.LoadData(filepath.Join(serviceName, versions[len(versions)-1], typeName))
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, m)
	return m, nil
}

// LoadData loads the JSON object stored at name (relative, without extension)
// from the first search path that has it.
func (l *Loader) LoadData(name string) (map[string]interface{}, error) {
	for _, root := range l.searchPaths {
		path, ok := dataFile(filepath.Join(root, name))
		if !ok {
			continue
		}
		logger.Debugf("Loading %s", path)
		return readJSON(path)
	}
	return nil, &DataNotFoundError{Path: name}
}

func readJSON(path string) (m map[string]interface{}, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "decompress %s", path)
		}
		defer zr.Close()
		r = zr
	}
	d := json.NewDecoder(r)
	d.UseNumber()
	if err = d.Decode(&m); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return m, nil
}
