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

// Package servicedata reads back the service list and metadata written by the dumper.
package servicedata

import (
	"io/fs"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrUnknownService = errors.New("unknown service")

// ServiceData is the metadata of one service.
type ServiceData struct {
	name     string
	metadata map[string]interface{}
}

func New(name string, metadata map[string]interface{}) *ServiceData {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return &ServiceData{name: name, metadata: metadata}
}

func (s *ServiceData) get(key string) string {
	return cast.ToString(s.metadata[key])
}

func (s *ServiceData) Name() string           { return s.name }
func (s *ServiceData) EndpointPrefix() string { return s.get("endpointPrefix") }
func (s *ServiceData) APIVersion() string     { return s.get("apiVersion") }
func (s *ServiceData) Protocol() string       { return s.get("protocol") }
func (s *ServiceData) TargetPrefix() string   { return s.get("targetPrefix") }
func (s *ServiceData) JSONVersion() string    { return s.get("jsonVersion") }
func (s *ServiceData) ServiceID() string      { return s.get("serviceId") }

// SigningName is the service name used in the credential scope.
func (s *ServiceData) SigningName() string {
	if name := s.get("signingName"); name != "" {
		return name
	}
	return s.EndpointPrefix()
}

// Raw returns the metadata as loaded. It must not be modified.
func (s *ServiceData) Raw() map[string]interface{} {
	return s.metadata
}

// Registry loads service data lazily from a directory written by the dumper.
type Registry struct {
	fsys fs.FS

	mu       sync.Mutex
	names    []string
	services map[string]*ServiceData // nil value means not loaded yet
}

func NewRegistry(fsys fs.FS) *Registry {
	return &Registry{fsys: fsys}
}

func (r *Registry) loadList() error {
	if r.services != nil {
		return nil
	}
	data, err := fs.ReadFile(r.fsys, "services.json")
	if err != nil {
		return errors.Wrap(err, "corrupt service metadata")
	}
	var names []string
	if err = json.Unmarshal(data, &names); err != nil {
		return errors.Wrap(err, "corrupt service metadata")
	}
	r.names = names
	r.services = make(map[string]*ServiceData, len(names))
	for _, n := range names {
		r.services[n] = nil
	}
	return nil
}

// Services returns the names listed in services.json, in file order.
func (r *Registry) Services() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.loadList(); err != nil {
		return nil, err
	}
	return append([]string(nil), r.names...), nil
}

// Get returns the data of a listed service, loading its metadata on first use.
func (r *Registry) Get(name string) (*ServiceData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.loadList(); err != nil {
		return nil, err
	}
	s, ok := r.services[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownService, "%s", name)
	}
	if s != nil {
		return s, nil
	}
	data, err := fs.ReadFile(r.fsys, name+"-metadata.json")
	if err != nil {
		return nil, errors.Wrap(err, "corrupt service metadata")
	}
	var metadata map[string]interface{}
	if err = json.Unmarshal(data, &metadata); err != nil {
		return nil, errors.Wrapf(err, "corrupt service metadata of %s", name)
	}
	s = New(name, metadata)
	r.services[name] = s
	return s, nil
}
