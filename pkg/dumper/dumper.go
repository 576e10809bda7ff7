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

package dumper

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/juicedata/genaws/pkg/metric"
	"github.com/juicedata/genaws/pkg/model"
	"github.com/juicedata/genaws/pkg/utils"
)

var logger = utils.GetLogger("genaws")

// DefaultDir is where the generic client expects to find the dumped data.
const DefaultDir = "src/main/resources/com/github/slshen/genaws/data/"

const ServicesFile = "services.json"

// MetadataFile returns the file name holding the metadata of service.
func MetadataFile(service string) string {
	return service + "-metadata.json"
}

// MissingMetadataError is returned for a model that has no metadata section.
type MissingMetadataError struct {
	Service string
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("service model of %s has no metadata", e.Service)
}

// Dumper writes the service list and the metadata of every service into Dir.
// The directory must exist.
type Dumper struct {
	Loader   model.ServiceModelLoader
	Dir      string
	TypeName string
	Progress *utils.Progress

	written uint64
}

func New(loader model.ServiceModelLoader, dir string) *Dumper {
	return &Dumper{Loader: loader, Dir: dir, TypeName: model.ServiceModelType}
}

// Encode renders v the way every dumped file is written: one space per
// indent level, keys sorted, no HTML escaping and no trailing newline.
func Encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", " ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteJSON replaces Dir/name with the encoding of value.
func (d *Dumper) WriteJSON(name string, value interface{}) (err error) {
	data, err := Encode(value)
	if err != nil {
		return err
	}
	fp, err := os.OpenFile(filepath.Join(d.Dir, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() {
		e := fp.Close()
		if err == nil {
			err = e
		}
	}()
	if _, err = fp.Write(data); err != nil {
		return err
	}
	d.written += uint64(len(data))
	metric.DumpedFiles.Inc()
	return nil
}

// Run dumps the service list followed by one metadata file per service, in the
// order the loader lists them. The first error aborts the run; files written
// before it are left in place.
func (d *Dumper) Run() error {
	d.written = 0
	typeName := d.TypeName
	if typeName == "" {
		typeName = model.ServiceModelType
	}
	services, err := d.Loader.ListAvailableServices(typeName)
	if err != nil {
		return err
	}
	if services == nil {
		services = []string{}
	}
	if err = d.WriteJSON(ServicesFile, services); err != nil {
		return err
	}
	logger.Debugf("Wrote %d services into %s", len(services), filepath.Join(d.Dir, ServicesFile))

	var bar *utils.Bar
	if d.Progress != nil {
		bar = d.Progress.AddCountBar("Dumped services", int64(len(services)))
	}
	for _, s := range services {
		m, err := d.Loader.LoadServiceModel(s, typeName)
		if err != nil {
			return err
		}
		metadata, ok := m["metadata"]
		if !ok {
			return &MissingMetadataError{Service: s}
		}
		if err = d.WriteJSON(MetadataFile(s), metadata); err != nil {
			return err
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Done()
	}
	logger.Infof("Dumped metadata of %d services into %s (%s)", len(services), d.Dir, humanize.IBytes(d.written))
	return nil
}
