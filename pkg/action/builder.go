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

// Package action builds HTTP requests for any AWS API action from the
// dumped service metadata alone.
package action

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/juicedata/genaws/pkg/servicedata"
	"github.com/spf13/cast"
)

const (
	HeaderTarget = "X-Amz-Target"
	formType     = "application/x-www-form-urlencoded; charset=utf-8"
)

// services without regional endpoints
var globalEndpoints = map[string]string{
	"iam":           "iam.amazonaws.com",
	"cloudfront":    "cloudfront.amazonaws.com",
	"route53":       "route53.amazonaws.com",
	"organizations": "organizations.us-east-1.amazonaws.com",
	"waf":           "waf.amazonaws.com",
}

// Request is a fully built, unsigned action request. Body is kept as bytes so
// the request can be replayed on retry.
type Request struct {
	Method  string
	URL     *url.URL
	Header  http.Header
	Body    []byte
	Region  string
	Service *servicedata.ServiceData
	Action  string
}

// HTTPRequest returns a new *http.Request for one attempt.
func (r *Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL.String(), body)
	if err != nil {
		return nil, err
	}
	for k, vs := range r.Header {
		req.Header[k] = append([]string(nil), vs...)
	}
	return req, nil
}

type Builder struct {
	region     string
	service    *servicedata.ServiceData
	action     string
	path       string
	method     string
	endpoint   string
	parameters map[string]interface{}
}

func NewBuilder(region string, service *servicedata.ServiceData, action string) *Builder {
	return &Builder{region: region, service: service, action: action, method: http.MethodPost}
}

func (b *Builder) Path(path string) *Builder {
	b.path = path
	return b
}

func (b *Builder) Method(method string) *Builder {
	b.method = strings.ToUpper(method)
	return b
}

func (b *Builder) Parameters(params map[string]interface{}) *Builder {
	b.parameters = params
	return b
}

// Endpoint overrides the computed endpoint, e.g. "http://localhost:4566".
func (b *Builder) Endpoint(endpoint string) *Builder {
	b.endpoint = endpoint
	return b
}

// Host returns the regional host name of the service.
func Host(region string, service *servicedata.ServiceData) string {
	prefix := service.EndpointPrefix()
	if h, ok := globalEndpoints[prefix]; ok && !strings.HasPrefix(region, "cn-") {
		return h
	}
	host := fmt.Sprintf("%s.%s.amazonaws.com", prefix, region)
	if strings.HasPrefix(region, "cn-") {
		host += ".cn"
	}
	return host
}

func (b *Builder) url() (*url.URL, error) {
	base := b.endpoint
	if base == "" {
		base = "https://" + Host(b.region, b.service)
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %s: %s", base, err)
	}
	if b.path != "" {
		u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(b.path, "/")
	} else if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}

func (b *Builder) Build() (*Request, error) {
	u, err := b.url()
	if err != nil {
		return nil, err
	}
	req := &Request{
		Method:  b.method,
		URL:     u,
		Header:  make(http.Header),
		Region:  b.region,
		Service: b.service,
		Action:  b.action,
	}
	protocol := b.service.Protocol()
	if protocol == "json" {
		req.Header.Set(HeaderTarget, b.service.TargetPrefix()+"."+b.action)
	}
	switch protocol {
	case "query", "ec2":
		values := url.Values{}
		values.Set("Action", b.action)
		values.Set("Version", b.service.APIVersion())
		Flatten(values.Add, b.parameters, "")
		if b.method == http.MethodPost {
			req.Body = []byte(values.Encode())
			req.Header.Set("Content-Type", formType)
		} else {
			u.RawQuery = values.Encode()
		}
	case "json", "rest-json":
		if b.method == http.MethodPost {
			params := b.parameters
			if params == nil {
				params = map[string]interface{}{}
			}
			body, err := json.Marshal(params)
			if err != nil {
				return nil, err
			}
			req.Body = body
			req.Header.Set("Content-Type", "application/x-amz-json-"+b.service.JSONVersion())
		} else {
			values := url.Values{}
			Flatten(values.Add, b.parameters, "")
			u.RawQuery = values.Encode()
		}
	default:
		return nil, fmt.Errorf("unknown protocol %s", protocol)
	}
	return req, nil
}

// Flatten calls set for every scalar in param using the query protocol naming:
// nested keys are joined with '.', list members are numbered from 1.
func Flatten(set func(name, value string), param interface{}, name string) {
	join := func(field string) string {
		if name == "" {
			return field
		}
		return name + "." + field
	}
	switch p := param.(type) {
	case nil:
	case map[string]interface{}:
		keys := make([]string, 0, len(p))
		for k := range p {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			Flatten(set, p[k], join(k))
		}
	case []interface{}:
		for i, v := range p {
			Flatten(set, v, join(cast.ToString(i+1)))
		}
	case []string:
		for i, v := range p {
			set(join(cast.ToString(i+1)), v)
		}
	default:
		set(name, cast.ToString(p))
	}
}
