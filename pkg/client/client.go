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

// Package client sends signed requests built by package action and decodes
// the responses into generic JSON values.
package client

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/goccy/go-json"
	"github.com/juicedata/genaws/pkg/action"
	"github.com/juicedata/genaws/pkg/metric"
	"github.com/juicedata/genaws/pkg/utils"
	"github.com/juicedata/genaws/pkg/version"
	"github.com/juicedata/genaws/pkg/xmlquery"
	"github.com/pkg/errors"
)

var logger = utils.GetLogger("genaws")

type Client struct {
	httpClient  *http.Client
	credentials aws.CredentialsProvider
	signer      *v4.Signer
	retryer     aws.Retryer
	region      string
	now         func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithRetryer(r aws.Retryer) Option {
	return func(c *Client) { c.retryer = r }
}

func WithRegion(region string) Option {
	return func(c *Client) { c.region = region }
}

func withClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func New(credentials aws.CredentialsProvider, opts ...Option) *Client {
	c := &Client{
		httpClient:  newHTTPClient(),
		credentials: aws.NewCredentialsCache(credentials),
		signer:      v4.NewSigner(),
		retryer:     retry.NewStandard(),
		now:         time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NewDefault uses the credentials and region of the default AWS config chain
// (environment, shared config files, SSO, IMDS ...).
func NewDefault(ctx context.Context, opts ...Option) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load AWS config")
	}
	return New(cfg.Credentials, append([]Option{WithRegion(cfg.Region)}, opts...)...), nil
}

// Region is the default region of the loaded configuration, if any.
func (c *Client) Region() string {
	return c.region
}

// Execute sends r, retrying failures the retryer considers retryable, and
// returns the decoded response body.
func (c *Client) Execute(ctx context.Context, r *action.Request) (interface{}, error) {
	service := r.Service.Name()
	for attempt := 1; ; attempt++ {
		result, err := c.send(ctx, r)
		if err == nil {
			return result, nil
		}
		metric.RequestErrors.WithLabelValues(service).Inc()
		if ctx.Err() != nil || attempt >= c.retryer.MaxAttempts() || !c.retryer.IsErrorRetryable(err) {
			return nil, err
		}
		delay, derr := c.retryer.RetryDelay(attempt, err)
		if derr != nil {
			return nil, err
		}
		metric.Retries.WithLabelValues(service).Inc()
		logger.Debugf("Retry %s %s after %s (attempt %d): %s", service, r.Action, delay, attempt, err)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func payloadHash(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func (c *Client) send(ctx context.Context, r *action.Request) (interface{}, error) {
	req, err := r.HTTPRequest(ctx)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", version.UserAgent())
	creds, err := c.credentials.Retrieve(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "retrieve credentials")
	}
	if err = c.signer.SignHTTP(ctx, creds, req, payloadHash(r.Body), r.Service.SigningName(), r.Region, c.now().UTC()); err != nil {
		return nil, errors.Wrap(err, "sign request")
	}

	service := r.Service.Name()
	start := time.Now()
	logger.Debugf("--> %s %s (%s)", req.Method, req.URL, r.Action)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	used := time.Since(start)
	metric.RequestDurations.WithLabelValues(service).Observe(used.Seconds())
	metric.Requests.WithLabelValues(service, strconv.Itoa(resp.StatusCode)).Inc()
	logger.Debugf("<-- %d %s (%d bytes, %s)", resp.StatusCode, req.URL, len(body), used)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return parse(r.Service.Protocol(), body)
	}
	var se *ServiceError
	if resp.StatusCode >= 500 {
		se = &ServiceError{Message: strconv.Itoa(resp.StatusCode)}
	} else {
		se = parseError(r.Service.Protocol(), resp.Header, body)
	}
	se.StatusCode = resp.StatusCode
	se.Service = r.Service.EndpointPrefix()
	return nil, se
}

func isXML(protocol string) bool {
	return protocol == "query" || protocol == "ec2"
}

func parse(protocol string, body []byte) (interface{}, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]interface{}{}, nil
	}
	if isXML(protocol) {
		return xmlquery.Parse(bytes.NewReader(body))
	}
	var v interface{}
	d := json.NewDecoder(bytes.NewReader(body))
	d.UseNumber()
	if err := d.Decode(&v); err != nil {
		return nil, errors.Wrap(err, "decode response")
	}
	return v, nil
}
