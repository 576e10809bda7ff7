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

package action

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/juicedata/genaws/pkg/servicedata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ec2 = servicedata.New("ec2", map[string]interface{}{
		"apiVersion": "2016-11-15", "endpointPrefix": "ec2", "protocol": "ec2",
	})
	kinesis = servicedata.New("kinesis", map[string]interface{}{
		"apiVersion": "2013-12-02", "endpointPrefix": "kinesis", "protocol": "json",
		"jsonVersion": "1.1", "targetPrefix": "Kinesis_20131202",
	})
	lambda = servicedata.New("lambda", map[string]interface{}{
		"apiVersion": "2015-03-31", "endpointPrefix": "lambda", "protocol": "rest-json",
	})
	iam = servicedata.New("iam", map[string]interface{}{
		"apiVersion": "2010-05-08", "endpointPrefix": "iam", "protocol": "query",
	})
	s3 = servicedata.New("s3", map[string]interface{}{
		"apiVersion": "2006-03-01", "endpointPrefix": "s3", "protocol": "rest-xml",
	})
)

func TestHost(t *testing.T) {
	assert.Equal(t, "ec2.us-west-2.amazonaws.com", Host("us-west-2", ec2))
	assert.Equal(t, "ec2.cn-north-1.amazonaws.com.cn", Host("cn-north-1", ec2))
	assert.Equal(t, "iam.amazonaws.com", Host("us-east-1", iam))
	assert.Equal(t, "iam.cn-north-1.amazonaws.com.cn", Host("cn-north-1", iam))
}

func TestBuildQueryPost(t *testing.T) {
	req, err := NewBuilder("us-west-2", ec2, "DescribeSubnets").
		Parameters(map[string]interface{}{
			"MaxResults": 5,
			"Filter": []interface{}{
				map[string]interface{}{"Name": "vpc-id", "Value": []interface{}{"vpc-1", "vpc-2"}},
			},
			"DryRun": false,
			"Skip":   nil,
		}).
		Build()
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "https://ec2.us-west-2.amazonaws.com/", req.URL.String())
	assert.Equal(t, formType, req.Header.Get("Content-Type"))
	assert.Empty(t, req.Header.Get(HeaderTarget))

	form, err := url.ParseQuery(string(req.Body))
	require.NoError(t, err)
	assert.Equal(t, url.Values{
		"Action":           {"DescribeSubnets"},
		"Version":          {"2016-11-15"},
		"MaxResults":       {"5"},
		"DryRun":           {"false"},
		"Filter.1.Name":    {"vpc-id"},
		"Filter.1.Value.1": {"vpc-1"},
		"Filter.1.Value.2": {"vpc-2"},
	}, form)
}

func TestBuildQueryGet(t *testing.T) {
	req, err := NewBuilder("us-east-1", iam, "ListUsers").
		Method("get").
		Parameters(map[string]interface{}{"MaxItems": 10}).
		Build()
	require.NoError(t, err)
	assert.Nil(t, req.Body)
	assert.Equal(t, "iam.amazonaws.com", req.URL.Host)
	assert.Equal(t, "Action=ListUsers&MaxItems=10&Version=2010-05-08", req.URL.RawQuery)
}

func TestBuildJSON(t *testing.T) {
	req, err := NewBuilder("us-west-2", kinesis, "ListStreams").
		Parameters(map[string]interface{}{"Limit": 1}).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "Kinesis_20131202.ListStreams", req.Header.Get(HeaderTarget))
	assert.Equal(t, "application/x-amz-json-1.1", req.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"Limit":1}`, string(req.Body))

	req, err = NewBuilder("us-west-2", kinesis, "ListStreams").Build()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(req.Body))
}

func TestBuildRestJSONGet(t *testing.T) {
	req, err := NewBuilder("us-west-2", lambda, "ListFunctions").
		Path("/2015-03-31/functions").
		Method(http.MethodGet).
		Parameters(map[string]interface{}{"FunctionVersion": "ALL"}).
		Build()
	require.NoError(t, err)
	assert.Empty(t, req.Header.Get(HeaderTarget))
	assert.Equal(t, "https://lambda.us-west-2.amazonaws.com/2015-03-31/functions?FunctionVersion=ALL", req.URL.String())
}

func TestBuildEndpointOverride(t *testing.T) {
	req, err := NewBuilder("us-east-1", kinesis, "ListStreams").Endpoint("http://127.0.0.1:4566/base/").Path("x").Build()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:4566/base/x", req.URL.String())

	_, err = NewBuilder("us-east-1", kinesis, "ListStreams").Endpoint("http://[::1").Build()
	assert.Error(t, err)
}

func TestBuildUnknownProtocol(t *testing.T) {
	_, err := NewBuilder("us-east-1", s3, "ListBuckets").Build()
	require.Error(t, err)
	assert.Equal(t, "unknown protocol rest-xml", err.Error())
}

func TestHTTPRequestIsReplayable(t *testing.T) {
	req, err := NewBuilder("us-west-2", kinesis, "ListStreams").Build()
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		hr, err := req.HTTPRequest(context.Background())
		require.NoError(t, err)
		body, err := io.ReadAll(hr.Body)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(body))
		assert.Equal(t, "Kinesis_20131202.ListStreams", hr.Header.Get(HeaderTarget))
		hr.Header.Set(HeaderTarget, "changed")
	}
}

func TestFlatten(t *testing.T) {
	got := map[string]string{}
	Flatten(func(k, v string) { got[k] = v }, map[string]interface{}{
		"Tags":  []string{"a", "b"},
		"Ratio": 0.5,
		"Deep":  map[string]interface{}{"Er": map[string]interface{}{"Key": true}},
	}, "")
	assert.Equal(t, map[string]string{
		"Tags.1":      "a",
		"Tags.2":      "b",
		"Ratio":       "0.5",
		"Deep.Er.Key": "true",
	}, got)
}
