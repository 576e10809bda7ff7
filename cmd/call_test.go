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

package cmd

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataDir(t *testing.T) string {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"services.json":         `["ec2", "kinesis"]`,
		"kinesis-metadata.json": `{"apiVersion":"2013-12-02","endpointPrefix":"kinesis","protocol":"json","jsonVersion":"1.1","targetPrefix":"Kinesis_20131202"}`,
		"ec2-metadata.json":     `{"apiVersion":"2016-11-15","endpointPrefix":"ec2","protocol":"ec2"}`,
	})
	return dir
}

func staticCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(t.TempDir(), "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "credentials"))
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
}

func TestCallJSON(t *testing.T) {
	staticCredentials(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"Limit":10,"ExclusiveStartStreamName":"a"}`, string(body))
		assert.Equal(t, "Kinesis_20131202.ListStreams", r.Header.Get("X-Amz-Target"))
		assert.Contains(t, r.Header.Get("Authorization"), "/us-west-2/kinesis/aws4_request")
		_, _ = w.Write([]byte(`{"StreamNames":["b"],"HasMoreStreams":false}`))
	}))
	defer ts.Close()

	out, err := run(t, "call", "us-west-2", "kinesis", "ListStreams", "--data", dataDir(t),
		"--endpoint", ts.URL, "--json", `{"Limit": 10}`, "-p", "ExclusiveStartStreamName=a")
	require.NoError(t, err)
	assert.Equal(t, "{\n \"HasMoreStreams\": false,\n \"StreamNames\": [\n  \"b\"\n ]\n}\n", out)
}

func TestCallQuery(t *testing.T) {
	staticCredentials(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "DescribeRegions", r.PostForm.Get("Action"))
		assert.Equal(t, "eu-west-1", r.PostForm.Get("RegionName.1"))
		_, _ = w.Write([]byte(`<DescribeRegionsResponse><requestId>59dbff89</requestId><regionInfo><item><regionName>eu-west-1</regionName></item>` +
			`<item><regionName>us-west-2</regionName></item></regionInfo></DescribeRegionsResponse>`))
	}))
	defer ts.Close()

	out, err := run(t, "call", "--data", dataDir(t), "--endpoint", ts.URL,
		"-p", "RegionName.1=eu-west-1", "us-west-2", "ec2", "DescribeRegions")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{\n \"regionInfo\": [\n"), out)
	assert.Contains(t, out, `"regionName": "us-west-2"`)
	assert.True(t, strings.HasSuffix(out, " \"requestId\": \"59dbff89\"\n}\n"), out)
}

func TestCallDefaultRegion(t *testing.T) {
	staticCredentials(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Authorization"), "/us-east-1/kinesis/aws4_request")
		_, _ = w.Write([]byte(`{"StreamNames":[]}`))
	}))
	defer ts.Close()

	out, err := run(t, "call", "-", "kinesis", "ListStreams", "--data", dataDir(t), "--endpoint", ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "{\n \"StreamNames\": []\n}\n", out)

	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
	_, err = run(t, "call", "-", "kinesis", "ListStreams", "--data", dataDir(t), "--endpoint", ts.URL)
	assert.ErrorContains(t, err, "no default region configured")
}

func TestCallErrors(t *testing.T) {
	staticCredentials(t)
	data := dataDir(t)

	_, err := run(t, "call", "--data", data, "us-west-2", "kinesis")
	assert.ErrorContains(t, err, "requires at least 3 arguments")

	_, err = run(t, "call", "--data", data, "us-west-2", "sqs", "ListQueues")
	assert.ErrorContains(t, err, "unknown service")

	_, err = run(t, "call", "--data", data, "-p", "novalue", "us-west-2", "kinesis", "ListStreams")
	assert.ErrorContains(t, err, "expect KEY=VALUE")

	_, err = run(t, "call", "--data", data, "--json", "[1]", "us-west-2", "kinesis", "ListStreams")
	assert.ErrorContains(t, err, "invalid --json")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"__type":"ResourceNotFoundException","message":"Stream s not found"}`))
	}))
	defer ts.Close()
	_, err = run(t, "call", "--data", data, "--endpoint", ts.URL, "us-west-2", "kinesis", "DescribeStream")
	assert.ErrorContains(t, err, "Stream s not found")
	assert.ErrorContains(t, err, "Error Code: ResourceNotFoundException")
}

func TestServices(t *testing.T) {
	data := dataDir(t)
	out, err := run(t, "services", "--data", data)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"SERVICE", "PROTOCOL", "API", "VERSION", "ENDPOINT", "PREFIX"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"ec2", "ec2", "2016-11-15", "ec2"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"kinesis", "json", "2013-12-02", "kinesis"}, strings.Fields(lines[2]))

	out, err = run(t, "services", "--data", data, "kinesis")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)

	_, err = run(t, "services", "--data", data, "s3")
	assert.ErrorContains(t, err, "unknown service")

	_, err = run(t, "services", "--data", t.TempDir())
	assert.ErrorContains(t, err, "corrupt service metadata")
}
