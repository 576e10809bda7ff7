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

package client

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/smithy-go"
	"github.com/goccy/go-json"
	"github.com/juicedata/genaws/pkg/xmlquery"
	"github.com/spf13/cast"
)

// ServiceError is an error response returned by an AWS service.
type ServiceError struct {
	Service    string
	StatusCode int
	Code       string
	Message    string
	RequestID  string
	Err        error // set when the error body could not be parsed
}

var _ smithy.APIError = (*ServiceError)(nil)

func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("%s (Service: %s; Status Code: %d; Error Code: %s; Request ID: %s)",
		e.Message, e.Service, e.StatusCode, e.Code, e.RequestID)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ServiceError) Unwrap() error        { return e.Err }
func (e *ServiceError) ErrorCode() string    { return e.Code }
func (e *ServiceError) ErrorMessage() string { return e.Message }
func (e *ServiceError) HTTPStatusCode() int  { return e.StatusCode }

func (e *ServiceError) ErrorFault() smithy.ErrorFault {
	switch {
	case e.StatusCode >= 500:
		return smithy.FaultServer
	case e.StatusCode >= 400:
		return smithy.FaultClient
	default:
		return smithy.FaultUnknown
	}
}

func field(v interface{}, names ...string) interface{} {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	for _, n := range names {
		if f, ok := m[n]; ok {
			return f
		}
	}
	return nil
}

func parseError(protocol string, header http.Header, body []byte) *ServiceError {
	if isXML(protocol) {
		tree, err := xmlquery.Parse(bytes.NewReader(body))
		if err != nil {
			return &ServiceError{Message: "unable to parse error message", Err: err}
		}
		e := field(tree, "Error")
		if e == nil {
			// a single <Errors><Error/></Errors> stays an object, several collapse into a list
			e = field(tree, "Errors")
			if inner := field(e, "Error"); inner != nil {
				e = inner
			}
		}
		if list, ok := e.([]interface{}); ok && len(list) > 0 {
			e = list[0]
		}
		return &ServiceError{
			Code:      cast.ToString(field(e, "Code")),
			Message:   cast.ToString(field(e, "Message")),
			RequestID: cast.ToString(field(tree, "RequestID", "RequestId")),
		}
	}

	se := &ServiceError{RequestID: header.Get("X-Amzn-RequestId")}
	var tree interface{}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &tree); err != nil {
			se.Message = "unable to parse error message"
			se.Err = err
			return se
		}
	}
	se.Message = cast.ToString(field(tree, "Message", "message"))
	code := cast.ToString(field(tree, "__type", "code"))
	if code == "" {
		// rest-json services may only report the type in a header, e.g. "ResourceNotFoundException:http://..."
		code = strings.SplitN(header.Get("X-Amzn-Errortype"), ":", 2)[0]
	}
	if i := strings.LastIndexByte(code, '#'); i >= 0 {
		code = code[i+1:]
	}
	se.Code = code
	return se
}
