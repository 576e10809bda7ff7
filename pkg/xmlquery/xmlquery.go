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

// Package xmlquery turns responses of the AWS query and EC2 protocols into
// the same generic tree a JSON decoder produces.
package xmlquery

import (
	"encoding/xml"
	"io"

	"github.com/pkg/errors"
)

type frame struct {
	name    string
	content interface{} // nil until the element has text or children
}

func (f *frame) object() map[string]interface{} {
	if m, ok := f.content.(map[string]interface{}); ok {
		return m
	}
	m := make(map[string]interface{})
	f.content = m
	return m
}

// Parse converts an XML document into nested map[string]interface{},
// []interface{} and string values:
//
//   - an element with children becomes an object keyed by child name;
//   - an element with only text becomes a string, an empty element "";
//   - repeated children with the same name become an array;
//   - an object whose only child is an array is replaced by that array,
//     so <tagSet><item/><item/></tagSet> becomes "tagSet": ["", ""];
//   - the root element itself is not wrapped.
func Parse(r io.Reader) (interface{}, error) {
	d := xml.NewDecoder(r)
	stack := []*frame{{}}
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "could not parse XML")
		}
		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			top.object()
			stack = append(stack, &frame{name: t.Name.Local})
		case xml.CharData:
			if top.content == nil && len(stack) > 1 {
				top.content = string(t)
			}
		case xml.EndElement:
			stack = stack[:len(stack)-1]
			closeFrame(top, stack[len(stack)-1], len(stack) == 1)
		}
	}
	if len(stack) != 1 || stack[0].content == nil {
		return nil, errors.New("could not parse XML: no root element")
	}
	return stack[0].content, nil
}

func closeFrame(f, parent *frame, root bool) {
	if f.content == nil {
		f.content = ""
	}
	if m, ok := f.content.(map[string]interface{}); ok && len(m) == 1 {
		for _, v := range m {
			if list, ok := v.([]interface{}); ok {
				f.content = list
			}
		}
	}
	if root {
		parent.content = f.content
		return
	}
	siblings := parent.object()
	existing, ok := siblings[f.name]
	if empty, isObj := existing.(map[string]interface{}); !ok || (isObj && len(empty) == 0) {
		siblings[f.name] = f.content
		return
	}
	list, isList := existing.([]interface{})
	if !isList {
		list = []interface{}{existing}
	}
	siblings[f.name] = append(list, f.content)
}
