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
package version

import (
	"fmt"
	"runtime"
)

// values can be overridden with -ldflags "-X github.com/juicedata/genaws/pkg/version.revision=..."
var (
	revision     = "$Format:%h$"
	revisionDate = "$Format:%as$"
	ver          = Semver{
		major:      0,
		minor:      3,
		patch:      0,
		preRelease: "dev",
		build:      fmt.Sprintf("%s.%s", revisionDate, revision),
	}
)

type Semver struct {
	major, minor, patch uint64
	preRelease, build   string
}

// Version returns version in format - `VERSION-PRERELEASE+BUILD`
func Version() string {
	v := fmt.Sprintf("%d.%d.%d", ver.major, ver.minor, ver.patch)
	if ver.preRelease != "" {
		v += "-" + ver.preRelease
	}
	if ver.build != "" {
		v += "+" + ver.build
	}
	return v
}

// UserAgent is sent with every request made by the generic client.
func UserAgent() string {
	return fmt.Sprintf("generic-aws-client/%d.%d.%d (%s; %s/%s)", ver.major, ver.minor, ver.patch,
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
