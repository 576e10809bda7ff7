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

package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	p := NewProgress(true)
	assert.True(t, p.Quiet)
	bar := p.AddCountBar("Services", 10)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				bar.Increment()
			}
		}()
	}
	wg.Wait()
	bar.SetTotal(20, false)
	bar.Done()
	p.Done()
	assert.Equal(t, int64(20), bar.Current())
	assert.True(t, bar.Completed())
}

func TestProgressDisabledByEnv(t *testing.T) {
	t.Setenv("DISPLAY_PROGRESSBAR", "false")
	p := NewProgress(false)
	assert.True(t, p.Quiet)
	p.Done()
}
