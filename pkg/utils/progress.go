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
	"os"

	"github.com/mattn/go-isatty"
	"github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
)

type Progress struct {
	*mpb.Progress
	Quiet bool
	bars  []*mpb.Bar

	redirected bool
}

type Bar struct {
	*mpb.Bar
}

func (b *Bar) Done() {
	b.Bar.SetTotal(0, true)
}

// NewProgress draws bars on stdout only when it is a terminal; log output is
// routed through the progress container while bars are shown, unless the logs
// go to a file.
func NewProgress(quiet bool) *Progress {
	var p *Progress
	if quiet || os.Getenv("DISPLAY_PROGRESSBAR") == "false" || !isatty.IsTerminal(os.Stdout.Fd()) {
		p = &Progress{Progress: mpb.New(mpb.WithWidth(64), mpb.WithOutput(nil)), Quiet: true}
	} else {
		p = &Progress{Progress: mpb.New(mpb.WithWidth(64))}
		if !logToFile() {
			SetOutput(p)
			p.redirected = true
		}
	}
	return p
}

func (p *Progress) AddCountBar(name string, total int64) *Bar {
	b := p.Progress.AddBar(0, // disable triggerComplete
		mpb.PrependDecorators(
			decor.Name(name+" count: ", decor.WCSyncWidth),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Percentage(decor.WC{W: 5}), "done"),
			decor.OnComplete(
				decor.AverageETA(decor.ET_STYLE_GO, decor.WC{W: 6}), "",
			),
		),
	)
	b.SetTotal(total, false)
	p.bars = append(p.bars, b)
	return &Bar{Bar: b}
}

func (p *Progress) Done() {
	for _, b := range p.bars {
		if !b.Completed() {
			b.SetTotal(0, true)
		}
	}
	p.Progress.Wait()
	if p.redirected {
		SetOutput(os.Stderr)
	}
}
