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

package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	start  = time.Now()
	uptime = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "uptime",
		Help: "Total running time in seconds.",
	}, func() float64 {
		return time.Since(start).Seconds()
	})
	DumpedFiles = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dumped_files",
		Help: "Number of JSON files written by dump.",
	})
	Requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "requests",
		Help: "Number of requests sent, by service and status code.",
	}, []string{"service", "code"})
	RequestErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "request_errors",
		Help: "Number of failed request attempts, by service.",
	}, []string{"service"})
	Retries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "retries",
		Help: "Number of retried requests, by service.",
	}, []string{"service"})
	RequestDurations = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "request_durations_seconds",
		Help:    "Latency of request attempts.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	}, []string{"service"})
)

// Register adds all collectors to reg, prefixed with "genaws_".
func Register(reg prometheus.Registerer) {
	reg = prometheus.WrapRegistererWithPrefix("genaws_", reg)
	reg.MustRegister(uptime)
	reg.MustRegister(DumpedFiles)
	reg.MustRegister(Requests)
	reg.MustRegister(RequestErrors)
	reg.MustRegister(Retries)
	reg.MustRegister(RequestDurations)
}

// WriteTextfile registers the collectors on a fresh registry and writes them
// to path in the text exposition format.
func WriteTextfile(path string) error {
	reg := prometheus.NewRegistry()
	Register(reg)
	return prometheus.WriteToTextfile(path, reg)
}
