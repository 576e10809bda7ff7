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
	"github.com/juicedata/genaws/pkg/dumper"
	"github.com/urfave/cli/v2"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"debug", "v"},
			Usage:   "enable debug log",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "show warning and errors only",
		},
		&cli.BoolFlag{
			Name:  "trace",
			Usage: "enable trace log",
		},
		&cli.StringFlag{
			Name:   "log-level",
			Usage:  "set log level (trace, debug, info, warn, error, fatal, panic)",
			Hidden: true,
		},
		&cli.StringFlag{
			Name:  "log-id",
			Usage: "append the given log id in log, use \"random\" to use random uuid",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colors",
		},
		&cli.StringFlag{
			Name:  "log",
			Usage: "append logs to this file instead of stderr",
		},
		&cli.BoolFlag{
			Name:  "syslog",
			Usage: "also send logs to syslog",
		},
		&cli.StringFlag{
			Name:  "metrics",
			Usage: "write metrics in Prometheus text format into this file on exit",
		},
	}
}

func addCategory(f cli.Flag, cat string) {
	switch ff := f.(type) {
	case *cli.StringFlag:
		ff.Category = cat
	case *cli.BoolFlag:
		ff.Category = cat
	case *cli.StringSliceFlag:
		ff.Category = cat
	default:
		panic(f)
	}
}

func addCategories(cat string, flags []cli.Flag) []cli.Flag {
	for _, f := range flags {
		addCategory(f, cat)
	}
	return flags
}

// dataFlags locate the dumped service data read by services and call.
func dataFlags() []cli.Flag {
	return addCategories("DATA", []cli.Flag{
		&cli.StringFlag{
			Name:  "data",
			Value: dumper.DefaultDir,
			Usage: "directory holding services.json and the service metadata files",
		},
	})
}

func requestFlags() []cli.Flag {
	return addCategories("REQUEST", []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "param",
			Aliases: []string{"p"},
			Usage:   "request parameter as KEY=VALUE",
		},
		&cli.StringFlag{
			Name:  "json",
			Usage: "request parameters as a JSON object, merged before --param",
		},
		&cli.StringFlag{
			Name:  "path",
			Usage: "request path for REST protocols",
		},
		&cli.StringFlag{
			Name:  "method",
			Value: "POST",
			Usage: "HTTP method",
		},
		&cli.StringFlag{
			Name:  "endpoint",
			Usage: "send the request to this endpoint instead of the regional one",
		},
	})
}
