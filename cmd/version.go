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
	"fmt"

	"github.com/juicedata/genaws/pkg/version"
	"github.com/urfave/cli/v2"
)

func cmdVersion() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Action: showVersion,
		Usage:  "Show version",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "user-agent",
				Usage: "show the User-Agent sent with requests",
			},
		},
	}
}

func showVersion(ctx *cli.Context) error {
	if ctx.Bool("user-agent") {
		_, err := fmt.Fprintln(ctx.App.Writer, version.UserAgent())
		return err
	}
	_, err := fmt.Fprintf(ctx.App.Writer, "%s version %s\n", ctx.App.Name, version.Version())
	return err
}
