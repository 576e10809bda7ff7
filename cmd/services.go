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
	"os"
	"text/tabwriter"

	"github.com/juicedata/genaws/pkg/servicedata"
	"github.com/urfave/cli/v2"
)

func cmdServices() *cli.Command {
	return &cli.Command{
		Name:      "services",
		Action:    services,
		Category:  "DATA",
		Usage:     "List dumped services",
		ArgsUsage: "[SERVICE ...]",
		Description: `
Show the protocol and API version of the dumped services, all of them when no
service is given.

Examples:
$ genaws services
$ genaws services --data /tmp/genaws-data ec2 kinesis`,
		Flags: dataFlags(),
	}
}

func services(ctx *cli.Context) error {
	if err := setup(ctx, 0); err != nil {
		return err
	}
	reg := servicedata.NewRegistry(os.DirFS(ctx.String("data")))
	names := ctx.Args().Slice()
	if len(names) == 0 {
		var err error
		if names, err = reg.Services(); err != nil {
			return err
		}
	}
	w := tabwriter.NewWriter(ctx.App.Writer, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "SERVICE\tPROTOCOL\tAPI VERSION\tENDPOINT PREFIX")
	for _, name := range names {
		s, err := reg.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name(), s.Protocol(), s.APIVersion(), s.EndpointPrefix())
	}
	return w.Flush()
}
