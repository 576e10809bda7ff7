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
	"bytes"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/juicedata/genaws/pkg/action"
	"github.com/juicedata/genaws/pkg/client"
	"github.com/juicedata/genaws/pkg/dumper"
	"github.com/juicedata/genaws/pkg/servicedata"
	"github.com/juicedata/genaws/pkg/utils"
	"github.com/urfave/cli/v2"
)

func cmdCall() *cli.Command {
	return &cli.Command{
		Name:      "call",
		Action:    call,
		Category:  "REQUEST",
		Usage:     "Call an AWS API action",
		ArgsUsage: "REGION SERVICE ACTION",
		Description: `
Build a request for ACTION from the dumped metadata of SERVICE, sign it with the
credentials of the default AWS configuration and print the response as JSON.
Use "-" as REGION for the region of the default AWS configuration.

Examples:
$ genaws call us-west-2 ec2 DescribeRegions
$ genaws call us-west-2 kinesis ListStreams --json '{"Limit": 10}'
$ genaws call us-east-1 iam ListUsers -p MaxItems=5
$ AWS_REGION=eu-west-1 genaws call - sqs ListQueues
$ genaws call us-west-2 lambda ListFunctions --method GET --path /2015-03-31/functions/`,
		Flags: append(dataFlags(), requestFlags()...),
	}
}

func callParameters(ctx *cli.Context) (map[string]interface{}, error) {
	params := make(map[string]interface{})
	if s := ctx.String("json"); s != "" {
		d := json.NewDecoder(bytes.NewReader([]byte(s)))
		d.UseNumber()
		if err := d.Decode(&params); err != nil {
			return nil, fmt.Errorf("invalid --json %q: %s", s, err)
		}
	}
	for _, p := range ctx.StringSlice("param") {
		k, v, ok := utils.SplitKeyValue(p)
		if !ok {
			return nil, fmt.Errorf("invalid --param %q, expect KEY=VALUE", p)
		}
		params[k] = v
	}
	return params, nil
}

func call(ctx *cli.Context) error {
	if err := setup(ctx, 3); err != nil {
		return err
	}
	region, service, act := ctx.Args().Get(0), ctx.Args().Get(1), ctx.Args().Get(2)
	params, err := callParameters(ctx)
	if err != nil {
		return err
	}
	c, err := client.NewDefault(ctx.Context)
	if err != nil {
		return err
	}
	if region == "-" {
		if region = c.Region(); region == "" {
			return fmt.Errorf("no default region configured, pass REGION explicitly")
		}
		logger.Debugf("Use default region %s", region)
	}
	svc, err := servicedata.NewRegistry(os.DirFS(ctx.String("data"))).Get(service)
	if err != nil {
		return err
	}
	b := action.NewBuilder(region, svc, act).
		Method(ctx.String("method")).
		Path(ctx.String("path")).
		Parameters(params)
	if ep := ctx.String("endpoint"); ep != "" {
		b.Endpoint(ep)
	}
	req, err := b.Build()
	if err != nil {
		return err
	}
	result, err := c.Execute(ctx.Context, req)
	if err != nil {
		return err
	}
	out, err := dumper.Encode(result)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(ctx.App.Writer, "%s\n", out)
	return err
}
