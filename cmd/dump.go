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
	"github.com/juicedata/genaws/pkg/model"
	"github.com/juicedata/genaws/pkg/utils"
	"github.com/urfave/cli/v2"
)

func cmdDump() *cli.Command {
	return &cli.Command{
		Name:     "dump",
		Action:   dump,
		Category: "DATA",
		Usage:    "Dump the service list and the metadata of every AWS service",
		Description: `
Read the service-2 model of every service found in the model search path and write
services.json plus one <service>-metadata.json per service into the output directory.
The output directory must exist; existing files are overwritten and unrelated files
are left untouched.

Models are searched in the directories listed in $AWS_DATA_PATH, then ~/.aws/models,
then every --data-path. A model is stored as <service>/<api-version>/<type>.json
(or .json.gz) and the latest API version wins.

Examples:
$ genaws dump --data-path ./botocore/data

# Write somewhere else
$ genaws dump --data-path ./botocore/data --out /tmp/genaws-data`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "data-path",
				Usage: "directory holding the service models, can be repeated",
			},
			&cli.StringFlag{
				Name:  "out",
				Value: dumper.DefaultDir,
				Usage: "existing directory to write the JSON files into",
			},
			&cli.StringFlag{
				Name:  "type",
				Value: model.ServiceModelType,
				Usage: "model type to dump",
			},
		},
	}
}

func dump(ctx *cli.Context) error {
	if err := setup(ctx, 0); err != nil {
		return err
	}
	loader := model.NewLoader(model.DefaultSearchPaths(ctx.StringSlice("data-path")...)...)
	logger.Debugf("Model search paths: %v", loader.SearchPaths())

	d := dumper.New(loader, ctx.String("out"))
	d.TypeName = ctx.String("type")
	progress := utils.NewProgress(ctx.Bool("quiet"))
	d.Progress = progress
	err := d.Run()
	progress.Done()
	return err
}
