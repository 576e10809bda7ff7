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
	"strings"

	"github.com/google/uuid"
	"github.com/juicedata/genaws/pkg/metric"
	"github.com/juicedata/genaws/pkg/utils"
	"github.com/juicedata/genaws/pkg/version"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"go.uber.org/automaxprocs/maxprocs"
)

var logger = utils.GetLogger("genaws")

func Main(args []string) error {
	app := newApp()
	return app.Run(reorderOptions(app, args))
}

func newApp() *cli.App {
	cli.VersionFlag = &cli.BoolFlag{
		Name: "version", Aliases: []string{"V"},
		Usage: "print version only",
	}
	return &cli.App{
		Name:            "genaws",
		Usage:           "Dump AWS service metadata and call any AWS API action with it.",
		Version:         version.Version(),
		Copyright:       "Apache License 2.0",
		HideHelpCommand: true,
		Flags:           globalFlags(),
		Commands: []*cli.Command{
			cmdDump(),
			cmdServices(),
			cmdCall(),
			cmdVersion(),
		},
		After: writeMetrics,
	}
}

func writeMetrics(c *cli.Context) error {
	path := c.String("metrics")
	if path == "" {
		return nil
	}
	if err := metric.WriteTextfile(path); err != nil {
		return fmt.Errorf("write metrics into %s: %s", path, err)
	}
	logger.Debugf("Metrics written into %s", path)
	return nil
}

func isFlag(flags []cli.Flag, option string) (bool, bool) {
	if !strings.HasPrefix(option, "-") {
		return false, false
	}
	// --V or -v work the same
	option = strings.TrimLeft(option, "-")
	for _, flag := range flags {
		_, isBool := flag.(*cli.BoolFlag)
		for _, name := range flag.Names() {
			if option == name || strings.HasPrefix(option, name+"=") {
				return true, !isBool && !strings.Contains(option, "=")
			}
		}
	}
	return false, false
}

// reorderOptions moves global options in front of the command and command
// options in front of the positional arguments.
func reorderOptions(app *cli.App, args []string) []string {
	var newArgs = []string{args[0]}
	var others []string
	globalFlags := append(app.Flags, cli.VersionFlag)
	for i := 1; i < len(args); i++ {
		option := args[i]
		if ok, hasValue := isFlag(globalFlags, option); ok {
			newArgs = append(newArgs, option)
			if hasValue {
				i++
				if i >= len(args) {
					logger.Fatalf("option %s requires value", option)
				}
				newArgs = append(newArgs, args[i])
			}
		} else {
			others = append(others, option)
		}
	}
	// no command
	if len(others) == 0 {
		return newArgs
	}
	cmdName := others[0]
	var cmd *cli.Command
	for _, c := range app.Commands {
		if c.Name == cmdName {
			cmd = c
			break
		}
	}
	if cmd == nil {
		// can't recognize the command, skip it
		return append(newArgs, others...)
	}

	newArgs = append(newArgs, cmdName)
	args, others = others[1:], nil
	// -h is valid for all the commands
	cmdFlags := append(cmd.Flags, cli.HelpFlag)
	for i := 0; i < len(args); i++ {
		option := args[i]
		if ok, hasValue := isFlag(cmdFlags, option); ok {
			newArgs = append(newArgs, option)
			if hasValue && len(args[i+1:]) > 0 {
				i++
				newArgs = append(newArgs, args[i])
			}
		} else {
			// a lone "-" is a positional argument
			if strings.HasPrefix(option, "-") && option != "-" {
				logger.Fatalf("unknown option: %s", option)
			}
			others = append(others, option)
		}
	}
	return append(newArgs, others...)
}

// Check number of positional arguments and set logger level
func setup(c *cli.Context, n int) error {
	if c.NArg() < n {
		return fmt.Errorf("this command requires at least %d arguments\nUSAGE:\n   genaws %s [command options] %s",
			n, c.Command.Name, c.Command.ArgsUsage)
	}

	switch c.String("log-level") {
	case "trace":
		utils.SetLogLevel(logrus.TraceLevel)
	case "debug":
		utils.SetLogLevel(logrus.DebugLevel)
	case "info":
		utils.SetLogLevel(logrus.InfoLevel)
	case "warn":
		utils.SetLogLevel(logrus.WarnLevel)
	case "error":
		utils.SetLogLevel(logrus.ErrorLevel)
	case "fatal":
		utils.SetLogLevel(logrus.FatalLevel)
	case "panic":
		utils.SetLogLevel(logrus.PanicLevel)
	default:
		if c.Bool("trace") {
			utils.SetLogLevel(logrus.TraceLevel)
		} else if c.Bool("verbose") {
			utils.SetLogLevel(logrus.DebugLevel)
		} else if c.Bool("quiet") {
			utils.SetLogLevel(logrus.WarnLevel)
		} else {
			utils.SetLogLevel(logrus.InfoLevel)
		}
	}
	if c.Bool("no-color") {
		utils.DisableLogColor()
	}
	if name := c.String("log"); name != "" {
		if err := utils.SetOutFile(name); err != nil {
			return fmt.Errorf("open log file %s: %s", name, err)
		}
	}
	if c.Bool("syslog") {
		utils.InitLoggers(true)
	}
	// set the correct value when it runs inside container
	if undo, err := maxprocs.Set(maxprocs.Logger(logger.Debugf)); err != nil {
		undo()
	}

	logID := c.String("log-id")
	if logID != "" {
		if logID == "random" {
			logID = uuid.New().String()
		}
		utils.SetLogID("[" + logID + "] ")
	}
	return nil
}
