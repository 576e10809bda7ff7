//go:build !windows
// +build !windows

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
	"fmt"
	"log/syslog"
	"os"

	"github.com/sirupsen/logrus"
	logrus_syslog "github.com/sirupsen/logrus/hooks/syslog"
)

type syslogWriterHook struct {
	*logrus_syslog.SyslogHook
}

func (hook *syslogWriterHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to read entry, %v", err)
		return err
	}
	// syslog adds its own timestamp
	if len(line) > len(timeFormat)+1 {
		line = line[len(timeFormat)+1:]
	}

	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return hook.Writer.Crit(line)
	case logrus.ErrorLevel:
		return hook.Writer.Err(line)
	case logrus.WarnLevel:
		return hook.Writer.Warning(line)
	case logrus.InfoLevel:
		return hook.Writer.Info(line)
	case logrus.DebugLevel:
		return hook.Writer.Debug(line)
	default:
		return nil
	}
}

// InitLoggers attaches a syslog hook to every logger when logToSyslog is set.
func InitLoggers(logToSyslog bool) {
	if !logToSyslog {
		return
	}
	hook, err := logrus_syslog.NewSyslogHook("", "", syslog.LOG_DEBUG|syslog.LOG_USER, "genaws")
	if err != nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	syslogHook = &syslogWriterHook{hook}
	for _, l := range loggers {
		l.AddHook(syslogHook)
	}
}
