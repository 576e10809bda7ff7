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
	"io"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var mu sync.Mutex
var loggers = make(map[string]*logHandle)

var syslogHook logrus.Hook

// outFile receives the logs of every logger once SetOutFile succeeded
var outFile *os.File

type logHandle struct {
	logrus.Logger

	name     string
	logid    string
	colorful bool
}

const timeFormat = "2006/01/02 15:04:05.000000"

func (l *logHandle) Format(e *logrus.Entry) ([]byte, error) {
	lvlStr := strings.ToUpper(e.Level.String())
	if l.colorful {
		lvlStr = fmt.Sprintf("\033[1;%dm%s\033[0m", levelColor(e.Level), lvlStr)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s%v %s[%d] <%v>: %v",
		l.logid,
		e.Time.Format(timeFormat),
		l.name,
		os.Getpid(),
		lvlStr,
		strings.TrimRight(e.Message, "\n"))
	if e.HasCaller() {
		fmt.Fprintf(&b, " [%s@%s:%d]", methodName(e.Caller.Function), path.Base(e.Caller.File), e.Caller.Line)
	}
	if len(e.Data) != 0 {
		b.WriteString(" " + fmt.Sprint(e.Data))
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func levelColor(lvl logrus.Level) int {
	switch lvl {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return 31 // RED
	case logrus.WarnLevel:
		return 33 // YELLOW
	case logrus.InfoLevel:
		return 34 // BLUE
	default:
		return 35 // MAGENTA
	}
}

// methodName strips the package path and closure suffixes from a function name
func methodName(fullFuncName string) string {
	if i := strings.LastIndex(fullFuncName, "/"); i != -1 && i < len(fullFuncName)-1 {
		fullFuncName = fullFuncName[i+1:]
	}
	lastDot := strings.LastIndex(fullFuncName, ".")
	if lastDot == -1 || lastDot == len(fullFuncName)-1 {
		return fullFuncName
	}
	method := fullFuncName[lastDot+1:]
	closure := strings.HasPrefix(method, "func") && len(method) > 4 && method[4] >= '0' && method[4] <= '9'
	numbered := len(method) == 1 && method[0] >= '0' && method[0] <= '9'
	if closure || numbered {
		if candidate := methodName(fullFuncName[:lastDot]); candidate != "" {
			method = candidate
		}
	}
	return method
}

func newLogger(name string) *logHandle {
	l := &logHandle{Logger: *logrus.New(), name: name, colorful: SupportANSIColor(os.Stderr.Fd())}
	l.Formatter = l
	if outFile != nil {
		l.SetOutput(outFile)
		l.colorful = false
	}
	if syslogHook != nil {
		l.AddHook(syslogHook)
	}
	l.SetReportCaller(true)
	return l
}

// GetLogger returns a logger mapped to `name`
func GetLogger(name string) *logHandle {
	mu.Lock()
	defer mu.Unlock()

	if logger, ok := loggers[name]; ok {
		return logger
	}
	logger := newLogger(name)
	loggers[name] = logger
	return logger
}

// SetLogLevel sets Level to all the loggers in the map
func SetLogLevel(lvl logrus.Level) {
	mu.Lock()
	defer mu.Unlock()
	for _, logger := range loggers {
		logger.Level = lvl
	}
}

func DisableLogColor() {
	mu.Lock()
	defer mu.Unlock()
	for _, logger := range loggers {
		logger.colorful = false
	}
}

// SetOutFile appends the logs of all loggers, including the ones created
// later, to the file name.
func SetOutFile(name string) error {
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	if outFile != nil {
		_ = outFile.Close()
	}
	outFile = file
	for _, logger := range loggers {
		logger.SetOutput(file)
		logger.colorful = false
	}
	return nil
}

// SetOutput sends the logs of all loggers to w, closing the file of SetOutFile.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if outFile != nil && w != io.Writer(outFile) {
		_ = outFile.Close()
		outFile = nil
	}
	for _, logger := range loggers {
		logger.SetOutput(w)
	}
}

func logToFile() bool {
	mu.Lock()
	defer mu.Unlock()
	return outFile != nil
}

func SetLogID(id string) {
	mu.Lock()
	defer mu.Unlock()
	for _, logger := range loggers {
		logger.logid = id
	}
}
