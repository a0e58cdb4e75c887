// Copyright 2014-2024 Aerospike, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logger

import (
	"log"
	"os"
	"sync"
)

// LogPriority specifies the logging level for the client
type LogPriority int

const (
	DEBUG LogPriority = iota - 1
	INFO
	WARNING
	ERR
	OFF LogPriority = 999
)

// String returns the tag printed in front of each message.
func (lp LogPriority) String() string {
	switch lp {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARN"
	case ERR:
		return "ERROR"
	}
	return "OFF"
}

type logger struct {
	*log.Logger

	level LogPriority
	mutex sync.RWMutex
}

// Logger is the default logger instance
var Logger = newLogger()

func newLogger() *logger {
	return &logger{
		Logger: log.New(os.Stdout, "", log.LstdFlags),
		level:  OFF,
	}
}

// SetLogger sets the *log.Logger object where log messages should be sent to.
func (lgr *logger) SetLogger(l *log.Logger) {
	lgr.mutex.Lock()
	defer lgr.mutex.Unlock()

	lgr.Logger = l
}

// SetLevel sets logging level. Default is OFF.
func (lgr *logger) SetLevel(level LogPriority) {
	lgr.mutex.Lock()
	defer lgr.mutex.Unlock()

	lgr.level = level
}

// Level returns the current logging level.
func (lgr *logger) Level() LogPriority {
	lgr.mutex.RLock()
	defer lgr.mutex.RUnlock()

	return lgr.level
}

func (lgr *logger) logAt(level LogPriority, format string, v ...interface{}) {
	lgr.mutex.RLock()
	defer lgr.mutex.RUnlock()

	if lgr.level <= level {
		lgr.Logger.Printf(level.String()+": "+format, v...)
	}
}

// Debug logs a message if log level allows to do so.
func (lgr *logger) Debug(format string, v ...interface{}) {
	lgr.logAt(DEBUG, format, v...)
}

// Info logs a message if log level allows to do so.
func (lgr *logger) Info(format string, v ...interface{}) {
	lgr.logAt(INFO, format, v...)
}

// Warn logs a message if log level allows to do so.
func (lgr *logger) Warn(format string, v ...interface{}) {
	lgr.logAt(WARNING, format, v...)
}

// Error logs a message if log level allows to do so.
func (lgr *logger) Error(format string, v ...interface{}) {
	lgr.logAt(ERR, format, v...)
}
