/*
 * Copyright 2025 tomoncle.
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

package database

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tomoncle/seedwork/utils"
)

// LoggerName is the registry name of the database logger, usable with
// utils.SetLoggerLevel.
const LoggerName = "DATABASE"

var (
	globalLogger   Logger
	globalLoggerMu sync.RWMutex
)

// Logger receives connection lifecycle and slow query events. kv alternates
// keys and values, e.g. "duration", d, "query", q.
type Logger interface {
	Debug(msg string, kv ...interface{})
	Info(msg string, kv ...interface{})
	Warn(msg string, kv ...interface{})
	Error(msg string, kv ...interface{})
}

// InitLogger makes l the database logger and registers it under LoggerName so
// utils level configuration reaches it. Managers created afterwards use it.
func InitLogger(l *logrus.Logger) {
	if l == nil {
		return
	}
	utils.RegisterLogger(LoggerName, l)
	SetLogger(&logrusLogger{logger: l})
}

// SetLogger replaces the package logger. A nil logger restores the default on
// the next GetLogger call.
func SetLogger(l Logger) {
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	globalLogger = l
}

// GetLogger returns the package logger, creating one over the named
// LoggerName logrus logger on first use.
func GetLogger() Logger {
	globalLoggerMu.RLock()
	l := globalLogger
	globalLoggerMu.RUnlock()
	if l != nil {
		return l
	}

	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	if globalLogger == nil {
		globalLogger = &logrusLogger{logger: utils.NewLogger(LoggerName)}
	}
	return globalLogger
}

type logrusLogger struct {
	logger *logrus.Logger
}

func (l *logrusLogger) Debug(msg string, kv ...interface{}) {
	l.logger.WithFields(fieldsOf(kv)).Debug(msg)
}

func (l *logrusLogger) Info(msg string, kv ...interface{}) {
	l.logger.WithFields(fieldsOf(kv)).Info(msg)
}

func (l *logrusLogger) Warn(msg string, kv ...interface{}) {
	l.logger.WithFields(fieldsOf(kv)).Warn(msg)
}

func (l *logrusLogger) Error(msg string, kv ...interface{}) {
	l.logger.WithFields(fieldsOf(kv)).Error(msg)
}

// fieldsOf pairs up kv into logrus fields. A trailing key without a value is
// dropped.
func fieldsOf(kv []interface{}) logrus.Fields {
	fields := make(logrus.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return fields
}
