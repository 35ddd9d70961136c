// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package updater

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/choria-io/updater/model"
)

var _ model.Logger = (*LogrusLogger)(nil)

// LogrusLogger adapts a logrus.Entry to model.Logger, used for json formatted logs
type LogrusLogger struct {
	log *logrus.Entry
}

func NewLogrusLogger(log *logrus.Entry) *LogrusLogger {
	return &LogrusLogger{log: log}
}

// fields turns slog style key value pairs into logrus fields, a trailing key without value is kept under !BADKEY like slog does
func (l *LogrusLogger) fields(args ...any) logrus.Fields {
	fields := logrus.Fields{}

	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			fields["!BADKEY"] = args[i]
			break
		}

		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}

		val := args[i+1]
		if err, ok := val.(error); ok {
			val = err.Error()
		}

		fields[key] = val
	}

	return fields
}

func (l *LogrusLogger) Debug(msg string, args ...any) { l.log.WithFields(l.fields(args...)).Debug(msg) }
func (l *LogrusLogger) Info(msg string, args ...any)  { l.log.WithFields(l.fields(args...)).Info(msg) }
func (l *LogrusLogger) Warn(msg string, args ...any)  { l.log.WithFields(l.fields(args...)).Warn(msg) }
func (l *LogrusLogger) Error(msg string, args ...any) { l.log.WithFields(l.fields(args...)).Error(msg) }

func (l *LogrusLogger) With(args ...any) model.Logger {
	return NewLogrusLogger(l.log.WithFields(l.fields(args...)))
}
