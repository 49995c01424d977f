// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

type cronLogger struct {
	l *Logger
}

// Cron adapts l to the logger interface of robfig/cron. Info messages are
// logged at debug level; cron reports every schedule tick through them.
func (l *Logger) Cron() cron.Logger {
	return cronLogger{l: l}
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug().Fields(pairs(keysAndValues)).Str("component", "cron").Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error().Err(err).Fields(pairs(keysAndValues)).Str("component", "cron").Msg(msg)
}

// pairs turns cron's alternating key/value list into zerolog fields.
func pairs(kv []any) map[string]any {
	fields := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return fields
}
