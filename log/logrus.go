package log

import "github.com/sirupsen/logrus"

var logrusLevels = map[Level]logrus.Level{
	LevelTrace: logrus.TraceLevel,
	LevelDebug: logrus.DebugLevel,
	LevelInfo:  logrus.InfoLevel,
	LevelWarn:  logrus.WarnLevel,
	LevelError: logrus.ErrorLevel,
	LevelFatal: logrus.FatalLevel,
}

// logrusLogger carries its fields on a logrus entry so that Sub loggers
// share the backend's output and level.
type logrusLogger struct {
	entry *logrus.Entry
}

var _ Logger = (*logrusLogger)(nil)

func (l *logrusLogger) Trace(msg string, fields ...interface{}) {
	l.log(LevelTrace, msg, fields)
}

func (l *logrusLogger) Debug(msg string, fields ...interface{}) {
	l.log(LevelDebug, msg, fields)
}

func (l *logrusLogger) Info(msg string, fields ...interface{}) {
	l.log(LevelInfo, msg, fields)
}

func (l *logrusLogger) Warn(msg string, fields ...interface{}) {
	l.log(LevelWarn, msg, fields)
}

func (l *logrusLogger) Error(msg string, fields ...interface{}) {
	l.log(LevelError, msg, fields)
}

// Fatal logs and exits regardless of the configured level.
func (l *logrusLogger) Fatal(msg string, fields ...interface{}) {
	l.withFields(fields).Fatal(msg)
}

func (l *logrusLogger) Sub(fields ...interface{}) Logger {
	return &logrusLogger{
		entry: l.withFields(fields),
	}
}

func (l *logrusLogger) log(level Level, msg string, fields []interface{}) {
	if level < currLevel {
		return
	}
	l.withFields(fields).Log(logrusLevels[level], msg)
}

func (l *logrusLogger) withFields(fields []interface{}) *logrus.Entry {
	if len(fields) == 0 {
		return l.entry
	}
	if len(fields)%2 != 0 {
		panic("must specify arguments as tuples")
	}

	lFields := make(logrus.Fields, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		k, ok := fields[i].(string)
		if !ok {
			panic("argument keys must be strings")
		}
		v := fields[i+1]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		lFields[k] = v
	}
	return l.entry.WithFields(lFields)
}
