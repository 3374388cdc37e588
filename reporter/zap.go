package reporter

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/parc/errors"
	"github.com/wippyai/parc/logentry"
	"github.com/wippyai/parc/object"
)

// zapSink is the private instance of a zap reporter.
type zapSink struct {
	log *zap.Logger
}

var zapClass = &object.Class[zapSink]{Name: "reporter.zap"}

// Destroy flushes the logger. The logger itself belongs to the caller.
func (z *zapSink) Destroy() {
	if z.log != nil {
		_ = z.log.Sync()
	}
}

type zapOps struct{}

var zapLevels = map[logentry.Level]zapcore.Level{
	logentry.LevelEmergency: zapcore.ErrorLevel,
	logentry.LevelAlert:     zapcore.ErrorLevel,
	logentry.LevelCritical:  zapcore.ErrorLevel,
	logentry.LevelError:     zapcore.ErrorLevel,
	logentry.LevelWarning:   zapcore.WarnLevel,
	logentry.LevelNotice:    zapcore.InfoLevel,
	logentry.LevelInfo:      zapcore.InfoLevel,
	logentry.LevelDebug:     zapcore.DebugLevel,
}

func (zapOps) Report(r *Reporter, entry *object.Object[logentry.Entry]) error {
	sink, ok := object.As[zapSink](PrivateObject(r))
	if !ok {
		return errors.TypeMismatch(errors.PhaseReport, zapClass.Name, kindOf(PrivateObject(r)))
	}
	log := sink.Value().log
	e := entry.Value()

	lvl, ok := zapLevels[e.Level()]
	if !ok {
		return errors.InvalidInput(errors.PhaseReport, "level "+e.Level().String()+" cannot be reported")
	}
	ce := log.Check(lvl, e.Message())
	if ce == nil {
		return nil
	}
	ce.Time = e.Timestamp()
	fields := []zap.Field{
		zap.String("severity", e.Level().String()),
		zap.String("hostname", e.Hostname()),
		zap.String("application", e.Application()),
		zap.String("process", e.Process()),
	}
	if id := e.MessageID(); id != "" {
		fields = append(fields, zap.String("msgid", id))
	}
	ce.Write(fields...)
	return nil
}

// NewZap returns a reporter forwarding entries to log. Emergency through
// Error map to zap's error level, Notice to info.
func NewZap(rt *object.Runtime, log *zap.Logger) (*Reporter, error) {
	if log == nil {
		return nil, errors.InvalidInput(errors.PhaseCreate, "nil logger")
	}
	private := object.New(rt, zapClass, func(z *zapSink) { z.log = log })
	defer object.Release(&private)
	return New(rt, private, zapOps{}), nil
}
