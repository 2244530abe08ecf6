package logsvc

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/trezcool/classroom/core"
)

// ZapLogger writes structured logs through a zap.SugaredLogger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

var _ core.Logger = (*ZapLogger)(nil)

// NewZapLogger returns a development (console) logger in debug mode, a production (JSON) one otherwise.
func NewZapLogger(conf *core.Config) (*ZapLogger, error) {
	var z *zap.Logger
	var err error
	if conf.Debug {
		cfg := zap.NewDevelopmentConfig()
		z, err = cfg.Build(zap.AddCallerSkip(1))
	} else {
		z, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sugar: z.Sugar().With("app", conf.AppName, "env", conf.Env)}, nil
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *ZapLogger {
	return &ZapLogger{sugar: zap.NewNop().Sugar()}
}

// fields turns args (error, map[string]interface{}, core.SessionID, anything else) into zap key-value pairs.
func fields(args []interface{}) []interface{} {
	kv := make([]interface{}, 0, 2*len(args))
	var extra int
	for _, arg := range args {
		switch a := arg.(type) {
		case nil:
		case error:
			kv = append(kv, zap.Error(a))
		case core.SessionID:
			kv = append(kv, "session", string(a))
		case map[string]interface{}:
			for k, v := range a {
				kv = append(kv, k, v)
			}
		default:
			extra++
			kv = append(kv, fmt.Sprintf("arg%d", extra), a)
		}
	}
	return kv
}

func (l *ZapLogger) Debug(msg string, args ...interface{}) {
	l.sugar.Debugw(msg, fields(args)...)
}

func (l *ZapLogger) Info(msg string, args ...interface{}) {
	l.sugar.Infow(msg, fields(args)...)
}

func (l *ZapLogger) Warn(msg string, args ...interface{}) {
	l.sugar.Warnw(msg, fields(args)...)
}

func (l *ZapLogger) Error(msg string, args ...interface{}) {
	l.sugar.Errorw(msg, fields(args)...)
}

func (l *ZapLogger) Fatal(msg string, args ...interface{}) {
	l.sugar.Fatalw(msg, fields(args)...)
}

// Sync flushes any buffered log entries.
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}
