package receiptprefs

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type zapLogger struct {
	sugar   *zap.SugaredLogger
	level   zap.AtomicLevel
	leveled bool
}

// NewZapLogger builds a production zap logger at the given level and adapts
// it to Logger. Args are passed to zap as loosely typed key-value pairs.
func NewZapLogger(level LogLevel) (LeveledLogger, error) {
	atom := zap.NewAtomicLevelAt(toZapLevel(level))
	cfg := zap.NewProductionConfig()
	cfg.Level = atom
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapLogger{sugar: l.Sugar(), level: atom, leveled: true}, nil
}

// NewZapLoggerTo builds a JSON zap logger writing to w with the production
// encoder settings.
func NewZapLoggerTo(w io.Writer, level LogLevel) LeveledLogger {
	atom := zap.NewAtomicLevelAt(toZapLevel(level))
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		atom,
	)
	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	return &zapLogger{sugar: l.Sugar(), level: atom, leveled: true}
}

// WrapZapLogger adapts an existing zap logger. SetLevel on the result is a
// no-op because the level of l is owned by its core.
func WrapZapLogger(l *zap.Logger) LeveledLogger {
	return &zapLogger{sugar: l.Sugar()}
}

func (z *zapLogger) Debug(msg string, args ...any) { z.sugar.Debugw(msg, args...) }
func (z *zapLogger) Info(msg string, args ...any)  { z.sugar.Infow(msg, args...) }
func (z *zapLogger) Warn(msg string, args ...any)  { z.sugar.Warnw(msg, args...) }
func (z *zapLogger) Error(msg string, args ...any) { z.sugar.Errorw(msg, args...) }

func (z *zapLogger) SetLevel(level LogLevel) {
	if z.leveled {
		z.level.SetLevel(toZapLevel(level))
	}
}

// Sync flushes buffered zap output.
func (z *zapLogger) Sync() error {
	return z.sugar.Sync()
}

func toZapLevel(level LogLevel) zapcore.Level {
	switch {
	case level <= LogLevelDebug:
		return zapcore.DebugLevel
	case level <= LogLevelInfo:
		return zapcore.InfoLevel
	case level <= LogLevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
