package log

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/goregress/pkg/errors"
)

// ZerologLogger は zerolog をバックエンドとする Logger の実装です。
type ZerologLogger struct {
	zl zerolog.Logger
}

var _ Logger = (*ZerologLogger)(nil)

// NewZerologLogger は w に JSON 行を書き出すロガーを作成します。
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{zl: zl}
}

// NewConsoleLogger は人間向けのコンソール出力を行うロガーを作成します。
func NewConsoleLogger(w io.Writer, level Level) *ZerologLogger {
	cw := zerolog.NewConsoleWriter(func(c *zerolog.ConsoleWriter) {
		c.Out = w
		c.TimeFormat = time.TimeOnly
	})
	return NewZerologLogger(cw, level)
}

func (l *ZerologLogger) Debug(msg string, fields ...any) {
	l.zl.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Info(msg string, fields ...any) {
	l.zl.Info().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Warn(msg string, fields ...any) {
	ev := l.zl.Warn()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			ev = withError(ev, err)
			fields = fields[1:]
		}
	}
	ev.Fields(fields).Msg(msg)
}

// Error は先頭のフィールドが error の場合、エラーとスタックトレースを付けて出力します。
func (l *ZerologLogger) Error(msg string, fields ...any) {
	ev := l.zl.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			ev = withError(ev, err)
			fields = fields[1:]
		}
	}
	ev.Fields(fields).Msg(msg)
}

func withError(ev *zerolog.Event, err error) *zerolog.Event {
	ev = ev.Stack().Err(err)
	if detail, ok := errorDetail(err); ok {
		ev = ev.Object("error.detail", detail)
	}
	return ev
}

func (l *ZerologLogger) With(fields ...any) Logger {
	return &ZerologLogger{zl: l.zl.With().Fields(fields).Logger()}
}

func (l *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= l.zl.GetLevel()
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// ToLogLevel はレベル名を Level に変換します。
func ToLogLevel(level string) (Level, error) {
	zl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return LevelInfo, errors.NewValidationError("log-level", err.Error(), level)
	}
	switch zl {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return LevelDebug, nil
	case zerolog.InfoLevel, zerolog.NoLevel:
		return LevelInfo, nil
	case zerolog.WarnLevel:
		return LevelWarn, nil
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel, zerolog.Disabled:
		return LevelError, nil
	default:
		return LevelInfo, errors.Newf("unsupported log level %q", level)
	}
}

var (
	globalMu     sync.RWMutex
	globalLogger Logger = NewZerologLogger(os.Stderr, LevelWarn)
)

func init() {
	installErrorMarshalers()
}

// GetLogger はグローバルロガーを返します。
func GetLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetLogger はグローバルロガーを差し替えます。
func SetLogger(l Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// SetupLogger はグローバルロガーを設定し、pkg/errors の警告を
// そのロガーの Warn に流すようにします。
func SetupLogger(loglevel string, console bool) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}
	var logger *ZerologLogger
	if console {
		logger = NewConsoleLogger(os.Stderr, level)
	} else {
		logger = NewZerologLogger(os.Stderr, level)
	}
	SetLogger(logger)
	errors.SetZerologWarnFunc(func(w error) {
		GetLogger().Warn("warning", w)
	})
	return nil
}
