// Package logger configures the global zerolog logger. Log lines are fanned
// out per level to the console and/or rolling files, and every statement
// increments a Prometheus counter labelled with its level.
package logger

import (
	"io"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// ErrAppNameIsEmpty is returned if Log.AppName was not defined.
	ErrAppNameIsEmpty = errors.New("config Log.AppName can not be empty")

	// ErrServiceNameIsEmpty is returned if Log.ServiceName was not defined.
	ErrServiceNameIsEmpty = errors.New("config Log.ServiceName can not be empty")
)

// splitWriter routes each log statement to a per-level sink. Debug and info
// share the info sink; error, fatal and panic share the error sink.
type splitWriter struct {
	io.Writer
	trace io.Writer
	info  io.Writer
	warn  io.Writer
	err   io.Writer
}

func (w *splitWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l == zerolog.Disabled {
		return 0, nil
	}

	switch {
	case l == zerolog.TraceLevel:
		return w.trace.Write(p)
	case l == zerolog.WarnLevel:
		return w.warn.Write(p)
	case l > zerolog.WarnLevel:
		return w.err.Write(p)
	default:
		return w.info.Write(p)
	}
}

// Init configures the global logger from the Log config. At least one of the
// console or file sinks should be enabled to see any output.
func Init(cfg Log) error {
	if cfg.ServiceName == "" {
		return ErrServiceNameIsEmpty
	}

	if cfg.AppName == "" {
		return ErrAppNameIsEmpty
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "log level %q is not supported", cfg.LogLevel)
	}

	zerolog.SetGlobalLevel(level)

	// trace runs carry full error stacks
	withStack := level == zerolog.TraceLevel
	if withStack {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
	}

	var sinks []io.Writer

	if cfg.Console.Enabled {
		sinks = append(sinks, consoleSink(cfg.Console.UseConsoleWriter))
	}

	if cfg.File.Enabled {
		sinks = append(sinks, fileSink(cfg.File))
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(sinks...)).
		Hook(newLevelCounterHook(cfg.ServiceName)).
		With().
		Timestamp()

	switch {
	case cfg.ReportCaller && withStack:
		log.Logger = ctx.Stack().Logger()
	case cfg.ReportCaller:
		log.Logger = ctx.Caller().Logger()
	default:
		log.Logger = ctx.Logger()
	}

	return nil
}

// consoleSink writes info to stdout and everything else to stderr, optionally
// through zerolog's human-readable console writer.
func consoleSink(pretty bool) io.Writer {
	stdout := io.Writer(os.Stdout)
	stderr := io.Writer(os.Stderr)

	if pretty {
		stdout = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: zerolog.TimeFieldFormat}
		stderr = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: zerolog.TimeFieldFormat}
	}

	return &splitWriter{info: stdout, trace: stderr, warn: stderr, err: stderr}
}

// fileSink writes each level to its own rolling file under cfg.Path.
func fileSink(cfg LogFile) io.Writer {
	if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
		log.Error().Err(err).Str("path", cfg.Path).Msg("can't create log directory")

		return nil
	}

	roll := func(name string, maxSize, maxAge, maxBackups int) io.Writer {
		return &lumberjack.Logger{
			Filename:   path.Join(cfg.Path, name),
			MaxSize:    maxSize,
			MaxAge:     maxAge,
			MaxBackups: maxBackups,
		}
	}

	return &splitWriter{
		trace: roll(cfg.TraceLog, cfg.TraceMaxSize, cfg.TraceMaxAge, cfg.TraceMaxBackups),
		info:  roll(cfg.InfoLog, cfg.InfoMaxSize, cfg.InfoMaxAge, cfg.InfoMaxBackups),
		warn:  roll(cfg.WarnLog, cfg.WarnMaxSize, cfg.WarnMaxAge, cfg.WarnMaxBackups),
		err:   roll(cfg.ErrorLog, cfg.ErrorMaxSize, cfg.ErrorMaxAge, cfg.ErrorMaxBackups),
	}
}
