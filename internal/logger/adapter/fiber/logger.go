// Package fiber provides the access logging middleware: one structured log
// line per request via zerolog, written to console and/or a rolling file.
package fiber

import (
	"bytes"
	"io"
	"os"
	"path"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/givehub-admin/givehub-admin/internal/logger"
)

// Config configures the access logging middleware.
type Config struct {
	// Next skips this middleware when it returns true. Optional.
	Next func(c *fiber.Ctx) bool

	// Config of the logger.
	Config logger.Log

	// CacheControlError is the Cache-Control value set on chain errors.
	CacheControlError string

	// CheckAliveURI suppresses logging of health probe calls.
	CheckAliveURI string
}

// ConfigDefault is the default middleware config.
var ConfigDefault = Config{
	CacheControlError: "max-age=0",
}

func configDefault(config ...Config) Config {
	if len(config) < 1 {
		return ConfigDefault
	}

	cfg := config[0]
	if cfg.CacheControlError == "" {
		cfg.CacheControlError = ConfigDefault.CacheControlError
	}

	return cfg
}

// New creates the access logging middleware.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)
	accessLog := zerolog.New(zerolog.MultiLevelWriter(accessSinks(cfg.Config)...)).
		With().
		Timestamp().
		Logger().
		Level(zerolog.NoLevel)

	var (
		once       sync.Once
		errHandler fiber.ErrorHandler
	)

	return func(ctx *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(ctx) {
			return ctx.Next()
		}

		once.Do(func() {
			errHandler = ctx.App().ErrorHandler
		})

		start := time.Now()
		chainErr := ctx.Next()

		if chainErr != nil {
			if errH := errHandler(ctx, chainErr); errH != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
				ctx.Response().Header.Set(fiber.HeaderCacheControl, cfg.CacheControlError)
			}
		}

		elapsed := time.Since(start).Seconds()
		ctx.Locals("elapsed", elapsed)
		ctx.Response().Header.Set("X-Performance", strconv.FormatFloat(elapsed, 'f', -1, 64))

		if cfg.Config.DisableCheckAlive && bytes.Equal(ctx.Request().RequestURI(), []byte(cfg.CheckAliveURI)) {
			return nil
		}

		// fasthttp normalizes the request URI; log the unchanged path plus
		// the raw query string instead.
		uri := ctx.Path()
		if qs := ctx.Request().URI().QueryString(); len(qs) > 0 {
			uri = uri + "?" + string(qs)
		}

		line := accessLog.Log().
			Str("IP", ctx.IP()).
			Int("status", ctx.Response().StatusCode()).
			Float64("X-Performance", elapsed).
			Str("URI", uri).
			Str("method", ctx.Method()).
			Bytes("host", ctx.Request().Host()).
			Str(fiber.HeaderXForwardedFor, ctx.Get(fiber.HeaderXForwardedFor)).
			Str(fiber.HeaderUserAgent, ctx.Get(fiber.HeaderUserAgent)).
			Str(fiber.HeaderOrigin, ctx.Get(fiber.HeaderOrigin)).
			Str(fiber.HeaderReferer, ctx.Get(fiber.HeaderReferer))

		if chainErr != nil {
			line.Err(chainErr)
		}

		line.Send()

		return nil
	}
}

// accessSinks assembles the writers for the access log. Console output is
// gated on both Console.Enabled and EnableAccessLogToConsole.
func accessSinks(cfg logger.Log) []io.Writer {
	var sinks []io.Writer

	if cfg.File.Enabled {
		if w := rollingAccessFile(cfg.File); w != nil {
			sinks = append(sinks, w)
		}
	}

	if cfg.Console.Enabled && cfg.EnableAccessLogToConsole {
		if cfg.Console.UseConsoleWriter {
			sinks = append(sinks, zerolog.ConsoleWriter{
				Out:          os.Stdout,
				TimeFormat:   zerolog.TimeFieldFormat,
				PartsExclude: []string{"level"},
			})
		} else {
			sinks = append(sinks, os.Stdout)
		}
	}

	return sinks
}

// rollingAccessFile creates the lumberjack writer for the access log file.
func rollingAccessFile(cfg logger.LogFile) io.Writer {
	if cfg.Path != "" {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			log.Error().Err(err).Str("path", cfg.Path).Msg("can't create log directory")

			return nil
		}
	}

	return &lumberjack.Logger{
		Filename:   path.Join(cfg.Path, cfg.AccessLog),
		MaxSize:    cfg.AccessMaxSize,
		MaxAge:     cfg.AccessMaxAge,
		MaxBackups: cfg.AccessMaxBackups,
	}
}
