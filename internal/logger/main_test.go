package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/givehub-admin/givehub-admin/internal/logger"
)

func TestInitRejectsIncompleteConfig(t *testing.T) {
	err := logger.Init(logger.Log{AppName: "test"})
	require.ErrorIs(t, err, logger.ErrServiceNameIsEmpty)

	err = logger.Init(logger.Log{ServiceName: "test"})
	require.ErrorIs(t, err, logger.ErrAppNameIsEmpty)

	err = logger.Init(logger.Log{AppName: "test", ServiceName: "test", LogLevel: "verbose"})
	require.Error(t, err, "unknown log level must be rejected")
}

func TestInitConsoleOutput(t *testing.T) {
	testCases := []struct {
		name       string
		cfg        logger.Log
		wantOutput bool
		wantJSON   bool
	}{
		{
			name:       "no sink enabled",
			cfg:        logger.Log{LogLevel: "info", AppName: "test", ServiceName: "test"},
			wantOutput: false,
		},
		{
			name: "pretty console",
			cfg: logger.Log{
				LogLevel: "info", AppName: "test", ServiceName: "test",
				Console: logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			wantOutput: true,
		},
		{
			name: "plain console emits json",
			cfg: logger.Log{
				LogLevel: "info", AppName: "test", ServiceName: "test",
				Console: logger.Console{Enabled: true},
			},
			wantOutput: true,
			wantJSON:   true,
		},
		{
			name: "trace level with caller emits json",
			cfg: logger.Log{
				LogLevel: "trace", AppName: "test", ServiceName: "test", ReportCaller: true,
				Console: logger.Console{Enabled: true},
			},
			wantOutput: true,
			wantJSON:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := captureOutput(t, tc.cfg)

			if !tc.wantOutput {
				assert.Empty(t, out)
				return
			}

			require.NotEmpty(t, out)

			if tc.wantJSON {
				for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
					var decoded map[string]any
					assert.NoError(t, json.Unmarshal([]byte(line), &decoded), "expected json line, got %q", line)
				}
			}
		})
	}
}

// captureOutput initializes the logger with cfg, emits one statement per
// level band and returns everything written to stdout and stderr.
func captureOutput(t *testing.T, cfg logger.Log) string {
	t.Helper()

	stdout, stderr := os.Stdout, os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	os.Stderr = w

	defer func() {
		os.Stdout = stdout
		os.Stderr = stderr
	}()

	require.NoError(t, logger.Init(cfg))

	testErr := errors.New("a test error")
	log.Info().Msg("info line")
	log.Error().Err(testErr).Msg("error line")
	log.Trace().Err(testErr).Msg("trace line")

	done := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	require.NoError(t, w.Close())

	return <-done
}
