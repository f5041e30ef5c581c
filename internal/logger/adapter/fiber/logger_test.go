package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/givehub-admin/givehub-admin/internal/logger/adapter/fiber"
	"github.com/givehub-admin/givehub-admin/internal/logger"
)

// accessLine mirrors the json shape of one access log statement.
type accessLine struct {
	IP     string `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
}

func consoleConfig() logger.Log {
	return logger.Log{
		EnableAccessLogToConsole: true,
		Console:                  logger.Console{Enabled: true},
	}
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name       string
		targetPath string
		config     adapter.Config
		want       *accessLine
	}{
		{
			name:       "no sink configured",
			targetPath: "/",
			want:       nil,
		},
		{
			name:       "request logged as json",
			targetPath: "/",
			config:     adapter.Config{Config: consoleConfig()},
			want:       &accessLine{IP: "0.0.0.0", Status: 200, URI: "/", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "unnormalized path kept verbatim",
			targetPath: "//test",
			config:     adapter.Config{Config: consoleConfig()},
			want:       &accessLine{IP: "0.0.0.0", Status: 404, URI: "//test", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "query string preserved",
			targetPath: "/?test=123",
			config:     adapter.Config{Config: consoleConfig()},
			want:       &accessLine{IP: "0.0.0.0", Status: 200, URI: "/?test=123", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "unknown path with query",
			targetPath: "/no_path//?test=123",
			config:     adapter.Config{Config: consoleConfig()},
			want:       &accessLine{IP: "0.0.0.0", Status: 404, URI: "/no_path//?test=123", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "health probe suppressed",
			targetPath: "/healthz",
			config: adapter.Config{
				Config: func() logger.Log {
					cfg := consoleConfig()
					cfg.DisableCheckAlive = true
					return cfg
				}(),
				CheckAliveURI: "/healthz",
			},
			want: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := runMiddleware(t, tc.targetPath, tc.config)

			if tc.want == nil {
				assert.Empty(t, out)
				return
			}

			require.NotEmpty(t, out)

			var got accessLine
			require.NoError(t, json.Unmarshal([]byte(out), &got))

			assert.Equal(t, *tc.want, got)
		})
	}
}

// runMiddleware sends one request through an app with the access logger
// and returns what was written to the console.
func runMiddleware(t *testing.T, targetPath string, cfg adapter.Config) string {
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

	app := fiber.New(fiber.Config{CaseSensitive: true, Immutable: true})
	app.Use(adapter.New(cfg))
	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("hello test")
	})
	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	_, err = app.Test(httptest.NewRequest(fiber.MethodGet, targetPath, nil), -1)
	require.NoError(t, err)

	done := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	require.NoError(t, w.Close())

	return <-done
}
