package logger

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	levelCounterOnce sync.Once              //nolint:gochecknoglobals
	levelCounter     *prometheus.CounterVec //nolint:gochecknoglobals
)

// levelCounterHook counts every log statement by level.
type levelCounterHook struct{}

// Run implements zerolog.Hook.
func (levelCounterHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	if level != zerolog.NoLevel {
		levelCounter.WithLabelValues(level.String()).Inc()
	}
}

// newLevelCounterHook registers the counter vec once and returns the hook.
// Init may run more than once (tests), the registration must not.
func newLevelCounterHook(service string) levelCounterHook {
	levelCounterOnce.Do(func() {
		levelCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "log_statements_total",
				Help:        "Number of log statements, differentiated by log level.",
				ConstLabels: prometheus.Labels{"service": service},
			},
			[]string{"level"},
		)
	})

	return levelCounterHook{}
}
