// Package metrics exposes process counters in Prometheus text format and
// optionally pushes them to a VictoriaMetrics compatible endpoint.
package metrics

import (
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"

	"github.com/bookstore-vn/bookstore/internal/shared/config"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
)

// Callback sources.
const (
	SourceReturn = "return"
	SourceIPN    = "ipn"
)

// Setup starts pushing metrics when a push URL is configured.
func Setup(cfg config.MetricsConfig, log logger.Interface) {
	if !cfg.Enabled || cfg.PushURL == "" {
		return
	}

	interval := time.Duration(cfg.PushIntervalMs) * time.Millisecond
	if err := metrics.InitPush(cfg.PushURL, interval, `service="bookstore"`, true); err != nil {
		log.Errorw("failed to initialize metrics push", "url", cfg.PushURL, "error", err)
		return
	}
	log.Infow("metrics push initialized", "url", cfg.PushURL, "interval", interval)
}

// Handler serves every registered metric, including Go runtime metrics.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		metrics.WritePrometheus(c.Writer, true)
	}
}

// RecordCallback counts a processed gateway callback by source and outcome.
func RecordCallback(source, outcome string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`vnpay_callbacks_total{source=%q,outcome=%q}`, source, outcome)).Inc()
}

// ObserveCallbackDuration records how long a callback took to process.
func ObserveCallbackDuration(source string, start time.Time) {
	metrics.GetOrCreateHistogram(fmt.Sprintf(`vnpay_callback_duration_milliseconds{source=%q}`, source)).
		Update(float64(time.Since(start).Milliseconds()))
}

// RecordCheckout counts checkout attempts by result.
func RecordCheckout(result string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`checkout_total{result=%q}`, result)).Inc()
}
