package metrics

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"village/internal/village"
)

var (
	BuildsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "village_builds_total",
		Help: "Village generations by result",
	}, []string{"result"})
	BuildDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "village_build_duration_ms",
		Help:    "Village generation duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	Gates = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "village_gates",
		Help:    "Gates per generated village",
		Buckets: []float64{1, 2, 3, 4, 5, 6, 8},
	})
	Arteries = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "village_arteries",
		Help:    "Merged arteries per generated village",
		Buckets: []float64{1, 2, 4, 8, 12, 16, 24},
	})
)

func init() {
	prometheus.MustRegister(BuildsTotal)
	prometheus.MustRegister(BuildDurationMs)
	prometheus.MustRegister(Gates)
	prometheus.MustRegister(Arteries)
}

// Result labels one Build outcome.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, village.ErrGenerationFailure):
		return "generation_failure"
	}
	return "error"
}

// Observe records one Build call. v is nil when err is set.
func Observe(v *village.Village, err error, took time.Duration) {
	BuildsTotal.WithLabelValues(Result(err)).Inc()
	BuildDurationMs.Observe(float64(took.Microseconds()) / 1000)
	if v == nil {
		return
	}
	Gates.Observe(float64(len(v.Gates())))
	Arteries.Observe(float64(len(v.Arteries())))
}

// Write dumps the default registry in the text exposition format.
func Write(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func Handler() http.Handler { return promhttp.Handler() }
