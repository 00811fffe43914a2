package synthex

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds optional request instrumentation. A nil *metrics is valid
// and records nothing.
type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	records  prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "synthex",
			Name:      "requests_total",
			Help:      "API requests by endpoint, method and status code.",
		}, []string{"endpoint", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "synthex",
			Name:      "request_duration_seconds",
			Help:      "Time to receive response headers, by endpoint.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "method"}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "synthex",
			Name:      "streamed_records_total",
			Help:      "Records received from job streams.",
		}),
	}

	for _, col := range []prometheus.Collector{m.requests, m.duration, m.records} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *metrics) observe(endpoint, method string, status int, start time.Time) {
	if m == nil {
		return
	}
	code := "error"
	if status != 0 {
		code = strconv.Itoa(status)
	}
	m.requests.WithLabelValues(endpoint, method, code).Inc()
	m.duration.WithLabelValues(endpoint, method).Observe(time.Since(start).Seconds())
}

func (m *metrics) addRecords(n int) {
	if m == nil {
		return
	}
	m.records.Add(float64(n))
}
