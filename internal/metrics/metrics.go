package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"familyservices/internal/db"
)

var (
	updateRequestsDesc = prometheus.NewDesc(
		"familyservices_update_requests_total",
		"Update requests by type and status",
		[]string{"request_type", "status"},
		nil,
	)

	requestsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "familyservices_requests_processed_total",
			Help: "Admin processing decisions since startup",
		},
		[]string{"request_type", "status"},
	)
)

// RequestCollector is a custom Prometheus collector that reads update-request
// counts from the database on each scrape.
type RequestCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *RequestCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- updateRequestsDesc
}

// Collect queries the database for request counts and emits them as counters.
func (c *RequestCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.db.CountUpdateRequests(context.Background())
	if err != nil {
		slog.Error("failed to collect update request metrics", "error", err)
		return
	}
	for _, rc := range counts {
		ch <- prometheus.MustNewConstMetric(
			updateRequestsDesc,
			prometheus.CounterValue,
			float64(rc.Count),
			rc.RequestType,
			rc.Status,
		)
	}
}

var initOnce sync.Once

// Init registers the collectors. Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(&RequestCollector{db: database})
		prometheus.MustRegister(requestsProcessed)
	})
}

// RecordRequestProcessed counts an admin decision on an update request.
func RecordRequestProcessed(requestType, status string) {
	requestsProcessed.WithLabelValues(requestType, status).Inc()
}
