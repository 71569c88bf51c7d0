package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	approvalSubmissionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "approval_submissions_total",
			Help: "Total number of approval requests submitted",
		},
	)

	// decision: Approved, Rejected
	approvalDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approval_decisions_total",
			Help: "Total number of approval decisions applied",
		},
		[]string{"decision"},
	)

	menuCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_cache_lookups_total",
			Help: "Menu tree cache lookups by result",
		},
		[]string{"result"},
	)

	databaseConnectionsOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_open",
			Help: "Number of open database connections",
		},
	)
)

var once sync.Once

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(approvalSubmissionsTotal)
	prometheus.MustRegister(approvalDecisionsTotal)
	prometheus.MustRegister(menuCacheTotal)
	prometheus.MustRegister(databaseConnectionsOpen)

	once.Do(func() {
		_ = prometheus.Register(prometheus.NewGoCollector())
		_ = prometheus.Register(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordHTTPRequest(method string, status int, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method).Observe(seconds)
}

func RecordSubmission() {
	approvalSubmissionsTotal.Inc()
}

func RecordDecision(decision string) {
	approvalDecisionsTotal.WithLabelValues(decision).Inc()
}

// RecordMenuCache result: hit, miss, error
func RecordMenuCache(result string) {
	menuCacheTotal.WithLabelValues(result).Inc()
}

func UpdateDatabaseConnections(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	databaseConnectionsOpen.Set(float64(sqlDB.Stats().OpenConnections))
	return nil
}
