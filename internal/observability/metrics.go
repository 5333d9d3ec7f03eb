package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
	httpErrorsTotal       *prometheus.CounterVec
	activitiesLoggedTotal *prometheus.CounterVec
	redemptionsTotal      *prometheus.CounterVec
	pointsRedeemedTotal   prometheus.Counter
	leaderboardCacheTotal *prometheus.CounterVec
	reportsGeneratedTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timebank_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "timebank_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timebank_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		activitiesLoggedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timebank_activities_logged_total",
			Help: "Activities appended to the ledger, by principal role.",
		}, []string{"role"})

		redemptionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timebank_redemptions_total",
			Help: "Redemption attempts by outcome.",
		}, []string{"outcome"})

		pointsRedeemedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timebank_points_redeemed_total",
			Help: "Points debited by successful redemptions.",
		})

		leaderboardCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timebank_leaderboard_cache_total",
			Help: "Leaderboard cache lookups by result.",
		}, []string{"result"})

		reportsGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timebank_reports_generated_total",
			Help: "Mentor reports generated, by period.",
		}, []string{"period"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			activitiesLoggedTotal,
			redemptionsTotal,
			pointsRedeemedTotal,
			leaderboardCacheTotal,
			reportsGeneratedTotal,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// ActivitiesLogged counts ledger appends.
func ActivitiesLogged() *prometheus.CounterVec {
	RegisterMetrics()
	return activitiesLoggedTotal
}

// Redemptions counts redemption attempts.
func Redemptions() *prometheus.CounterVec {
	RegisterMetrics()
	return redemptionsTotal
}

// PointsRedeemed counts debited points.
func PointsRedeemed() prometheus.Counter {
	RegisterMetrics()
	return pointsRedeemedTotal
}

// LeaderboardCache counts cache hits and misses.
func LeaderboardCache() *prometheus.CounterVec {
	RegisterMetrics()
	return leaderboardCacheTotal
}

// ReportsGenerated counts generated reports.
func ReportsGenerated() *prometheus.CounterVec {
	RegisterMetrics()
	return reportsGeneratedTotal
}
