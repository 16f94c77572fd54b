package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	AnswersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_answers_submitted_total",
			Help: "Answers accepted by the submission orchestrator",
		},
		[]string{"question_type", "operation"},
	)

	AnswersRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_answers_rejected_total",
			Help: "Answer submissions rejected, by error kind",
		},
		[]string{"kind"},
	)

	AssessmentsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assessment_completions_total",
			Help: "Employee assessments that reached COMPLETED",
		},
	)

	ScoreRecomputeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assessment_score_recompute_duration_seconds",
			Help:    "Duration of score tree recomputation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tree"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			AnswersSubmitted,
			AnswersRejected,
			AssessmentsCompleted,
			ScoreRecomputeDuration,
		)
	})
}

// ObserveRecompute records how long a score tree rebuild took.
func ObserveRecompute(tree string, start time.Time) {
	ScoreRecomputeDuration.WithLabelValues(tree).Observe(time.Since(start).Seconds())
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
