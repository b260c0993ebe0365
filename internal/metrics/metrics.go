package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	bookingsSubmitted *prometheus.CounterVec
	confirmations     *prometheus.CounterVec
	conflictsDetected prometheus.Counter
	transfers         *prometheus.CounterVec
	returnsScheduled  prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
)

func register() {
	bookingsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "camrental",
		Name:      "bookings_submitted_total",
		Help:      "Booking requests accepted, by booking type.",
	}, []string{"booking_type"})

	confirmations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "camrental",
		Name:      "confirmations_total",
		Help:      "Confirmation attempts, by outcome.",
	}, []string{"outcome"})

	conflictsDetected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "camrental",
		Name:      "conflicts_detected_total",
		Help:      "Booking conflicts surfaced during confirmation.",
	})

	transfers = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "camrental",
		Name:      "unit_transfers_total",
		Help:      "Rental transfers to another unit, by outcome.",
	}, []string{"outcome"})

	returnsScheduled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "camrental",
		Name:      "returns_scheduled_total",
		Help:      "Rentals swept into RETURN_SCHEDULED by the overdue job.",
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "camrental",
		Name:      "http_requests_total",
		Help:      "HTTP requests, by method, route and status code.",
	}, []string{"method", "route", "code"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "camrental",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
}

// Init registers all collectors. Safe to call more than once.
func Init() {
	once.Do(register)
}

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}

func BookingSubmitted(bookingType string) {
	Init()
	bookingsSubmitted.WithLabelValues(bookingType).Inc()
}

func ConfirmationOutcome(outcome string) {
	Init()
	confirmations.WithLabelValues(outcome).Inc()
}

func ConflictDetected() {
	Init()
	conflictsDetected.Inc()
}

func TransferOutcome(outcome string) {
	Init()
	transfers.WithLabelValues(outcome).Inc()
}

func ReturnsScheduled(n int) {
	Init()
	returnsScheduled.Add(float64(n))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware records request counts and latency per route.
func HTTPMiddleware(route string, next http.Handler) http.Handler {
	Init()
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		httpRequests.WithLabelValues(req.Method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
	})
}
