// Package metrics holds the Prometheus instruments of the auth service.
// All collectors are registered with the default registry and served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Login methods.
const (
	MethodGoogle = "google"
	MethodOTP    = "otp"
)

// Outcome labels.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "basicapp",
			Name:      "logins_total",
			Help:      "Login attempts by method and result.",
		}, []string{"method", "result"})

	UsersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "basicapp",
			Name:      "users_created_total",
			Help:      "Accounts created on first Google login.",
		})

	OTPSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "basicapp",
			Name:      "otp_sent_total",
			Help:      "One-time passwords issued, by delivery result.",
		}, []string{"result"})

	OTPVerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "basicapp",
			Name:      "otp_verifications_total",
			Help:      "One-time password verifications by outcome.",
		}, []string{"outcome"})

	LogoutsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "basicapp",
			Name:      "logouts_total",
			Help:      "Logout requests by result.",
		}, []string{"result"})

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "basicapp",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"})

	DependencyUp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "basicapp",
			Name:      "dependency_up",
			Help:      "Whether a backing dependency answered its last probe.",
		}, []string{"dependency"})
)

func init() {
	prometheus.MustRegister(
		LoginsTotal,
		UsersCreatedTotal,
		OTPSentTotal,
		OTPVerificationsTotal,
		LogoutsTotal,
		HTTPRequestDuration,
		DependencyUp,
	)
}

// Result maps an error to a result label.
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
