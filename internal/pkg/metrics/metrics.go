package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultFailure = "failure"
)

// Sign-in method label values.
const (
	MethodEmail     = "email"
	MethodMagicLink = "magic_link"
	MethodSocial    = "social"
)

// Metrics holds the application counters.
type Metrics struct {
	SignIns         *prometheus.CounterVec
	SignUps         *prometheus.CounterVec
	ContactMessages *prometheus.CounterVec
	ProxyRedirects  prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
// Panics if registration fails (following prometheus convention).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SignIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_starter_sign_ins_total",
			Help: "Sign-in attempts by method and result",
		}, []string{"method", "result"}),
		SignUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_starter_sign_ups_total",
			Help: "Email sign-up attempts by result",
		}, []string{"result"}),
		ContactMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_starter_contact_messages_total",
			Help: "Contact form submissions by result",
		}, []string{"result"}),
		ProxyRedirects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_starter_proxy_redirects_total",
			Help: "Protected page requests redirected to sign-in",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "auth_starter_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(m.SignIns, m.SignUps, m.ContactMessages, m.ProxyRedirects, m.RequestDuration)
	return m
}

// RecordSignIn increments the sign-in counter. Safe on a nil receiver.
func (m *Metrics) RecordSignIn(method, result string) {
	if m == nil {
		return
	}
	m.SignIns.WithLabelValues(method, result).Inc()
}

// RecordSignUp increments the sign-up counter. Safe on a nil receiver.
func (m *Metrics) RecordSignUp(result string) {
	if m == nil {
		return
	}
	m.SignUps.WithLabelValues(result).Inc()
}

// RecordContactMessage increments the contact counter. Safe on a nil receiver.
func (m *Metrics) RecordContactMessage(result string) {
	if m == nil {
		return
	}
	m.ContactMessages.WithLabelValues(result).Inc()
}

// RecordProxyRedirect increments the redirect counter. Safe on a nil receiver.
func (m *Metrics) RecordProxyRedirect() {
	if m == nil {
		return
	}
	m.ProxyRedirects.Inc()
}

// Middleware observes request durations labelled by the matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the collectors gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
