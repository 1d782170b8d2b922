package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/goagent-api/internal/application/signup"
)

var _ signup.Recorder = (*SignupMetrics)(nil)

// Config etiquetas constantes de las series.
type Config struct {
	ServiceName string
	Environment string
}

// SignupMetrics resultados del registro y pasos degradados. Las identidades creadas
// sin aprovisionamiento completo se detectan con step_failures_total.
type SignupMetrics struct {
	outcomes     *prometheus.CounterVec
	stepFailures *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// NewSignupMetrics registra las series en registerer (nil = registro por defecto).
func NewSignupMetrics(registerer prometheus.Registerer, cfg Config) *SignupMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "goagent-api"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{"service": serviceName, "env": environment}

	m := &SignupMetrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "goagent_signup_outcomes_total",
			Help:        "Registros terminados por resultado (success, conflict, fatal).",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		stepFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "goagent_signup_step_failures_total",
			Help:        "Pasos de aprovisionamiento degradados por estado.",
			ConstLabels: constLabels,
		}, []string{"step"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "goagent_signup_duration_seconds",
			Help:        "Duración del registro completo por resultado.",
			Buckets:     []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
			ConstLabels: constLabels,
		}, []string{"outcome"}),
	}
	registerer.MustRegister(m.outcomes, m.stepFailures, m.duration)
	return m
}

// ObserveOutcome implementa signup.Recorder.
func (m *SignupMetrics) ObserveOutcome(kind signup.OutcomeKind, elapsed time.Duration) {
	m.outcomes.WithLabelValues(string(kind)).Inc()
	m.duration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

// ObserveStepFailure implementa signup.Recorder.
func (m *SignupMetrics) ObserveStepFailure(step signup.State) {
	m.stepFailures.WithLabelValues(string(step)).Inc()
}
