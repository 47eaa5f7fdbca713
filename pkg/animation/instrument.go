package animation

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/viewslot/pkg/dom"
)

// Default tracer name for instrumented animators.
const defaultTracerName = "viewslot/animation"

// InstrumentConfig configures Prometheus metrics and OpenTelemetry tracing
// for an Animator.
type InstrumentConfig struct {
	// Namespace is the metrics namespace (default: "viewslot").
	Namespace string

	// Subsystem is the metrics subsystem (default: "animation").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for transition duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// TracerProvider supplies the tracer.
	// Default: the global OpenTelemetry provider.
	TracerProvider trace.TracerProvider

	// TracerName is the name of the tracer (default: "viewslot/animation").
	TracerName string

	// Logger receives warnings for failed transitions.
	Logger *slog.Logger
}

// InstrumentOption configures an instrumented animator.
type InstrumentOption func(*InstrumentConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) InstrumentOption {
	return func(c *InstrumentConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) InstrumentOption {
	return func(c *InstrumentConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) InstrumentOption {
	return func(c *InstrumentConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) InstrumentOption {
	return func(c *InstrumentConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) InstrumentOption {
	return func(c *InstrumentConfig) {
		c.Registry = registry
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) InstrumentOption {
	return func(c *InstrumentConfig) {
		c.TracerProvider = tp
	}
}

// WithTracerName sets the tracer name.
func WithTracerName(name string) InstrumentOption {
	return func(c *InstrumentConfig) {
		c.TracerName = name
	}
}

// WithInstrumentLogger sets the logger.
func WithInstrumentLogger(logger *slog.Logger) InstrumentOption {
	return func(c *InstrumentConfig) {
		c.Logger = logger
	}
}

func defaultInstrumentConfig() InstrumentConfig {
	return InstrumentConfig{
		Namespace:  "viewslot",
		Subsystem:  "animation",
		Buckets:    []float64{.01, .05, .1, .25, .5, 1, 2.5, 5},
		Registry:   prometheus.DefaultRegisterer,
		TracerName: defaultTracerName,
	}
}

// metrics holds the Prometheus collectors for one instrumented animator.
type metrics struct {
	started  *prometheus.CounterVec
	finished *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight *prometheus.GaugeVec
}

func newMetrics(config InstrumentConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		started: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transitions_started_total",
			Help:        "Total number of enter/leave transitions started",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		finished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transitions_finished_total",
			Help:        "Total number of enter/leave transitions finished, by status",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transition_duration_seconds",
			Help:        "Time from transition start to settlement in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		inFlight: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transitions_in_flight",
			Help:        "Number of transitions currently running",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),
	}
}

// Instrumented wraps an Animator with metrics and tracing.
type Instrumented struct {
	next    Animator
	metrics *metrics
	tracer  trace.Tracer
	logger  *slog.Logger
}

// Instrument wraps next so every transition is counted, timed and traced.
//
// Metrics are registered on the configured registry; instrumenting twice
// against the same registry panics, as with any duplicate Prometheus
// registration.
//
//	animator := animation.Instrument(
//	    animation.NewCSS(animation.WithDurations(200*time.Millisecond, 150*time.Millisecond)),
//	    animation.WithRegistry(reg),
//	)
func Instrument(next Animator, opts ...InstrumentOption) *Instrumented {
	config := defaultInstrumentConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if next == nil {
		next = None
	}

	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Instrumented{
		next:    next,
		metrics: newMetrics(config),
		tracer:  tp.Tracer(config.TracerName),
		logger:  logger,
	}
}

// Enter implements Animator.
func (a *Instrumented) Enter(el *dom.Node) *Completion {
	return a.observe("enter", el, a.next.Enter)
}

// Leave implements Animator.
func (a *Instrumented) Leave(el *dom.Node) *Completion {
	return a.observe("leave", el, a.next.Leave)
}

func (a *Instrumented) observe(kind string, el *dom.Node, run func(*dom.Node) *Completion) *Completion {
	attrs := []attribute.KeyValue{attribute.String("viewslot.transition", kind)}
	if el != nil {
		attrs = append(attrs, attribute.String("viewslot.element", el.Tag))
		if id, ok := el.Attr("id"); ok {
			attrs = append(attrs, attribute.String("viewslot.element_id", id))
		}
	}

	_, span := a.tracer.Start(context.Background(), "viewslot."+kind,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)

	start := time.Now()
	a.metrics.started.WithLabelValues(kind).Inc()
	a.metrics.inFlight.WithLabelValues(kind).Inc()

	c := run(el)
	c.OnSettled(func(err error) {
		a.metrics.inFlight.WithLabelValues(kind).Dec()
		a.metrics.duration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			a.logger.Warn("transition failed", "kind", kind, "error", err)
		} else {
			span.SetStatus(codes.Ok, "")
		}
		a.metrics.finished.WithLabelValues(kind, status).Inc()
		span.End()
	})
	return c
}
